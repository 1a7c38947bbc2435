package usecase

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/maxbat99/probax/internal/domain/location"
	"github.com/maxbat99/probax/internal/domain/weather"
	"github.com/maxbat99/probax/internal/platform/cache"
	"github.com/sourcegraph/conc/pool"
)

// TZMode selects which forecast frames a kickoff report includes.
type TZMode string

const (
	TZModeUTC   TZMode = "utc"
	TZModeLocal TZMode = "local"
	TZModeBoth  TZMode = "both"
)

func ParseTZMode(raw string) (TZMode, error) {
	switch mode := TZMode(strings.ToLower(strings.TrimSpace(raw))); mode {
	case "":
		return TZModeBoth, nil
	case TZModeUTC, TZModeLocal, TZModeBoth:
		return mode, nil
	default:
		return "", fmt.Errorf("%w: tz_mode must be one of utc, local, both", ErrInvalidInput)
	}
}

func (m TZMode) includesUTC() bool {
	return m == TZModeUTC || m == TZModeBoth
}

func (m TZMode) includesLocal() bool {
	return m == TZModeLocal || m == TZModeBoth
}

// FrameReport is the kickoff summary for one forecast frame. Kickoff is
// expressed in that frame's wall clock.
type FrameReport struct {
	Timezone         string
	UTCOffsetSeconds int
	Kickoff          string
	Summary          weather.WindowSummary
}

type KickoffWeather struct {
	Mode       TZMode
	KickoffUTC time.Time
	UTC        *FrameReport
	Local      *FrameReport
}

// Primary returns the summary used for feature assembly: UTC when present,
// local otherwise.
func (k KickoffWeather) Primary() (weather.WindowSummary, bool) {
	if k.UTC != nil {
		return k.UTC.Summary, true
	}
	if k.Local != nil {
		return k.Local.Summary, true
	}
	return weather.WindowSummary{}, false
}

type WeatherService struct {
	provider ForecastProvider
	cache    *cache.Store[weather.Forecast]
}

// NewWeatherService caches forecasts per frame and coordinate for ttl. A
// non-positive ttl disables caching.
func NewWeatherService(provider ForecastProvider, ttl time.Duration) *WeatherService {
	s := &WeatherService{provider: provider}
	if ttl > 0 {
		s.cache = cache.NewStore[weather.Forecast](ttl)
	}
	return s
}

func (s *WeatherService) FetchHourly(ctx context.Context, lat, lon float64, frame weather.Frame) (weather.Forecast, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.WeatherService.FetchHourly")
	defer span.End()

	if !frame.Valid() {
		return weather.Forecast{}, fmt.Errorf("%w: unknown frame %q", ErrInvalidInput, frame)
	}
	if err := location.CheckCoordinates(lat, lon); err != nil {
		return weather.Forecast{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	load := func(ctx context.Context) (weather.Forecast, error) {
		forecast, err := s.provider.HourlyForecast(ctx, lat, lon, frame)
		if err != nil {
			return weather.Forecast{}, fmt.Errorf("%w: frame=%s lat=%v lon=%v: %w", ErrForecastUnavailable, frame, lat, lon, err)
		}
		forecast.Frame = frame
		return forecast, nil
	}
	if s.cache == nil {
		return load(ctx)
	}
	return s.cache.GetOrLoad(ctx, forecastCacheKey(lat, lon, frame), load)
}

// KickoffWeather fetches the requested frames concurrently and summarizes
// each around kickoff. The local kickoff is the UTC kickoff shifted by the
// provider's reported offset.
func (s *WeatherService) KickoffWeather(ctx context.Context, lat, lon float64, kickoff string, mode TZMode) (KickoffWeather, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.WeatherService.KickoffWeather")
	defer span.End()

	kickoffUTC, err := weather.ParseKickoff(kickoff)
	if err != nil {
		return KickoffWeather{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if mode == "" {
		mode = TZModeBoth
	}
	if !mode.includesUTC() && !mode.includesLocal() {
		return KickoffWeather{}, fmt.Errorf("%w: tz_mode must be one of utc, local, both", ErrInvalidInput)
	}

	out := KickoffWeather{Mode: mode, KickoffUTC: kickoffUTC}
	p := pool.New().WithContext(ctx).WithCancelOnError().WithFirstError()
	if mode.includesUTC() {
		p.Go(func(ctx context.Context) error {
			forecast, err := s.FetchHourly(ctx, lat, lon, weather.FrameUTC)
			if err != nil {
				return err
			}
			naive := weather.FormatNaive(kickoffUTC)
			out.UTC = &FrameReport{
				Timezone:         firstNonEmpty(forecast.Timezone, "UTC"),
				UTCOffsetSeconds: forecast.UTCOffsetSeconds,
				Kickoff:          naive,
				Summary:          weather.Summarize(forecast, naive),
			}
			return nil
		})
	}
	if mode.includesLocal() {
		p.Go(func(ctx context.Context) error {
			forecast, err := s.FetchHourly(ctx, lat, lon, weather.FrameLocal)
			if err != nil {
				return err
			}
			naive := weather.FormatNaive(weather.ShiftToLocal(kickoffUTC, forecast.UTCOffsetSeconds))
			out.Local = &FrameReport{
				Timezone:         firstNonEmpty(forecast.Timezone, "local"),
				UTCOffsetSeconds: forecast.UTCOffsetSeconds,
				Kickoff:          naive,
				Summary:          weather.Summarize(forecast, naive),
			}
			return nil
		})
	}
	if err := p.Wait(); err != nil {
		return KickoffWeather{}, err
	}
	return out, nil
}

func forecastCacheKey(lat, lon float64, frame weather.Frame) string {
	return string(frame) + ":" + strconv.FormatFloat(lat, 'f', 4, 64) + "," + strconv.FormatFloat(lon, 'f', 4, 64)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
