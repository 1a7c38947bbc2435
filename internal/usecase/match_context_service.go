package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/maxbat99/probax/internal/domain/location"
	"github.com/maxbat99/probax/internal/domain/prediction"
	"github.com/maxbat99/probax/internal/domain/weather"
	"github.com/maxbat99/probax/internal/platform/logging"
)

type MatchContextInput struct {
	Home     string
	Away     string
	Location location.Query
	Kickoff  string
	TZMode   TZMode
	// Features overrides the neutral defaults before weather is applied.
	Features *prediction.MatchFeatures
}

// MatchContext is the prediction bundle for one fixture. Location and
// Weather are nil when they could not be determined; Warnings says why.
type MatchContext struct {
	Home     string
	Away     string
	Location *location.Resolved
	Weather  *KickoffWeather
	Features prediction.MatchFeatures
	Report   prediction.Report
	Warnings []string
}

// MatchContextService chains resolution, weather and scoring.
type MatchContextService struct {
	locations *LocationService
	stadiums  *StadiumService
	weather   *WeatherService
	engine    *prediction.Engine
	logger    *logging.Logger
}

func NewMatchContextService(locations *LocationService, stadiums *StadiumService, weatherSvc *WeatherService, engine *prediction.Engine, logger *logging.Logger) *MatchContextService {
	if logger == nil {
		logger = logging.Default()
	}
	if engine == nil {
		engine = prediction.NewDefaultEngine()
	}
	return &MatchContextService{
		locations: locations,
		stadiums:  stadiums,
		weather:   weatherSvc,
		engine:    engine,
		logger:    logger,
	}
}

// Build never fails on upstream outages: missing coordinates or weather
// leave the base features in place and add a warning. Malformed input is
// rejected with ErrInvalidInput.
func (s *MatchContextService) Build(ctx context.Context, input MatchContextInput) (MatchContext, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchContextService.Build")
	defer span.End()

	kickoff := strings.TrimSpace(input.Kickoff)
	if kickoff != "" {
		if _, err := weather.ParseKickoff(kickoff); err != nil {
			return MatchContext{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
	}
	mode := input.TZMode
	if mode == "" {
		mode = TZModeBoth
	}
	if _, err := ParseTZMode(string(mode)); err != nil {
		return MatchContext{}, err
	}

	features := prediction.DefaultFeatures()
	if input.Features != nil {
		features = *input.Features
	}

	out := MatchContext{
		Home:     strings.TrimSpace(input.Home),
		Away:     strings.TrimSpace(input.Away),
		Warnings: []string{},
	}

	resolved, found, err := s.resolve(ctx, input.Location)
	switch {
	case err != nil:
		s.logger.WarnContext(ctx, "match location unavailable", "error", err)
		out.Warnings = append(out.Warnings, "location lookup failed: "+err.Error())
	case !found:
		out.Warnings = append(out.Warnings, "location could not be resolved")
	default:
		out.Location = &resolved
	}

	if out.Location != nil && kickoff != "" && s.weather != nil {
		kw, err := s.weather.KickoffWeather(ctx, out.Location.Lat, out.Location.Lon, kickoff, mode)
		if err != nil {
			s.logger.WarnContext(ctx, "match weather unavailable", "lat", out.Location.Lat, "lon", out.Location.Lon, "error", err)
			out.Warnings = append(out.Warnings, "weather unavailable: "+err.Error())
		} else {
			out.Weather = &kw
			if summary, ok := kw.Primary(); ok {
				if summary.Status != weather.StatusOK {
					out.Warnings = append(out.Warnings, "weather summary status: "+string(summary.Status))
				}
				features = prediction.ApplyWeather(features, summary)
			}
		}
	}

	out.Features = features
	out.Report = s.engine.Score(features)
	return out, nil
}

// resolve tries the coordinate resolver, then the stadium knowledge graph
// when a stadium name is known.
func (s *MatchContextService) resolve(ctx context.Context, query location.Query) (location.Resolved, bool, error) {
	var resolveErr error
	if s.locations != nil {
		resolved, found, err := s.locations.Resolve(ctx, query)
		if err == nil && found {
			return resolved, true, nil
		}
		resolveErr = err
	}

	if s.stadiums != nil && len([]rune(strings.TrimSpace(query.Stadium))) >= minSearchQueryRunes {
		resolved, found, err := s.stadiums.Locate(ctx, query.Stadium)
		if err == nil {
			return resolved, found, nil
		}
		resolveErr = errors.Join(resolveErr, err)
	}
	return location.Resolved{}, false, resolveErr
}
