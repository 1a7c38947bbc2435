package openmeteo

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/maxbat99/probax/internal/domain/location"
	"github.com/maxbat99/probax/internal/domain/weather"
	"github.com/maxbat99/probax/internal/platform/logging"
	"github.com/maxbat99/probax/internal/platform/resilience"
	"github.com/maxbat99/probax/internal/platform/upstream"
)

const (
	DefaultGeocodingURL = "https://geocoding-api.open-meteo.com/v1/search"
	DefaultForecastURL  = "https://api.open-meteo.com/v1/forecast"

	defaultGeocodingTimeout = 15 * time.Second
	defaultForecastTimeout  = 20 * time.Second
)

type ClientConfig struct {
	HTTPClient       *http.Client
	GeocodingURL     string
	ForecastURL      string
	GeocodingTimeout time.Duration
	ForecastTimeout  time.Duration
	UserAgent        string
	Logger           *logging.Logger
	CircuitBreaker   resilience.CircuitBreakerConfig
	Observer         upstream.Observer
}

// Client talks to the Open-Meteo geocoding and forecast APIs. Each API has
// its own timeout and breaker.
type Client struct {
	geocodingURL string
	forecastURL  string
	geocoding    *upstream.Client
	forecast     *upstream.Client
}

func NewClient(cfg ClientConfig) *Client {
	geocodingTimeout := cfg.GeocodingTimeout
	if geocodingTimeout <= 0 {
		geocodingTimeout = defaultGeocodingTimeout
	}
	forecastTimeout := cfg.ForecastTimeout
	if forecastTimeout <= 0 {
		forecastTimeout = defaultForecastTimeout
	}

	return &Client{
		geocodingURL: firstNonEmpty(cfg.GeocodingURL, DefaultGeocodingURL),
		forecastURL:  firstNonEmpty(cfg.ForecastURL, DefaultForecastURL),
		geocoding: upstream.New(upstream.Config{
			Name:           "openmeteo_geocoding",
			HTTPClient:     cfg.HTTPClient,
			Timeout:        geocodingTimeout,
			UserAgent:      cfg.UserAgent,
			CircuitBreaker: cfg.CircuitBreaker,
			Logger:         cfg.Logger,
			Observer:       cfg.Observer,
		}),
		forecast: upstream.New(upstream.Config{
			Name:           "openmeteo_forecast",
			HTTPClient:     cfg.HTTPClient,
			Timeout:        forecastTimeout,
			UserAgent:      cfg.UserAgent,
			CircuitBreaker: cfg.CircuitBreaker,
			Logger:         cfg.Logger,
			Observer:       cfg.Observer,
		}),
	}
}

func (c *Client) Upstreams() []*upstream.Client {
	return []*upstream.Client{c.geocoding, c.forecast}
}

type geocodingResponse struct {
	Results []struct {
		Name      string   `json:"name"`
		Latitude  *float64 `json:"latitude"`
		Longitude *float64 `json:"longitude"`
		Country   string   `json:"country"`
		Admin1    string   `json:"admin1"`
		Admin2    string   `json:"admin2"`
	} `json:"results"`
}

// SearchPlaces geocodes free text. An empty name returns no candidates
// without calling the API.
func (c *Client) SearchPlaces(ctx context.Context, name string, count int) ([]location.Candidate, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return []location.Candidate{}, nil
	}
	if count <= 0 {
		count = 10
	}

	raw, err := c.geocoding.Do(ctx, upstream.Request{
		URL: c.geocodingURL,
		Query: url.Values{
			"name":     {name},
			"count":    {strconv.Itoa(count)},
			"format":   {"json"},
			"language": {"en"},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("geocode %q: %w", name, err)
	}

	var payload geocodingResponse
	if err := sonic.Unmarshal(raw, &payload); err != nil {
		return nil, crerr.Wrap(err, "decode geocoding response")
	}

	out := make([]location.Candidate, 0, len(payload.Results))
	for _, r := range payload.Results {
		out = append(out, location.Candidate{
			Name:    r.Name,
			Country: r.Country,
			Admin1:  r.Admin1,
			Admin2:  r.Admin2,
			Lat:     r.Latitude,
			Lon:     r.Longitude,
		})
	}
	return out, nil
}

type forecastResponse struct {
	Latitude         float64 `json:"latitude"`
	Longitude        float64 `json:"longitude"`
	Timezone         string  `json:"timezone"`
	UTCOffsetSeconds int     `json:"utc_offset_seconds"`
	Hourly           *struct {
		Time                     []string   `json:"time"`
		Temperature              []*float64 `json:"temperature_2m"`
		ApparentTemperature      []*float64 `json:"apparent_temperature"`
		RelativeHumidity         []*float64 `json:"relative_humidity_2m"`
		Precipitation            []*float64 `json:"precipitation"`
		PrecipitationProbability []*float64 `json:"precipitation_probability"`
		CloudCover               []*float64 `json:"cloud_cover"`
		WindSpeed                []*float64 `json:"wind_speed_10m"`
		WindGusts                []*float64 `json:"wind_gusts_10m"`
		IsDay                    []*float64 `json:"is_day"`
	} `json:"hourly"`
}

// HourlyForecast fetches the seven-day hourly series in the given frame.
func (c *Client) HourlyForecast(ctx context.Context, lat, lon float64, frame weather.Frame) (weather.Forecast, error) {
	raw, err := c.forecast.Do(ctx, upstream.Request{
		URL: c.forecastURL,
		Query: url.Values{
			"latitude":      {strconv.FormatFloat(lat, 'f', -1, 64)},
			"longitude":     {strconv.FormatFloat(lon, 'f', -1, 64)},
			"timezone":      {string(frame)},
			"hourly":        {strings.Join(weather.HourlyMetrics, ",")},
			"forecast_days": {strconv.Itoa(weather.ForecastDays)},
		},
	})
	if err != nil {
		return weather.Forecast{}, fmt.Errorf("forecast lat=%v lon=%v timezone=%s: %w", lat, lon, frame, err)
	}

	var payload forecastResponse
	if err := sonic.Unmarshal(raw, &payload); err != nil {
		return weather.Forecast{}, crerr.Wrap(err, "decode forecast response")
	}

	out := weather.Forecast{
		Latitude:         payload.Latitude,
		Longitude:        payload.Longitude,
		Timezone:         payload.Timezone,
		UTCOffsetSeconds: payload.UTCOffsetSeconds,
		Frame:            frame,
	}
	if h := payload.Hourly; h != nil {
		out.Hourly = &weather.HourlySeries{
			Time:                     h.Time,
			Temperature:              h.Temperature,
			ApparentTemperature:      h.ApparentTemperature,
			RelativeHumidity:         h.RelativeHumidity,
			Precipitation:            h.Precipitation,
			PrecipitationProbability: h.PrecipitationProbability,
			CloudCover:               h.CloudCover,
			WindSpeed:                h.WindSpeed,
			WindGusts:                h.WindGusts,
			IsDay:                    h.IsDay,
		}
	}
	return out, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
