package usecase

import (
	"context"

	"github.com/maxbat99/probax/internal/domain/location"
	"github.com/maxbat99/probax/internal/domain/stadium"
	"github.com/maxbat99/probax/internal/domain/team"
	"github.com/maxbat99/probax/internal/domain/weather"
)

// Geocoder resolves free text to place candidates.
type Geocoder interface {
	SearchPlaces(ctx context.Context, name string, count int) ([]location.Candidate, error)
}

// StadiumKnowledgeGraph runs one phase of a live stadium search. Returned
// entities are grouped by id in first-appearance order.
type StadiumKnowledgeGraph interface {
	SearchStadiums(ctx context.Context, query string, mode stadium.MatchMode, limit int) ([]stadium.Entity, error)
}

// ForecastProvider returns the hourly forecast for one frame.
type ForecastProvider interface {
	HourlyForecast(ctx context.Context, lat, lon float64, frame weather.Frame) (weather.Forecast, error)
}

// TeamDirectory lists every club a provider knows about.
type TeamDirectory interface {
	ListTeams(ctx context.Context) ([]team.Team, error)
}

// CacheFailureObserver is told when populating the resolution cache fails.
// The failure never reaches the caller of the search.
type CacheFailureObserver interface {
	CacheUpsertFailed(ctx context.Context, entities int, err error)
}
