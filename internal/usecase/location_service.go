package usecase

import (
	"context"
	"fmt"

	"github.com/maxbat99/probax/internal/domain/gazetteer"
	"github.com/maxbat99/probax/internal/domain/location"
	"github.com/maxbat99/probax/internal/platform/logging"
)

// geocodeCandidates is how many places the geocoder is asked for before the
// country hint is applied.
const geocodeCandidates = 10

type GazetteerStatus struct {
	Loaded bool
	Rows   int
	Error  string
}

// LocationService turns sparse venue facts into coordinates: local
// gazetteer first, free-text geocoding second.
type LocationService struct {
	gazetteer gazetteer.Source
	geocoder  Geocoder
	logger    *logging.Logger
}

func NewLocationService(source gazetteer.Source, geocoder Geocoder, logger *logging.Logger) *LocationService {
	if logger == nil {
		logger = logging.Default()
	}
	return &LocationService{
		gazetteer: source,
		geocoder:  geocoder,
		logger:    logger,
	}
}

// Resolve returns found=false with a nil error when neither strategy
// produces a coordinate pair.
func (s *LocationService) Resolve(ctx context.Context, query location.Query) (location.Resolved, bool, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LocationService.Resolve")
	defer span.End()

	if query.IsEmpty() {
		return location.Resolved{}, false, nil
	}

	if resolved, ok := s.resolveLocal(ctx, query); ok {
		return resolved, true, nil
	}

	return s.resolveGeocode(ctx, query)
}

func (s *LocationService) resolveLocal(ctx context.Context, query location.Query) (location.Resolved, bool) {
	if s.gazetteer == nil {
		return location.Resolved{}, false
	}
	records, err := s.gazetteer.Records(ctx)
	if err != nil {
		s.logger.WarnContext(ctx, "gazetteer unavailable, falling back to geocoding", "error", err)
		return location.Resolved{}, false
	}
	best, ok := gazetteer.Best(records, query.Normalized())
	if !ok {
		return location.Resolved{}, false
	}
	return best.Resolved(), true
}

func (s *LocationService) resolveGeocode(ctx context.Context, query location.Query) (location.Resolved, bool, error) {
	if s.geocoder == nil {
		return location.Resolved{}, false, nil
	}
	text := query.FreeText()
	candidates, err := s.geocoder.SearchPlaces(ctx, text, geocodeCandidates)
	if err != nil {
		return location.Resolved{}, false, fmt.Errorf("%w: search %q: %w", ErrGeocoderUnavailable, text, err)
	}

	candidate, ok := location.SelectCandidate(candidates, query.Country)
	if !ok {
		return location.Resolved{}, false, nil
	}
	resolved, ok := candidate.Resolved()
	if !ok {
		return location.Resolved{}, false, nil
	}
	return resolved, true, nil
}

// GazetteerStatus reports whether the local table loads and how many rows
// it holds.
func (s *LocationService) GazetteerStatus(ctx context.Context) GazetteerStatus {
	if s.gazetteer == nil {
		return GazetteerStatus{Error: "gazetteer not configured"}
	}
	records, err := s.gazetteer.Records(ctx)
	if err != nil {
		return GazetteerStatus{Error: err.Error()}
	}
	return GazetteerStatus{Loaded: true, Rows: len(records)}
}
