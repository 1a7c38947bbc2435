package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/maxbat99/probax/internal/domain/location"
	"github.com/maxbat99/probax/internal/domain/stadium"
	"github.com/maxbat99/probax/internal/platform/logging"
)

const (
	minSearchQueryRunes = 2
	maxSearchLimit      = 100
	DefaultStadiumLimit = 10
)

// StadiumService resolves stadium names against the knowledge graph and
// keeps the resolution cache populated as a side effect.
type StadiumService struct {
	graph    StadiumKnowledgeGraph
	repo     stadium.Repository
	observer CacheFailureObserver
	logger   *logging.Logger
	now      func() time.Time
}

func NewStadiumService(graph StadiumKnowledgeGraph, repo stadium.Repository, observer CacheFailureObserver, logger *logging.Logger) *StadiumService {
	if logger == nil {
		logger = logging.Default()
	}
	if observer == nil {
		observer = LogCacheFailureObserver{Logger: logger}
	}
	return &StadiumService{
		graph:    graph,
		repo:     repo,
		observer: observer,
		logger:   logger,
		now:      time.Now,
	}
}

// LiveSearch queries the knowledge graph by label or alias, retrying with a
// label regex only when the first pass returns nothing. Results are upserted
// into the cache; a cache failure is reported to the observer and ignored.
func (s *StadiumService) LiveSearch(ctx context.Context, query string, limit int) ([]stadium.Entity, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StadiumService.LiveSearch")
	defer span.End()

	query, err := validateSearch(query, limit)
	if err != nil {
		return nil, err
	}

	entities, err := s.searchGraph(ctx, query, stadium.MatchLabelOrAlias, limit)
	if err != nil {
		return nil, err
	}
	if len(entities) == 0 {
		entities, err = s.searchGraph(ctx, query, stadium.MatchLabelRegex, limit)
		if err != nil {
			return nil, err
		}
	}

	if len(entities) > 0 && s.repo != nil {
		if err := s.repo.UpsertMany(ctx, entities); err != nil {
			s.observer.CacheUpsertFailed(ctx, len(entities), err)
		}
	}
	return entities, nil
}

func (s *StadiumService) searchGraph(ctx context.Context, query string, mode stadium.MatchMode, limit int) ([]stadium.Entity, error) {
	found, err := s.graph.SearchStadiums(ctx, query, mode, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: %s search %q: %w", ErrKnowledgeGraphUnavailable, mode, query, err)
	}

	now := s.now().UTC()
	out := make([]stadium.Entity, 0, len(found))
	for _, entity := range found {
		entity.Aliases = stadium.NormalizeAliases(entity.Aliases)
		entity.UpdatedAt = now
		if err := entity.Validate(); err != nil {
			s.logger.DebugContext(ctx, "drop knowledge graph entity", "entity_id", entity.EntityID, "error", err)
			continue
		}
		out = append(out, entity)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

// CachedSearch matches the primary name only. Aliases are not searched.
func (s *StadiumService) CachedSearch(ctx context.Context, query string, limit int) ([]stadium.Entity, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StadiumService.CachedSearch")
	defer span.End()

	query, err := validateSearch(query, limit)
	if err != nil {
		return nil, err
	}
	if s.repo == nil {
		return []stadium.Entity{}, nil
	}

	entities, err := s.repo.SearchByName(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("search cached stadiums: %w", err)
	}
	return entities, nil
}

// Locate resolves a stadium name to coordinates from the cache, then from
// the knowledge graph.
func (s *StadiumService) Locate(ctx context.Context, name string) (location.Resolved, bool, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StadiumService.Locate")
	defer span.End()

	cached, err := s.CachedSearch(ctx, name, 1)
	if err != nil {
		return location.Resolved{}, false, err
	}
	if len(cached) > 0 {
		return cached[0].Resolved(), true, nil
	}

	live, err := s.LiveSearch(ctx, name, DefaultStadiumLimit)
	if err != nil {
		return location.Resolved{}, false, err
	}
	if len(live) == 0 {
		return location.Resolved{}, false, nil
	}
	return live[0].Resolved(), true, nil
}

func validateSearch(query string, limit int) (string, error) {
	query = strings.TrimSpace(query)
	if utf8.RuneCountInString(query) < minSearchQueryRunes {
		return "", fmt.Errorf("%w: query must be at least %d characters", ErrInvalidInput, minSearchQueryRunes)
	}
	if limit < 1 || limit > maxSearchLimit {
		return "", fmt.Errorf("%w: limit must be between 1 and %d", ErrInvalidInput, maxSearchLimit)
	}
	return query, nil
}

// LogCacheFailureObserver logs cache failures at warn level.
type LogCacheFailureObserver struct {
	Logger *logging.Logger
}

func (o LogCacheFailureObserver) CacheUpsertFailed(ctx context.Context, entities int, err error) {
	o.Logger.WarnContext(ctx, "stadium cache upsert failed", "entities", entities, "error", err)
}
