package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/maxbat99/probax/internal/domain/team"
	"github.com/maxbat99/probax/internal/platform/cache"
	"github.com/maxbat99/probax/internal/platform/logging"
)

const (
	DefaultTeamSearchLimit  = 20
	DefaultTeamSuggestLimit = 30

	snapshotCacheKey = "team-snapshot"
)

type RebuildResult struct {
	Count       int
	Source      string
	GeneratedAt time.Time
}

// TeamIndexService maintains the offline club directory used for
// autocomplete.
type TeamIndexService struct {
	primary  TeamDirectory
	fallback TeamDirectory
	store    team.SnapshotStore
	cache    *cache.Store[team.Snapshot]
	logger   *logging.Logger
	now      func() time.Time
}

func NewTeamIndexService(primary, fallback TeamDirectory, store team.SnapshotStore, cacheTTL time.Duration, logger *logging.Logger) *TeamIndexService {
	if logger == nil {
		logger = logging.Default()
	}
	return &TeamIndexService{
		primary:  primary,
		fallback: fallback,
		store:    store,
		cache:    cache.NewStore[team.Snapshot](cacheTTL),
		logger:   logger,
		now:      time.Now,
	}
}

// Rebuild lists teams from the primary directory and falls back to the
// secondary one when the primary fails or returns nothing.
func (s *TeamIndexService) Rebuild(ctx context.Context) (RebuildResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamIndexService.Rebuild")
	defer span.End()

	teams, source, err := s.listTeams(ctx)
	if err != nil {
		return RebuildResult{}, err
	}

	snapshot := team.NewSnapshot(teams, source, s.now())
	if err := s.store.Save(ctx, snapshot); err != nil {
		return RebuildResult{}, fmt.Errorf("save team snapshot: %w", err)
	}
	s.cache.Set(ctx, snapshotCacheKey, snapshot)

	s.logger.InfoContext(ctx, "team index rebuilt", "source", source, "count", snapshot.Count)
	return RebuildResult{Count: snapshot.Count, Source: snapshot.Source, GeneratedAt: snapshot.GeneratedAt}, nil
}

func (s *TeamIndexService) listTeams(ctx context.Context) ([]team.Team, string, error) {
	var primaryErr error
	if s.primary != nil {
		teams, err := s.primary.ListTeams(ctx)
		if err == nil && len(teams) > 0 {
			return teams, team.SourceTheSportsDB, nil
		}
		primaryErr = err
		s.logger.WarnContext(ctx, "primary team directory unusable, trying fallback", "teams", len(teams), "error", err)
	}

	if s.fallback == nil {
		if primaryErr != nil {
			return nil, "", fmt.Errorf("%w: %w", ErrTeamDirectoryUnavailable, primaryErr)
		}
		return []team.Team{}, team.SourceTheSportsDB, nil
	}

	teams, err := s.fallback.ListTeams(ctx)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %w", ErrTeamDirectoryUnavailable, errors.Join(primaryErr, err))
	}
	return teams, team.SourceWikidata, nil
}

// Snapshot returns the persisted directory, or ErrNotFound before the first
// rebuild.
func (s *TeamIndexService) Snapshot(ctx context.Context) (team.Snapshot, error) {
	snapshot, err := s.cache.GetOrLoad(ctx, snapshotCacheKey, s.store.Load)
	if err != nil {
		if errors.Is(err, team.ErrSnapshotNotFound) {
			return team.Snapshot{}, fmt.Errorf("%w: team index has not been built", ErrNotFound)
		}
		return team.Snapshot{}, fmt.Errorf("load team snapshot: %w", err)
	}
	return snapshot, nil
}

func (s *TeamIndexService) Search(ctx context.Context, query string, limit int) ([]team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamIndexService.Search")
	defer span.End()

	query = strings.TrimSpace(query)
	if utf8.RuneCountInString(query) < minSearchQueryRunes {
		return nil, fmt.Errorf("%w: query must be at least %d characters", ErrInvalidInput, minSearchQueryRunes)
	}
	if limit < 1 || limit > maxSearchLimit {
		return nil, fmt.Errorf("%w: limit must be between 1 and %d", ErrInvalidInput, maxSearchLimit)
	}

	snapshot, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return team.Search(snapshot.Teams, query, limit), nil
}

func (s *TeamIndexService) Suggest(ctx context.Context, limit int) ([]team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamIndexService.Suggest")
	defer span.End()

	if limit < 1 || limit > maxSearchLimit {
		return nil, fmt.Errorf("%w: limit must be between 1 and %d", ErrInvalidInput, maxSearchLimit)
	}

	snapshot, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return team.Suggest(snapshot.Teams, limit), nil
}
