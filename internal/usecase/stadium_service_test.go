package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/maxbat99/probax/internal/domain/location"
	"github.com/maxbat99/probax/internal/domain/stadium"
	stadiummock "github.com/maxbat99/probax/internal/mocks/domain/stadium"
	usecasemock "github.com/maxbat99/probax/internal/mocks/usecase"
	"github.com/stretchr/testify/mock"
)

func TestStadiumService_LiveSearch_FallsBackToRegexAndCaches(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	graph := usecasemock.NewStadiumKnowledgeGraph(t)
	repo := stadiummock.NewRepository(t)
	observer := usecasemock.NewCacheFailureObserver(t)

	graph.On("SearchStadiums", mock.Anything, "meazza", stadium.MatchLabelOrAlias, 10).Return([]stadium.Entity{}, nil).Once()
	graph.On("SearchStadiums", mock.Anything, "meazza", stadium.MatchLabelRegex, 10).Return([]stadium.Entity{
		{EntityID: "Q7284", Name: "San Siro", Country: "Italy", Lat: 45.4781, Lon: 9.1240, Aliases: []string{"Stadio Giuseppe Meazza", "Meazza", "Meazza"}},
		{EntityID: "Q999", Name: "Null Island Arena", Lat: 0, Lon: 0},
	}, nil).Once()
	repo.
		On("UpsertMany", mock.Anything, mock.MatchedBy(func(entities []stadium.Entity) bool {
			return len(entities) == 1 && entities[0].EntityID == "Q7284"
		})).
		Return(nil).
		Once()

	svc := NewStadiumService(graph, repo, observer, nil)
	fixed := time.Date(2026, 10, 1, 8, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }

	got, err := svc.LiveSearch(ctx, "  meazza ", 10)
	if err != nil {
		t.Fatalf("live search: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected zero-coordinate entity to be dropped, got %d", len(got))
	}
	if want := []string{"Meazza", "Stadio Giuseppe Meazza"}; len(got[0].Aliases) != 2 || got[0].Aliases[0] != want[0] || got[0].Aliases[1] != want[1] {
		t.Fatalf("expected sorted unique aliases, got %v", got[0].Aliases)
	}
	if !got[0].UpdatedAt.Equal(fixed) {
		t.Fatalf("expected updated_at stamp, got %v", got[0].UpdatedAt)
	}
}

func TestStadiumService_LiveSearch_CacheFailureDoesNotFailSearch(t *testing.T) {
	t.Parallel()

	graph := usecasemock.NewStadiumKnowledgeGraph(t)
	repo := stadiummock.NewRepository(t)
	observer := usecasemock.NewCacheFailureObserver(t)
	cacheErr := errors.New("database is locked")

	graph.On("SearchStadiums", mock.Anything, "san siro", stadium.MatchLabelOrAlias, 5).Return([]stadium.Entity{
		{EntityID: "Q7284", Name: "San Siro", Country: "Italy", Lat: 45.4781, Lon: 9.1240},
	}, nil).Once()
	repo.On("UpsertMany", mock.Anything, mock.Anything).Return(cacheErr).Once()
	observer.On("CacheUpsertFailed", mock.Anything, 1, cacheErr).Return().Once()

	svc := NewStadiumService(graph, repo, observer, nil)
	got, err := svc.LiveSearch(context.Background(), "san siro", 5)
	if err != nil {
		t.Fatalf("expected search to succeed, got %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 entity, got %d", len(got))
	}
}

func TestStadiumService_LiveSearch_GraphFailure(t *testing.T) {
	t.Parallel()

	graph := usecasemock.NewStadiumKnowledgeGraph(t)
	graph.On("SearchStadiums", mock.Anything, "wembley", stadium.MatchLabelOrAlias, 10).Return(nil, errors.New("status=429")).Once()

	svc := NewStadiumService(graph, stadiummock.NewRepository(t), usecasemock.NewCacheFailureObserver(t), nil)
	_, err := svc.LiveSearch(context.Background(), "wembley", 10)
	if !errors.Is(err, ErrKnowledgeGraphUnavailable) || !errors.Is(err, ErrDependencyUnavailable) {
		t.Fatalf("expected ErrKnowledgeGraphUnavailable, got %v", err)
	}
}

func TestStadiumService_ValidatesInput(t *testing.T) {
	t.Parallel()

	svc := NewStadiumService(usecasemock.NewStadiumKnowledgeGraph(t), stadiummock.NewRepository(t), nil, nil)
	cases := []struct {
		query string
		limit int
	}{
		{query: "a", limit: 10},
		{query: "  ", limit: 10},
		{query: "wembley", limit: 0},
		{query: "wembley", limit: 101},
	}
	for _, tc := range cases {
		if _, err := svc.LiveSearch(context.Background(), tc.query, tc.limit); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("live %q/%d: expected ErrInvalidInput, got %v", tc.query, tc.limit, err)
		}
		if _, err := svc.CachedSearch(context.Background(), tc.query, tc.limit); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("cached %q/%d: expected ErrInvalidInput, got %v", tc.query, tc.limit, err)
		}
	}
}

func TestStadiumService_Locate_PrefersCache(t *testing.T) {
	t.Parallel()

	repo := stadiummock.NewRepository(t)
	repo.On("SearchByName", mock.Anything, "San Siro", 1).Return([]stadium.Entity{
		{EntityID: "Q7284", Name: "San Siro", Country: "Italy", Lat: 45.4781, Lon: 9.1240},
	}, nil).Once()

	svc := NewStadiumService(usecasemock.NewStadiumKnowledgeGraph(t), repo, nil, nil)
	got, found, err := svc.Locate(context.Background(), "San Siro")
	if err != nil || !found {
		t.Fatalf("expected cached hit, got found=%v err=%v", found, err)
	}
	if got.Source != location.SourceLive || got.Metadata["entity_id"] != "Q7284" {
		t.Fatalf("unexpected resolution %+v", got)
	}
}

func TestStadiumService_Locate_FallsBackToLiveSearch(t *testing.T) {
	t.Parallel()

	graph := usecasemock.NewStadiumKnowledgeGraph(t)
	repo := stadiummock.NewRepository(t)
	repo.On("SearchByName", mock.Anything, "Anfield", 1).Return([]stadium.Entity{}, nil).Once()
	graph.On("SearchStadiums", mock.Anything, "Anfield", stadium.MatchLabelOrAlias, DefaultStadiumLimit).Return([]stadium.Entity{
		{EntityID: "Q180151", Name: "Anfield", Country: "United Kingdom", Lat: 53.4308, Lon: -2.9608},
	}, nil).Once()
	repo.On("UpsertMany", mock.Anything, mock.Anything).Return(nil).Once()

	svc := NewStadiumService(graph, repo, nil, nil)
	got, found, err := svc.Locate(context.Background(), "Anfield")
	if err != nil || !found {
		t.Fatalf("expected live hit, got found=%v err=%v", found, err)
	}
	if got.Lat != 53.4308 {
		t.Fatalf("unexpected lat %v", got.Lat)
	}
}
