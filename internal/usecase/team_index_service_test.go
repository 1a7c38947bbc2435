package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/maxbat99/probax/internal/domain/team"
	teammock "github.com/maxbat99/probax/internal/mocks/domain/team"
	usecasemock "github.com/maxbat99/probax/internal/mocks/usecase"
	"github.com/stretchr/testify/mock"
)

func TestTeamIndexService_Rebuild_UsesPrimary(t *testing.T) {
	t.Parallel()

	primary := usecasemock.NewTeamDirectory(t)
	fallback := usecasemock.NewTeamDirectory(t)
	store := teammock.NewSnapshotStore(t)

	primary.On("ListTeams", mock.Anything).Return([]team.Team{
		{ID: "tsd:133604", Name: "Juventus", League: "Italian Serie A", Country: "Italy"},
		{ID: "tsd:133602", Name: "Arsenal", League: "English Premier League", Country: "England"},
		{ID: "tsd:133604b", Name: "JUVENTUS", Country: "italy"},
	}, nil).Once()
	store.
		On("Save", mock.Anything, mock.MatchedBy(func(s team.Snapshot) bool {
			return s.Count == 2 && s.Source == team.SourceTheSportsDB && s.Teams[0].Name == "Arsenal"
		})).
		Return(nil).
		Once()

	svc := NewTeamIndexService(primary, fallback, store, time.Minute, nil)
	got, err := svc.Rebuild(context.Background())
	if err != nil {
		t.Fatalf("rebuild: %v", err)
	}
	if got.Count != 2 || got.Source != team.SourceTheSportsDB {
		t.Fatalf("unexpected result %+v", got)
	}

	teams, err := svc.Search(context.Background(), "juv", DefaultTeamSearchLimit)
	if err != nil {
		t.Fatalf("search after rebuild: %v", err)
	}
	if len(teams) != 1 || teams[0].ID != "tsd:133604" {
		t.Fatalf("expected first duplicate to survive, got %+v", teams)
	}
}

func TestTeamIndexService_Rebuild_FallsBackOnEmptyPrimary(t *testing.T) {
	t.Parallel()

	primary := usecasemock.NewTeamDirectory(t)
	fallback := usecasemock.NewTeamDirectory(t)
	store := teammock.NewSnapshotStore(t)

	primary.On("ListTeams", mock.Anything).Return([]team.Team{}, nil).Once()
	fallback.On("ListTeams", mock.Anything).Return([]team.Team{{ID: "wd:Q1422", Name: "Juventus FC", Country: "Italy"}}, nil).Once()
	store.On("Save", mock.Anything, mock.Anything).Return(nil).Once()

	svc := NewTeamIndexService(primary, fallback, store, time.Minute, nil)
	got, err := svc.Rebuild(context.Background())
	if err != nil {
		t.Fatalf("rebuild: %v", err)
	}
	if got.Source != team.SourceWikidata || got.Count != 1 {
		t.Fatalf("unexpected result %+v", got)
	}
}

func TestTeamIndexService_Rebuild_BothDirectoriesFail(t *testing.T) {
	t.Parallel()

	primary := usecasemock.NewTeamDirectory(t)
	fallback := usecasemock.NewTeamDirectory(t)

	primary.On("ListTeams", mock.Anything).Return(nil, errors.New("status=503")).Once()
	fallback.On("ListTeams", mock.Anything).Return(nil, errors.New("status=429")).Once()

	svc := NewTeamIndexService(primary, fallback, teammock.NewSnapshotStore(t), time.Minute, nil)
	_, err := svc.Rebuild(context.Background())
	if !errors.Is(err, ErrTeamDirectoryUnavailable) || !errors.Is(err, ErrDependencyUnavailable) {
		t.Fatalf("expected ErrTeamDirectoryUnavailable, got %v", err)
	}
}

func TestTeamIndexService_SearchBeforeRebuild(t *testing.T) {
	t.Parallel()

	store := teammock.NewSnapshotStore(t)
	store.On("Load", mock.Anything).Return(team.Snapshot{}, team.ErrSnapshotNotFound).Once()

	svc := NewTeamIndexService(nil, nil, store, time.Minute, nil)
	if _, err := svc.Search(context.Background(), "milan", 20); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestTeamIndexService_SuggestLoadsSnapshotOnce(t *testing.T) {
	t.Parallel()

	store := teammock.NewSnapshotStore(t)
	store.On("Load", mock.Anything).Return(team.Snapshot{
		Count: 3,
		Teams: []team.Team{
			{Name: "Boca Juniors", Country: "Argentina"},
			{Name: "Al Ahly", Country: "Egypt"},
			{Name: "Real Madrid", Country: "Spain"},
		},
	}, nil).Once()

	svc := NewTeamIndexService(nil, nil, store, time.Minute, nil)
	for i := 0; i < 2; i++ {
		got, err := svc.Suggest(context.Background(), DefaultTeamSuggestLimit)
		if err != nil {
			t.Fatalf("suggest: %v", err)
		}
		if len(got) != 3 {
			t.Fatalf("expected 3 suggestions without padding, got %d", len(got))
		}
	}

	if _, err := svc.Suggest(context.Background(), 0); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if _, err := svc.Search(context.Background(), "r", 20); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for short query, got %v", err)
	}
}
