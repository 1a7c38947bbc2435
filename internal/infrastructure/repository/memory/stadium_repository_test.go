package memory

import (
	"context"
	"testing"

	"github.com/maxbat99/probax/internal/domain/stadium"
	"github.com/maxbat99/probax/internal/domain/team"
)

func TestStadiumRepository_UpsertAndSearch(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewStadiumRepository(nil)

	err := repo.UpsertMany(ctx, []stadium.Entity{
		{EntityID: "Q2", Name: "Allianz Arena", Lat: 48.2, Lon: 11.6, Aliases: []string{"b", "a", "a"}},
		{EntityID: "Q3", Name: "Allianz Stadium", Lat: 45.1, Lon: 7.6, Aliases: []string{"Juventus Stadium"}},
	})
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if err := repo.UpsertMany(ctx, []stadium.Entity{{EntityID: "Q2", Name: "Allianz Arena", Lat: 48.2, Lon: 11.6}}); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	if repo.Len() != 2 {
		t.Fatalf("expected 2 rows, got %d", repo.Len())
	}

	rows, err := repo.SearchByName(ctx, "allianz", 10)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(rows) != 2 || rows[0].EntityID != "Q2" {
		t.Fatalf("unexpected rows: %+v", rows)
	}
	if len(rows[0].Aliases) != 0 {
		t.Fatalf("expected overwrite to clear aliases, got %v", rows[0].Aliases)
	}

	rows, _ = repo.SearchByName(ctx, "juventus", 10)
	if len(rows) != 0 {
		t.Fatalf("aliases must not match, got %+v", rows)
	}
}

func TestSnapshotStore_LoadBeforeSave(t *testing.T) {
	t.Parallel()

	store := NewSnapshotStore()
	if _, err := store.Load(context.Background()); err != team.ErrSnapshotNotFound {
		t.Fatalf("expected ErrSnapshotNotFound, got %v", err)
	}

	if err := store.Save(context.Background(), team.Snapshot{Count: 1, Teams: []team.Team{{Name: "Inter"}}}); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := store.Load(context.Background())
	if err != nil || got.Count != 1 {
		t.Fatalf("load: %+v %v", got, err)
	}
}
