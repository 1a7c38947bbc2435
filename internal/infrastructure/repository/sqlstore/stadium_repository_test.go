package sqlstore

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/maxbat99/probax/internal/domain/stadium"
)

func newTestDB(t *testing.T) *sqlx.DB {
	t.Helper()

	db, err := Open(OpenOptions{
		Driver: DriverSQLite,
		DSN:    filepath.Join(t.TempDir(), "probax.db"),
		DBName: "probax-test",
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func TestStadiumRepository_UpsertIsIdempotentAndOverwrites(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewStadiumRepository(newTestDB(t))
	stamp := time.Date(2025, 8, 18, 10, 0, 0, 0, time.UTC)

	first := stadium.Entity{
		EntityID:  "Q11906",
		Name:      "San Siro",
		Country:   "Italy",
		Lat:       45.4781,
		Lon:       9.1240,
		Aliases:   []string{"Stadio Giuseppe Meazza", "Meazza"},
		UpdatedAt: stamp,
	}
	if err := repo.UpsertMany(ctx, []stadium.Entity{first}); err != nil {
		t.Fatalf("first upsert: %v", err)
	}
	if err := repo.UpsertMany(ctx, []stadium.Entity{first}); err != nil {
		t.Fatalf("repeat upsert: %v", err)
	}

	updated := first
	updated.Aliases = []string{"La Scala del calcio"}
	updated.UpdatedAt = stamp.Add(time.Hour)
	if err := repo.UpsertMany(ctx, []stadium.Entity{updated}); err != nil {
		t.Fatalf("overwrite upsert: %v", err)
	}

	got, ok, err := repo.Get(ctx, "Q11906")
	if err != nil || !ok {
		t.Fatalf("get stadium: ok=%v err=%v", ok, err)
	}
	if len(got.Aliases) != 1 || got.Aliases[0] != "La Scala del calcio" {
		t.Fatalf("expected aliases to be replaced, got %v", got.Aliases)
	}
	if !got.UpdatedAt.Equal(updated.UpdatedAt) {
		t.Fatalf("expected updated_at %s, got %s", updated.UpdatedAt, got.UpdatedAt)
	}

	rows, err := repo.SearchByName(ctx, "siro", 10)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected one cached row, got %d", len(rows))
	}
}

func TestStadiumRepository_DuplicateIDsInBatchKeepLast(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewStadiumRepository(newTestDB(t))
	stamp := time.Date(2025, 8, 18, 10, 0, 0, 0, time.UTC)

	err := repo.UpsertMany(ctx, []stadium.Entity{
		{EntityID: "Q1", Name: "Old Name", Lat: 1, Lon: 1, UpdatedAt: stamp},
		{EntityID: "Q1", Name: "New Name", Lat: 2, Lon: 2, UpdatedAt: stamp},
	})
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}

	got, ok, err := repo.Get(ctx, "Q1")
	if err != nil || !ok {
		t.Fatalf("get stadium: ok=%v err=%v", ok, err)
	}
	if got.Name != "New Name" || got.Lat != 2 {
		t.Fatalf("expected last duplicate to win, got %+v", got)
	}
}

func TestStadiumRepository_SearchMatchesNameOnly(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewStadiumRepository(newTestDB(t))
	stamp := time.Date(2025, 8, 18, 10, 0, 0, 0, time.UTC)

	err := repo.UpsertMany(ctx, []stadium.Entity{
		{EntityID: "Q2", Name: "Allianz Arena", Country: "Germany", Lat: 48.2188, Lon: 11.6247, Aliases: []string{"Fussball Arena Munchen"}, UpdatedAt: stamp},
		{EntityID: "Q3", Name: "Allianz Stadium", Country: "Italy", Lat: 45.1096, Lon: 7.6413, Aliases: []string{"Juventus Stadium"}, UpdatedAt: stamp},
		{EntityID: "Q4", Name: "Anfield", Country: "United Kingdom", Lat: 53.4308, Lon: -2.9608, UpdatedAt: stamp},
	})
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}

	rows, err := repo.SearchByName(ctx, "ALLIANZ", 10)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(rows) != 2 || rows[0].EntityID != "Q2" || rows[1].EntityID != "Q3" {
		t.Fatalf("unexpected case-insensitive result: %+v", rows)
	}

	rows, err = repo.SearchByName(ctx, "juventus", 10)
	if err != nil {
		t.Fatalf("search alias: %v", err)
	}
	if len(rows) != 0 {
		t.Fatalf("aliases must not match cached search, got %+v", rows)
	}

	rows, err = repo.SearchByName(ctx, "a", 1)
	if err != nil {
		t.Fatalf("search limited: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected limit to apply, got %d rows", len(rows))
	}
}

func TestStadiumRepository_EmptyBatchIsNoop(t *testing.T) {
	t.Parallel()

	repo := NewStadiumRepository(newTestDB(t))
	if err := repo.UpsertMany(context.Background(), nil); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
}

func TestNormalizeDriver(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"":           DriverSQLite,
		"sqlite3":    DriverSQLite,
		"PostgreSQL": DriverPostgres,
		"postgres":   DriverPostgres,
	}
	for raw, want := range cases {
		got, err := NormalizeDriver(raw)
		if err != nil {
			t.Fatalf("normalize %q: %v", raw, err)
		}
		if got != want {
			t.Fatalf("normalize %q: expected %q, got %q", raw, want, got)
		}
	}
	if _, err := NormalizeDriver("mysql"); err == nil {
		t.Fatalf("expected unsupported driver error")
	}
}
