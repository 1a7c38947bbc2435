package sqlstore

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/maxbat99/probax/internal/domain/stadium"
	qb "github.com/maxbat99/probax/internal/platform/querybuilder"
)

const upsertStadiumSuffix = `ON CONFLICT (entity_id) DO UPDATE SET
	name = excluded.name,
	country = excluded.country,
	lat = excluded.lat,
	lon = excluded.lon,
	aliases = excluded.aliases,
	updated_at = excluded.updated_at`

// StadiumRepository is the SQL-backed resolution cache. The same statements
// run on PostgreSQL and SQLite.
type StadiumRepository struct {
	db *sqlx.DB
}

func NewStadiumRepository(db *sqlx.DB) *StadiumRepository {
	return &StadiumRepository{db: db}
}

// UpsertMany writes every entity in one statement. Duplicate ids inside a
// batch collapse to the last occurrence since one INSERT cannot touch the
// same conflict row twice.
func (r *StadiumRepository) UpsertMany(ctx context.Context, entities []stadium.Entity) error {
	if len(entities) == 0 {
		return nil
	}

	position := make(map[string]int, len(entities))
	rows := make([]stadiumTableModel, 0, len(entities))
	for _, entity := range entities {
		row, err := stadiumModelFromEntity(entity)
		if err != nil {
			return err
		}
		if idx, ok := position[row.EntityID]; ok {
			rows[idx] = row
			continue
		}
		position[row.EntityID] = len(rows)
		rows = append(rows, row)
	}

	query, args, err := qb.InsertModels(stadiumCacheTable, rows, upsertStadiumSuffix)
	if err != nil {
		return fmt.Errorf("build upsert stadiums query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, r.db.Rebind(query), args...); err != nil {
		return fmt.Errorf("upsert stadiums: %w", err)
	}
	return nil
}

func (r *StadiumRepository) SearchByName(ctx context.Context, query string, limit int) ([]stadium.Entity, error) {
	query = strings.TrimSpace(query)
	if query == "" || limit <= 0 {
		return []stadium.Entity{}, nil
	}

	sqlQuery, args, err := qb.Select(qb.Columns(stadiumTableModel{})...).From(stadiumCacheTable).
		Where(qb.ContainsFold("name", query)).
		OrderBy("name", "entity_id").
		Limit(limit).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build search stadiums query: %w", err)
	}

	var rows []stadiumTableModel
	if err := r.db.SelectContext(ctx, &rows, r.db.Rebind(sqlQuery), args...); err != nil {
		if isNotFound(err) {
			return []stadium.Entity{}, nil
		}
		return nil, fmt.Errorf("search stadiums: %w", err)
	}

	out := make([]stadium.Entity, 0, len(rows))
	for _, row := range rows {
		entity, err := row.toEntity()
		if err != nil {
			return nil, err
		}
		out = append(out, entity)
	}
	return out, nil
}

// Get loads a single cached entity by id.
func (r *StadiumRepository) Get(ctx context.Context, entityID string) (stadium.Entity, bool, error) {
	query, args, err := qb.Select(qb.Columns(stadiumTableModel{})...).From(stadiumCacheTable).
		Where(qb.Eq("entity_id", entityID)).
		ToSQL()
	if err != nil {
		return stadium.Entity{}, false, fmt.Errorf("build get stadium query: %w", err)
	}

	var row stadiumTableModel
	if err := r.db.GetContext(ctx, &row, r.db.Rebind(query), args...); err != nil {
		if isNotFound(err) {
			return stadium.Entity{}, false, nil
		}
		return stadium.Entity{}, false, fmt.Errorf("get stadium %s: %w", entityID, err)
	}

	entity, err := row.toEntity()
	if err != nil {
		return stadium.Entity{}, false, err
	}
	return entity, true, nil
}
