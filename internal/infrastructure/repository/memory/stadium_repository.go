package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/maxbat99/probax/internal/domain/stadium"
)

// StadiumRepository is an in-process resolution cache used when no database
// is configured.
type StadiumRepository struct {
	mu    sync.RWMutex
	items map[string]stadium.Entity
}

func NewStadiumRepository(seed []stadium.Entity) *StadiumRepository {
	items := make(map[string]stadium.Entity, len(seed))
	for _, e := range seed {
		items[e.EntityID] = cloneEntity(e)
	}
	return &StadiumRepository{items: items}
}

func (r *StadiumRepository) UpsertMany(_ context.Context, entities []stadium.Entity) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, e := range entities {
		e.Aliases = stadium.NormalizeAliases(e.Aliases)
		r.items[e.EntityID] = cloneEntity(e)
	}
	return nil
}

func (r *StadiumRepository) SearchByName(_ context.Context, query string, limit int) ([]stadium.Entity, error) {
	needle := strings.ToLower(strings.TrimSpace(query))
	if needle == "" || limit <= 0 {
		return []stadium.Entity{}, nil
	}

	r.mu.RLock()
	out := make([]stadium.Entity, 0)
	for _, e := range r.items {
		if strings.Contains(strings.ToLower(e.Name), needle) {
			out = append(out, cloneEntity(e))
		}
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].EntityID < out[j].EntityID
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *StadiumRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.items)
}

func cloneEntity(e stadium.Entity) stadium.Entity {
	e.Aliases = append([]string(nil), e.Aliases...)
	return e
}
