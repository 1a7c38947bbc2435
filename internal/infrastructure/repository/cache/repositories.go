package cache

import (
	"context"
	"strconv"
	"strings"

	"github.com/maxbat99/probax/internal/domain/stadium"
	basecache "github.com/maxbat99/probax/internal/platform/cache"
)

const stadiumSearchPrefix = "stadium:search:"

// StadiumRepository is a read-through cache in front of the resolution
// cache table. Any upsert drops every cached search.
type StadiumRepository struct {
	next  stadium.Repository
	cache *basecache.Store[[]stadium.Entity]
}

func NewStadiumRepository(next stadium.Repository, cache *basecache.Store[[]stadium.Entity]) *StadiumRepository {
	return &StadiumRepository{next: next, cache: cache}
}

func (r *StadiumRepository) SearchByName(ctx context.Context, query string, limit int) ([]stadium.Entity, error) {
	key := stadiumSearchPrefix + strings.ToLower(strings.TrimSpace(query)) + ":" + strconv.Itoa(limit)
	items, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) ([]stadium.Entity, error) {
		items, err := r.next.SearchByName(ctx, query, limit)
		if err != nil {
			return nil, err
		}
		return cloneEntities(items), nil
	})
	if err != nil {
		return nil, err
	}

	return cloneEntities(items), nil
}

func (r *StadiumRepository) UpsertMany(ctx context.Context, entities []stadium.Entity) error {
	if err := r.next.UpsertMany(ctx, entities); err != nil {
		return err
	}
	r.cache.DeletePrefix(ctx, stadiumSearchPrefix)
	return nil
}

func cloneEntities(items []stadium.Entity) []stadium.Entity {
	out := make([]stadium.Entity, len(items))
	for i, item := range items {
		item.Aliases = append([]string(nil), item.Aliases...)
		out[i] = item
	}
	return out
}
