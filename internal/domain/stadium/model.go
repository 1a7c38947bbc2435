package stadium

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/maxbat99/probax/internal/domain/location"
)

var ErrInvalidEntity = errors.New("invalid stadium entity")

// Entity is a knowledge-graph stadium as stored in the resolution cache.
// EntityID is the cache primary key.
type Entity struct {
	EntityID  string
	Name      string
	Country   string
	Lat       float64
	Lon       float64
	Aliases   []string
	UpdatedAt time.Time
}

// Validate rejects rows that must never be cached. A zero coordinate is
// treated as absent.
func (e Entity) Validate() error {
	if strings.TrimSpace(e.EntityID) == "" {
		return fmt.Errorf("%w: entity id is required", ErrInvalidEntity)
	}
	if strings.TrimSpace(e.Name) == "" {
		return fmt.Errorf("%w: name is required for %s", ErrInvalidEntity, e.EntityID)
	}
	if e.Lat == 0 || e.Lon == 0 {
		return fmt.Errorf("%w: missing coordinates for %s", ErrInvalidEntity, e.EntityID)
	}
	if err := location.CheckCoordinates(e.Lat, e.Lon); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidEntity, err)
	}
	return nil
}

func (e Entity) Resolved() location.Resolved {
	return location.Resolved{
		Lat:    e.Lat,
		Lon:    e.Lon,
		Source: location.SourceLive,
		Metadata: map[string]string{
			"entity_id": e.EntityID,
			"name":      e.Name,
			"country":   e.Country,
		},
	}
}

// NormalizeAliases trims, drops blanks and duplicates, and sorts.
func NormalizeAliases(aliases []string) []string {
	set := make(map[string]struct{}, len(aliases))
	out := make([]string, 0, len(aliases))
	for _, alias := range aliases {
		alias = strings.TrimSpace(alias)
		if alias == "" {
			continue
		}
		if _, ok := set[alias]; ok {
			continue
		}
		set[alias] = struct{}{}
		out = append(out, alias)
	}
	sort.Strings(out)
	return out
}
