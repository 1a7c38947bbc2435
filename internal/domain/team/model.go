package team

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"
)

// ErrSnapshotNotFound is returned by a SnapshotStore before the first rebuild.
var ErrSnapshotNotFound = errors.New("team snapshot not found")

const (
	SourceTheSportsDB = "thesportsdb"
	SourceWikidata    = "wikidata"
)

// Team is one club of the directory. ID carries a provider prefix
// ("tsd:" or "wd:").
type Team struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	League  string `json:"league,omitempty"`
	Country string `json:"country,omitempty"`
}

type Snapshot struct {
	Count       int       `json:"count"`
	Teams       []Team    `json:"teams"`
	Source      string    `json:"source"`
	GeneratedAt time.Time `json:"generated_at"`
}

// SnapshotStore persists the last rebuilt directory.
type SnapshotStore interface {
	Save(ctx context.Context, snapshot Snapshot) error
	Load(ctx context.Context) (Snapshot, error)
}

// NewSnapshot dedupes, sorts and stamps teams.
func NewSnapshot(teams []Team, source string, now time.Time) Snapshot {
	out := SortTeams(Dedupe(teams))
	return Snapshot{
		Count:       len(out),
		Teams:       out,
		Source:      source,
		GeneratedAt: now.UTC(),
	}
}

type identity struct {
	name    string
	country string
}

func keyOf(t Team) identity {
	return identity{
		name:    strings.ToLower(strings.TrimSpace(t.Name)),
		country: strings.ToLower(strings.TrimSpace(t.Country)),
	}
}

// Dedupe keeps the first team for each (name, country) pair, case-insensitive.
// Teams without a name are dropped.
func Dedupe(teams []Team) []Team {
	seen := make(map[identity]struct{}, len(teams))
	out := make([]Team, 0, len(teams))
	for _, t := range teams {
		key := keyOf(t)
		if key.name == "" {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, t)
	}
	return out
}

// SortTeams orders by country then name; teams without a country go last.
func SortTeams(teams []Team) []Team {
	out := append([]Team(nil), teams...)
	sort.SliceStable(out, func(i, j int) bool {
		ci, cj := strings.TrimSpace(out[i].Country), strings.TrimSpace(out[j].Country)
		if (ci == "") != (cj == "") {
			return cj == ""
		}
		if ci != cj {
			return ci < cj
		}
		return out[i].Name < out[j].Name
	})
	return out
}
