package stadium

import "context"

// Repository is the resolution cache.
type Repository interface {
	// UpsertMany inserts or fully overwrites entities keyed by EntityID.
	UpsertMany(ctx context.Context, entities []Entity) error
	// SearchByName matches the primary name only, case-insensitively.
	SearchByName(ctx context.Context, query string, limit int) ([]Entity, error)
}

// MatchMode selects how a knowledge-graph search compares the query.
type MatchMode int

const (
	// MatchLabelOrAlias is a case-insensitive substring match on the label
	// and every alias.
	MatchLabelOrAlias MatchMode = iota
	// MatchLabelRegex is a case-insensitive regular expression on the
	// label only.
	MatchLabelRegex
)

func (m MatchMode) String() string {
	if m == MatchLabelRegex {
		return "label_regex"
	}
	return "label_or_alias"
}
