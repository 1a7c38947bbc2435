package app

import (
	"fmt"
	"regexp"
	"strings"
)

const maxTracedQueryLength = 512

var (
	queryWhitespaceRegex = regexp.MustCompile(`\s+`)
	// valuesListRegex matches a multi-row VALUES list such as the stadium
	// cache batch upsert.
	valuesListRegex = regexp.MustCompile(`(?i)VALUES\s*\([^()]*\)(?:\s*,\s*\([^()]*\))+`)
)

// formatDBQueryForTrace flattens whitespace, folds batch VALUES lists to
// their first row plus a row count, and caps the span attribute length.
func formatDBQueryForTrace(query string) string {
	query = strings.TrimSpace(query)
	if query == "" {
		return query
	}

	normalized := queryWhitespaceRegex.ReplaceAllString(query, " ")
	normalized = valuesListRegex.ReplaceAllStringFunc(normalized, func(list string) string {
		first := list[:strings.Index(list, ")")+1]
		return fmt.Sprintf("%s /* %d rows */", first, strings.Count(list, "("))
	})
	if len(normalized) <= maxTracedQueryLength {
		return normalized
	}

	return normalized[:maxTracedQueryLength] + "..."
}
