// Package textnorm holds the free-text normalization shared by the
// resolvers and the team index.
package textnorm

import "strings"

// Fold lower-cases s, trims it and collapses internal whitespace runs to a
// single space.
func Fold(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// Contains reports whether the folded haystack contains the folded needle.
// An empty needle never matches.
func Contains(haystack, needle string) bool {
	n := Fold(needle)
	if n == "" {
		return false
	}
	return strings.Contains(Fold(haystack), n)
}
