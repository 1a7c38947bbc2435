package team

import "strings"

// MajorCountries seeds the head of a suggestion list.
var MajorCountries = []string{
	"England",
	"Spain",
	"Italy",
	"Germany",
	"France",
	"Netherlands",
	"Portugal",
	"Brazil",
	"Argentina",
	"USA",
	"Mexico",
	"Japan",
	"Saudi Arabia",
}

// Search returns up to limit teams whose name contains query,
// case-insensitive, in snapshot order.
func Search(teams []Team, query string, limit int) []Team {
	needle := strings.ToLower(strings.TrimSpace(query))
	if needle == "" || limit <= 0 {
		return []Team{}
	}
	out := make([]Team, 0, min(limit, len(teams)))
	for _, t := range teams {
		if !strings.Contains(strings.ToLower(t.Name), needle) {
			continue
		}
		out = append(out, t)
		if len(out) == limit {
			break
		}
	}
	return out
}

// Suggest mixes clubs from MajorCountries with the rest of the world:
// at most limit/2 from each group, then backfill in snapshot order.
// The result never exceeds limit, has no duplicates and is never padded.
func Suggest(teams []Team, limit int) []Team {
	if limit <= 0 || len(teams) == 0 {
		return []Team{}
	}

	major := make(map[string]struct{}, len(MajorCountries))
	for _, c := range MajorCountries {
		major[strings.ToLower(c)] = struct{}{}
	}

	half := limit / 2
	head := make([]Team, 0, half)
	tail := make([]Team, 0, half)
	for _, t := range teams {
		_, isMajor := major[strings.ToLower(strings.TrimSpace(t.Country))]
		switch {
		case isMajor && len(head) < half:
			head = append(head, t)
		case !isMajor && len(tail) < half:
			tail = append(tail, t)
		}
		if len(head) == half && len(tail) == half {
			break
		}
	}

	out := make([]Team, 0, limit)
	seen := make(map[identity]struct{}, limit)
	add := func(t Team) {
		if len(out) >= limit {
			return
		}
		key := keyOf(t)
		if _, ok := seen[key]; ok {
			return
		}
		seen[key] = struct{}{}
		out = append(out, t)
	}
	for _, t := range head {
		add(t)
	}
	for _, t := range tail {
		add(t)
	}
	for _, t := range teams {
		if len(out) >= limit {
			break
		}
		add(t)
	}
	return out
}
