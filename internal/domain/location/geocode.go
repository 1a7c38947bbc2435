package location

import (
	"strings"

	"github.com/maxbat99/probax/internal/platform/textnorm"
)

// Candidate is one geocoder hit. Lat and Lon are nil when the provider
// omitted them.
type Candidate struct {
	Name    string
	Country string
	Admin1  string
	Admin2  string
	Lat     *float64
	Lon     *float64
}

// SelectCandidate returns the first candidate whose country, admin1 or
// admin2 contains countryHint, or the first candidate when no hint is given
// or nothing matches.
func SelectCandidate(candidates []Candidate, countryHint string) (Candidate, bool) {
	if len(candidates) == 0 {
		return Candidate{}, false
	}
	hint := textnorm.Fold(countryHint)
	if hint != "" {
		for _, c := range candidates {
			if textnorm.Contains(c.Country, hint) || textnorm.Contains(c.Admin1, hint) || textnorm.Contains(c.Admin2, hint) {
				return c, true
			}
		}
	}
	return candidates[0], true
}

// Resolved converts a candidate into a geocode resolution. ok is false when
// a coordinate is missing or out of range.
func (c Candidate) Resolved() (Resolved, bool) {
	if c.Lat == nil || c.Lon == nil || !ValidCoordinates(*c.Lat, *c.Lon) {
		return Resolved{}, false
	}
	metadata := map[string]string{"name": strings.TrimSpace(c.Name)}
	if c.Country != "" {
		metadata["country"] = c.Country
	}
	if c.Admin1 != "" {
		metadata["admin1"] = c.Admin1
	}
	if c.Admin2 != "" {
		metadata["admin2"] = c.Admin2
	}
	return Resolved{Lat: *c.Lat, Lon: *c.Lon, Source: SourceGeocode, Metadata: metadata}, true
}
