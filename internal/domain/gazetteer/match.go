package gazetteer

import (
	"sort"
	"strconv"

	"github.com/maxbat99/probax/internal/domain/location"
	"github.com/maxbat99/probax/internal/platform/textnorm"
)

// Match weights. The dataset has no city column so the city hint is
// compared against the league name.
const (
	WeightStadium = 3
	WeightTeam    = 2
	WeightCity    = 1
	WeightCountry = 1
)

// Match is a scored gazetteer row with parsed coordinates.
type Match struct {
	Record Record
	Score  int
	Lat    float64
	Lon    float64
}

func (m Match) Resolved() location.Resolved {
	return location.Resolved{
		Lat:    m.Lat,
		Lon:    m.Lon,
		Source: location.SourceLocal,
		Metadata: map[string]string{
			"stadium": m.Record.Stadium,
			"team":    m.Record.Team,
			"league":  m.Record.League,
			"country": m.Record.Country,
			"score":   strconv.Itoa(m.Score),
		},
	}
}

// Score returns the containment score of r against an already normalized
// query.
func Score(r Record, q location.Query) int {
	score := 0
	if q.Stadium != "" && textnorm.Contains(r.Stadium, q.Stadium) {
		score += WeightStadium
	}
	if q.Team != "" && textnorm.Contains(r.Team, q.Team) {
		score += WeightTeam
	}
	if q.City != "" && textnorm.Contains(r.League, q.City) {
		score += WeightCity
	}
	if q.Country != "" && textnorm.Contains(r.Country, q.Country) {
		score += WeightCountry
	}
	return score
}

// Rank scores every record and returns positive-score candidates with valid
// coordinates, best first. Equal scores keep dataset order.
func Rank(records []Record, q location.Query) []Match {
	q = q.Normalized()
	out := make([]Match, 0, 4)
	for _, r := range records {
		score := Score(r, q)
		if score <= 0 {
			continue
		}
		lat, lon, ok := r.Coordinates()
		if !ok {
			continue
		}
		out = append(out, Match{Record: r, Score: score, Lat: lat, Lon: lon})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})
	return out
}

// Best returns the top-ranked match.
func Best(records []Record, q location.Query) (Match, bool) {
	ranked := Rank(records, q)
	if len(ranked) == 0 {
		return Match{}, false
	}
	return ranked[0], true
}
