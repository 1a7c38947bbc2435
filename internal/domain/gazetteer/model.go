package gazetteer

import (
	"context"
	"strconv"
	"strings"

	"github.com/maxbat99/probax/internal/domain/location"
)

// Record is one row of the local stadium table. Coordinates stay raw so a
// malformed value disqualifies the row only when it would be selected.
type Record struct {
	Stadium string
	Team    string
	League  string
	Country string
	LatRaw  string
	LonRaw  string
}

// Coordinates parses the raw pair. ok is false for non-numeric or
// out-of-range values.
func (r Record) Coordinates() (lat, lon float64, ok bool) {
	lat, err := strconv.ParseFloat(strings.TrimSpace(r.LatRaw), 64)
	if err != nil {
		return 0, 0, false
	}
	lon, err = strconv.ParseFloat(strings.TrimSpace(r.LonRaw), 64)
	if err != nil {
		return 0, 0, false
	}
	if !location.ValidCoordinates(lat, lon) {
		return 0, 0, false
	}
	return lat, lon, true
}

// Source loads the gazetteer rows in dataset order.
type Source interface {
	Records(ctx context.Context) ([]Record, error)
}
