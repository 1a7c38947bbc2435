package location

import (
	"fmt"
	"strings"

	"github.com/maxbat99/probax/internal/platform/textnorm"
)

// Source records which resolution strategy produced a coordinate pair.
type Source string

const (
	SourceLocal   Source = "local"
	SourceLive    Source = "live"
	SourceGeocode Source = "geocode"
)

// Query carries the sparse match facts a caller knows about a venue.
type Query struct {
	Stadium string
	Team    string
	City    string
	Country string
}

// Normalized folds case and whitespace on every field.
func (q Query) Normalized() Query {
	return Query{
		Stadium: textnorm.Fold(q.Stadium),
		Team:    textnorm.Fold(q.Team),
		City:    textnorm.Fold(q.City),
		Country: textnorm.Fold(q.Country),
	}
}

func (q Query) IsEmpty() bool {
	n := q.Normalized()
	return n.Stadium == "" && n.Team == "" && n.City == "" && n.Country == ""
}

// FreeText joins the non-empty fields in stadium, team, city, country order.
func (q Query) FreeText() string {
	parts := make([]string, 0, 4)
	for _, v := range []string{q.Stadium, q.Team, q.City, q.Country} {
		if v = strings.TrimSpace(v); v != "" {
			parts = append(parts, v)
		}
	}
	return strings.Join(parts, " ")
}

// Resolved is a coordinate pair plus where it came from. It is never
// persisted.
type Resolved struct {
	Lat      float64
	Lon      float64
	Source   Source
	Metadata map[string]string
}

// ValidCoordinates reports whether lat and lon are inside WGS84 bounds.
func ValidCoordinates(lat, lon float64) bool {
	return lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180
}

func CheckCoordinates(lat, lon float64) error {
	if !ValidCoordinates(lat, lon) {
		return fmt.Errorf("coordinates out of range: lat=%v lon=%v", lat, lon)
	}
	return nil
}
