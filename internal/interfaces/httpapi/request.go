package httpapi

import (
	"net/http"
	"strings"

	"github.com/maxbat99/probax/internal/domain/location"
)

type locationRequest struct {
	Stadium string `json:"stadium" validate:"omitempty,max=200"`
	Team    string `json:"team" validate:"omitempty,max=200"`
	City    string `json:"city" validate:"omitempty,max=200"`
	Country string `json:"country" validate:"omitempty,max=200"`
}

func (l locationRequest) query() location.Query {
	return location.Query{
		Stadium: l.Stadium,
		Team:    l.Team,
		City:    l.City,
		Country: l.Country,
	}
}

func locationFromQuery(r *http.Request) locationRequest {
	q := r.URL.Query()
	return locationRequest{
		Stadium: strings.TrimSpace(q.Get("stadium")),
		Team:    strings.TrimSpace(q.Get("team")),
		City:    strings.TrimSpace(q.Get("city")),
		Country: strings.TrimSpace(q.Get("country")),
	}
}

type searchRequest struct {
	Query string `validate:"required,min=2,max=200"`
	Limit int    `validate:"min=1,max=100"`
}

type coordsRequest struct {
	Lat float64 `validate:"min=-90,max=90"`
	Lon float64 `validate:"min=-180,max=180"`
}

type weatherGlobalRequest struct {
	locationRequest
	KickoffISO string `validate:"required"`
	TZMode     string `validate:"omitempty,oneof=utc local both"`
}

type limitRequest struct {
	Limit int `validate:"min=1,max=100"`
}

type predictRequest struct {
	Home       string             `json:"home" validate:"required,max=200"`
	Away       string             `json:"away" validate:"required,max=200"`
	Stadium    string             `json:"stadium" validate:"omitempty,max=200"`
	Team       string             `json:"team" validate:"omitempty,max=200"`
	City       string             `json:"city" validate:"omitempty,max=200"`
	Country    string             `json:"country" validate:"omitempty,max=200"`
	KickoffISO string             `json:"kickoff_iso" validate:"omitempty,max=40"`
	TZMode     string             `json:"tz_mode" validate:"omitempty,oneof=utc local both"`
	Features   map[string]float64 `json:"features" validate:"omitempty,dive,min=0,max=1"`
}
