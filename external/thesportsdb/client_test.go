package thesportsdb

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	jsoniter "github.com/json-iterator/go"
	"github.com/maxbat99/probax/internal/platform/upstream"
)

func newDirectoryServer(t *testing.T, failLeague string) *httptest.Server {
	t.Helper()

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasSuffix(r.URL.Path, "/secret/all_leagues.php"):
			_ = jsoniter.NewEncoder(w).Encode(map[string]any{
				"leagues": []map[string]string{
					{"idLeague": "4332", "strLeague": "Italian Serie A", "strSport": "Soccer"},
					{"idLeague": "4387", "strLeague": "NBA", "strSport": "Basketball"},
					{"idLeague": "4328", "strLeague": "English Premier League", "strSport": "Soccer"},
				},
			})
		case strings.HasSuffix(r.URL.Path, "/secret/lookup_all_teams.php"):
			id := r.URL.Query().Get("id")
			if id == "4387" {
				t.Fatalf("non-soccer league must not be listed")
			}
			if id == failLeague {
				http.Error(w, "upstream down", http.StatusBadGateway)
				return
			}
			teams := map[string][]map[string]string{
				"4332": {
					{"idTeam": "133604", "strTeam": "Juventus", "strLeague": "Italian Serie A", "strCountry": "Italy"},
					{"idTeam": "0", "strTeam": ""},
				},
				"4328": {
					{"idTeam": "133602", "strTeam": "Arsenal", "strLeague": "English Premier League", "strCountry": "England"},
					{"idTeam": "133610", "strTeam": "Chelsea", "strLeague": "English Premier League", "strCountry": " ", "strTeamShort": "CHE"},
				},
			}
			_ = jsoniter.NewEncoder(w).Encode(map[string]any{"teams": teams[id]})
		default:
			http.NotFound(w, r)
		}
	}))
}

func TestClient_ListTeams(t *testing.T) {
	t.Parallel()

	server := newDirectoryServer(t, "")
	defer server.Close()

	client := NewClient(ClientConfig{HTTPClient: server.Client(), BaseURL: server.URL + "/", APIKey: "secret", Workers: 2})
	got, err := client.ListTeams(context.Background())
	if err != nil {
		t.Fatalf("list teams: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 teams, got %d: %+v", len(got), got)
	}
	if got[0].ID != "tsd:133604" || got[1].ID != "tsd:133602" {
		t.Fatalf("expected league order to be kept, got %s, %s", got[0].ID, got[1].ID)
	}
	if got[0].Country != "Italy" || got[0].League != "Italian Serie A" {
		t.Fatalf("unexpected mapping %+v", got[0])
	}
	if got[2].Country != "CHE" {
		t.Fatalf("expected short code as country fallback, got %+v", got[2])
	}
}

func TestClient_ListTeams_LeagueFailure(t *testing.T) {
	t.Parallel()

	server := newDirectoryServer(t, "4328")
	defer server.Close()

	client := NewClient(ClientConfig{HTTPClient: server.Client(), BaseURL: server.URL, APIKey: "secret"})
	_, err := client.ListTeams(context.Background())
	var statusErr *upstream.StatusError
	if !errors.As(err, &statusErr) || statusErr.StatusCode != http.StatusBadGateway {
		t.Fatalf("expected 502 status error, got %v", err)
	}
}

func TestNewClient_DefaultsToPublicKey(t *testing.T) {
	t.Parallel()

	client := NewClient(ClientConfig{})
	if client.baseURL != DefaultBaseURL+"/3" {
		t.Fatalf("unexpected base url %s", client.baseURL)
	}
}
