package team

import (
	"fmt"
	"testing"
	"time"
)

func TestNewSnapshot_DedupesAndSorts(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.FixedZone("CEST", 2*3600))
	snapshot := NewSnapshot([]Team{
		{ID: "tsd:1", Name: "Inter", Country: "Italy"},
		{ID: "tsd:2", Name: "Santos", Country: "Brazil"},
		{ID: "wd:Q1", Name: "Nomad FC"},
		{ID: "tsd:3", Name: "INTER", Country: "italy"},
		{ID: "tsd:4", Name: "Inter", Country: "Brazil"},
		{ID: "tsd:5", Name: "  "},
	}, SourceTheSportsDB, now)

	if snapshot.Count != 4 || len(snapshot.Teams) != 4 {
		t.Fatalf("expected 4 teams, got %d", snapshot.Count)
	}
	want := []string{"tsd:4", "tsd:2", "tsd:1", "wd:Q1"}
	for i, id := range want {
		if snapshot.Teams[i].ID != id {
			t.Fatalf("position %d: expected %s, got %s", i, id, snapshot.Teams[i].ID)
		}
	}
	if snapshot.GeneratedAt.Location() != time.UTC {
		t.Fatalf("expected UTC timestamp")
	}
}

func TestSearch(t *testing.T) {
	t.Parallel()

	teams := []Team{
		{Name: "AC Milan", Country: "Italy"},
		{Name: "Inter Milan", Country: "Italy"},
		{Name: "Juventus", Country: "Italy"},
	}

	got := Search(teams, "MILAN", 20)
	if len(got) != 2 || got[0].Name != "AC Milan" {
		t.Fatalf("unexpected search result %+v", got)
	}
	if got := Search(teams, "milan", 1); len(got) != 1 {
		t.Fatalf("expected limit to apply, got %d", len(got))
	}
	if got := Search(teams, "  ", 20); len(got) != 0 {
		t.Fatalf("expected empty result for blank query")
	}
}

func TestSuggest_NoDuplicatesNoPadding(t *testing.T) {
	t.Parallel()

	var teams []Team
	for i := 0; i < 40; i++ {
		teams = append(teams, Team{Name: fmt.Sprintf("Club %02d", i), Country: "England"})
	}
	for i := 0; i < 5; i++ {
		teams = append(teams, Team{Name: fmt.Sprintf("Club %02d", i), Country: "Ghana"})
	}

	got := Suggest(teams, 30)
	if len(got) != 30 {
		t.Fatalf("expected 30 suggestions, got %d", len(got))
	}
	seen := map[identity]struct{}{}
	ghana := 0
	for _, team := range got {
		key := keyOf(team)
		if _, dup := seen[key]; dup {
			t.Fatalf("duplicate suggestion %+v", team)
		}
		seen[key] = struct{}{}
		if team.Country == "Ghana" {
			ghana++
		}
	}
	if ghana != 5 {
		t.Fatalf("expected all 5 non-major clubs, got %d", ghana)
	}

	small := Suggest(teams[:3], 30)
	if len(small) != 3 {
		t.Fatalf("expected no padding, got %d", len(small))
	}
}

func TestSuggest_BalancesHeadAndTail(t *testing.T) {
	t.Parallel()

	var teams []Team
	for i := 0; i < 10; i++ {
		teams = append(teams, Team{Name: fmt.Sprintf("Major %d", i), Country: "Spain"})
		teams = append(teams, Team{Name: fmt.Sprintf("Minor %d", i), Country: "Peru"})
	}

	got := Suggest(teams, 6)
	if len(got) != 6 {
		t.Fatalf("expected 6, got %d", len(got))
	}
	for i := 0; i < 3; i++ {
		if got[i].Country != "Spain" || got[i+3].Country != "Peru" {
			t.Fatalf("expected 3 major then 3 minor, got %+v", got)
		}
	}
}
