package gazetteer

import (
	"testing"

	"github.com/maxbat99/probax/internal/domain/location"
)

func sampleRecords() []Record {
	return []Record{
		{Stadium: "San Siro", Team: "AC Milan", League: "Serie A", Country: "Italy", LatRaw: "45.4781", LonRaw: "9.1240"},
		{Stadium: "San Siro", Team: "Inter", League: "Serie A", Country: "Italy", LatRaw: "45.4781", LonRaw: "9.0855"},
		{Stadium: "Allianz Arena", Team: "Bayern Munich", League: "Bundesliga", Country: "Germany", LatRaw: "48.2188", LonRaw: "11.6247"},
		{Stadium: "Broken Ground", Team: "Broken FC", League: "Serie A", Country: "Italy", LatRaw: "n/a", LonRaw: "9.0"},
	}
}

func TestBest_HighestScoreWins(t *testing.T) {
	t.Parallel()

	got, ok := Best(sampleRecords(), location.Query{Stadium: "san siro", Team: "inter"})
	if !ok {
		t.Fatalf("expected a match")
	}
	if got.Record.Team != "Inter" || got.Score != WeightStadium+WeightTeam {
		t.Fatalf("unexpected best match: %+v", got)
	}
	if got.Lon != 9.0855 {
		t.Fatalf("unexpected lon %v", got.Lon)
	}
}

func TestBest_TieKeepsDatasetOrder(t *testing.T) {
	t.Parallel()

	got, ok := Best(sampleRecords(), location.Query{Stadium: "  SAN   SIRO "})
	if !ok {
		t.Fatalf("expected a match")
	}
	if got.Record.Team != "AC Milan" {
		t.Fatalf("expected first record on tie, got %q", got.Record.Team)
	}
}

func TestBest_CityMatchesLeague(t *testing.T) {
	t.Parallel()

	got, ok := Best(sampleRecords(), location.Query{City: "bundesliga"})
	if !ok || got.Record.Stadium != "Allianz Arena" || got.Score != WeightCity {
		t.Fatalf("unexpected city match: %+v ok=%t", got, ok)
	}
}

func TestRank_SkipsUnparsableCoordinates(t *testing.T) {
	t.Parallel()

	ranked := Rank(sampleRecords(), location.Query{Team: "broken fc"})
	if len(ranked) != 0 {
		t.Fatalf("expected malformed row to be disqualified, got %+v", ranked)
	}

	got, ok := Best(sampleRecords(), location.Query{Team: "broken", Country: "italy"})
	if !ok || got.Record.Team != "AC Milan" {
		t.Fatalf("expected next best valid row, got %+v ok=%t", got, ok)
	}
}

func TestBest_EmptyQueryNoMatch(t *testing.T) {
	t.Parallel()

	if _, ok := Best(sampleRecords(), location.Query{}); ok {
		t.Fatalf("expected no match for empty query")
	}
	if _, ok := Best(sampleRecords(), location.Query{Stadium: "wembley"}); ok {
		t.Fatalf("expected no match for unknown stadium")
	}
}

func TestRecord_CoordinatesRange(t *testing.T) {
	t.Parallel()

	if _, _, ok := (Record{LatRaw: "91", LonRaw: "0"}).Coordinates(); ok {
		t.Fatalf("expected out-of-range latitude to fail")
	}
	if _, _, ok := (Record{LatRaw: " 10.5 ", LonRaw: "-179.9"}).Coordinates(); !ok {
		t.Fatalf("expected padded values to parse")
	}
}

func TestMatch_Resolved(t *testing.T) {
	t.Parallel()

	m, _ := Best(sampleRecords(), location.Query{Team: "bayern"})
	res := m.Resolved()
	if res.Source != location.SourceLocal {
		t.Fatalf("expected local source, got %s", res.Source)
	}
	if res.Metadata["stadium"] != "Allianz Arena" || res.Metadata["score"] != "2" {
		t.Fatalf("unexpected metadata: %+v", res.Metadata)
	}
}
