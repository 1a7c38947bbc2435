package csvfile

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sampleCSV = "\ufeffteam,stadium,league,country,lat,lon,capacity\n" +
	"AC Milan,San Siro,Serie A,Italy,45.4781,9.1240,75817\n" +
	"Inter,San Siro,Serie A,Italy,45.4781,9.1240,75817\n" +
	"\"Bayern, Munich\",Allianz Arena,Bundesliga,Germany,48.2188,11.6247\n" +
	"Broken FC,Nowhere Park,League Two,England,abc,\n"

func TestParseRecords_ByHeaderName(t *testing.T) {
	t.Parallel()

	records, err := ParseRecords(strings.NewReader(sampleCSV))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(records) != 4 {
		t.Fatalf("expected 4 rows, got %d", len(records))
	}
	if records[0].Team != "AC Milan" || records[0].Stadium != "San Siro" || records[0].LatRaw != "45.4781" {
		t.Fatalf("unexpected first row: %+v", records[0])
	}
	if records[2].Team != "Bayern, Munich" {
		t.Fatalf("expected quoted team, got %q", records[2].Team)
	}
	if _, _, ok := records[3].Coordinates(); ok {
		t.Fatalf("expected malformed coordinates to be rejected")
	}
}

func TestParseRecords_Empty(t *testing.T) {
	t.Parallel()

	records, err := ParseRecords(strings.NewReader(""))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(records) != 0 {
		t.Fatalf("expected no rows, got %d", len(records))
	}
}

func TestGazetteerSource_MissingFileIsEmpty(t *testing.T) {
	t.Parallel()

	src := NewGazetteerSource(filepath.Join(t.TempDir(), "missing.csv"), 0)
	records, err := src.Records(context.Background())
	if err != nil {
		t.Fatalf("records: %v", err)
	}
	if len(records) != 0 {
		t.Fatalf("expected empty table, got %d rows", len(records))
	}
}

func TestGazetteerSource_CachesUntilReload(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "stadiums.csv")
	if err := os.WriteFile(path, []byte(sampleCSV), 0o600); err != nil {
		t.Fatalf("write csv: %v", err)
	}

	ctx := context.Background()
	src := NewGazetteerSource(path, 0)
	records, err := src.Records(ctx)
	if err != nil || len(records) != 4 {
		t.Fatalf("first read: %d rows, err=%v", len(records), err)
	}

	if err := os.WriteFile(path, []byte("stadium,lat,lon\nSolo,1,1\n"), 0o600); err != nil {
		t.Fatalf("rewrite csv: %v", err)
	}
	records, _ = src.Records(ctx)
	if len(records) != 4 {
		t.Fatalf("expected cached rows, got %d", len(records))
	}

	src.Reload(ctx)
	records, _ = src.Records(ctx)
	if len(records) != 1 || records[0].Stadium != "Solo" {
		t.Fatalf("expected reloaded rows, got %+v", records)
	}
}
