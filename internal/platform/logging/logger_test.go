package logging

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestLogger_KeyValueFields(t *testing.T) {
	core, logs := observer.New(LevelDebug)
	logger := FromZap(zap.New(core)).With("component", "resolver")

	logger.WarnContext(context.Background(), "geocode failed", "query", "milan", "error", errors.New("boom"), "dangling")

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["component"] != "resolver" {
		t.Fatalf("expected component field, got %v", fields)
	}
	if fields["query"] != "milan" {
		t.Fatalf("expected query field, got %v", fields["query"])
	}
	if fields["error"] != "boom" {
		t.Fatalf("expected error field, got %v", fields["error"])
	}
	if _, ok := fields["dangling"]; !ok {
		t.Fatalf("expected dangling key to be kept")
	}
}

func TestLogger_LevelFilter(t *testing.T) {
	core, logs := observer.New(LevelWarn)
	logger := FromZap(zap.New(core))

	logger.Info("dropped")
	logger.Error("kept")

	if logs.Len() != 1 {
		t.Fatalf("expected 1 entry, got %d", logs.Len())
	}
}

func TestNew_WritesFileSink(t *testing.T) {
	path := filepath.Join(t.TempDir(), "probax.log")
	logger := New(Options{Level: LevelInfo, FilePath: path})
	logger.Info("cache upsert failed", "entity_id", "Q1")
	if err := logger.Sync(); err != nil && !strings.Contains(err.Error(), "sync") {
		t.Fatalf("sync logger: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(raw), `"entity_id":"Q1"`) {
		t.Fatalf("expected entity_id in log file, got %s", raw)
	}
}

func TestNilLogger_FallsBackToDefault(t *testing.T) {
	var logger *Logger
	logger.Info("no panic")
	if logger.Sync() != nil {
		t.Fatalf("expected nil sync error for nil logger")
	}
}

func TestNew_CustomOutput(t *testing.T) {
	var buf strings.Builder
	logger := New(Options{Level: LevelWarn, Output: &buf})
	logger.Info("dropped")
	logger.Warn("team directory fallback", "source", "wikidata")

	out := buf.String()
	if strings.Contains(out, "dropped") {
		t.Fatalf("expected info entry to be filtered, got %s", out)
	}
	if !strings.Contains(out, `"source":"wikidata"`) {
		t.Fatalf("expected warn entry in custom output, got %s", out)
	}
}
