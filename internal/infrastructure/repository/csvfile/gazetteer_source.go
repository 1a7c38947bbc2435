package csvfile

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/maxbat99/probax/internal/domain/gazetteer"
	"github.com/maxbat99/probax/internal/platform/cache"
)

const recordsCacheKey = "gazetteer-records"

// GazetteerSource reads stadium rows from a headered CSV file. Columns are
// matched by header name so extra columns and column order do not matter.
// A missing file yields an empty table.
type GazetteerSource struct {
	path  string
	cache *cache.Store[[]gazetteer.Record]
}

// NewGazetteerSource caches parsed rows for ttl. A zero ttl keeps them for
// the process lifetime.
func NewGazetteerSource(path string, ttl time.Duration) *GazetteerSource {
	return &GazetteerSource{
		path:  strings.TrimSpace(path),
		cache: cache.NewStore[[]gazetteer.Record](ttl),
	}
}

func (s *GazetteerSource) Records(ctx context.Context) ([]gazetteer.Record, error) {
	return s.cache.GetOrLoad(ctx, recordsCacheKey, func(context.Context) ([]gazetteer.Record, error) {
		return s.load()
	})
}

// Reload drops cached rows so the next read hits the file.
func (s *GazetteerSource) Reload(ctx context.Context) {
	s.cache.Delete(ctx, recordsCacheKey)
}

func (s *GazetteerSource) load() ([]gazetteer.Record, error) {
	if s.path == "" {
		return []gazetteer.Record{}, nil
	}

	f, err := os.Open(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []gazetteer.Record{}, nil
		}
		return nil, fmt.Errorf("open gazetteer %s: %w", s.path, err)
	}
	defer f.Close()

	records, err := ParseRecords(f)
	if err != nil {
		return nil, fmt.Errorf("parse gazetteer %s: %w", s.path, err)
	}
	return records, nil
}

// ParseRecords decodes a gazetteer CSV with a header row containing any of
// stadium, team, league, country, lat, lon.
func ParseRecords(r io.Reader) ([]gazetteer.Record, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return []gazetteer.Record{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))
		if _, ok := index[name]; !ok {
			index[name] = i
		}
	}
	field := func(row []string, name string) string {
		i, ok := index[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	out := make([]gazetteer.Record, 0, 256)
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}
		out = append(out, gazetteer.Record{
			Stadium: field(row, "stadium"),
			Team:    field(row, "team"),
			League:  field(row, "league"),
			Country: field(row, "country"),
			LatRaw:  field(row, "lat"),
			LonRaw:  field(row, "lon"),
		})
	}
	return out, nil
}
