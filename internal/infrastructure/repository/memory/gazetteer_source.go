package memory

import (
	"context"

	"github.com/maxbat99/probax/internal/domain/gazetteer"
)

// GazetteerSource serves a fixed set of rows.
type GazetteerSource struct {
	records []gazetteer.Record
}

func NewGazetteerSource(records []gazetteer.Record) *GazetteerSource {
	return &GazetteerSource{records: append([]gazetteer.Record(nil), records...)}
}

func (s *GazetteerSource) Records(_ context.Context) ([]gazetteer.Record, error) {
	return append([]gazetteer.Record(nil), s.records...), nil
}
