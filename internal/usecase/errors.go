package usecase

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)

var (
	ErrGeocoderUnavailable       = fmt.Errorf("geocoder: %w", ErrDependencyUnavailable)
	ErrKnowledgeGraphUnavailable = fmt.Errorf("knowledge graph: %w", ErrDependencyUnavailable)
	ErrForecastUnavailable       = fmt.Errorf("forecast: %w", ErrDependencyUnavailable)
	ErrTeamDirectoryUnavailable  = fmt.Errorf("team directory: %w", ErrDependencyUnavailable)
)
