package observability

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/maxbat99/probax/internal/platform/logging"
	"github.com/maxbat99/probax/internal/platform/resilience"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMetrics_UpstreamAndCacheCounters(t *testing.T) {
	t.Parallel()

	m := NewMetrics(logging.NewNop())
	m.ObserveUpstream("wikidata", "ok", 120*time.Millisecond)
	m.ObserveUpstream("wikidata", "ok", 80*time.Millisecond)
	m.ObserveUpstream("wikidata", "timeout", time.Second)
	m.CacheUpsertFailed(context.Background(), 3, errors.New("disk full"))

	if got := testutil.ToFloat64(m.upstreamCalls.WithLabelValues("wikidata", "ok")); got != 2 {
		t.Fatalf("expected 2 ok calls, got %v", got)
	}
	if got := testutil.ToFloat64(m.upstreamCalls.WithLabelValues("wikidata", "timeout")); got != 1 {
		t.Fatalf("expected 1 timeout, got %v", got)
	}
	if got := testutil.ToFloat64(m.cacheFailures); got != 1 {
		t.Fatalf("expected 1 cache failure, got %v", got)
	}
}

func TestMetrics_TrackBreaker(t *testing.T) {
	t.Parallel()

	m := NewMetrics(logging.NewNop())
	breaker := resilience.NewCircuitBreaker("openmeteo_forecast", resilience.CircuitBreakerConfig{
		Enabled:          true,
		FailureThreshold: 1,
		OpenTimeout:      time.Minute,
		HalfOpenMaxReq:   1,
	})
	m.TrackBreaker(breaker)

	if got := testutil.ToFloat64(m.breakerState.WithLabelValues("openmeteo_forecast")); got != 0 {
		t.Fatalf("expected closed breaker gauge, got %v", got)
	}
	breaker.RecordFailure()
	if got := testutil.ToFloat64(m.breakerState.WithLabelValues("openmeteo_forecast")); got != 1 {
		t.Fatalf("expected open breaker gauge, got %v", got)
	}
}

func TestMetrics_Handler(t *testing.T) {
	t.Parallel()

	m := NewMetrics(logging.NewNop())
	m.ObserveUpstream("thesportsdb", "ok", time.Millisecond)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `probax_upstream_requests_total{outcome="ok",provider="thesportsdb"} 1`) {
		t.Fatalf("expected upstream counter in exposition, got:\n%s", rec.Body.String())
	}
}
