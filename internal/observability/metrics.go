package observability

import (
	"context"
	"net/http"
	"time"

	"github.com/maxbat99/probax/internal/platform/logging"
	"github.com/maxbat99/probax/internal/platform/resilience"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const metricsNamespace = "probax"

// Metrics owns a private registry so tests and multiple instances never
// collide on the global one.
type Metrics struct {
	registry        *prometheus.Registry
	upstreamCalls   *prometheus.CounterVec
	upstreamLatency *prometheus.HistogramVec
	breakerState    *prometheus.GaugeVec
	cacheFailures   prometheus.Counter
	logger          *logging.Logger
}

func NewMetrics(logger *logging.Logger) *Metrics {
	if logger == nil {
		logger = logging.Default()
	}

	m := &Metrics{
		registry: prometheus.NewRegistry(),
		upstreamCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "upstream_requests_total",
			Help:      "Upstream calls by provider and outcome.",
		}, []string{"provider", "outcome"}),
		upstreamLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "upstream_request_duration_seconds",
			Help:      "Upstream call latency by provider.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 20, 30},
		}, []string{"provider"}),
		breakerState: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "upstream_circuit_open",
			Help:      "1 while the provider circuit breaker is open or half open.",
		}, []string{"provider"}),
		cacheFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "stadium_cache_upsert_failures_total",
			Help:      "Failed resolution cache writes after a live search.",
		}),
		logger: logger,
	}
	m.registry.MustRegister(
		m.upstreamCalls,
		m.upstreamLatency,
		m.breakerState,
		m.cacheFailures,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) ObserveUpstream(provider, outcome string, elapsed time.Duration) {
	m.upstreamCalls.WithLabelValues(provider, outcome).Inc()
	m.upstreamLatency.WithLabelValues(provider).Observe(elapsed.Seconds())
}

// CacheUpsertFailed counts and logs a failed cache write.
func (m *Metrics) CacheUpsertFailed(ctx context.Context, entities int, err error) {
	m.cacheFailures.Inc()
	m.logger.WarnContext(ctx, "stadium cache upsert failed", "entities", entities, "error", err)
}

// TrackBreaker exports the breaker state and logs every transition.
func (m *Metrics) TrackBreaker(b *resilience.CircuitBreaker) {
	if b == nil {
		return
	}
	m.breakerState.WithLabelValues(b.Name()).Set(0)
	b.OnStateChange(func(name string, from, to resilience.CircuitState) {
		value := 0.0
		if to != resilience.CircuitStateClosed {
			value = 1
		}
		m.breakerState.WithLabelValues(name).Set(value)
		m.logger.Warn("upstream circuit breaker state changed", "provider", name, "from", from, "to", to)
	})
}
