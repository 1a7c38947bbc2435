package upstream

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/maxbat99/probax/internal/platform/resilience"
)

type recordingObserver struct {
	mu       sync.Mutex
	outcomes []string
}

func (o *recordingObserver) ObserveUpstream(_ string, outcome string, _ time.Duration) {
	o.mu.Lock()
	o.outcomes = append(o.outcomes, outcome)
	o.mu.Unlock()
}

func TestClient_Do_GetWithQueryAndUserAgent(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("expected GET, got %s", r.Method)
		}
		if got := r.URL.Query().Get("name"); got != "San Siro" {
			t.Errorf("expected name query, got %q", got)
		}
		if got := r.Header.Get("User-Agent"); got != "ProbaX/1.0" {
			t.Errorf("unexpected user agent %q", got)
		}
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer server.Close()

	observer := &recordingObserver{}
	client := New(Config{Name: "geocoding", UserAgent: "ProbaX/1.0", Observer: observer})
	raw, err := client.Do(context.Background(), Request{URL: server.URL + "/v1/search", Query: url.Values{"name": {"San Siro"}}})
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	if string(raw) != `{"ok":true}` {
		t.Fatalf("unexpected body %s", raw)
	}
	if len(observer.outcomes) != 1 || observer.outcomes[0] != "ok" {
		t.Fatalf("unexpected outcomes %v", observer.outcomes)
	}
}

func TestClient_Do_FormPost(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if err := r.ParseForm(); err != nil {
			t.Errorf("parse form: %v", err)
		}
		if got := r.PostForm.Get("query"); got != "SELECT ?s WHERE {}" {
			t.Errorf("unexpected query form value %q", got)
		}
		if got := r.Header.Get("Accept"); got != "application/sparql-results+json" {
			t.Errorf("unexpected accept header %q", got)
		}
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := New(Config{Name: "wikidata"})
	_, err := client.Do(context.Background(), Request{
		URL:    server.URL,
		Form:   url.Values{"query": {"SELECT ?s WHERE {}"}},
		Accept: "application/sparql-results+json",
	})
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
}

func TestClient_Do_StatusErrorOpensBreaker(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("maintenance"))
	}))
	defer server.Close()

	client := New(Config{
		Name: "forecast",
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          true,
			FailureThreshold: 2,
			OpenTimeout:      time.Minute,
			HalfOpenMaxReq:   1,
		},
	})

	for i := 0; i < 2; i++ {
		_, err := client.Do(context.Background(), Request{URL: server.URL})
		var statusErr *StatusError
		if !crerr.As(err, &statusErr) || statusErr.StatusCode != http.StatusServiceUnavailable {
			t.Fatalf("expected 503 status error, got %v", err)
		}
	}

	_, err := client.Do(context.Background(), Request{URL: server.URL})
	if !crerr.Is(err, ErrRejected) {
		t.Fatalf("expected rejected error once breaker is open, got %v", err)
	}
	if got := hits.Load(); got != 2 {
		t.Fatalf("expected 2 upstream hits, got %d", got)
	}
}

func TestClient_Do_NotFoundKeepsBreakerClosed(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := New(Config{Name: "teams", CircuitBreaker: resilience.CircuitBreakerConfig{Enabled: true, FailureThreshold: 1}})
	for i := 0; i < 3; i++ {
		if _, err := client.Do(context.Background(), Request{URL: server.URL}); err == nil {
			t.Fatalf("expected status error")
		}
	}
	if state := client.Breaker().State(); state != resilience.CircuitStateClosed {
		t.Fatalf("expected closed breaker, got %s", state)
	}
}

func TestClient_Do_TransportErrorIsMarked(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	target := server.URL
	server.Close()

	client := New(Config{Name: "geocoding", Timeout: time.Second})
	_, err := client.Do(context.Background(), Request{URL: target})
	if !crerr.Is(err, ErrTransport) {
		t.Fatalf("expected transport error, got %v", err)
	}
}

func TestClient_Do_InvalidURL(t *testing.T) {
	t.Parallel()

	client := New(Config{Name: "geocoding"})
	if _, err := client.Do(context.Background(), Request{URL: "not a url"}); err == nil {
		t.Fatalf("expected invalid url error")
	}
}

func TestClient_Do_RateLimiterHonoursContext(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := New(Config{Name: "wikidata", RatePerMinute: 1})
	if _, err := client.Do(context.Background(), Request{URL: server.URL + "?q=1"}); err != nil {
		t.Fatalf("first call: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err := client.Do(ctx, Request{URL: server.URL + "?q=2"})
	if !crerr.Is(err, ErrRejected) {
		t.Fatalf("expected limiter rejection, got %v", err)
	}
}

func TestClient_Do_LimiterRejectionKeepsBreakerHalfOpen(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := New(Config{
		Name:          "wikidata",
		RatePerMinute: 1,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          true,
			FailureThreshold: 1,
			OpenTimeout:      20 * time.Millisecond,
			HalfOpenMaxReq:   1,
		},
	})

	if _, err := client.Do(context.Background(), Request{URL: server.URL + "?q=1"}); err == nil {
		t.Fatalf("expected status error")
	}
	if state := client.Breaker().State(); state != resilience.CircuitStateOpen {
		t.Fatalf("expected open breaker, got %s", state)
	}

	time.Sleep(40 * time.Millisecond)
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err := client.Do(ctx, Request{URL: server.URL + "?q=2"})
	if !crerr.Is(err, ErrRejected) {
		t.Fatalf("expected limiter rejection, got %v", err)
	}

	if state := client.Breaker().State(); state != resilience.CircuitStateHalfOpen {
		t.Fatalf("expected breaker to stay half-open without a trial call, got %s", state)
	}
	if got := hits.Load(); got != 1 {
		t.Fatalf("expected a single upstream hit, got %d", got)
	}
}
