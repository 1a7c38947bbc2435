package upstream

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/maxbat99/probax/internal/platform/logging"
	"github.com/maxbat99/probax/internal/platform/resilience"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/time/rate"
)

const maxResponseBytes = 8 << 20

var (
	// ErrTransport marks network failures, timeouts and unreadable bodies.
	ErrTransport = crerr.New("upstream transport failure")
	// ErrRejected marks calls refused locally by the breaker or limiter.
	ErrRejected = crerr.New("upstream call rejected")
)

// IsRejected reports whether err carries a local breaker or limiter
// refusal anywhere in its chain.
func IsRejected(err error) bool {
	return crerr.Is(err, ErrRejected)
}

// StatusError reports a non-2xx response.
type StatusError struct {
	Provider   string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s responded with status=%d body=%s", e.Provider, e.StatusCode, e.Body)
}

// Observer receives one outcome per upstream call.
type Observer interface {
	ObserveUpstream(provider, outcome string, elapsed time.Duration)
}

type Config struct {
	Name           string
	HTTPClient     *http.Client
	Timeout        time.Duration
	UserAgent      string
	RatePerMinute  int
	CircuitBreaker resilience.CircuitBreakerConfig
	Logger         *logging.Logger
	Observer       Observer
}

// Request describes one call. Form switches the call to a url-encoded POST.
type Request struct {
	Method string
	URL    string
	Query  url.Values
	Form   url.Values
	Accept string
}

// Client executes requests against a single provider with a timeout, an
// optional token-bucket limiter and a circuit breaker. It never retries.
type Client struct {
	name           string
	httpClient     *http.Client
	userAgent      string
	limiter        *rate.Limiter
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
	flight         resilience.Group[[]byte]
	logger         *logging.Logger
	observer       Observer
}

func New(cfg Config) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport)}
	}
	if cfg.Timeout > 0 {
		clone := *httpClient
		clone.Timeout = cfg.Timeout
		httpClient = &clone
	}
	if httpClient.Timeout <= 0 {
		clone := *httpClient
		clone.Timeout = 20 * time.Second
		httpClient = &clone
	}

	var limiter *rate.Limiter
	if cfg.RatePerMinute > 0 {
		limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(cfg.RatePerMinute)), 1)
	}

	name := strings.TrimSpace(cfg.Name)
	if name == "" {
		name = "upstream"
	}

	return &Client{
		name:           name,
		httpClient:     httpClient,
		userAgent:      strings.TrimSpace(cfg.UserAgent),
		limiter:        limiter,
		breaker:        resilience.NewCircuitBreaker(name, cfg.CircuitBreaker),
		circuitEnabled: cfg.CircuitBreaker.Enabled,
		logger:         logger,
		observer:       cfg.Observer,
	}
}

func (c *Client) Name() string {
	return c.name
}

func (c *Client) Breaker() *resilience.CircuitBreaker {
	return c.breaker
}

// Do executes req and returns the raw body of a 2xx response. Identical
// concurrent requests share one round trip.
func (c *Client) Do(ctx context.Context, req Request) ([]byte, error) {
	fullURL, body, method, err := c.prepare(req)
	if err != nil {
		return nil, err
	}

	key := method + " " + fullURL + "\n" + body
	raw, err, _ := c.flight.Do(key, func() ([]byte, error) {
		return c.execute(ctx, method, fullURL, body, req.Accept)
	})
	return raw, err
}

func (c *Client) prepare(req Request) (string, string, string, error) {
	parsed, err := url.Parse(strings.TrimSpace(req.URL))
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return "", "", "", crerr.Newf("%s: invalid request url %q", c.name, req.URL)
	}
	if len(req.Query) > 0 {
		query := parsed.Query()
		for key, values := range req.Query {
			for _, v := range values {
				query.Add(key, v)
			}
		}
		parsed.RawQuery = query.Encode()
	}

	method := strings.ToUpper(strings.TrimSpace(req.Method))
	body := ""
	if req.Form != nil {
		method = http.MethodPost
		body = req.Form.Encode()
	}
	if method == "" {
		method = http.MethodGet
	}
	return parsed.String(), body, method, nil
}

func (c *Client) execute(ctx context.Context, method, fullURL, body, accept string) ([]byte, error) {
	started := time.Now()

	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.observe("circuit_open", started)
			c.logger.WarnContext(ctx, "upstream circuit breaker rejected request", "provider", c.name, "state", c.breaker.State())
			return nil, crerr.Mark(crerr.Wrapf(err, "%s", c.name), ErrRejected)
		}
	}
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			c.release()
			c.observe("rate_limited", started)
			return nil, crerr.Mark(crerr.Wrapf(err, "%s rate limiter", c.name), ErrRejected)
		}
	}

	raw, err := c.roundTrip(ctx, method, fullURL, body, accept)
	c.settle(err)
	if err != nil {
		c.observe(outcomeOf(err), started)
		c.logger.WarnContext(ctx, "upstream request failed", "provider", c.name, "method", method, "url", fullURL, "error", err)
		return nil, err
	}

	c.observe("ok", started)
	return raw, nil
}

func (c *Client) roundTrip(ctx context.Context, method, fullURL, body, accept string) ([]byte, error) {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, fullURL, reader)
	if err != nil {
		return nil, crerr.Wrapf(err, "%s: build request", c.name)
	}
	if accept == "" {
		accept = "application/json"
	}
	req.Header.Set("Accept", accept)
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	if body != "" {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, crerr.Mark(crerr.Wrapf(err, "%s: send request", c.name), ErrTransport)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, crerr.Mark(crerr.Wrapf(err, "%s: read response body", c.name), ErrTransport)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &StatusError{Provider: c.name, StatusCode: resp.StatusCode, Body: abbreviate(raw)}
	}
	return raw, nil
}

func (c *Client) settle(err error) {
	if !c.circuitEnabled {
		return
	}
	c.breaker.Record(err, isBreakerFailure)
}

func (c *Client) release() {
	if !c.circuitEnabled {
		return
	}
	c.breaker.Release()
}

func (c *Client) observe(outcome string, started time.Time) {
	if c.observer == nil {
		return
	}
	c.observer.ObserveUpstream(c.name, outcome, time.Since(started))
}

// isBreakerFailure counts transport errors, throttling and 5xx. Other 4xx
// responses mean the provider is up.
func isBreakerFailure(err error) bool {
	if err == nil {
		return false
	}
	var statusErr *StatusError
	if crerr.As(err, &statusErr) {
		return statusErr.StatusCode == http.StatusTooManyRequests || statusErr.StatusCode >= http.StatusInternalServerError
	}
	return !crerr.Is(err, context.Canceled)
}

func outcomeOf(err error) string {
	var statusErr *StatusError
	switch {
	case crerr.As(err, &statusErr):
		return fmt.Sprintf("status_%dxx", statusErr.StatusCode/100)
	case crerr.Is(err, context.DeadlineExceeded):
		return "timeout"
	default:
		return "transport_error"
	}
}

func abbreviate(body []byte) string {
	text := strings.TrimSpace(string(body))
	if len(text) <= 240 {
		return text
	}
	return text[:240] + "..."
}
