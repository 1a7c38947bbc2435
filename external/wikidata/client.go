package wikidata

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/maxbat99/probax/internal/domain/stadium"
	"github.com/maxbat99/probax/internal/domain/team"
	"github.com/maxbat99/probax/internal/platform/logging"
	"github.com/maxbat99/probax/internal/platform/resilience"
	"github.com/maxbat99/probax/internal/platform/upstream"
)

const (
	DefaultEndpoint       = "https://query.wikidata.org/sparql"
	defaultClubLimit      = 20000
	sparqlResultsMIMEType = "application/sparql-results+json"
)

type ClientConfig struct {
	HTTPClient     *http.Client
	Endpoint       string
	Timeout        time.Duration
	UserAgent      string
	RatePerMinute  int
	ClubLimit      int
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
	Observer       upstream.Observer
}

// Client queries the Wikidata SPARQL endpoint for stadiums and football
// clubs.
type Client struct {
	endpoint  string
	clubLimit int
	upstream  *upstream.Client
	logger    *logging.Logger
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	endpoint := strings.TrimSpace(cfg.Endpoint)
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	clubLimit := cfg.ClubLimit
	if clubLimit <= 0 {
		clubLimit = defaultClubLimit
	}

	return &Client{
		endpoint:  endpoint,
		clubLimit: clubLimit,
		logger:    logger,
		upstream: upstream.New(upstream.Config{
			Name:           "wikidata",
			HTTPClient:     cfg.HTTPClient,
			Timeout:        cfg.Timeout,
			UserAgent:      cfg.UserAgent,
			RatePerMinute:  cfg.RatePerMinute,
			CircuitBreaker: cfg.CircuitBreaker,
			Logger:         logger,
			Observer:       cfg.Observer,
		}),
	}
}

func (c *Client) Upstream() *upstream.Client {
	return c.upstream
}

// SearchStadiums runs one search phase and groups alias rows by entity in
// first-appearance order. Rows without a label or with a zero coordinate
// are skipped.
func (c *Client) SearchStadiums(ctx context.Context, query string, mode stadium.MatchMode, limit int) ([]stadium.Entity, error) {
	if limit <= 0 {
		limit = 10
	}
	var payload sparqlResponse
	if err := c.run(ctx, buildStadiumQuery(query, mode, limit), &payload); err != nil {
		return nil, fmt.Errorf("search stadiums mode=%s: %w", mode, err)
	}
	return groupStadiums(payload.Results.Bindings), nil
}

// ListTeams returns every football club with a country.
func (c *Client) ListTeams(ctx context.Context) ([]team.Team, error) {
	var payload sparqlResponse
	if err := c.run(ctx, buildClubQuery(c.clubLimit), &payload); err != nil {
		return nil, fmt.Errorf("list football clubs: %w", err)
	}

	out := make([]team.Team, 0, len(payload.Results.Bindings))
	for _, b := range payload.Results.Bindings {
		name := strings.TrimSpace(b.value("teamLabel"))
		qid := entityID(b.value("team"))
		if name == "" || qid == "" {
			continue
		}
		out = append(out, team.Team{
			ID:      "wd:" + qid,
			Name:    name,
			Country: strings.TrimSpace(b.value("countryLabel")),
		})
	}
	return out, nil
}

func (c *Client) run(ctx context.Context, query string, out *sparqlResponse) error {
	raw, err := c.upstream.Do(ctx, upstream.Request{
		URL:    c.endpoint,
		Form:   url.Values{"query": {query}},
		Accept: sparqlResultsMIMEType,
	})
	if err != nil {
		return err
	}
	if err := sonic.Unmarshal(raw, out); err != nil {
		return crerr.Wrap(err, "decode sparql results")
	}
	return nil
}

type sparqlValue struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

type sparqlBinding map[string]sparqlValue

func (b sparqlBinding) value(name string) string {
	return b[name].Value
}

type sparqlResponse struct {
	Results struct {
		Bindings []sparqlBinding `json:"bindings"`
	} `json:"results"`
}

func groupStadiums(bindings []sparqlBinding) []stadium.Entity {
	order := make([]string, 0, len(bindings))
	byID := make(map[string]*stadium.Entity, len(bindings))
	for _, b := range bindings {
		qid := entityID(b.value("s"))
		name := strings.TrimSpace(b.value("sLabel"))
		lat := parseCoordinate(b.value("lat"))
		lon := parseCoordinate(b.value("lon"))
		if qid == "" || name == "" || lat == 0 || lon == 0 {
			continue
		}

		entity, ok := byID[qid]
		if !ok {
			entity = &stadium.Entity{
				EntityID: qid,
				Name:     name,
				Country:  strings.TrimSpace(b.value("countryLabel")),
				Lat:      lat,
				Lon:      lon,
			}
			byID[qid] = entity
			order = append(order, qid)
		}
		if alias := strings.TrimSpace(b.value("alias")); alias != "" {
			entity.Aliases = append(entity.Aliases, alias)
		}
	}

	out := make([]stadium.Entity, 0, len(order))
	for _, qid := range order {
		entity := byID[qid]
		entity.Aliases = stadium.NormalizeAliases(entity.Aliases)
		out = append(out, *entity)
	}
	return out
}

// entityID returns the last path segment of an entity URI.
func entityID(uri string) string {
	uri = strings.TrimSpace(uri)
	if i := strings.LastIndex(uri, "/"); i >= 0 {
		return uri[i+1:]
	}
	return uri
}

// parseCoordinate treats unparsable values as absent (zero).
func parseCoordinate(raw string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0
	}
	return v
}
