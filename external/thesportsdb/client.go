package thesportsdb

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/maxbat99/probax/internal/domain/team"
	"github.com/maxbat99/probax/internal/platform/logging"
	"github.com/maxbat99/probax/internal/platform/resilience"
	"github.com/maxbat99/probax/internal/platform/upstream"
	"github.com/panjf2000/ants/v2"
)

const (
	DefaultBaseURL = "https://www.thesportsdb.com/api/v1/json"
	// publicAPIKey is the free tier key documented by the provider.
	publicAPIKey   = "3"
	defaultWorkers = 4
	soccerSport    = "Soccer"
)

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	APIKey         string
	Timeout        time.Duration
	UserAgent      string
	Workers        int
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
	Observer       upstream.Observer
}

// Client lists soccer clubs league by league.
type Client struct {
	baseURL  string
	workers  int
	upstream *upstream.Client
	logger   *logging.Logger
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	key := strings.TrimSpace(cfg.APIKey)
	if key == "" {
		key = publicAPIKey
	}
	workers := cfg.Workers
	if workers <= 0 {
		workers = defaultWorkers
	}

	return &Client{
		baseURL: baseURL + "/" + url.PathEscape(key),
		workers: workers,
		logger:  logger,
		upstream: upstream.New(upstream.Config{
			Name:           "thesportsdb",
			HTTPClient:     cfg.HTTPClient,
			Timeout:        cfg.Timeout,
			UserAgent:      cfg.UserAgent,
			CircuitBreaker: cfg.CircuitBreaker,
			Logger:         logger,
			Observer:       cfg.Observer,
		}),
	}
}

func (c *Client) Upstream() *upstream.Client {
	return c.upstream
}

type leaguesResponse struct {
	Leagues []struct {
		ID    string `json:"idLeague"`
		Name  string `json:"strLeague"`
		Sport string `json:"strSport"`
	} `json:"leagues"`
}

type teamsResponse struct {
	Teams []struct {
		ID      string `json:"idTeam"`
		Name    string `json:"strTeam"`
		League  string `json:"strLeague"`
		Country string `json:"strCountry"`
		Short   string `json:"strTeamShort"`
	} `json:"teams"`
}

// ListTeams fetches all soccer leagues, then every league's clubs on a
// bounded worker pool. Teams keep league order. The first failing league
// aborts the listing.
func (c *Client) ListTeams(ctx context.Context) ([]team.Team, error) {
	leagueIDs, err := c.soccerLeagueIDs(ctx)
	if err != nil {
		return nil, err
	}
	if len(leagueIDs) == 0 {
		return []team.Team{}, nil
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	pool, err := ants.NewPool(c.workers)
	if err != nil {
		return nil, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	perLeague := make([][]team.Team, len(leagueIDs))
	var (
		workers  sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)
	for i, leagueID := range leagueIDs {
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()

			teams, err := c.leagueTeams(ctx, leagueID)
			if err != nil {
				mu.Lock()
				if firstErr == nil {
					firstErr = err
					cancel()
				}
				mu.Unlock()
				return
			}
			perLeague[i] = teams
		}); err != nil {
			workers.Done()
			workers.Wait()
			return nil, fmt.Errorf("submit league %s to worker pool: %w", leagueID, err)
		}
	}
	workers.Wait()

	if firstErr != nil {
		return nil, firstErr
	}

	out := make([]team.Team, 0, len(leagueIDs)*20)
	for _, teams := range perLeague {
		out = append(out, teams...)
	}
	c.logger.InfoContext(ctx, "thesportsdb teams listed", "leagues", len(leagueIDs), "teams", len(out))
	return out, nil
}

func (c *Client) soccerLeagueIDs(ctx context.Context) ([]string, error) {
	raw, err := c.upstream.Do(ctx, upstream.Request{URL: c.baseURL + "/all_leagues.php"})
	if err != nil {
		return nil, fmt.Errorf("list leagues: %w", err)
	}
	var payload leaguesResponse
	if err := sonic.Unmarshal(raw, &payload); err != nil {
		return nil, crerr.Wrap(err, "decode leagues response")
	}

	ids := make([]string, 0, len(payload.Leagues))
	for _, league := range payload.Leagues {
		if league.Sport != soccerSport || strings.TrimSpace(league.ID) == "" {
			continue
		}
		ids = append(ids, strings.TrimSpace(league.ID))
	}
	return ids, nil
}

func (c *Client) leagueTeams(ctx context.Context, leagueID string) ([]team.Team, error) {
	raw, err := c.upstream.Do(ctx, upstream.Request{
		URL:   c.baseURL + "/lookup_all_teams.php",
		Query: url.Values{"id": {leagueID}},
	})
	if err != nil {
		return nil, fmt.Errorf("list teams league_id=%s: %w", leagueID, err)
	}
	var payload teamsResponse
	if err := sonic.Unmarshal(raw, &payload); err != nil {
		return nil, crerr.Wrapf(err, "decode teams response league_id=%s", leagueID)
	}

	out := make([]team.Team, 0, len(payload.Teams))
	for _, t := range payload.Teams {
		name := strings.TrimSpace(t.Name)
		if name == "" {
			continue
		}
		out = append(out, team.Team{
			ID:      "tsd:" + strings.TrimSpace(t.ID),
			Name:    name,
			League:  strings.TrimSpace(t.League),
			Country: firstNonEmpty(t.Country, t.Short),
		})
	}
	return out, nil
}

// firstNonEmpty returns the first trimmed non-blank value. Some clubs carry
// no country and only a short code.
func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
