package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"

	"github.com/maxbat99/probax/external/openmeteo"
	"github.com/maxbat99/probax/external/thesportsdb"
	"github.com/maxbat99/probax/external/wikidata"
	"github.com/maxbat99/probax/internal/config"
	"github.com/maxbat99/probax/internal/domain/prediction"
	"github.com/maxbat99/probax/internal/domain/stadium"
	"github.com/maxbat99/probax/internal/domain/team"
	repocache "github.com/maxbat99/probax/internal/infrastructure/repository/cache"
	"github.com/maxbat99/probax/internal/infrastructure/repository/csvfile"
	"github.com/maxbat99/probax/internal/infrastructure/repository/snapshot"
	"github.com/maxbat99/probax/internal/infrastructure/repository/sqlstore"
	"github.com/maxbat99/probax/internal/interfaces/httpapi"
	"github.com/maxbat99/probax/internal/observability"
	"github.com/maxbat99/probax/internal/platform/cache"
	"github.com/maxbat99/probax/internal/platform/logging"
	"github.com/maxbat99/probax/internal/usecase"
)

// App holds the wired services shared by the API server and probactl.
type App struct {
	Config  config.Config
	Logger  *logging.Logger
	Metrics *observability.Metrics

	Locations    *usecase.LocationService
	Stadiums     *usecase.StadiumService
	Weather      *usecase.WeatherService
	Teams        *usecase.TeamIndexService
	MatchContext *usecase.MatchContextService

	closers []func() error
}

func New(ctx context.Context, cfg config.Config, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}

	a := &App{
		Config:  cfg,
		Logger:  logger,
		Metrics: observability.NewMetrics(logger),
	}

	weights, err := loadWeights(cfg.ModelWeightsFile)
	if err != nil {
		return nil, err
	}

	wikidataClient := wikidata.NewClient(wikidata.ClientConfig{
		Endpoint:       cfg.WikidataSPARQLURL,
		Timeout:        cfg.WikidataTimeout,
		UserAgent:      cfg.UserAgent,
		RatePerMinute:  cfg.WikidataRatePerMinute,
		ClubLimit:      cfg.WikidataClubLimit,
		Logger:         logger,
		CircuitBreaker: cfg.UpstreamCircuit,
		Observer:       a.Metrics,
	})
	openMeteoClient := openmeteo.NewClient(openmeteo.ClientConfig{
		GeocodingURL:     cfg.OpenMeteoGeocodingURL,
		ForecastURL:      cfg.OpenMeteoForecastURL,
		GeocodingTimeout: cfg.GeocodingTimeout,
		ForecastTimeout:  cfg.OpenMeteoTimeout,
		UserAgent:        cfg.UserAgent,
		Logger:           logger,
		CircuitBreaker:   cfg.UpstreamCircuit,
		Observer:         a.Metrics,
	})
	sportsDBClient := thesportsdb.NewClient(thesportsdb.ClientConfig{
		BaseURL:        cfg.TheSportsDBBaseURL,
		APIKey:         cfg.TheSportsDBAPIKey,
		Timeout:        cfg.TheSportsDBTimeout,
		UserAgent:      cfg.UserAgent,
		Workers:        cfg.TeamIndexWorkers,
		Logger:         logger,
		CircuitBreaker: cfg.UpstreamCircuit,
		Observer:       a.Metrics,
	})

	a.Metrics.TrackBreaker(wikidataClient.Upstream().Breaker())
	a.Metrics.TrackBreaker(sportsDBClient.Upstream().Breaker())
	for _, up := range openMeteoClient.Upstreams() {
		a.Metrics.TrackBreaker(up.Breaker())
	}

	db, err := sqlstore.Open(sqlstore.OpenOptions{
		Driver:         cfg.DBDriver,
		DSN:            normalizeDBURL(cfg.DBDriver, cfg.DBURL, cfg.DBDisablePreparedBinary),
		DBName:         dbNameFromURL(cfg.DBURL),
		QueryFormatter: formatDBQueryForTrace,
	})
	if err != nil {
		return nil, fmt.Errorf("open stadium cache: %w", err)
	}
	a.closers = append(a.closers, db.Close)
	if cfg.DBAutoMigrate {
		if err := sqlstore.Migrate(db); err != nil {
			_ = a.Close()
			return nil, err
		}
	}

	store, err := a.newSnapshotStore(ctx)
	if err != nil {
		_ = a.Close()
		return nil, err
	}

	gazetteerSource := csvfile.NewGazetteerSource(cfg.GazetteerCSVPath, cfg.CacheTTL)
	stadiumRepo := repocache.NewStadiumRepository(sqlstore.NewStadiumRepository(db), cache.NewStore[[]stadium.Entity](cfg.CacheTTL))

	a.Locations = usecase.NewLocationService(gazetteerSource, openMeteoClient, logger)
	a.Stadiums = usecase.NewStadiumService(wikidataClient, stadiumRepo, a.Metrics, logger)
	a.Weather = usecase.NewWeatherService(openMeteoClient, cfg.CacheTTL)
	a.Teams = usecase.NewTeamIndexService(sportsDBClient, wikidataClient, store, cfg.CacheTTL, logger)
	a.MatchContext = usecase.NewMatchContextService(a.Locations, a.Stadiums, a.Weather, prediction.NewEngine(weights), logger)

	logger.InfoContext(ctx, "app wired",
		"db_driver", cfg.DBDriver,
		"team_index_store", cfg.TeamIndexStore,
		"gazetteer", cfg.GazetteerCSVPath,
		"custom_weights", cfg.ModelWeightsFile != "",
	)
	return a, nil
}

func (a *App) newSnapshotStore(ctx context.Context) (team.SnapshotStore, error) {
	if a.Config.TeamIndexStore != config.TeamIndexStoreRedis {
		store, err := snapshot.NewFileStore(a.Config.TeamIndexPath)
		if err != nil {
			return nil, fmt.Errorf("team index file store: %w", err)
		}
		return store, nil
	}

	client, err := snapshot.NewRedisClient(ctx, a.Config.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("team index redis store: %w", err)
	}
	a.closers = append(a.closers, client.Close)
	return snapshot.NewRedisStore(client, a.Config.RedisKey, 0), nil
}

// NewHTTPServer mounts the API router on the configured address.
func (a *App) NewHTTPServer() (*http.Server, error) {
	handler := httpapi.NewHandler(a.Locations, a.Stadiums, a.Weather, a.Teams, a.MatchContext, a.Logger)

	opts := httpapi.RouterOptions{
		SwaggerEnabled:     a.Config.SwaggerEnabled,
		CORSAllowedOrigins: a.Config.CORSAllowedOrigins,
	}
	if a.Config.MetricsEnabled {
		opts.Metrics = a.Metrics.Handler()
	}

	server := &http.Server{
		Addr:         a.Config.HTTPAddr,
		Handler:      httpapi.NewRouter(handler, a.Logger, opts),
		ReadTimeout:  a.Config.ReadTimeout,
		WriteTimeout: a.Config.WriteTimeout,
	}

	if server.Addr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	return server, nil
}

// Close releases the DB handle and the redis client in reverse order.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}

func loadWeights(path string) (prediction.Weights, error) {
	if path == "" {
		return prediction.DefaultWeights(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return prediction.Weights{}, fmt.Errorf("open model weights: %w", err)
	}
	defer f.Close()

	weights, err := prediction.LoadWeightsYAML(f)
	if err != nil {
		return prediction.Weights{}, fmt.Errorf("load model weights %s: %w", path, err)
	}
	return weights, nil
}
