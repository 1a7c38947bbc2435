package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/maxbat99/probax/internal/platform/logging"
	"github.com/maxbat99/probax/internal/platform/resilience"
)

const (
	TeamIndexStoreFile  = "file"
	TeamIndexStoreRedis = "redis"
)

// Config stores runtime configuration for the service and the CLI.
type Config struct {
	AppEnv                  string
	ServiceName             string
	ServiceVersion          string
	HTTPAddr                string
	ReadTimeout             time.Duration
	WriteTimeout            time.Duration
	LogLevel                logging.Level
	LogFile                 string
	CORSAllowedOrigins      []string
	DBDriver                string
	DBURL                   string
	DBDisablePreparedBinary bool
	DBAutoMigrate           bool
	GazetteerCSVPath        string
	TeamIndexStore          string
	TeamIndexPath           string
	RedisURL                string
	RedisKey                string
	CacheTTL                time.Duration
	UserAgent               string
	WikidataSPARQLURL       string
	WikidataTimeout         time.Duration
	WikidataRatePerMinute   int
	WikidataClubLimit       int
	OpenMeteoGeocodingURL   string
	OpenMeteoForecastURL    string
	OpenMeteoTimeout        time.Duration
	GeocodingTimeout        time.Duration
	TheSportsDBBaseURL      string
	TheSportsDBAPIKey       string
	TheSportsDBTimeout      time.Duration
	TeamIndexWorkers        int
	UpstreamCircuit         resilience.CircuitBreakerConfig
	ModelWeightsFile        string
	SwaggerEnabled          bool
	MetricsEnabled          bool
	PprofEnabled            bool
	PprofAddr               string
	UptraceEnabled          bool
	UptraceDSN              string
	PyroscopeEnabled        bool
	PyroscopeServerAddress  string
	PyroscopeAppName        string
	PyroscopeAuthToken      string
	PyroscopeUploadRate     time.Duration
}

func Load() (Config, error) {
	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		AppEnv:                appEnv,
		ServiceName:           getEnv("APP_SERVICE_NAME", "probax-api"),
		ServiceVersion:        getEnv("APP_SERVICE_VERSION", "dev"),
		HTTPAddr:              getEnv("APP_HTTP_ADDR", ":8080"),
		LogLevel:              parseLogLevel(getEnv("APP_LOG_LEVEL", "info")),
		LogFile:               strings.TrimSpace(getEnv("APP_LOG_FILE", "")),
		CORSAllowedOrigins:    splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		DBDriver:              strings.ToLower(strings.TrimSpace(getEnv("DB_DRIVER", "sqlite"))),
		DBURL:                 strings.TrimSpace(getEnv("DB_URL", "probax.db")),
		GazetteerCSVPath:      strings.TrimSpace(getEnv("GAZETTEER_CSV_PATH", "data/stadiums.csv")),
		TeamIndexStore:        strings.ToLower(strings.TrimSpace(getEnv("TEAM_INDEX_STORE", TeamIndexStoreFile))),
		TeamIndexPath:         strings.TrimSpace(getEnv("TEAM_INDEX_PATH", "data/teams_index.json")),
		RedisURL:              strings.TrimSpace(getEnv("REDIS_URL", "")),
		RedisKey:              strings.TrimSpace(getEnv("REDIS_TEAM_INDEX_KEY", "probax:teams:snapshot")),
		UserAgent:             getEnv("USER_AGENT", "ProbaX/1.0 (match-context)"),
		WikidataSPARQLURL:     strings.TrimSpace(getEnv("WIKIDATA_SPARQL_URL", "https://query.wikidata.org/sparql")),
		OpenMeteoGeocodingURL: strings.TrimSpace(getEnv("OPENMETEO_GEOCODING_URL", "https://geocoding-api.open-meteo.com/v1/search")),
		OpenMeteoForecastURL:  strings.TrimSpace(getEnv("OPENMETEO_FORECAST_URL", "https://api.open-meteo.com/v1/forecast")),
		TheSportsDBBaseURL:    strings.TrimSpace(getEnv("THESPORTSDB_BASE_URL", "https://www.thesportsdb.com/api/v1/json")),
		TheSportsDBAPIKey:     strings.TrimSpace(getEnv("THESPORTSDB_API_KEY", "3")),
		ModelWeightsFile:      strings.TrimSpace(getEnv("MODEL_WEIGHTS_FILE", "")),
		PprofAddr:             strings.TrimSpace(getEnv("PPROF_ADDR", ":6060")),
		UptraceDSN:            strings.TrimSpace(getEnv("UPTRACE_DSN", "")),
		PyroscopeAuthToken:    strings.TrimSpace(getEnv("PYROSCOPE_AUTH_TOKEN", "")),
	}
	if len(cfg.CORSAllowedOrigins) == 0 {
		return Config{}, fmt.Errorf("CORS_ALLOWED_ORIGINS cannot be empty")
	}
	switch cfg.DBDriver {
	case "sqlite", "postgres":
	default:
		return Config{}, fmt.Errorf("invalid DB_DRIVER %q: valid values are sqlite, postgres", cfg.DBDriver)
	}
	switch cfg.TeamIndexStore {
	case TeamIndexStoreFile:
		if cfg.TeamIndexPath == "" {
			return Config{}, fmt.Errorf("TEAM_INDEX_PATH is required when TEAM_INDEX_STORE=file")
		}
	case TeamIndexStoreRedis:
		if cfg.RedisURL == "" {
			return Config{}, fmt.Errorf("REDIS_URL is required when TEAM_INDEX_STORE=redis")
		}
	default:
		return Config{}, fmt.Errorf("invalid TEAM_INDEX_STORE %q: valid values are file, redis", cfg.TeamIndexStore)
	}

	durations := []struct {
		key      string
		fallback string
		dst      *time.Duration
	}{
		{"APP_READ_TIMEOUT", "10s", &cfg.ReadTimeout},
		{"APP_WRITE_TIMEOUT", "60s", &cfg.WriteTimeout},
		{"CACHE_TTL", "10m", &cfg.CacheTTL},
		{"WIKIDATA_TIMEOUT", "30s", &cfg.WikidataTimeout},
		{"OPENMETEO_TIMEOUT", "20s", &cfg.OpenMeteoTimeout},
		{"GEOCODING_TIMEOUT", "15s", &cfg.GeocodingTimeout},
		{"THESPORTSDB_TIMEOUT", "20s", &cfg.TheSportsDBTimeout},
		{"PYROSCOPE_UPLOAD_RATE", "15s", &cfg.PyroscopeUploadRate},
	}
	for _, d := range durations {
		value, err := time.ParseDuration(getEnv(d.key, d.fallback))
		if err != nil {
			return Config{}, fmt.Errorf("parse %s: %w", d.key, err)
		}
		if value <= 0 {
			return Config{}, fmt.Errorf("%s must be > 0", d.key)
		}
		*d.dst = value
	}

	ints := []struct {
		key      string
		fallback int
		min      int
		dst      *int
	}{
		{"WIKIDATA_RATE_PER_MINUTE", 30, 0, &cfg.WikidataRatePerMinute},
		{"WIKIDATA_CLUB_LIMIT", 20000, 1, &cfg.WikidataClubLimit},
		{"TEAM_INDEX_WORKERS", 4, 1, &cfg.TeamIndexWorkers},
		{"UPSTREAM_CIRCUIT_FAILURE_COUNT", 5, 1, &cfg.UpstreamCircuit.FailureThreshold},
		{"UPSTREAM_CIRCUIT_HALF_OPEN_MAX_REQ", 1, 1, &cfg.UpstreamCircuit.HalfOpenMaxReq},
	}
	for _, i := range ints {
		value, err := getEnvAsInt(i.key, i.fallback)
		if err != nil {
			return Config{}, fmt.Errorf("parse %s: %w", i.key, err)
		}
		if value < i.min {
			return Config{}, fmt.Errorf("%s must be >= %d", i.key, i.min)
		}
		*i.dst = value
	}

	bools := []struct {
		key      string
		fallback string
		dst      *bool
	}{
		{"DB_DISABLE_PREPARED_BINARY_RESULT", "true", &cfg.DBDisablePreparedBinary},
		{"DB_AUTO_MIGRATE", "true", &cfg.DBAutoMigrate},
		{"UPSTREAM_CIRCUIT_ENABLED", "true", &cfg.UpstreamCircuit.Enabled},
		{"METRICS_ENABLED", "true", &cfg.MetricsEnabled},
		{"SWAGGER_ENABLED", "true", &cfg.SwaggerEnabled},
		{"PPROF_ENABLED", "false", &cfg.PprofEnabled},
		{"UPTRACE_ENABLED", "false", &cfg.UptraceEnabled},
		{"PYROSCOPE_ENABLED", "false", &cfg.PyroscopeEnabled},
	}
	for _, b := range bools {
		value, err := strconv.ParseBool(getEnv(b.key, b.fallback))
		if err != nil {
			return Config{}, fmt.Errorf("parse %s: %w", b.key, err)
		}
		*b.dst = value
	}

	cfg.UpstreamCircuit.OpenTimeout, err = time.ParseDuration(getEnv("UPSTREAM_CIRCUIT_OPEN_TIMEOUT", "30s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse UPSTREAM_CIRCUIT_OPEN_TIMEOUT: %w", err)
	}
	if cfg.UpstreamCircuit.OpenTimeout <= 0 {
		return Config{}, fmt.Errorf("UPSTREAM_CIRCUIT_OPEN_TIMEOUT must be > 0")
	}

	if cfg.UptraceDSN == "" {
		cfg.UptraceDSN = parseUptraceDSNFromOTLPHeaders(getEnv("OTEL_EXPORTER_OTLP_HEADERS", ""))
	}
	if cfg.UptraceEnabled && cfg.UptraceDSN == "" {
		return Config{}, fmt.Errorf("UPTRACE_DSN is required when UPTRACE_ENABLED=true")
	}

	cfg.PyroscopeServerAddress = strings.TrimSpace(getEnv("PYROSCOPE_SERVER_ADDRESS", ""))
	if cfg.PyroscopeEnabled && cfg.PyroscopeServerAddress == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_SERVER_ADDRESS is required when PYROSCOPE_ENABLED=true")
	}
	cfg.PyroscopeAppName = strings.TrimSpace(getEnv("PYROSCOPE_APP_NAME", cfg.ServiceName))

	if cfg.PprofEnabled && cfg.PprofAddr == "" {
		return Config{}, fmt.Errorf("PPROF_ADDR is required when PPROF_ENABLED=true")
	}

	return cfg, nil
}

func parseLogLevel(v string) logging.Level {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "debug":
		return logging.LevelDebug
	case "warn", "warning":
		return logging.LevelWarn
	case "error":
		return logging.LevelError
	default:
		return logging.LevelInfo
	}
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if strings.TrimSpace(value) == "" {
		return fallback
	}

	return value
}

func getEnvAsInt(key string, fallback int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	out, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}

	return out, nil
}

func splitCSV(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		item := strings.TrimSpace(part)
		if item == "" {
			continue
		}
		out = append(out, item)
	}

	return out
}

func parseUptraceDSNFromOTLPHeaders(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}

	items := strings.Split(raw, ",")
	for _, item := range items {
		parts := strings.SplitN(strings.TrimSpace(item), "=", 2)
		if len(parts) != 2 {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(parts[0]), "uptrace-dsn") {
			value := strings.TrimSpace(parts[1])
			return strings.Trim(value, "\"'")
		}
	}

	return ""
}

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

func parseAppEnv(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case EnvDev, EnvStage, EnvProd:
		return value, nil
	default:
		return "", fmt.Errorf("invalid APP_ENV %q: valid values are %s, %s, %s", v, EnvDev, EnvStage, EnvProd)
	}
}
