package config

import (
	"testing"
	"time"

	"github.com/maxbat99/probax/internal/platform/logging"
)

func TestLoad_AppEnvValidation(t *testing.T) {
	t.Setenv("APP_ENV", "invalid")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid APP_ENV")
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.DBDriver != "sqlite" || cfg.DBURL != "probax.db" {
		t.Fatalf("unexpected db defaults: driver=%q url=%q", cfg.DBDriver, cfg.DBURL)
	}
	if cfg.TeamIndexStore != TeamIndexStoreFile || cfg.TeamIndexPath != "data/teams_index.json" {
		t.Fatalf("unexpected team index defaults: %q %q", cfg.TeamIndexStore, cfg.TeamIndexPath)
	}
	if cfg.GeocodingTimeout != 15*time.Second || cfg.OpenMeteoTimeout != 20*time.Second {
		t.Fatalf("unexpected open-meteo timeouts: %s %s", cfg.GeocodingTimeout, cfg.OpenMeteoTimeout)
	}
	if cfg.WikidataClubLimit != 20000 || cfg.TeamIndexWorkers != 4 {
		t.Fatalf("unexpected upstream defaults: %+v", cfg)
	}
	if !cfg.UpstreamCircuit.Enabled || cfg.UpstreamCircuit.FailureThreshold != 5 || cfg.UpstreamCircuit.OpenTimeout != 30*time.Second {
		t.Fatalf("unexpected circuit defaults: %+v", cfg.UpstreamCircuit)
	}
	if cfg.LogLevel != logging.LevelInfo {
		t.Fatalf("unexpected log level: %s", cfg.LogLevel)
	}
	if !cfg.MetricsEnabled || !cfg.DBAutoMigrate {
		t.Fatalf("expected metrics and auto-migrate on by default")
	}
}

func TestLoad_DBDriverValidation(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("DB_DRIVER", "mysql")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error for unsupported DB_DRIVER")
	}
}

func TestLoad_TeamIndexStore(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)

	t.Run("redis requires url", func(t *testing.T) {
		t.Setenv("TEAM_INDEX_STORE", "redis")
		t.Setenv("REDIS_URL", "")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error when TEAM_INDEX_STORE=redis without REDIS_URL")
		}
	})

	t.Run("redis with url", func(t *testing.T) {
		t.Setenv("TEAM_INDEX_STORE", "Redis")
		t.Setenv("REDIS_URL", "redis://localhost:6379/0")
		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if cfg.TeamIndexStore != TeamIndexStoreRedis {
			t.Fatalf("unexpected store: %q", cfg.TeamIndexStore)
		}
	})

	t.Run("unknown store", func(t *testing.T) {
		t.Setenv("TEAM_INDEX_STORE", "s3")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for unknown TEAM_INDEX_STORE")
		}
	})
}

func TestLoad_DurationAndIntValidation(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)

	t.Run("invalid duration", func(t *testing.T) {
		t.Setenv("WIKIDATA_TIMEOUT", "soon")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for invalid WIKIDATA_TIMEOUT")
		}
	})

	t.Run("non-positive duration", func(t *testing.T) {
		t.Setenv("CACHE_TTL", "0s")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for CACHE_TTL=0s")
		}
	})

	t.Run("worker floor", func(t *testing.T) {
		t.Setenv("TEAM_INDEX_WORKERS", "0")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for TEAM_INDEX_WORKERS=0")
		}
	})

	t.Run("rate limit may be disabled", func(t *testing.T) {
		t.Setenv("WIKIDATA_RATE_PER_MINUTE", "0")
		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if cfg.WikidataRatePerMinute != 0 {
			t.Fatalf("expected disabled limiter, got %d", cfg.WikidataRatePerMinute)
		}
	})
}

func TestLoad_UptraceRequiresDSNWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when UPTRACE_ENABLED=true without UPTRACE_DSN")
	}
}

func TestLoad_UptraceDSNFromOTLPHeaders(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", "foo=bar, uptrace-dsn='https://token@api.uptrace.dev?grpc=4317'")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.UptraceDSN != "https://token@api.uptrace.dev?grpc=4317" {
		t.Fatalf("unexpected uptrace dsn: %q", cfg.UptraceDSN)
	}
}

func TestLoad_PprofDefaultsAddrWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("PPROF_ENABLED", "true")
	t.Setenv("PPROF_ADDR", "  ")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.PprofAddr != ":6060" {
		t.Fatalf("expected default pprof addr :6060, got %q", cfg.PprofAddr)
	}
}

func TestLoad_PyroscopeRequiresServerAddressWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("PYROSCOPE_ENABLED", "true")
	t.Setenv("PYROSCOPE_SERVER_ADDRESS", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when PYROSCOPE_ENABLED=true without PYROSCOPE_SERVER_ADDRESS")
	}
}

func TestLoad_PyroscopeAppNameDefaultsToServiceName(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("APP_SERVICE_NAME", "probax-api-test")
	t.Setenv("PYROSCOPE_ENABLED", "true")
	t.Setenv("PYROSCOPE_SERVER_ADDRESS", "http://localhost:4040")
	t.Setenv("PYROSCOPE_APP_NAME", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.PyroscopeAppName != "probax-api-test" {
		t.Fatalf("unexpected pyroscope app name: %q", cfg.PyroscopeAppName)
	}
}

func TestLoad_CORSOriginsParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("CORS_ALLOWED_ORIGINS", " https://a.example.com, http://localhost:5173 ")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if len(cfg.CORSAllowedOrigins) != 2 || cfg.CORSAllowedOrigins[1] != "http://localhost:5173" {
		t.Fatalf("unexpected CORS origins: %+v", cfg.CORSAllowedOrigins)
	}
}

func TestParseLogLevel(t *testing.T) {
	t.Parallel()

	cases := map[string]logging.Level{
		"debug":   logging.LevelDebug,
		"WARNING": logging.LevelWarn,
		"error":   logging.LevelError,
		"bogus":   logging.LevelInfo,
	}
	for raw, want := range cases {
		if got := parseLogLevel(raw); got != want {
			t.Fatalf("parseLogLevel(%q): expected %s, got %s", raw, want, got)
		}
	}
}
