package sqlstore

import (
	"fmt"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	migratedb "github.com/golang-migrate/migrate/v4/database"
	migratepg "github.com/golang-migrate/migrate/v4/database/postgres"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/maxbat99/probax/db/migrations"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
	_ "modernc.org/sqlite"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// NormalizeDriver maps accepted aliases onto the registered driver names.
func NormalizeDriver(raw string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "sqlite", "sqlite3":
		return DriverSQLite, nil
	case "postgres", "postgresql", "pq":
		return DriverPostgres, nil
	default:
		return "", fmt.Errorf("unsupported db driver %q", raw)
	}
}

type OpenOptions struct {
	Driver         string
	DSN            string
	DBName         string
	QueryFormatter func(string) string
	MaxOpenConns   int
}

// Open returns a traced handle. SQLite handles are limited to one open
// connection so writers never contend for the file lock.
func Open(opts OpenOptions) (*sqlx.DB, error) {
	driver, err := NormalizeDriver(opts.Driver)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(opts.DSN) == "" {
		return nil, fmt.Errorf("db dsn is required")
	}

	traceOpts := []otelsql.Option{otelsql.WithDBName(opts.DBName)}
	if opts.QueryFormatter != nil {
		traceOpts = append(traceOpts, otelsql.WithQueryFormatter(opts.QueryFormatter))
	}

	db, err := otelsqlx.Open(driver, opts.DSN, traceOpts...)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", driver, err)
	}

	switch {
	case driver == DriverSQLite:
		db.SetMaxOpenConns(1)
	case opts.MaxOpenConns > 0:
		db.SetMaxOpenConns(opts.MaxOpenConns)
	}
	return db, nil
}

// Migrate applies every embedded migration. ErrNoChange is not an error.
func Migrate(db *sqlx.DB) error {
	source, err := iofs.New(migrations.FS, ".")
	if err != nil {
		return fmt.Errorf("open embedded migrations: %w", err)
	}

	var target migratedb.Driver
	switch db.DriverName() {
	case DriverSQLite:
		target, err = migratesqlite.WithInstance(db.DB, &migratesqlite.Config{})
	case DriverPostgres:
		target, err = migratepg.WithInstance(db.DB, &migratepg.Config{})
	default:
		err = fmt.Errorf("unsupported db driver %q", db.DriverName())
	}
	if err != nil {
		return fmt.Errorf("prepare migration driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, db.DriverName(), target)
	if err != nil {
		return fmt.Errorf("create migrator: %w", err)
	}
	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("apply migrations: %w", err)
	}
	return nil
}
