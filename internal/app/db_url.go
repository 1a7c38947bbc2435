package app

import (
	"net/url"
	"path/filepath"
	"strings"

	"github.com/maxbat99/probax/internal/infrastructure/repository/sqlstore"
)

// normalizeDBURL applies postgres-only connection flags. SQLite paths are
// returned unchanged.
func normalizeDBURL(driver, raw string, disablePreparedBinaryResult bool) string {
	if normalized, _ := sqlstore.NormalizeDriver(driver); normalized != sqlstore.DriverPostgres {
		return raw
	}
	if !disablePreparedBinaryResult {
		return raw
	}

	parsed, err := url.Parse(raw)
	if err != nil || parsed == nil || parsed.Scheme == "" {
		return raw
	}

	query := parsed.Query()
	if query.Get("disable_prepared_binary_result") == "" {
		query.Set("disable_prepared_binary_result", "yes")
		parsed.RawQuery = query.Encode()
	}

	return parsed.String()
}

func dbNameFromURL(raw string) string {
	trimmed := strings.TrimSpace(raw)
	parsed, err := url.Parse(trimmed)
	if err == nil && parsed != nil && parsed.Scheme != "" && parsed.Scheme != "file" {
		name := strings.TrimSpace(strings.TrimPrefix(parsed.Path, "/"))
		if name != "" {
			return name
		}
	}

	for _, token := range strings.Fields(trimmed) {
		if !strings.HasPrefix(token, "dbname=") {
			continue
		}
		name := strings.TrimSpace(strings.TrimPrefix(token, "dbname="))
		name = strings.Trim(name, `"'`)
		if name != "" {
			return name
		}
	}

	// sqlite: file path or file: URI, with optional query params.
	path := strings.TrimPrefix(trimmed, "file:")
	if before, _, found := strings.Cut(path, "?"); found {
		path = before
	}
	if path == "" || strings.ContainsAny(path, " =") {
		return ""
	}
	return strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
}
