package dbmigrate

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"

	"github.com/fdg312/diet-hub/internal/config"
)

const DefaultMigrationsDir = "migrations"

var (
	ErrNoDatabaseURL     = errors.New("no database URL configured (set DATABASE_URL_DIRECT or DATABASE_URL)")
	ErrDirectURLRequired = errors.New("DATABASE_URL_DIRECT is required for DDL/migrations")
)

// Target — база, в которой лежат таблицы foods и food_nutrients.
type Target struct {
	URL     string
	Source  string // имя переменной окружения
	Warning string
}

// Redacted returns the URL with the password hidden, for log lines.
func (t Target) Redacted() string {
	u, err := url.Parse(t.URL)
	if err != nil {
		return "<unparsable>"
	}
	return u.Redacted()
}

// SelectTarget picks the database the foods schema is migrated in:
// DATABASE_URL_DIRECT, then DATABASE_URL, then DATABASE_URL_POOLED with a
// warning. With requireDirect only DATABASE_URL_DIRECT is accepted.
func SelectTarget(cfg *config.Config, requireDirect bool) (Target, error) {
	if requireDirect {
		if cfg.DatabaseURLDirect == "" {
			return Target{}, ErrDirectURLRequired
		}
		return Target{URL: cfg.DatabaseURLDirect, Source: "DATABASE_URL_DIRECT"}, nil
	}

	candidates := []Target{
		{URL: cfg.DatabaseURLDirect, Source: "DATABASE_URL_DIRECT"},
		{URL: cfg.DatabaseURLRaw, Source: "DATABASE_URL"},
		{
			URL:     cfg.DatabaseURLPooled,
			Source:  "DATABASE_URL_POOLED",
			Warning: "replacing the foods tables over a pooled connection is not recommended; set DATABASE_URL_DIRECT",
		},
	}
	for _, c := range candidates {
		if c.URL != "" {
			return c, nil
		}
	}
	return Target{}, ErrNoDatabaseURL
}

// EmbeddedVersions lists the migration files compiled into the binary, in
// the order goose applies them.
func EmbeddedVersions() ([]string, error) {
	names, err := fs.Glob(Migrations(), "*.sql")
	if err != nil {
		return nil, fmt.Errorf("list embedded migrations: %w", err)
	}
	return names, nil
}
