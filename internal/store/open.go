// Package store persists posts in SQLite or PostgreSQL.
package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pbaille/dayplan/internal/posts"
)

// Backend is a posts.Store that holds resources until closed
type Backend interface {
	posts.Store
	Close() error
}

var (
	_ Backend = (*SQLite)(nil)
	_ Backend = (*Postgres)(nil)
)

// Open returns the backend named by driver ("sqlite" or "postgres").
func Open(ctx context.Context, driver, dsn string) (Backend, error) {
	switch driver {
	case "sqlite", "sqlite3", "":
		if dsn != ":memory:" && !strings.HasPrefix(dsn, "file:") {
			if err := os.MkdirAll(filepath.Dir(dsn), 0755); err != nil {
				return nil, fmt.Errorf("create db dir: %w", err)
			}
		}
		s, err := NewSQLite(dsn)
		if err != nil {
			return nil, err
		}
		return s, nil
	case "postgres", "postgresql", "pgx":
		p, err := NewPostgres(ctx, dsn)
		if err != nil {
			return nil, err
		}
		return p, nil
	}
	return nil, fmt.Errorf("unknown database driver %q", driver)
}
