// Package storage is the SQLite adapter behind the category and expense
// services. It owns the schema, translates driver errors into domain errors
// and exposes the query shapes the services need.
package storage

import (
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// Repository wraps the SQLite database handle.
type Repository struct {
	db *sql.DB
}

// NewRepository opens (creating if needed) the SQLite database at dbPath and
// applies pending migrations. Foreign keys are enabled so deleting a category
// detaches its expenses via ON DELETE SET NULL.
func NewRepository(dbPath string) (*Repository, error) {
	if dir := filepath.Dir(dbPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	dsn := "file:" + dbPath + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Repository{db: db}, nil
}

func (r *Repository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// isUniqueViolation reports whether err is a SQLite unique-constraint
// failure. The driver does not export a typed error for this, so the check
// is on the message, the same way the rest of the ecosystem does it.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

func nowUTC() string {
	return time.Now().UTC().Format(time.RFC3339)
}

// parseTimestamp reads an RFC3339 timestamp from a stored row. A malformed
// value means the row was written outside the repository; it is logged and
// surfaces as the zero time rather than failing the whole query.
func parseTimestamp(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		slog.Warn("malformed stored timestamp", "value", s, "error", err)
		return time.Time{}
	}
	return t
}
