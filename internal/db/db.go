// Package db opens the database that caches dataset snapshots.
package db

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
	_ "github.com/sijms/go-ora/v2"
)

const pingTimeout = 10 * time.Second

// DefaultPath returns the default database path: ~/.config/taxrank/taxrank.db
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".config", "taxrank", "taxrank.db"), nil
}

// IsOracle returns true if dsn names an Oracle database.
func IsOracle(dsn string) bool {
	return strings.HasPrefix(dsn, "oracle://")
}

// Connect opens an Oracle database for an oracle:// DSN and an existing
// SQLite database otherwise. It never creates a database.
func Connect(ctx context.Context, dsn string) (*sql.DB, error) {
	if !IsOracle(dsn) {
		return OpenExisting(dsn)
	}

	db, err := sql.Open("oracle", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening oracle connection: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		closeErr := db.Close()
		if closeErr != nil {
			return nil, fmt.Errorf("pinging oracle: %w (also failed to close: %v)", err, closeErr)
		}
		return nil, fmt.Errorf("pinging oracle: %w", err)
	}

	return db, nil
}

// Open opens (or creates) a SQLite database at the given path,
// enables WAL mode, and runs migrations.
func Open(path string) (*sql.DB, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating database directory %s: %w", dir, err)
	}
	return openSQLite(path)
}

// OpenExisting is like Open but fails if no database exists at path.
func OpenExisting(path string) (*sql.DB, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("checking database %s: %w", path, err)
	}
	return openSQLite(path)
}

func openSQLite(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := configure(db); err != nil {
		closeErr := db.Close()
		if closeErr != nil {
			return nil, fmt.Errorf("%w (also failed to close: %v)", err, closeErr)
		}
		return nil, err
	}

	if err := migrate(db); err != nil {
		closeErr := db.Close()
		if closeErr != nil {
			return nil, fmt.Errorf("running migrations: %w (also failed to close: %v)", err, closeErr)
		}
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return db, nil
}

// configure sets SQLite pragmas.
func configure(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
	}

	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("executing %s: %w", p, err)
		}
	}

	return nil
}
