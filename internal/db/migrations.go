package db

import (
	"database/sql"
	"fmt"
)

// migrations is an ordered list of SQL statements to run.
// Rows are read back in seq order so duplicate parcel ids resolve the same
// way they do in the source files.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS buildings (
		seq                    INTEGER PRIMARY KEY AUTOINCREMENT,
		recordid               TEXT,
		taxparcelid            TEXT,
		lotsqfeet              INTEGER,
		streetaddressformatted TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS taxes (
		seq         INTEGER PRIMARY KEY AUTOINCREMENT,
		recordid    TEXT,
		taxparcelid TEXT,
		fiscalyear  TEXT,
		taxamount   REAL
	)`,
	`CREATE TABLE IF NOT EXISTS locations (
		seq         INTEGER PRIMARY KEY AUTOINCREMENT,
		recordid    TEXT,
		taxparcelid TEXT,
		latitude    REAL,
		longitude   REAL
	)`,
	`CREATE TABLE IF NOT EXISTS loads (
		id         TEXT    PRIMARY KEY,
		source     TEXT    NOT NULL DEFAULT '',
		buildings  INTEGER NOT NULL DEFAULT 0,
		taxes      INTEGER NOT NULL DEFAULT 0,
		locations  INTEGER NOT NULL DEFAULT 0,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE INDEX IF NOT EXISTS idx_taxes_fiscalyear ON taxes(fiscalyear)`,
}

// migrate runs all migrations in order.
func migrate(db *sql.DB) error {
	for i, m := range migrations {
		if _, err := db.Exec(m); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}
