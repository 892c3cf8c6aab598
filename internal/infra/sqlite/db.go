// Package sqlite provides SQLite-based persistent storage for the reward
// bank. Uses WAL mode for crash-safe writes; the persisted snapshot is a
// derived cache of the in-session state, never the source of truth while
// a session runs.
package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // Pure-Go SQLite driver (no CGO required)
)

// DB wraps a SQLite connection with WAL mode and migrations.
type DB struct {
	db *sql.DB
}

// Open creates or opens the SQLite database at dir/bank.db.
// Enables WAL mode and a 5-second busy timeout.
func Open(dir string) (*DB, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	dbPath := filepath.Join(dir, "bank.db")
	dsn := dbPath + "?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on"

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	// SQLite is single-writer
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	d := &DB{db: db}
	if err := d.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return d, nil
}

// Close cleanly shuts down the database.
func (d *DB) Close() error {
	return d.db.Close()
}

// Ping checks database connectivity.
func (d *DB) Ping() error {
	return d.db.Ping()
}

// migrate runs idempotent schema migrations.
func (d *DB) migrate() error {
	migrations := []string{
		// Scalar bank snapshot fields, keyed by name
		`CREATE TABLE IF NOT EXISTS bank_state (
			key   TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)`,

		// Rolling 7-day balance ledger
		`CREATE TABLE IF NOT EXISTS daily_balances (
			date         TEXT PRIMARY KEY,
			target_kcal  INTEGER NOT NULL,
			consumed_kcal INTEGER NOT NULL,
			balance_kcal INTEGER NOT NULL,
			is_cheat_day BOOLEAN NOT NULL DEFAULT 0
		)`,

		// Append-only audit log of budget movements
		`CREATE TABLE IF NOT EXISTS bonus_history (
			id         TEXT PRIMARY KEY,
			kind       TEXT NOT NULL,
			date       TEXT NOT NULL,
			calories   INTEGER NOT NULL,
			created_at INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_bonus_history_created ON bonus_history(created_at)`,

		// Gamification key-value state (xp, level, metric counters)
		`CREATE TABLE IF NOT EXISTS engagement (
			key   TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)`,

		// Coaching nudges (policy: max 1/day, quiet hours)
		`CREATE TABLE IF NOT EXISTS nudges (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			type       TEXT NOT NULL,
			title      TEXT NOT NULL,
			body       TEXT NOT NULL,
			created_at INTEGER NOT NULL,
			shown      BOOLEAN DEFAULT 0
		)`,
		`CREATE INDEX IF NOT EXISTS idx_nudges_created ON nudges(created_at)`,
	}

	for _, m := range migrations {
		if _, err := d.db.Exec(m); err != nil {
			return fmt.Errorf("migration failed: %w\nSQL: %s", err, m)
		}
	}
	return nil
}
