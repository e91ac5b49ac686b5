package database

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// InitSQLite opens (or creates) a SQLite database and ensures every table
// exists. Pass "file::memory:" style DSNs for tests.
func InitSQLite(dsn string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	// A single connection serializes writers and keeps in-memory databases alive.
	db.SetMaxOpenConns(1)

	for _, pragma := range []string{"PRAGMA journal_mode=WAL", "PRAGMA foreign_keys=ON", "PRAGMA busy_timeout=5000"} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("exec %s: %w", pragma, err)
		}
	}

	if err := createTables(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("create tables: %w", err)
	}
	return db, nil
}

func createTables(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS reservations (
			id TEXT PRIMARY KEY,
			status TEXT NOT NULL,
			cancellation_reason TEXT NOT NULL DEFAULT '',
			total_value TEXT NOT NULL,
			rateio TEXT,
			court_name TEXT NOT NULL,
			date TEXT NOT NULL,
			start_time TEXT NOT NULL,
			contact TEXT NOT NULL DEFAULT '',
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL
		)`,

		`CREATE TABLE IF NOT EXISTS reservation_participants (
			reservation_id TEXT NOT NULL,
			id TEXT NOT NULL,
			name TEXT NOT NULL,
			contact TEXT NOT NULL DEFAULT '',
			payment_status TEXT NOT NULL,
			owed_amount TEXT,
			owed_percent TEXT,
			position INTEGER NOT NULL DEFAULT 0,
			PRIMARY KEY (reservation_id, id),
			FOREIGN KEY (reservation_id) REFERENCES reservations(id)
		)`,

		`CREATE TABLE IF NOT EXISTS payments (
			id TEXT PRIMARY KEY,
			provider_payment_id TEXT,
			customer_id TEXT NOT NULL DEFAULT '',
			reservation_id TEXT,
			amount TEXT NOT NULL,
			net_value TEXT NOT NULL DEFAULT '0',
			billing_method TEXT NOT NULL,
			status TEXT NOT NULL,
			metadata TEXT NOT NULL DEFAULT '{}',
			due_date TEXT NOT NULL DEFAULT '',
			paid_at DATETIME,
			confirmed_at DATETIME,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL
		)`,
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_payments_provider_payment_id ON payments(provider_payment_id) WHERE provider_payment_id IS NOT NULL`,
		`CREATE INDEX IF NOT EXISTS idx_payments_reservation ON payments(reservation_id, created_at)`,

		`CREATE TABLE IF NOT EXISTS notification_templates (
			key TEXT PRIMARY KEY,
			channel TEXT NOT NULL,
			body TEXT NOT NULL,
			updated_at DATETIME NOT NULL
		)`,
	}

	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("exec %q: %w", stmt[:40], err)
		}
	}
	return nil
}
