package db

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib" // driver: pgx
	_ "modernc.org/sqlite"             // driver: sqlite
)

type Driver string

const (
	DriverSQLite   Driver = "sqlite"
	DriverPostgres Driver = "postgres"
)

// Open opens a DB and ensures schema exists.
func Open(ctx context.Context, driver Driver, dsn string) (*sql.DB, error) {
	var drvName string
	switch driver {
	case DriverSQLite:
		drvName = "sqlite" // modernc driver
		if dsn == "" {
			dsn = "file:onushilonhub.db?cache=shared&mode=rwc&_pragma=busy_timeout(5000)"
		}
	case DriverPostgres:
		drvName = "pgx" // pgx stdlib driver
		if dsn == "" {
			dsn = "postgres://localhost:5432/onushilonhub?sslmode=disable"
		}
	default:
		return nil, fmt.Errorf("unsupported driver: %s", driver)
	}

	db, err := sql.Open(drvName, dsn)
	if err != nil {
		return nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		return nil, err
	}

	if err := ensureSchema(ctx, db, driver); err != nil {
		return nil, err
	}
	return db, nil
}

func ensureSchema(ctx context.Context, db *sql.DB, driver Driver) error {
	var schema string
	switch driver {
	case DriverSQLite:
		schema = schemaSQLite
	case DriverPostgres:
		schema = schemaPostgres
	}
	_, err := db.ExecContext(ctx, schema)
	return err
}

const schemaSQLite = `
PRAGMA foreign_keys=ON;

CREATE TABLE IF NOT EXISTS test_results (
  id TEXT PRIMARY KEY,
  session_id TEXT NOT NULL,
  level TEXT NOT NULL DEFAULT '',
  board TEXT NOT NULL DEFAULT '',
  year INTEGER NOT NULL DEFAULT 0,
  rule_id INTEGER NOT NULL DEFAULT 0,
  correct INTEGER NOT NULL,
  total INTEGER NOT NULL,
  percent REAL NOT NULL,
  detail_json TEXT NOT NULL,
  taken_at INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_test_results_session ON test_results(session_id, taken_at);
`

const schemaPostgres = `
CREATE TABLE IF NOT EXISTS test_results (
  id TEXT PRIMARY KEY,
  session_id TEXT NOT NULL,
  level TEXT NOT NULL DEFAULT '',
  board TEXT NOT NULL DEFAULT '',
  year INTEGER NOT NULL DEFAULT 0,
  rule_id INTEGER NOT NULL DEFAULT 0,
  correct INTEGER NOT NULL,
  total INTEGER NOT NULL,
  percent DOUBLE PRECISION NOT NULL,
  detail_json TEXT NOT NULL,
  taken_at BIGINT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_test_results_session ON test_results(session_id, taken_at);
`
