// Package storage keeps JSON documents and small metadata values in a SQL
// database. SQLite (modernc.org/sqlite) and PostgreSQL (pgx) are supported.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // driver: pgx
	_ "modernc.org/sqlite"             // driver: sqlite
)

// Driver names a supported SQL backend.
type Driver string

const (
	DriverSQLite   Driver = "sqlite"
	DriverPostgres Driver = "postgres"
)

// DefaultSQLiteDSN keeps the database next to the binary.
const DefaultSQLiteDSN = "file:examcloud.db?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"

// DB is a document database.
type DB struct {
	db     *sql.DB
	driver Driver
}

// Open opens a database and ensures the schema exists.
func Open(ctx context.Context, driver Driver, dsn string) (*DB, error) {
	var drvName string
	switch driver {
	case DriverSQLite:
		drvName = "sqlite"
		if dsn == "" {
			dsn = DefaultSQLiteDSN
		}
	case DriverPostgres:
		drvName = "pgx"
		if dsn == "" {
			dsn = "postgres://localhost:5432/examcloud?sslmode=disable"
		}
	default:
		return nil, fmt.Errorf("unsupported driver: %s", driver)
	}

	db, err := sql.Open(drvName, dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if driver == DriverSQLite {
		// Every connection to ":memory:" is a separate database.
		db.SetMaxOpenConns(1)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	d := &DB{db: db, driver: driver}
	if err := d.migrate(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return d, nil
}

// Close closes the underlying database.
func (d *DB) Close() error {
	return d.db.Close()
}

// Driver reports which database the documents live in.
func (d *DB) Driver() Driver {
	return d.driver
}

func (d *DB) migrate(ctx context.Context) error {
	schema := `
	CREATE TABLE IF NOT EXISTS documents (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL,
		updated_at BIGINT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS metadata (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);
	`
	_, err := d.db.ExecContext(ctx, schema)
	return err
}

// Load returns the document stored under key.
// Returns nil and nil error if the key is missing.
func (d *DB) Load(ctx context.Context, key string) ([]byte, error) {
	var value string
	err := d.db.QueryRowContext(ctx, `SELECT value FROM documents WHERE key = $1`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", key, err)
	}
	return []byte(value), nil
}

// Save replaces the document stored under key.
func (d *DB) Save(ctx context.Context, key string, value []byte) error {
	_, err := d.db.ExecContext(ctx,
		`INSERT INTO documents (key, value, updated_at) VALUES ($1, $2, $3)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, string(value), time.Now().UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

// Delete removes the document stored under key. Missing keys are not an error.
func (d *DB) Delete(ctx context.Context, key string) error {
	_, err := d.db.ExecContext(ctx, `DELETE FROM documents WHERE key = $1`, key)
	if err != nil {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}
