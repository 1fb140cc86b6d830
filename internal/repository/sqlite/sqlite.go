// Package sqlite implements the repository interfaces on SQLite via the
// pure-Go modernc.org/sqlite driver. No C compiler, no server process;
// ":memory:" gives every test its own throwaway database.
package sqlite

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	// Registers the "sqlite" driver with database/sql.
	_ "modernc.org/sqlite"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// DB wraps the connection pool and carries the repository methods.
type DB struct {
	conn *sql.DB
}

// New opens (or creates) the database at dbPath, applies pragmas and runs
// any pending embedded migrations.
func New(dbPath string) (*DB, error) {
	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("sqlite: opening database: %w", err)
	}

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: pinging database: %w", err)
	}

	// WAL lets reads proceed during a write; foreign keys are off by
	// default in SQLite and the schema relies on them.
	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: setting WAL mode: %w", err)
	}
	if _, err := conn.Exec("PRAGMA foreign_keys=ON"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: enabling foreign keys: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: running migrations: %w", err)
	}

	return db, nil
}

// Close closes the connection pool. Callers should defer this next to New.
func (db *DB) Close() error {
	return db.conn.Close()
}

// migrate applies the embedded schema migrations through golang-migrate.
// Re-running against an up-to-date database is a no-op.
func (db *DB) migrate() error {
	source, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("loading migration source: %w", err)
	}

	driver, err := migratesqlite.WithInstance(db.conn, &migratesqlite.Config{})
	if err != nil {
		return fmt.Errorf("preparing migration driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, "sqlite", driver)
	if err != nil {
		return fmt.Errorf("initialising migrations: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("applying migrations: %w", err)
	}
	return nil
}

// isUniqueViolation reports whether err is SQLite's UNIQUE constraint
// failure. The driver exposes it only through the message text.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
