// Package storage opens the relational store and applies the schema.
//
// Postgres (pgx stdlib driver) is the production target. SQLite (modernc, no
// cgo) serves local development and repository tests. Repositories write
// queries with ? placeholders and pass them through DB.Rebind.
package storage

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"

	"click2dial/pkg/utils"
)

//go:embed migrations/*.sql
var migrations embed.FS

// DB is a database handle that knows its driver's placeholder style.
type DB struct {
	*sql.DB
	driver      string
	placeholder utils.Placeholder
}

// Open connects using a database/sql driver name ("pgx" or "sqlite").
func Open(ctx context.Context, driverName, dsn string, pool utils.PoolConfig) (*DB, error) {
	switch driverName {
	case "pgx", "sqlite":
	default:
		return nil, fmt.Errorf("storage: unsupported driver %q", driverName)
	}
	db, err := utils.OpenDB(ctx, driverName, dsn, pool)
	if err != nil {
		return nil, err
	}
	return &DB{DB: db, driver: driverName, placeholder: utils.PlaceholderFor(driverName)}, nil
}

// OpenMemory returns a migrated in-memory SQLite database.
func OpenMemory(ctx context.Context) (*DB, error) {
	db, err := Open(ctx, "sqlite", ":memory:", utils.PoolConfig{})
	if err != nil {
		return nil, err
	}
	if err := Migrate(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// Driver returns the database/sql driver name.
func (db *DB) Driver() string { return db.driver }

// Rebind converts a ? placeholder query to the driver's style.
func (db *DB) Rebind(query string) string { return db.placeholder.Rebind(query) }

// Migrate applies every pending embedded migration.
func Migrate(ctx context.Context, db *DB) error {
	dialect := goose.DialectPostgres
	if db.driver == "sqlite" {
		dialect = goose.DialectSQLite3
	}

	fsys, err := fs.Sub(migrations, "migrations")
	if err != nil {
		return err
	}
	provider, err := goose.NewProvider(dialect, db.DB, fsys)
	if err != nil {
		return fmt.Errorf("storage: migrations: %w", err)
	}
	if _, err := provider.Up(ctx); err != nil {
		return fmt.Errorf("storage: migrate up: %w", err)
	}
	return nil
}
