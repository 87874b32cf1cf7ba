// Package storage opens the local database, applies migrations and wires
// the repositories on top of it.
package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/gophinventory/internal/client/migrations"
	"github.com/dmitrijs2005/gophinventory/internal/client/repositories/items"
	"github.com/dmitrijs2005/gophinventory/internal/client/repositories/settings"
	"github.com/dmitrijs2005/gophinventory/internal/dbx"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"
)

// Store groups the open database and its repositories.
type Store struct {
	DB       *sql.DB
	Dialect  dbx.Dialect
	Items    items.Repository
	Settings settings.Repository
}

// RunMigrations applies every pending migration for the dialect.
func RunMigrations(ctx context.Context, db *sql.DB, d dbx.Dialect) error {
	fsys, err := migrations.For(d)
	if err != nil {
		return fmt.Errorf("failed to load migrations: %w", err)
	}

	goose.SetBaseFS(fsys)
	defer goose.SetBaseFS(nil)
	goose.SetLogger(goose.NopLogger())

	if err := goose.SetDialect(d.GooseDialect()); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	if err := goose.UpContext(ctx, db, "."); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

// Open connects to driver/dsn ("sqlite" or "postgres"), migrates the
// schema and returns a ready Store.
func Open(ctx context.Context, driver, dsn string) (*Store, error) {
	d, err := dbx.ParseDialect(driver)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open(d.DriverName(), dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if d == dbx.DialectSQLite {
		// A single writer avoids SQLITE_BUSY between the shell and the watcher.
		db.SetMaxOpenConns(1)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := RunMigrations(ctx, db, d); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Store{
		DB:       db,
		Dialect:  d,
		Items:    items.NewSQLRepository(db, d),
		Settings: settings.NewSQLRepository(db, d),
	}, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.DB.Close()
}
