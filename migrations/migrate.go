// Package migrations embeds the SQL schema and applies it with goose.
package migrations

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"path"

	"github.com/pressly/goose/v3"
)

//go:embed *.sql
var embedMigrations embed.FS

// ErrNilDB is returned when Migrate is called without a connection.
var ErrNilDB = errors.New("db is nil")

// Result describes one migration run.
type Result struct {
	// Applied holds the file names applied by this run, oldest first.
	Applied []string
	// Version is the schema version after the run.
	Version int64
}

func newProvider(db *sql.DB) (*goose.Provider, error) {
	return goose.NewProvider(goose.DialectPostgres, db, embedMigrations, goose.WithDisableGlobalRegistry(true))
}

// Migrate brings db up to the newest embedded schema version.
func Migrate(ctx context.Context, db *sql.DB) (Result, error) {
	if db == nil {
		return Result{}, fmt.Errorf("migration error: %w", ErrNilDB)
	}

	provider, err := newProvider(db)
	if err != nil {
		return Result{}, fmt.Errorf("migration error loading schema files: %w", err)
	}

	results, err := provider.Up(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("migration error: %w", err)
	}

	applied := make([]string, 0, len(results))
	for _, res := range results {
		applied = append(applied, path.Base(res.Source.Path))
	}

	version, err := provider.GetDBVersion(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("migration error reading schema version: %w", err)
	}

	return Result{Applied: applied, Version: version}, nil
}
