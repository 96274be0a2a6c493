package main

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"log"
	"path"
	"sort"

	"sparkmeals/db"

	"github.com/jackc/pgx/v5"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

const createSchemaMigrations = `CREATE TABLE IF NOT EXISTS schema_migrations (
	version    TEXT PRIMARY KEY,
	applied_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

// applyMigrations runs every embedded migration not yet listed in
// schema_migrations, each in its own transaction, in file name order.
func applyMigrations(ctx context.Context, verbose bool) error {
	if _, err := db.Pool.Exec(ctx, createSchemaMigrations); err != nil {
		return fmt.Errorf("create schema_migrations: %w", err)
	}
	rows, err := db.Pool.Query(ctx, `SELECT version FROM schema_migrations`)
	if err != nil {
		return fmt.Errorf("load applied migrations: %w", err)
	}
	done, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return fmt.Errorf("load applied migrations: %w", err)
	}

	files, err := fs.Glob(migrationsFS, "migrations/*.sql")
	if err != nil {
		return fmt.Errorf("list migrations: %w", err)
	}
	todo := pendingMigrations(files, done)
	if verbose && len(todo) == 0 {
		log.Printf("migrations up to date applied=%d", len(done))
	}
	for _, version := range todo {
		if err := applyMigration(ctx, version); err != nil {
			return err
		}
		if verbose {
			log.Printf("migration applied version=%s", version)
		}
	}
	return nil
}

func applyMigration(ctx context.Context, version string) error {
	script, err := migrationsFS.ReadFile("migrations/" + version)
	if err != nil {
		return fmt.Errorf("read migration %s: %w", version, err)
	}
	tx, err := db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin migration %s: %w", version, err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, string(script)); err != nil {
		return fmt.Errorf("apply migration %s: %w", version, err)
	}
	if _, err := tx.Exec(ctx, `INSERT INTO schema_migrations (version) VALUES ($1)`, version); err != nil {
		return fmt.Errorf("record migration %s: %w", version, err)
	}
	return tx.Commit(ctx)
}

// pendingMigrations returns the base names of files not in applied, sorted.
func pendingMigrations(files, applied []string) []string {
	seen := make(map[string]bool, len(applied))
	for _, v := range applied {
		seen[v] = true
	}
	var out []string
	for _, f := range files {
		if v := path.Base(f); !seen[v] {
			out = append(out, v)
		}
	}
	sort.Strings(out)
	return out
}
