package migrations

import (
	"context"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// Migrator manages database migrations
type Migrator struct {
	db     *pgxpool.Pool
	logger zerolog.Logger
}

// NewMigrator creates a new migrator
func NewMigrator(db *pgxpool.Pool, lgr zerolog.Logger) *Migrator {
	return &Migrator{
		db:     db,
		logger: lgr,
	}
}

// ensureMigrationTableExists creates the migration tracking table if it doesn't exist
func (m *Migrator) ensureMigrationTableExists(ctx context.Context) error {
	createTableSQL := `
	CREATE TABLE IF NOT EXISTS schema_migrations (
		version VARCHAR(255) PRIMARY KEY,
		applied_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	);`

	if _, err := m.db.Exec(ctx, createTableSQL); err != nil {
		return fmt.Errorf("failed to create migration tracking table: %w", err)
	}
	return nil
}

// isMigrationApplied checks if a specific migration has already been applied
func (m *Migrator) isMigrationApplied(ctx context.Context, version string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM schema_migrations WHERE version = $1);`
	if err := m.db.QueryRow(ctx, query, version).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check migration status: %w", err)
	}
	return exists, nil
}

// Version extracts the version prefix of a migration file name,
// e.g. "001_init.sql" => "001".
func Version(filename string) string {
	return strings.SplitN(path.Base(filename), "_", 2)[0]
}

// applyFile executes one migration file and records it in the same transaction
func (m *Migrator) applyFile(ctx context.Context, fsys fs.FS, name string) error {
	version := Version(name)

	applied, err := m.isMigrationApplied(ctx, version)
	if err != nil {
		return err
	}
	if applied {
		m.logger.Debug().Str("migration", name).Msg("Migration already applied, skipping")
		return nil
	}

	content, err := fs.ReadFile(fsys, name)
	if err != nil {
		return fmt.Errorf("failed to read migration file %s: %w", name, err)
	}

	tx, err := m.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, string(content)); err != nil {
		return fmt.Errorf("error executing migration %s: %w", name, err)
	}

	if err := recordMigration(ctx, tx, version); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit migration %s: %w", name, err)
	}

	m.logger.Info().Str("migration", name).Msg("Migration applied")
	return nil
}

func recordMigration(ctx context.Context, tx pgx.Tx, version string) error {
	_, err := tx.Exec(ctx, `INSERT INTO schema_migrations (version, applied_at) VALUES ($1, $2)`,
		version, time.Now())
	if err != nil {
		return fmt.Errorf("failed to record migration: %w", err)
	}
	return nil
}

// PendingFiles lists the *.sql files of fsys in the order they are applied.
func PendingFiles(fsys fs.FS) ([]string, error) {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("failed to read migrations: %w", err)
	}

	var files []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".sql") {
			files = append(files, entry.Name())
		}
	}
	sort.Strings(files)
	return files, nil
}

// Migrate applies every migration in fsys that has not been applied yet.
func (m *Migrator) Migrate(ctx context.Context, fsys fs.FS) error {
	if err := m.ensureMigrationTableExists(ctx); err != nil {
		return err
	}

	files, err := PendingFiles(fsys)
	if err != nil {
		return err
	}

	for _, file := range files {
		if err := m.applyFile(ctx, fsys, file); err != nil {
			return err
		}
	}
	return nil
}
