package db

import (
	"embed"
	"errors"
	"fmt"
	"strings"

	"github.com/binna/binna-backend/logger"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

// Migrator wraps golang-migrate over the embedded migration files.
type Migrator struct {
	m *migrate.Migrate
}

// NewMigrator opens a migrator against a postgres:// URL.
func NewMigrator(dbURL string) (*Migrator, error) {
	source, err := iofs.New(migrationFiles, "migrations")
	if err != nil {
		return nil, fmt.Errorf("failed to create migration source: %w", err)
	}

	m, err := migrate.NewWithSourceInstance("iofs", source, convertToPgx5URL(dbURL))
	if err != nil {
		return nil, fmt.Errorf("failed to create migrate instance: %w", err)
	}
	return &Migrator{m: m}, nil
}

// Close releases the source and database handles.
func (mg *Migrator) Close() error {
	srcErr, dbErr := mg.m.Close()
	return errors.Join(srcErr, dbErr)
}

// Up applies every pending migration. A dirty state left by a failed run is
// reset to the previous version first so the failed step is retried.
func (mg *Migrator) Up() error {
	log := logger.GetLogger()

	version, dirty, err := mg.m.Version()
	switch {
	case errors.Is(err, migrate.ErrNilVersion):
		log.Info("Fresh database, applying all migrations")
	case err != nil:
		return fmt.Errorf("failed to read migration version: %w", err)
	case dirty:
		clean := int(version) - 1
		log.Warnw("Dirty migration state detected, resetting to retry",
			"dirtyVersion", version,
			"resettingTo", clean)
		if clean < 1 {
			clean = -1 // migrate.NilVersion
		}
		if err := mg.m.Force(clean); err != nil {
			return fmt.Errorf("failed to reset dirty migration: %w", err)
		}
	default:
		log.Infow("Current migration version", "version", version)
	}

	if err := mg.m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			log.Info("Database is up to date, no migrations to apply")
			return nil
		}
		return fmt.Errorf("migration failed: %w", err)
	}

	if v, _, err := mg.m.Version(); err == nil {
		log.Infow("Migrations applied successfully", "currentVersion", v)
	}
	return nil
}

// Down rolls back the given number of migrations.
func (mg *Migrator) Down(steps int) error {
	if steps <= 0 {
		return fmt.Errorf("steps must be positive, got %d", steps)
	}
	if err := mg.m.Steps(-steps); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("rollback failed: %w", err)
	}
	return nil
}

// Version reports the applied version; zero means nothing has been applied.
func (mg *Migrator) Version() (uint, bool, error) {
	v, dirty, err := mg.m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	return v, dirty, err
}

// RunMigrations applies pending migrations; used at startup.
func RunMigrations(dbURL string) error {
	mg, err := NewMigrator(dbURL)
	if err != nil {
		return err
	}
	defer mg.Close()
	return mg.Up()
}

// convertToPgx5URL swaps the scheme for the one golang-migrate's pgx v5
// driver registers.
func convertToPgx5URL(dbURL string) string {
	for _, prefix := range []string{"postgresql://", "postgres://"} {
		if strings.HasPrefix(dbURL, prefix) {
			return "pgx5://" + strings.TrimPrefix(dbURL, prefix)
		}
	}
	return dbURL
}
