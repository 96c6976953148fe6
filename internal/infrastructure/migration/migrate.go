// Package migration wraps golang-migrate for the schema files under
// migrations/ and creates new timestamped up/down pairs.
package migration

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"go.uber.org/zap"
)

// Migrator runs SQL migrations against the menu database
type Migrator struct {
	m      *migrate.Migrate
	logger *zap.Logger
}

// New builds a Migrator on an already open postgres connection
func New(db *sql.DB, migrationsPath string, logger *zap.Logger) (*Migrator, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return nil, fmt.Errorf("postgres migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance("file://"+migrationsPath, "postgres", driver)
	if err != nil {
		return nil, fmt.Errorf("open migration source: %w", err)
	}

	return &Migrator{m: m, logger: logger}, nil
}

// Up applies every pending migration
func (mg *Migrator) Up() error {
	mg.logger.Info("Applying pending migrations")
	return mg.finish("up", mg.m.Up())
}

// Down rolls back every applied migration
func (mg *Migrator) Down() error {
	mg.logger.Info("Rolling back all migrations")
	return mg.finish("down", mg.m.Down())
}

// Steps applies n migrations; a negative n rolls back
func (mg *Migrator) Steps(n int) error {
	mg.logger.Info("Applying migration steps", zap.Int("steps", n))
	return mg.finish("steps", mg.m.Steps(n))
}

// GoTo migrates up or down until the schema is at the given version
func (mg *Migrator) GoTo(version uint) error {
	mg.logger.Info("Migrating to version", zap.Uint("target", version))
	return mg.finish("goto", mg.m.Migrate(version))
}

// finish folds the shared no-change handling and logs the version the
// schema ended up at
func (mg *Migrator) finish(op string, err error) error {
	if errors.Is(err, migrate.ErrNoChange) {
		mg.logger.Info("Schema already up to date")
		return nil
	}
	if err != nil {
		return fmt.Errorf("migration %s: %w", op, err)
	}
	if version, dirty, verr := mg.Version(); verr == nil {
		mg.logger.Info("Migration finished",
			zap.Uint("version", version),
			zap.Bool("dirty", dirty))
	}
	return nil
}

// Version reports the current schema version. A database with no applied
// migrations reports version 0.
func (mg *Migrator) Version() (uint, bool, error) {
	version, dirty, err := mg.m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("read schema version: %w", err)
	}
	return version, dirty, nil
}

// Force overwrites the recorded version without running any SQL. This is
// the escape hatch for a dirty schema after a failed migration.
func (mg *Migrator) Force(version int) error {
	mg.logger.Warn("Forcing schema version", zap.Int("version", version))
	if err := mg.m.Force(version); err != nil {
		return fmt.Errorf("force version %d: %w", version, err)
	}
	return nil
}

// Drop removes every object in the database, menu data included
func (mg *Migrator) Drop() error {
	mg.logger.Warn("Dropping all database objects")
	if err := mg.m.Drop(); err != nil {
		return fmt.Errorf("drop database: %w", err)
	}
	return nil
}

// Close releases the migration source and the database handle
func (mg *Migrator) Close() error {
	srcErr, dbErr := mg.m.Close()
	if srcErr != nil {
		return fmt.Errorf("close migration source: %w", srcErr)
	}
	return dbErr
}
