package database

import (
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/sirupsen/logrus"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

// MigrationManager handles schema migrations for the local causes store
type MigrationManager struct {
	dbPath string
	logger *logrus.Logger
}

// NewMigrationManager creates a new migration manager for the database file at dbPath
func NewMigrationManager(dbPath string, logger *logrus.Logger) *MigrationManager {
	if logger == nil {
		logger = logrus.New()
	}
	return &MigrationManager{
		dbPath: dbPath,
		logger: logger,
	}
}

// MigrationInfo contains information about the applied schema
type MigrationInfo struct {
	Version uint
	Dirty   bool
	Applied bool
}

// RunMigrations executes all pending migrations
func (m *MigrationManager) RunMigrations() error {
	m.logger.Info("Starting database migrations...")

	mg, err := m.initMigrate()
	if err != nil {
		return err
	}
	defer mg.Close()

	if err := mg.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	version, _, err := mg.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("failed to get migration version: %w", err)
	}

	m.logger.WithField("version", version).Info("Migrations completed successfully")
	return nil
}

// RollbackMigration rolls back the last migration
func (m *MigrationManager) RollbackMigration() error {
	mg, err := m.initMigrate()
	if err != nil {
		return err
	}
	defer mg.Close()

	if _, _, err := mg.Version(); err != nil {
		if errors.Is(err, migrate.ErrNilVersion) {
			return fmt.Errorf("no migrations to rollback")
		}
		return fmt.Errorf("failed to get current migration version: %w", err)
	}

	if err := mg.Steps(-1); err != nil {
		return fmt.Errorf("failed to rollback migration: %w", err)
	}

	m.logger.Info("Rollback completed successfully")
	return nil
}

// GetMigrationStatus returns the current migration status
func (m *MigrationManager) GetMigrationStatus() (*MigrationInfo, error) {
	mg, err := m.initMigrate()
	if err != nil {
		return nil, err
	}
	defer mg.Close()

	version, dirty, err := mg.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return &MigrationInfo{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get migration version: %w", err)
	}

	return &MigrationInfo{
		Version: version,
		Dirty:   dirty,
		Applied: true,
	}, nil
}

// initMigrate builds a migrate instance over the embedded migrations. The
// sqlite3 driver opens and closes its own connection.
func (m *MigrationManager) initMigrate() (*migrate.Migrate, error) {
	source, err := iofs.New(migrationFiles, "migrations")
	if err != nil {
		return nil, fmt.Errorf("failed to open migration source: %w", err)
	}

	mg, err := migrate.NewWithSourceInstance("iofs", source, "sqlite3://"+m.dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create migrate instance: %w", err)
	}

	return mg, nil
}
