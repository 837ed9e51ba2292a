package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/sirupsen/logrus"

	"causes-api/internal/config"
)

// ConnectionConfig holds database connection configuration
type ConnectionConfig struct {
	DatabasePath    string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	AutoMigrate     bool
	Logger          *logrus.Logger
}

// DefaultConnectionConfig returns a default configuration
func DefaultConnectionConfig() *ConnectionConfig {
	return &ConnectionConfig{
		DatabasePath:    "./data/causes.db",
		MaxOpenConns:    1, // SQLite works best with single connection
		MaxIdleConns:    1,
		ConnMaxLifetime: time.Hour,
		AutoMigrate:     true,
		Logger:          logrus.New(),
	}
}

// ConnectionConfigFrom builds a ConnectionConfig from application configuration
func ConnectionConfigFrom(cfg config.DatabaseConfig, logger *logrus.Logger) *ConnectionConfig {
	cc := DefaultConnectionConfig()
	cc.DatabasePath = cfg.ConnectionString
	if cfg.MaxOpenConns > 0 {
		cc.MaxOpenConns = cfg.MaxOpenConns
	}
	if cfg.MaxIdleConns > 0 {
		cc.MaxIdleConns = cfg.MaxIdleConns
	}
	if logger != nil {
		cc.Logger = logger
	}
	return cc
}

// ConnectionManager manages the SQLite connection
type ConnectionManager struct {
	config *ConnectionConfig
	db     *sql.DB
}

// NewConnectionManager creates a new connection manager
func NewConnectionManager(config *ConnectionConfig) *ConnectionManager {
	if config.Logger == nil {
		config.Logger = logrus.New()
	}
	return &ConnectionManager{
		config: config,
	}
}

// Connect opens the database and, when AutoMigrate is set, brings the schema
// up to date first.
func (cm *ConnectionManager) Connect(ctx context.Context) error {
	if cm.db != nil {
		return fmt.Errorf("database connection already established")
	}

	dbPath, err := filepath.Abs(cm.config.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to get absolute database path: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return fmt.Errorf("failed to create database directory: %w", err)
	}

	if cm.config.AutoMigrate {
		if err := NewMigrationManager(dbPath, cm.config.Logger).RunMigrations(); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL")
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(cm.config.MaxOpenConns)
	db.SetMaxIdleConns(cm.config.MaxIdleConns)
	db.SetConnMaxLifetime(cm.config.ConnMaxLifetime)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return fmt.Errorf("failed to ping database: %w", err)
	}

	cm.db = db
	cm.config.Logger.WithField("db_path", dbPath).Info("Database connection established")
	return nil
}

// GetDB returns the database connection
func (cm *ConnectionManager) GetDB() *sql.DB {
	return cm.db
}

// Close closes the database connection
func (cm *ConnectionManager) Close() error {
	if cm.db == nil {
		return nil
	}

	err := cm.db.Close()
	cm.db = nil

	if err != nil {
		return fmt.Errorf("failed to close database connection: %w", err)
	}

	cm.config.Logger.Info("Database connection closed")
	return nil
}

// Ping tests the database connection
func (cm *ConnectionManager) Ping(ctx context.Context) error {
	if cm.db == nil {
		return fmt.Errorf("database connection not established")
	}

	if err := cm.db.PingContext(ctx); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}

	return nil
}
