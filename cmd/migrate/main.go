package main

import (
	"flag"
	"fmt"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"causes-api/internal/config"
	"causes-api/internal/database"
)

func main() {
	var (
		dbPath  = flag.String("db", config.GetEnv("DB_CONNECTION_STRING", "./data/causes.db"), "Database file path")
		action  = flag.String("action", "up", "Migration action: up, down, status")
		verbose = flag.Bool("verbose", false, "Enable verbose logging")
	)
	flag.Parse()

	logger := logrus.New()
	if *verbose {
		logger.SetLevel(logrus.DebugLevel)
	}

	absDBPath, err := filepath.Abs(*dbPath)
	if err != nil {
		logger.WithError(err).Fatal("Failed to get absolute database path")
	}

	logger.WithFields(logrus.Fields{
		"db_path": absDBPath,
		"action":  *action,
	}).Info("Starting migration tool")

	mm := database.NewMigrationManager(absDBPath, logger)

	switch *action {
	case "up":
		if err := mm.RunMigrations(); err != nil {
			logger.WithError(err).Fatal("Migration up failed")
		}
	case "down":
		if err := mm.RollbackMigration(); err != nil {
			logger.WithError(err).Fatal("Migration down failed")
		}
	case "status":
		if err := showMigrationStatus(mm); err != nil {
			logger.WithError(err).Fatal("Failed to get migration status")
		}
	default:
		logger.WithField("action", *action).Fatal("Unknown action. Use: up, down, status")
	}

	logger.Info("Migration tool completed successfully")
}

func showMigrationStatus(mm *database.MigrationManager) error {
	status, err := mm.GetMigrationStatus()
	if err != nil {
		return err
	}

	fmt.Printf("Migration Status:\n")
	fmt.Printf("  Version: %d\n", status.Version)
	fmt.Printf("  Applied: %t\n", status.Applied)
	fmt.Printf("  Dirty: %t\n", status.Dirty)

	return nil
}
