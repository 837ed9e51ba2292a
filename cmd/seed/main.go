package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/sirupsen/logrus"

	"causes-api/internal/config"
	"causes-api/internal/logging"
	"causes-api/internal/seed"
	"causes-api/pkg/server"
)

func main() {
	var (
		file    = flag.String("file", "./data/causes.json", "JSON file holding an array of causes")
		dryRun  = flag.Bool("dry-run", false, "Validate the file without writing")
		verbose = flag.Bool("verbose", false, "Enable verbose logging")
	)
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("Failed to load configuration")
	}
	if *verbose {
		cfg.Log.Level = "debug"
	}
	logger := logging.New(cfg.Log)

	logger.WithFields(logrus.Fields{
		"file":    *file,
		"store":   cfg.Store.Type,
		"table":   cfg.Store.Table,
		"dry_run": *dryRun,
	}).Info("Starting seed tool")

	ctx := context.Background()

	s, closers, err := server.OpenStore(ctx, cfg, logger)
	if err != nil {
		logger.WithError(err).Fatal("Failed to open store")
	}
	defer func() {
		s.Close()
		for _, c := range closers {
			c()
		}
	}()

	result, err := seed.NewSeeder(s, cfg.Store.Table, logger).Seed(ctx, *file, *dryRun)
	if err != nil {
		logger.WithError(err).Fatal("Seeding failed")
	}

	fmt.Printf("Seed Results:\n")
	fmt.Printf("  Read: %d\n", result.Read)
	fmt.Printf("  Written: %d\n", result.Written)
	fmt.Printf("  Skipped: %d\n", result.Skipped)
	for _, w := range result.Warnings {
		fmt.Printf("  Warning: %s\n", w)
	}
}
