package server

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"causes-api/internal/adapters/store"
	"causes-api/internal/adapters/store/dynamo"
	"causes-api/internal/adapters/store/sqlite"
	"causes-api/internal/auth"
	"causes-api/internal/config"
	"causes-api/internal/database"
	"causes-api/internal/handlers"
	"causes-api/internal/logging"
	"causes-api/internal/services"
)

// Container holds all application dependencies
type Container struct {
	Config        *config.Config
	Logger        *logrus.Logger
	Store         store.Store
	CauseService  services.CauseService
	CausesHandler *handlers.CausesHandler
	TokenVerifier *auth.TokenVerifier

	// Internal dependencies
	closers []func() error
}

// NewContainer creates a new dependency injection container
func NewContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	logger := logging.New(cfg.Log)

	c := &Container{
		Config: cfg,
		Logger: logger,
	}

	s, closers, err := OpenStore(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s store: %w", cfg.Store.Type, err)
	}
	c.Store = s
	c.closers = append(closers, s.Close)

	c.CauseService = services.NewCauseService(s, cfg.Store.Table, logger)
	c.CausesHandler = handlers.NewCausesHandler(c.CauseService, logger)
	if cfg.JWT.Secret != "" {
		c.TokenVerifier = auth.NewTokenVerifier(cfg.JWT.Secret, cfg.JWT.Issuer)
	}

	logger.WithFields(logrus.Fields{
		"store": cfg.Store.Type,
		"table": cfg.Store.Table,
		"mode":  config.GetDeploymentMode(),
	}).Info("Container initialized")

	return c, nil
}

// OpenStore builds the store selected by cfg.Store.Type. The returned closers
// release resources the store does not own itself.
func OpenStore(ctx context.Context, cfg *config.Config, logger *logrus.Logger) (store.Store, []func() error, error) {
	switch cfg.Store.Type {
	case config.StoreTypeMemory:
		return store.NewMemoryStore(map[string][]store.Record{
			cfg.Store.Table: store.DemoRecords(),
		}), nil, nil

	case config.StoreTypeSQLite:
		cm := database.NewConnectionManager(database.ConnectionConfigFrom(cfg.Database, logger))
		if err := cm.Connect(ctx); err != nil {
			return nil, nil, err
		}
		return sqlite.New(cm.GetDB(), logger), []func() error{cm.Close}, nil

	case config.StoreTypeDynamoDB:
		s, err := dynamo.NewFromConfig(ctx, cfg.Store, logger)
		if err != nil {
			return nil, nil, err
		}
		return s, nil, nil

	default:
		return nil, nil, fmt.Errorf("unsupported store type: %q", cfg.Store.Type)
	}
}

// Close cleans up all resources in reverse order of acquisition
func (c *Container) Close() error {
	var firstErr error
	for i := len(c.closers) - 1; i >= 0; i-- {
		if err := c.closers[i](); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	c.closers = nil

	if firstErr != nil {
		return fmt.Errorf("failed to close container: %w", firstErr)
	}
	return nil
}
