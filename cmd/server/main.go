package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"causes-api/internal/config"
	"causes-api/internal/handlers"
	"causes-api/pkg/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("Failed to load configuration")
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	container, err := server.NewContainer(context.Background(), cfg)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to initialize container")
	}
	defer container.Close()

	logger := container.Logger
	if container.TokenVerifier == nil {
		logger.Warn("JWT_SECRET is not set, every /api/v1 request will be rejected")
	}

	router := handlers.NewRouter(&handlers.RouterConfig{
		CausesHandler: container.CausesHandler,
		Verifier:      container.TokenVerifier,
		RateLimit:     cfg.RateLimit,
		Logger:        logger,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Fatal("Failed to start server")
		}
	}()

	logger.WithFields(logrus.Fields{
		"port":  cfg.Port,
		"store": cfg.Store.Type,
	}).Info("Server started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.WithError(err).Error("Server forced to shutdown")
	}

	logger.Info("Server exited")
}
