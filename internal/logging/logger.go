package logging

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"

	"causes-api/internal/config"
)

// New builds a logrus logger from the log configuration. Unknown levels fall
// back to info.
func New(cfg config.LogConfig) *logrus.Logger {
	return NewWithOutput(cfg, os.Stdout)
}

// NewWithOutput is New with an explicit writer.
func NewWithOutput(cfg config.LogConfig, out io.Writer) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(out)

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	if cfg.Format == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	return logger
}
