package main

import (
	"fmt"
	"log/slog"

	"github.com/phrazzld/crud-suite/internal/config"
	"github.com/phrazzld/crud-suite/internal/platform/logger"
)

// loadAppConfig loads the application configuration from environment variables or config file.
func loadAppConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, nil
}

// setupAppLogger configures the process-wide logger from the server settings.
func setupAppLogger(cfg *config.Config) (*slog.Logger, error) {
	l, err := logger.Setup(logger.LoggerConfig{Level: cfg.Server.LogLevel})
	if err != nil {
		return nil, fmt.Errorf("failed to set up logger: %w", err)
	}

	l.Info("server configuration loaded",
		"port", cfg.Server.Port,
		"grpc_port", cfg.Server.GRPCPort,
		"log_level", cfg.Server.LogLevel,
		"services", cfg.Services.Enabled)
	// The URL may carry a password, so only log that one is set
	if cfg.Redis.URL != "" {
		l.Debug("redis configuration", "url_present", true)
	}
	return l, nil
}
