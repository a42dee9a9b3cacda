// Package config holds the notes service configuration.
package config

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"

	pkgconfig "notesapi/pkg/config"
	"notesapi/pkg/logger"
)

// ServiceName identifies the notes service in logs.
const ServiceName = "notes"

// EnvFileVariable names the variable that points at an optional dotenv file.
const EnvFileVariable = "NOTES_ENV_FILE"

const defaultEnvFile = ".env"

const (
	LogConfigSummary    = "notes service configuration"
	ErrFailedLoadConfig = "failed to load notes configuration"
)

// Config is the full notes service configuration.
type Config struct {
	HTTP     HTTPConfig     `yaml:"http"`
	Logging  LoggingConfig  `yaml:"logging"`
	Shutdown ShutdownConfig `yaml:"shutdown"`
	Features FeaturesConfig `yaml:"features"`
}

// Load reads the configuration from the environment, after applying the
// dotenv file named by NOTES_ENV_FILE (".env" when unset).
func Load(ctx context.Context) (*Config, error) {
	envFile, ok := os.LookupEnv(EnvFileVariable)
	if !ok {
		envFile = defaultEnvFile
	}

	cfg, err := pkgconfig.Load[Config](ctx, ServiceName, envFile)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrFailedLoadConfig, err)
	}

	logger.Log(ctx).Info(ctx, LogConfigSummary,
		zap.String("http_address", cfg.HTTP.GetAddress()),
		zap.String("log_level", cfg.Logging.Level),
		zap.String("log_mode", cfg.Logging.Mode),
		zap.Int("shutdown_timeout_seconds", cfg.Shutdown.Timeout),
		zap.Bool("put_enabled", cfg.Features.EnablePut),
		zap.Bool("unknown_endpoint_enabled", cfg.Features.UnknownEndpoint),
		zap.String("static_dir", cfg.Features.StaticDir),
		zap.Bool("seed", cfg.Features.Seed))

	return cfg, nil
}
