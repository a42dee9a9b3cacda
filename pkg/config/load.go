// Package config loads service configuration from an optional dotenv file and the environment.
package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"notesapi/pkg/logger"
)

const (
	msgLoadingConfiguration = "loading configuration"
	msgConfigurationLoaded  = "configuration loaded successfully"
	msgEnvFileLoaded        = "dotenv file loaded"
	msgEnvFileSkipped       = "dotenv file not found, using process environment"

	errFailedLoadEnvFile       = "failed to load dotenv file"
	errFailedLoadConfiguration = "failed to load configuration"

	attrService = "service"
	attrPath    = "path"
)

// Load reads envFile into the process environment when it exists, then fills
// a T from environment variables using its cleanenv tags. Variables already
// set in the environment win over the file. An empty envFile skips the file.
func Load[T any](ctx context.Context, serviceName, envFile string) (*T, error) {
	log := logger.Log(ctx)

	log.Info(ctx, msgLoadingConfiguration,
		zap.String(attrService, serviceName),
		zap.String(attrPath, envFile))

	if envFile != "" {
		err := godotenv.Load(envFile)
		switch {
		case err == nil:
			log.Debug(ctx, msgEnvFileLoaded, zap.String(attrPath, envFile))
		case errors.Is(err, fs.ErrNotExist):
			log.Debug(ctx, msgEnvFileSkipped, zap.String(attrPath, envFile))
		default:
			log.Error(ctx, errFailedLoadEnvFile, zap.String(attrPath, envFile), zap.Error(err))
			return nil, fmt.Errorf("%s: %w", errFailedLoadEnvFile, err)
		}
	}

	var cfg T
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		log.Error(ctx, errFailedLoadConfiguration,
			zap.String(attrService, serviceName),
			zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errFailedLoadConfiguration, err)
	}

	log.Info(ctx, msgConfigurationLoaded, zap.String(attrService, serviceName))

	return &cfg, nil
}
