// Package main is the entry point of the notes service.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	notehttp "notesapi/internal/notes/adapters/http"
	"notesapi/internal/notes/app"
	"notesapi/internal/notes/config"
	"notesapi/internal/notes/domain/entities"
	"notesapi/pkg/logger"
	"notesapi/pkg/shutdown"
)

const (
	EnvLoggerMode  = "NOTES_LOGGER_MODE"
	EnvLoggerLevel = "NOTES_LOGGER_LEVEL"
)

const (
	ErrInitLogger           = "failed to initialize logger"
	ErrSyncLogger           = "failed to sync logger"
	ErrLoadConfig           = "failed to load configuration"
	ErrInitLoggerWithConfig = "failed to initialize logger with configuration settings"
	ErrInitStore            = "failed to initialize note store"
	ErrStartHTTPServer      = "failed to start HTTP server"
	ErrShutdown             = "shutdown finished with errors"
)

// Sync errors zap reports for terminals; they are harmless.
const (
	ErrSyncStderr = "sync /dev/stderr: invalid argument"
	ErrSyncStdout = "sync /dev/stdout: invalid argument"
)

const (
	LogServiceStarted      = "notes service started"
	LogServiceShutdownDone = "notes service shutdown complete"
	LogInitStore           = "initializing note store"
	LogStoreReady          = "note store ready"
	LogInitHTTPServer      = "initializing HTTP server"
	LogStartingHTTP        = "server running"
	LogStoppingHTTP        = "stopping HTTP server"
)

func main() {
	env := logger.Development
	if strings.ToLower(os.Getenv(EnvLoggerMode)) == "production" {
		env = logger.Production
	}

	log, err := logger.NewLogger(env, os.Getenv(EnvLoggerLevel))
	if err != nil {
		panic(ErrInitLogger + ": " + err.Error())
	}

	logger.SetGlobalLogger(log)

	ctx := logger.NewRequestIDContext(context.Background(), "")

	var exitCode int

	func() {
		defer func() {
			if err := log.Sync(); err != nil {
				errMsg := err.Error()
				if strings.Contains(errMsg, ErrSyncStderr) || strings.Contains(errMsg, ErrSyncStdout) {
					return
				}
				if _, writeErr := fmt.Fprintf(os.Stderr, "%s: %v\n", ErrSyncLogger, err); writeErr != nil {
					panic(writeErr)
				}
			}
		}()

		cfg, err := config.Load(ctx)
		if err != nil {
			log.Error(ctx, ErrLoadConfig, zap.Error(err))
			exitCode = 1
			return
		}

		finalLogger, err := logger.NewLogger(cfg.Logging.GetEnvironment(), cfg.Logging.Level)
		if err != nil {
			log.Error(ctx, ErrInitLoggerWithConfig, zap.Error(err))
			exitCode = 1
			return
		}
		logger.SetGlobalLogger(finalLogger)
		log = finalLogger

		log.Info(ctx, LogServiceStarted,
			zap.String("environment", string(cfg.Logging.GetEnvironment())),
			zap.String("log_level", cfg.Logging.Level),
			zap.String("startup_time", time.Now().Format(time.RFC3339)))

		log.Info(ctx, LogInitStore, zap.Bool("seed", cfg.Features.Seed))
		var opts []app.Option
		if cfg.Features.Seed {
			opts = append(opts, app.WithNotes(entities.SeedNotes()...))
		}
		store, err := app.NewNoteStore(opts...)
		if err != nil {
			log.Error(ctx, ErrInitStore, zap.Error(err))
			exitCode = 1
			return
		}
		log.Info(ctx, LogStoreReady, zap.Int("notes", store.Len()))

		log.Info(ctx, LogInitHTTPServer)
		server := fiber.New(fiber.Config{
			ReadTimeout:  cfg.HTTP.ReadTimeout,
			WriteTimeout: cfg.HTTP.WriteTimeout,
		})

		notehttp.SetupRouter(server, store, notehttp.RouterConfig{
			EnablePut:       cfg.Features.EnablePut,
			UnknownEndpoint: cfg.Features.UnknownEndpoint,
			StaticDir:       cfg.Features.StaticDir,
			CORSOrigins:     cfg.Features.CORSOrigins,
		})

		log.Info(ctx, LogStartingHTTP,
			zap.String("address", cfg.HTTP.GetAddress()),
			zap.Int("pid", os.Getpid()))

		serveCtx, stopServing := context.WithCancel(ctx)
		defer stopServing()

		listenErr := make(chan error, 1)
		go func() {
			if err := server.Listen(cfg.HTTP.GetAddress(), fiber.ListenConfig{
				DisableStartupMessage: true,
			}); err != nil {
				log.Error(ctx, ErrStartHTTPServer, zap.Error(err))
				listenErr <- err
				stopServing()
			}
		}()

		err = shutdown.Wait(serveCtx, cfg.Shutdown.GetTimeout(),
			func(ctx context.Context) error {
				log.Info(ctx, LogStoppingHTTP)
				return server.ShutdownWithContext(ctx)
			},
		)
		if err != nil {
			log.Error(ctx, ErrShutdown, zap.Error(err))
			exitCode = 1
		}

		select {
		case <-listenErr:
			exitCode = 1
		default:
		}

		log.Info(ctx, LogServiceShutdownDone)
	}()

	if exitCode != 0 {
		os.Exit(exitCode)
	}
}
