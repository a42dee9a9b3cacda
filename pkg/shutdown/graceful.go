// Package shutdown runs cleanup hooks once the process is asked to stop.
package shutdown

import (
	"context"
	"errors"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"go.uber.org/zap"

	"notesapi/pkg/logger"
)

// Hook releases one resource. It must honour ctx cancellation.
type Hook func(ctx context.Context) error

const (
	LogSignalReceived = "shutdown signal received"
	LogHookFailed     = "shutdown hook failed"
	LogTimeoutExpired = "shutdown timeout expired before all hooks finished"
)

// ErrTimeout is returned when hooks did not finish within the timeout.
var ErrTimeout = errors.New("shutdown timed out")

// Wait blocks until SIGINT or SIGTERM arrives or ctx is cancelled, then runs
// all hooks within timeout.
func Wait(ctx context.Context, timeout time.Duration, hooks ...Hook) error {
	sigCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-sigCtx.Done()
	logger.Log(ctx).Info(ctx, LogSignalReceived)

	return Run(context.WithoutCancel(ctx), timeout, hooks...)
}

// Run executes hooks concurrently and waits for them or for the timeout.
// Hook errors are joined into the returned error.
func Run(ctx context.Context, timeout time.Duration, hooks ...Hook) error {
	log := logger.Log(ctx)

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs []error
	)
	for _, hook := range hooks {
		wg.Add(1)
		go func(fn Hook) {
			defer wg.Done()
			if err := fn(ctx); err != nil {
				log.Error(ctx, LogHookFailed, zap.Error(err))
				mu.Lock()
				errs = append(errs, err)
				mu.Unlock()
			}
		}(hook)
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		log.Warn(ctx, LogTimeoutExpired, zap.Duration("timeout", timeout))
		mu.Lock()
		errs = append(errs, ErrTimeout)
		mu.Unlock()
	}

	mu.Lock()
	defer mu.Unlock()
	return errors.Join(errs...)
}
