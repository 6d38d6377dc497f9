package builder

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pantrypal/onboarding-backend/internal/monitor"
	"go.uber.org/zap"
)

// App represents the application with all its components
type App struct {
	server          *http.Server
	heartbeat       *monitor.Heartbeat
	closers         []func()
	shutdownTimeout time.Duration
	logger          *zap.Logger
}

// Run starts the application and all its daemons
func (a *App) Run() error {
	defer func() { _ = a.logger.Sync() }()

	a.heartbeat.Start()

	errChan := make(chan error, 1)
	go func() {
		a.logger.Info("Starting HTTP server", zap.String("addr", a.server.Addr))
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	var runErr error
	select {
	case runErr = <-errChan:
		a.logger.Error("Server error", zap.Error(runErr))
	case sig := <-sigChan:
		a.logger.Info("Received shutdown signal", zap.String("signal", sig.String()))
	}

	if err := a.shutdown(); err != nil && runErr == nil {
		runErr = err
	}
	return runErr
}

// shutdown drains in-flight requests, then releases the heartbeat and backing resources
func (a *App) shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), a.shutdownTimeout)
	defer cancel()

	a.logger.Info("Shutting down server gracefully", zap.Duration("timeout", a.shutdownTimeout))

	err := a.server.Shutdown(ctx)
	if err != nil {
		a.logger.Error("Server shutdown error", zap.Error(err))
	}

	a.heartbeat.Stop(ctx)

	a.logger.Info("Releasing resources")
	for _, closeFn := range a.closers {
		closeFn()
	}

	a.logger.Info("Application stopped gracefully")
	return err
}
