package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/target/hr-console/config"
	"github.com/target/hr-console/internal/service"
)

const shutdownWaitTimeout = 10 * time.Second

// RunConfig contains everything Run needs.
type RunConfig struct {
	Config *config.AppConfig
	Logger *slog.Logger
}

// Run connects the session backend, wires the services and serves until SIGINT/SIGTERM
// or a fatal server error.
func Run(ctx context.Context, cfg *RunConfig) error {
	if cfg == nil || cfg.Config == nil {
		return errors.New("run config is required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	app := cfg.Config

	backend, err := BuildSessionBackend(ctx, SessionBackendConfig{Config: app, Logger: logger})
	if err != nil {
		return err
	}
	defer func() {
		if cerr := backend.Close(); cerr != nil {
			logger.ErrorContext(ctx, "close session backend failed", "error", cerr)
		}
	}()

	services, err := NewServices(ctx, &ServiceDeps{Config: app, Sessions: backend, Logger: logger})
	if err != nil {
		return err
	}

	reaper, err := backend.NewReaper(app.Session, logger)
	if err != nil {
		return fmt.Errorf("session reaper: %w", err)
	}

	serviceCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	errCh := make(chan error, 2)

	server, err := StartHTTPServer(&HTTPServerConfig{Config: app, Services: services, Logger: logger}, errCh)
	if err != nil {
		return err
	}

	reaperDone := startReaper(serviceCtx, reaper, errCh, logger)

	return waitForShutdown(shutdownConfig{
		ctx:        ctx,
		cancel:     cancel,
		errCh:      errCh,
		httpServer: server,
		reaperDone: reaperDone,
		logger:     logger,
	})
}

func startReaper(ctx context.Context, reaper *service.SessionReaper, errCh chan<- error, logger *slog.Logger) <-chan struct{} {
	if reaper == nil {
		return nil
	}
	done := make(chan struct{})
	go func() {
		defer close(done)
		if err := reaper.Run(ctx); err != nil {
			select {
			case errCh <- fmt.Errorf("session reaper failed: %w", err):
			case <-ctx.Done():
			default:
				logger.WarnContext(ctx, "dropping background service error", "service", "session reaper", "error", err)
			}
		}
	}()
	logger.InfoContext(ctx, "background service started", "service", "session reaper")
	return done
}

// shutdownConfig contains dependencies for graceful shutdown.
type shutdownConfig struct {
	ctx        context.Context
	cancel     context.CancelFunc
	errCh      <-chan error
	httpServer *http.Server
	reaperDone <-chan struct{}
	logger     *slog.Logger
}

// waitForShutdown waits for a shutdown signal, a cancelled parent context or a service error.
func waitForShutdown(cfg shutdownConfig) error {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case <-quit:
		cfg.logger.Info("shutting down services...")
		cfg.cancel()
		return gracefulStop(cfg)
	case <-cfg.ctx.Done():
		cfg.logger.Info("shutting down services...")
		cfg.cancel()
		return gracefulStop(cfg)
	case err := <-cfg.errCh:
		cfg.logger.Error("service error", "error", err)
		cfg.cancel()
		if stopErr := gracefulStop(cfg); stopErr != nil {
			cfg.logger.Error("graceful stop failed", "error", stopErr)
		}
		return err
	}
}

// gracefulStop drains the HTTP server, then waits for background services.
func gracefulStop(cfg shutdownConfig) error {
	// The service context is already cancelled; shutdown gets its own deadline.
	if err := ShutdownHTTPServer(context.WithoutCancel(cfg.ctx), cfg.httpServer, cfg.logger); err != nil {
		return err
	}
	waitForService(cfg.reaperDone, "session reaper", cfg.logger)
	return nil
}

// waitForService waits for a service to finish with timeout.
func waitForService(done <-chan struct{}, name string, logger *slog.Logger) {
	if done == nil {
		return
	}
	select {
	case <-done:
		logger.Info(name + " stopped")
	case <-time.After(shutdownWaitTimeout):
		logger.Warn("timeout waiting for " + name + " to stop")
	}
}
