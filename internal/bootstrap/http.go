package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/target/hr-console/config"
	httpx "github.com/target/hr-console/internal/http"
)

// HTTPServerConfig contains configuration for HTTP server.
type HTTPServerConfig struct {
	Config   *config.AppConfig
	Services ServiceContainer
	Logger   *slog.Logger
}

// BuildHTTPHandler assembles the console router from the service container.
func BuildHTTPHandler(cfg *HTTPServerConfig) (http.Handler, error) {
	if cfg == nil || cfg.Config == nil {
		return nil, errors.New("http server config is required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	app := cfg.Config

	services := httpx.RouterServices{
		Auth:        cfg.Services.Auth,
		Sessions:    cfg.Services.Sessions,
		Employees:   cfg.Services.Employees,
		Departments: cfg.Services.Departments,
		Contracts:   cfg.Services.Contracts,
		Attendance:  cfg.Services.Attendance,
		Dashboard:   cfg.Services.Dashboard,
		Cookies: httpx.CookieConfig{
			SessionName: app.Session.CookieName,
			Domain:      app.HTTP.CookieDomain,
			Secure:      app.HTTP.SecureCookies(),
		},
		LogoutOnUnauthorized: app.Gateway.LogoutOnUnauthorized,
		IsDev:                app.IsDev,
		Logger:               logger,
	}
	if app.HTTP.CompressionEnabled {
		logger.Info("HTTP compression enabled", "level", app.HTTP.CompressionLevel)
		services.Compression = &httpx.CompressionConfig{Level: app.HTTP.CompressionLevel, Logger: logger}
	}

	handler, err := httpx.NewRouter(services)
	if err != nil {
		return nil, fmt.Errorf("build router: %w", err)
	}
	return handler, nil
}

// StartHTTPServer builds the handler and starts serving in the background.
// Listen errors are sent on errCh.
func StartHTTPServer(cfg *HTTPServerConfig, errCh chan<- error) (*http.Server, error) {
	handler, err := BuildHTTPHandler(cfg)
	if err != nil {
		return nil, err
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return startServer(logger, handler, cfg.Config.HTTP.Addr, errCh), nil
}

func startServer(logger *slog.Logger, handler http.Handler, addr string, errCh chan<- error) *http.Server {
	if addr == "" {
		addr = ":8080"
	}

	server := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		logger.Info("starting HTTP server", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			select {
			case errCh <- fmt.Errorf("http server: %w", err):
			default:
				logger.Error("HTTP server failed", "error", err)
			}
		}
	}()

	return server
}

// ShutdownHTTPServer gracefully shuts down the HTTP server.
func ShutdownHTTPServer(ctx context.Context, server *http.Server, logger *slog.Logger) error {
	if server == nil {
		return nil
	}
	if logger != nil {
		logger.Info("shutting down HTTP server")
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, shutdownWaitTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if logger != nil {
		logger.Info("HTTP server stopped")
	}
	return nil
}
