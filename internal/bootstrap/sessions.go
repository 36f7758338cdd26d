package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/target/hr-console/config"
	"github.com/target/hr-console/internal/adapters/memory"
	"github.com/target/hr-console/internal/adapters/postgres"
	redisadapter "github.com/target/hr-console/internal/adapters/redis"
	"github.com/target/hr-console/internal/ports"
	"github.com/target/hr-console/internal/service"
)

// SessionBackend is the session store selected by SESSION_BACKEND plus whatever
// connections it owns.
type SessionBackend struct {
	Name  config.SessionBackend
	Store ports.SessionStore
	// Purger is nil for backends that expire entries on their own (redis).
	Purger  ports.SessionPurger
	closers []io.Closer
}

// Close releases the backend's connections.
func (b *SessionBackend) Close() error {
	if b == nil {
		return nil
	}
	var errs []error
	for i := len(b.closers) - 1; i >= 0; i-- {
		if err := b.closers[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// NewReaper returns a SessionReaper for backends that need periodic purging, or nil.
func (b *SessionBackend) NewReaper(cfg config.SessionConfig, logger *slog.Logger) (*service.SessionReaper, error) {
	if b == nil || b.Purger == nil {
		return nil, nil //nolint:nilnil // nil reaper means nothing to purge
	}
	return service.NewSessionReaper(service.SessionReaperOptions{
		Purger:   b.Purger,
		Interval: cfg.ReapInterval,
		Logger:   logger,
	})
}

// SessionBackendConfig contains configuration for the session store.
type SessionBackendConfig struct {
	Config *config.AppConfig
	Logger *slog.Logger
}

// BuildSessionBackend connects the configured session store.
func BuildSessionBackend(ctx context.Context, cfg SessionBackendConfig) (*SessionBackend, error) {
	if cfg.Config == nil {
		return nil, errors.New("session backend config is required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	app := cfg.Config

	switch app.Session.Backend {
	case config.SessionBackendRedis:
		client, err := ConnectRedis(ctx, app.Redis, logger)
		if err != nil {
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		return &SessionBackend{
			Name:    config.SessionBackendRedis,
			Store:   redisadapter.NewSessionStoreWithPrefix(client, app.Session.KeyPrefix),
			closers: []io.Closer{client},
		}, nil

	case config.SessionBackendPostgres:
		db, err := ConnectDB(ctx, app.Postgres, logger)
		if err != nil {
			return nil, fmt.Errorf("connect db: %w", err)
		}
		if app.Postgres.RunMigrationsOnStart {
			if err = RunMigrations(ctx, db, logger); err != nil {
				return nil, errors.Join(err, db.Close())
			}
		} else {
			logger.InfoContext(ctx, "skipping database migrations on startup", "reason", "disabled via config")
		}
		store := postgres.NewSessionStore(db)
		return &SessionBackend{
			Name:    config.SessionBackendPostgres,
			Store:   store,
			Purger:  store,
			closers: []io.Closer{db},
		}, nil

	case config.SessionBackendMemory, "":
		store := memory.NewSessionStore()
		return &SessionBackend{
			Name:   config.SessionBackendMemory,
			Store:  store,
			Purger: store,
		}, nil

	default:
		return nil, fmt.Errorf("unsupported session backend %q", app.Session.Backend)
	}
}
