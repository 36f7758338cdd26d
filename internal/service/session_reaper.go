package service

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"errors"
	"log/slog"
	"time"

	"github.com/target/hr-console/internal/ports"
)

const defaultReapInterval = 10 * time.Minute

// SessionReaperOptions groups dependencies for SessionReaper.
type SessionReaperOptions struct {
	Purger   ports.SessionPurger // Required
	Interval time.Duration       // Default 10m
	Logger   *slog.Logger        // Optional
}

// SessionReaper periodically removes expired sessions from stores without native TTLs.
type SessionReaper struct {
	purger   ports.SessionPurger
	interval time.Duration
	logger   *slog.Logger
	now      func() time.Time
}

// NewSessionReaper constructs a SessionReaper.
func NewSessionReaper(opts SessionReaperOptions) (*SessionReaper, error) {
	if opts.Purger == nil {
		return nil, errors.New("SessionPurger is required")
	}
	interval := opts.Interval
	if interval <= 0 {
		interval = defaultReapInterval
	}
	return &SessionReaper{
		purger:   opts.Purger,
		interval: interval,
		logger:   componentLogger(opts.Logger, "session_reaper"),
		now:      time.Now,
	}, nil
}

// Run purges on every tick until ctx is cancelled. Returns nil on graceful shutdown.
func (r *SessionReaper) Run(ctx context.Context) error {
	r.logger.InfoContext(ctx, "starting session reaper", "interval", r.interval)

	r.waitWithJitter(ctx)
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		r.ReapOnce(ctx)
		select {
		case <-ctx.Done():
			r.logger.InfoContext(ctx, "session reaper stopping", "reason", ctx.Err())
			if errors.Is(ctx.Err(), context.Canceled) {
				return nil
			}
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// ReapOnce runs a single purge and reports how many sessions were removed.
func (r *SessionReaper) ReapOnce(ctx context.Context) int64 {
	if ctx.Err() != nil {
		return 0
	}
	n, err := r.purger.PurgeExpired(ctx, r.now())
	if err != nil {
		if isContextCancellation(err) {
			return 0
		}
		r.logger.WarnContext(ctx, "session purge failed", "error", err)
		return 0
	}
	if n > 0 {
		r.logger.InfoContext(ctx, "expired sessions purged", "count", n)
	}
	return n
}

// waitWithJitter delays the first purge by up to 10% of the interval so replicas spread out.
func (r *SessionReaper) waitWithJitter(ctx context.Context) {
	maxJitter := int64(r.interval / 10)
	if maxJitter <= 0 {
		return
	}
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return
	}
	jitter := time.Duration(int64(binary.BigEndian.Uint64(buf[:]) % uint64(maxJitter))) // #nosec G115 - bounded by maxJitter

	t := time.NewTimer(jitter)
	defer t.Stop()
	select {
	case <-t.C:
	case <-ctx.Done():
	}
}

func isContextCancellation(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
