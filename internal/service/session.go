package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	domainauth "github.com/target/hr-console/internal/domain/auth"
	apperrors "github.com/target/hr-console/internal/errors"
	"github.com/target/hr-console/internal/ports"
)

const defaultSessionTTL = 12 * time.Hour

// ErrEmptyToken is returned by Login when the identity carries no bearer token.
var ErrEmptyToken = errors.New("identity has no token")

// SessionServiceOptions groups dependencies for SessionService.
type SessionServiceOptions struct {
	Sessions ports.SessionStore // Required
	TTL      time.Duration      // Default 12h
	Logger   *slog.Logger       // Optional
}

// SessionService owns the login state. A session exists only together with its token.
type SessionService struct {
	sessions ports.SessionStore
	ttl      time.Duration
	logger   *slog.Logger
	now      func() time.Time
}

// NewSessionService constructs a SessionService. It panics when Sessions is nil.
func NewSessionService(opts SessionServiceOptions) *SessionService {
	if opts.Sessions == nil {
		panic("service: SessionStore is required")
	}
	ttl := opts.TTL
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &SessionService{
		sessions: opts.Sessions,
		ttl:      ttl,
		logger:   logger.With("component", "session_service"),
		now:      time.Now,
	}
}

// Login persists a new authenticated session for id.
func (s *SessionService) Login(ctx context.Context, id domainauth.Identity) (domainauth.Session, error) {
	if id.Token == "" {
		return domainauth.Session{}, ErrEmptyToken
	}

	now := s.now()
	expires := now.Add(s.ttl)
	// An identity that expires sooner than the TTL caps the session.
	if !id.ExpiresAt.IsZero() && id.ExpiresAt.After(now) && id.ExpiresAt.Before(expires) {
		expires = id.ExpiresAt
	}

	sess := domainauth.Session{
		ID:          uuid.NewString(),
		Token:       id.Token,
		Email:       id.Email,
		DisplayName: id.Name,
		CreatedAt:   now,
		ExpiresAt:   expires,
	}
	if err := s.sessions.Save(ctx, sess); err != nil {
		return domainauth.Session{}, fmt.Errorf("save session: %w", err)
	}
	s.logger.InfoContext(ctx, "session started", "email", sess.Email, "expires_at", sess.ExpiresAt)
	return sess, nil
}

// Logout deletes the session. Unknown or empty IDs are a no-op.
func (s *SessionService) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	if err := s.sessions.Delete(ctx, sessionID); err != nil && !apperrors.IsNotFound(err) {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// Current returns the session for sessionID. Missing and expired sessions
// yield an error satisfying errors.IsNotFound.
func (s *SessionService) Current(ctx context.Context, sessionID string) (*domainauth.Session, error) {
	if sessionID == "" {
		return nil, apperrors.NotFound("no session")
	}

	sess, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, err
		}
		return nil, fmt.Errorf("get session: %w", err)
	}

	if sess.Expired(s.now()) || !sess.IsAuthenticated() {
		if err := s.sessions.Delete(ctx, sessionID); err != nil && !apperrors.IsNotFound(err) {
			return nil, errors.Join(apperrors.NotFound("session expired"), fmt.Errorf("delete session: %w", err))
		}
		return nil, apperrors.NotFound("session expired")
	}
	return &sess, nil
}

// Resolve maps a session lookup to the route guard state.
// Infrastructure failures leave the state at Loading.
func (s *SessionService) Resolve(ctx context.Context, sessionID string) (domainauth.State, *domainauth.Session) {
	if sessionID == "" {
		return domainauth.StateUnauthenticated, nil
	}
	sess, err := s.Current(ctx, sessionID)
	switch {
	case err == nil:
		return domainauth.StateAuthenticated, sess
	case apperrors.IsNotFound(err):
		return domainauth.StateUnauthenticated, nil
	default:
		s.logger.WarnContext(ctx, "session lookup failed", "error", err)
		return domainauth.StateLoading, nil
	}
}

// Invalidate ends a session the HR service no longer accepts.
func (s *SessionService) Invalidate(ctx context.Context, sessionID, reason string) error {
	s.logger.InfoContext(ctx, "session invalidated", "reason", reason)
	return s.Logout(ctx, sessionID)
}

// TTL returns the lifetime given to new sessions.
func (s *SessionService) TTL() time.Duration { return s.ttl }
