package auth

// Package auth contains domain-level types for logins and sessions.
// It is pure and free of framework/adapter concerns.

import (
	"context"
	"strings"
	"time"
)

// Credentials are what the user types into the login form.
type Credentials struct {
	Email    string
	Password string
}

// Normalize trims the email and lowercases it.
func (c Credentials) Normalize() Credentials {
	c.Email = strings.ToLower(strings.TrimSpace(c.Email))
	return c
}

// Identity represents an authenticated principal returned by an Authenticator.
// Token is the bearer credential forwarded to the HR service.
type Identity struct {
	Email     string
	Name      string
	Token     string
	ExpiresAt time.Time // zero means the session TTL applies
}

// Session is the server-side record persisted for a logged-in user.
// The browser only ever holds ID in a cookie.
type Session struct {
	ID          string    `json:"id"`
	Token       string    `json:"token"`
	Email       string    `json:"email"`
	DisplayName string    `json:"display_name"`
	CreatedAt   time.Time `json:"created_at"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// IsAuthenticated reports whether the session carries a bearer token.
// A session without a token is treated as logged out.
func (s Session) IsAuthenticated() bool { return s.Token != "" }

// Expired reports whether the session is past its expiry at now.
func (s Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}

// Name returns the display name, falling back to the email.
func (s Session) Name() string {
	if s.DisplayName != "" {
		return s.DisplayName
	}
	return s.Email
}

// State is the route guard's view of the current request.
type State int

const (
	// StateLoading means the session could not be read yet (store unavailable).
	StateLoading State = iota
	// StateUnauthenticated means no valid session exists.
	StateUnauthenticated
	// StateAuthenticated means a valid session with a token exists.
	StateAuthenticated
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateUnauthenticated:
		return "unauthenticated"
	case StateAuthenticated:
		return "authenticated"
	default:
		return "unknown"
	}
}

type sessionKey struct{}

// WithSession returns a context carrying sess.
func WithSession(ctx context.Context, sess Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, sess)
}

// SessionFromContext returns the session stored by WithSession.
func SessionFromContext(ctx context.Context) (Session, bool) {
	sess, ok := ctx.Value(sessionKey{}).(Session)
	return sess, ok
}
