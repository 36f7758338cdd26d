package httpx

import (
	"context"

	domainauth "github.com/target/hr-console/internal/domain/auth"
)

// SetSessionInContext returns a child context that carries the given session.
// The gateway reads the bearer token from the same context value.
// If session is nil, the original ctx is returned unchanged.
func SetSessionInContext(ctx context.Context, session *domainauth.Session) context.Context {
	if session == nil {
		return ctx
	}
	return domainauth.WithSession(ctx, *session)
}

// GetUserSessionFromContext returns the user session from context and a boolean indicating presence.
func GetUserSessionFromContext(ctx context.Context) (*domainauth.Session, bool) {
	sess, ok := domainauth.SessionFromContext(ctx)
	if !ok {
		return nil, false
	}
	return &sess, true
}

// GetSessionFromContext retrieves the session from the request context, or nil.
func GetSessionFromContext(ctx context.Context) *domainauth.Session {
	if s, ok := GetUserSessionFromContext(ctx); ok {
		return s
	}
	return nil
}

// IsAuthenticated reports whether ctx carries a session with a bearer token.
func IsAuthenticated(ctx context.Context) bool {
	s, ok := GetUserSessionFromContext(ctx)
	return ok && s.IsAuthenticated()
}

type guardStateKey struct{}

func withGuardState(ctx context.Context, state domainauth.State) context.Context {
	return context.WithValue(ctx, guardStateKey{}, state)
}

// GuardStateFromContext returns the state the route guard resolved for this request.
// Requests that never passed the guard report Unauthenticated.
func GuardStateFromContext(ctx context.Context) domainauth.State {
	if st, ok := ctx.Value(guardStateKey{}).(domainauth.State); ok {
		return st
	}
	return domainauth.StateUnauthenticated
}
