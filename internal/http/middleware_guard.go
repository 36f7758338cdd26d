package httpx

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	domainauth "github.com/target/hr-console/internal/domain/auth"
)

// SessionResolver is the part of service.SessionService the guard needs.
type SessionResolver interface {
	Resolve(ctx context.Context, sessionID string) (domainauth.State, *domainauth.Session)
	Invalidate(ctx context.Context, sessionID, reason string) error
}

// RouteGuard decides, before any handler renders, whether the viewer may see a route.
type RouteGuard struct {
	Sessions SessionResolver
	Cookies  CookieConfig
	// Unavailable renders the 503 page while the session store cannot be read.
	Unavailable http.Handler
	Logger      *slog.Logger
}

func (g *RouteGuard) logger() *slog.Logger {
	if g != nil && g.Logger != nil {
		return g.Logger
	}
	return slog.Default()
}

// Load resolves the session cookie on every request and stores the guard state
// (and, when authenticated, the session) in the request context.
// A cookie that no longer maps to a session is cleared.
func (g *RouteGuard) Load(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/static/") {
			next.ServeHTTP(w, r)
			return
		}

		sessionID := g.Cookies.SessionID(r)
		state, sess := g.Sessions.Resolve(r.Context(), sessionID)

		ctx := withGuardState(r.Context(), state)
		switch state {
		case domainauth.StateAuthenticated:
			ctx = SetSessionInContext(ctx, sess)
		case domainauth.StateUnauthenticated:
			if sessionID != "" {
				g.Cookies.ClearSession(w, r)
			}
		case domainauth.StateLoading:
		}
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// Protect wraps a protected route. Protected content is only rendered in the Authenticated state.
func (g *RouteGuard) Protect(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch GuardStateFromContext(r.Context()) {
		case domainauth.StateAuthenticated:
			next.ServeHTTP(w, r)
		case domainauth.StateLoading:
			g.renderUnavailable(w, r)
		default:
			redirectToLogin(w, r)
		}
	})
}

// PublicOnly wraps routes such as /login that an authenticated viewer should skip.
func (g *RouteGuard) PublicOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if GuardStateFromContext(r.Context()) == domainauth.StateAuthenticated {
			redirectTo(w, r, "/")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// EndSession invalidates the current session after the HR service rejected its
// token, clears the cookie and sends the viewer to the login page.
func (g *RouteGuard) EndSession(w http.ResponseWriter, r *http.Request, reason string) {
	if sessionID := g.Cookies.SessionID(r); sessionID != "" {
		if err := g.Sessions.Invalidate(r.Context(), sessionID, reason); err != nil {
			g.logger().WarnContext(r.Context(), "session invalidation failed", "error", err)
		}
	}
	g.Cookies.ClearSession(w, r)

	if wantsJSON(r) {
		WriteError(w, http.StatusUnauthorized, "session_expired", "session expired")
		return
	}
	q := url.Values{"reason": {"expired"}}
	if back := redirectPathForRequest(r); back != "/" {
		q.Set("redirect_uri", back)
	}
	redirectTo(w, r, "/login?"+q.Encode())
}

func (g *RouteGuard) renderUnavailable(w http.ResponseWriter, r *http.Request) {
	if wantsJSON(r) {
		WriteError(w, http.StatusServiceUnavailable, "session_unavailable", "session store unavailable")
		return
	}
	w.Header().Set("Retry-After", "5")
	if g.Unavailable != nil {
		g.Unavailable.ServeHTTP(w, r)
		return
	}
	http.Error(w, "Session service unavailable. Please retry shortly.", http.StatusServiceUnavailable)
}

// wantsJSON reports whether the caller expects a JSON body instead of a page.
func wantsJSON(r *http.Request) bool {
	return !IsBrowserRequest(r)
}

// redirectTo issues an HX-Redirect for htmx requests and a 303 otherwise.
func redirectTo(w http.ResponseWriter, r *http.Request, target string) {
	if IsHTMX(r) {
		SetHXRedirect(w, target)
		w.WriteHeader(http.StatusOK)
		return
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// redirectToLogin sends unauthenticated viewers to /login, remembering where they were going.
func redirectToLogin(w http.ResponseWriter, r *http.Request) {
	if wantsJSON(r) {
		WriteError(w, http.StatusUnauthorized, "authentication_required", "authentication required")
		return
	}

	redirectTo(w, r, loginURL(redirectPathForRequest(r)))
}

// redirectPathForRequest prefers the page htmx was on over the fragment URL it requested.
func redirectPathForRequest(r *http.Request) string {
	if IsHTMX(r) {
		if current := safeRedirectFromURL(r.Header.Get("Hx-Current-Url")); current != "" {
			return current
		}
	}
	if r.Method != http.MethodGet {
		return "/"
	}
	return safeRedirectPath(r.URL.RequestURI())
}

func safeRedirectFromURL(raw string) string {
	if raw == "" {
		return ""
	}
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	if u.Host != "" && !u.IsAbs() {
		return ""
	}
	if u.IsAbs() {
		return safeRedirectPath(u.RequestURI())
	}
	return safeRedirectPath(raw)
}

// safeRedirectPath keeps redirects on this origin: a relative path starting
// with a single "/", never a login or logout loop. Returns "/" when invalid.
func safeRedirectPath(candidate string) string {
	if candidate == "" || strings.HasPrefix(candidate, "//") || strings.Contains(candidate, `\`) {
		return "/"
	}
	u, err := url.Parse(candidate)
	if err != nil || u.IsAbs() || u.Host != "" || !strings.HasPrefix(u.Path, "/") {
		return "/"
	}
	switch u.Path {
	case "/login", "/logout", "/auth/callback", "/auth/oauth/start":
		return "/"
	}
	return candidate
}
