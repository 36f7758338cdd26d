package httpx

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	domainauth "github.com/target/hr-console/internal/domain/auth"
	apperrors "github.com/target/hr-console/internal/errors"
	"github.com/target/hr-console/internal/service"
)

// AuthServiceInterface defines the login operations the handlers need.
type AuthServiceInterface interface {
	UsesOAuth() bool
	PasswordLogin(ctx context.Context, creds domainauth.Credentials) (domainauth.Session, error)
	BeginLogin(ctx context.Context, redirectURL string) (*service.BeginLoginResult, error)
	CompleteLogin(ctx context.Context, input service.CompleteLoginInput) (domainauth.Session, error)
}

// SessionTerminator ends sessions on logout.
type SessionTerminator interface {
	Logout(ctx context.Context, sessionID string) error
}

var (
	_ AuthServiceInterface = (*service.AuthService)(nil)
	_ SessionTerminator    = (*service.SessionService)(nil)
)

const (
	msgMissingCredentials = "Email and password are required."
	msgInvalidCredentials = "Invalid email or password."
	msgSignedOut          = "You have been signed out."
)

// AuthHandlers provides HTTP handlers for authentication operations.
type AuthHandlers struct {
	Svc      AuthServiceInterface
	Sessions SessionTerminator
	T        *TemplateRenderer
	Cookies  CookieConfig
	Logger   *slog.Logger
}

func (h *AuthHandlers) logger() *slog.Logger {
	if h != nil && h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

// loginView is the data handed to the login template.
type loginView struct {
	Title       string
	Email       string
	RedirectURI string
	CSRFToken   string
	Notice      string
	Error       string
	UsesOAuth   bool
	Product     string
	Location    string
}

func (h *AuthHandlers) newLoginView(r *http.Request, redirectURI string) loginView {
	return loginView{
		Title:       "Login",
		RedirectURI: safeRedirectPath(redirectURI),
		CSRFToken:   GetCSRFToken(r),
		UsesOAuth:   h.Svc.UsesOAuth(),
		Product:     FooterProduct,
		Location:    FooterLocation,
	}
}

// LoginPage renders the sign-in form.
// GET /login?redirect_uri=<optional>&reason=<expired|signed_out>.
func (h *AuthHandlers) LoginPage(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	view := h.newLoginView(r, q.Get("redirect_uri"))
	switch q.Get("reason") {
	case "expired":
		view.Notice = MsgSessionExpired
	case "signed_out":
		view.Notice = msgSignedOut
	}
	h.renderLogin(w, r, view, http.StatusOK)
}

// LoginSubmit authenticates the posted credentials and starts a session.
// POST /login.
func (h *AuthHandlers) LoginSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	creds := domainauth.Credentials{
		Email:    r.PostFormValue("email"),
		Password: r.PostFormValue("password"),
	}.Normalize()

	view := h.newLoginView(r, r.PostFormValue("redirect_uri"))
	view.Email = creds.Email

	if creds.Email == "" || creds.Password == "" {
		view.Error = msgMissingCredentials
		h.renderLogin(w, r, view, http.StatusBadRequest)
		return
	}

	sess, err := h.Svc.PasswordLogin(r.Context(), creds)
	if err != nil {
		if r.Context().Err() != nil {
			h.logger().DebugContext(r.Context(), "login canceled", "error", err)
			return
		}
		h.logger().InfoContext(r.Context(), "login failed", "email", creds.Email, "error", err)
		status := http.StatusBadGateway
		if apperrors.IsUnauthorized(err) {
			view.Error = apperrors.UserMessage(err, msgInvalidCredentials)
			status = http.StatusUnauthorized
		} else {
			view.Error, _ = NotificationFor(err)
		}
		h.renderLogin(w, r, view, status)
		return
	}

	h.Cookies.SetSession(w, r, sess)
	h.logger().InfoContext(r.Context(), "login succeeded", "email", sess.Email)
	redirectTo(w, r, view.RedirectURI)
}

// renderLogin writes the login page. htmx callers always get 200 so the form swaps.
func (h *AuthHandlers) renderLogin(w http.ResponseWriter, r *http.Request, view loginView, status int) {
	if h.T == nil {
		http.Error(w, "templates not loaded", http.StatusInternalServerError)
		return
	}
	if IsHTMX(r) {
		status = http.StatusOK
	}
	if status != http.StatusOK {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(status)
	}
	if err := h.T.RenderNamed(w, "login", view); err != nil {
		h.logger().ErrorContext(r.Context(), "login render failed", "error", err)
		if status == http.StatusOK {
			http.Error(w, "internal server error", http.StatusInternalServerError)
		}
	}
}

// Logout ends the session, clears the cookie and returns to /login.
// Logging out without a session is a no-op that still lands on /login.
// POST /logout.
func (h *AuthHandlers) Logout(w http.ResponseWriter, r *http.Request) {
	if sessionID := h.Cookies.SessionID(r); sessionID != "" && h.Sessions != nil {
		if err := h.Sessions.Logout(r.Context(), sessionID); err != nil {
			h.logger().WarnContext(r.Context(), "logout failed", "error", err)
		}
	}
	h.Cookies.ClearSession(w, r)

	target := "/login?" + url.Values{"reason": {"signed_out"}}.Encode()
	if wantsJSON(r) {
		WriteJSON(w, http.StatusOK, map[string]string{
			"status":      "signed_out",
			"redirect_to": target,
		})
		return
	}
	redirectTo(w, r, target)
}

// Status returns the current authentication status.
// GET /auth/status.
func (h *AuthHandlers) Status(w http.ResponseWriter, r *http.Request) {
	switch GuardStateFromContext(r.Context()) {
	case domainauth.StateLoading:
		WriteJSON(w, http.StatusServiceUnavailable, map[string]any{
			"authenticated": false,
			"state":         domainauth.StateLoading.String(),
		})
		return
	case domainauth.StateAuthenticated:
		if sess := GetSessionFromContext(r.Context()); sess != nil {
			WriteJSON(w, http.StatusOK, map[string]any{
				"authenticated": true,
				"state":         domainauth.StateAuthenticated.String(),
				"user": map[string]string{
					"email": sess.Email,
					"name":  sess.Name(),
				},
				"expires_at": sess.ExpiresAt,
			})
			return
		}
	}
	WriteJSON(w, http.StatusOK, map[string]any{
		"authenticated": false,
		"state":         domainauth.StateUnauthenticated.String(),
	})
}

// OAuthStart begins the identity provider redirect flow.
// GET /auth/oauth/start?redirect_uri=<optional_redirect>.
func (h *AuthHandlers) OAuthStart(w http.ResponseWriter, r *http.Request) {
	redirectURI := safeRedirectPath(r.URL.Query().Get("redirect_uri"))

	result, err := h.Svc.BeginLogin(r.Context(), redirectURI)
	if errors.Is(err, service.ErrOAuthDisabled) {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}
	if err != nil {
		h.logger().ErrorContext(r.Context(), "oauth begin failed", "error", err)
		WriteError(w, http.StatusInternalServerError, "login_failed", "unable to start sign-in")
		return
	}

	h.Cookies.setTransient(w, r, oauthStateCookie, result.State, oauthCookieLifetime)
	h.Cookies.setTransient(w, r, oauthNonceCookie, result.Nonce, oauthCookieLifetime)
	h.Cookies.setTransient(w, r, postLoginCookie, redirectURI, oauthCookieLifetime)

	http.Redirect(w, r, result.AuthURL, http.StatusFound)
}

// Callback completes the identity provider flow.
// GET /auth/callback?code=<code>&state=<state>.
func (h *AuthHandlers) Callback(w http.ResponseWriter, r *http.Request) {
	code := r.URL.Query().Get("code")
	state := r.URL.Query().Get("state")
	if code == "" {
		WriteError(w, http.StatusBadRequest, "missing_code", "authorization code is required")
		return
	}
	if state == "" || readCookie(r, oauthStateCookie) != state {
		WriteError(w, http.StatusBadRequest, "invalid_state", "invalid or missing state parameter")
		return
	}
	nonce := readCookie(r, oauthNonceCookie)
	if nonce == "" {
		WriteError(w, http.StatusBadRequest, "missing_nonce", "missing nonce parameter")
		return
	}

	sess, err := h.Svc.CompleteLogin(r.Context(), service.CompleteLoginInput{
		Code:  code,
		State: state,
		Nonce: nonce,
	})
	if err != nil {
		h.logger().WarnContext(r.Context(), "oauth callback failed", "error", err)
		WriteError(w, http.StatusUnauthorized, "login_completion_failed", "sign-in could not be completed")
		return
	}

	h.Cookies.SetSession(w, r, sess)
	h.Cookies.clear(w, r, oauthStateCookie)
	h.Cookies.clear(w, r, oauthNonceCookie)

	redirectURI := safeRedirectPath(readCookie(r, postLoginCookie))
	h.Cookies.clear(w, r, postLoginCookie)
	http.Redirect(w, r, redirectURI, http.StatusFound)
}

// loginURL builds the sign-in link for a page the viewer wants to return to.
func loginURL(back string) string {
	back = safeRedirectPath(strings.TrimSpace(back))
	if back == "/" {
		return "/login"
	}
	return "/login?" + url.Values{"redirect_uri": {back}}.Encode()
}
