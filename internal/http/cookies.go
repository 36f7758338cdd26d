package httpx

import (
	"net/http"
	"time"

	domainauth "github.com/target/hr-console/internal/domain/auth"
)

// DefaultSessionCookieName is used when CookieConfig.SessionName is blank.
const DefaultSessionCookieName = "session_id"

const (
	oauthStateCookie    = "oauth_state"
	oauthNonceCookie    = "oauth_nonce"
	postLoginCookie     = "post_login_redirect"
	oauthCookieLifetime = 600
)

// CookieConfig describes how the console's own cookies are written.
type CookieConfig struct {
	SessionName string
	Domain      string
	// Secure forces the Secure attribute; otherwise it follows the request scheme.
	Secure bool
}

func (c CookieConfig) sessionName() string {
	if c.SessionName == "" {
		return DefaultSessionCookieName
	}
	return c.SessionName
}

func (c CookieConfig) secure(r *http.Request) bool {
	return c.Secure || isSecureRequest(r)
}

// SessionID returns the session cookie value, or "".
func (c CookieConfig) SessionID(r *http.Request) string {
	return readCookie(r, c.sessionName())
}

// SetSession writes the session cookie so it lapses with the session itself.
func (c CookieConfig) SetSession(w http.ResponseWriter, r *http.Request, s domainauth.Session) {
	maxAge := int(time.Until(s.ExpiresAt).Seconds())
	if s.ExpiresAt.IsZero() || maxAge <= 0 {
		maxAge = 0 // browser session
	}
	http.SetCookie(w, &http.Cookie{
		Name:     c.sessionName(),
		Value:    s.ID,
		Path:     "/",
		Domain:   c.Domain,
		HttpOnly: true,
		Secure:   c.secure(r),
		SameSite: http.SameSiteLaxMode,
		MaxAge:   maxAge,
	})
}

// ClearSession expires the session cookie.
func (c CookieConfig) ClearSession(w http.ResponseWriter, r *http.Request) {
	c.clear(w, r, c.sessionName())
}

// setTransient writes a short-lived HttpOnly cookie (OAuth state, flash messages).
func (c CookieConfig) setTransient(w http.ResponseWriter, r *http.Request, name, value string, maxAge int) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		Domain:   c.Domain,
		HttpOnly: true,
		Secure:   c.secure(r),
		SameSite: http.SameSiteLaxMode,
		MaxAge:   maxAge,
	})
}

// clear mirrors the attributes used when setting so browsers match the cookie.
func (c CookieConfig) clear(w http.ResponseWriter, r *http.Request, name string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		Domain:   c.Domain,
		HttpOnly: true,
		Secure:   c.secure(r),
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
		Expires:  time.Unix(0, 0).UTC(),
	})
}
