package config

import (
	"fmt"
	"strings"
)

// AuthMode represents how the console turns a login into a bearer token.
type AuthMode string

const (
	// AuthModeAPI posts credentials to the HR service login endpoint.
	AuthModeAPI AuthMode = "api"
	// AuthModeStatic checks credentials against a configured account (development only).
	AuthModeStatic AuthMode = "static"
	// AuthModeOAuth uses OAuth/OIDC; the access token is forwarded to the HR service.
	AuthModeOAuth AuthMode = "oauth"
)

// UnmarshalText implements encoding.TextUnmarshaler for AuthMode.
func (a *AuthMode) UnmarshalText(text []byte) error {
	v := strings.ToLower(strings.TrimSpace(string(text)))
	switch v {
	case "api", "static", "oauth":
		*a = AuthMode(v)
		return nil
	default:
		return fmt.Errorf("invalid AuthMode: %q (valid options: api, static, oauth)", v)
	}
}

// OAuthConfig contains OAuth/OIDC configuration.
type OAuthConfig struct {
	ClientID     string `env:"CLIENT_ID"`
	ClientSecret string `env:"CLIENT_SECRET"`
	// RedirectURL defaults to APP_BASE_URL + "/auth/callback".
	RedirectURL  string `env:"REDIRECT_URL"`
	Scope        string `env:"SCOPE"         envDefault:"openid profile email"`
	DiscoveryURL string `env:"DISCOVERY_URL"`
}

// StaticAuthConfig describes the single account accepted in static mode.
// Either Password or PasswordHash (bcrypt) must be set.
type StaticAuthConfig struct {
	Email        string `env:"EMAIL"         envDefault:"admin@example.com"`
	Password     string `env:"PASSWORD"`
	PasswordHash string `env:"PASSWORD_HASH"`
	// Token is forwarded to the HR service as the bearer credential.
	Token string `env:"TOKEN" envDefault:"static-dev-token"`
}

// AuthConfig groups all authentication-related configuration.
type AuthConfig struct {
	Mode AuthMode `env:"AUTH_MODE" envDefault:"api"`

	// LoginPath is the HR service endpoint that exchanges credentials for a token (api mode).
	LoginPath string `env:"AUTH_LOGIN_PATH" envDefault:"/auth/login"`

	// TokenPath is a JMESPath expression locating the token in the login response (api mode).
	TokenPath string `env:"AUTH_TOKEN_PATH" envDefault:"token || access_token || data.token"`

	// NamePath is a JMESPath expression locating a display name in the login response (api mode).
	NamePath string `env:"AUTH_NAME_PATH" envDefault:"user.name || name || data.user.name"`

	Static StaticAuthConfig `envPrefix:"STATIC_AUTH_"`
	OAuth  OAuthConfig      `envPrefix:"OAUTH_"`
}

// Sanitize trims values and restores defaults for blank expressions.
func (a *AuthConfig) Sanitize() {
	if a.Mode == "" {
		a.Mode = AuthModeAPI
	}
	a.LoginPath = strings.TrimSpace(a.LoginPath)
	if a.LoginPath == "" {
		a.LoginPath = "/auth/login"
	}
	if strings.TrimSpace(a.TokenPath) == "" {
		a.TokenPath = "token || access_token || data.token"
	}
	a.Static.Email = strings.ToLower(strings.TrimSpace(a.Static.Email))
}
