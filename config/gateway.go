package config

import (
	"strings"
	"time"
)

const (
	defaultGatewayTimeout = 15 * time.Second
	maxGatewayTimeout     = 2 * time.Minute
)

// GatewayConfig configures the client used for every call to the remote HR service.
type GatewayConfig struct {
	// BaseURL is the root of the HR REST API, e.g. "https://hr.example.com/api".
	BaseURL string `env:"API_BASE_URL,required"`

	// Timeout bounds a single call. The request context may cancel earlier.
	Timeout time.Duration `env:"API_TIMEOUT" envDefault:"15s"`

	// ExtraHeaders are sent on every call, e.g. "ngrok-skip-browser-warning:true".
	ExtraHeaders map[string]string `env:"API_EXTRA_HEADERS" envSeparator:"," envKeyValSeparator:":"`

	// ErrorMessagePath is a JMESPath expression extracting a message from error bodies.
	ErrorMessagePath string `env:"API_ERROR_MESSAGE_PATH" envDefault:"message || error || detail"`

	// DataPath optionally unwraps an envelope (e.g. "data") before decoding success bodies.
	DataPath string `env:"API_DATA_PATH"`

	// LogoutOnUnauthorized ends the session when the HR service answers 401.
	LogoutOnUnauthorized bool `env:"GATEWAY_LOGOUT_ON_UNAUTHORIZED" envDefault:"true"`
}

// Sanitize normalises the base URL and clamps the timeout.
func (g *GatewayConfig) Sanitize() {
	g.BaseURL = strings.TrimRight(strings.TrimSpace(g.BaseURL), "/")
	if g.Timeout <= 0 {
		g.Timeout = defaultGatewayTimeout
	}
	if g.Timeout > maxGatewayTimeout {
		g.Timeout = maxGatewayTimeout
	}
	g.ErrorMessagePath = strings.TrimSpace(g.ErrorMessagePath)
	g.DataPath = strings.TrimSpace(g.DataPath)
}
