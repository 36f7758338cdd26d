package config

import (
	"fmt"
	"strings"
	"time"
)

// SessionBackend selects where session records are persisted.
type SessionBackend string

const (
	SessionBackendMemory   SessionBackend = "memory"
	SessionBackendRedis    SessionBackend = "redis"
	SessionBackendPostgres SessionBackend = "postgres"
)

// UnmarshalText implements encoding.TextUnmarshaler for SessionBackend.
func (b *SessionBackend) UnmarshalText(text []byte) error {
	v := strings.ToLower(strings.TrimSpace(string(text)))
	switch v {
	case "memory", "redis", "postgres":
		*b = SessionBackend(v)
		return nil
	default:
		return fmt.Errorf("invalid SessionBackend: %q (valid options: memory, redis, postgres)", v)
	}
}

// SessionConfig controls session persistence and the session cookie.
type SessionConfig struct {
	Backend SessionBackend `env:"SESSION_BACKEND" envDefault:"memory"`

	// TTL is how long a session record is kept without a new login.
	TTL time.Duration `env:"SESSION_TTL" envDefault:"12h"`

	CookieName string `env:"SESSION_COOKIE_NAME" envDefault:"session_id"`

	// KeyPrefix namespaces Redis keys.
	KeyPrefix string `env:"SESSION_KEY_PREFIX" envDefault:"session:"`

	// ReapInterval is how often expired Postgres sessions are purged.
	ReapInterval time.Duration `env:"SESSION_REAP_INTERVAL" envDefault:"10m"`
}

// Sanitize restores defaults for blank or out-of-range values.
func (s *SessionConfig) Sanitize() {
	if s.Backend == "" {
		s.Backend = SessionBackendMemory
	}
	if s.TTL < time.Minute {
		s.TTL = 12 * time.Hour
	}
	s.CookieName = strings.TrimSpace(s.CookieName)
	if s.CookieName == "" {
		s.CookieName = "session_id"
	}
	if s.KeyPrefix == "" {
		s.KeyPrefix = "session:"
	}
	if s.ReapInterval < time.Minute {
		s.ReapInterval = 10 * time.Minute
	}
}
