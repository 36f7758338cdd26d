package config

import "strings"

// DBConfig contains PostgreSQL configuration for the postgres session backend (DB_*).
type DBConfig struct {
	Host     string `env:"HOST"     envDefault:"localhost"`
	Port     int    `env:"PORT"     envDefault:"5432"`
	User     string `env:"USER"     envDefault:"hrconsole"`
	Password string `env:"PASSWORD" envDefault:"hrconsole"`
	Name     string `env:"NAME"     envDefault:"hrconsole"`
	// SSLMode is passed through as the sslmode DSN parameter.
	SSLMode string `env:"SSL_MODE" envDefault:"disable"`
	// RunMigrationsOnStart creates the hr_sessions table during startup.
	RunMigrationsOnStart bool `env:"RUN_MIGRATIONS_ON_START" envDefault:"true"`
}

var validSSLModes = map[string]bool{
	"disable": true, "allow": true, "prefer": true,
	"require": true, "verify-ca": true, "verify-full": true,
}

// Sanitize falls back to the default port and to sslmode=disable for unknown modes.
func (d *DBConfig) Sanitize() {
	if d.Port <= 0 || d.Port > 65535 {
		d.Port = 5432
	}
	d.SSLMode = strings.ToLower(strings.TrimSpace(d.SSLMode))
	if !validSSLModes[d.SSLMode] {
		d.SSLMode = "disable"
	}
}

// RedisConfig contains Redis configuration for the redis session backend (REDIS_*).
type RedisConfig struct {
	URI                string   `env:"URI"                  envDefault:"localhost:6379"`
	Password           string   `env:"PASSWORD"             envDefault:""`
	SentinelNodes      []string `env:"SENTINEL_NODES"       envDefault:"localhost:26379"`
	SentinelMasterName string   `env:"SENTINEL_MASTER_NAME" envDefault:"mymaster"`
	SentinelPassword   string   `env:"SENTINEL_PASSWORD"    envDefault:""`
	UseSentinel        bool     `env:"USE_SENTINEL"         envDefault:"false"`
	ClusterNodes       []string `env:"CLUSTER_NODES"        envDefault:""`
	UseCluster         bool     `env:"USE_CLUSTER"          envDefault:"false"`
}

// Sanitize drops blank node entries left by trailing commas in the env lists.
func (r *RedisConfig) Sanitize() {
	r.URI = strings.TrimSpace(r.URI)
	r.SentinelNodes = compactNodes(r.SentinelNodes)
	r.ClusterNodes = compactNodes(r.ClusterNodes)
}

func compactNodes(nodes []string) []string {
	out := nodes[:0]
	for _, n := range nodes {
		if n = strings.TrimSpace(n); n != "" {
			out = append(out, n)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
