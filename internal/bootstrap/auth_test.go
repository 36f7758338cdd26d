package bootstrap

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/target/hr-console/config"
	"github.com/target/hr-console/internal/adapters/memory"
	"github.com/target/hr-console/internal/gateway"
	"github.com/target/hr-console/internal/service"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newSessionService() *service.SessionService {
	return service.NewSessionService(service.SessionServiceOptions{
		Sessions: memory.NewSessionStore(),
		Logger:   discardLogger(),
	})
}

func TestBuildAuthService(t *testing.T) {
	gw, err := gateway.New(gateway.Options{BaseURL: "http://hr.example.com/api"})
	require.NoError(t, err)

	tests := []struct {
		name      string
		auth      config.AuthConfig
		gateway   *gateway.Client
		wantErr   string
		wantOAuth bool
	}{
		{
			name:    "api mode",
			auth:    config.AuthConfig{Mode: config.AuthModeAPI, LoginPath: "/auth/login"},
			gateway: gw,
		},
		{
			name:    "api mode without gateway",
			auth:    config.AuthConfig{Mode: config.AuthModeAPI},
			wantErr: "gateway client is required",
		},
		{
			name: "static mode",
			auth: config.AuthConfig{
				Mode: config.AuthModeStatic,
				Static: config.StaticAuthConfig{
					Email:    "admin@example.com",
					Password: "secret",
					Token:    "tok",
				},
			},
		},
		{
			name: "static mode without password",
			auth: config.AuthConfig{
				Mode:   config.AuthModeStatic,
				Static: config.StaticAuthConfig{Email: "admin@example.com", Token: "tok"},
			},
			wantErr: "STATIC_AUTH_PASSWORD",
		},
		{
			name: "oauth mode missing client secret",
			auth: config.AuthConfig{
				Mode: config.AuthModeOAuth,
				OAuth: config.OAuthConfig{
					ClientID:     "client-id",
					DiscoveryURL: "https://issuer.example.com",
					RedirectURL:  "https://app.example.com/auth/callback",
				},
			},
			wantErr: "client_secret_empty=true",
		},
		{
			name:    "unknown mode",
			auth:    config.AuthConfig{Mode: "ldap"},
			wantErr: "unsupported auth mode",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, err := BuildAuthService(context.Background(), AuthConfig{
				Auth:     tt.auth,
				Gateway:  tt.gateway,
				Sessions: newSessionService(),
				Logger:   discardLogger(),
			})
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				assert.Nil(t, svc)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, svc)
			assert.Equal(t, tt.wantOAuth, svc.UsesOAuth())
		})
	}
}

func TestBuildAuthServiceRequiresSessions(t *testing.T) {
	_, err := BuildAuthService(context.Background(), AuthConfig{Auth: config.AuthConfig{Mode: config.AuthModeAPI}})
	require.Error(t, err)
}
