package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/target/hr-console/config"
	"github.com/target/hr-console/internal/adapters/apiauth"
	"github.com/target/hr-console/internal/adapters/oidc"
	"github.com/target/hr-console/internal/adapters/staticauth"
	"github.com/target/hr-console/internal/gateway"
	"github.com/target/hr-console/internal/service"
)

// AuthConfig contains configuration for the auth service.
type AuthConfig struct {
	Auth     config.AuthConfig
	Gateway  *gateway.Client
	Sessions *service.SessionService
	Logger   *slog.Logger
}

// BuildAuthService creates the auth service for the configured AUTH_MODE.
func BuildAuthService(ctx context.Context, cfg AuthConfig) (*service.AuthService, error) {
	if cfg.Sessions == nil {
		return nil, errors.New("session service is required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	opts := service.AuthServiceOptions{Sessions: cfg.Sessions}

	switch cfg.Auth.Mode {
	case config.AuthModeStatic:
		authn, err := buildStaticAuthenticator(cfg.Auth.Static)
		if err != nil {
			return nil, err
		}
		opts.Authenticator = authn

	case config.AuthModeOAuth:
		prov, err := buildOAuthProvider(ctx, cfg.Auth.OAuth)
		if err != nil {
			return nil, err
		}
		opts.Provider = prov

	case config.AuthModeAPI, "":
		if cfg.Gateway == nil {
			return nil, errors.New("api auth: gateway client is required")
		}
		authn, err := apiauth.New(apiauth.Options{
			// The login call never carries a session token.
			Gateway:   cfg.Gateway.WithCredentials(gateway.StaticToken("")),
			LoginPath: cfg.Auth.LoginPath,
			TokenPath: cfg.Auth.TokenPath,
			NamePath:  cfg.Auth.NamePath,
			Logger:    logger,
		})
		if err != nil {
			return nil, fmt.Errorf("api auth: %w", err)
		}
		opts.Authenticator = authn

	default:
		return nil, fmt.Errorf("unsupported auth mode %q", cfg.Auth.Mode)
	}

	logger.InfoContext(ctx, "auth configured", "mode", cfg.Auth.Mode)
	return service.NewAuthService(opts), nil
}

func buildStaticAuthenticator(cfg config.StaticAuthConfig) (*staticauth.Authenticator, error) {
	if cfg.Password == "" && cfg.PasswordHash == "" {
		return nil, errors.New("static auth: STATIC_AUTH_PASSWORD or STATIC_AUTH_PASSWORD_HASH is required")
	}
	return staticauth.New(staticauth.Config{
		Email:        cfg.Email,
		Password:     cfg.Password,
		PasswordHash: cfg.PasswordHash,
		Token:        cfg.Token,
	})
}

func buildOAuthProvider(ctx context.Context, cfg config.OAuthConfig) (*oidc.Provider, error) {
	if cfg.DiscoveryURL == "" || cfg.ClientID == "" || cfg.ClientSecret == "" {
		return nil, fmt.Errorf(
			"oauth mode requires OAUTH_DISCOVERY_URL, OAUTH_CLIENT_ID and OAUTH_CLIENT_SECRET (discovery_url_empty=%t client_id_empty=%t client_secret_empty=%t)",
			cfg.DiscoveryURL == "", cfg.ClientID == "", cfg.ClientSecret == "",
		)
	}
	prov, err := oidc.NewProvider(ctx, oidc.ProviderConfig{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		RedirectURL:  cfg.RedirectURL,
		Scope:        cfg.Scope,
		DiscoveryURL: cfg.DiscoveryURL,
	})
	if err != nil {
		return nil, fmt.Errorf("oidc provider: %w", err)
	}
	return prov, nil
}
