package service

import (
	"context"
	"errors"
	"fmt"

	domainauth "github.com/target/hr-console/internal/domain/auth"
	"github.com/target/hr-console/internal/ports"
)

// ErrOAuthDisabled is returned by the redirect flow when no provider is configured.
var ErrOAuthDisabled = errors.New("oauth login is not configured")

// AuthServiceOptions groups dependencies for AuthService.
// Exactly one of Authenticator or Provider is normally set, following AUTH_MODE.
type AuthServiceOptions struct {
	Authenticator ports.Authenticator
	Provider      ports.AuthProvider
	Sessions      *SessionService
}

// AuthService turns credentials or an IdP callback into a persisted session.
type AuthService struct {
	authenticator ports.Authenticator
	provider      ports.AuthProvider
	sessions      *SessionService
}

// NewAuthService constructs a new AuthService.
func NewAuthService(opts AuthServiceOptions) *AuthService {
	if opts.Sessions == nil {
		panic("service: SessionService is required")
	}
	return &AuthService{
		authenticator: opts.Authenticator,
		provider:      opts.Provider,
		sessions:      opts.Sessions,
	}
}

// UsesOAuth reports whether logins go through the IdP redirect flow.
func (s *AuthService) UsesOAuth() bool { return s.provider != nil }

// PasswordLogin authenticates creds and starts a session.
func (s *AuthService) PasswordLogin(ctx context.Context, creds domainauth.Credentials) (domainauth.Session, error) {
	if s.authenticator == nil {
		return domainauth.Session{}, errors.New("password login is not configured")
	}
	identity, err := s.authenticator.Authenticate(ctx, creds)
	if err != nil {
		return domainauth.Session{}, fmt.Errorf("authenticate: %w", err)
	}
	return s.sessions.Login(ctx, identity)
}

// BeginLoginResult contains the result of beginning a login flow.
type BeginLoginResult struct {
	AuthURL string
	State   string
	Nonce   string
}

// BeginLogin initiates an authentication flow and returns the provider auth URL with state and nonce.
func (s *AuthService) BeginLogin(ctx context.Context, redirectURL string) (*BeginLoginResult, error) {
	if s.provider == nil {
		return nil, ErrOAuthDisabled
	}
	if redirectURL == "" {
		return nil, errors.New("redirect URL is required")
	}

	authURL, state, nonce, err := s.provider.Begin(ctx, ports.BeginInput{RedirectURL: redirectURL})
	if err != nil {
		return nil, fmt.Errorf("begin auth flow: %w", err)
	}
	return &BeginLoginResult{AuthURL: authURL, State: state, Nonce: nonce}, nil
}

// CompleteLoginInput groups parameters for completing a login flow.
type CompleteLoginInput struct {
	Code  string
	State string
	Nonce string
}

// CompleteLogin exchanges the authorization code for an identity and persists a session.
func (s *AuthService) CompleteLogin(ctx context.Context, input CompleteLoginInput) (domainauth.Session, error) {
	if s.provider == nil {
		return domainauth.Session{}, ErrOAuthDisabled
	}
	switch {
	case input.Code == "":
		return domainauth.Session{}, errors.New("authorization code is required")
	case input.State == "":
		return domainauth.Session{}, errors.New("state parameter is required")
	case input.Nonce == "":
		return domainauth.Session{}, errors.New("nonce parameter is required")
	}

	identity, err := s.provider.Exchange(ctx, ports.ExchangeInput(input))
	if err != nil {
		return domainauth.Session{}, fmt.Errorf("exchange authorization code: %w", err)
	}
	return s.sessions.Login(ctx, identity)
}
