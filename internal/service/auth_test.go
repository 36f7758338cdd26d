package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	domainauth "github.com/target/hr-console/internal/domain/auth"
	apperrors "github.com/target/hr-console/internal/errors"
	"github.com/target/hr-console/internal/mocks"
	mockauth "github.com/target/hr-console/internal/mocks/auth"
	"github.com/target/hr-console/internal/ports"
)

func newAuthService(t *testing.T, opts AuthServiceOptions) (*AuthService, *mockauth.MemorySessionStore) {
	t.Helper()
	store := mockauth.NewMemorySessionStore()
	opts.Sessions = NewSessionService(SessionServiceOptions{Sessions: store})
	return NewAuthService(opts), store
}

func TestNewAuthService_RequiresSessions(t *testing.T) {
	assert.Panics(t, func() { NewAuthService(AuthServiceOptions{}) })
}

func TestAuthService_PasswordLogin(t *testing.T) {
	svc, store := newAuthService(t, AuthServiceOptions{
		Authenticator: mockauth.NewStubAuthenticator("hr@example.com", "pw", "tok"),
	})
	assert.False(t, svc.UsesOAuth())

	sess, err := svc.PasswordLogin(context.Background(), domainauth.Credentials{Email: "HR@example.com", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, "tok", sess.Token)
	assert.Equal(t, "hr@example.com", sess.Email)
	assert.Equal(t, 1, store.Len())
}

func TestAuthService_PasswordLoginRejected(t *testing.T) {
	svc, store := newAuthService(t, AuthServiceOptions{
		Authenticator: mockauth.NewStubAuthenticator("hr@example.com", "pw", "tok"),
	})

	_, err := svc.PasswordLogin(context.Background(), domainauth.Credentials{Email: "hr@example.com", Password: "bad"})
	require.Error(t, err)
	assert.True(t, apperrors.IsUnauthorized(err))
	assert.Zero(t, store.Len())
}

func TestAuthService_PasswordLoginWithGomock(t *testing.T) {
	ctrl := gomock.NewController(t)
	authn := mocks.NewMockAuthenticator(ctrl)
	authn.EXPECT().
		Authenticate(gomock.Any(), domainauth.Credentials{Email: "a@example.com", Password: "pw"}).
		Return(domainauth.Identity{Email: "a@example.com"}, nil)

	svc, store := newAuthService(t, AuthServiceOptions{Authenticator: authn})

	// An identity without a token never becomes a session.
	_, err := svc.PasswordLogin(context.Background(), domainauth.Credentials{Email: "a@example.com", Password: "pw"})
	require.ErrorIs(t, err, ErrEmptyToken)
	assert.Zero(t, store.Len())
}

func TestAuthService_PasswordLoginNotConfigured(t *testing.T) {
	svc, _ := newAuthService(t, AuthServiceOptions{Provider: mockauth.NewMockAuthProvider()})
	_, err := svc.PasswordLogin(context.Background(), domainauth.Credentials{Email: "a@example.com", Password: "pw"})
	require.Error(t, err)
}

func TestAuthService_BeginLogin(t *testing.T) {
	svc, _ := newAuthService(t, AuthServiceOptions{Provider: mockauth.NewMockAuthProvider()})
	assert.True(t, svc.UsesOAuth())

	result, err := svc.BeginLogin(context.Background(), "/contracts")
	require.NoError(t, err)
	assert.Equal(t, "https://mock-idp/auth", result.AuthURL)
	assert.Equal(t, "state-1", result.State)
	assert.Equal(t, "nonce-1", result.Nonce)

	_, err = svc.BeginLogin(context.Background(), "")
	assert.ErrorContains(t, err, "redirect URL is required")
}

func TestAuthService_BeginLoginProviderError(t *testing.T) {
	provider := &mockauth.MockAuthProvider{
		BeginFunc: func(_ context.Context, _ ports.BeginInput) (string, string, string, error) {
			return "", "", "", errors.New("provider error")
		},
	}
	svc, _ := newAuthService(t, AuthServiceOptions{Provider: provider})

	_, err := svc.BeginLogin(context.Background(), "/")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "begin auth flow")
}

func TestAuthService_OAuthDisabled(t *testing.T) {
	svc, _ := newAuthService(t, AuthServiceOptions{})

	_, err := svc.BeginLogin(context.Background(), "/")
	assert.ErrorIs(t, err, ErrOAuthDisabled)
	_, err = svc.CompleteLogin(context.Background(), CompleteLoginInput{Code: "c", State: "s", Nonce: "n"})
	assert.ErrorIs(t, err, ErrOAuthDisabled)
}

func TestAuthService_CompleteLogin(t *testing.T) {
	svc, store := newAuthService(t, AuthServiceOptions{Provider: mockauth.NewMockAuthProvider()})

	sess, err := svc.CompleteLogin(context.Background(), CompleteLoginInput{Code: "code", State: "state-1", Nonce: "nonce-1"})
	require.NoError(t, err)
	assert.Equal(t, "idp-access-token", sess.Token)
	assert.Equal(t, "hr.manager@example.com", sess.Email)
	assert.Equal(t, 1, store.Len())
}

func TestAuthService_CompleteLoginValidation(t *testing.T) {
	svc, _ := newAuthService(t, AuthServiceOptions{Provider: mockauth.NewMockAuthProvider()})
	ctx := context.Background()

	tests := []struct {
		name   string
		in     CompleteLoginInput
		errMsg string
	}{
		{"missing code", CompleteLoginInput{State: "s", Nonce: "n"}, "authorization code is required"},
		{"missing state", CompleteLoginInput{Code: "c", Nonce: "n"}, "state parameter is required"},
		{"missing nonce", CompleteLoginInput{Code: "c", State: "s"}, "nonce parameter is required"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CompleteLogin(ctx, tt.in)
			assert.ErrorContains(t, err, tt.errMsg)
		})
	}
}

func TestAuthService_CompleteLoginExchangeError(t *testing.T) {
	provider := &mockauth.MockAuthProvider{
		ExchangeFunc: func(context.Context, ports.ExchangeInput) (domainauth.Identity, error) {
			return domainauth.Identity{}, errors.New("invalid_grant")
		},
	}
	svc, store := newAuthService(t, AuthServiceOptions{Provider: provider})

	_, err := svc.CompleteLogin(context.Background(), CompleteLoginInput{Code: "c", State: "s", Nonce: "n"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exchange authorization code")
	assert.Zero(t, store.Len())
}
