package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/target/hr-console/internal/domain/auth"
	apperrors "github.com/target/hr-console/internal/errors"
	"github.com/target/hr-console/internal/ports"
)

func TestMockAuthProvider_Begin_Defaults(t *testing.T) {
	provider := NewMockAuthProvider()
	ctx := context.Background()

	input := ports.BeginInput{RedirectURL: "http://localhost:8080/auth/callback"}
	authURL, state, nonce, err := provider.Begin(ctx, input)
	require.NoError(t, err)
	assert.Equal(t, "https://mock-idp/auth", authURL)
	assert.Equal(t, "state-1", state)
	assert.Equal(t, "nonce-1", nonce)

	_, state2, nonce2, err := provider.Begin(ctx, input)
	require.NoError(t, err)
	assert.Equal(t, "state-2", state2)
	assert.Equal(t, "nonce-2", nonce2)
}

func TestMockAuthProvider_Exchange_Defaults(t *testing.T) {
	provider := NewMockAuthProvider()

	identity, err := provider.Exchange(context.Background(), ports.ExchangeInput{Code: "c", State: "s", Nonce: "n"})
	require.NoError(t, err)
	assert.Equal(t, "hr.manager@example.com", identity.Email)
	assert.Equal(t, "idp-access-token", identity.Token)
	assert.True(t, identity.ExpiresAt.After(time.Now()))
}

func TestStubAuthenticator(t *testing.T) {
	a := NewStubAuthenticator("admin@example.com", "1234567890", "tok")
	ctx := context.Background()

	id, err := a.Authenticate(ctx, domainauth.Credentials{Email: " Admin@Example.com", Password: "1234567890"})
	require.NoError(t, err)
	assert.Equal(t, "tok", id.Token)
	assert.Equal(t, "admin@example.com", id.Email)

	_, err = a.Authenticate(ctx, domainauth.Credentials{Email: "admin@example.com", Password: "wrong"})
	assert.True(t, apperrors.IsUnauthorized(err))
	assert.Len(t, a.Calls(), 2)

	a.Err = errors.New("upstream down")
	_, err = a.Authenticate(ctx, domainauth.Credentials{})
	assert.EqualError(t, err, "upstream down")
}

func TestMemorySessionStore(t *testing.T) {
	store := NewMemorySessionStore()
	ctx := context.Background()

	require.Error(t, store.Save(ctx, domainauth.Session{}))

	sess := domainauth.Session{ID: "s1", Token: "tok", Email: "a@example.com"}
	require.NoError(t, store.Save(ctx, sess))
	got, err := store.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, sess, got)
	assert.Equal(t, 1, store.Len())

	require.NoError(t, store.Delete(ctx, "s1"))
	require.NoError(t, store.Delete(ctx, "s1"))
	_, err = store.Get(ctx, "s1")
	assert.True(t, apperrors.IsNotFound(err))

	_, err = store.Get(ctx, "")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemorySessionStore_InjectedErrors(t *testing.T) {
	store := NewMemorySessionStore()
	store.GetErr = errors.New("redis: connection refused")

	_, err := store.Get(context.Background(), "s1")
	assert.EqualError(t, err, "redis: connection refused")
}
