package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	domainauth "github.com/target/hr-console/internal/domain/auth"
	apperrors "github.com/target/hr-console/internal/errors"
	"github.com/target/hr-console/internal/mocks"
	mockauth "github.com/target/hr-console/internal/mocks/auth"
	"github.com/target/hr-console/internal/testutil"
)

var fixedNow = time.Date(2025, 6, 2, 8, 30, 0, 0, time.UTC)

func newSessionService(t *testing.T, store *mockauth.MemorySessionStore) *SessionService {
	t.Helper()
	svc := NewSessionService(SessionServiceOptions{Sessions: store, TTL: time.Hour})
	svc.now = testutil.FixedTimeFunc(fixedNow)
	return svc
}

func TestNewSessionService_RequiresStore(t *testing.T) {
	assert.Panics(t, func() { NewSessionService(SessionServiceOptions{}) })

	svc := NewSessionService(SessionServiceOptions{Sessions: mockauth.NewMemorySessionStore()})
	assert.Equal(t, 12*time.Hour, svc.TTL())
}

func TestSessionService_Login(t *testing.T) {
	store := mockauth.NewMemorySessionStore()
	svc := newSessionService(t, store)

	sess, err := svc.Login(context.Background(), domainauth.Identity{Email: "a@example.com", Name: "Alice", Token: "tok"})
	require.NoError(t, err)
	assert.NotEmpty(t, sess.ID)
	assert.Equal(t, "tok", sess.Token)
	assert.Equal(t, "Alice", sess.DisplayName)
	assert.Equal(t, fixedNow, sess.CreatedAt)
	assert.Equal(t, fixedNow.Add(time.Hour), sess.ExpiresAt)
	assert.True(t, sess.IsAuthenticated())
	assert.Equal(t, 1, store.Len())

	got, err := svc.Current(context.Background(), sess.ID)
	require.NoError(t, err)
	assert.Equal(t, sess, *got)
}

func TestSessionService_LoginCapsExpiryToIdentity(t *testing.T) {
	svc := newSessionService(t, mockauth.NewMemorySessionStore())

	sess, err := svc.Login(context.Background(), domainauth.Identity{Token: "tok", ExpiresAt: fixedNow.Add(10 * time.Minute)})
	require.NoError(t, err)
	assert.Equal(t, fixedNow.Add(10*time.Minute), sess.ExpiresAt)

	// An identity that outlives the TTL does not extend it.
	sess, err = svc.Login(context.Background(), domainauth.Identity{Token: "tok", ExpiresAt: fixedNow.Add(48 * time.Hour)})
	require.NoError(t, err)
	assert.Equal(t, fixedNow.Add(time.Hour), sess.ExpiresAt)
}

func TestSessionService_LoginRejectsEmptyToken(t *testing.T) {
	store := mockauth.NewMemorySessionStore()
	svc := newSessionService(t, store)

	_, err := svc.Login(context.Background(), domainauth.Identity{Email: "a@example.com"})
	require.ErrorIs(t, err, ErrEmptyToken)
	assert.Zero(t, store.Len())
}

func TestSessionService_LoginStoreFailure(t *testing.T) {
	store := mockauth.NewMemorySessionStore()
	store.SaveErr = errors.New("redis down")
	svc := newSessionService(t, store)

	_, err := svc.Login(context.Background(), domainauth.Identity{Token: "tok"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "save session")
}

func TestSessionService_LogoutIsIdempotent(t *testing.T) {
	store := mockauth.NewMemorySessionStore()
	svc := newSessionService(t, store)
	ctx := context.Background()

	sess, err := svc.Login(ctx, domainauth.Identity{Token: "tok"})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, sess.ID))
	require.NoError(t, svc.Logout(ctx, sess.ID))
	require.NoError(t, svc.Logout(ctx, ""))
	require.NoError(t, svc.Logout(ctx, "never-existed"))

	_, err = svc.Current(ctx, sess.ID)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestSessionService_LogoutStoreFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockSessionStore(ctrl)
	store.EXPECT().Delete(gomock.Any(), "sid").Return(errors.New("connection refused"))

	svc := NewSessionService(SessionServiceOptions{Sessions: store})
	err := svc.Logout(context.Background(), "sid")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "delete session")
}

func TestSessionService_CurrentDropsExpired(t *testing.T) {
	store := mockauth.NewMemorySessionStore()
	svc := newSessionService(t, store)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, domainauth.Session{ID: "old", Token: "tok", ExpiresAt: fixedNow.Add(-time.Second)}))
	_, err := svc.Current(ctx, "old")
	assert.True(t, apperrors.IsNotFound(err))
	assert.Zero(t, store.Len())
}

func TestSessionService_CurrentDropsTokenlessSession(t *testing.T) {
	store := mockauth.NewMemorySessionStore()
	svc := newSessionService(t, store)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, domainauth.Session{ID: "half", ExpiresAt: fixedNow.Add(time.Hour)}))
	_, err := svc.Current(ctx, "half")
	assert.True(t, apperrors.IsNotFound(err))
	assert.Zero(t, store.Len())
}

func TestSessionService_Resolve(t *testing.T) {
	ctx := context.Background()

	t.Run("no cookie", func(t *testing.T) {
		svc := newSessionService(t, mockauth.NewMemorySessionStore())
		state, sess := svc.Resolve(ctx, "")
		assert.Equal(t, domainauth.StateUnauthenticated, state)
		assert.Nil(t, sess)
	})

	t.Run("unknown session", func(t *testing.T) {
		svc := newSessionService(t, mockauth.NewMemorySessionStore())
		state, _ := svc.Resolve(ctx, "nope")
		assert.Equal(t, domainauth.StateUnauthenticated, state)
	})

	t.Run("valid session", func(t *testing.T) {
		svc := newSessionService(t, mockauth.NewMemorySessionStore())
		created, err := svc.Login(ctx, domainauth.Identity{Token: "tok"})
		require.NoError(t, err)

		state, sess := svc.Resolve(ctx, created.ID)
		assert.Equal(t, domainauth.StateAuthenticated, state)
		require.NotNil(t, sess)
		assert.Equal(t, "tok", sess.Token)
	})

	t.Run("store unavailable", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := mocks.NewMockSessionStore(ctrl)
		store.EXPECT().Get(gomock.Any(), "sid").Return(domainauth.Session{}, apperrors.Unavailable("redis down"))

		svc := NewSessionService(SessionServiceOptions{Sessions: store})
		state, sess := svc.Resolve(ctx, "sid")
		assert.Equal(t, domainauth.StateLoading, state)
		assert.Nil(t, sess)
	})
}

func TestSessionService_Invalidate(t *testing.T) {
	store := mockauth.NewMemorySessionStore()
	svc := newSessionService(t, store)
	ctx := context.Background()

	sess, err := svc.Login(ctx, domainauth.Identity{Token: "tok"})
	require.NoError(t, err)
	require.NoError(t, svc.Invalidate(ctx, sess.ID, "token rejected"))
	assert.Zero(t, store.Len())
}
