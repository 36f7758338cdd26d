package memory

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/target/hr-console/internal/domain/auth"
	apperrors "github.com/target/hr-console/internal/errors"
	"github.com/target/hr-console/internal/ports"
	"github.com/target/hr-console/internal/testutil"
)

var (
	_ ports.SessionStore  = (*SessionStore)(nil)
	_ ports.SessionPurger = (*SessionStore)(nil)
)

func TestSessionStore_SaveGetDelete(t *testing.T) {
	store := NewSessionStore()
	ctx := context.Background()

	sess := domainauth.Session{ID: "s1", Token: "tok", Email: "a@example.com", ExpiresAt: time.Now().Add(time.Hour)}
	require.NoError(t, store.Save(ctx, sess))

	got, err := store.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, sess, got)

	require.NoError(t, store.Delete(ctx, "s1"))
	_, err = store.Get(ctx, "s1")
	assert.True(t, apperrors.IsNotFound(err))

	require.NoError(t, store.Delete(ctx, "s1"))
	require.NoError(t, store.Delete(ctx, ""))
}

func TestSessionStore_SaveValidation(t *testing.T) {
	store := NewSessionStore()
	ctx := context.Background()

	assert.ErrorContains(t, store.Save(ctx, domainauth.Session{Token: "tok"}), "session ID cannot be empty")
	assert.ErrorContains(t,
		store.Save(ctx, domainauth.Session{ID: "x", ExpiresAt: time.Now().Add(-time.Second)}),
		"session is expired")

	canceled, cancel := context.WithCancel(ctx)
	cancel()
	assert.ErrorIs(t, store.Save(canceled, domainauth.Session{ID: "y"}), context.Canceled)
}

func TestSessionStore_ExpiredSessionIsDropped(t *testing.T) {
	now := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	store := NewSessionStore()
	store.now = testutil.FixedTimeFunc(now)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, domainauth.Session{ID: "s1", Token: "tok", ExpiresAt: now.Add(time.Minute)}))

	store.now = testutil.FixedTimeFunc(now.Add(time.Minute))
	_, err := store.Get(ctx, "s1")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Zero(t, store.Len())
}

func TestSessionStore_PurgeExpired(t *testing.T) {
	now := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	store := NewSessionStore()
	store.now = testutil.FixedTimeFunc(now)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, domainauth.Session{ID: "old", Token: "t", ExpiresAt: now.Add(time.Minute)}))
	require.NoError(t, store.Save(ctx, domainauth.Session{ID: "new", Token: "t", ExpiresAt: now.Add(time.Hour)}))
	require.NoError(t, store.Save(ctx, domainauth.Session{ID: "forever", Token: "t"}))

	n, err := store.PurgeExpired(ctx, now.Add(10*time.Minute))
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	assert.Equal(t, 2, store.Len())
}

func TestSessionStore_ConcurrentAccess(t *testing.T) {
	store := NewSessionStore()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := range 50 {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id := fmt.Sprintf("s-%d", i)
			assert.NoError(t, store.Save(ctx, domainauth.Session{ID: id, Token: "tok"}))
			_, err := store.Get(ctx, id)
			assert.NoError(t, err)
			if i%2 == 0 {
				assert.NoError(t, store.Delete(ctx, id))
			}
		}(i)
	}
	wg.Wait()
	assert.Equal(t, 25, store.Len())
}
