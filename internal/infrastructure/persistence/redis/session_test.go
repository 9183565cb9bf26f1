package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/readieg/library/internal/domain/user"
	apperrors "github.com/readieg/library/pkg/errors"
)

func newTestStore(t *testing.T) (*SessionStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewSessionStore(client), mr
}

func TestSessionLifecycle(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()

	sess, err := store.Create(ctx, "u1", user.RoleUser, time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, sess.ID)
	assert.Equal(t, time.Hour, mr.TTL("session:"+sess.ID))

	got, err := store.Get(ctx, sess.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "u1", got.UserID)
	assert.Equal(t, user.RoleUser, got.Role)
	assert.False(t, got.ExpiresAt.IsZero())

	// Refresh只改角色，不改TTL
	require.NoError(t, store.Refresh(ctx, sess.ID, user.RoleAdmin))
	got, err = store.Get(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, user.RoleAdmin, got.Role)
	assert.Equal(t, time.Hour, mr.TTL("session:"+sess.ID))

	require.NoError(t, store.Invalidate(ctx, sess.ID))
	got, err = store.Get(ctx, sess.ID)
	require.NoError(t, err)
	assert.Nil(t, got)

	// 幂等
	require.NoError(t, store.Invalidate(ctx, sess.ID))
}

func TestSessionExpiry(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()

	sess, err := store.Create(ctx, "u1", user.RoleAdmin, time.Minute)
	require.NoError(t, err)

	mr.FastForward(2 * time.Minute)

	got, err := store.Get(ctx, sess.ID)
	require.NoError(t, err)
	assert.Nil(t, got)

	// 过期后Refresh不会重新创建key
	require.NoError(t, store.Refresh(ctx, sess.ID, user.RoleUser))
	assert.False(t, mr.Exists("session:"+sess.ID))
}

func TestGetUnknownAndEmpty(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	got, err := store.Get(ctx, "missing")
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = store.Get(ctx, "")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestStoreErrorIsWrapped(t *testing.T) {
	store, mr := newTestStore(t)
	mr.Close()

	_, err := store.Get(context.Background(), "sid")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrRedisError)
}
