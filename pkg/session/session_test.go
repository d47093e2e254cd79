package session_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/folio/pkg/session"
)

func TestNew(t *testing.T) {
	t.Parallel()

	sess, err := session.New("user-1", time.Hour)
	require.NoError(t, err)

	assert.NotEmpty(t, sess.ID)
	assert.Equal(t, "user-1", sess.UserID)
	assert.True(t, session.ValidToken(sess.Token))
	assert.WithinDuration(t, sess.CreatedAt.Add(time.Hour), sess.ExpiresAt, time.Second)
	assert.False(t, sess.IsExpired(time.Now()))
	assert.True(t, sess.IsExpired(sess.ExpiresAt))

	other, err := session.New("user-1", time.Hour)
	require.NoError(t, err)
	assert.NotEqual(t, sess.Token, other.Token)
	assert.NotEqual(t, sess.ID, other.ID)

	_, err = session.New("user-1", 0)
	require.ErrorIs(t, err, session.ErrInvalidTTL)
}

func TestSession_TTL(t *testing.T) {
	t.Parallel()

	now := time.Now()
	sess := &session.Session{ExpiresAt: now.Add(time.Minute)}
	assert.Equal(t, time.Minute, sess.TTL(now))
	assert.Zero(t, sess.TTL(now.Add(time.Hour)))
}

func TestHash(t *testing.T) {
	t.Parallel()

	assert.Equal(t, session.Hash("abc"), session.Hash("abc"))
	assert.NotEqual(t, session.Hash("abc"), session.Hash("abd"))
	assert.Len(t, session.Hash("abc"), 64)
}

func TestValidToken(t *testing.T) {
	t.Parallel()

	assert.False(t, session.ValidToken(""))
	assert.False(t, session.ValidToken("short"))
	assert.False(t, session.ValidToken("not base64 !!"))
}

func TestMemoryStore(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("create and get", func(t *testing.T) {
		t.Parallel()

		store := session.NewMemoryStore()
		sess, err := session.New("user-1", time.Hour)
		require.NoError(t, err)
		require.NoError(t, store.Create(ctx, sess))

		got, err := store.Get(ctx, sess.Token)
		require.NoError(t, err)
		assert.Equal(t, sess.ID, got.ID)
		assert.Equal(t, sess.UserID, got.UserID)
		assert.Equal(t, sess.Token, got.Token)
	})

	t.Run("unknown token", func(t *testing.T) {
		t.Parallel()

		store := session.NewMemoryStore()
		sess, err := session.New("user-1", time.Hour)
		require.NoError(t, err)

		_, err = store.Get(ctx, sess.Token)
		require.ErrorIs(t, err, session.ErrNotFound)
	})

	t.Run("malformed token", func(t *testing.T) {
		t.Parallel()

		store := session.NewMemoryStore()
		_, err := store.Get(ctx, "garbage")
		require.ErrorIs(t, err, session.ErrInvalidToken)

		err = store.Create(ctx, &session.Session{Token: "garbage"})
		require.ErrorIs(t, err, session.ErrInvalidToken)
	})

	t.Run("expired session", func(t *testing.T) {
		t.Parallel()

		store := session.NewMemoryStore()
		sess, err := session.New("user-1", time.Hour)
		require.NoError(t, err)
		sess.ExpiresAt = time.Now().Add(-time.Second)
		require.NoError(t, store.Create(ctx, sess))

		_, err = store.Get(ctx, sess.Token)
		require.ErrorIs(t, err, session.ErrExpired)

		_, err = store.Get(ctx, sess.Token)
		require.ErrorIs(t, err, session.ErrNotFound)
	})

	t.Run("delete", func(t *testing.T) {
		t.Parallel()

		store := session.NewMemoryStore()
		sess, err := session.New("user-1", time.Hour)
		require.NoError(t, err)
		require.NoError(t, store.Create(ctx, sess))

		require.NoError(t, store.Delete(ctx, sess.Token))
		_, err = store.Get(ctx, sess.Token)
		require.ErrorIs(t, err, session.ErrNotFound)

		require.NoError(t, store.Delete(ctx, sess.Token))
	})

	t.Run("delete by user", func(t *testing.T) {
		t.Parallel()

		store := session.NewMemoryStore()
		a, _ := session.New("user-1", time.Hour)
		b, _ := session.New("user-1", time.Hour)
		c, _ := session.New("user-2", time.Hour)
		for _, s := range []*session.Session{a, b, c} {
			require.NoError(t, store.Create(ctx, s))
		}

		require.NoError(t, store.DeleteByUserID(ctx, "user-1"))

		_, err := store.Get(ctx, a.Token)
		require.ErrorIs(t, err, session.ErrNotFound)
		_, err = store.Get(ctx, b.Token)
		require.ErrorIs(t, err, session.ErrNotFound)
		_, err = store.Get(ctx, c.Token)
		require.NoError(t, err)
	})
}
