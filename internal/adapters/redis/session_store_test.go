package redis

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/janasethu/civic-api/internal/domain/auth"
	"github.com/janasethu/civic-api/internal/testutil"
)

// setupTestRedis creates a Redis client for testing.
// Tests will be skipped if Redis is not available.
func setupTestRedis(t *testing.T) *redis.Client {
	t.Helper()
	return testutil.SetupTestRedis(t)
}

func TestSessionStore_SaveAndGet(t *testing.T) {
	client := setupTestRedis(t)
	defer client.Close()

	store := NewSessionStore(client)
	ctx := context.Background()

	elevatedUntil := time.Now().Add(8 * time.Hour)
	session := domainauth.Session{
		ID:            "test-session-1",
		UserID:        "user-123",
		FullName:      "Asha Rao",
		Email:         "asha@example.com",
		Role:          domainauth.RoleCitizen,
		Elevated:      true,
		ElevatedUntil: &elevatedUntil,
		ExpiresAt:     time.Now().Add(30 * time.Minute),
	}

	err := store.Save(ctx, session)
	require.NoError(t, err)

	retrieved, err := store.Get(ctx, "test-session-1")
	require.NoError(t, err)
	assert.Equal(t, session.ID, retrieved.ID)
	assert.Equal(t, session.UserID, retrieved.UserID)
	assert.Equal(t, session.Email, retrieved.Email)
	assert.Equal(t, session.Role, retrieved.Role)
	assert.True(t, retrieved.Elevated)
	require.NotNil(t, retrieved.ElevatedUntil)
	assert.WithinDuration(t, elevatedUntil, *retrieved.ElevatedUntil, time.Second)
	assert.WithinDuration(t, session.ExpiresAt, retrieved.ExpiresAt, time.Second)
}

func TestSessionStore_GetNonExistent(t *testing.T) {
	client := setupTestRedis(t)
	defer client.Close()

	store := NewSessionStore(client)

	_, err := store.Get(context.Background(), "non-existent")
	assert.Equal(t, ErrNotFound, err)
}

func TestSessionStore_Delete(t *testing.T) {
	client := setupTestRedis(t)
	defer client.Close()

	store := NewSessionStore(client)
	ctx := context.Background()

	session := domainauth.Session{
		ID:        "test-session-delete",
		UserID:    "user-123",
		Email:     "asha@example.com",
		Role:      domainauth.RoleCitizen,
		ExpiresAt: time.Now().Add(30 * time.Minute),
	}

	require.NoError(t, store.Save(ctx, session))
	require.NoError(t, store.Delete(ctx, session.ID))

	_, err := store.Get(ctx, session.ID)
	assert.Equal(t, ErrNotFound, err)
}

func TestSessionStore_Save_RejectsExpired(t *testing.T) {
	client := setupTestRedis(t)
	defer client.Close()

	store := NewSessionStore(client)

	session := domainauth.Session{
		ID:        "test-session-expired",
		UserID:    "user-123",
		ExpiresAt: time.Now().Add(-time.Minute),
	}

	err := store.Save(context.Background(), session)
	require.Error(t, err)
}

func TestSessionStore_Save_RequiresID(t *testing.T) {
	client := setupTestRedis(t)
	defer client.Close()

	store := NewSessionStore(client)

	err := store.Save(context.Background(), domainauth.Session{ExpiresAt: time.Now().Add(time.Hour)})
	require.Error(t, err)
}

func TestSessionStore_ElevationRewriteKeepsSession(t *testing.T) {
	client := setupTestRedis(t)
	defer client.Close()

	store := NewSessionStore(client)
	ctx := context.Background()

	session := domainauth.Session{
		ID:        "test-session-rewrite",
		UserID:    "user-123",
		Role:      domainauth.RoleCitizen,
		ExpiresAt: time.Now().Add(30 * time.Minute),
	}
	require.NoError(t, store.Save(ctx, session))

	until := time.Now().Add(8 * time.Hour)
	session.Elevated = true
	session.ElevatedUntil = &until
	require.NoError(t, store.Save(ctx, session))

	retrieved, err := store.Get(ctx, session.ID)
	require.NoError(t, err)
	assert.True(t, retrieved.Elevated)
}
