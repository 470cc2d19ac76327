package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/janasethu/civic-api/internal/domain/auth"
	"github.com/janasethu/civic-api/internal/ports"
)

func TestMockAuthProvider_Begin_Defaults(t *testing.T) {
	provider := NewMockAuthProvider()
	ctx := context.Background()

	input := ports.BeginInput{RedirectURL: "http://localhost:8080/callback"}
	authURL, state, nonce, err := provider.Begin(ctx, input)

	require.NoError(t, err)
	assert.Equal(t, "https://mock-idp/auth", authURL)
	assert.Equal(t, "state-1", state)
	assert.Equal(t, "nonce-1", nonce)

	// Second call should increment counters
	authURL2, state2, nonce2, err2 := provider.Begin(ctx, input)
	require.NoError(t, err2)
	assert.Equal(t, "https://mock-idp/auth", authURL2)
	assert.Equal(t, "state-2", state2)
	assert.Equal(t, "nonce-2", nonce2)
}

func TestMockAuthProvider_Begin_CustomFunc(t *testing.T) {
	provider := &MockAuthProvider{
		BeginFunc: func(_ context.Context, _ ports.BeginInput) (string, string, string, error) {
			return "custom-url", "custom-state", "custom-nonce", nil
		},
	}
	ctx := context.Background()

	input := ports.BeginInput{RedirectURL: "http://localhost:8080/callback"}
	authURL, state, nonce, err := provider.Begin(ctx, input)

	require.NoError(t, err)
	assert.Equal(t, "custom-url", authURL)
	assert.Equal(t, "custom-state", state)
	assert.Equal(t, "custom-nonce", nonce)
}

func TestMockAuthProvider_Exchange_Defaults(t *testing.T) {
	provider := NewMockAuthProvider()
	ctx := context.Background()

	input := ports.ExchangeInput{
		Code:  "auth-code",
		State: "state-1",
		Nonce: "nonce-1",
	}
	identity, err := provider.Exchange(ctx, input)

	require.NoError(t, err)
	assert.Equal(t, "mock-user-1", identity.UserID)
	assert.Equal(t, "Mock User", identity.FullName)
	assert.Equal(t, "mock.user@example.com", identity.Email)
	assert.Equal(t, []string{"citizens"}, identity.Groups)
	assert.True(t, identity.ExpiresAt.After(time.Now()))
}

func TestMockAuthProvider_Exchange_CustomUser(t *testing.T) {
	customUser := domainauth.Identity{
		UserID:   "custom-user",
		FullName: "Custom Person",
		Email:    "custom@example.com",
		Groups:   []string{"municipal-admins", "citizens"},
	}
	provider := &MockAuthProvider{DefaultUser: customUser}
	ctx := context.Background()

	input := ports.ExchangeInput{
		Code:  "auth-code",
		State: "state-1",
		Nonce: "nonce-1",
	}
	identity, err := provider.Exchange(ctx, input)

	require.NoError(t, err)
	assert.Equal(t, "custom-user", identity.UserID)
	assert.Equal(t, "Custom Person", identity.FullName)
	assert.Equal(t, "custom@example.com", identity.Email)
	assert.Equal(t, []string{"municipal-admins", "citizens"}, identity.Groups)
	assert.True(t, identity.ExpiresAt.After(time.Now()))
}

func TestStaticRoleMapper(t *testing.T) {
	mapper := StaticRoleMapper{AdminGroup: "municipal-admins"}

	assert.Equal(t, domainauth.RoleAdmin, mapper.Map([]string{"municipal-admins", "citizens"}))
	assert.Equal(t, domainauth.RoleCitizen, mapper.Map([]string{"citizens"}))
	assert.Equal(t, domainauth.RoleCitizen, mapper.Map(nil))

	// Unconfigured mapper never grants the admin label.
	assert.Equal(t, domainauth.RoleCitizen, StaticRoleMapper{}.Map([]string{"municipal-admins"}))
}

func TestMemorySessionStore_SaveGetDelete(t *testing.T) {
	store := NewMemorySessionStore()
	ctx := context.Background()

	session := domainauth.Session{
		ID:        "test-session-1",
		UserID:    "user-123",
		Email:     "user@example.com",
		Role:      domainauth.RoleCitizen,
		ExpiresAt: time.Now().Add(30 * time.Minute),
	}

	require.NoError(t, store.Save(ctx, session))

	retrieved, err := store.Get(ctx, "test-session-1")
	require.NoError(t, err)
	assert.Equal(t, session.ID, retrieved.ID)
	assert.Equal(t, session.UserID, retrieved.UserID)
	assert.Equal(t, session.Role, retrieved.Role)

	require.NoError(t, store.Delete(ctx, "test-session-1"))
	_, err = store.Get(ctx, "test-session-1")
	assert.Equal(t, ErrNotFound, err)
}

func TestMemorySessionStore_SaveEmptyID(t *testing.T) {
	store := NewMemorySessionStore()

	err := store.Save(context.Background(), domainauth.Session{UserID: "user-123"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "session ID cannot be empty")
}

func TestMemoryGrantStore_CreateAndActiveGrant(t *testing.T) {
	store := NewMemoryGrantStore(time.Hour)
	ctx := context.Background()

	grant, err := store.Create(ctx, "user-123")
	require.NoError(t, err)
	assert.NotEmpty(t, grant.ID)
	assert.True(t, grant.ExpiresAt.After(time.Now()))

	active, err := store.ActiveGrant(ctx, "user-123")
	require.NoError(t, err)
	assert.Equal(t, grant.ID, active.ID)

	_, err = store.ActiveGrant(ctx, "someone-else")
	assert.Equal(t, ErrNotFound, err)
}

func TestMemoryGrantStore_ExpiredGrantIgnored(t *testing.T) {
	store := NewMemoryGrantStore(time.Hour)
	ctx := context.Background()

	now := time.Now()
	store.Seed(domainauth.Grant{
		ID:        "stale",
		UserID:    "user-123",
		CreatedAt: now.Add(-2 * time.Hour),
		ExpiresAt: now.Add(-time.Hour),
	})

	_, err := store.ActiveGrant(ctx, "user-123")
	assert.Equal(t, ErrNotFound, err)
}

func TestMemoryGrantStore_DeleteForUser(t *testing.T) {
	store := NewMemoryGrantStore(time.Hour)
	ctx := context.Background()

	_, err := store.Create(ctx, "user-123")
	require.NoError(t, err)
	_, err = store.Create(ctx, "user-123")
	require.NoError(t, err)

	require.NoError(t, store.DeleteForUser(ctx, "user-123"))

	_, err = store.ActiveGrant(ctx, "user-123")
	assert.Equal(t, ErrNotFound, err)
}

func TestStaticPinVerifier(t *testing.T) {
	ctx := context.Background()

	ok, err := StaticPinVerifier{Pin: "246810"}.VerifyPin(ctx, "246810")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = StaticPinVerifier{Pin: "246810"}.VerifyPin(ctx, "000000")
	require.NoError(t, err)
	assert.False(t, ok)

	// Unconfigured verifier rejects everything, indistinguishable from a wrong PIN.
	ok, err = StaticPinVerifier{}.VerifyPin(ctx, "246810")
	require.NoError(t, err)
	assert.False(t, ok)
}
