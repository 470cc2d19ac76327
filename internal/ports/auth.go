package ports

// Package ports defines interfaces (hexagonal ports) for auth-related behavior.
// Implementations live in internal/adapters and internal/data; orchestration
// in internal/service.

import (
	"context"

	domainauth "github.com/janasethu/civic-api/internal/domain/auth"
)

// BeginInput carries inputs for initiating an auth flow.
type BeginInput struct {
	RedirectURL string
}

// AuthProvider initiates and completes an authentication flow against an IdP.
// Used in oauth and mock auth modes; password mode authenticates locally.
type AuthProvider interface {
	// Begin starts the login flow and returns the provider auth URL, an opaque state, and a nonce.
	Begin(ctx context.Context, in BeginInput) (authURL, state, nonce string, err error)

	// Exchange completes the login flow, verifying state and nonce, and returns the authenticated identity.
	Exchange(ctx context.Context, in ExchangeInput) (domainauth.Identity, error)
}

// ExchangeInput groups parameters for the code/token exchange.
type ExchangeInput struct {
	Code  string
	State string
	Nonce string
}

// SessionStore persists and retrieves user sessions.
type SessionStore interface {
	Save(ctx context.Context, sess domainauth.Session) error
	Get(ctx context.Context, id string) (domainauth.Session, error)
	Delete(ctx context.Context, id string) error
}

// RoleMapper maps provider groups to application roles.
type RoleMapper interface {
	Map(groups []string) domainauth.Role
}

// GrantStore persists elevation grants: the server-side authority for
// admin mode. ActiveGrant returns the latest grant whose expiry is in the
// future, or a not-found error when none exists. Touch records activity on
// the live grant without extending its expiry.
type GrantStore interface {
	Create(ctx context.Context, userID string) (domainauth.Grant, error)
	ActiveGrant(ctx context.Context, userID string) (domainauth.Grant, error)
	Touch(ctx context.Context, userID string) error
	DeleteForUser(ctx context.Context, userID string) error
}

// PinVerifier checks an admin PIN against the configured secret hash.
// Implementations must return the same generic failure for a wrong PIN and
// for no PIN being configured, and must compare in constant time.
type PinVerifier interface {
	VerifyPin(ctx context.Context, pin string) (bool, error)
}
