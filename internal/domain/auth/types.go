package auth

// Package auth contains domain-level types for authentication, sessions,
// and admin-mode elevation. It is pure and free of framework/adapter concerns.

import "time"

// Role represents a profile's durable application role.
// Keep string form for easy persistence and cookies.
// Valid values are defined as constants below.
//
// The durable admin role is a label only: admin routes are gated by the
// time-boxed elevation grant, never by this field.
type Role string

const (
	RoleCitizen Role = "citizen"
	RoleAdmin   Role = "admin"
)

// Valid reports whether the role is a supported value.
func (r Role) Valid() bool {
	switch r {
	case RoleCitizen, RoleAdmin:
		return true
	default:
		return false
	}
}

// Identity represents the authenticated principal returned by an auth provider.
// Adapters map provider-specific claims into this shape.
type Identity struct {
	UserID    string // stable user identifier (uuid for password auth, sub for OIDC)
	FullName  string
	Email     string
	Groups    []string
	ExpiresAt time.Time // absolute session expiry
}

// Session is the server-side record we persist for an authenticated user.
// ID is an opaque session identifier (e.g., random URL-safe string).
//
// Elevated/ElevatedUntil are a read-through mirror of the admin_sessions
// table, populated at login and refreshed on demand. They are never the
// authority: the grant row is.
type Session struct {
	ID            string     `json:"id"`
	UserID        string     `json:"user_id"`
	FullName      string     `json:"full_name"`
	Email         string     `json:"email"`
	Role          Role       `json:"role"`
	Elevated      bool       `json:"elevated"`
	ElevatedUntil *time.Time `json:"elevated_until,omitempty"`
	ExpiresAt     time.Time  `json:"expires_at"`
}

// IsElevated reports whether the session holds an elevation grant that has
// not passed its cached expiry at the given instant.
func (s Session) IsElevated(now time.Time) bool {
	return s.Elevated && s.ElevatedUntil != nil && now.Before(*s.ElevatedUntil)
}

// Grant is an elevation grant row: the server-side authority for admin mode.
// Any unexpired row for a user means that user is elevated.
type Grant struct {
	ID           string    `json:"id"            db:"id"`
	UserID       string    `json:"user_id"       db:"user_id"`
	CreatedAt    time.Time `json:"created_at"    db:"created_at"`
	ExpiresAt    time.Time `json:"expires_at"    db:"expires_at"`
	LastActivity time.Time `json:"last_activity" db:"last_activity"`
}

// Active reports whether the grant is unexpired at the given instant.
func (g Grant) Active(now time.Time) bool {
	return now.Before(g.ExpiresAt)
}
