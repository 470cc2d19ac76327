package auth

// Package auth contains simple hand-written test doubles for auth ports.
// These are lightweight and suitable for unit tests without codegen.

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	domainauth "github.com/janasethu/civic-api/internal/domain/auth"
	"github.com/janasethu/civic-api/internal/ports"
)

// Ensure compile-time conformance to ports.
var (
	_ ports.AuthProvider = (*MockAuthProvider)(nil)
	_ ports.SessionStore = (*MemorySessionStore)(nil)
	_ ports.RoleMapper   = (*StaticRoleMapper)(nil)
	_ ports.GrantStore   = (*MemoryGrantStore)(nil)
	_ ports.PinVerifier  = (*StaticPinVerifier)(nil)
	_ ports.Publisher    = (*RecordingPublisher)(nil)
)

// MockAuthProvider simulates an IdP for tests with deterministic state/nonce handling.
type MockAuthProvider struct {
	BeginFunc    func(ctx context.Context, in ports.BeginInput) (authURL, state, nonce string, err error)
	ExchangeFunc func(ctx context.Context, in ports.ExchangeInput) (domainauth.Identity, error)

	// Deterministic values for predictable testing
	AuthURL     string
	StatePrefix string
	NoncePrefix string
	DefaultUser domainauth.Identity

	// Internal state tracking for deterministic behavior
	callCount int
}

// NewMockAuthProvider creates a MockAuthProvider with sensible defaults.
func NewMockAuthProvider() *MockAuthProvider {
	return &MockAuthProvider{
		AuthURL:     "https://mock-idp/auth",
		StatePrefix: "state",
		NoncePrefix: "nonce",
		DefaultUser: domainauth.Identity{
			UserID:    "mock-user-1",
			FullName:  "Mock User",
			Email:     "mock.user@example.com",
			Groups:    []string{"citizens"},
			ExpiresAt: time.Now().Add(time.Hour),
		},
	}
}

func (m *MockAuthProvider) Begin(ctx context.Context, in ports.BeginInput) (string, string, string, error) {
	if m.BeginFunc != nil {
		return m.BeginFunc(ctx, in)
	}

	m.callCount++
	authURL := m.AuthURL
	if authURL == "" {
		authURL = "https://mock-idp/auth"
	}

	// Generate deterministic state and nonce based on call count and redirect URL
	statePrefix := m.StatePrefix
	if statePrefix == "" {
		statePrefix = "state"
	}
	noncePrefix := m.NoncePrefix
	if noncePrefix == "" {
		noncePrefix = "nonce"
	}

	state := fmt.Sprintf("%s-%d", statePrefix, m.callCount)
	nonce := fmt.Sprintf("%s-%d", noncePrefix, m.callCount)

	return authURL, state, nonce, nil
}

func (m *MockAuthProvider) Exchange(ctx context.Context, in ports.ExchangeInput) (domainauth.Identity, error) {
	if m.ExchangeFunc != nil {
		return m.ExchangeFunc(ctx, in)
	}

	// Return a copy of the default user with a fresh expiration time
	user := m.DefaultUser
	if user.UserID == "" {
		user = domainauth.Identity{
			UserID:   "mock-user-1",
			FullName: "Mock User",
			Email:    "mock.user@example.com",
			Groups:   []string{"citizens"},
		}
	}
	user.ExpiresAt = time.Now().Add(time.Hour)

	return user, nil
}

// MemorySessionStore is an in-memory session store for unit tests.
type MemorySessionStore struct {
	sessions map[string]domainauth.Session
}

// NewMemorySessionStore creates a new in-memory session store.
func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{
		sessions: make(map[string]domainauth.Session),
	}
}

func (m *MemorySessionStore) Save(_ context.Context, sess domainauth.Session) error {
	if sess.ID == "" {
		return errors.New("session ID cannot be empty")
	}
	m.sessions[sess.ID] = sess
	return nil
}

func (m *MemorySessionStore) Get(_ context.Context, id string) (domainauth.Session, error) {
	if id == "" {
		return domainauth.Session{}, ErrNotFound
	}
	sess, ok := m.sessions[id]
	if !ok {
		return domainauth.Session{}, ErrNotFound
	}
	return sess, nil
}

func (m *MemorySessionStore) Delete(_ context.Context, id string) error {
	if id == "" {
		return nil
	}
	delete(m.sessions, id)
	return nil
}

// ErrNotFound is returned by mocks when an entity is not present.
type notFoundError struct{}

func (notFoundError) Error() string { return "not found" }

var ErrNotFound error = notFoundError{}

// StaticRoleMapper maps groups by simple string membership rules.
// Membership of AdminGroup yields the durable admin label; everyone else
// is a citizen.
type StaticRoleMapper struct {
	AdminGroup string
}

func (m StaticRoleMapper) Map(groups []string) domainauth.Role {
	for _, g := range groups {
		if m.AdminGroup != "" && g == m.AdminGroup {
			return domainauth.RoleAdmin
		}
	}
	return domainauth.RoleCitizen
}

// MemoryGrantStore is an in-memory elevation grant store for unit tests.
// Now is overridable so tests can age grants without sleeping.
type MemoryGrantStore struct {
	TTL time.Duration
	Now func() time.Time

	mu     sync.Mutex
	grants map[string][]domainauth.Grant // keyed by user ID
}

// NewMemoryGrantStore creates an in-memory grant store with the given TTL.
func NewMemoryGrantStore(ttl time.Duration) *MemoryGrantStore {
	return &MemoryGrantStore{
		TTL:    ttl,
		Now:    time.Now,
		grants: make(map[string][]domainauth.Grant),
	}
}

func (m *MemoryGrantStore) Create(_ context.Context, userID string) (domainauth.Grant, error) {
	if userID == "" {
		return domainauth.Grant{}, errors.New("user ID cannot be empty")
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.Now()
	grant := domainauth.Grant{
		ID:           uuid.NewString(),
		UserID:       userID,
		CreatedAt:    now,
		ExpiresAt:    now.Add(m.TTL),
		LastActivity: now,
	}
	m.grants[userID] = append(m.grants[userID], grant)
	return grant, nil
}

func (m *MemoryGrantStore) ActiveGrant(_ context.Context, userID string) (domainauth.Grant, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.Now()
	var best domainauth.Grant
	found := false
	for _, g := range m.grants[userID] {
		if g.Active(now) && (!found || g.ExpiresAt.After(best.ExpiresAt)) {
			best = g
			found = true
		}
	}
	if !found {
		return domainauth.Grant{}, ErrNotFound
	}
	return best, nil
}

func (m *MemoryGrantStore) Touch(_ context.Context, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.Now()
	grants := m.grants[userID]
	for i := range grants {
		if grants[i].Active(now) {
			grants[i].LastActivity = now
		}
	}
	return nil
}

func (m *MemoryGrantStore) DeleteForUser(_ context.Context, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.grants, userID)
	return nil
}

// Seed installs a grant row directly, bypassing Create. Tests use it to
// model grants from earlier sessions or with custom expiries.
func (m *MemoryGrantStore) Seed(grant domainauth.Grant) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.grants[grant.UserID] = append(m.grants[grant.UserID], grant)
}

// StaticPinVerifier accepts exactly one PIN. With Pin empty it behaves as
// an unconfigured instance and rejects everything.
type StaticPinVerifier struct {
	Pin string
	Err error
}

func (v StaticPinVerifier) VerifyPin(_ context.Context, pin string) (bool, error) {
	if v.Err != nil {
		return false, v.Err
	}
	return v.Pin != "" && pin == v.Pin, nil
}

// RecordingPublisher captures published events for assertions.
type RecordingPublisher struct {
	mu     sync.Mutex
	events []PublishedEvent
}

// PublishedEvent is one captured Publish call.
type PublishedEvent struct {
	Topic   string
	Payload []byte
}

func (p *RecordingPublisher) Publish(_ context.Context, topic string, payload []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, PublishedEvent{Topic: topic, Payload: payload})
	return nil
}

// Events returns a copy of everything published so far.
func (p *RecordingPublisher) Events() []PublishedEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]PublishedEvent, len(p.events))
	copy(out, p.events)
	return out
}
