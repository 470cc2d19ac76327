// Package service contains the application services that orchestrate
// repositories, auth ports, and realtime publishing. Services validate
// input, translate storage errors, and never touch HTTP concerns.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/janasethu/civic-api/internal/core"
	"github.com/janasethu/civic-api/internal/data"
	"github.com/janasethu/civic-api/internal/data/cryptoutil"
	domainauth "github.com/janasethu/civic-api/internal/domain/auth"
	"github.com/janasethu/civic-api/internal/domain/model"
	apperrors "github.com/janasethu/civic-api/internal/errors"
	"github.com/janasethu/civic-api/internal/ports"
)

// defaultSessionTTL bounds sessions when the identity provider does not
// supply its own expiry (password mode always uses it).
const defaultSessionTTL = 24 * time.Hour

var (
	// ErrInvalidCredentials is returned for any sign-in failure. The message
	// never reveals whether the account exists.
	ErrInvalidCredentials = apperrors.Unauthorized("invalid email or password")

	// ErrInvalidPin is returned for any PIN check failure: wrong PIN and no
	// PIN configured are indistinguishable to the caller.
	ErrInvalidPin = apperrors.Forbidden("invalid pin")

	errSessionExpired = apperrors.Unauthorized("session expired")
)

// AuthServiceOptions groups the dependencies for AuthService.
// Provider is optional: password mode authenticates locally.
type AuthServiceOptions struct {
	Provider   ports.AuthProvider
	Sessions   ports.SessionStore
	Roles      ports.RoleMapper
	Users      core.UserRepository
	Profiles   core.ProfileRepository
	Grants     ports.GrantStore
	Pins       ports.PinVerifier
	Passwords  cryptoutil.Hasher
	SessionTTL time.Duration
}

// AuthService owns login, sessions, and admin-mode elevation.
//
// A session's Elevated/ElevatedUntil fields are a mirror of the grant rows
// in GrantStore, never the authority. The mirror is populated before the
// session is first saved and re-derived on demand by RefreshElevation.
type AuthService struct {
	provider   ports.AuthProvider
	sessions   ports.SessionStore
	roles      ports.RoleMapper
	users      core.UserRepository
	profiles   core.ProfileRepository
	grants     ports.GrantStore
	pins       ports.PinVerifier
	passwords  cryptoutil.Hasher
	sessionTTL time.Duration

	now func() time.Time
}

// NewAuthService constructs an AuthService from options.
func NewAuthService(opts AuthServiceOptions) *AuthService {
	ttl := opts.SessionTTL
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	return &AuthService{
		provider:   opts.Provider,
		sessions:   opts.Sessions,
		roles:      opts.Roles,
		users:      opts.Users,
		profiles:   opts.Profiles,
		grants:     opts.Grants,
		pins:       opts.Pins,
		passwords:  opts.Passwords,
		sessionTTL: ttl,
		now:        time.Now,
	}
}

// BeginLoginResult carries the redirect target and the flow tokens the
// caller must hold on to (cookie or equivalent) until the callback.
type BeginLoginResult struct {
	AuthURL string
	State   string
	Nonce   string
}

// CompleteLoginInput carries the provider callback parameters.
type CompleteLoginInput struct {
	Code  string
	State string
	Nonce string
}

// BeginLogin starts a provider login flow. Only available when an auth
// provider is configured (oauth and mock modes).
func (s *AuthService) BeginLogin(ctx context.Context, redirectURL string) (BeginLoginResult, error) {
	if s.provider == nil {
		return BeginLoginResult{}, apperrors.Validation("provider login is not enabled")
	}
	authURL, state, nonce, err := s.provider.Begin(ctx, ports.BeginInput{RedirectURL: redirectURL})
	if err != nil {
		return BeginLoginResult{}, fmt.Errorf("begin login: %w", err)
	}
	return BeginLoginResult{AuthURL: authURL, State: state, Nonce: nonce}, nil
}

// CompleteLogin finishes a provider login flow and establishes a session.
func (s *AuthService) CompleteLogin(ctx context.Context, in CompleteLoginInput) (domainauth.Session, error) {
	if s.provider == nil {
		return domainauth.Session{}, apperrors.Validation("provider login is not enabled")
	}
	identity, err := s.provider.Exchange(ctx, ports.ExchangeInput{Code: in.Code, State: in.State, Nonce: in.Nonce})
	if err != nil {
		return domainauth.Session{}, apperrors.Wrap(err, apperrors.ErrCodeUnauthorized, "login failed")
	}

	fallbackRole := domainauth.RoleCitizen
	if s.roles != nil {
		fallbackRole = s.roles.Map(identity.Groups)
	}

	expiresAt := identity.ExpiresAt
	if expiresAt.IsZero() {
		expiresAt = s.now().Add(s.sessionTTL)
	}
	return s.establishSession(ctx, identity.UserID, identity.FullName, identity.Email, fallbackRole, expiresAt)
}

// SignUp creates a credential record and signs the new user in.
func (s *AuthService) SignUp(ctx context.Context, req *model.SignUpRequest) (domainauth.Session, error) {
	if err := req.Validate(); err != nil {
		return domainauth.Session{}, apperrors.Validation(err.Error())
	}
	hash, err := s.passwords.Hash(req.Password)
	if err != nil {
		return domainauth.Session{}, fmt.Errorf("hash password: %w", err)
	}

	user, err := s.users.Create(ctx, uuid.NewString(), req.Email, hash)
	if err != nil {
		if errors.Is(err, data.ErrUserExists) {
			return domainauth.Session{}, apperrors.Conflict("an account with this email already exists")
		}
		return domainauth.Session{}, fmt.Errorf("create user: %w", err)
	}

	return s.establishSession(ctx, user.ID, req.FullName, user.Email, domainauth.RoleCitizen, s.now().Add(s.sessionTTL))
}

// SignIn verifies credentials and establishes a session.
func (s *AuthService) SignIn(ctx context.Context, req *model.SignInRequest) (domainauth.Session, error) {
	if err := req.Validate(); err != nil {
		return domainauth.Session{}, apperrors.Validation(err.Error())
	}

	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, data.ErrUserNotFound) {
			return domainauth.Session{}, ErrInvalidCredentials
		}
		return domainauth.Session{}, fmt.Errorf("look up user: %w", err)
	}

	ok, err := s.passwords.Verify(req.Password, user.PasswordHash)
	if err != nil || !ok {
		return domainauth.Session{}, ErrInvalidCredentials
	}

	return s.establishSession(ctx, user.ID, "", user.Email, domainauth.RoleCitizen, s.now().Add(s.sessionTTL))
}

// establishSession resolves the profile and the elevation mirror, then saves
// a fresh session. Both lookups happen before Save so the first session
// snapshot is already consistent with the durable state.
func (s *AuthService) establishSession(ctx context.Context, userID, fullName, email string, fallbackRole domainauth.Role, expiresAt time.Time) (domainauth.Session, error) {
	profile, err := s.profiles.Ensure(ctx, userID, fullName, email)
	if err != nil {
		return domainauth.Session{}, fmt.Errorf("ensure profile: %w", err)
	}

	role := profile.Role
	if !role.Valid() {
		role = fallbackRole
	}

	sess := domainauth.Session{
		ID:        generateSessionID(),
		UserID:    userID,
		FullName:  profile.FullName,
		Email:     profile.Email,
		Role:      role,
		ExpiresAt: expiresAt,
	}

	// Re-login restores elevation: any live grant from an earlier session
	// is mirrored into the new one. A lookup failure leaves the session
	// unelevated, which RefreshElevation can correct later.
	if grant, err := s.grants.ActiveGrant(ctx, userID); err == nil {
		until := grant.ExpiresAt
		sess.Elevated = true
		sess.ElevatedUntil = &until
	}

	if err := s.sessions.Save(ctx, sess); err != nil {
		return domainauth.Session{}, fmt.Errorf("save session: %w", err)
	}
	return sess, nil
}

// GetSession loads a session, expiring it if its deadline has passed and
// downgrading a stale elevation mirror before returning it.
func (s *AuthService) GetSession(ctx context.Context, sessionID string) (domainauth.Session, error) {
	sess, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return domainauth.Session{}, errSessionExpired
	}

	now := s.now()
	if !sess.ExpiresAt.IsZero() && now.After(sess.ExpiresAt) {
		_ = s.sessions.Delete(ctx, sessionID)
		return domainauth.Session{}, errSessionExpired
	}

	// The mirror downgrades itself the moment the cached expiry passes;
	// no grant-store round trip is needed to stop honoring a dead grant.
	if sess.Elevated && !sess.IsElevated(now) {
		sess.Elevated = false
		sess.ElevatedUntil = nil
		if err := s.sessions.Save(ctx, sess); err != nil {
			return domainauth.Session{}, fmt.Errorf("save session: %w", err)
		}
	}

	return sess, nil
}

// SignOut deletes the session. Elevation grants are left untouched: they
// belong to the user, not the session, and survive until their own expiry
// or an explicit admin-mode exit.
func (s *AuthService) SignOut(ctx context.Context, sessionID string) error {
	return s.sessions.Delete(ctx, sessionID)
}

// EnterAdminMode verifies the admin PIN and, on success, creates an
// elevation grant and mirrors it into the session. Every failure mode
// returns the same generic denial.
func (s *AuthService) EnterAdminMode(ctx context.Context, sessionID, pin string) (domainauth.Session, error) {
	sess, err := s.GetSession(ctx, sessionID)
	if err != nil {
		return domainauth.Session{}, err
	}

	ok, err := s.pins.VerifyPin(ctx, pin)
	if err != nil {
		return domainauth.Session{}, fmt.Errorf("verify pin: %w", err)
	}
	if !ok {
		return domainauth.Session{}, ErrInvalidPin
	}

	grant, err := s.grants.Create(ctx, sess.UserID)
	if err != nil {
		return domainauth.Session{}, fmt.Errorf("create elevation grant: %w", err)
	}

	until := grant.ExpiresAt
	sess.Elevated = true
	sess.ElevatedUntil = &until
	if err := s.sessions.Save(ctx, sess); err != nil {
		return domainauth.Session{}, fmt.Errorf("save session: %w", err)
	}
	return sess, nil
}

// ExitAdminMode revokes the user's elevation. The grant rows are deleted
// first; the session mirror is only cleared once that succeeds, so a
// storage failure can never leave a revoked grant looking active.
func (s *AuthService) ExitAdminMode(ctx context.Context, sessionID string) (domainauth.Session, error) {
	sess, err := s.GetSession(ctx, sessionID)
	if err != nil {
		return domainauth.Session{}, err
	}

	if err := s.grants.DeleteForUser(ctx, sess.UserID); err != nil {
		return domainauth.Session{}, fmt.Errorf("delete elevation grants: %w", err)
	}

	sess.Elevated = false
	sess.ElevatedUntil = nil
	if err := s.sessions.Save(ctx, sess); err != nil {
		return domainauth.Session{}, fmt.Errorf("save session: %w", err)
	}
	return sess, nil
}

// RefreshElevation re-derives the session's elevation mirror from the grant
// store, picking up grants created or revoked through other sessions.
func (s *AuthService) RefreshElevation(ctx context.Context, sessionID string) (domainauth.Session, error) {
	sess, err := s.GetSession(ctx, sessionID)
	if err != nil {
		return domainauth.Session{}, err
	}

	grant, err := s.grants.ActiveGrant(ctx, sess.UserID)
	if err == nil {
		until := grant.ExpiresAt
		sess.Elevated = true
		sess.ElevatedUntil = &until
		// last_activity is bookkeeping; a failed touch never blocks refresh.
		_ = s.grants.Touch(ctx, sess.UserID)
	} else {
		sess.Elevated = false
		sess.ElevatedUntil = nil
	}

	if err := s.sessions.Save(ctx, sess); err != nil {
		return domainauth.Session{}, fmt.Errorf("save session: %w", err)
	}
	return sess, nil
}

func generateSessionID() string {
	return uuid.New().String()
}
