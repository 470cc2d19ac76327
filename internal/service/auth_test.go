package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/janasethu/civic-api/internal/data"
	domainauth "github.com/janasethu/civic-api/internal/domain/auth"
	"github.com/janasethu/civic-api/internal/domain/model"
	apperrors "github.com/janasethu/civic-api/internal/errors"
	mocksauth "github.com/janasethu/civic-api/internal/mocks/auth"
	"github.com/janasethu/civic-api/internal/ports"
)

const testPin = "246810"

// fakeHasher avoids argon2 cost in unit tests.
type fakeHasher struct{}

func (fakeHasher) Hash(secret string) (string, error) { return "hashed:" + secret, nil }

func (fakeHasher) Verify(secret, encoded string) (bool, error) {
	return encoded == "hashed:"+secret, nil
}

// memUsers is an in-memory core.UserRepository.
type memUsers struct {
	byEmail map[string]*model.User
}

func newMemUsers() *memUsers { return &memUsers{byEmail: make(map[string]*model.User)} }

func (m *memUsers) Create(_ context.Context, id, email, passwordHash string) (*model.User, error) {
	if _, ok := m.byEmail[email]; ok {
		return nil, data.ErrUserExists
	}
	user := &model.User{ID: id, Email: email, PasswordHash: passwordHash, CreatedAt: time.Now()}
	m.byEmail[email] = user
	return user, nil
}

func (m *memUsers) GetByEmail(_ context.Context, email string) (*model.User, error) {
	user, ok := m.byEmail[email]
	if !ok {
		return nil, data.ErrUserNotFound
	}
	return user, nil
}

func (m *memUsers) GetByID(_ context.Context, id string) (*model.User, error) {
	for _, user := range m.byEmail {
		if user.ID == id {
			return user, nil
		}
	}
	return nil, data.ErrUserNotFound
}

// memProfiles is an in-memory core.ProfileRepository.
type memProfiles struct {
	byUserID map[string]*model.Profile
}

func newMemProfiles() *memProfiles {
	return &memProfiles{byUserID: make(map[string]*model.Profile)}
}

func (m *memProfiles) GetByUserID(_ context.Context, userID string) (*model.Profile, error) {
	profile, ok := m.byUserID[userID]
	if !ok {
		return nil, data.ErrProfileNotFound
	}
	return profile, nil
}

func (m *memProfiles) Ensure(_ context.Context, userID, fullName, email string) (*model.Profile, error) {
	if profile, ok := m.byUserID[userID]; ok {
		return profile, nil
	}
	profile := &model.Profile{
		UserID:   userID,
		FullName: fullName,
		Email:    email,
		Role:     domainauth.RoleCitizen,
	}
	m.byUserID[userID] = profile
	return profile, nil
}

func (m *memProfiles) Update(_ context.Context, userID string, req *model.UpdateProfileRequest) (*model.Profile, error) {
	profile, ok := m.byUserID[userID]
	if !ok {
		return nil, data.ErrProfileNotFound
	}
	if req.FullName != nil {
		profile.FullName = *req.FullName
	}
	return profile, nil
}

func (m *memProfiles) SetRole(_ context.Context, userID string, role domainauth.Role) (*model.Profile, error) {
	profile, ok := m.byUserID[userID]
	if !ok {
		return nil, data.ErrProfileNotFound
	}
	profile.Role = role
	return profile, nil
}

// failingGrantStore wraps a grant store and fails deletes on demand.
type failingGrantStore struct {
	ports.GrantStore
	deleteErr error
}

func (f *failingGrantStore) DeleteForUser(ctx context.Context, userID string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	return f.GrantStore.DeleteForUser(ctx, userID)
}

type authFixture struct {
	svc      *AuthService
	users    *memUsers
	profiles *memProfiles
	sessions *mocksauth.MemorySessionStore
	grants   *mocksauth.MemoryGrantStore
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()
	f := &authFixture{
		users:    newMemUsers(),
		profiles: newMemProfiles(),
		sessions: mocksauth.NewMemorySessionStore(),
		grants:   mocksauth.NewMemoryGrantStore(8 * time.Hour),
	}
	f.svc = NewAuthService(AuthServiceOptions{
		Sessions:  f.sessions,
		Users:     f.users,
		Profiles:  f.profiles,
		Grants:    f.grants,
		Pins:      mocksauth.StaticPinVerifier{Pin: testPin},
		Passwords: fakeHasher{},
	})
	return f
}

func (f *authFixture) signUp(t *testing.T) domainauth.Session {
	t.Helper()
	sess, err := f.svc.SignUp(context.Background(), &model.SignUpRequest{
		Email:    "asha@example.com",
		Password: "correct horse",
		FullName: "Asha Rao",
	})
	require.NoError(t, err)
	return sess
}

func TestAuthService_SignUpAndSignIn(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	sess := f.signUp(t)
	assert.NotEmpty(t, sess.ID)
	assert.Equal(t, domainauth.RoleCitizen, sess.Role)
	assert.False(t, sess.Elevated)
	assert.Nil(t, sess.ElevatedUntil)

	again, err := f.svc.SignIn(ctx, &model.SignInRequest{Email: "asha@example.com", Password: "correct horse"})
	require.NoError(t, err)
	assert.Equal(t, sess.UserID, again.UserID)
	assert.NotEqual(t, sess.ID, again.ID)
}

func TestAuthService_SignIn_GenericDenial(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()
	f.signUp(t)

	_, err := f.svc.SignIn(ctx, &model.SignInRequest{Email: "asha@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	// Unknown account yields the exact same error.
	_, err = f.svc.SignIn(ctx, &model.SignInRequest{Email: "nobody@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_SignUp_DuplicateEmail(t *testing.T) {
	f := newAuthFixture(t)
	f.signUp(t)

	_, err := f.svc.SignUp(context.Background(), &model.SignUpRequest{
		Email:    "asha@example.com",
		Password: "another pass",
		FullName: "Someone Else",
	})
	assert.True(t, apperrors.IsConflict(err))
}

func TestAuthService_EnterAdminMode(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()
	sess := f.signUp(t)

	elevated, err := f.svc.EnterAdminMode(ctx, sess.ID, testPin)
	require.NoError(t, err)
	assert.True(t, elevated.Elevated)
	require.NotNil(t, elevated.ElevatedUntil)

	// The mirror matches the grant row, which is the authority.
	grant, err := f.grants.ActiveGrant(ctx, sess.UserID)
	require.NoError(t, err)
	assert.True(t, elevated.ElevatedUntil.Equal(grant.ExpiresAt))
}

// Entering admin mode again with the correct PIN is observably idempotent:
// the session stays elevated with a live expiry even though a second grant
// row now exists server-side.
func TestAuthService_EnterAdminMode_Repeated(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()
	sess := f.signUp(t)

	first, err := f.svc.EnterAdminMode(ctx, sess.ID, testPin)
	require.NoError(t, err)
	require.NotNil(t, first.ElevatedUntil)

	second, err := f.svc.EnterAdminMode(ctx, sess.ID, testPin)
	require.NoError(t, err)
	assert.True(t, second.Elevated)
	require.NotNil(t, second.ElevatedUntil)
	assert.False(t, second.ElevatedUntil.Before(*first.ElevatedUntil))

	// The mirror still matches the latest live grant.
	grant, err := f.grants.ActiveGrant(ctx, sess.UserID)
	require.NoError(t, err)
	assert.True(t, second.ElevatedUntil.Equal(grant.ExpiresAt))

	current, err := f.svc.GetSession(ctx, sess.ID)
	require.NoError(t, err)
	assert.True(t, current.Elevated)
}

func TestAuthService_EnterAdminMode_WrongPin(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()
	sess := f.signUp(t)

	_, err := f.svc.EnterAdminMode(ctx, sess.ID, "000000")
	assert.ErrorIs(t, err, ErrInvalidPin)

	// No grant was created and the session is untouched.
	_, err = f.grants.ActiveGrant(ctx, sess.UserID)
	assert.Error(t, err)
	current, err := f.svc.GetSession(ctx, sess.ID)
	require.NoError(t, err)
	assert.False(t, current.Elevated)
}

func TestAuthService_EnterAdminMode_UnconfiguredPin(t *testing.T) {
	f := newAuthFixture(t)
	// No PIN configured behaves exactly like a wrong PIN.
	f.svc.pins = mocksauth.StaticPinVerifier{}
	sess := f.signUp(t)

	_, err := f.svc.EnterAdminMode(context.Background(), sess.ID, testPin)
	assert.ErrorIs(t, err, ErrInvalidPin)
}

func TestAuthService_DurableAdminRoleDoesNotElevate(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()
	sess := f.signUp(t)

	_, err := f.profiles.SetRole(ctx, sess.UserID, domainauth.RoleAdmin)
	require.NoError(t, err)

	// A fresh login carries the admin label but no elevation.
	again, err := f.svc.SignIn(ctx, &model.SignInRequest{Email: "asha@example.com", Password: "correct horse"})
	require.NoError(t, err)
	assert.Equal(t, domainauth.RoleAdmin, again.Role)
	assert.False(t, again.Elevated)
	assert.False(t, again.IsElevated(time.Now()))
}

func TestAuthService_ExitAdminMode(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()
	sess := f.signUp(t)

	_, err := f.svc.EnterAdminMode(ctx, sess.ID, testPin)
	require.NoError(t, err)

	cleared, err := f.svc.ExitAdminMode(ctx, sess.ID)
	require.NoError(t, err)
	assert.False(t, cleared.Elevated)
	assert.Nil(t, cleared.ElevatedUntil)

	_, err = f.grants.ActiveGrant(ctx, sess.UserID)
	assert.Error(t, err)
}

func TestAuthService_ExitAdminMode_GrantDeleteFails(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()
	sess := f.signUp(t)

	_, err := f.svc.EnterAdminMode(ctx, sess.ID, testPin)
	require.NoError(t, err)

	f.svc.grants = &failingGrantStore{GrantStore: f.grants, deleteErr: errors.New("storage down")}

	_, err = f.svc.ExitAdminMode(ctx, sess.ID)
	require.Error(t, err)

	// Grant rows are deleted before the mirror is cleared, so a failed
	// delete leaves the session still elevated.
	current, err := f.svc.GetSession(ctx, sess.ID)
	require.NoError(t, err)
	assert.True(t, current.Elevated)

	grant, err := f.grants.ActiveGrant(ctx, sess.UserID)
	require.NoError(t, err)
	assert.True(t, grant.Active(time.Now()))
}

func TestAuthService_SignOutLeavesGrantIntact(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()
	sess := f.signUp(t)

	_, err := f.svc.EnterAdminMode(ctx, sess.ID, testPin)
	require.NoError(t, err)

	require.NoError(t, f.svc.SignOut(ctx, sess.ID))
	_, err = f.svc.GetSession(ctx, sess.ID)
	assert.Error(t, err)

	// The grant belongs to the user, not the session.
	grant, err := f.grants.ActiveGrant(ctx, sess.UserID)
	require.NoError(t, err)

	// A new login mirrors the surviving grant straight away.
	again, err := f.svc.SignIn(ctx, &model.SignInRequest{Email: "asha@example.com", Password: "correct horse"})
	require.NoError(t, err)
	assert.True(t, again.Elevated)
	require.NotNil(t, again.ElevatedUntil)
	assert.True(t, again.ElevatedUntil.Equal(grant.ExpiresAt))
}

func TestAuthService_GetSession_DowngradesExpiredMirror(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()
	sess := f.signUp(t)

	// Backdate the cached elevation expiry without touching the grant store.
	past := time.Now().Add(-time.Minute)
	sess.Elevated = true
	sess.ElevatedUntil = &past
	require.NoError(t, f.sessions.Save(ctx, sess))

	current, err := f.svc.GetSession(ctx, sess.ID)
	require.NoError(t, err)
	assert.False(t, current.Elevated)
	assert.Nil(t, current.ElevatedUntil)

	// The downgrade is persisted, not just returned.
	stored, err := f.sessions.Get(ctx, sess.ID)
	require.NoError(t, err)
	assert.False(t, stored.Elevated)
}

func TestAuthService_GetSession_ExpiredSessionDeleted(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()
	sess := f.signUp(t)

	sess.ExpiresAt = time.Now().Add(-time.Minute)
	require.NoError(t, f.sessions.Save(ctx, sess))

	_, err := f.svc.GetSession(ctx, sess.ID)
	assert.ErrorIs(t, err, errSessionExpired)
	_, err = f.sessions.Get(ctx, sess.ID)
	assert.Error(t, err)
}

func TestAuthService_RefreshElevation(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()
	sess := f.signUp(t)

	// A grant created outside this session (another device, the CLI) is
	// picked up on refresh.
	grant, err := f.grants.Create(ctx, sess.UserID)
	require.NoError(t, err)

	refreshed, err := f.svc.RefreshElevation(ctx, sess.ID)
	require.NoError(t, err)
	assert.True(t, refreshed.Elevated)
	require.NotNil(t, refreshed.ElevatedUntil)
	assert.True(t, refreshed.ElevatedUntil.Equal(grant.ExpiresAt))

	// Revocation through another path is picked up the same way.
	require.NoError(t, f.grants.DeleteForUser(ctx, sess.UserID))
	refreshed, err = f.svc.RefreshElevation(ctx, sess.ID)
	require.NoError(t, err)
	assert.False(t, refreshed.Elevated)
	assert.Nil(t, refreshed.ElevatedUntil)
}

// Refreshing against a live grant records activity on it without moving
// its expiry.
func TestAuthService_RefreshElevation_TouchesGrant(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()
	sess := f.signUp(t)

	start := time.Now()
	f.grants.Now = func() time.Time { return start }
	created, err := f.grants.Create(ctx, sess.UserID)
	require.NoError(t, err)

	later := start.Add(30 * time.Minute)
	f.grants.Now = func() time.Time { return later }

	_, err = f.svc.RefreshElevation(ctx, sess.ID)
	require.NoError(t, err)

	grant, err := f.grants.ActiveGrant(ctx, sess.UserID)
	require.NoError(t, err)
	assert.True(t, grant.LastActivity.Equal(later))
	assert.True(t, grant.ExpiresAt.Equal(created.ExpiresAt))
}

func TestAuthService_CompleteLogin_MirrorsExistingGrant(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	provider := mocksauth.NewMockAuthProvider()
	f.svc.provider = provider
	f.svc.roles = mocksauth.StaticRoleMapper{AdminGroup: "municipal-admins"}

	// The provider user already holds a grant from an earlier session.
	grant, err := f.grants.Create(ctx, provider.DefaultUser.UserID)
	require.NoError(t, err)

	sess, err := f.svc.CompleteLogin(ctx, CompleteLoginInput{Code: "code", State: "state-1", Nonce: "nonce-1"})
	require.NoError(t, err)
	assert.Equal(t, provider.DefaultUser.UserID, sess.UserID)
	assert.True(t, sess.Elevated)
	require.NotNil(t, sess.ElevatedUntil)
	assert.True(t, sess.ElevatedUntil.Equal(grant.ExpiresAt))
}
