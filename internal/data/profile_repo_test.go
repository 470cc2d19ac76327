package data

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/janasethu/civic-api/internal/domain/auth"
	"github.com/janasethu/civic-api/internal/domain/model"
	"github.com/janasethu/civic-api/internal/testutil"
)

func TestUserRepo_Create_DuplicateEmail(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	repo := NewUserRepo(db)

	_, err := repo.Create(context.Background(), uuid.NewString(), "asha@example.com", "hash-1")
	require.NoError(t, err)

	_, err = repo.Create(context.Background(), uuid.NewString(), "asha@example.com", "hash-2")
	assert.ErrorIs(t, err, ErrUserExists)
}

func TestProfileRepo_Ensure_CreatesCitizenOnce(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	userID := createTestUser(t, db)
	repo := NewProfileRepo(db)

	profile, err := repo.Ensure(context.Background(), userID, "Asha Rao", "asha@example.com")
	require.NoError(t, err)
	assert.Equal(t, auth.RoleCitizen, profile.Role)
	assert.Equal(t, "Asha Rao", profile.FullName)

	// A second login with different identity fields does not overwrite.
	again, err := repo.Ensure(context.Background(), userID, "Different Name", "other@example.com")
	require.NoError(t, err)
	assert.Equal(t, "Asha Rao", again.FullName)
	assert.Equal(t, "asha@example.com", again.Email)
}

func TestProfileRepo_Update(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	userID := createTestUser(t, db)
	repo := NewProfileRepo(db)

	_, err := repo.Ensure(context.Background(), userID, "Asha Rao", "asha@example.com")
	require.NoError(t, err)

	updated, err := repo.Update(context.Background(), userID, &model.UpdateProfileRequest{
		Nickname: testutil.StringPtr("asha"),
		PinCode:  testutil.StringPtr("560001"),
	})
	require.NoError(t, err)
	assert.Equal(t, "asha", updated.Nickname)
	assert.Equal(t, "560001", updated.PinCode)
	assert.Equal(t, "Asha Rao", updated.FullName)

	_, err = repo.Update(context.Background(), userID, &model.UpdateProfileRequest{})
	assert.Error(t, err)
}

func TestProfileRepo_SetRole(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	userID := createTestUser(t, db)
	repo := NewProfileRepo(db)

	_, err := repo.Ensure(context.Background(), userID, "Asha Rao", "asha@example.com")
	require.NoError(t, err)

	updated, err := repo.SetRole(context.Background(), userID, auth.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, auth.RoleAdmin, updated.Role)

	_, err = repo.SetRole(context.Background(), userID, auth.Role("superuser"))
	assert.Error(t, err)

	_, err = repo.SetRole(context.Background(), "missing", auth.RoleAdmin)
	assert.ErrorIs(t, err, ErrProfileNotFound)
}
