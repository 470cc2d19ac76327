package data

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/janasethu/civic-api/internal/data/cryptoutil"
	"github.com/janasethu/civic-api/internal/testutil"
)

// fastParams keeps argon2 cheap in tests.
func fastHasher(t *testing.T) cryptoutil.Hasher {
	t.Helper()
	h, err := cryptoutil.NewArgon2idHasher(cryptoutil.Argon2idParams{
		Time: 1, MemoryKiB: 8 * 1024, Parallelism: 1, SaltLen: 16, KeyLen: 32,
	})
	require.NoError(t, err)
	return h
}

func TestAdminSettingsRepo_SetAndVerifyPin(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	repo, err := NewAdminSettingsRepo(AdminSettingsRepoOptions{DB: db, Hasher: fastHasher(t)})
	require.NoError(t, err)

	require.NoError(t, repo.SetPin(context.Background(), "493817"))

	ok, err := repo.VerifyPin(context.Background(), "493817")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.VerifyPin(context.Background(), "000000")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestAdminSettingsRepo_VerifyPin_NotConfigured(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	repo, err := NewAdminSettingsRepo(AdminSettingsRepoOptions{DB: db, Hasher: fastHasher(t)})
	require.NoError(t, err)

	// Same observable outcome as a wrong PIN: (false, nil).
	ok, err := repo.VerifyPin(context.Background(), "493817")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = repo.GetPinHash(context.Background())
	assert.ErrorIs(t, err, ErrPinNotConfigured)
}

func TestAdminSettingsRepo_SetPin_Replaces(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	repo, err := NewAdminSettingsRepo(AdminSettingsRepoOptions{DB: db, Hasher: fastHasher(t)})
	require.NoError(t, err)

	require.NoError(t, repo.SetPin(context.Background(), "111111"))
	require.NoError(t, repo.SetPin(context.Background(), "222222"))

	ok, err := repo.VerifyPin(context.Background(), "111111")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = repo.VerifyPin(context.Background(), "222222")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestAdminSettingsRepo_SetPin_RejectsEmpty(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	repo, err := NewAdminSettingsRepo(AdminSettingsRepoOptions{DB: db, Hasher: fastHasher(t)})
	require.NoError(t, err)

	assert.Error(t, repo.SetPin(context.Background(), ""))
}
