package data

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/janasethu/civic-api/internal/domain/model"
	"github.com/janasethu/civic-api/internal/testutil"
)

func TestComplaintRepo_CreateAndGet(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	repo := NewComplaintRepo(db)
	userID := createTestUser(t, db)

	complaint, err := repo.Create(context.Background(), userID, &model.CreateComplaintRequest{
		Title:       "Streetlight out on 4th cross",
		Description: "The lamp near the bus stop has been dark for a week.",
		Category:    "infrastructure",
		PinCode:     "560001",
		ImageURLs:   []string{"/uploads/a.jpg"},
	})
	require.NoError(t, err)
	assert.Equal(t, model.ComplaintStatusPending, complaint.Status)
	assert.Equal(t, userID, complaint.UserID)
	assert.Equal(t, []string{"/uploads/a.jpg"}, complaint.ImageURLs)

	got, err := repo.GetByID(context.Background(), complaint.ID)
	require.NoError(t, err)
	assert.Equal(t, complaint.Title, got.Title)
}

func TestComplaintRepo_Create_UnknownUser(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	repo := NewComplaintRepo(db)

	_, err := repo.Create(context.Background(), "missing-user", &model.CreateComplaintRequest{
		Title:       "Orphaned",
		Description: "No such account.",
		Category:    "other",
	})
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestComplaintRepo_UpdateStatus(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	repo := NewComplaintRepo(db)
	userID := createTestUser(t, db)

	complaint, err := repo.Create(context.Background(), userID, &model.CreateComplaintRequest{
		Title:       "Pothole",
		Description: "Deep pothole near the market entrance.",
		Category:    "roads",
	})
	require.NoError(t, err)

	updated, err := repo.UpdateStatus(context.Background(), complaint.ID, model.ComplaintStatusInProgress)
	require.NoError(t, err)
	assert.Equal(t, model.ComplaintStatusInProgress, updated.Status)
	assert.True(t, updated.UpdatedAt.After(updated.CreatedAt) || updated.UpdatedAt.Equal(updated.CreatedAt))

	_, err = repo.UpdateStatus(context.Background(), "missing", model.ComplaintStatusResolved)
	assert.ErrorIs(t, err, ErrComplaintNotFound)
}

func TestComplaintRepo_List_Filters(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	repo := NewComplaintRepo(db)
	userA := createTestUser(t, db)
	userB := createTestUser(t, db)

	mk := func(userID, title, pin string) *model.Complaint {
		c, err := repo.Create(context.Background(), userID, &model.CreateComplaintRequest{
			Title:       title,
			Description: "details for " + title,
			Category:    "other",
			PinCode:     pin,
		})
		require.NoError(t, err)
		return c
	}

	a1 := mk(userA, "one", "560001")
	mk(userA, "two", "560002")
	b1 := mk(userB, "three", "560001")

	byPin, err := repo.List(context.Background(), &model.ComplaintsListOptions{
		PinCode: testutil.StringPtr("560001"),
	})
	require.NoError(t, err)
	ids := []string{}
	for _, c := range byPin {
		ids = append(ids, c.ID)
	}
	assert.ElementsMatch(t, []string{a1.ID, b1.ID}, ids)

	byUser, err := repo.List(context.Background(), &model.ComplaintsListOptions{
		UserID: &userA,
	})
	require.NoError(t, err)
	assert.Len(t, byUser, 2)

	count, err := repo.Count(context.Background(), &model.ComplaintsListOptions{
		PinCode: testutil.StringPtr("560001"),
	})
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestComplaintRepo_Delete(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	repo := NewComplaintRepo(db)
	userID := createTestUser(t, db)

	complaint, err := repo.Create(context.Background(), userID, &model.CreateComplaintRequest{
		Title:       "To be removed",
		Description: "Duplicate report.",
		Category:    "other",
	})
	require.NoError(t, err)

	deleted, err := repo.Delete(context.Background(), complaint.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = repo.Delete(context.Background(), complaint.ID)
	require.NoError(t, err)
	assert.False(t, deleted)
}
