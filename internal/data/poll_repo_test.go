package data

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/janasethu/civic-api/internal/domain/model"
	"github.com/janasethu/civic-api/internal/testutil"
)

func TestPollRepo_CreateAndGet(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	repo := NewPollRepo(db)

	poll, err := repo.Create(context.Background(), &model.CreatePollRequest{
		Question: "Should the park stay open till 10pm?",
		Options:  []string{"Yes", "No"},
		PinCode:  "560001",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"Yes", "No"}, poll.Options)
	assert.Equal(t, []int{0, 0}, poll.Votes)

	got, err := repo.GetByID(context.Background(), poll.ID)
	require.NoError(t, err)
	assert.Equal(t, poll.Question, got.Question)
}

func TestPollRepo_Vote_BumpsTallyOnce(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	repo := NewPollRepo(db)
	userID := createTestUser(t, db)

	poll, err := repo.Create(context.Background(), &model.CreatePollRequest{
		Question: "Weekly waste pickup day?",
		Options:  []string{"Monday", "Thursday", "Saturday"},
	})
	require.NoError(t, err)

	updated, err := repo.Vote(context.Background(), poll.ID, userID, &model.VoteRequest{OptionIndex: 1})
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 0}, updated.Votes)

	// Second vote by the same user is rejected and the tally is unchanged.
	_, err = repo.Vote(context.Background(), poll.ID, userID, &model.VoteRequest{OptionIndex: 2})
	assert.ErrorIs(t, err, ErrAlreadyVoted)

	got, err := repo.GetByID(context.Background(), poll.ID)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 0}, got.Votes)

	voted, err := repo.HasVoted(context.Background(), poll.ID, userID)
	require.NoError(t, err)
	assert.True(t, voted)
}

func TestPollRepo_Vote_RejectsExpiredPoll(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	repo := NewPollRepo(db)
	userID := createTestUser(t, db)

	past := time.Now().Add(-time.Hour)
	poll, err := repo.Create(context.Background(), &model.CreatePollRequest{
		Question:  "Closed question?",
		Options:   []string{"A", "B"},
		ExpiresAt: &past,
	})
	require.NoError(t, err)

	_, err = repo.Vote(context.Background(), poll.ID, userID, &model.VoteRequest{OptionIndex: 0})
	assert.Error(t, err)
}

func TestPollRepo_Vote_UnknownPoll(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	repo := NewPollRepo(db)
	userID := createTestUser(t, db)

	_, err := repo.Vote(context.Background(), "missing", userID, &model.VoteRequest{OptionIndex: 0})
	assert.ErrorIs(t, err, ErrPollNotFound)
}

func TestPollRepo_List_ActiveOnly(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	repo := NewPollRepo(db)

	past := time.Now().Add(-time.Hour)
	future := time.Now().Add(time.Hour)

	_, err := repo.Create(context.Background(), &model.CreatePollRequest{
		Question: "Expired", Options: []string{"A", "B"}, ExpiresAt: &past,
	})
	require.NoError(t, err)
	open, err := repo.Create(context.Background(), &model.CreatePollRequest{
		Question: "Open", Options: []string{"A", "B"}, ExpiresAt: &future,
	})
	require.NoError(t, err)
	evergreen, err := repo.Create(context.Background(), &model.CreatePollRequest{
		Question: "No expiry", Options: []string{"A", "B"},
	})
	require.NoError(t, err)

	polls, err := repo.List(context.Background(), &model.PollsListOptions{ActiveOnly: true})
	require.NoError(t, err)

	ids := make([]string, 0, len(polls))
	for _, p := range polls {
		ids = append(ids, p.ID)
	}
	assert.ElementsMatch(t, []string{open.ID, evergreen.ID}, ids)
}
