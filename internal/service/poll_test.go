package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/janasethu/civic-api/internal/data"
	"github.com/janasethu/civic-api/internal/domain/model"
	apperrors "github.com/janasethu/civic-api/internal/errors"
	"github.com/janasethu/civic-api/internal/mocks"
)

func TestPollService_Vote_MapsErrors(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mocks.NewMockPollRepository(ctrl)
	svc := NewPollService(PollServiceOptions{Repo: repo})
	ctx := context.Background()
	req := &model.VoteRequest{OptionIndex: 0}

	repo.EXPECT().Vote(gomock.Any(), "missing", "user-1", req).Return(nil, data.ErrPollNotFound)
	_, err := svc.Vote(ctx, "missing", "user-1", req)
	assert.True(t, apperrors.IsNotFound(err))

	repo.EXPECT().Vote(gomock.Any(), "p-1", "user-1", req).Return(nil, data.ErrAlreadyVoted)
	_, err = svc.Vote(ctx, "p-1", "user-1", req)
	assert.True(t, apperrors.IsConflict(err))

	repo.EXPECT().Vote(gomock.Any(), "p-1", "user-1", req).
		Return(&model.Poll{ID: "p-1", Votes: []int{1, 0}}, nil)
	poll, err := svc.Vote(ctx, "p-1", "user-1", req)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 0}, poll.Votes)
}

func TestPollService_Get_IncludesVoteStatus(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mocks.NewMockPollRepository(ctrl)
	svc := NewPollService(PollServiceOptions{Repo: repo})
	ctx := context.Background()

	repo.EXPECT().GetByID(gomock.Any(), "p-1").Return(&model.Poll{ID: "p-1"}, nil)
	repo.EXPECT().HasVoted(gomock.Any(), "p-1", "user-1").Return(true, nil)

	result, err := svc.Get(ctx, "p-1", "user-1")
	require.NoError(t, err)
	assert.True(t, result.HasVoted)

	// Anonymous callers skip the vote lookup.
	repo.EXPECT().GetByID(gomock.Any(), "p-1").Return(&model.Poll{ID: "p-1"}, nil)
	result, err = svc.Get(ctx, "p-1", "")
	require.NoError(t, err)
	assert.False(t, result.HasVoted)
}

func TestPollService_Create_Validates(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc := NewPollService(PollServiceOptions{Repo: mocks.NewMockPollRepository(ctrl)})

	_, err := svc.Create(context.Background(), &model.CreatePollRequest{
		Question: "Best park?",
		Options:  []string{"only one"},
	})
	assert.True(t, apperrors.IsValidation(err))
}
