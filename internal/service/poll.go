package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/janasethu/civic-api/internal/core"
	"github.com/janasethu/civic-api/internal/data"
	"github.com/janasethu/civic-api/internal/domain/model"
	apperrors "github.com/janasethu/civic-api/internal/errors"
	"github.com/janasethu/civic-api/internal/util"
)

// PollServiceOptions groups the dependencies for PollService.
type PollServiceOptions struct {
	Repo core.PollRepository
}

// PollService manages polls and one-vote-per-user voting.
type PollService struct {
	repo core.PollRepository
}

// NewPollService constructs a PollService from options.
func NewPollService(opts PollServiceOptions) *PollService {
	return &PollService{repo: opts.Repo}
}

// PollWithVote pairs a poll with whether the requesting user already voted.
type PollWithVote struct {
	*model.Poll
	HasVoted bool `json:"has_voted"`
}

// Create opens a poll.
func (s *PollService) Create(ctx context.Context, req *model.CreatePollRequest) (*model.Poll, error) {
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}
	req.Question = util.SanitizeText(req.Question)
	for i, opt := range req.Options {
		req.Options[i] = util.SanitizeText(opt)
	}

	poll, err := s.repo.Create(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("create poll: %w", err)
	}
	return poll, nil
}

// Get returns a poll. When userID is non-empty the result also reports
// whether that user has voted.
func (s *PollService) Get(ctx context.Context, id, userID string) (*PollWithVote, error) {
	poll, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, data.ErrPollNotFound) {
			return nil, apperrors.NotFound("poll not found")
		}
		return nil, fmt.Errorf("get poll: %w", err)
	}

	result := &PollWithVote{Poll: poll}
	if userID != "" {
		voted, err := s.repo.HasVoted(ctx, id, userID)
		if err != nil {
			return nil, fmt.Errorf("check vote: %w", err)
		}
		result.HasVoted = voted
	}
	return result, nil
}

// Vote records userID's vote and returns the updated tally. A user votes
// at most once per poll.
func (s *PollService) Vote(ctx context.Context, pollID, userID string, req *model.VoteRequest) (*model.Poll, error) {
	poll, err := s.repo.Vote(ctx, pollID, userID, req)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrPollNotFound):
			return nil, apperrors.NotFound("poll not found")
		case errors.Is(err, data.ErrAlreadyVoted):
			return nil, apperrors.Conflict("you have already voted on this poll")
		default:
			return nil, apperrors.Validation(err.Error())
		}
	}
	return poll, nil
}

// Delete removes a poll and its votes.
func (s *PollService) Delete(ctx context.Context, id string) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete poll: %w", err)
	}
	if !deleted {
		return apperrors.NotFound("poll not found")
	}
	return nil
}

// List returns polls matching the filters.
func (s *PollService) List(ctx context.Context, opts *model.PollsListOptions) ([]*model.Poll, error) {
	polls, err := s.repo.List(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("list polls: %w", err)
	}
	return polls, nil
}
