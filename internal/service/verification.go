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

// VerificationServiceOptions groups the dependencies for VerificationService.
type VerificationServiceOptions struct {
	Repo core.VerificationRepository
}

// VerificationService manages identity verification requests.
type VerificationService struct {
	repo core.VerificationRepository
}

// NewVerificationService constructs a VerificationService from options.
func NewVerificationService(opts VerificationServiceOptions) *VerificationService {
	return &VerificationService{repo: opts.Repo}
}

// Create submits a verification request for userID.
func (s *VerificationService) Create(ctx context.Context, userID string, req *model.CreateVerificationRequest) (*model.Verification, error) {
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}
	req.Name = util.SanitizeText(req.Name)

	verification, err := s.repo.Create(ctx, userID, req)
	if err != nil {
		if errors.Is(err, data.ErrUserNotFound) {
			return nil, apperrors.Unauthorized("unknown user")
		}
		return nil, fmt.Errorf("create verification: %w", err)
	}
	return verification, nil
}

// Get returns a single verification request.
func (s *VerificationService) Get(ctx context.Context, id string) (*model.Verification, error) {
	verification, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, data.ErrVerificationNotFound) {
			return nil, apperrors.NotFound("verification request not found")
		}
		return nil, fmt.Errorf("get verification: %w", err)
	}
	return verification, nil
}

// Review approves or rejects a pending verification request.
func (s *VerificationService) Review(ctx context.Context, id string, req *model.ReviewVerificationRequest) (*model.Verification, error) {
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}
	verification, err := s.repo.Review(ctx, id, req)
	if err != nil {
		if errors.Is(err, data.ErrVerificationNotFound) {
			return nil, apperrors.NotFound("verification request not found")
		}
		return nil, fmt.Errorf("review verification: %w", err)
	}
	return verification, nil
}

// List returns verification requests matching the filters.
func (s *VerificationService) List(ctx context.Context, opts *model.VerificationsListOptions) ([]*model.Verification, error) {
	verifications, err := s.repo.List(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("list verifications: %w", err)
	}
	return verifications, nil
}
