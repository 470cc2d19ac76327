package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/janasethu/civic-api/internal/core"
	"github.com/janasethu/civic-api/internal/data"
	domainauth "github.com/janasethu/civic-api/internal/domain/auth"
	"github.com/janasethu/civic-api/internal/domain/model"
	apperrors "github.com/janasethu/civic-api/internal/errors"
	"github.com/janasethu/civic-api/internal/util"
)

// ProfileServiceOptions groups the dependencies for ProfileService.
type ProfileServiceOptions struct {
	Repo core.ProfileRepository
}

// ProfileService manages citizen profiles and the durable role label.
type ProfileService struct {
	repo core.ProfileRepository
}

// NewProfileService constructs a ProfileService from options.
func NewProfileService(opts ProfileServiceOptions) *ProfileService {
	return &ProfileService{repo: opts.Repo}
}

// Get returns the profile for a user.
func (s *ProfileService) Get(ctx context.Context, userID string) (*model.Profile, error) {
	profile, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, data.ErrProfileNotFound) {
			return nil, apperrors.NotFound("profile not found")
		}
		return nil, fmt.Errorf("get profile: %w", err)
	}
	return profile, nil
}

// Update applies self-service edits to a user's own profile. The durable
// role label is not reachable from here.
func (s *ProfileService) Update(ctx context.Context, userID string, req *model.UpdateProfileRequest) (*model.Profile, error) {
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}
	if req.FullName != nil {
		*req.FullName = util.SanitizeText(*req.FullName)
	}
	if req.Nickname != nil {
		*req.Nickname = util.SanitizeText(*req.Nickname)
	}
	if req.Address != nil {
		*req.Address = util.SanitizeText(*req.Address)
	}

	profile, err := s.repo.Update(ctx, userID, req)
	if err != nil {
		if errors.Is(err, data.ErrProfileNotFound) {
			return nil, apperrors.NotFound("profile not found")
		}
		return nil, fmt.Errorf("update profile: %w", err)
	}
	return profile, nil
}

// SetRole changes a user's durable role label. The label is informational:
// it never gates admin routes, which require a live elevation grant.
func (s *ProfileService) SetRole(ctx context.Context, userID string, role domainauth.Role) (*model.Profile, error) {
	if !role.Valid() {
		return nil, apperrors.Validationf("invalid role %q", role)
	}
	profile, err := s.repo.SetRole(ctx, userID, role)
	if err != nil {
		if errors.Is(err, data.ErrProfileNotFound) {
			return nil, apperrors.NotFound("profile not found")
		}
		return nil, fmt.Errorf("set role: %w", err)
	}
	return profile, nil
}
