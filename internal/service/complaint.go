package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/janasethu/civic-api/internal/core"
	"github.com/janasethu/civic-api/internal/data"
	"github.com/janasethu/civic-api/internal/domain/model"
	"github.com/janasethu/civic-api/internal/domain/realtime"
	apperrors "github.com/janasethu/civic-api/internal/errors"
	"github.com/janasethu/civic-api/internal/ports"
	"github.com/janasethu/civic-api/internal/util"
)

// ComplaintServiceOptions groups the dependencies for ComplaintService.
// Publisher is optional; without it change events are simply not broadcast.
type ComplaintServiceOptions struct {
	Repo      core.ComplaintRepository
	Publisher ports.Publisher
}

// ComplaintService manages the complaint lifecycle and broadcasts changes.
type ComplaintService struct {
	repo      core.ComplaintRepository
	publisher ports.Publisher
}

// NewComplaintService constructs a ComplaintService from options.
func NewComplaintService(opts ComplaintServiceOptions) *ComplaintService {
	return &ComplaintService{repo: opts.Repo, publisher: opts.Publisher}
}

// ComplaintList is a page of complaints with the unpaged total.
type ComplaintList struct {
	Items []*model.Complaint `json:"items"`
	Total int                `json:"total"`
}

// Create files a complaint on behalf of userID.
func (s *ComplaintService) Create(ctx context.Context, userID string, req *model.CreateComplaintRequest) (*model.Complaint, error) {
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}
	req.Title = util.SanitizeText(req.Title)
	req.Description = util.SanitizeText(req.Description)
	req.Location = util.SanitizeText(req.Location)

	complaint, err := s.repo.Create(ctx, userID, req)
	if err != nil {
		if errors.Is(err, data.ErrUserNotFound) {
			return nil, apperrors.Unauthorized("unknown user")
		}
		return nil, fmt.Errorf("create complaint: %w", err)
	}

	s.publish(ctx, "complaint_created", complaint)
	return complaint, nil
}

// Get returns a single complaint.
func (s *ComplaintService) Get(ctx context.Context, id string) (*model.Complaint, error) {
	complaint, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, data.ErrComplaintNotFound) {
			return nil, apperrors.NotFound("complaint not found")
		}
		return nil, fmt.Errorf("get complaint: %w", err)
	}
	return complaint, nil
}

// UpdateStatus moves a complaint through its lifecycle.
func (s *ComplaintService) UpdateStatus(ctx context.Context, id string, req *model.UpdateComplaintStatusRequest) (*model.Complaint, error) {
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}
	complaint, err := s.repo.UpdateStatus(ctx, id, req.Status)
	if err != nil {
		if errors.Is(err, data.ErrComplaintNotFound) {
			return nil, apperrors.NotFound("complaint not found")
		}
		return nil, fmt.Errorf("update complaint status: %w", err)
	}

	s.publish(ctx, "complaint_status_changed", complaint)
	return complaint, nil
}

// Delete removes a complaint.
func (s *ComplaintService) Delete(ctx context.Context, id string) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete complaint: %w", err)
	}
	if !deleted {
		return apperrors.NotFound("complaint not found")
	}
	return nil
}

// List returns a page of complaints plus the total matching the filters.
func (s *ComplaintService) List(ctx context.Context, opts *model.ComplaintsListOptions) (*ComplaintList, error) {
	items, err := s.repo.List(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("list complaints: %w", err)
	}
	total, err := s.repo.Count(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("count complaints: %w", err)
	}
	return &ComplaintList{Items: items, Total: total}, nil
}

// publish broadcasts a change event. Best-effort: a dropped event only
// delays a client refresh, so failures are swallowed.
func (s *ComplaintService) publish(ctx context.Context, kind string, complaint *model.Complaint) {
	if s.publisher == nil {
		return
	}
	payload, err := json.Marshal(map[string]any{
		"kind":   kind,
		"id":     complaint.ID,
		"status": complaint.Status,
	})
	if err != nil {
		return
	}
	_ = s.publisher.Publish(ctx, string(realtime.TopicComplaints), payload)
}
