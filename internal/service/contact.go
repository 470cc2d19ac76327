package service

import (
	"context"
	"fmt"

	"github.com/janasethu/civic-api/internal/core"
	"github.com/janasethu/civic-api/internal/domain/model"
	apperrors "github.com/janasethu/civic-api/internal/errors"
	"github.com/janasethu/civic-api/internal/util"
)

// ContactServiceOptions groups the dependencies for ContactService.
type ContactServiceOptions struct {
	Repo core.ContactRepository
}

// ContactService manages contact form submissions.
type ContactService struct {
	repo core.ContactRepository
}

// NewContactService constructs a ContactService from options.
func NewContactService(opts ContactServiceOptions) *ContactService {
	return &ContactService{repo: opts.Repo}
}

// Create records a contact form submission. Open to anonymous callers.
func (s *ContactService) Create(ctx context.Context, req *model.CreateContactMessageRequest) (*model.ContactMessage, error) {
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}
	req.Name = util.SanitizeText(req.Name)
	req.Message = util.SanitizeText(req.Message)

	msg, err := s.repo.Create(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("create contact message: %w", err)
	}
	return msg, nil
}

// List returns contact messages, newest first.
func (s *ContactService) List(ctx context.Context, limit, offset int) ([]*model.ContactMessage, error) {
	messages, err := s.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list contact messages: %w", err)
	}
	return messages, nil
}
