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

// EventServiceOptions groups the dependencies for EventService.
type EventServiceOptions struct {
	Repo core.EventRepository
}

// EventService manages community events.
type EventService struct {
	repo core.EventRepository
}

// NewEventService constructs an EventService from options.
func NewEventService(opts EventServiceOptions) *EventService {
	return &EventService{repo: opts.Repo}
}

// Create publishes a community event.
func (s *EventService) Create(ctx context.Context, req *model.CreateEventRequest) (*model.Event, error) {
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}
	req.Title = util.SanitizeText(req.Title)
	req.Description = util.SanitizeText(req.Description)
	req.Location = util.SanitizeText(req.Location)

	event, err := s.repo.Create(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}
	return event, nil
}

// Get returns a single event.
func (s *EventService) Get(ctx context.Context, id string) (*model.Event, error) {
	event, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, data.ErrEventNotFound) {
			return nil, apperrors.NotFound("event not found")
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	return event, nil
}

// Update applies partial edits to an event.
func (s *EventService) Update(ctx context.Context, id string, req *model.UpdateEventRequest) (*model.Event, error) {
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}
	if req.Title != nil {
		*req.Title = util.SanitizeText(*req.Title)
	}
	if req.Description != nil {
		*req.Description = util.SanitizeText(*req.Description)
	}
	if req.Location != nil {
		*req.Location = util.SanitizeText(*req.Location)
	}

	event, err := s.repo.Update(ctx, id, req)
	if err != nil {
		if errors.Is(err, data.ErrEventNotFound) {
			return nil, apperrors.NotFound("event not found")
		}
		return nil, fmt.Errorf("update event: %w", err)
	}
	return event, nil
}

// Delete removes an event.
func (s *EventService) Delete(ctx context.Context, id string) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	if !deleted {
		return apperrors.NotFound("event not found")
	}
	return nil
}

// List returns events matching the filters.
func (s *EventService) List(ctx context.Context, opts *model.EventsListOptions) ([]*model.Event, error) {
	events, err := s.repo.List(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return events, nil
}
