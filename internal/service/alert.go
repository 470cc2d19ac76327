package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/janasethu/civic-api/internal/core"
	"github.com/janasethu/civic-api/internal/data"
	"github.com/janasethu/civic-api/internal/domain/model"
	"github.com/janasethu/civic-api/internal/domain/realtime"
	apperrors "github.com/janasethu/civic-api/internal/errors"
	"github.com/janasethu/civic-api/internal/observability/notify"
	"github.com/janasethu/civic-api/internal/ports"
	"github.com/janasethu/civic-api/internal/util"
)

// AlertServiceOptions groups the dependencies for AlertService.
// Publisher and Notifier are optional; without them change events are simply
// not broadcast and no external notification is sent.
type AlertServiceOptions struct {
	Repo      core.AlertRepository
	Publisher ports.Publisher
	Notifier  notify.Sink
	Logger    *slog.Logger
}

// AlertService manages municipal alerts and broadcasts new ones.
type AlertService struct {
	repo      core.AlertRepository
	publisher ports.Publisher
	notifier  notify.Sink
	logger    *slog.Logger
}

// NewAlertService constructs an AlertService from options.
func NewAlertService(opts AlertServiceOptions) *AlertService {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &AlertService{
		repo:      opts.Repo,
		publisher: opts.Publisher,
		notifier:  opts.Notifier,
		logger:    logger,
	}
}

// Create publishes a municipal alert.
func (s *AlertService) Create(ctx context.Context, req *model.CreateAlertRequest) (*model.Alert, error) {
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}
	req.Title = util.SanitizeText(req.Title)
	req.Description = util.SanitizeText(req.Description)

	alert, err := s.repo.Create(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("create alert: %w", err)
	}

	s.publish(ctx, "alert_created", alert)
	s.notifyCritical(ctx, alert)
	return alert, nil
}

// Get returns a single alert.
func (s *AlertService) Get(ctx context.Context, id string) (*model.Alert, error) {
	alert, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, data.ErrAlertNotFound) {
			return nil, apperrors.NotFound("alert not found")
		}
		return nil, fmt.Errorf("get alert: %w", err)
	}
	return alert, nil
}

// Update applies partial edits to an alert.
func (s *AlertService) Update(ctx context.Context, id string, req *model.UpdateAlertRequest) (*model.Alert, error) {
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}
	if req.Title != nil {
		*req.Title = util.SanitizeText(*req.Title)
	}
	if req.Description != nil {
		*req.Description = util.SanitizeText(*req.Description)
	}

	alert, err := s.repo.Update(ctx, id, req)
	if err != nil {
		if errors.Is(err, data.ErrAlertNotFound) {
			return nil, apperrors.NotFound("alert not found")
		}
		return nil, fmt.Errorf("update alert: %w", err)
	}
	return alert, nil
}

// Delete removes an alert.
func (s *AlertService) Delete(ctx context.Context, id string) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete alert: %w", err)
	}
	if !deleted {
		return apperrors.NotFound("alert not found")
	}
	return nil
}

// List returns alerts matching the filters.
func (s *AlertService) List(ctx context.Context, opts *model.AlertsListOptions) ([]*model.Alert, error) {
	alerts, err := s.repo.List(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("list alerts: %w", err)
	}
	return alerts, nil
}

// publish broadcasts an alert event. Best-effort, failures are swallowed.
func (s *AlertService) publish(ctx context.Context, kind string, alert *model.Alert) {
	if s.publisher == nil {
		return
	}
	payload, err := json.Marshal(map[string]any{
		"kind":     kind,
		"id":       alert.ID,
		"priority": alert.Priority,
	})
	if err != nil {
		return
	}
	_ = s.publisher.Publish(ctx, string(realtime.TopicAlerts), payload)
}

// notifyCritical forwards high-priority alerts to the external notification
// sink. Delivery failures are logged, never surfaced to the caller.
func (s *AlertService) notifyCritical(ctx context.Context, alert *model.Alert) {
	if s.notifier == nil || alert.Priority != model.AlertPriorityHigh {
		return
	}
	err := s.notifier.SendAlert(ctx, notify.AlertPayload{
		AlertID:     alert.ID,
		Title:       alert.Title,
		Description: alert.Description,
		Priority:    string(alert.Priority),
		PinCode:     alert.PinCode,
		OccurredAt:  alert.CreatedAt,
	})
	if err != nil {
		s.logger.WarnContext(ctx, "alert notification failed", "alert_id", alert.ID, "error", err)
	}
}
