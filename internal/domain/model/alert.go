//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"
)

// AlertPriority represents the severity of a civic alert.
type AlertPriority string

const (
	AlertPriorityLow    AlertPriority = "low"
	AlertPriorityMedium AlertPriority = "medium"
	AlertPriorityHigh   AlertPriority = "high"
)

// Valid reports whether the alert priority is supported.
func (p AlertPriority) Valid() bool {
	switch p {
	case AlertPriorityLow, AlertPriorityMedium, AlertPriorityHigh:
		return true
	default:
		return false
	}
}

// normalizeAlertPriority trims and lowercases the input, defaulting to medium when empty.
func normalizeAlertPriority(p AlertPriority) AlertPriority {
	normalized := AlertPriority(strings.ToLower(strings.TrimSpace(string(p))))
	if normalized == "" {
		return AlertPriorityMedium
	}
	return normalized
}

// Alert represents a broadcast notice to citizens of an area.
type Alert struct {
	ID          string        `json:"id"                 db:"id"`
	Title       string        `json:"title"              db:"title"`
	Description string        `json:"description"        db:"description"`
	Priority    AlertPriority `json:"priority"           db:"priority"`
	PinCode     string        `json:"pin_code,omitempty" db:"pin_code"`
	CreatedAt   time.Time     `json:"created_at"         db:"created_at"`
}

// AlertsListOptions controls paging and filtering for listing alerts.
type AlertsListOptions struct {
	Limit    int
	Offset   int
	PinCode  *string        // exact match
	Priority *AlertPriority // exact match
}

// CreateAlertRequest represents parameters to create an Alert.
type CreateAlertRequest struct {
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Priority    AlertPriority `json:"priority,omitempty"`
	PinCode     string        `json:"pin_code,omitempty"`
}

// UpdateAlertRequest represents parameters to update an Alert.
type UpdateAlertRequest struct {
	Title       *string        `json:"title,omitempty"`
	Description *string        `json:"description,omitempty"`
	Priority    *AlertPriority `json:"priority,omitempty"`
	PinCode     *string        `json:"pin_code,omitempty"`
}

// Validate validates CreateAlertRequest.
func (r *CreateAlertRequest) Validate() error {
	title := strings.TrimSpace(r.Title)
	if title == "" {
		return errors.New("title is required and cannot be empty")
	}
	if utf8.RuneCountInString(title) > maxNameLen {
		return errors.New("title cannot exceed 255 characters")
	}
	if strings.TrimSpace(r.Description) == "" {
		return errors.New("description is required and cannot be empty")
	}
	r.Priority = normalizeAlertPriority(r.Priority)
	if !r.Priority.Valid() {
		return errors.New("invalid priority")
	}
	if r.PinCode != "" && !rePinCode.MatchString(r.PinCode) {
		return errors.New("pin_code must be a 6 digit postal code")
	}
	r.Title = title
	return nil
}

// HasUpdates reports whether any field is set in UpdateAlertRequest.
func (r *UpdateAlertRequest) HasUpdates() bool {
	return r.Title != nil || r.Description != nil || r.Priority != nil || r.PinCode != nil
}

// Validate validates UpdateAlertRequest, ensuring at least one field is set and values are sane.
func (r *UpdateAlertRequest) Validate() error {
	if !r.HasUpdates() {
		return errors.New("at least one field must be updated")
	}
	if r.Title != nil {
		t := strings.TrimSpace(*r.Title)
		if t == "" {
			return errors.New("title cannot be empty")
		}
		if utf8.RuneCountInString(t) > maxNameLen {
			return errors.New("title cannot exceed 255 characters")
		}
		*r.Title = t
	}
	if r.Description != nil && strings.TrimSpace(*r.Description) == "" {
		return errors.New("description cannot be empty")
	}
	if r.Priority != nil {
		p := normalizeAlertPriority(*r.Priority)
		if !p.Valid() {
			return errors.New("invalid priority")
		}
		*r.Priority = p
	}
	if r.PinCode != nil && *r.PinCode != "" && !rePinCode.MatchString(*r.PinCode) {
		return errors.New("pin_code must be a 6 digit postal code")
	}
	return nil
}
