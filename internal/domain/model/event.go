//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"
)

// Event represents a civic event announced by administrators.
type Event struct {
	ID          string    `json:"id"                  db:"id"`
	Title       string    `json:"title"               db:"title"`
	Description string    `json:"description"         db:"description"`
	EventDate   time.Time `json:"event_date"          db:"event_date"`
	Location    string    `json:"location,omitempty"  db:"location"`
	ImageURL    string    `json:"image_url,omitempty" db:"image_url"`
	PinCode     string    `json:"pin_code,omitempty"  db:"pin_code"`
	CreatedAt   time.Time `json:"created_at"          db:"created_at"`
}

// EventsListOptions controls paging for listing events.
type EventsListOptions struct {
	Limit    int
	Offset   int
	PinCode  *string // exact match
	Upcoming bool    // only events with event_date >= now
}

// CreateEventRequest represents parameters to create an Event.
type CreateEventRequest struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	EventDate   time.Time `json:"event_date"`
	Location    string    `json:"location,omitempty"`
	ImageURL    string    `json:"image_url,omitempty"`
	PinCode     string    `json:"pin_code,omitempty"`
}

// UpdateEventRequest represents parameters to update an Event.
type UpdateEventRequest struct {
	Title       *string    `json:"title,omitempty"`
	Description *string    `json:"description,omitempty"`
	EventDate   *time.Time `json:"event_date,omitempty"`
	Location    *string    `json:"location,omitempty"`
	ImageURL    *string    `json:"image_url,omitempty"`
	PinCode     *string    `json:"pin_code,omitempty"`
}

// Validate validates CreateEventRequest.
func (r *CreateEventRequest) Validate() error {
	title := strings.TrimSpace(r.Title)
	if title == "" {
		return errors.New("title is required and cannot be empty")
	}
	if utf8.RuneCountInString(title) > maxNameLen {
		return errors.New("title cannot exceed 255 characters")
	}
	if r.EventDate.IsZero() {
		return errors.New("event_date is required")
	}
	if r.PinCode != "" && !rePinCode.MatchString(r.PinCode) {
		return errors.New("pin_code must be a 6 digit postal code")
	}
	r.Title = title
	return nil
}

// HasUpdates reports whether any field is set in UpdateEventRequest.
func (r *UpdateEventRequest) HasUpdates() bool {
	return r.Title != nil || r.Description != nil || r.EventDate != nil ||
		r.Location != nil || r.ImageURL != nil || r.PinCode != nil
}

// Validate validates UpdateEventRequest, ensuring at least one field is set and values are sane.
func (r *UpdateEventRequest) Validate() error {
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
	if r.EventDate != nil && r.EventDate.IsZero() {
		return errors.New("event_date cannot be zero")
	}
	if r.PinCode != nil && *r.PinCode != "" && !rePinCode.MatchString(*r.PinCode) {
		return errors.New("pin_code must be a 6 digit postal code")
	}
	return nil
}
