//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	maxComplaintTitleLen = 255
	maxComplaintBodyLen  = 5000
	maxComplaintImages   = 5
)

// ComplaintStatus tracks a complaint through its lifecycle.
type ComplaintStatus string

const (
	ComplaintStatusPending    ComplaintStatus = "pending"
	ComplaintStatusInProgress ComplaintStatus = "in_progress"
	ComplaintStatusResolved   ComplaintStatus = "resolved"
	ComplaintStatusRejected   ComplaintStatus = "rejected"
)

// Valid reports whether the complaint status is supported.
func (s ComplaintStatus) Valid() bool {
	switch s {
	case ComplaintStatusPending, ComplaintStatusInProgress, ComplaintStatusResolved, ComplaintStatusRejected:
		return true
	default:
		return false
	}
}

// ParseComplaintStatus normalizes a status string and reports whether it is supported.
func ParseComplaintStatus(value string) (ComplaintStatus, bool) {
	status := ComplaintStatus(strings.ToLower(strings.TrimSpace(value)))
	if status.Valid() {
		return status, true
	}
	return "", false
}

// ComplaintsListOptions controls paging and filtering for listing complaints.
// Notes:
// - Sort supports: "created_at", "status" (case-insensitive).
// - Dir supports: "asc", "desc" (case-insensitive); values are normalized internally.
// - Status, PinCode, and UserID match exactly.
type ComplaintsListOptions struct {
	Limit   int
	Offset  int
	Status  *ComplaintStatus // exact match
	PinCode *string          // exact match
	UserID  *string          // exact match (citizen listing own complaints)
	Sort    string           // allowed: "created_at", "status"
	Dir     string           // allowed: "asc", "desc"
}

// Complaint represents a citizen-reported issue.
type Complaint struct {
	ID          string          `json:"id"                   db:"id"`
	UserID      string          `json:"user_id"              db:"user_id"`
	Title       string          `json:"title"                db:"title"`
	Description string          `json:"description"          db:"description"`
	Category    string          `json:"category"             db:"category"`
	Status      ComplaintStatus `json:"status"               db:"status"`
	Location    string          `json:"location,omitempty"   db:"location"`
	Latitude    *float64        `json:"latitude,omitempty"   db:"latitude"`
	Longitude   *float64        `json:"longitude,omitempty"  db:"longitude"`
	PinCode     string          `json:"pin_code,omitempty"   db:"pin_code"`
	ImageURLs   []string        `json:"image_urls,omitempty" db:"image_urls"`
	CreatedAt   time.Time       `json:"created_at"           db:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"           db:"updated_at"`
}

// CreateComplaintRequest represents parameters to file a Complaint.
type CreateComplaintRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Location    string   `json:"location,omitempty"`
	Latitude    *float64 `json:"latitude,omitempty"`
	Longitude   *float64 `json:"longitude,omitempty"`
	PinCode     string   `json:"pin_code,omitempty"`
	ImageURLs   []string `json:"image_urls,omitempty"`
}

// UpdateComplaintStatusRequest represents an admin status transition.
type UpdateComplaintStatusRequest struct {
	Status ComplaintStatus `json:"status"`
}

// Validate validates CreateComplaintRequest.
func (r *CreateComplaintRequest) Validate() error {
	title := strings.TrimSpace(r.Title)
	if title == "" {
		return errors.New("title is required and cannot be empty")
	}
	if utf8.RuneCountInString(title) > maxComplaintTitleLen {
		return errors.New("title cannot exceed 255 characters")
	}
	if strings.TrimSpace(r.Description) == "" {
		return errors.New("description is required and cannot be empty")
	}
	if utf8.RuneCountInString(r.Description) > maxComplaintBodyLen {
		return errors.New("description cannot exceed 5000 characters")
	}
	if strings.TrimSpace(r.Category) == "" {
		return errors.New("category is required")
	}
	if (r.Latitude == nil) != (r.Longitude == nil) {
		return errors.New("latitude and longitude must be provided together")
	}
	if r.Latitude != nil && (*r.Latitude < -90 || *r.Latitude > 90) {
		return errors.New("latitude must be between -90 and 90")
	}
	if r.Longitude != nil && (*r.Longitude < -180 || *r.Longitude > 180) {
		return errors.New("longitude must be between -180 and 180")
	}
	if r.PinCode != "" && !rePinCode.MatchString(r.PinCode) {
		return errors.New("pin_code must be a 6 digit postal code")
	}
	if len(r.ImageURLs) > maxComplaintImages {
		return errors.New("a complaint cannot have more than 5 images")
	}
	r.Title = title
	return nil
}

// Validate validates UpdateComplaintStatusRequest.
func (r *UpdateComplaintStatusRequest) Validate() error {
	status, ok := ParseComplaintStatus(string(r.Status))
	if !ok {
		return errors.New("invalid status")
	}
	r.Status = status
	return nil
}
