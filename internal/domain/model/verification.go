//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"
)

// VerificationStatus tracks an identity verification request.
type VerificationStatus string

const (
	VerificationStatusPending  VerificationStatus = "pending"
	VerificationStatusApproved VerificationStatus = "approved"
	VerificationStatusRejected VerificationStatus = "rejected"
)

// Valid reports whether the verification status is supported.
func (s VerificationStatus) Valid() bool {
	switch s {
	case VerificationStatusPending, VerificationStatusApproved, VerificationStatusRejected:
		return true
	default:
		return false
	}
}

// ParseVerificationStatus normalizes a status string and reports whether it is supported.
func ParseVerificationStatus(value string) (VerificationStatus, bool) {
	status := VerificationStatus(strings.ToLower(strings.TrimSpace(value)))
	if status.Valid() {
		return status, true
	}
	return "", false
}

// Verification represents an identity verification request with a
// supporting document.
type Verification struct {
	ID           string             `json:"id"                    db:"id"`
	UserID       string             `json:"user_id"               db:"user_id"`
	Name         string             `json:"name"                  db:"name"`
	DocumentType string             `json:"document_type"         db:"document_type"`
	DocumentURL  string             `json:"document_url"          db:"document_url"`
	Status       VerificationStatus `json:"status"                db:"status"`
	CreatedAt    time.Time          `json:"created_at"            db:"created_at"`
	ReviewedAt   *time.Time         `json:"reviewed_at,omitempty" db:"reviewed_at"`
}

// VerificationsListOptions controls paging and filtering for listing verification requests.
type VerificationsListOptions struct {
	Limit  int
	Offset int
	Status *VerificationStatus // exact match
	UserID *string             // exact match (citizen listing own requests)
}

// CreateVerificationRequest represents parameters to submit a Verification.
type CreateVerificationRequest struct {
	Name         string `json:"name"`
	DocumentType string `json:"document_type"`
	DocumentURL  string `json:"document_url"`
}

// ReviewVerificationRequest represents an admin approve/reject decision.
type ReviewVerificationRequest struct {
	Status VerificationStatus `json:"status"`
}

// Validate validates CreateVerificationRequest.
func (r *CreateVerificationRequest) Validate() error {
	name := strings.TrimSpace(r.Name)
	if name == "" {
		return errors.New("name is required and cannot be empty")
	}
	if utf8.RuneCountInString(name) > maxNameLen {
		return errors.New("name cannot exceed 255 characters")
	}
	if strings.TrimSpace(r.DocumentType) == "" {
		return errors.New("document_type is required")
	}
	if strings.TrimSpace(r.DocumentURL) == "" {
		return errors.New("document_url is required")
	}
	r.Name = name
	return nil
}

// Validate validates ReviewVerificationRequest. A review can only move the
// request to approved or rejected.
func (r *ReviewVerificationRequest) Validate() error {
	status, ok := ParseVerificationStatus(string(r.Status))
	if !ok || status == VerificationStatusPending {
		return errors.New("status must be approved or rejected")
	}
	r.Status = status
	return nil
}
