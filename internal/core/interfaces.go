// Package core defines the repository interfaces the service layer depends
// on. The data layer provides the Postgres implementations.
package core

import (
	"context"
	"time"

	"github.com/janasethu/civic-api/internal/domain/auth"
	"github.com/janasethu/civic-api/internal/domain/model"
)

// UserRepository manages account credentials.
type UserRepository interface {
	Create(ctx context.Context, id, email, passwordHash string) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByID(ctx context.Context, id string) (*model.User, error)
}

// ProfileRepository manages citizen profiles.
type ProfileRepository interface {
	GetByUserID(ctx context.Context, userID string) (*model.Profile, error)
	Ensure(ctx context.Context, userID, fullName, email string) (*model.Profile, error)
	Update(ctx context.Context, userID string, req *model.UpdateProfileRequest) (*model.Profile, error)
	SetRole(ctx context.Context, userID string, role auth.Role) (*model.Profile, error)
}

// ComplaintRepository manages citizen complaints.
type ComplaintRepository interface {
	Create(ctx context.Context, userID string, req *model.CreateComplaintRequest) (*model.Complaint, error)
	GetByID(ctx context.Context, id string) (*model.Complaint, error)
	UpdateStatus(ctx context.Context, id string, status model.ComplaintStatus) (*model.Complaint, error)
	Delete(ctx context.Context, id string) (bool, error)
	List(ctx context.Context, opts *model.ComplaintsListOptions) ([]*model.Complaint, error)
	Count(ctx context.Context, opts *model.ComplaintsListOptions) (int, error)
}

// EventRepository manages community events.
type EventRepository interface {
	Create(ctx context.Context, req *model.CreateEventRequest) (*model.Event, error)
	GetByID(ctx context.Context, id string) (*model.Event, error)
	Update(ctx context.Context, id string, req *model.UpdateEventRequest) (*model.Event, error)
	Delete(ctx context.Context, id string) (bool, error)
	List(ctx context.Context, opts *model.EventsListOptions) ([]*model.Event, error)
}

// PollRepository manages polls and their votes.
type PollRepository interface {
	Create(ctx context.Context, req *model.CreatePollRequest) (*model.Poll, error)
	GetByID(ctx context.Context, id string) (*model.Poll, error)
	Vote(ctx context.Context, pollID, userID string, req *model.VoteRequest) (*model.Poll, error)
	HasVoted(ctx context.Context, pollID, userID string) (bool, error)
	Delete(ctx context.Context, id string) (bool, error)
	List(ctx context.Context, opts *model.PollsListOptions) ([]*model.Poll, error)
}

// AlertRepository manages municipal alerts.
type AlertRepository interface {
	Create(ctx context.Context, req *model.CreateAlertRequest) (*model.Alert, error)
	GetByID(ctx context.Context, id string) (*model.Alert, error)
	Update(ctx context.Context, id string, req *model.UpdateAlertRequest) (*model.Alert, error)
	Delete(ctx context.Context, id string) (bool, error)
	List(ctx context.Context, opts *model.AlertsListOptions) ([]*model.Alert, error)
}

// VerificationRepository manages identity verification requests.
type VerificationRepository interface {
	Create(ctx context.Context, userID string, req *model.CreateVerificationRequest) (*model.Verification, error)
	GetByID(ctx context.Context, id string) (*model.Verification, error)
	Review(ctx context.Context, id string, req *model.ReviewVerificationRequest) (*model.Verification, error)
	List(ctx context.Context, opts *model.VerificationsListOptions) ([]*model.Verification, error)
}

// ContactRepository manages contact form submissions.
type ContactRepository interface {
	Create(ctx context.Context, req *model.CreateContactMessageRequest) (*model.ContactMessage, error)
	List(ctx context.Context, limit, offset int) ([]*model.ContactMessage, error)
}

// ChatRepository manages area-scoped community chat.
type ChatRepository interface {
	Create(ctx context.Context, userID string, req *model.CreateChatMessageRequest) (*model.ChatMessage, error)
	List(ctx context.Context, opts *model.ChatListOptions) ([]*model.ChatMessage, error)
}

// CacheRepository provides byte-level caching with TTLs.
type CacheRepository interface {
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Get(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) (bool, error)
}

// AdminSettingsRepository manages instance-wide admin settings.
type AdminSettingsRepository interface {
	SetPin(ctx context.Context, pin string) error
	VerifyPin(ctx context.Context, pin string) (bool, error)
}
