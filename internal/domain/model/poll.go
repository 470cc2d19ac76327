//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	maxPollQuestionLen = 500
	maxPollOptions     = 10
	minPollOptions     = 2
)

// Poll represents a citizen opinion poll.
// Options is the ordered list of answers; Votes holds the tally per option
// index, kept denormalized for cheap rendering (poll_votes is the authority
// for one-vote-per-user enforcement).
type Poll struct {
	ID        string     `json:"id"                   db:"id"`
	Question  string     `json:"question"             db:"question"`
	Options   []string   `json:"options"              db:"options"`
	Votes     []int      `json:"votes"                db:"votes"`
	ExpiresAt *time.Time `json:"expires_at,omitempty" db:"expires_at"`
	PinCode   string     `json:"pin_code,omitempty"   db:"pin_code"`
	CreatedAt time.Time  `json:"created_at"           db:"created_at"`
}

// Closed reports whether the poll no longer accepts votes at the given instant.
func (p Poll) Closed(now time.Time) bool {
	return p.ExpiresAt != nil && !now.Before(*p.ExpiresAt)
}

// PollsListOptions controls paging and filtering for listing polls.
type PollsListOptions struct {
	Limit      int
	Offset     int
	PinCode    *string // exact match
	ActiveOnly bool    // only polls that have not expired
}

// CreatePollRequest represents parameters to create a Poll.
type CreatePollRequest struct {
	Question  string     `json:"question"`
	Options   []string   `json:"options"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
	PinCode   string     `json:"pin_code,omitempty"`
}

// VoteRequest represents a single user's vote on a poll.
type VoteRequest struct {
	OptionIndex int `json:"option_index"`
}

// Validate validates CreatePollRequest.
func (r *CreatePollRequest) Validate() error {
	question := strings.TrimSpace(r.Question)
	if question == "" {
		return errors.New("question is required and cannot be empty")
	}
	if utf8.RuneCountInString(question) > maxPollQuestionLen {
		return errors.New("question cannot exceed 500 characters")
	}
	if len(r.Options) < minPollOptions {
		return errors.New("a poll needs at least 2 options")
	}
	if len(r.Options) > maxPollOptions {
		return errors.New("a poll cannot have more than 10 options")
	}
	seen := make(map[string]struct{}, len(r.Options))
	for i, opt := range r.Options {
		trimmed := strings.TrimSpace(opt)
		if trimmed == "" {
			return errors.New("poll options cannot be empty")
		}
		if _, dup := seen[trimmed]; dup {
			return errors.New("poll options must be unique")
		}
		seen[trimmed] = struct{}{}
		r.Options[i] = trimmed
	}
	if r.PinCode != "" && !rePinCode.MatchString(r.PinCode) {
		return errors.New("pin_code must be a 6 digit postal code")
	}
	r.Question = question
	return nil
}

// ValidateFor validates the vote against a specific poll.
func (r *VoteRequest) ValidateFor(poll Poll, now time.Time) error {
	if r.OptionIndex < 0 || r.OptionIndex >= len(poll.Options) {
		return errors.New("option_index is out of range")
	}
	if poll.Closed(now) {
		return errors.New("poll is closed")
	}
	return nil
}
