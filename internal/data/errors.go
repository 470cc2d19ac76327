package data

import "errors"

// Shared sentinel errors for data-layer repositories.
var (
	// User and profile repository sentinels.
	ErrUserNotFound    = errors.New("user not found")
	ErrUserExists      = errors.New("user already exists")
	ErrProfileNotFound = errors.New("profile not found")

	// Admin elevation sentinels.
	ErrGrantNotFound    = errors.New("admin session not found")
	ErrPinNotConfigured = errors.New("admin pin not configured")

	// Civic content sentinels.
	ErrComplaintNotFound    = errors.New("complaint not found")
	ErrEventNotFound        = errors.New("event not found")
	ErrPollNotFound         = errors.New("poll not found")
	ErrAlreadyVoted         = errors.New("user has already voted on this poll")
	ErrAlertNotFound        = errors.New("alert not found")
	ErrVerificationNotFound = errors.New("verification request not found")
)
