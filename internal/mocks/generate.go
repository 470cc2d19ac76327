// Package mocks provides mock implementations for testing the civic API services.
//
// This package uses go.uber.org/mock (gomock) to generate type-safe mocks for our repository interfaces.
// The mocks are generated using go:generate directives and provide a fluent API for setting up test expectations.
//
// To regenerate mocks after interface changes, run:
//
//	go generate ./internal/mocks
//
// Usage in tests:
//
//	ctrl := gomock.NewController(t)
//	defer ctrl.Finish()
//	mockRepo := mocks.NewMockComplaintRepository(ctrl)
//	mockRepo.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).Return(complaint, nil)
package mocks

// Generate mock for ComplaintRepository interface from internal/core package.
// This creates MockComplaintRepository with methods for all ComplaintRepository interface methods:
// Create, GetByID, UpdateStatus, Delete, List, Count
//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=complaint_repository_mock.go github.com/janasethu/civic-api/internal/core ComplaintRepository

// Generate mock for AlertRepository interface from internal/core package.
// This creates MockAlertRepository with methods for all AlertRepository interface methods:
// Create, GetByID, Update, Delete, List
//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=alert_repository_mock.go github.com/janasethu/civic-api/internal/core AlertRepository

// Generate mock for PollRepository interface from internal/core package.
// This creates MockPollRepository with methods for all PollRepository interface methods:
// Create, GetByID, Vote, HasVoted, Delete, List
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=poll_repository_mock.go github.com/janasethu/civic-api/internal/core PollRepository

// Generate mock for VerificationRepository interface from internal/core package.
// This creates MockVerificationRepository with methods for all VerificationRepository interface methods:
// Create, GetByID, Review, List
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=verification_repository_mock.go github.com/janasethu/civic-api/internal/core VerificationRepository
