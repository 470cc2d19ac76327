package httpx

import (
	"net/http"

	"github.com/janasethu/civic-api/internal/domain/model"
	"github.com/janasethu/civic-api/internal/service"
)

// VerificationHandlers provides HTTP handlers for identity verification.
type VerificationHandlers struct {
	Svc *service.VerificationService
}

// Create submits a verification request for the authenticated user.
// POST /api/verifications.
func (h *VerificationHandlers) Create(w http.ResponseWriter, r *http.Request) {
	var req model.CreateVerificationRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	verification, err := h.Svc.Create(r.Context(), SessionUserID(r.Context()), &req)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusCreated, verification)
}

// Mine returns the authenticated user's own verification requests.
// GET /api/verifications/mine.
func (h *VerificationHandlers) Mine(w http.ResponseWriter, r *http.Request) {
	userID := SessionUserID(r.Context())
	limit, offset := ParseLimitOffset(r, defaultPageSize, maxPageSize)

	verifications, err := h.Svc.List(r.Context(), &model.VerificationsListOptions{
		Limit:  limit,
		Offset: offset,
		UserID: &userID,
	})
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, verifications)
}

// List returns verification requests for review.
// GET /api/admin/verifications?status=&limit=&offset=.
func (h *VerificationHandlers) List(w http.ResponseWriter, r *http.Request) {
	limit, offset := ParseLimitOffset(r, defaultPageSize, maxPageSize)
	opts := &model.VerificationsListOptions{Limit: limit, Offset: offset}
	if status, ok := model.ParseVerificationStatus(r.URL.Query().Get("status")); ok {
		opts.Status = &status
	}

	verifications, err := h.Svc.List(r.Context(), opts)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, verifications)
}

// Review approves or rejects a verification request.
// PATCH /api/admin/verifications/{id}.
func (h *VerificationHandlers) Review(w http.ResponseWriter, r *http.Request) {
	var req model.ReviewVerificationRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	verification, err := h.Svc.Review(r.Context(), r.PathValue("id"), &req)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, verification)
}
