package httpx

import (
	"net/http"

	domainauth "github.com/janasethu/civic-api/internal/domain/auth"
	"github.com/janasethu/civic-api/internal/domain/model"
	"github.com/janasethu/civic-api/internal/service"
)

// ProfileHandlers provides HTTP handlers for profile operations.
type ProfileHandlers struct {
	Svc *service.ProfileService
}

// Me returns the authenticated user's profile.
// GET /api/profile.
func (h *ProfileHandlers) Me(w http.ResponseWriter, r *http.Request) {
	profile, err := h.Svc.Get(r.Context(), SessionUserID(r.Context()))
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, profile)
}

// Update applies self-service edits to the authenticated user's profile.
// PUT /api/profile.
func (h *ProfileHandlers) Update(w http.ResponseWriter, r *http.Request) {
	var req model.UpdateProfileRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	profile, err := h.Svc.Update(r.Context(), SessionUserID(r.Context()), &req)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, profile)
}

// SetRole changes a user's durable role label. The label never gates admin
// routes; those require live elevation.
// PATCH /api/admin/users/{id}/role.
func (h *ProfileHandlers) SetRole(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Role domainauth.Role `json:"role"`
	}
	if !DecodeJSON(w, r, &req) {
		return
	}

	profile, err := h.Svc.SetRole(r.Context(), r.PathValue("id"), req.Role)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, profile)
}
