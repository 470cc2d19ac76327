package httpx

import (
	"net/http"

	"github.com/janasethu/civic-api/internal/domain/model"
	"github.com/janasethu/civic-api/internal/service"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// ComplaintHandlers provides HTTP handlers for complaint operations.
type ComplaintHandlers struct {
	Svc *service.ComplaintService
}

// Create files a complaint for the authenticated user.
// POST /api/complaints.
func (h *ComplaintHandlers) Create(w http.ResponseWriter, r *http.Request) {
	var req model.CreateComplaintRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	complaint, err := h.Svc.Create(r.Context(), SessionUserID(r.Context()), &req)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusCreated, complaint)
}

// List returns complaints with optional filters.
// GET /api/complaints?status=&pin_code=&sort=&dir=&limit=&offset=.
func (h *ComplaintHandlers) List(w http.ResponseWriter, r *http.Request) {
	opts := h.listOptions(r)

	list, err := h.Svc.List(r.Context(), opts)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, list)
}

// Mine returns the authenticated user's own complaints.
// GET /api/complaints/mine.
func (h *ComplaintHandlers) Mine(w http.ResponseWriter, r *http.Request) {
	userID := SessionUserID(r.Context())
	opts := h.listOptions(r)
	opts.UserID = &userID

	list, err := h.Svc.List(r.Context(), opts)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, list)
}

// GetByID returns a single complaint.
// GET /api/complaints/{id}.
func (h *ComplaintHandlers) GetByID(w http.ResponseWriter, r *http.Request) {
	complaint, err := h.Svc.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, complaint)
}

// UpdateStatus transitions a complaint's lifecycle status.
// PATCH /api/admin/complaints/{id}/status.
func (h *ComplaintHandlers) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req model.UpdateComplaintStatusRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	complaint, err := h.Svc.UpdateStatus(r.Context(), r.PathValue("id"), &req)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, complaint)
}

// Delete removes a complaint.
// DELETE /api/admin/complaints/{id}.
func (h *ComplaintHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.Svc.Delete(r.Context(), r.PathValue("id")); err != nil {
		WriteServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *ComplaintHandlers) listOptions(r *http.Request) *model.ComplaintsListOptions {
	limit, offset := ParseLimitOffset(r, defaultPageSize, maxPageSize)
	opts := &model.ComplaintsListOptions{
		Limit:   limit,
		Offset:  offset,
		PinCode: queryStringPtr(r, "pin_code"),
		Sort:    r.URL.Query().Get("sort"),
		Dir:     r.URL.Query().Get("dir"),
	}
	if status, ok := model.ParseComplaintStatus(r.URL.Query().Get("status")); ok {
		opts.Status = &status
	}
	return opts
}
