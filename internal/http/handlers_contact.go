package httpx

import (
	"net/http"

	"github.com/janasethu/civic-api/internal/domain/model"
	"github.com/janasethu/civic-api/internal/service"
)

// ContactHandlers provides HTTP handlers for contact form submissions.
type ContactHandlers struct {
	Svc *service.ContactService
}

// Create records a contact message. Open to anonymous callers.
// POST /api/contact.
func (h *ContactHandlers) Create(w http.ResponseWriter, r *http.Request) {
	var req model.CreateContactMessageRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	msg, err := h.Svc.Create(r.Context(), &req)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusCreated, msg)
}

// List returns contact messages, newest first.
// GET /api/admin/contact-messages?limit=&offset=.
func (h *ContactHandlers) List(w http.ResponseWriter, r *http.Request) {
	limit, offset := ParseLimitOffset(r, defaultPageSize, maxPageSize)

	messages, err := h.Svc.List(r.Context(), limit, offset)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, messages)
}
