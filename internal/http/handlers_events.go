package httpx

import (
	"net/http"

	"github.com/janasethu/civic-api/internal/domain/model"
	"github.com/janasethu/civic-api/internal/service"
)

// EventHandlers provides HTTP handlers for community event operations.
type EventHandlers struct {
	Svc *service.EventService
}

// Create publishes an event.
// POST /api/admin/events.
func (h *EventHandlers) Create(w http.ResponseWriter, r *http.Request) {
	var req model.CreateEventRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	event, err := h.Svc.Create(r.Context(), &req)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusCreated, event)
}

// List returns events, optionally only upcoming ones or for one area.
// GET /api/events?upcoming=true&pin_code=&limit=&offset=.
func (h *EventHandlers) List(w http.ResponseWriter, r *http.Request) {
	limit, offset := ParseLimitOffset(r, defaultPageSize, maxPageSize)
	opts := &model.EventsListOptions{
		Limit:    limit,
		Offset:   offset,
		PinCode:  queryStringPtr(r, "pin_code"),
		Upcoming: r.URL.Query().Get("upcoming") == "true",
	}

	events, err := h.Svc.List(r.Context(), opts)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, events)
}

// GetByID returns a single event.
// GET /api/events/{id}.
func (h *EventHandlers) GetByID(w http.ResponseWriter, r *http.Request) {
	event, err := h.Svc.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, event)
}

// Update applies partial edits to an event.
// PUT /api/admin/events/{id}.
func (h *EventHandlers) Update(w http.ResponseWriter, r *http.Request) {
	var req model.UpdateEventRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	event, err := h.Svc.Update(r.Context(), r.PathValue("id"), &req)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, event)
}

// Delete removes an event.
// DELETE /api/admin/events/{id}.
func (h *EventHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.Svc.Delete(r.Context(), r.PathValue("id")); err != nil {
		WriteServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
