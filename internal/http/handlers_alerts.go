package httpx

import (
	"net/http"
	"strings"

	"github.com/janasethu/civic-api/internal/domain/model"
	"github.com/janasethu/civic-api/internal/service"
)

// AlertHandlers provides HTTP handlers for municipal alert operations.
type AlertHandlers struct {
	Svc *service.AlertService
}

// Create publishes an alert.
// POST /api/admin/alerts.
func (h *AlertHandlers) Create(w http.ResponseWriter, r *http.Request) {
	var req model.CreateAlertRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	alert, err := h.Svc.Create(r.Context(), &req)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusCreated, alert)
}

// List returns alerts, newest first.
// GET /api/alerts?priority=&pin_code=&limit=&offset=.
func (h *AlertHandlers) List(w http.ResponseWriter, r *http.Request) {
	limit, offset := ParseLimitOffset(r, defaultPageSize, maxPageSize)
	opts := &model.AlertsListOptions{
		Limit:   limit,
		Offset:  offset,
		PinCode: queryStringPtr(r, "pin_code"),
	}
	if raw := r.URL.Query().Get("priority"); raw != "" {
		priority := model.AlertPriority(strings.ToLower(raw))
		if priority.Valid() {
			opts.Priority = &priority
		}
	}

	alerts, err := h.Svc.List(r.Context(), opts)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, alerts)
}

// GetByID returns a single alert.
// GET /api/alerts/{id}.
func (h *AlertHandlers) GetByID(w http.ResponseWriter, r *http.Request) {
	alert, err := h.Svc.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, alert)
}

// Update applies partial edits to an alert.
// PUT /api/admin/alerts/{id}.
func (h *AlertHandlers) Update(w http.ResponseWriter, r *http.Request) {
	var req model.UpdateAlertRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	alert, err := h.Svc.Update(r.Context(), r.PathValue("id"), &req)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, alert)
}

// Delete removes an alert.
// DELETE /api/admin/alerts/{id}.
func (h *AlertHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.Svc.Delete(r.Context(), r.PathValue("id")); err != nil {
		WriteServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
