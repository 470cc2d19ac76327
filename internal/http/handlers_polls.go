package httpx

import (
	"net/http"

	"github.com/janasethu/civic-api/internal/domain/model"
	"github.com/janasethu/civic-api/internal/service"
)

// PollHandlers provides HTTP handlers for poll operations.
type PollHandlers struct {
	Svc *service.PollService
}

// Create opens a poll.
// POST /api/admin/polls.
func (h *PollHandlers) Create(w http.ResponseWriter, r *http.Request) {
	var req model.CreatePollRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	poll, err := h.Svc.Create(r.Context(), &req)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusCreated, poll)
}

// List returns polls, optionally only active ones or for one area.
// GET /api/polls?active=true&pin_code=&limit=&offset=.
func (h *PollHandlers) List(w http.ResponseWriter, r *http.Request) {
	limit, offset := ParseLimitOffset(r, defaultPageSize, maxPageSize)
	opts := &model.PollsListOptions{
		Limit:      limit,
		Offset:     offset,
		PinCode:    queryStringPtr(r, "pin_code"),
		ActiveOnly: r.URL.Query().Get("active") == "true",
	}

	polls, err := h.Svc.List(r.Context(), opts)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, polls)
}

// GetByID returns a single poll, including the caller's vote status when
// authenticated.
// GET /api/polls/{id}.
func (h *PollHandlers) GetByID(w http.ResponseWriter, r *http.Request) {
	poll, err := h.Svc.Get(r.Context(), r.PathValue("id"), SessionUserID(r.Context()))
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, poll)
}

// Vote records the authenticated user's vote.
// POST /api/polls/{id}/vote.
func (h *PollHandlers) Vote(w http.ResponseWriter, r *http.Request) {
	var req model.VoteRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	poll, err := h.Svc.Vote(r.Context(), r.PathValue("id"), SessionUserID(r.Context()), &req)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, poll)
}

// Delete removes a poll and its votes.
// DELETE /api/admin/polls/{id}.
func (h *PollHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.Svc.Delete(r.Context(), r.PathValue("id")); err != nil {
		WriteServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
