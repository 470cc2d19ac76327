package httpx

import (
	"net/http"

	"github.com/janasethu/civic-api/internal/domain/model"
	"github.com/janasethu/civic-api/internal/service"
)

// ChatHandlers provides HTTP handlers for area chat.
type ChatHandlers struct {
	Svc *service.ChatService
}

// Post stores a chat message in the sender's area.
// POST /api/chat.
func (h *ChatHandlers) Post(w http.ResponseWriter, r *http.Request) {
	var req model.CreateChatMessageRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	msg, err := h.Svc.Post(r.Context(), SessionUserID(r.Context()), &req)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusCreated, msg)
}

// List returns messages for one area, newest first.
// GET /api/chat?pin_code=&limit=&offset=.
func (h *ChatHandlers) List(w http.ResponseWriter, r *http.Request) {
	limit, offset := ParseLimitOffset(r, defaultPageSize, maxPageSize)

	messages, err := h.Svc.List(r.Context(), &model.ChatListOptions{
		Limit:   limit,
		Offset:  offset,
		PinCode: r.URL.Query().Get("pin_code"),
	})
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, messages)
}
