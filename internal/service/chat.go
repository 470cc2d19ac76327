package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/janasethu/civic-api/internal/core"
	"github.com/janasethu/civic-api/internal/data"
	"github.com/janasethu/civic-api/internal/domain/model"
	"github.com/janasethu/civic-api/internal/domain/realtime"
	apperrors "github.com/janasethu/civic-api/internal/errors"
	"github.com/janasethu/civic-api/internal/ports"
	"github.com/janasethu/civic-api/internal/util"
)

// ChatServiceOptions groups the dependencies for ChatService.
// Publisher is optional; without it new messages are simply not broadcast.
type ChatServiceOptions struct {
	Repo      core.ChatRepository
	Publisher ports.Publisher
}

// ChatService manages area-scoped community chat.
type ChatService struct {
	repo      core.ChatRepository
	publisher ports.Publisher
}

// NewChatService constructs a ChatService from options.
func NewChatService(opts ChatServiceOptions) *ChatService {
	return &ChatService{repo: opts.Repo, publisher: opts.Publisher}
}

// Post stores a chat message in the sender's area and broadcasts it.
func (s *ChatService) Post(ctx context.Context, userID string, req *model.CreateChatMessageRequest) (*model.ChatMessage, error) {
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}
	req.Message = util.SanitizeText(req.Message)

	msg, err := s.repo.Create(ctx, userID, req)
	if err != nil {
		if errors.Is(err, data.ErrUserNotFound) {
			return nil, apperrors.Unauthorized("unknown user")
		}
		return nil, fmt.Errorf("post chat message: %w", err)
	}

	// Best-effort broadcast; a dropped event only delays a client refresh.
	if s.publisher != nil {
		if payload, err := json.Marshal(map[string]any{
			"kind":     "chat_message",
			"id":       msg.ID,
			"pin_code": msg.PinCode,
		}); err == nil {
			_ = s.publisher.Publish(ctx, string(realtime.TopicChat), payload)
		}
	}
	return msg, nil
}

// List returns messages for one area, newest first.
func (s *ChatService) List(ctx context.Context, opts *model.ChatListOptions) ([]*model.ChatMessage, error) {
	if opts == nil || opts.PinCode == "" {
		return nil, apperrors.Validation("pin_code is required")
	}
	messages, err := s.repo.List(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("list chat messages: %w", err)
	}
	return messages, nil
}
