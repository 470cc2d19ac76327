//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"
)

const maxChatMessageLen = 1000

// ChatMessage is a message in an area's community chat, scoped by postal code.
type ChatMessage struct {
	ID         string    `json:"id"                    db:"id"`
	UserID     string    `json:"user_id"               db:"user_id"`
	AuthorName string    `json:"author_name,omitempty" db:"author_name"`
	PinCode    string    `json:"pin_code"              db:"pin_code"`
	Message    string    `json:"message"               db:"message"`
	CreatedAt  time.Time `json:"created_at"            db:"created_at"`
}

// ChatListOptions controls paging for listing chat messages in an area.
type ChatListOptions struct {
	Limit   int
	Offset  int
	PinCode string // required; chat is always area-scoped
}

// CreateChatMessageRequest represents parameters to post a chat message.
type CreateChatMessageRequest struct {
	PinCode string `json:"pin_code"`
	Message string `json:"message"`
}

// Validate validates CreateChatMessageRequest.
func (r *CreateChatMessageRequest) Validate() error {
	if !rePinCode.MatchString(r.PinCode) {
		return errors.New("pin_code must be a 6 digit postal code")
	}
	if strings.TrimSpace(r.Message) == "" {
		return errors.New("message is required and cannot be empty")
	}
	if utf8.RuneCountInString(r.Message) > maxChatMessageLen {
		return errors.New("message cannot exceed 1000 characters")
	}
	return nil
}
