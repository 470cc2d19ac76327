//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"errors"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"
)

const maxContactMessageLen = 2000

var reEmail = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// ContactMessage is a message submitted through the public contact form.
type ContactMessage struct {
	ID        string    `json:"id"         db:"id"`
	Name      string    `json:"name"       db:"name"`
	Email     string    `json:"email"      db:"email"`
	Message   string    `json:"message"    db:"message"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// CreateContactMessageRequest represents parameters to submit a contact message.
type CreateContactMessageRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// Validate validates CreateContactMessageRequest.
func (r *CreateContactMessageRequest) Validate() error {
	name := strings.TrimSpace(r.Name)
	if name == "" {
		return errors.New("name is required and cannot be empty")
	}
	if utf8.RuneCountInString(name) > maxNameLen {
		return errors.New("name cannot exceed 255 characters")
	}
	email := strings.TrimSpace(r.Email)
	if email == "" || !reEmail.MatchString(email) {
		return errors.New("a valid email is required")
	}
	if strings.TrimSpace(r.Message) == "" {
		return errors.New("message is required and cannot be empty")
	}
	if utf8.RuneCountInString(r.Message) > maxContactMessageLen {
		return errors.New("message cannot exceed 2000 characters")
	}
	r.Name = name
	r.Email = email
	return nil
}
