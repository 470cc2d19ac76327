//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	minPasswordLen = 8
	maxPasswordLen = 128
)

// User is a credential record for password-mode authentication.
// PasswordHash is a PHC-encoded argon2id hash, never the plaintext.
type User struct {
	ID           string    `json:"id"         db:"id"`
	Email        string    `json:"email"      db:"email"`
	PasswordHash string    `json:"-"          db:"password_hash"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// SignUpRequest represents parameters to create a credential record.
type SignUpRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
}

// SignInRequest represents a credential check.
type SignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate validates SignUpRequest.
func (r *SignUpRequest) Validate() error {
	email := strings.ToLower(strings.TrimSpace(r.Email))
	if email == "" || !reEmail.MatchString(email) {
		return errors.New("a valid email is required")
	}
	if utf8.RuneCountInString(r.Password) < minPasswordLen {
		return errors.New("password must be at least 8 characters")
	}
	if utf8.RuneCountInString(r.Password) > maxPasswordLen {
		return errors.New("password cannot exceed 128 characters")
	}
	name := strings.TrimSpace(r.FullName)
	if name == "" {
		return errors.New("full_name is required and cannot be empty")
	}
	if utf8.RuneCountInString(name) > maxNameLen {
		return errors.New("full_name cannot exceed 255 characters")
	}
	r.Email = email
	r.FullName = name
	return nil
}

// Validate validates SignInRequest.
func (r *SignInRequest) Validate() error {
	email := strings.ToLower(strings.TrimSpace(r.Email))
	if email == "" || !reEmail.MatchString(email) {
		return errors.New("a valid email is required")
	}
	if r.Password == "" {
		return errors.New("password is required")
	}
	r.Email = email
	return nil
}
