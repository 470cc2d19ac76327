//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"errors"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/janasethu/civic-api/internal/domain/auth"
)

const (
	maxNameLen    = 255
	maxAddressLen = 500
)

var (
	reMobile  = regexp.MustCompile(`^[0-9+\-\s]{7,15}$`)
	rePinCode = regexp.MustCompile(`^[0-9]{6}$`)
)

// Profile is the durable per-user record holding contact details and the
// durable role label. Created lazily with role citizen on first login.
type Profile struct {
	UserID    string    `json:"user_id"            db:"user_id"`
	FullName  string    `json:"full_name"          db:"full_name"`
	Nickname  string    `json:"nickname,omitempty" db:"nickname"`
	Email     string    `json:"email"              db:"email"`
	Mobile    string    `json:"mobile,omitempty"   db:"mobile"`
	Address   string    `json:"address,omitempty"  db:"address"`
	Area      string    `json:"area,omitempty"     db:"area"`
	PinCode   string    `json:"pin_code,omitempty" db:"pin_code"`
	Role      auth.Role `json:"role"               db:"role"`
	CreatedAt time.Time `json:"created_at"         db:"created_at"`
	UpdatedAt time.Time `json:"updated_at"         db:"updated_at"`
}

// UpdateProfileRequest represents self-service profile edits.
// The role field is intentionally absent: it is only changed by operators.
type UpdateProfileRequest struct {
	FullName *string `json:"full_name,omitempty"`
	Nickname *string `json:"nickname,omitempty"`
	Mobile   *string `json:"mobile,omitempty"`
	Address  *string `json:"address,omitempty"`
	Area     *string `json:"area,omitempty"`
	PinCode  *string `json:"pin_code,omitempty"`
}

// HasUpdates reports whether any field is set in UpdateProfileRequest.
func (r *UpdateProfileRequest) HasUpdates() bool {
	return r.FullName != nil || r.Nickname != nil || r.Mobile != nil ||
		r.Address != nil || r.Area != nil || r.PinCode != nil
}

// Validate validates UpdateProfileRequest, ensuring at least one field is set and values are sane.
func (r *UpdateProfileRequest) Validate() error {
	if !r.HasUpdates() {
		return errors.New("at least one field must be updated")
	}
	if r.FullName != nil {
		n := strings.TrimSpace(*r.FullName)
		if n == "" {
			return errors.New("full_name cannot be empty")
		}
		if utf8.RuneCountInString(n) > maxNameLen {
			return errors.New("full_name cannot exceed 255 characters")
		}
		*r.FullName = n
	}
	if r.Nickname != nil && utf8.RuneCountInString(*r.Nickname) > maxNameLen {
		return errors.New("nickname cannot exceed 255 characters")
	}
	if r.Mobile != nil && *r.Mobile != "" && !reMobile.MatchString(*r.Mobile) {
		return errors.New("mobile must be a valid phone number")
	}
	if r.Address != nil && utf8.RuneCountInString(*r.Address) > maxAddressLen {
		return errors.New("address cannot exceed 500 characters")
	}
	if r.PinCode != nil && *r.PinCode != "" && !rePinCode.MatchString(*r.PinCode) {
		return errors.New("pin_code must be a 6 digit postal code")
	}
	return nil
}
