// Package users is the console's user-management collection: the row model
// the admin list screen renders and the explicit payload types its forms
// submit. Payloads are validated here, at the boundary between presentation
// and core, so nothing downstream handles an unchecked map.
package users

import (
	"strings"
	"time"

	"github.com/pkg/errors"
)

// KYC status values reported by the backend.
const (
	KYCPending  = "PENDING"
	KYCVerified = "VERIFIED"
	KYCRejected = "REJECTED"
)

// User is one console operator row as listed by the admin module.
type User struct {
	ID          string    `json:"id"`
	Phone       string    `json:"phone"`
	Name        string    `json:"name"`
	Roles       []string  `json:"roles"`
	Permissions []string  `json:"permissions"`
	Locale      string    `json:"locale"`
	KYCStatus   string    `json:"kyc_status"`
	GaushalaID  *int64    `json:"gaushala_id,omitempty"` // facility scope; absent for system-wide users
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"created_at"`
}

// CreatePayload is the shape the create-user form submits.
type CreatePayload struct {
	Phone      string   `json:"phone"`
	Name       string   `json:"name"`
	Roles      []string `json:"roles"`
	Locale     string   `json:"locale,omitempty"`
	GaushalaID *int64   `json:"gaushala_id,omitempty"`
}

func (p CreatePayload) Validate() error {
	if strings.TrimSpace(p.Phone) == "" {
		return errors.New("[Validate] phone is required")
	}
	if !strings.HasPrefix(p.Phone, "+") {
		return errors.New("[Validate] phone must be in international format")
	}
	if strings.TrimSpace(p.Name) == "" {
		return errors.New("[Validate] name is required")
	}
	if len(p.Roles) == 0 {
		return errors.New("[Validate] at least one role is required")
	}
	return nil
}

// UpdatePayload carries only the fields being changed; nil means unchanged.
type UpdatePayload struct {
	Name   *string  `json:"name,omitempty"`
	Roles  []string `json:"roles,omitempty"`
	Locale *string  `json:"locale,omitempty"`
}

func (p UpdatePayload) Validate() error {
	if p.Name == nil && p.Roles == nil && p.Locale == nil {
		return errors.New("[Validate] no fields to update")
	}
	if p.Name != nil && strings.TrimSpace(*p.Name) == "" {
		return errors.New("[Validate] name cannot be blank")
	}
	if p.Roles != nil && len(p.Roles) == 0 {
		return errors.New("[Validate] roles cannot be emptied")
	}
	return nil
}
