// Package session is the single source of truth for who the current console
// user is and what they are allowed to do, derived entirely from a locally
// stored bearer token. No network calls are made; the token's signature is
// not verified client-side (see ParseToken).
//
// Every exported operation is total: garbage tokens, missing claims, and
// unavailable storage all degrade to defined default values rather than
// errors, so call sites can use the predicates freely without wrapping them.
package session

import (
	"slices"

	"github.com/rs/zerolog/log"
)

const (
	defaultLocale    = "en"
	defaultKYCStatus = "PENDING"
)

// UserContext is the normalized, always-valid view of the current session.
// When no valid token exists, every field holds its defined default and
// IsAuthenticated is false; callers never need to null-check.
type UserContext struct {
	IsAuthenticated bool
	UserID          string
	Phone           string
	Name            string
	Roles           []string
	Permissions     []string
	Locale          string
	KYCStatus       string
	GaushalaID      *int64
}

// Unauthenticated returns the defined default context for "no valid token".
func Unauthenticated() UserContext {
	return UserContext{
		Roles:       []string{},
		Permissions: []string{},
		Locale:      defaultLocale,
		KYCStatus:   defaultKYCStatus,
	}
}

// Context derives session state from the token held in its Store. It caches
// nothing: every read goes back to the store, so a StoreToken or ClearToken
// is visible on the next call.
type Context struct {
	store Store
}

// New creates a session context backed by the given token store.
func New(store Store) *Context {
	return &Context{store: store}
}

// StoreToken persists the raw token, overwriting any previous one. No
// validation happens here; validation is deferred to read time so a corrupt
// or expired token never fails a login flow.
func (c *Context) StoreToken(token string) {
	if err := c.store.Save(token); err != nil {
		log.Warn().Err(err).Msg("[StoreToken] failed to persist token")
	}
}

// StoredToken returns the raw stored token, or "" when nothing is stored or
// the storage backend is unavailable. It fails closed, never errors.
func (c *Context) StoredToken() string {
	token, err := c.store.Load()
	if err != nil {
		log.Warn().Err(err).Msg("[StoredToken] token storage unavailable")
		return ""
	}
	return token
}

// ClearToken removes the stored token. Clearing an empty slot is a no-op.
func (c *Context) ClearToken() {
	if err := c.store.Clear(); err != nil {
		log.Warn().Err(err).Msg("[ClearToken] failed to clear token")
	}
}

// CurrentUser derives a UserContext from the stored token at call time. Any
// failure along the way yields the unauthenticated default.
func (c *Context) CurrentUser() UserContext {
	token := c.StoredToken()
	if token == "" {
		return Unauthenticated()
	}

	payload := ParseToken(token)
	if payload == nil {
		return Unauthenticated()
	}

	userCtx := UserContext{
		IsAuthenticated: true,
		UserID:          payload.UserID,
		Phone:           payload.Phone,
		Name:            payload.Name,
		Roles:           payload.Roles,
		Permissions:     payload.Permissions,
		Locale:          payload.Locale,
		KYCStatus:       payload.KYCStatus,
		GaushalaID:      payload.GaushalaID,
	}

	if userCtx.Roles == nil {
		userCtx.Roles = []string{}
	}
	if userCtx.Permissions == nil {
		userCtx.Permissions = []string{}
	}
	if userCtx.Locale == "" {
		userCtx.Locale = defaultLocale
	}
	if userCtx.KYCStatus == "" {
		userCtx.KYCStatus = defaultKYCStatus
	}

	return userCtx
}

// HasRole reports whether the current user carries the exact role.
// Case-sensitive; roles and permissions are independent sets with no
// hierarchy or wildcard semantics.
func (c *Context) HasRole(role string) bool {
	return slices.Contains(c.CurrentUser().Roles, role)
}

// HasPermission reports whether the current user carries the exact
// permission. Holding a role never implies a permission, or vice versa.
func (c *Context) HasPermission(permission string) bool {
	return slices.Contains(c.CurrentUser().Permissions, permission)
}

// IsTokenExpired is true when no token is stored, the token cannot be
// parsed, or its expiry has passed. Callers use it to force
// re-authentication instead of issuing a request the backend will reject.
func (c *Context) IsTokenExpired() bool {
	token := c.StoredToken()
	if token == "" {
		return true
	}
	return ParseToken(token) == nil
}

// TenantID returns the gaushala/facility scope embedded in the token. ok is
// false when the session is unauthenticated or the claim is absent; callers
// must treat that as an error condition rather than assume a default
// facility.
func (c *Context) TenantID() (int64, bool) {
	userCtx := c.CurrentUser()
	if userCtx.GaushalaID == nil {
		return 0, false
	}
	return *userCtx.GaushalaID, true
}
