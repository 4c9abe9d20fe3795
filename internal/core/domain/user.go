package domain

import (
	"errors"
	"time"
)

// Role is a coarse privilege tag embedded in a session token at issuance.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrUserNotFound = errors.New("user not found")
var ErrUserExists = errors.New("user already exists")
var ErrUnauthenticated = errors.New("authentication required")
var ErrInvalidInput = errors.New("invalid input")
var ErrForbidden = errors.New("access forbidden")

// Password-reset redemption surfaces three distinct, user-facing rejections.
// Possession of the mailed token already implies legitimacy, so these are
// deliberately more specific than the uniform login failure.
var ErrResetMalformed = errors.New("password reset token malformed")
var ErrResetNotFound = errors.New("password reset subject not found")
var ErrResetExpired = errors.New("password reset token expired")
var ErrResetThrottled = errors.New("password reset requested too recently")

// User models an account in the principal directory.
type User struct {
	ID           string    `json:"id"`
	Login        string    `json:"login"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Roles        []Role    `json:"roles"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// HasRole reports whether the user carries the given role.
func (u *User) HasRole(r Role) bool {
	for _, have := range u.Roles {
		if have == r {
			return true
		}
	}
	return false
}

// Principal is the request-scoped identity derived from a verified session
// token. Roles are a snapshot taken at issuance; a role change only becomes
// visible after re-login. Never persisted.
type Principal struct {
	ID    string `json:"id"`
	Login string `json:"login"`
	Roles []Role `json:"roles"`
}

// IsAdmin reports whether the principal holds the admin role.
func (p Principal) IsAdmin() bool {
	for _, r := range p.Roles {
		if r == RoleAdmin {
			return true
		}
	}
	return false
}
