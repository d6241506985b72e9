package domain

import (
	"errors"
	"time"
)

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("username or email already exists")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrMissingFields      = errors.New("missing required fields")
	ErrWrongPassword      = errors.New("current password is incorrect")
	ErrWeakPassword       = errors.New("password too weak")
	ErrInvalidRole        = errors.New("role must be admin or user")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrTooManyAttempts    = errors.New("too many login attempts")
)

// User models an account in the catalog. PasswordHash is the only place a
// credential lives server-side and is never serialized.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	FullName     string    `json:"fullName"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// ValidRole reports whether role is one of the two permission tiers.
func ValidRole(role string) bool {
	return role == RoleAdmin || role == RoleUser
}
