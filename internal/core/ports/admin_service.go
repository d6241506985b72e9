package ports

import (
	"context"

	"github.com/bookmanager/catalog-api/internal/core/domain"
)

// CreateUserInput carries the fields for administrative account creation.
// Unlike self-registration, the role is chosen by the operator.
type CreateUserInput struct {
	Username string
	Email    string
	Password string
	FullName string
	Role     string
}

// SeedUser pairs a username with the plaintext password to seed it with.
type SeedUser struct {
	Username string
	Email    string
	Password string
	FullName string
	Role     string
}

// AdminService backs the operator CLI: account creation with explicit roles,
// role and password changes, deletion, and first-run seeding.
type AdminService interface {
	CreateUser(ctx context.Context, in CreateUserInput) (*domain.User, error)
	ListUsers(ctx context.Context) ([]*domain.User, error)
	ChangeRole(ctx context.Context, username, role string) error
	SetPassword(ctx context.Context, username, newPassword string) error
	DeleteUser(ctx context.Context, username string) error
	// Seed creates the given accounts only when the store is empty. It
	// returns the created users, or nil when users already exist.
	Seed(ctx context.Context, users []SeedUser) ([]*domain.User, error)
}
