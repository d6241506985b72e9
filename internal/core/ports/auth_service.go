package ports

import (
	"context"

	"github.com/bookmanager/catalog-api/internal/core/domain"
)

// RegisterInput carries the fields required to create an account. The role is
// never part of the input: self-registration always produces a regular user.
type RegisterInput struct {
	Username string
	Email    string
	Password string
	FullName string
}

// AuthService implements the account operations.
type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (string, *domain.User, error)
	Login(ctx context.Context, username, password string) (string, *domain.User, error)
	Profile(ctx context.Context, id string) (*domain.User, error)
	ChangePassword(ctx context.Context, id, currentPassword, newPassword string) error
}
