package ports

import (
	"context"

	"github.com/bookmanager/catalog-api/internal/core/domain"
)

// UserRepository defines persistence operations for user accounts.
//
// Create relies on the storage layer's unique indexes on username and email:
// a colliding insert must fail atomically with domain.ErrUserExists rather
// than being guarded by an application-level existence check.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// UpdatePassword replaces only the stored hash; it is the single path
	// through which a credential changes after creation.
	UpdatePassword(ctx context.Context, id, passwordHash string) error
	UpdateRole(ctx context.Context, id, role string) error
	Delete(ctx context.Context, id string) error
	// List returns all users newest-first with the password hash excluded.
	List(ctx context.Context) ([]*domain.User, error)
	Count(ctx context.Context) (int64, error)
}
