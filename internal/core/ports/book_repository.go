package ports

import (
	"context"

	"github.com/bookmanager/catalog-api/internal/core/domain"
)

// BookRepository defines persistence operations for catalog books.
type BookRepository interface {
	Create(ctx context.Context, book *domain.Book) (*domain.Book, error)
	FindByID(ctx context.Context, id string) (*domain.Book, error)
	// Update persists the mutable fields of book (identified by book.ID)
	// and returns the updated record.
	Update(ctx context.Context, book *domain.Book) (*domain.Book, error)
	// Delete removes the book and returns the deleted record.
	Delete(ctx context.Context, id string) (*domain.Book, error)
	// List returns all books newest-first.
	List(ctx context.Context) ([]*domain.Book, error)
	// Search matches query case-insensitively against title, author, or ISBN.
	Search(ctx context.Context, query string) ([]*domain.Book, error)
}
