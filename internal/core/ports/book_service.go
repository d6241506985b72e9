package ports

import (
	"context"

	"github.com/bookmanager/catalog-api/internal/core/domain"
)

// BookInput carries the mutable fields of a book for create and update.
type BookInput struct {
	Title         string
	Author        string
	Published     bool
	Rating        float64
	YearPublished int
	ISBN          string
	Content       string
}

// BookService defines use-case operations for the catalog.
type BookService interface {
	Create(ctx context.Context, in BookInput) (*domain.Book, error)
	Get(ctx context.Context, id string) (*domain.Book, error)
	List(ctx context.Context) ([]*domain.Book, error)
	Update(ctx context.Context, id string, in BookInput) (*domain.Book, error)
	Delete(ctx context.Context, id string) (*domain.Book, error)
	Search(ctx context.Context, query string) ([]*domain.Book, error)
}
