package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/bookmanager/catalog-api/internal/api/metrics"
	"github.com/bookmanager/catalog-api/internal/core/domain"
	"github.com/bookmanager/catalog-api/internal/core/ports"
)

// BookService implements catalog operations. Reads are public; the handlers
// gate every mutation behind the admin role before calling in here.
type BookService struct {
	repo ports.BookRepository
	log  zerolog.Logger
}

func NewBookService(repo ports.BookRepository, log zerolog.Logger) *BookService {
	return &BookService{repo: repo, log: log}
}

func (s *BookService) Create(ctx context.Context, in ports.BookInput) (*domain.Book, error) {
	if in.Title == "" || in.Author == "" || in.YearPublished == 0 || in.ISBN == "" {
		return nil, domain.ErrMissingFields
	}

	now := time.Now().UTC()
	book := &domain.Book{
		Title:         in.Title,
		Author:        in.Author,
		Published:     in.Published,
		Rating:        in.Rating,
		YearPublished: in.YearPublished,
		ISBN:          in.ISBN,
		Content:       in.Content,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	created, err := s.repo.Create(ctx, book)
	if err != nil {
		return nil, err
	}

	metrics.BookMutationsTotal.WithLabelValues("create").Inc()
	s.log.Info().Str("isbn", created.ISBN).Str("title", created.Title).Msg("book created")
	return created, nil
}

func (s *BookService) Get(ctx context.Context, id string) (*domain.Book, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *BookService) List(ctx context.Context) ([]*domain.Book, error) {
	return s.repo.List(ctx)
}

func (s *BookService) Update(ctx context.Context, id string, in ports.BookInput) (*domain.Book, error) {
	book := &domain.Book{
		ID:            id,
		Title:         in.Title,
		Author:        in.Author,
		Published:     in.Published,
		Rating:        in.Rating,
		YearPublished: in.YearPublished,
		ISBN:          in.ISBN,
		Content:       in.Content,
		UpdatedAt:     time.Now().UTC(),
	}

	updated, err := s.repo.Update(ctx, book)
	if err != nil {
		return nil, err
	}

	metrics.BookMutationsTotal.WithLabelValues("update").Inc()
	return updated, nil
}

func (s *BookService) Delete(ctx context.Context, id string) (*domain.Book, error) {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return nil, err
	}

	metrics.BookMutationsTotal.WithLabelValues("delete").Inc()
	s.log.Info().Str("isbn", deleted.ISBN).Msg("book deleted")
	return deleted, nil
}

func (s *BookService) Search(ctx context.Context, query string) ([]*domain.Book, error) {
	return s.repo.Search(ctx, query)
}
