package service

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/bookmanager/catalog-api/internal/core/domain"
	"github.com/bookmanager/catalog-api/internal/core/ports"
)

type stubBookRepo struct {
	books  map[string]*domain.Book
	nextID int
}

func newStubBookRepo() *stubBookRepo {
	return &stubBookRepo{books: make(map[string]*domain.Book)}
}

func cloneBook(b *domain.Book) *domain.Book {
	clone := *b
	return &clone
}

func (r *stubBookRepo) Create(_ context.Context, book *domain.Book) (*domain.Book, error) {
	for _, b := range r.books {
		if b.ISBN == book.ISBN {
			return nil, domain.ErrBookExists
		}
	}
	r.nextID++
	created := cloneBook(book)
	created.ID = "b-" + strconv.Itoa(r.nextID)
	r.books[created.ID] = cloneBook(created)
	return created, nil
}

func (r *stubBookRepo) FindByID(_ context.Context, id string) (*domain.Book, error) {
	if b, ok := r.books[id]; ok {
		return cloneBook(b), nil
	}
	return nil, domain.ErrBookNotFound
}

func (r *stubBookRepo) Update(_ context.Context, book *domain.Book) (*domain.Book, error) {
	existing, ok := r.books[book.ID]
	if !ok {
		return nil, domain.ErrBookNotFound
	}
	updated := cloneBook(book)
	updated.CreatedAt = existing.CreatedAt
	r.books[book.ID] = cloneBook(updated)
	return updated, nil
}

func (r *stubBookRepo) Delete(_ context.Context, id string) (*domain.Book, error) {
	b, ok := r.books[id]
	if !ok {
		return nil, domain.ErrBookNotFound
	}
	delete(r.books, id)
	return cloneBook(b), nil
}

func (r *stubBookRepo) List(_ context.Context) ([]*domain.Book, error) {
	out := make([]*domain.Book, 0, len(r.books))
	for _, b := range r.books {
		out = append(out, cloneBook(b))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *stubBookRepo) Search(_ context.Context, query string) ([]*domain.Book, error) {
	q := strings.ToLower(query)
	var out []*domain.Book
	for _, b := range r.books {
		if strings.Contains(strings.ToLower(b.Title), q) ||
			strings.Contains(strings.ToLower(b.Author), q) ||
			strings.Contains(strings.ToLower(b.ISBN), q) {
			out = append(out, cloneBook(b))
		}
	}
	return out, nil
}

func validBook() ports.BookInput {
	return ports.BookInput{
		Title:         "The Great Gatsby",
		Author:        "F. Scott Fitzgerald",
		Rating:        4.5,
		YearPublished: 1925,
		ISBN:          "9780743273565",
	}
}

func TestBookService_Create(t *testing.T) {
	repo := newStubBookRepo()
	svc := NewBookService(repo, zerolog.Nop())

	book, err := svc.Create(context.Background(), validBook())
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if book.ID == "" || book.CreatedAt.IsZero() {
		t.Fatalf("expected id and timestamps to be set: %+v", book)
	}
}

func TestBookService_Create_MissingFields(t *testing.T) {
	svc := NewBookService(newStubBookRepo(), zerolog.Nop())
	if _, err := svc.Create(context.Background(), ports.BookInput{Title: "x"}); err != domain.ErrMissingFields {
		t.Fatalf("expected ErrMissingFields, got %v", err)
	}
}

func TestBookService_Create_DuplicateISBN(t *testing.T) {
	svc := NewBookService(newStubBookRepo(), zerolog.Nop())
	if _, err := svc.Create(context.Background(), validBook()); err != nil {
		t.Fatalf("first create failed: %v", err)
	}
	if _, err := svc.Create(context.Background(), validBook()); err != domain.ErrBookExists {
		t.Fatalf("expected ErrBookExists, got %v", err)
	}
}

func TestBookService_UpdateAndDelete(t *testing.T) {
	svc := NewBookService(newStubBookRepo(), zerolog.Nop())

	book, err := svc.Create(context.Background(), validBook())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	in := validBook()
	in.Rating = 5
	updated, err := svc.Update(context.Background(), book.ID, in)
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Rating != 5 {
		t.Fatalf("expected rating 5, got %v", updated.Rating)
	}

	if _, err := svc.Update(context.Background(), "missing", in); err != domain.ErrBookNotFound {
		t.Fatalf("expected ErrBookNotFound, got %v", err)
	}

	deleted, err := svc.Delete(context.Background(), book.ID)
	if err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if deleted.ISBN != book.ISBN {
		t.Fatalf("expected the deleted record back, got %+v", deleted)
	}
	if _, err := svc.Get(context.Background(), book.ID); err != domain.ErrBookNotFound {
		t.Fatalf("expected ErrBookNotFound after delete, got %v", err)
	}
}

func TestBookService_ListNewestFirst(t *testing.T) {
	repo := newStubBookRepo()
	svc := NewBookService(repo, zerolog.Nop())

	old := validBook()
	recent := validBook()
	recent.ISBN = "9780000000001"
	recent.Title = "Newer Book"

	first, _ := svc.Create(context.Background(), old)
	repo.books[first.ID].CreatedAt = time.Now().Add(-time.Hour)
	_, _ = svc.Create(context.Background(), recent)

	books, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(books) != 2 || books[0].Title != "Newer Book" {
		t.Fatalf("expected newest-first ordering, got %+v", books)
	}
}

func TestBookService_Search(t *testing.T) {
	svc := NewBookService(newStubBookRepo(), zerolog.Nop())
	_, _ = svc.Create(context.Background(), validBook())

	books, err := svc.Search(context.Background(), "gatsby")
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if len(books) != 1 {
		t.Fatalf("expected 1 match, got %d", len(books))
	}
}
