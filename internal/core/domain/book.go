package domain

import (
	"errors"
	"time"
)

var (
	ErrBookNotFound = errors.New("book not found")
	ErrBookExists   = errors.New("a book with this ISBN already exists")
)

// Book is the catalog aggregate. ISBN is globally unique.
type Book struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Author        string    `json:"author"`
	Published     bool      `json:"published"`
	Rating        float64   `json:"rating"`
	YearPublished int       `json:"yearPublished"`
	ISBN          string    `json:"isbn"`
	Content       string    `json:"content,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}
