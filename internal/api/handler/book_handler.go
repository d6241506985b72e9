package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/bookmanager/catalog-api/internal/core/ports"
)

// BookHandler handles catalog CRUD and search. Reads are public; the router
// wraps mutations in Auth plus an admin role check.
type BookHandler struct {
	service ports.BookService
}

func NewBookHandler(service ports.BookService) *BookHandler {
	return &BookHandler{service: service}
}

type bookRequest struct {
	Title         string  `json:"title"         validate:"required"`
	Author        string  `json:"author"        validate:"required"`
	Published     bool    `json:"published"`
	Rating        float64 `json:"rating"        validate:"gte=0,lte=5"`
	YearPublished int     `json:"yearPublished" validate:"required"`
	ISBN          string  `json:"isbn"          validate:"required"`
	Content       string  `json:"content"`
}

func (r bookRequest) toInput() ports.BookInput {
	return ports.BookInput{
		Title:         r.Title,
		Author:        r.Author,
		Published:     r.Published,
		Rating:        r.Rating,
		YearPublished: r.YearPublished,
		ISBN:          r.ISBN,
		Content:       r.Content,
	}
}

// List returns all books, newest first.
//
// @Summary      List all books
// @Tags         books
// @Produce      json
// @Success      200  {object}  listResponse
// @Router       /api/books [get]
func (h *BookHandler) List(c echo.Context) error {
	books, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, listResponse{Success: true, Count: len(books), Data: books})
}

// Get returns a single book by id.
//
// @Summary      Get a book
// @Tags         books
// @Produce      json
// @Param        id   path      string  true  "Book id"
// @Success      200  {object}  response
// @Failure      404  {object}  response
// @Router       /api/books/{id} [get]
func (h *BookHandler) Get(c echo.Context) error {
	book, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, response{Success: true, Data: book})
}

// Create adds a book to the catalog. Admin only.
//
// @Summary      Create a book
// @Tags         books
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      bookRequest  true  "Book details"
// @Success      201   {object}  response
// @Failure      400   {object}  response
// @Failure      401   {object}  response
// @Failure      403   {object}  response
// @Router       /api/books [post]
func (h *BookHandler) Create(c echo.Context) error {
	var req bookRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Please provide title, author, yearPublished, and isbn")
	}

	book, err := h.service.Create(c.Request().Context(), req.toInput())
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, response{Success: true, Message: "Book created successfully!", Data: book})
}

// Update replaces a book's fields. Admin only.
//
// @Summary      Update a book
// @Tags         books
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string       true  "Book id"
// @Param        body  body      bookRequest  true  "Book details"
// @Success      200   {object}  response
// @Failure      400   {object}  response
// @Failure      401   {object}  response
// @Failure      403   {object}  response
// @Failure      404   {object}  response
// @Router       /api/books/{id} [put]
func (h *BookHandler) Update(c echo.Context) error {
	var req bookRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Please provide title, author, yearPublished, and isbn")
	}

	book, err := h.service.Update(c.Request().Context(), c.Param("id"), req.toInput())
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, response{Success: true, Message: "Book updated successfully!", Data: book})
}

// Delete removes a book and returns the deleted record. Admin only.
//
// @Summary      Delete a book
// @Tags         books
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Book id"
// @Success      200  {object}  response
// @Failure      401  {object}  response
// @Failure      403  {object}  response
// @Failure      404  {object}  response
// @Router       /api/books/{id} [delete]
func (h *BookHandler) Delete(c echo.Context) error {
	book, err := h.service.Delete(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, response{Success: true, Message: "Book deleted successfully!", Data: book})
}

// Search matches the query case-insensitively against title, author, or ISBN.
//
// @Summary      Search books
// @Tags         books
// @Produce      json
// @Param        query  path      string  true  "Search text"
// @Success      200    {object}  listResponse
// @Router       /api/books/search/{query} [get]
func (h *BookHandler) Search(c echo.Context) error {
	books, err := h.service.Search(c.Request().Context(), c.Param("query"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, listResponse{Success: true, Count: len(books), Data: books})
}
