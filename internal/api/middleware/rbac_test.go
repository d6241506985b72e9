package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/bookmanager/catalog-api/internal/core/domain"
)

func TestRequireRole_AllowsAdmin(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/books", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(CtxRole, domain.RoleAdmin)

	called := false
	mw := RequireRole("Only admins can add books", domain.RoleAdmin)
	err := mw(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusCreated)
	})(c)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !called {
		t.Fatal("expected next handler to run for admin")
	}
}

func TestRequireRole_ForbidsOthers(t *testing.T) {
	cases := []struct {
		name string
		role any
	}{
		{"regular user", domain.RoleUser},
		{"missing role", nil},
		{"non-string role", 42},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodDelete, "/api/books/1", nil)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)
			if tc.role != nil {
				c.Set(CtxRole, tc.role)
			}

			mw := RequireRole("Only admins can delete books", domain.RoleAdmin)
			err := mw(func(c echo.Context) error {
				t.Fatal("next handler must not run")
				return nil
			})(c)
			if err == nil {
				t.Fatal("expected an error")
			}
			e.HTTPErrorHandler(err, c)
			if rec.Code != http.StatusForbidden {
				t.Fatalf("expected 403, got %d", rec.Code)
			}
			if !strings.Contains(rec.Body.String(), "Only admins can delete books") {
				t.Fatalf("expected route message in body, got %s", rec.Body.String())
			}
		})
	}
}
