package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/bookmanager/catalog-api/internal/api/middleware"
)

// ctxUserID extracts the verified user id injected by the Auth middleware,
// fast-failing when a handler was somehow reached without it.
func ctxUserID(c echo.Context) (string, error) {
	id, _ := c.Get(middleware.CtxUserID).(string)
	if id == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return id, nil
}
