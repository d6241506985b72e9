package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// RequireRole gates a route to the given roles. It runs strictly after Auth:
// the role is read from the context claims that Auth attached. Rejections use
// the route-specific message so the client knows which operation was denied.
func RequireRole(message string, allowed ...string) echo.MiddlewareFunc {
	roles := make(map[string]struct{}, len(allowed))
	for _, r := range allowed {
		roles[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get(CtxRole).(string)
			if _, ok := roles[role]; !ok {
				return echo.NewHTTPError(http.StatusForbidden, message)
			}
			return next(c)
		}
	}
}
