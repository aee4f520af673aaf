package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/talenthub/jobboard-api/internal/core/domain"
	"github.com/talenthub/jobboard-api/internal/core/ports"
)

// ctxPrincipal extracts the principal injected by the Auth middleware and
// performs a fast-fail check before any service call: both the user id and
// the role must be present (presence proves the middleware ran).
func ctxPrincipal(c echo.Context) (ports.Principal, error) {
	userID, _ := c.Get("user_id").(string)
	role, _ := c.Get("role").(string)
	if userID == "" || role == "" {
		return ports.Principal{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return ports.Principal{ID: userID, Role: domain.Role(role)}, nil
}

// intQuery parses an integer query parameter, returning 0 when absent or
// malformed. Services apply their own defaults and caps.
func intQuery(c echo.Context, name string) (int, bool) {
	raw := c.QueryParam(name)
	if raw == "" {
		return 0, false
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return n, true
}
