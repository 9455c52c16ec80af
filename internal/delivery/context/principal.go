package context

import (
	"erp/internal/domain/entity"

	"github.com/labstack/echo/v4"
)

// SetPrincipal stores the authenticated user on the request.
func SetPrincipal(c echo.Context, principal *entity.User) {
	c.Set(echoPrincipalKey, principal)
}

// GetPrincipal returns the authenticated user, or false when the request did
// not pass through the auth middleware.
func GetPrincipal(c echo.Context) (*entity.User, bool) {
	principal, ok := c.Get(echoPrincipalKey).(*entity.User)

	return principal, ok && principal != nil
}
