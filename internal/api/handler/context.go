package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/inkwell/blog-platform/internal/api/middleware"
	"github.com/inkwell/blog-platform/internal/core/domain"
)

// ctxPrincipal extracts the principal injected by the Auth middleware and
// fast-fails before any service call: a missing or empty principal means the
// middleware did not run on this route.
func ctxPrincipal(c echo.Context) (domain.Principal, error) {
	p, ok := c.Get(middleware.PrincipalKey).(*domain.Principal)
	if !ok || p == nil || p.ID == "" {
		return domain.Principal{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return *p, nil
}

// ctxOptionalPrincipal returns the principal when OptionalAuth verified one,
// nil otherwise.
func ctxOptionalPrincipal(c echo.Context) *domain.Principal {
	p, ok := c.Get(middleware.PrincipalKey).(*domain.Principal)
	if !ok {
		return nil
	}
	return p
}
