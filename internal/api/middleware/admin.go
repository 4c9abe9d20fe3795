package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/inkwell/blog-platform/internal/core/authz"
	"github.com/inkwell/blog-platform/internal/core/domain"
)

// RequireAdmin guards admin-only routes. Must run after Auth; the decision
// itself comes from the policy evaluator.
func RequireAdmin(resource string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			principal, ok := c.Get(PrincipalKey).(*domain.Principal)
			if !ok || principal == nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
			}

			decision := authz.Evaluate(*principal, authz.Action{
				ResourceKind:  resource,
				RequiresAdmin: true,
			})
			if !decision.Allowed {
				return c.JSON(http.StatusForbidden, map[string]string{"error": decision.Reason})
			}
			return next(c)
		}
	}
}
