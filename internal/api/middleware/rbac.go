package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/aprovame/integrations-api/internal/api/handler"
	"github.com/aprovame/integrations-api/internal/core/domain"
)

// RBAC lets the request through only when the role set by Auth is in
// allowedRoles. An empty list admits any authenticated caller.
func RBAC(allowedRoles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get(handler.CtxRole).(string)
			if role == "" {
				return domain.ErrUnauthorized
			}
			if len(allowed) == 0 {
				return next(c)
			}
			if _, ok := allowed[role]; !ok {
				return domain.ErrForbidden
			}
			return next(c)
		}
	}
}

// Guard composes Auth and RBAC in that order.
func Guard(auth echo.MiddlewareFunc, roles ...string) []echo.MiddlewareFunc {
	return []echo.MiddlewareFunc{auth, RBAC(roles...)}
}
