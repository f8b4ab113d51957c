package middleware

import (
	"fmt"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/aprovame/integrations-api/internal/api/handler"
	"github.com/aprovame/integrations-api/internal/core/domain"
	"github.com/aprovame/integrations-api/internal/core/ports"
)

// Auth validates the bearer token and injects its claims into the context
// under the handler.Ctx* keys.
func Auth(verifier ports.TokenVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			if authHeader == "" {
				return fmt.Errorf("missing authorization header: %w", domain.ErrUnauthorized)
			}

			scheme, raw, ok := strings.Cut(authHeader, " ")
			raw = strings.TrimSpace(raw)
			if !ok || !strings.EqualFold(scheme, "bearer") || raw == "" {
				return fmt.Errorf("invalid authorization header: %w", domain.ErrUnauthorized)
			}

			claims, err := verifier.Verify(raw)
			if err != nil {
				return err
			}

			c.Set(handler.CtxUserID, claims.Subject)
			c.Set(handler.CtxLogin, claims.Login)
			c.Set(handler.CtxRole, claims.Role)

			return next(c)
		}
	}
}
