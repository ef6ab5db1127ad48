package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"modarc/internal/application/usecase/abstraction"
	"modarc/internal/presentation"
)

// AuthMiddleware resolves the bearer token on mutating routes and stores the
// identity in the request context.
func AuthMiddleware(authorizer abstraction.Authorizer) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			header := ctx.Request().Header.Get(presentation.AuthKey)
			if header == "" {
				return ctx.String(http.StatusUnauthorized, "missing Authorization header")
			}
			if !strings.HasPrefix(header, presentation.BearerScheme) {
				return ctx.String(http.StatusUnauthorized, "missing Bearer prefix")
			}

			token := strings.TrimPrefix(header, presentation.BearerScheme)
			user, err := authorizer.Resolve(ctx.Request().Context(), token)
			if err != nil {
				return ctx.String(http.StatusUnauthorized, "invalid token")
			}

			ctx.Set(presentation.UserKey, user)

			return next(ctx)
		}
	}
}
