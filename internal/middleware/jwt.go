package middleware // declare the middleware package; contains reusable HTTP middleware functions

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/weather-mood/internal/utils"
)

// JWTAuth returns an Echo middleware that validates a Bearer access token
// and injects the token's subject (the username) into the request context
// under the "username" key.  The provided secret must match the one used
// when issuing tokens.  Every failure (missing header, bad signature,
// malformed payload, expired token) produces the same 401 response so
// clients cannot distinguish the cause.
func JWTAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "could not validate credentials"})
			}
			raw := strings.TrimPrefix(auth, "Bearer ")

			username, err := utils.ParseAccessToken(secret, raw)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "could not validate credentials"})
			}

			// Handlers look the username up in the users table; an
			// unknown subject yields the same 401 as an invalid token.
			c.Set("username", username)
			return next(c)
		}
	}
}
