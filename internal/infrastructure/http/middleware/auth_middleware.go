package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/johnquangdev/meeting-notes/pkg/jwt"
)

const (
	// SubjectContextKey is the Echo context key for the token subject
	SubjectContextKey = "subject"

	// NameContextKey is the Echo context key for the caller's display name
	NameContextKey = "subject_name"
)

// EchoAuth returns an Echo middleware that validates bearer tokens and
// sets the caller's subject into the request context
func EchoAuth(manager *jwt.Manager) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := extractToken(c)
			if token == "" {
				return c.JSON(http.StatusUnauthorized, map[string]interface{}{
					"error":   "unauthorized",
					"message": "missing authorization token",
				})
			}

			claims, err := manager.Validate(token)
			if err != nil {
				message := "invalid token"
				if errors.Is(err, jwt.ErrTokenExpired) {
					message = "token expired"
				}
				return c.JSON(http.StatusUnauthorized, map[string]interface{}{
					"error":   "unauthorized",
					"message": message,
				})
			}

			c.Set(SubjectContextKey, claims.Subject)
			c.Set(NameContextKey, claims.Name)
			return next(c)
		}
	}
}

// extractToken reads the bearer token from the Authorization header,
// falling back to the access_token cookie
func extractToken(c echo.Context) string {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && strings.ToLower(parts[0]) == "bearer" {
			return strings.TrimSpace(parts[1])
		}
	}

	if cookie, err := c.Cookie("access_token"); err == nil {
		return cookie.Value
	}

	return ""
}
