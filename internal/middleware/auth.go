package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/plumeria-dev/snapfeed/backend/internal/identity"
)

// identityContextKey is where the resolved principal lives in the Echo context
const identityContextKey = "identity"

// RequireAuth verifies the bearer token and stores the principal in the
// context. Requests without a valid token are rejected with 401 carrying
// the same `{error}` body shape as every handler response.
func RequireAuth(verifier identity.Verifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id, err := resolve(c, verifier)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": err.Error()})
			}
			c.Set(identityContextKey, id)
			return next(c)
		}
	}
}

// OptionalAuth resolves the principal when a valid token is present and
// otherwise lets the request through anonymously. Used by read endpoints
// whose payload is viewer-dependent (is_liked) but publicly readable.
func OptionalAuth(verifier identity.Verifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if id, err := resolve(c, verifier); err == nil {
				c.Set(identityContextKey, id)
			}
			return next(c)
		}
	}
}

// GetIdentity returns the principal stored by the auth middleware, or nil
// for anonymous requests
func GetIdentity(c echo.Context) *identity.Identity {
	id, _ := c.Get(identityContextKey).(*identity.Identity)
	return id
}

func resolve(c echo.Context, verifier identity.Verifier) (*identity.Identity, error) {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader == "" {
		return nil, errors.New("Missing Authorization header")
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		return nil, errors.New("Authorization header must be in Bearer format")
	}

	id, err := verifier.Verify(c.Request().Context(), parts[1])
	if err != nil {
		return nil, errors.New("Invalid or expired token")
	}
	return id, nil
}
