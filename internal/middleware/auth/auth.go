package auth

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/akorchagin/product-catalog/internal/models"
	"github.com/akorchagin/product-catalog/internal/tokens"
)

const identityKey = "identity"

// Identity is the decoded token payload RequireAuth attaches to the
// request context.
type Identity struct {
	UserID   uint
	Username string
	Role     models.Role
}

type Gate struct {
	JWTSecret []byte
}

func NewGate(secret []byte) *Gate {
	return &Gate{JWTSecret: secret}
}

// RequireAuth extracts and verifies the bearer token. It is stateless:
// the token alone proves identity, there is no user-store lookup.
func (g *Gate) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		header := c.Request().Header.Get(echo.HeaderAuthorization)
		tokenStr, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || tokenStr == "" {
			return echo.NewHTTPError(http.StatusUnauthorized, "access denied: no token provided")
		}

		claims, err := tokens.Parse(tokenStr, g.JWTSecret)
		if err != nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
		}

		c.Set(identityKey, Identity{
			UserID:   claims.UserID,
			Username: claims.Username,
			Role:     claims.Role,
		})
		return next(c)
	}
}

// RequireRoles gates on the identity set by RequireAuth and must be
// composed after it.
func (g *Gate) RequireRoles(roles ...models.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id, ok := IdentityFrom(c)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "access denied: no token provided")
			}
			for _, r := range roles {
				if id.Role == r {
					return next(c)
				}
			}
			return echo.NewHTTPError(http.StatusForbidden, "access denied: insufficient permissions")
		}
	}
}

func IdentityFrom(c echo.Context) (Identity, bool) {
	id, ok := c.Get(identityKey).(Identity)
	return id, ok
}
