package middleware

import (
	"net/http"
	"strings"

	"marketplace-service/internal/model"
	"marketplace-service/pkg/jwtutil"
	"marketplace-service/pkg/logger"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const identityKey = "identity"

// Identity is the resolved caller: user id plus a closed Role value. The
// role name string from the token is parsed exactly once here, so handlers
// and services never compare role names.
type Identity struct {
	UserID uint
	Email  string
	Role   model.Role
}

// JWTAuthMiddleware validates the bearer token and resolves the caller's
// identity into the request context.
func JWTAuthMiddleware(jwtUtil *jwtutil.JWTUtil) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			log := logger.FromEcho(c)

			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				log.Warn("Missing authorization header")
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing authorization header"})
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				log.Warn("Invalid authorization header format")
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid authorization header format"})
			}

			claims, err := jwtUtil.ValidateToken(parts[1])
			if err != nil {
				log.Warn("Invalid or expired token", zap.Error(err))
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid or expired token"})
			}

			role, err := model.ParseRole(claims.Role)
			if err != nil {
				log.Warn("Token carries unknown role", zap.String("role", claims.Role))
				return c.JSON(http.StatusForbidden, echo.Map{"error": "unknown role"})
			}

			c.Set(identityKey, &Identity{
				UserID: claims.UserID,
				Email:  claims.Email,
				Role:   role,
			})
			log.Debug("JWT token validated",
				zap.Uint("user_id", claims.UserID),
				zap.String("role", claims.Role))

			return next(c)
		}
	}
}

// CurrentIdentity returns the resolved caller identity, or nil outside an
// authenticated route.
func CurrentIdentity(c echo.Context) *Identity {
	identity, ok := c.Get(identityKey).(*Identity)
	if !ok {
		return nil
	}
	return identity
}

// RequireRole rejects callers whose role is not in the allowed set.
func RequireRole(roles ...model.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			identity := CurrentIdentity(c)
			if identity == nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
			}
			for _, role := range roles {
				if identity.Role == role {
					return next(c)
				}
			}
			return c.JSON(http.StatusForbidden, echo.Map{"error": "insufficient role"})
		}
	}
}
