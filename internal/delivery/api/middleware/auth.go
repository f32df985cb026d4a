package middleware

import (
	"strings"

	"storerate/internal/domain/entity"
	domainerrors "storerate/internal/domain/errors"
	"storerate/internal/domain/service"

	"github.com/labstack/echo/v4"
)

// Context keys for the authenticated identity. Both values come only from
// the verified token; nothing in a request body can influence them.
const (
	ContextKeyUserID = "userID"
	ContextKeyRole   = "role"
)

// AuthMiddleware provides middleware for JWT authentication and authorization.
type AuthMiddleware struct {
	tokenSvc service.TokenService
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(tokenSvc service.TokenService) *AuthMiddleware {
	return &AuthMiddleware{tokenSvc: tokenSvc}
}

// Authenticate validates the bearer token and attaches the caller's
// identity to the echo context. Missing, malformed, tampered and expired
// tokens all produce the same 401 response.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims, err := m.verifyRequest(c)
		if err != nil {
			return err
		}

		c.Set(ContextKeyUserID, claims.UserID)
		c.Set(ContextKeyRole, claims.Role)

		return next(c)
	}
}

// AuthenticateOptional attaches the identity when a valid token is present
// and lets anonymous requests through. Used for public listings that show
// the caller's own rating when known.
func (m *AuthMiddleware) AuthenticateOptional(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if c.Request().Header.Get(echo.HeaderAuthorization) == "" {
			return next(c)
		}

		claims, err := m.verifyRequest(c)
		if err != nil {
			// A presented-but-invalid token is rejected, not downgraded
			// to anonymous.
			return err
		}

		c.Set(ContextKeyUserID, claims.UserID)
		c.Set(ContextKeyRole, claims.Role)

		return next(c)
	}
}

// RequireRole is a middleware factory that checks the authenticated role.
// It must be used AFTER the Authenticate middleware.
func (m *AuthMiddleware) RequireRole(roles ...entity.Role) echo.MiddlewareFunc {
	allowed := entity.Roles(roles)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, ok := c.Get(ContextKeyRole).(entity.Role)
			if !ok {
				return domainerrors.ErrForbidden
			}

			if !allowed.Contains(role) {
				return domainerrors.ErrForbidden
			}

			return next(c)
		}
	}
}

func (m *AuthMiddleware) verifyRequest(c echo.Context) (*service.Claims, error) {
	authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
	if authHeader == "" {
		return nil, domainerrors.ErrUnauthenticated
	}

	tokenString := strings.TrimPrefix(authHeader, "Bearer ")
	if tokenString == authHeader {
		return nil, domainerrors.ErrUnauthenticated
	}

	claims, err := m.tokenSvc.Verify(tokenString)
	if err != nil {
		return nil, domainerrors.ErrUnauthenticated
	}

	return claims, nil
}

// GetUserID returns the authenticated user's ID, or 0 for anonymous requests.
func GetUserID(c echo.Context) int64 {
	if userID, ok := c.Get(ContextKeyUserID).(int64); ok {
		return userID
	}

	return 0
}

// GetRole returns the authenticated role, or the empty role for anonymous requests.
func GetRole(c echo.Context) entity.Role {
	if role, ok := c.Get(ContextKeyRole).(entity.Role); ok {
		return role
	}

	return ""
}
