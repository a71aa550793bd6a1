package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/kiranraj/fundsphere/internal/pkg/apperrors"
	"github.com/kiranraj/fundsphere/internal/pkg/auth"
)

// SessionCookieName is the cookie that carries the panel session token.
const SessionCookieName = "fund_session"

// roleContextKey is where the authenticated role is stored on the gin context.
const roleContextKey = "sessionRole"

// SessionAuth validates the panel session and stores the authenticated role
// on the context. The token is read from the session cookie, with an
// Authorization bearer header accepted as a fallback for non-browser clients.
func SessionAuth(sessions *auth.SessionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			HandleAPIError(c, apperrors.ErrUnauthorized)
			c.Abort()
			return
		}

		claims, err := sessions.ValidateToken(token)
		if err != nil {
			switch {
			case errors.Is(err, auth.ErrExpiredToken):
				HandleAPIError(c, apperrors.ErrTokenExpired)
			default:
				HandleAPIError(c, apperrors.ErrTokenInvalid)
			}
			c.Abort()
			return
		}

		c.Set(roleContextKey, auth.Role(claims.Role))
		c.Next()
	}
}

// OptionalSession stores the role of a valid session token but lets the
// request through either way. For endpoints that report session state
// rather than require one.
func OptionalSession(sessions *auth.SessionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token := extractToken(c); token != "" {
			if claims, err := sessions.ValidateToken(token); err == nil {
				c.Set(roleContextKey, auth.Role(claims.Role))
			}
		}
		c.Next()
	}
}

// RoleRequired allows the request through only when the session role is one
// of the given roles. Developer sessions pass admin checks as well.
func RoleRequired(roles ...auth.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, ok := SessionRole(c)
		if !ok {
			HandleAPIError(c, apperrors.ErrUnauthorized)
			c.Abort()
			return
		}

		for _, allowed := range roles {
			if role == allowed || (role == auth.RoleDeveloper && allowed == auth.RoleAdmin) {
				c.Next()
				return
			}
		}

		HandleAPIError(c, apperrors.ErrPermissionDenied)
		c.Abort()
	}
}

// SessionRole returns the authenticated role stored by SessionAuth.
func SessionRole(c *gin.Context) (auth.Role, bool) {
	value, exists := c.Get(roleContextKey)
	if !exists {
		return "", false
	}
	role, ok := value.(auth.Role)
	return role, ok
}

func extractToken(c *gin.Context) string {
	if cookie, err := c.Cookie(SessionCookieName); err == nil && cookie != "" {
		return cookie
	}
	header := c.GetHeader("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return ""
}
