package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/shelflife/shelflife/internal/entities"
)

// CookieName is the cookie the signed bearer token travels in.
const CookieName = "authToken"

// Context keys set by the access gate for downstream handlers.
const (
	ContextKeyUserID = "auth_user_id"
	ContextKeyName   = "auth_name"
	ContextKeyRole   = "auth_role"
)

// Middleware is the access gate. Every protected route passes through
// RequireAuth; admin-only routes additionally pass through RequireAdmin.
type Middleware struct {
	secret string
}

// NewMiddleware creates the access gate with the token signing secret.
func NewMiddleware(secret string) *Middleware {
	return &Middleware{secret: secret}
}

// RequireAuth verifies the bearer token from the auth cookie or the
// Authorization header and stores the verified identity on the context.
func (m *Middleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Access denied. No token provided."})
			return
		}

		claims, err := ParseToken(token, m.secret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Invalid token"})
			return
		}

		c.Set(ContextKeyUserID, claims.UserID)
		c.Set(ContextKeyName, claims.Name)
		c.Set(ContextKeyRole, claims.Role)
		c.Next()
	}
}

// RequireAdmin rejects callers whose verified role claim is not admin.
// Must run after RequireAuth.
func (m *Middleware) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if GetRole(c) != entities.UserRoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "Access denied. Not an admin."})
			return
		}
		c.Next()
	}
}

// GetUserID returns the authenticated user's ID, or 0 when unset.
func GetUserID(c *gin.Context) uint {
	if v, ok := c.Get(ContextKeyUserID); ok {
		if id, ok := v.(uint); ok {
			return id
		}
	}
	return 0
}

// GetRole returns the authenticated user's role claim.
func GetRole(c *gin.Context) entities.UserRole {
	if v, ok := c.Get(ContextKeyRole); ok {
		if role, ok := v.(entities.UserRole); ok {
			return role
		}
	}
	return ""
}

func extractToken(c *gin.Context) string {
	if cookie, err := c.Cookie(CookieName); err == nil && cookie != "" {
		return cookie
	}
	header := c.GetHeader("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}
	return parts[1]
}
