package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Domenick1991/rente/internal/domain"
	"github.com/Domenick1991/rente/internal/token"
)

const userContextKey = "current_user"

// Authenticate resolves the requester's identity from the access-token
// cookie or an Authorization bearer header. It never aborts: anonymous
// requests pass through with no user set, and each handler decides whether
// that is acceptable.
func Authenticate(tokens *token.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := ""
		if cookie, err := c.Cookie("access_token"); err == nil {
			raw = cookie
		}
		if header := c.GetHeader("Authorization"); strings.HasPrefix(header, "Bearer ") {
			raw = strings.TrimPrefix(header, "Bearer ")
		}
		if raw == "" {
			c.Next()
			return
		}

		claims, err := tokens.ParseAccess(raw)
		if err != nil {
			c.Next()
			return
		}

		c.Set(userContextKey, &domain.User{
			ID:       claims.UserID,
			Username: claims.Username,
			Role:     claims.Role,
		})
		c.Next()
	}
}

// RequireAuth aborts with 401 unless Authenticate resolved a user.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if currentUser(c) == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": domain.ErrUnauthenticated.Error()})
			return
		}
		c.Next()
	}
}

// currentUser returns the authenticated identity or nil. Handlers pass it
// explicitly into the services; nothing below this layer reads request state.
func currentUser(c *gin.Context) *domain.User {
	v, ok := c.Get(userContextKey)
	if !ok {
		return nil
	}
	user, ok := v.(*domain.User)
	if !ok {
		return nil
	}
	return user
}
