package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/kishorefa/Sainxt-platform-backend/internal/domain"
	"github.com/kishorefa/Sainxt-platform-backend/internal/repository"
	"github.com/kishorefa/Sainxt-platform-backend/internal/token"
)

const currentUserKey = "currentUser"

// Auth validates the Authorization header and attaches the resolved account.
type Auth struct {
	Codec *token.Codec
	Users repository.UserRepository
}

// RequireSession ensures the request carries a valid session token whose
// account still exists. Token failures map to 401; a deleted account behind a
// valid token maps to 404.
func (m *Auth) RequireSession(c *gin.Context) {
	header := c.GetHeader("Authorization")
	if header == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
		return
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Bearer token required"})
		return
	}

	claims, err := m.Codec.DecodeSession(parts[1])
	if err != nil {
		if errors.Is(err, domain.ErrTokenExpired) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Token has expired"})
			return
		}
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
		return
	}

	user, err := m.Users.FindByEmail(c.Request.Context(), claims.Email)
	if err != nil {
		if errors.Is(err, domain.ErrUnknownAccount) {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Could not load user"})
		return
	}

	c.Set(currentUserKey, user)
	c.Next()
}

// RequireUserType layers an account-type check on top of RequireSession.
func (m *Auth) RequireUserType(types ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			return
		}
		for _, t := range types {
			if user.UserType == t {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
	}
}

// CurrentUser returns the account resolved by RequireSession.
func CurrentUser(c *gin.Context) (domain.User, bool) {
	value, ok := c.Get(currentUserKey)
	if !ok {
		return domain.User{}, false
	}
	user, ok := value.(domain.User)
	return user, ok
}
