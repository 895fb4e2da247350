package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kishorefa/Sainxt-platform-backend/internal/domain"
)

// respondError maps domain sentinels to HTTP status codes. Anything
// unrecognized becomes a 500 without leaking the underlying error.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrDuplicateAccount):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email already registered"})
	case errors.Is(err, domain.ErrBadCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
	case errors.Is(err, domain.ErrUserTypeMismatch):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Account type does not match"})
	case errors.Is(err, domain.ErrTokenExpired):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Token has expired"})
	case errors.Is(err, domain.ErrTokenMalformed):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid token"})
	case errors.Is(err, domain.ErrUnknownAccount):
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	case errors.Is(err, domain.ErrNotificationFailed):
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not send email"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
