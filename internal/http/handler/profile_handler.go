package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kishorefa/Sainxt-platform-backend/internal/http/middleware"
	"github.com/kishorefa/Sainxt-platform-backend/internal/service"
)

// ProfileHandler exposes the resume wizard. Every endpoint resolves the
// target profile from the session, never from the payload.
type ProfileHandler struct {
	Profiles *service.ProfileService
}

// SaveSection merges one wizard step into the caller's profile.
func (h *ProfileHandler) SaveSection(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	var fields map[string]any
	if err := c.ShouldBindJSON(&fields); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid payload"})
		return
	}

	section := c.Param("section")
	if err := h.Profiles.SaveSection(c.Request.Context(), user.Email, section, fields); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Profile section saved"})
}

// Get returns the caller's profile document.
func (h *ProfileHandler) Get(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	profile, err := h.Profiles.Get(c.Request.Context(), user.Email)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}
