package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kishorefa/Sainxt-platform-backend/internal/http/middleware"
	"github.com/kishorefa/Sainxt-platform-backend/internal/service"
)

// TrainingHandler exposes training progress and the dashboard metrics.
type TrainingHandler struct {
	Training *service.TrainingService
}

// SaveProgress merges the caller's watched and completed video sets.
func (h *TrainingHandler) SaveProgress(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	var req struct {
		CompletedVideos []int `json:"completedVideos"`
		WatchedVideos   []int `json:"watchedVideos"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid payload"})
		return
	}

	progress, err := h.Training.RecordProgress(c.Request.Context(), user.Email, req.CompletedVideos, req.WatchedVideos)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"completedVideos":   progress.CompletedVideos,
		"watchedVideos":     progress.WatchedVideos,
		"certificateIssued": progress.CertificateIssued,
		"certificateId":     progress.CertificateID,
	})
}

// GetProgress returns the caller's training record.
func (h *TrainingHandler) GetProgress(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	progress, err := h.Training.GetProgress(c.Request.Context(), user.Email)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"completedVideos":   progress.CompletedVideos,
		"watchedVideos":     progress.WatchedVideos,
		"certificateIssued": progress.CertificateIssued,
		"certificateId":     progress.CertificateID,
	})
}

// Metrics returns the dashboard counters.
func (h *TrainingHandler) Metrics(c *gin.Context) {
	metrics, err := h.Training.Metrics(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, metrics)
}
