package handler

import (
	"encoding/base64"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kishorefa/Sainxt-platform-backend/internal/domain"
	"github.com/kishorefa/Sainxt-platform-backend/internal/service"
)

const maxCardImageBytes = 5 << 20

// ContentHandler exposes articles, landing-page cards, and the quiz bank.
type ContentHandler struct {
	Content *service.ContentService
}

// SubmitArticle stores or replaces an editorial draft.
func (h *ContentHandler) SubmitArticle(c *gin.Context) {
	var req struct {
		ArticleID string `json:"article_id"`
		Title     string `json:"title"`
		Content   string `json:"content"`
		Status    string `json:"status"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid payload"})
		return
	}

	id, err := h.Content.SubmitArticle(c.Request.Context(), domain.Article{
		ArticleID: strings.TrimSpace(req.ArticleID),
		Title:     req.Title,
		Content:   req.Content,
		Status:    req.Status,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Article saved", "article_id": id})
}

// UpdateContent replaces an existing draft's body.
func (h *ContentHandler) UpdateContent(c *gin.Context) {
	var req struct {
		Content string `json:"content"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid payload"})
		return
	}

	articleID := c.Param("article_id")
	if err := h.Content.UpdateArticleContent(c.Request.Context(), articleID, req.Content); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Article updated"})
}

// GetArticle returns one draft.
func (h *ContentHandler) GetArticle(c *gin.Context) {
	article, err := h.Content.GetArticle(c.Request.Context(), c.Param("article_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, article)
}

// ListArticles returns every stored draft.
func (h *ContentHandler) ListArticles(c *gin.Context) {
	articles, err := h.Content.ListArticles(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"articles": articles})
}

// PublishCard accepts a multipart form with card metadata and a cover image.
func (h *ContentHandler) PublishCard(c *gin.Context) {
	file, header, err := c.Request.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Image file is required"})
		return
	}
	defer file.Close()

	image, err := io.ReadAll(io.LimitReader(file, maxCardImageBytes+1))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Could not read image"})
		return
	}
	if len(image) > maxCardImageBytes {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Image too large"})
		return
	}

	card := domain.ArticleCard{
		ArticleID:   strings.TrimSpace(c.PostForm("article_id")),
		Category:    c.PostForm("category"),
		Title:       c.PostForm("title"),
		Description: c.PostForm("description"),
		Image:       image,
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
	}
	if err := h.Content.PublishCard(c.Request.Context(), card); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Card published", "article_id": card.ArticleID})
}

// ListCards returns published cards with images encoded for the frontend.
func (h *ContentHandler) ListCards(c *gin.Context) {
	cards, err := h.Content.ListCards(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	out := make([]gin.H, 0, len(cards))
	for _, card := range cards {
		out = append(out, gin.H{
			"id":           card.ID.Hex(),
			"article_id":   card.ArticleID,
			"category":     card.Category,
			"title":        card.Title,
			"description":  card.Description,
			"image_base64": base64.StdEncoding.EncodeToString(card.Image),
			"filename":     card.Filename,
			"content_type": card.ContentType,
		})
	}
	c.JSON(http.StatusOK, gin.H{"cards": out})
}

// AddFeatured stores an admin-curated landing-page card.
func (h *ContentHandler) AddFeatured(c *gin.Context) {
	var req struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		ImageBase64 string `json:"image_base64"`
		Filename    string `json:"image_filename"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid payload"})
		return
	}
	if strings.TrimSpace(req.Title) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Title is required"})
		return
	}

	now := time.Now().UTC()
	id, err := h.Content.AddFeatured(c.Request.Context(), domain.FeaturedCard{
		Title:       req.Title,
		Description: req.Description,
		ImageBase64: req.ImageBase64,
		Filename:    req.Filename,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Featured card added", "id": id})
}

// ListFeatured returns the curated landing-page cards.
func (h *ContentHandler) ListFeatured(c *gin.Context) {
	cards, err := h.Content.ListFeatured(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"cards": cards})
}

// GetQuestions draws random quiz questions. Answer keys are stripped before
// the questions leave the server.
func (h *ContentHandler) GetQuestions(c *gin.Context) {
	count, _ := strconv.Atoi(c.DefaultQuery("count", "10"))
	questions, err := h.Content.DrawQuestions(c.Request.Context(), c.Query("category"), count)
	if err != nil {
		respondError(c, err)
		return
	}

	out := make([]gin.H, 0, len(questions))
	for _, q := range questions {
		out = append(out, gin.H{
			"category": q.Category,
			"question": q.Question,
			"options":  q.Options,
		})
	}
	c.JSON(http.StatusOK, gin.H{"questions": out})
}

// SubmitQuiz grades a quiz attempt.
func (h *ContentHandler) SubmitQuiz(c *gin.Context) {
	var req struct {
		Answers map[string]string `json:"answers"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid payload"})
		return
	}
	if len(req.Answers) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Answers are required"})
		return
	}

	result, err := h.Content.GradeQuiz(c.Request.Context(), req.Answers)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
