package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/kishorefa/Sainxt-platform-backend/internal/domain"
	"github.com/kishorefa/Sainxt-platform-backend/internal/http/middleware"
	"github.com/kishorefa/Sainxt-platform-backend/internal/service"
)

// InterviewHandler exposes the JD interview pipeline.
type InterviewHandler struct {
	Interviews *service.InterviewService
}

// GenerateQuestions turns a job description into stored interview questions.
func (h *InterviewHandler) GenerateQuestions(c *gin.Context) {
	var req struct {
		JobDescription string `json:"job_description"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid payload"})
		return
	}
	if strings.TrimSpace(req.JobDescription) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Job description is required"})
		return
	}

	jd, err := h.Interviews.GenerateQuestions(c.Request.Context(), req.JobDescription)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"jd_id":     jd.ID.Hex(),
		"questions": jd.Questions,
	})
}

// ListJDs returns stored job descriptions.
func (h *InterviewHandler) ListJDs(c *gin.Context) {
	jds, err := h.Interviews.ListJDs(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	out := make([]gin.H, 0, len(jds))
	for _, jd := range jds {
		out = append(out, gin.H{"id": jd.ID.Hex(), "job_description": jd.Text})
	}
	c.JSON(http.StatusOK, gin.H{"job_descriptions": out})
}

// GetJD returns one stored job description with its questions.
func (h *InterviewHandler) GetJD(c *gin.Context) {
	id, err := bson.ObjectIDFromHex(c.Param("jd_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
		return
	}

	jd, err := h.Interviews.GetJD(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"id":              jd.ID.Hex(),
		"job_description": jd.Text,
		"questions":       jd.Questions,
	})
}

// Assign invites a candidate to a stored JD's interview. The assigning
// account comes from the session.
func (h *InterviewHandler) Assign(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	var req struct {
		JDID           string `json:"jd_id"`
		CandidateEmail string `json:"candidate_email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid payload"})
		return
	}
	id, err := bson.ObjectIDFromHex(strings.TrimSpace(req.JDID))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid jd_id"})
		return
	}
	if strings.TrimSpace(req.CandidateEmail) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Candidate email is required"})
		return
	}

	assignment, err := h.Interviews.AssignInterview(c.Request.Context(), id, user.Email, req.CandidateEmail)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message":       "Interview assigned",
		"assignment_id": assignment.ID.Hex(),
	})
}

// VerifyAccess checks candidate credentials and returns the interview
// questions on success.
func (h *InterviewHandler) VerifyAccess(c *gin.Context) {
	var req struct {
		AssignmentID string `json:"assignment_id"`
		Username     string `json:"username"`
		Password     string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid payload"})
		return
	}
	id, err := bson.ObjectIDFromHex(strings.TrimSpace(req.AssignmentID))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid assignment_id"})
		return
	}

	assignment, err := h.Interviews.VerifyAccess(c.Request.Context(), id, req.Username, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"job_description": assignment.JobDescription,
		"questions":       assignment.Questions,
	})
}

// Submit stores a completed interview.
func (h *InterviewHandler) Submit(c *gin.Context) {
	var req struct {
		Username         string                   `json:"username"`
		CandidateEmail   string                   `json:"candidate_email"`
		JobDescriptionID string                   `json:"job_description_id"`
		JobDescription   string                   `json:"job_description"`
		Responses        []domain.InterviewAnswer `json:"responses"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid payload"})
		return
	}

	err := h.Interviews.SubmitResponses(c.Request.Context(), domain.InterviewResponse{
		Username:         req.Username,
		CandidateEmail:   req.CandidateEmail,
		JobDescriptionID: req.JobDescriptionID,
		JobDescription:   req.JobDescription,
		Responses:        req.Responses,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Responses submitted"})
}

// ListSubmissions returns the emails of candidates with a submitted
// interview.
func (h *InterviewHandler) ListSubmissions(c *gin.Context) {
	emails, err := h.Interviews.ListSubmittedCandidates(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"emails": emails})
}

// GetSubmission returns one candidate's raw interview transcript.
func (h *InterviewHandler) GetSubmission(c *gin.Context) {
	email := strings.TrimSpace(c.Param("email"))
	if email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email is required"})
		return
	}

	submission, err := h.Interviews.GetSubmission(c.Request.Context(), email)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"candidate_email": submission.CandidateEmail,
		"job_description": submission.JobDescription,
		"responses":       submission.Responses,
		"submitted_at":    submission.SubmittedAt,
	})
}

// ScoreProfile returns the AI profile score for a candidate, with or without
// an interview submission.
func (h *InterviewHandler) ScoreProfile(c *gin.Context) {
	email := strings.TrimSpace(c.Query("email"))
	if email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email is required"})
		return
	}

	scores, err := h.Interviews.ScoreProfile(c.Request.Context(), email)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, scores)
}

// Review returns the AI evaluation for a candidate.
func (h *InterviewHandler) Review(c *gin.Context) {
	email := strings.TrimSpace(c.Query("email"))
	if email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email is required"})
		return
	}

	review, err := h.Interviews.ReviewCandidate(c.Request.Context(), email)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, review)
}
