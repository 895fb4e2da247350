package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/kishorefa/Sainxt-platform-backend/internal/config"
	"github.com/kishorefa/Sainxt-platform-backend/internal/domain"
	"github.com/kishorefa/Sainxt-platform-backend/internal/http/handler"
	httpmiddleware "github.com/kishorefa/Sainxt-platform-backend/internal/http/middleware"
	"github.com/kishorefa/Sainxt-platform-backend/internal/middleware"
)

// Handlers bundles the route handlers for router construction.
type Handlers struct {
	Auth      *handler.AuthHandler
	Profile   *handler.ProfileHandler
	Content   *handler.ContentHandler
	Training  *handler.TrainingHandler
	Interview *handler.InterviewHandler
	Admin     *handler.AdminHandler
}

// NewRouter wires Gin routes and middleware.
func NewRouter(cfg config.Config, h Handlers, auth *httpmiddleware.Auth) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(httpmiddleware.RequestLogger(nil))
	r.Use(middleware.CORS(cfg))
	r.Use(otelgin.Middleware(cfg.ServiceName))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		api.POST("/create_account", h.Auth.CreateAccount)
		api.POST("/create_enterprise", h.Auth.CreateEnterprise)
		api.POST("/login", h.Auth.Login)
		api.POST("/forgot-password", h.Auth.ForgotPassword)
		api.POST("/reset-password", h.Auth.ResetPassword)
		api.GET("/me", auth.RequireSession, h.Auth.Me)

		profile := api.Group("/profile", auth.RequireSession)
		{
			profile.GET("", h.Profile.Get)
			profile.POST("/:section", h.Profile.SaveSection)
		}

		articles := api.Group("/articles")
		{
			articles.POST("", auth.RequireSession, h.Content.SubmitArticle)
			articles.GET("", h.Content.ListArticles)
			articles.GET("/:article_id", h.Content.GetArticle)
			articles.PUT("/:article_id/content", auth.RequireSession, h.Content.UpdateContent)
		}

		cards := api.Group("/cards")
		{
			cards.POST("", auth.RequireSession, h.Content.PublishCard)
			cards.GET("", h.Content.ListCards)
		}

		featured := api.Group("/featured")
		{
			featured.GET("", h.Content.ListFeatured)
			featured.POST("", auth.RequireSession, auth.RequireUserType(domain.UserTypeAdmin), h.Content.AddFeatured)
		}

		quiz := api.Group("/quiz", auth.RequireSession)
		{
			quiz.GET("/questions", h.Content.GetQuestions)
			quiz.POST("/submit", h.Content.SubmitQuiz)
		}

		training := api.Group("/training", auth.RequireSession)
		{
			training.GET("/progress", h.Training.GetProgress)
			training.POST("/progress", h.Training.SaveProgress)
		}

		interview := api.Group("/interview")
		{
			interview.POST("/generate-questions", auth.RequireSession, auth.RequireUserType(domain.UserTypeEnterprise, domain.UserTypeAdmin), h.Interview.GenerateQuestions)
			interview.GET("/jds", auth.RequireSession, auth.RequireUserType(domain.UserTypeEnterprise, domain.UserTypeAdmin), h.Interview.ListJDs)
			interview.GET("/jds/:jd_id", auth.RequireSession, auth.RequireUserType(domain.UserTypeEnterprise, domain.UserTypeAdmin), h.Interview.GetJD)
			interview.POST("/assign", auth.RequireSession, auth.RequireUserType(domain.UserTypeEnterprise, domain.UserTypeAdmin), h.Interview.Assign)

			// Candidate endpoints authenticate with mailed credentials, not
			// a session token.
			interview.POST("/verify-access", h.Interview.VerifyAccess)
			interview.POST("/submit", h.Interview.Submit)

			interview.GET("/responses", auth.RequireSession, auth.RequireUserType(domain.UserTypeEnterprise, domain.UserTypeAdmin), h.Interview.ListSubmissions)
			interview.GET("/responses/:email", auth.RequireSession, auth.RequireUserType(domain.UserTypeEnterprise, domain.UserTypeAdmin), h.Interview.GetSubmission)
			interview.GET("/scores", auth.RequireSession, auth.RequireUserType(domain.UserTypeEnterprise, domain.UserTypeAdmin), h.Interview.ScoreProfile)
			interview.GET("/review", auth.RequireSession, auth.RequireUserType(domain.UserTypeEnterprise, domain.UserTypeAdmin), h.Interview.Review)
		}

		admin := api.Group("/admin", auth.RequireSession, auth.RequireUserType(domain.UserTypeAdmin))
		{
			admin.POST("/users", h.Admin.CreateAdmin)
			admin.GET("/users", h.Admin.ListUsers)
			admin.GET("/metrics", h.Training.Metrics)
		}
	}

	return r
}
