package service

import "github.com/kishorefa/Sainxt-platform-backend/internal/domain"

// LoginResult bundles a session token with the profile data the frontend
// renders after sign-in.
type LoginResult struct {
	Token string        `json:"token"`
	User  UserViewModel `json:"user"`
}

// UserViewModel represents lightweight account data returned to clients.
type UserViewModel struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	UserType  string `json:"userType"`
}

// CreateAccountInput carries the signup form for individual accounts.
type CreateAccountInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
	Phone     string
}

// CreateEnterpriseInput carries the signup form for enterprise accounts.
type CreateEnterpriseInput struct {
	CompanyName   string
	ContactPerson string
	JobTitle      string
	Email         string
	Password      string
	Phone         string
	Industry      string
	CompanySize   string
	Address       string
	Website       string
}

// QuizResult is the graded outcome of an MCQ attempt.
type QuizResult struct {
	Total    int     `json:"total"`
	Correct  int     `json:"correct"`
	ScorePct float64 `json:"score_pct"`
}

// CandidateReview is the AI evaluation bundle for one candidate. Available is
// false when the model could not be reached; score fields are then zero.
type CandidateReview struct {
	Available bool                   `json:"available"`
	Scores    domain.ProfileScores   `json:"scores"`
	Review    domain.InterviewReview `json:"review"`
}
