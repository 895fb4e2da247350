package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/kishorefa/Sainxt-platform-backend/internal/domain"
)

// UserRepository exposes persistence for platform accounts. Missing records
// surface as domain.ErrUnknownAccount; unique-index violations on insert
// surface as domain.ErrDuplicateAccount.
type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (domain.User, error)
	FindByID(ctx context.Context, id bson.ObjectID) (domain.User, error)
	Insert(ctx context.Context, user domain.User) (bson.ObjectID, error)
	UpdatePasswordHash(ctx context.Context, email, hash string) error
	List(ctx context.Context) ([]domain.User, error)
	Count(ctx context.Context, userType string) (int64, error)
}

// EnterpriseRepository stores company metadata for enterprise accounts.
type EnterpriseRepository interface {
	Insert(ctx context.Context, ent domain.Enterprise) error
}

// ProfileRepository stores resume documents keyed by email.
type ProfileRepository interface {
	Insert(ctx context.Context, profile domain.Profile) error
	FindByEmail(ctx context.Context, email string) (domain.Profile, error)
	UpsertSection(ctx context.Context, email string, fields map[string]any) error
}

// ArticleRepository manages editorial drafts keyed by article_id.
type ArticleRepository interface {
	Upsert(ctx context.Context, article domain.Article) error
	FindByArticleID(ctx context.Context, articleID string) (domain.Article, error)
	UpdateContent(ctx context.Context, articleID, content string) error
	List(ctx context.Context) ([]domain.Article, error)
}

// CardRepository manages published article cards and admin-curated featured
// cards.
type CardRepository interface {
	InsertCard(ctx context.Context, card domain.ArticleCard) error
	ListCards(ctx context.Context) ([]domain.ArticleCard, error)
	InsertFeatured(ctx context.Context, card domain.FeaturedCard) (bson.ObjectID, error)
	ListFeatured(ctx context.Context) ([]domain.FeaturedCard, error)
}

// MCQRepository reads the quiz question bank.
type MCQRepository interface {
	FindByCategory(ctx context.Context, category string) ([]domain.MCQQuestion, error)
	All(ctx context.Context) ([]domain.MCQQuestion, error)
}

// ProgressRepository stores per-email training progress.
type ProgressRepository interface {
	Upsert(ctx context.Context, progress domain.TrainingProgress) (domain.TrainingProgress, error)
	FindByEmail(ctx context.Context, email string) (domain.TrainingProgress, error)
	Count(ctx context.Context) (int64, error)
}

// InterviewRepository stores JDs, candidate assignments, and submissions.
type InterviewRepository interface {
	InsertJD(ctx context.Context, jd domain.JobDescription) (bson.ObjectID, error)
	FindJD(ctx context.Context, id bson.ObjectID) (domain.JobDescription, error)
	ListJDs(ctx context.Context) ([]domain.JobDescription, error)
	InsertAssignment(ctx context.Context, a domain.InterviewAssignment) (bson.ObjectID, error)
	FindAssignmentAccess(ctx context.Context, id bson.ObjectID, username, password string) (domain.InterviewAssignment, error)
	InsertResponse(ctx context.Context, r domain.InterviewResponse) error
	FindResponseByEmail(ctx context.Context, email string) (domain.InterviewResponse, error)
	ListResponses(ctx context.Context) ([]domain.InterviewResponse, error)
}

// ResetTokenStore tracks consumed password-reset tokens so a token authorizes
// exactly one password change within its lifetime.
type ResetTokenStore interface {
	// MarkUsed records the token and reports whether this call was the first
	// use. The entry may be dropped once ttl elapses.
	MarkUsed(ctx context.Context, token string, ttl time.Duration) (bool, error)
}
