package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Article is an editorial draft keyed by a short article_id, written through
// the submit/update-content flow.
type Article struct {
	ID        bson.ObjectID `bson:"_id,omitempty"`
	ArticleID string        `bson:"article_id"`
	Title     string        `bson:"title"`
	Content   string        `bson:"content"`
	Status    string        `bson:"status"`
}

// ArticleCard is a published card with an uploaded cover image stored inline.
type ArticleCard struct {
	ID          bson.ObjectID `bson:"_id,omitempty"`
	ArticleID   string        `bson:"article_id"`
	Category    string        `bson:"category"`
	Title       string        `bson:"title"`
	Description string        `bson:"description"`
	Image       []byte        `bson:"image"`
	Filename    string        `bson:"filename"`
	ContentType string        `bson:"content_type"`
}

// FeaturedCard is an admin-curated card shown on the public landing page.
type FeaturedCard struct {
	ID          bson.ObjectID `bson:"_id,omitempty"`
	Title       string        `bson:"title"`
	Description string        `bson:"description"`
	ImageBase64 string        `bson:"image_base64"`
	Filename    string        `bson:"image_filename"`
	CreatedAt   time.Time     `bson:"created_at"`
	UpdatedAt   time.Time     `bson:"updated_at"`
}

// MCQQuestion is a quiz question with its answer key.
type MCQQuestion struct {
	Category string   `bson:"category" json:"category"`
	Question string   `bson:"question" json:"question"`
	Options  []string `bson:"options" json:"options"`
	Answer   string   `bson:"answer" json:"answer"`
}

// TrainingProgress tracks per-user introductory training state, keyed by the
// authenticated email.
type TrainingProgress struct {
	ID                bson.ObjectID `bson:"_id,omitempty"`
	Email             string        `bson:"email"`
	CompletedVideos   []int         `bson:"completedVideos"`
	WatchedVideos     []int         `bson:"watchedVideos"`
	CertificateIssued bool          `bson:"certificateIssued"`
	CertificateID     string        `bson:"certificate_id,omitempty"`
}

// PlatformMetrics is the dashboard counter summary.
type PlatformMetrics struct {
	TotalUsers        int64 `json:"total_users"`
	EnterpriseClients int64 `json:"enterprise_clients"`
	ActiveAssessments int64 `json:"active_assessments"`
	TraineesEnrolled  int64 `json:"trainees_enrolled"`
}
