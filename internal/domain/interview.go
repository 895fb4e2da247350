package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Interview assignment lifecycle states.
const (
	AssignmentPending   = "pending"
	AssignmentCompleted = "completed"
)

// JobDescription stores a submitted JD together with the questions the LLM
// generated for it.
type JobDescription struct {
	ID        bson.ObjectID `bson:"_id,omitempty"`
	Text      string        `bson:"job_description"`
	Questions string        `bson:"interview_questions"`
	CreatedAt time.Time     `bson:"timestamp"`
}

// InterviewAssignment is a candidate invitation: a JD, its questions, and the
// generated access credentials mailed to the candidate.
type InterviewAssignment struct {
	ID             bson.ObjectID `bson:"_id,omitempty"`
	JobDescription string        `bson:"job_description"`
	Questions      []string      `bson:"questions"`
	AssignedBy     string        `bson:"assigned_by"`
	AssignedTo     string        `bson:"assigned_to,omitempty"`
	AccessPassword string        `bson:"password,omitempty"`
	Status         string        `bson:"status,omitempty"`
	CreatedAt      time.Time     `bson:"created_at"`
}

// InterviewAnswer pairs one question with the candidate's answer.
type InterviewAnswer struct {
	Question string `bson:"question" json:"question"`
	Answer   string `bson:"answer" json:"answer"`
}

// InterviewResponse is a completed interview submission.
type InterviewResponse struct {
	ID               bson.ObjectID     `bson:"_id,omitempty"`
	Username         string            `bson:"username"`
	CandidateEmail   string            `bson:"candidate_email,omitempty"`
	JobDescriptionID string            `bson:"job_description_id"`
	JobDescription   string            `bson:"job_description"`
	Responses        []InterviewAnswer `bson:"responses"`
	SubmittedAt      time.Time         `bson:"submitted_at"`
}

// ProfileScores is the LLM evaluation of a candidate profile.
type ProfileScores struct {
	ProfileScore       float64 `json:"profile_score"`
	QualificationScore float64 `json:"qualification_score"`
	SkillScore         float64 `json:"skill_score"`
	SoftSkillsScore    float64 `json:"soft_skills_score"`
}

// InterviewReview is the parsed LLM assessment of an interview submission.
type InterviewReview struct {
	OverallScore  string `json:"overall_score"`
	FitAssessment string `json:"fit_assessment"`
	OverallReport string `json:"overall_report"`
}
