package service

import (
	"context"
	"crypto/rand"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/kishorefa/Sainxt-platform-backend/internal/adapter/llm"
	"github.com/kishorefa/Sainxt-platform-backend/internal/adapter/mail"
	"github.com/kishorefa/Sainxt-platform-backend/internal/config"
	"github.com/kishorefa/Sainxt-platform-backend/internal/domain"
	"github.com/kishorefa/Sainxt-platform-backend/internal/repository"
)

const accessPasswordLength = 8

// InterviewService runs the JD-based interview pipeline: question generation,
// candidate assignment, submission, and AI review.
type InterviewService struct {
	interviews repository.InterviewRepository
	profiles   repository.ProfileRepository
	model      *llm.Client
	mailer     mail.Sender
	cfg        config.Config
	logger     *zap.Logger
	tracer     trace.Tracer
}

// NewInterviewService wires dependencies.
func NewInterviewService(interviews repository.InterviewRepository, profiles repository.ProfileRepository, model *llm.Client, mailer mail.Sender, cfg config.Config, logger *zap.Logger) *InterviewService {
	return &InterviewService{
		interviews: interviews,
		profiles:   profiles,
		model:      model,
		mailer:     mailer,
		cfg:        cfg,
		logger:     logger,
		tracer:     otel.Tracer("github.com/kishorefa/Sainxt-platform-backend/internal/service"),
	}
}

// GenerateQuestions asks the model for interview questions tailored to a job
// description and stores both together.
func (s *InterviewService) GenerateQuestions(ctx context.Context, jdText string) (domain.JobDescription, error) {
	ctx, span := s.startSpan(ctx, "InterviewService.GenerateQuestions")
	defer span.End()

	trimmed := strings.TrimSpace(jdText)
	if trimmed == "" {
		return domain.JobDescription{}, fmt.Errorf("job description is required: %w", domain.ErrNotFound)
	}

	prompt := fmt.Sprintf("You are an experienced technical interviewer. Based on the following job description, write 10 numbered interview questions covering required skills, experience, and soft skills. Return only the questions.\n\nJob description:\n%s", trimmed)
	questions, err := s.model.Generate(ctx, prompt)
	if err != nil {
		span.RecordError(err)
		return domain.JobDescription{}, fmt.Errorf("generate interview questions: %w", err)
	}

	jd := domain.JobDescription{
		Text:      trimmed,
		Questions: questions,
		CreatedAt: time.Now().UTC(),
	}
	id, err := s.interviews.InsertJD(ctx, jd)
	if err != nil {
		span.RecordError(err)
		return domain.JobDescription{}, fmt.Errorf("store job description: %w", err)
	}
	jd.ID = id

	s.audit("interview.questions.generated", "jd_id", id.Hex())
	return jd, nil
}

// GetJD returns one stored job description with its questions.
func (s *InterviewService) GetJD(ctx context.Context, id bson.ObjectID) (domain.JobDescription, error) {
	return s.interviews.FindJD(ctx, id)
}

// ListJDs returns all stored job descriptions.
func (s *InterviewService) ListJDs(ctx context.Context) ([]domain.JobDescription, error) {
	return s.interviews.ListJDs(ctx)
}

// AssignInterview invites a candidate to a stored JD's interview. Access
// credentials are generated here and delivered only by mail, so a delivery
// failure fails the assignment.
func (s *InterviewService) AssignInterview(ctx context.Context, jdID bson.ObjectID, assignedBy, candidateEmail string) (domain.InterviewAssignment, error) {
	ctx, span := s.startSpan(ctx, "InterviewService.AssignInterview")
	defer span.End()

	jd, err := s.interviews.FindJD(ctx, jdID)
	if err != nil {
		return domain.InterviewAssignment{}, err
	}

	candidate := normalizeEmail(candidateEmail)
	assignment := domain.InterviewAssignment{
		JobDescription: jd.Text,
		Questions:      splitQuestions(jd.Questions),
		AssignedBy:     normalizeEmail(assignedBy),
		AssignedTo:     candidate,
		AccessPassword: randomAccessPassword(),
		Status:         domain.AssignmentPending,
		CreatedAt:      time.Now().UTC(),
	}
	id, err := s.interviews.InsertAssignment(ctx, assignment)
	if err != nil {
		span.RecordError(err)
		return domain.InterviewAssignment{}, fmt.Errorf("store assignment: %w", err)
	}
	assignment.ID = id

	link := fmt.Sprintf("%s/%s", strings.TrimRight(s.cfg.InterviewLinkBase, "/"), id.Hex())
	body := fmt.Sprintf("Hello,\n\nYou have been invited to an interview.\n\nLink: %s\nUsername: %s\nPassword: %s\n\nGood luck!\n",
		link, candidate, assignment.AccessPassword)
	if err := s.mailer.Send(ctx, candidate, "Interview invitation", body); err != nil {
		s.log().Error("invite mail failed", zap.String("email", candidate), zap.Error(err))
		return domain.InterviewAssignment{}, domain.ErrNotificationFailed
	}

	s.audit("interview.assigned", "assignment_id", id.Hex(), "assigned_by", assignment.AssignedBy)
	return assignment, nil
}

// VerifyAccess checks candidate credentials against an assignment and returns
// it. Wrong credentials surface as domain.ErrNotFound, indistinguishable from
// a missing assignment.
func (s *InterviewService) VerifyAccess(ctx context.Context, id bson.ObjectID, username, password string) (domain.InterviewAssignment, error) {
	ctx, span := s.startSpan(ctx, "InterviewService.VerifyAccess")
	defer span.End()
	return s.interviews.FindAssignmentAccess(ctx, id, normalizeEmail(username), password)
}

// SubmitResponses stores a completed interview.
func (s *InterviewService) SubmitResponses(ctx context.Context, r domain.InterviewResponse) error {
	ctx, span := s.startSpan(ctx, "InterviewService.SubmitResponses")
	defer span.End()

	if len(r.Responses) == 0 {
		return fmt.Errorf("no responses submitted: %w", domain.ErrNotFound)
	}
	r.CandidateEmail = normalizeEmail(r.CandidateEmail)
	r.SubmittedAt = time.Now().UTC()
	if err := s.interviews.InsertResponse(ctx, r); err != nil {
		span.RecordError(err)
		return fmt.Errorf("store interview responses: %w", err)
	}
	s.audit("interview.submitted", "candidate", r.CandidateEmail, "jd_id", r.JobDescriptionID)
	return nil
}

// ListSubmittedCandidates returns the distinct emails of candidates who have
// submitted an interview.
func (s *InterviewService) ListSubmittedCandidates(ctx context.Context) ([]string, error) {
	ctx, span := s.startSpan(ctx, "InterviewService.ListSubmittedCandidates")
	defer span.End()

	responses, err := s.interviews.ListResponses(ctx)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("list interview responses: %w", err)
	}

	seen := make(map[string]struct{}, len(responses))
	emails := make([]string, 0, len(responses))
	for _, r := range responses {
		if _, ok := seen[r.CandidateEmail]; ok {
			continue
		}
		seen[r.CandidateEmail] = struct{}{}
		emails = append(emails, r.CandidateEmail)
	}
	return emails, nil
}

// GetSubmission returns a candidate's raw interview transcript.
func (s *InterviewService) GetSubmission(ctx context.Context, email string) (domain.InterviewResponse, error) {
	ctx, span := s.startSpan(ctx, "InterviewService.GetSubmission")
	defer span.End()
	return s.interviews.FindResponseByEmail(ctx, normalizeEmail(email))
}

// ScoreProfile evaluates a candidate's profile alone, with no interview
// submission required. Unlike ReviewCandidate the score is the whole product
// here, so a model failure fails the call.
func (s *InterviewService) ScoreProfile(ctx context.Context, email string) (domain.ProfileScores, error) {
	ctx, span := s.startSpan(ctx, "InterviewService.ScoreProfile")
	defer span.End()

	normalized := normalizeEmail(email)
	profile, err := s.profiles.FindByEmail(ctx, normalized)
	if err != nil {
		return domain.ProfileScores{}, err
	}

	scores, err := s.scoreProfile(ctx, profile)
	if err != nil {
		span.RecordError(err)
		return domain.ProfileScores{}, fmt.Errorf("score profile: %w", err)
	}

	s.audit("profile.scored", "candidate", normalized)
	return scores, nil
}

// ReviewCandidate scores a candidate's profile and interview submission with
// the model. A model outage degrades to an unavailable review rather than an
// error; missing profile or submission data still fails.
func (s *InterviewService) ReviewCandidate(ctx context.Context, email string) (CandidateReview, error) {
	ctx, span := s.startSpan(ctx, "InterviewService.ReviewCandidate")
	defer span.End()

	normalized := normalizeEmail(email)
	profile, err := s.profiles.FindByEmail(ctx, normalized)
	if err != nil {
		return CandidateReview{}, err
	}
	response, err := s.interviews.FindResponseByEmail(ctx, normalized)
	if err != nil {
		return CandidateReview{}, err
	}

	scores, scoresErr := s.scoreProfile(ctx, profile)
	review, reviewErr := s.reviewSubmission(ctx, response)
	if scoresErr != nil || reviewErr != nil {
		s.log().Warn("candidate review degraded",
			zap.String("email", normalized),
			zap.NamedError("scores", scoresErr),
			zap.NamedError("review", reviewErr))
		return CandidateReview{Available: false}, nil
	}

	s.audit("interview.reviewed", "candidate", normalized)
	return CandidateReview{Available: true, Scores: scores, Review: review}, nil
}

func (s *InterviewService) scoreProfile(ctx context.Context, profile domain.Profile) (domain.ProfileScores, error) {
	doc, err := json.Marshal(profile)
	if err != nil {
		return domain.ProfileScores{}, fmt.Errorf("encode profile: %w", err)
	}
	prompt := fmt.Sprintf("Evaluate the following candidate profile. Respond with only a JSON object with numeric fields profile_score, qualification_score, skill_score, and soft_skills_score, each between 0 and 100.\n\nProfile:\n%s", doc)

	var scores domain.ProfileScores
	if err := s.model.GenerateJSON(ctx, prompt, &scores); err != nil {
		return domain.ProfileScores{}, err
	}
	return scores, nil
}

func (s *InterviewService) reviewSubmission(ctx context.Context, response domain.InterviewResponse) (domain.InterviewReview, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "Job description:\n%s\n\nInterview transcript:\n", response.JobDescription)
	for i, qa := range response.Responses {
		fmt.Fprintf(&b, "Q%d: %s\nA%d: %s\n", i+1, qa.Question, i+1, qa.Answer)
	}
	prompt := fmt.Sprintf("You are reviewing an interview. Respond with only a JSON object with string fields overall_score (out of 10), fit_assessment, and overall_report.\n\n%s", b.String())

	var review domain.InterviewReview
	if err := s.model.GenerateJSON(ctx, prompt, &review); err != nil {
		return domain.InterviewReview{}, err
	}
	return review, nil
}

// splitQuestions breaks the model's numbered list into individual questions.
func splitQuestions(raw string) []string {
	lines := strings.Split(raw, "\n")
	questions := make([]string, 0, len(lines))
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		trimmed = strings.TrimLeft(trimmed, "0123456789.)- ")
		if trimmed != "" {
			questions = append(questions, trimmed)
		}
	}
	return questions
}

const accessPasswordAlphabet = "abcdefghjkmnpqrstuvwxyzABCDEFGHJKMNPQRSTUVWXYZ23456789"

func randomAccessPassword() string {
	b := make([]byte, accessPasswordLength)
	if _, err := rand.Read(b); err != nil {
		panic(err)
	}
	for i := range b {
		b[i] = accessPasswordAlphabet[int(b[i])%len(accessPasswordAlphabet)]
	}
	return string(b)
}

func (s *InterviewService) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	if s == nil || s.tracer == nil {
		return ctx, trace.SpanFromContext(ctx)
	}
	return s.tracer.Start(ctx, name)
}

func (s *InterviewService) audit(event string, attrs ...any) {
	auditLog(s.log(), event, attrs...)
}

func (s *InterviewService) log() *zap.Logger {
	if s != nil && s.logger != nil {
		return s.logger
	}
	return zap.L()
}
