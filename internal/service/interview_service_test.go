package service_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/kishorefa/Sainxt-platform-backend/internal/adapter/llm"
	"github.com/kishorefa/Sainxt-platform-backend/internal/domain"
	"github.com/kishorefa/Sainxt-platform-backend/internal/service"
)

// fakeModelServer mimics the non-streaming generate endpoint.
func fakeModelServer(t *testing.T, response string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/generate", r.URL.Path)
		var req struct {
			Model  string `json:"model"`
			Prompt string `json:"prompt"`
			Stream bool   `json:"stream"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.False(t, req.Stream)
		json.NewEncoder(w).Encode(map[string]string{"response": response})
	}))
}

func newInterviewFixture(model *llm.Client, mailer *fakeMailer) (*service.InterviewService, *memoryInterviewRepo, *memoryProfileRepo) {
	interviews := newMemoryInterviewRepo()
	profiles := newMemoryProfileRepo()
	svc := service.NewInterviewService(interviews, profiles, model, mailer, testConfig(), zap.NewNop())
	return svc, interviews, profiles
}

func TestGenerateQuestionsStoresJD(t *testing.T) {
	ctx := context.Background()
	srv := fakeModelServer(t, "1. Tell me about Go.\n2. What is a goroutine?")
	defer srv.Close()

	model := llm.NewClient(srv.URL, "test-model", 5*time.Second)
	svc, interviews, _ := newInterviewFixture(model, &fakeMailer{})

	jd, err := svc.GenerateQuestions(ctx, "Backend engineer, Go and MongoDB.")
	require.NoError(t, err)
	require.Contains(t, jd.Questions, "goroutine")

	stored, err := interviews.FindJD(ctx, jd.ID)
	require.NoError(t, err)
	require.Equal(t, "Backend engineer, Go and MongoDB.", stored.Text)
}

func TestAssignInterviewMailsCredentials(t *testing.T) {
	ctx := context.Background()
	srv := fakeModelServer(t, "1. Q one\n2. Q two")
	defer srv.Close()

	model := llm.NewClient(srv.URL, "test-model", 5*time.Second)
	mailer := &fakeMailer{}
	svc, _, _ := newInterviewFixture(model, mailer)

	jd, err := svc.GenerateQuestions(ctx, "Data engineer role.")
	require.NoError(t, err)

	assignment, err := svc.AssignInterview(ctx, jd.ID, "HR@Acme.test", "Cand@Example.com")
	require.NoError(t, err)
	require.Equal(t, "cand@example.com", assignment.AssignedTo)
	require.Len(t, assignment.AccessPassword, 8)
	require.Equal(t, []string{"Q one", "Q two"}, assignment.Questions)

	msg, sent := mailer.lastMail()
	require.True(t, sent)
	require.Equal(t, "cand@example.com", msg.to)
	require.Contains(t, msg.body, assignment.AccessPassword)
	require.Contains(t, msg.body, assignment.ID.Hex())

	// Mailed credentials grant access; anything else does not.
	got, err := svc.VerifyAccess(ctx, assignment.ID, "cand@example.com", assignment.AccessPassword)
	require.NoError(t, err)
	require.Equal(t, assignment.ID, got.ID)

	_, err = svc.VerifyAccess(ctx, assignment.ID, "cand@example.com", "wrong-pass")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestReviewCandidateDegradesWhenModelDown(t *testing.T) {
	ctx := context.Background()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "overloaded", http.StatusInternalServerError)
	}))
	defer srv.Close()

	model := llm.NewClient(srv.URL, "test-model", 2*time.Second)
	svc, interviews, profiles := newInterviewFixture(model, &fakeMailer{})

	require.NoError(t, profiles.Insert(ctx, domain.Profile{Email: "cand@example.com", FirstName: "Cand"}))
	require.NoError(t, interviews.InsertResponse(ctx, domain.InterviewResponse{
		CandidateEmail: "cand@example.com",
		JobDescription: "Backend role",
		Responses:      []domain.InterviewAnswer{{Question: "Q", Answer: "A"}},
	}))

	review, err := svc.ReviewCandidate(ctx, "cand@example.com")
	require.NoError(t, err)
	require.False(t, review.Available)
}

func TestReviewCandidateParsesModelJSON(t *testing.T) {
	ctx := context.Background()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Prompt string `json:"prompt"`
		}
		json.NewDecoder(r.Body).Decode(&req)

		// Models wrap JSON in prose; the client must still find it.
		body := `Here are the scores: {"profile_score": 80, "qualification_score": 70, "skill_score": 75, "soft_skills_score": 85}`
		if containsTranscript(req.Prompt) {
			body = "```json\n{\"overall_score\": \"8/10\", \"fit_assessment\": \"strong\", \"overall_report\": \"solid answers\"}\n```"
		}
		json.NewEncoder(w).Encode(map[string]string{"response": body})
	}))
	defer srv.Close()

	model := llm.NewClient(srv.URL, "test-model", 5*time.Second)
	svc, interviews, profiles := newInterviewFixture(model, &fakeMailer{})

	require.NoError(t, profiles.Insert(ctx, domain.Profile{Email: "cand@example.com"}))
	require.NoError(t, interviews.InsertResponse(ctx, domain.InterviewResponse{
		CandidateEmail: "cand@example.com",
		JobDescription: "Backend role",
		Responses:      []domain.InterviewAnswer{{Question: "Q", Answer: "A"}},
	}))

	review, err := svc.ReviewCandidate(ctx, "cand@example.com")
	require.NoError(t, err)
	require.True(t, review.Available)
	require.InDelta(t, 80, review.Scores.ProfileScore, 0.01)
	require.Equal(t, "8/10", review.Review.OverallScore)
}

func TestReviewCandidateRequiresSubmission(t *testing.T) {
	ctx := context.Background()
	srv := fakeModelServer(t, "{}")
	defer srv.Close()

	model := llm.NewClient(srv.URL, "test-model", 2*time.Second)
	svc, _, profiles := newInterviewFixture(model, &fakeMailer{})

	require.NoError(t, profiles.Insert(ctx, domain.Profile{Email: "cand@example.com"}))
	_, err := svc.ReviewCandidate(ctx, "cand@example.com")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestScoreProfileNeedsNoSubmission(t *testing.T) {
	ctx := context.Background()
	srv := fakeModelServer(t, `{"profile_score": 72, "qualification_score": 64, "skill_score": 70, "soft_skills_score": 81}`)
	defer srv.Close()

	model := llm.NewClient(srv.URL, "test-model", 5*time.Second)
	svc, _, profiles := newInterviewFixture(model, &fakeMailer{})

	require.NoError(t, profiles.Insert(ctx, domain.Profile{Email: "cand@example.com", FirstName: "Cand"}))

	scores, err := svc.ScoreProfile(ctx, "Cand@Example.com")
	require.NoError(t, err)
	require.InDelta(t, 72, scores.ProfileScore, 0.01)

	_, err = svc.ScoreProfile(ctx, "nobody@example.com")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSubmissionReportSurface(t *testing.T) {
	ctx := context.Background()
	srv := fakeModelServer(t, "{}")
	defer srv.Close()

	model := llm.NewClient(srv.URL, "test-model", 2*time.Second)
	svc, interviews, _ := newInterviewFixture(model, &fakeMailer{})

	require.NoError(t, interviews.InsertResponse(ctx, domain.InterviewResponse{
		CandidateEmail: "a@example.com",
		JobDescription: "Backend role",
		Responses:      []domain.InterviewAnswer{{Question: "Q1", Answer: "A1"}},
	}))
	require.NoError(t, interviews.InsertResponse(ctx, domain.InterviewResponse{
		CandidateEmail: "a@example.com",
		JobDescription: "Backend role",
		Responses:      []domain.InterviewAnswer{{Question: "Q2", Answer: "A2"}},
	}))
	require.NoError(t, interviews.InsertResponse(ctx, domain.InterviewResponse{
		CandidateEmail: "b@example.com",
		JobDescription: "Data role",
		Responses:      []domain.InterviewAnswer{{Question: "Q", Answer: "A"}},
	}))

	emails, err := svc.ListSubmittedCandidates(ctx)
	require.NoError(t, err)
	require.ElementsMatch(t, []string{"a@example.com", "b@example.com"}, emails)

	submission, err := svc.GetSubmission(ctx, "B@Example.com")
	require.NoError(t, err)
	require.Equal(t, "b@example.com", submission.CandidateEmail)
	require.Len(t, submission.Responses, 1)

	_, err = svc.GetSubmission(ctx, "missing@example.com")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func containsTranscript(prompt string) bool {
	return strings.Contains(prompt, "Interview transcript")
}
