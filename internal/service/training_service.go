package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/bwmarrin/snowflake"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/kishorefa/Sainxt-platform-backend/internal/domain"
	"github.com/kishorefa/Sainxt-platform-backend/internal/repository"
)

// requiredTrainingVideos is the number of introductory videos a user must
// complete before a certificate is issued.
const requiredTrainingVideos = 5

// TrainingService tracks introductory training progress and issues
// certificates, and serves the dashboard metrics built from the same
// collections.
type TrainingService struct {
	progress   repository.ProgressRepository
	users      repository.UserRepository
	interviews repository.InterviewRepository
	node       *snowflake.Node
	logger     *zap.Logger
	tracer     trace.Tracer
}

// NewTrainingService wires dependencies.
func NewTrainingService(progress repository.ProgressRepository, users repository.UserRepository, interviews repository.InterviewRepository, node *snowflake.Node, logger *zap.Logger) *TrainingService {
	return &TrainingService{
		progress:   progress,
		users:      users,
		interviews: interviews,
		node:       node,
		logger:     logger,
		tracer:     otel.Tracer("github.com/kishorefa/Sainxt-platform-backend/internal/service"),
	}
}

// RecordProgress merges the caller's watched and completed video sets and
// issues a certificate serial once every required video is complete.
// Certificate issuance is one-way; later updates never revoke it.
func (s *TrainingService) RecordProgress(ctx context.Context, email string, completed, watched []int) (domain.TrainingProgress, error) {
	ctx, span := s.startSpan(ctx, "TrainingService.RecordProgress")
	defer span.End()

	current, err := s.progress.FindByEmail(ctx, email)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		span.RecordError(err)
		return domain.TrainingProgress{}, fmt.Errorf("load training progress: %w", err)
	}

	next := domain.TrainingProgress{
		Email:             email,
		CompletedVideos:   mergeVideoSets(current.CompletedVideos, completed),
		WatchedVideos:     mergeVideoSets(current.WatchedVideos, watched),
		CertificateIssued: current.CertificateIssued,
		CertificateID:     current.CertificateID,
	}
	if !next.CertificateIssued && len(next.CompletedVideos) >= requiredTrainingVideos {
		next.CertificateIssued = true
		next.CertificateID = s.node.Generate().String()
		s.audit("training.certificate.issued", "email", email, "certificate_id", next.CertificateID)
	}

	saved, err := s.progress.Upsert(ctx, next)
	if err != nil {
		span.RecordError(err)
		return domain.TrainingProgress{}, fmt.Errorf("store training progress: %w", err)
	}
	return saved, nil
}

// GetProgress returns the caller's training record.
func (s *TrainingService) GetProgress(ctx context.Context, email string) (domain.TrainingProgress, error) {
	ctx, span := s.startSpan(ctx, "TrainingService.GetProgress")
	defer span.End()
	return s.progress.FindByEmail(ctx, email)
}

// Metrics builds the dashboard counters.
func (s *TrainingService) Metrics(ctx context.Context) (domain.PlatformMetrics, error) {
	ctx, span := s.startSpan(ctx, "TrainingService.Metrics")
	defer span.End()

	total, err := s.users.Count(ctx, "")
	if err != nil {
		span.RecordError(err)
		return domain.PlatformMetrics{}, fmt.Errorf("count users: %w", err)
	}
	enterprise, err := s.users.Count(ctx, domain.UserTypeEnterprise)
	if err != nil {
		span.RecordError(err)
		return domain.PlatformMetrics{}, fmt.Errorf("count enterprise users: %w", err)
	}
	responses, err := s.interviews.ListResponses(ctx)
	if err != nil {
		span.RecordError(err)
		return domain.PlatformMetrics{}, fmt.Errorf("count assessments: %w", err)
	}
	trainees, err := s.progress.Count(ctx)
	if err != nil {
		span.RecordError(err)
		return domain.PlatformMetrics{}, fmt.Errorf("count trainees: %w", err)
	}

	return domain.PlatformMetrics{
		TotalUsers:        total,
		EnterpriseClients: enterprise,
		ActiveAssessments: int64(len(responses)),
		TraineesEnrolled:  trainees,
	}, nil
}

func mergeVideoSets(existing, incoming []int) []int {
	seen := make(map[int]bool, len(existing)+len(incoming))
	merged := make([]int, 0, len(existing)+len(incoming))
	for _, set := range [][]int{existing, incoming} {
		for _, v := range set {
			if !seen[v] {
				seen[v] = true
				merged = append(merged, v)
			}
		}
	}
	return merged
}

func (s *TrainingService) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	if s == nil || s.tracer == nil {
		return ctx, trace.SpanFromContext(ctx)
	}
	return s.tracer.Start(ctx, name)
}

func (s *TrainingService) audit(event string, attrs ...any) {
	auditLog(s.log(), event, attrs...)
}

func (s *TrainingService) log() *zap.Logger {
	if s != nil && s.logger != nil {
		return s.logger
	}
	return zap.L()
}
