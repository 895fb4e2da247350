package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/kishorefa/Sainxt-platform-backend/internal/adapter/mail"
	"github.com/kishorefa/Sainxt-platform-backend/internal/config"
	"github.com/kishorefa/Sainxt-platform-backend/internal/domain"
	pw "github.com/kishorefa/Sainxt-platform-backend/internal/password"
	"github.com/kishorefa/Sainxt-platform-backend/internal/repository"
	"github.com/kishorefa/Sainxt-platform-backend/internal/token"
)

// ResetService implements the forgot-password flow.
type ResetService struct {
	users    repository.UserRepository
	consumed repository.ResetTokenStore
	codec    *token.Codec
	mailer   mail.Sender
	cfg      config.Config
	logger   *zap.Logger
	tracer   trace.Tracer
}

// NewResetService wires dependencies.
func NewResetService(users repository.UserRepository, consumed repository.ResetTokenStore, codec *token.Codec, mailer mail.Sender, cfg config.Config, logger *zap.Logger) *ResetService {
	return &ResetService{
		users:    users,
		consumed: consumed,
		codec:    codec,
		mailer:   mailer,
		cfg:      cfg,
		logger:   logger,
		tracer:   otel.Tracer("github.com/kishorefa/Sainxt-platform-backend/internal/service"),
	}
}

// RequestReset mails a short-lived reset link when the email matches an
// account. Unknown emails return nil as well, so the response never reveals
// whether an account exists. Delivery failures are logged and do not fail
// the request; the caller can simply ask again.
func (s *ResetService) RequestReset(ctx context.Context, email string) error {
	ctx, span := s.startSpan(ctx, "ResetService.RequestReset")
	defer span.End()

	normalized := normalizeEmail(email)
	user, err := s.users.FindByEmail(ctx, normalized)
	if err != nil {
		if errors.Is(err, domain.ErrUnknownAccount) {
			s.audit("password_reset.requested", "email", normalized, "known_account", false)
			return nil
		}
		span.RecordError(err)
		return fmt.Errorf("lookup account: %w", err)
	}

	tok, err := s.codec.EncodeReset(token.ResetClaims{Email: user.Email}, s.cfg.ResetTokenTTL)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("issue reset token: %w", err)
	}

	link := s.cfg.ResetLinkBase + "?token=" + tok
	body := fmt.Sprintf("Hi %s,\n\nUse the link below to reset your password. It expires in %s.\n\n%s\n\nIf you did not request this, ignore this email.\n",
		user.FirstName, s.cfg.ResetTokenTTL, link)
	if err := s.mailer.Send(ctx, user.Email, "Reset your password", body); err != nil {
		s.log().Warn("reset mail failed", zap.String("email", user.Email), zap.Error(err))
		s.audit("password_reset.requested", "user_id", user.ID.Hex(), "known_account", true, "mail_delivered", false)
		return nil
	}

	s.audit("password_reset.requested", "user_id", user.ID.Hex(), "known_account", true)
	return nil
}

// CompleteReset validates the reset token, consumes it, and stores the new
// password hash. A token that was already used behaves like an expired one.
func (s *ResetService) CompleteReset(ctx context.Context, tok, newPassword string) error {
	ctx, span := s.startSpan(ctx, "ResetService.CompleteReset")
	defer span.End()

	if strings.TrimSpace(newPassword) == "" {
		return fmt.Errorf("new password is required: %w", domain.ErrBadCredentials)
	}

	claims, err := s.codec.DecodeReset(tok)
	if err != nil {
		return err
	}

	first, err := s.consumed.MarkUsed(ctx, tok, s.cfg.ResetTokenTTL)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("check reset token reuse: %w", err)
	}
	if !first {
		s.audit("password_reset.replayed", "email", claims.Email)
		return domain.ErrTokenExpired
	}

	hash, err := pw.Hash(newPassword)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("hash password: %w", err)
	}

	if err := s.users.UpdatePasswordHash(ctx, claims.Email, hash); err != nil {
		span.RecordError(err)
		return err
	}

	s.audit("password_reset.completed", "email", claims.Email)
	return nil
}

func (s *ResetService) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	if s == nil || s.tracer == nil {
		return ctx, trace.SpanFromContext(ctx)
	}
	return s.tracer.Start(ctx, name)
}

func (s *ResetService) audit(event string, attrs ...any) {
	auditLog(s.log(), event, attrs...)
}

func (s *ResetService) log() *zap.Logger {
	if s != nil && s.logger != nil {
		return s.logger
	}
	return zap.L()
}
