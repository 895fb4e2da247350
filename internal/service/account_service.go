package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

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

const welcomeMailTimeout = 30 * time.Second

// AccountService encapsulates signup and login flows.
type AccountService struct {
	users       repository.UserRepository
	enterprises repository.EnterpriseRepository
	profiles    repository.ProfileRepository
	codec       *token.Codec
	mailer      mail.Sender
	cfg         config.Config
	logger      *zap.Logger
	tracer      trace.Tracer
}

// NewAccountService wires dependencies.
func NewAccountService(users repository.UserRepository, enterprises repository.EnterpriseRepository, profiles repository.ProfileRepository, codec *token.Codec, mailer mail.Sender, cfg config.Config, logger *zap.Logger) *AccountService {
	return &AccountService{
		users:       users,
		enterprises: enterprises,
		profiles:    profiles,
		codec:       codec,
		mailer:      mailer,
		cfg:         cfg,
		logger:      logger,
		tracer:      otel.Tracer("github.com/kishorefa/Sainxt-platform-backend/internal/service"),
	}
}

// CreateIndividual registers an individual account, seeds its profile
// document, and sends a welcome mail in the background.
func (s *AccountService) CreateIndividual(ctx context.Context, in CreateAccountInput) (UserViewModel, error) {
	ctx, span := s.startSpan(ctx, "AccountService.CreateIndividual")
	defer span.End()

	email := normalizeEmail(in.Email)
	if email == "" || strings.TrimSpace(in.Password) == "" {
		return UserViewModel{}, fmt.Errorf("email and password are required: %w", domain.ErrBadCredentials)
	}

	hash, err := pw.Hash(in.Password)
	if err != nil {
		span.RecordError(err)
		return UserViewModel{}, fmt.Errorf("hash password: %w", err)
	}

	user := domain.User{
		FirstName:    strings.TrimSpace(in.FirstName),
		LastName:     strings.TrimSpace(in.LastName),
		Email:        email,
		PasswordHash: hash,
		UserType:     domain.UserTypeIndividual,
		Phone:        strings.TrimSpace(in.Phone),
		CreatedAt:    time.Now().UTC(),
	}
	id, err := s.users.Insert(ctx, user)
	if err != nil {
		span.RecordError(err)
		return UserViewModel{}, err
	}
	user.ID = id

	// The wizard merges its sections into this seed later.
	seed := domain.Profile{
		UserID:    id,
		Email:     email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Phone:     user.Phone,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}
	if err := s.profiles.Insert(ctx, seed); err != nil {
		s.log().Warn("seed profile failed", zap.String("email", email), zap.Error(err))
	}

	s.sendWelcome(user)
	s.audit("account.created", "user_id", id.Hex(), "user_type", user.UserType)
	return viewModel(user), nil
}

// CreateEnterprise registers an enterprise account together with its company
// record.
func (s *AccountService) CreateEnterprise(ctx context.Context, in CreateEnterpriseInput) (UserViewModel, error) {
	ctx, span := s.startSpan(ctx, "AccountService.CreateEnterprise")
	defer span.End()

	email := normalizeEmail(in.Email)
	if email == "" || strings.TrimSpace(in.Password) == "" {
		return UserViewModel{}, fmt.Errorf("email and password are required: %w", domain.ErrBadCredentials)
	}

	hash, err := pw.Hash(in.Password)
	if err != nil {
		span.RecordError(err)
		return UserViewModel{}, fmt.Errorf("hash password: %w", err)
	}

	first, last := splitContactName(in.ContactPerson)
	user := domain.User{
		FirstName:    first,
		LastName:     last,
		Email:        email,
		PasswordHash: hash,
		UserType:     domain.UserTypeEnterprise,
		Phone:        strings.TrimSpace(in.Phone),
		CreatedAt:    time.Now().UTC(),
	}
	id, err := s.users.Insert(ctx, user)
	if err != nil {
		span.RecordError(err)
		return UserViewModel{}, err
	}
	user.ID = id

	ent := domain.Enterprise{
		UserID:        id,
		CompanyName:   strings.TrimSpace(in.CompanyName),
		ContactPerson: strings.TrimSpace(in.ContactPerson),
		JobTitle:      strings.TrimSpace(in.JobTitle),
		Industry:      strings.TrimSpace(in.Industry),
		CompanySize:   strings.TrimSpace(in.CompanySize),
		Address:       strings.TrimSpace(in.Address),
		Website:       strings.TrimSpace(in.Website),
		CreatedAt:     time.Now().UTC(),
	}
	if err := s.enterprises.Insert(ctx, ent); err != nil {
		s.log().Warn("store enterprise record failed", zap.String("email", email), zap.Error(err))
	}

	s.sendWelcome(user)
	s.audit("account.created", "user_id", id.Hex(), "user_type", user.UserType)
	return viewModel(user), nil
}

// CreateAdmin registers an administrator account. Admins skip the profile
// wizard, so no profile document is seeded.
func (s *AccountService) CreateAdmin(ctx context.Context, in CreateAccountInput) (UserViewModel, error) {
	ctx, span := s.startSpan(ctx, "AccountService.CreateAdmin")
	defer span.End()

	email := normalizeEmail(in.Email)
	if email == "" || strings.TrimSpace(in.Password) == "" {
		return UserViewModel{}, fmt.Errorf("email and password are required: %w", domain.ErrBadCredentials)
	}

	hash, err := pw.Hash(in.Password)
	if err != nil {
		span.RecordError(err)
		return UserViewModel{}, fmt.Errorf("hash password: %w", err)
	}

	user := domain.User{
		FirstName:    strings.TrimSpace(in.FirstName),
		LastName:     strings.TrimSpace(in.LastName),
		Email:        email,
		PasswordHash: hash,
		UserType:     domain.UserTypeAdmin,
		Phone:        strings.TrimSpace(in.Phone),
		CreatedAt:    time.Now().UTC(),
	}
	id, err := s.users.Insert(ctx, user)
	if err != nil {
		span.RecordError(err)
		return UserViewModel{}, err
	}
	user.ID = id

	s.audit("account.created", "user_id", id.Hex(), "user_type", user.UserType)
	return viewModel(user), nil
}

// Login authenticates by email and password and issues a session token. The
// same domain.ErrBadCredentials comes back whether the email is unknown or
// the password is wrong; only the audit log records which.
func (s *AccountService) Login(ctx context.Context, email, password, userType string) (LoginResult, error) {
	ctx, span := s.startSpan(ctx, "AccountService.Login")
	defer span.End()

	normalized := normalizeEmail(email)
	user, err := s.users.FindByEmail(ctx, normalized)
	if err != nil {
		if errors.Is(err, domain.ErrUnknownAccount) {
			s.audit("login.failed", "email", normalized, "reason", "unknown_account")
			return LoginResult{}, domain.ErrBadCredentials
		}
		span.RecordError(err)
		return LoginResult{}, fmt.Errorf("lookup account: %w", err)
	}

	valid, err := pw.VerifyStored(password, user.PasswordHash)
	if err != nil || !valid {
		s.audit("login.failed", "email", normalized, "reason", "bad_password")
		return LoginResult{}, domain.ErrBadCredentials
	}

	if userType != "" && user.UserType != userType {
		s.audit("login.failed", "email", normalized, "reason", "user_type_mismatch")
		return LoginResult{}, domain.ErrUserTypeMismatch
	}

	tok, err := s.codec.EncodeSession(token.SessionClaims{
		Email:     user.Email,
		UserType:  user.UserType,
		SubjectID: user.ID.Hex(),
	}, s.cfg.SessionTokenTTL)
	if err != nil {
		span.RecordError(err)
		return LoginResult{}, fmt.Errorf("issue session token: %w", err)
	}

	s.audit("login.success", "user_id", user.ID.Hex(), "user_type", user.UserType)
	return LoginResult{Token: tok, User: viewModel(user)}, nil
}

// ListUsers returns every account for the admin dashboard.
func (s *AccountService) ListUsers(ctx context.Context) ([]UserViewModel, error) {
	ctx, span := s.startSpan(ctx, "AccountService.ListUsers")
	defer span.End()

	users, err := s.users.List(ctx)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("list users: %w", err)
	}
	out := make([]UserViewModel, 0, len(users))
	for _, u := range users {
		out = append(out, viewModel(u))
	}
	return out, nil
}

func (s *AccountService) sendWelcome(user domain.User) {
	if s.mailer == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), welcomeMailTimeout)
		defer cancel()
		body := fmt.Sprintf("Hi %s,\n\nYour account has been created. Sign in to start preparing for interviews.\n", user.FirstName)
		if err := s.mailer.Send(ctx, user.Email, "Welcome to the platform", body); err != nil {
			s.log().Warn("welcome mail failed", zap.String("email", user.Email), zap.Error(err))
		}
	}()
}

func (s *AccountService) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	if s == nil || s.tracer == nil {
		return ctx, trace.SpanFromContext(ctx)
	}
	return s.tracer.Start(ctx, name)
}

func (s *AccountService) audit(event string, attrs ...any) {
	auditLog(s.log(), event, attrs...)
}

func (s *AccountService) log() *zap.Logger {
	if s != nil && s.logger != nil {
		return s.logger
	}
	return zap.L()
}

func viewModel(user domain.User) UserViewModel {
	return UserViewModel{
		ID:        user.ID.Hex(),
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Email:     user.Email,
		UserType:  user.UserType,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func splitContactName(full string) (string, string) {
	parts := strings.Fields(strings.TrimSpace(full))
	switch len(parts) {
	case 0:
		return "", ""
	case 1:
		return parts[0], ""
	}
	return parts[0], strings.Join(parts[1:], " ")
}

func auditLog(logger *zap.Logger, event string, attrs ...any) {
	if logger == nil {
		return
	}
	fields := make([]zap.Field, 0, len(attrs)/2+2)
	fields = append(fields, zap.String("event", event), zap.Time("timestamp", time.Now().UTC()))
	for i := 0; i+1 < len(attrs); i += 2 {
		key, ok := attrs[i].(string)
		if !ok {
			continue
		}
		fields = append(fields, zap.Any(key, attrs[i+1]))
	}
	logger.Info("audit", fields...)
}
