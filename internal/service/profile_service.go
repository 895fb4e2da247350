package service

import (
	"context"
	"fmt"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/kishorefa/Sainxt-platform-backend/internal/domain"
	"github.com/kishorefa/Sainxt-platform-backend/internal/repository"
)

// Wizard section names accepted by SaveSection.
const (
	SectionPersonal    = "personal"
	SectionEducation   = "education"
	SectionExperience  = "experience"
	SectionProject     = "project"
	SectionSkills      = "skills"
	SectionPreferences = "preferences"
)

// sectionFields whitelists the document fields each wizard step may write.
// Anything outside the step's list is dropped before the partial update.
var sectionFields = map[string][]string{
	SectionPersonal:    {"first_name", "last_name", "phone", "location", "dob", "description"},
	SectionEducation:   {"university", "degree_level", "major", "graduation_year", "cgpa", "additional_info"},
	SectionExperience:  {"work_experience", "job_title", "company", "work_location", "start_date", "end_date", "work_description"},
	SectionProject:     {"project_title", "project_url", "project_description"},
	SectionSkills:      {"technical_skills", "soft_skills", "language", "proficiency"},
	SectionPreferences: {"job_types", "salary_expectations", "location_preferences", "work_environment", "industry_preferences", "company_size", "career_goals"},
}

// ProfileService persists resume wizard steps against the authenticated
// account. The email always comes from the verified session, never from the
// request body.
type ProfileService struct {
	profiles repository.ProfileRepository
	logger   *zap.Logger
	tracer   trace.Tracer
}

// NewProfileService wires dependencies.
func NewProfileService(profiles repository.ProfileRepository, logger *zap.Logger) *ProfileService {
	return &ProfileService{
		profiles: profiles,
		logger:   logger,
		tracer:   otel.Tracer("github.com/kishorefa/Sainxt-platform-backend/internal/service"),
	}
}

// SaveSection merges one wizard step into the caller's profile document.
func (s *ProfileService) SaveSection(ctx context.Context, email, section string, fields map[string]any) error {
	ctx, span := s.startSpan(ctx, "ProfileService.SaveSection")
	defer span.End()

	allowed, ok := sectionFields[section]
	if !ok {
		return fmt.Errorf("unknown profile section %q: %w", section, domain.ErrNotFound)
	}

	update := make(map[string]any, len(fields))
	for _, key := range allowed {
		if v, present := fields[key]; present {
			if str, isStr := v.(string); isStr {
				v = strings.TrimSpace(str)
			}
			update[key] = v
		}
	}
	if len(update) == 0 {
		return nil
	}

	if err := s.profiles.UpsertSection(ctx, email, update); err != nil {
		span.RecordError(err)
		return fmt.Errorf("save profile section: %w", err)
	}
	s.log().Debug("profile section saved", zap.String("email", email), zap.String("section", section), zap.Int("fields", len(update)))
	return nil
}

// Get returns the caller's profile document.
func (s *ProfileService) Get(ctx context.Context, email string) (domain.Profile, error) {
	ctx, span := s.startSpan(ctx, "ProfileService.Get")
	defer span.End()
	return s.profiles.FindByEmail(ctx, email)
}

func (s *ProfileService) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	if s == nil || s.tracer == nil {
		return ctx, trace.SpanFromContext(ctx)
	}
	return s.tracer.Start(ctx, name)
}

func (s *ProfileService) log() *zap.Logger {
	if s != nil && s.logger != nil {
		return s.logger
	}
	return zap.L()
}
