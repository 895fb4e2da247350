package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/kishorefa/Sainxt-platform-backend/internal/domain"
	"github.com/kishorefa/Sainxt-platform-backend/internal/service"
)

func TestSaveSectionFiltersUnknownFields(t *testing.T) {
	ctx := context.Background()
	profiles := newMemoryProfileRepo()
	svc := service.NewProfileService(profiles, zap.NewNop())

	err := svc.SaveSection(ctx, "asha@example.com", service.SectionEducation, map[string]any{
		"university": " IIT Madras ",
		"major":      "CS",
		"email":      "attacker@example.com",
		"password":   "sneaky",
	})
	require.NoError(t, err)

	stored := profiles.sections["asha@example.com"]
	require.Equal(t, "IIT Madras", stored["university"])
	require.Equal(t, "CS", stored["major"])
	require.NotContains(t, stored, "email")
	require.NotContains(t, stored, "password")
}

func TestSaveSectionRejectsUnknownSection(t *testing.T) {
	svc := service.NewProfileService(newMemoryProfileRepo(), zap.NewNop())
	err := svc.SaveSection(context.Background(), "asha@example.com", "admin", map[string]any{"x": "y"})
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSaveSectionSkipsEmptyUpdate(t *testing.T) {
	profiles := newMemoryProfileRepo()
	svc := service.NewProfileService(profiles, zap.NewNop())

	err := svc.SaveSection(context.Background(), "asha@example.com", service.SectionSkills, map[string]any{"unrelated": "value"})
	require.NoError(t, err)
	require.Empty(t, profiles.sections["asha@example.com"])
}
