package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/kishorefa/Sainxt-platform-backend/internal/config"
	"github.com/kishorefa/Sainxt-platform-backend/internal/domain"
	"github.com/kishorefa/Sainxt-platform-backend/internal/password"
	"github.com/kishorefa/Sainxt-platform-backend/internal/repository"
)

// EnsureAdmin creates the configured admin account at startup if missing.
// Skipped when ADMIN_EMAIL or ADMIN_PASSWORD is not set.
func EnsureAdmin(lc fx.Lifecycle, cfg config.Config, users repository.UserRepository, logger *zap.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return ensureAdmin(ctx, cfg, users, logger)
		},
	})
}

func ensureAdmin(ctx context.Context, cfg config.Config, users repository.UserRepository, logger *zap.Logger) error {
	email := strings.ToLower(strings.TrimSpace(cfg.AdminEmail))
	if email == "" || strings.TrimSpace(cfg.AdminPassword) == "" {
		return nil
	}

	if _, err := users.FindByEmail(ctx, email); err == nil {
		return nil
	} else if !errors.Is(err, domain.ErrUnknownAccount) {
		return fmt.Errorf("bootstrap lookup admin: %w", err)
	}

	hashed, err := password.Hash(cfg.AdminPassword)
	if err != nil {
		return fmt.Errorf("bootstrap hash password: %w", err)
	}

	id, err := users.Insert(ctx, domain.User{
		FirstName:    "Admin",
		Email:        email,
		PasswordHash: hashed,
		UserType:     domain.UserTypeAdmin,
		CreatedAt:    time.Now().UTC(),
	})
	if err != nil {
		// A concurrent replica may have created it first.
		if errors.Is(err, domain.ErrDuplicateAccount) {
			return nil
		}
		return fmt.Errorf("bootstrap create admin: %w", err)
	}

	if logger != nil {
		logger.Info("bootstrap admin user created",
			zap.String("email", email),
			zap.String("user_id", id.Hex()),
		)
	}
	return nil
}
