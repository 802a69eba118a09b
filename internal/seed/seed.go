package seed

import (
	"context"
	"errors"

	"github.com/escolabr/escolar/internal/app/models"
	"github.com/escolabr/escolar/internal/app/repositories"
	"github.com/escolabr/escolar/internal/config"
	"github.com/escolabr/escolar/internal/pkg/apperrors"
	"github.com/escolabr/escolar/internal/pkg/auth"
	"github.com/escolabr/escolar/internal/pkg/logger"
)

// Run seeds the role catalog and, when configured, the bootstrap general
// admin. Safe to run on every startup.
func Run(ctx context.Context, cfg *config.Config, repos *repositories.Repositories) error {
	for _, role := range models.DefaultRoles {
		if err := repos.Role.EnsureRole(ctx, role); err != nil {
			return err
		}
	}

	if cfg.Seed.AdminEmail == "" || cfg.Seed.AdminPassword == "" {
		logger.Debug().Msg("No bootstrap admin configured, skipping")
		return nil
	}

	return seedAdmin(ctx, cfg, repos)
}

func seedAdmin(ctx context.Context, cfg *config.Config, repos *repositories.Repositories) error {
	existing, err := repos.Identity.GetByEmail(ctx, cfg.Seed.AdminEmail)
	if err != nil && !errors.Is(err, apperrors.ErrIdentityNotFound) {
		return err
	}

	if existing == nil {
		hash, err := auth.HashPassword(cfg.Seed.AdminPassword)
		if err != nil {
			return err
		}

		email := cfg.Seed.AdminEmail
		existing = &models.Identity{
			FullName:     "Administrator",
			Email:        &email,
			PasswordHash: hash,
			Active:       true,
		}
		if err := repos.Identity.Create(ctx, existing); err != nil {
			return err
		}
		logger.Info().Str("email", email).Msg("Bootstrap admin created")
	}

	return repos.Role.AssignRole(ctx, existing.ID, models.RoleGeneralAdmin)
}
