package daemon

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/abrigo-digital/shelter-admin/internal/auth"
	"github.com/abrigo-digital/shelter-admin/internal/config"
	"github.com/abrigo-digital/shelter-admin/internal/rbac"
	"github.com/abrigo-digital/shelter-admin/internal/secret"
)

// seed creates the bootstrap administrator when the user table is empty.
// Without a configured password a random one is generated and logged once.
func seed(ctx context.Context, cfg *config.Config, db *gorm.DB) error {
	b := cfg.Bootstrap
	if b.Email == "" {
		return nil
	}

	provider := auth.NewLocalProvider(db)

	count, err := provider.CountUsers(ctx)
	if err != nil {
		return fmt.Errorf("count users: %w", err)
	}

	if count > 0 {
		return nil
	}

	password := b.Password
	generated := password == ""

	if generated {
		if password, err = secret.Password(); err != nil {
			return err
		}
	}

	name := b.Name
	if name == "" {
		name = "Administrator"
	}

	user, err := provider.CreateUser(ctx, auth.NewUser{
		Email:    b.Email,
		Name:     name,
		Password: password,
		Role:     rbac.RoleAdmin,
		Active:   true,
	})
	if err != nil {
		return fmt.Errorf("create bootstrap administrator: %w", err)
	}

	ev := log.Info().Uint64("user_id", user.ID).Str("email", user.Email)
	if generated {
		ev = log.Warn().Uint64("user_id", user.ID).Str("email", user.Email).Str("password", password)
	}

	ev.Msg("bootstrap administrator created")

	return nil
}
