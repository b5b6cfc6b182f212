package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/abrigo-digital/shelter-admin/internal/db/models"
	"github.com/abrigo-digital/shelter-admin/internal/rbac"
	"github.com/abrigo-digital/shelter-admin/internal/session"
)

// Service combines account storage with the session store.
type Service struct {
	provider *LocalProvider
	store    session.Store
	ttl      time.Duration
}

// NewService creates a new auth service issuing sessions valid for ttl.
func NewService(provider *LocalProvider, store session.Store, ttl time.Duration) *Service {
	return &Service{provider: provider, store: store, ttl: ttl}
}

// Provider returns the account provider.
func (s *Service) Provider() *LocalProvider {
	return s.provider
}

// Login verifies credentials and issues a new session with the user's current role.
func (s *Service) Login(ctx context.Context, email, password string) (*session.Session, *models.User, error) {
	user, err := s.provider.Authenticate(ctx, email, password)
	if err != nil {
		return nil, nil, err
	}

	sess, err := s.store.Issue(ctx, user.ID, user.Role, s.ttl)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to issue session: %w", err)
	}

	log.Info().Uint64("user_id", user.ID).Str("role", string(user.Role)).Msg("user logged in")

	return sess, user, nil
}

// Logout ends the session behind token. Unknown tokens are ignored.
func (s *Service) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}

	return s.store.Revoke(ctx, token)
}

// CreateUser creates an account.
func (s *Service) CreateUser(ctx context.Context, nu NewUser) (*models.User, error) {
	return s.provider.CreateUser(ctx, nu)
}

// UpdateUser changes an account on behalf of actor. Changes to role, active
// flag, validity or password end every session of the account, so the next
// request needs a fresh login with the new role.
func (s *Service) UpdateUser(ctx context.Context, actor *Principal, userID uint64, upd UserUpdate) (*models.User, error) {
	if actor != nil && actor.UserID == userID {
		demote := upd.Role != nil && *upd.Role != rbac.RoleAdmin && actor.Role == rbac.RoleAdmin
		deactivate := upd.Active != nil && !*upd.Active

		if demote || deactivate {
			return nil, ErrSelfModification
		}
	}

	revoke := upd.Role != nil || upd.Active != nil || upd.ValidUntil != nil || upd.Password != nil

	// Sessions go first: a failing store leaves the account untouched.
	if revoke {
		if err := s.store.RevokeUser(ctx, userID); err != nil {
			return nil, fmt.Errorf("failed to revoke sessions: %w", err)
		}
	}

	user, err := s.provider.UpdateUser(ctx, userID, upd)
	if err != nil {
		return nil, err
	}

	// A login between the two steps still carries the old role.
	if revoke {
		if err = s.store.RevokeUser(ctx, userID); err != nil {
			log.Error().Err(err).Uint64("user_id", userID).Msg("failed to revoke sessions after account change")
		}
	}

	return user, nil
}

// DeleteUser removes an account and its sessions. Actors cannot delete themselves.
func (s *Service) DeleteUser(ctx context.Context, actor *Principal, userID uint64) error {
	if actor != nil && actor.UserID == userID {
		return ErrSelfModification
	}

	if err := s.provider.DeleteUser(ctx, userID); err != nil {
		return err
	}

	// the resolver rejects sessions of a missing account anyway
	if err := s.store.RevokeUser(ctx, userID); err != nil {
		log.Error().Err(err).Uint64("user_id", userID).Msg("failed to revoke sessions of deleted account")
	}

	return nil
}

// IsConflict reports whether err is a business rule rejection rather than a failure.
func IsConflict(err error) bool {
	return errors.Is(err, ErrSelfModification) || errors.Is(err, ErrEmailExists)
}
