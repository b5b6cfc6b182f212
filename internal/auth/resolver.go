package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/abrigo-digital/shelter-admin/internal/db/models"
	"github.com/abrigo-digital/shelter-admin/internal/session"
)

// Resolver maps credentials to principals. It is safe for concurrent use.
type Resolver struct {
	store session.Store
	db    *gorm.DB
	now   func() time.Time
}

// NewResolver returns a Resolver reading sessions from store and users from db.
func NewResolver(store session.Store, db *gorm.DB) *Resolver {
	return &Resolver{store: store, db: db, now: time.Now}
}

// WithClock overrides the time source.
func (r *Resolver) WithClock(now func() time.Time) *Resolver {
	r.now = now
	return r
}

// Resolve returns the principal behind credential.
//
// Absent sessions yield ErrUnauthenticated. A session whose user is missing
// or no longer enabled yields ErrUnauthenticated wrapping ErrInactiveAccount.
// Any other error is a backend failure and must not be treated as absence.
func (r *Resolver) Resolve(ctx context.Context, credential string) (*Principal, error) {
	if credential == "" {
		return nil, ErrUnauthenticated
	}

	sess, err := r.store.Lookup(ctx, credential)
	if errors.Is(err, session.ErrNotFound) {
		return nil, ErrUnauthenticated
	}

	if err != nil {
		return nil, fmt.Errorf("resolve session: %w", err)
	}

	now := r.now()
	if !sess.Valid(now) {
		return nil, ErrUnauthenticated
	}

	var user models.User

	err = r.db.WithContext(ctx).
		Select("id", "active", "email", "name", "valid_until").
		Where("id = ?", sess.UserID).
		Take(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, inactive()
	}

	if err != nil {
		return nil, fmt.Errorf("resolve session user: %w", err)
	}

	if !user.Enabled(now) {
		return nil, inactive()
	}

	return &Principal{
		UserID:     user.ID,
		Name:       user.Name,
		Email:      user.Email,
		Role:       sess.Role,
		ExpiresAt:  sess.ExpiresAt,
		ValidUntil: user.ValidUntil,
	}, nil
}

func inactive() error {
	return fmt.Errorf("%w: %w", ErrUnauthenticated, ErrInactiveAccount)
}
