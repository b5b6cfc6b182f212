package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/abrigo-digital/shelter-admin/internal/db/models"
	"github.com/abrigo-digital/shelter-admin/internal/rbac"
)

// GormStore keeps sessions in the sessions table.
// Each session is a single INSERT or DELETE, so readers never see a partial row.
type GormStore struct {
	db    *gorm.DB
	clock clock
}

// NewGormStore returns a database backed store.
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// WithClock overrides the time source.
func (s *GormStore) WithClock(now func() time.Time) *GormStore {
	s.clock = now
	return s
}

// Issue implements Store.
func (s *GormStore) Issue(ctx context.Context, userID uint64, role rbac.Role, ttl time.Duration) (*Session, error) {
	if err := checkIssue(role, ttl); err != nil {
		return nil, err
	}

	token, err := NewToken()
	if err != nil {
		return nil, fmt.Errorf("generate session token: %w", err)
	}

	now := s.clock.now()
	row := models.Session{
		Token:     token,
		UserID:    userID,
		Role:      string(role),
		IssuedAt:  now,
		ExpiresAt: now.Add(ttl),
	}

	if err = s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return nil, fmt.Errorf("store session: %w", err)
	}

	return fromRow(&row)
}

// Lookup implements Store.
func (s *GormStore) Lookup(ctx context.Context, token string) (*Session, error) {
	if !wellFormed(token) {
		return nil, ErrNotFound
	}

	var row models.Session

	err := s.db.WithContext(ctx).Where("token = ?", token).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("lookup session: %w", err)
	}

	return fromRow(&row)
}

// Revoke implements Store.
func (s *GormStore) Revoke(ctx context.Context, token string) error {
	if !wellFormed(token) {
		return nil
	}

	if err := s.db.WithContext(ctx).Where("token = ?", token).Delete(&models.Session{}).Error; err != nil {
		return fmt.Errorf("revoke session: %w", err)
	}

	return nil
}

// RevokeUser implements Store.
func (s *GormStore) RevokeUser(ctx context.Context, userID uint64) error {
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&models.Session{}).Error; err != nil {
		return fmt.Errorf("revoke user sessions: %w", err)
	}

	return nil
}

// PurgeExpired deletes sessions that expired before now and returns how many were removed.
func (s *GormStore) PurgeExpired(ctx context.Context) (int64, error) {
	res := s.db.WithContext(ctx).Where("expires_at <= ?", s.clock.now()).Delete(&models.Session{})
	if res.Error != nil {
		return 0, fmt.Errorf("purge sessions: %w", res.Error)
	}

	return res.RowsAffected, nil
}

func fromRow(row *models.Session) (*Session, error) {
	role, err := rbac.ParseRole(row.Role)
	if err != nil {
		return nil, ErrNotFound
	}

	return &Session{
		Token:     row.Token,
		UserID:    row.UserID,
		Role:      role,
		IssuedAt:  row.IssuedAt.UTC(),
		ExpiresAt: row.ExpiresAt.UTC(),
	}, nil
}
