package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/alexedwards/argon2id"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/abrigo-digital/shelter-admin/internal/db/models"
	"github.com/abrigo-digital/shelter-admin/internal/rbac"
)

const whereID = "id = ?"

// dummyHash is verified against when the email is unknown so that a failed
// login takes the same time whether or not the account exists.
var dummyHash = sync.OnceValue(func() string { //nolint:gochecknoglobals
	h, _ := argon2id.CreateHash("not-a-password", argon2id.DefaultParams)
	return h
})

// NewUser holds the fields of an account to create.
type NewUser struct {
	Email      string
	Name       string
	Password   string
	Role       rbac.Role
	Active     bool
	ValidUntil *time.Time
}

// UserUpdate holds optional account changes; nil fields are left untouched.
type UserUpdate struct {
	Email      *string
	Name       *string
	Password   *string
	Role       *rbac.Role
	Active     *bool
	ValidUntil *time.Time
}

// LocalProvider handles local database authentication and account storage.
type LocalProvider struct {
	db  *gorm.DB
	now func() time.Time
}

// NewLocalProvider creates a new local authentication provider.
func NewLocalProvider(db *gorm.DB) *LocalProvider {
	return &LocalProvider{db: db, now: time.Now}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Authenticate verifies email and password. Unknown emails, wrong passwords
// and disabled accounts all yield ErrInvalidCredentials.
// A legacy bcrypt hash is replaced by an argon2id hash on success.
func (p *LocalProvider) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	var user models.User

	err := p.db.WithContext(ctx).Where("email = ?", normalizeEmail(email)).Take(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		_, _ = argon2id.ComparePasswordAndHash(password, dummyHash())

		return nil, ErrInvalidCredentials
	}

	if err != nil {
		return nil, fmt.Errorf("failed to query user: %w", err)
	}

	if !user.VerifyPassword(password) {
		return nil, ErrInvalidCredentials
	}

	if !user.Enabled(p.now()) {
		log.Info().Uint64("user_id", user.ID).Msg("login refused for inactive account")
		return nil, ErrInvalidCredentials
	}

	if user.NeedsRehash() {
		p.rehash(ctx, &user, password)
	}

	return &user, nil
}

func (p *LocalProvider) rehash(ctx context.Context, user *models.User, password string) {
	hashed, err := models.HashPassword(password)
	if err != nil {
		log.Error().Err(err).Uint64("user_id", user.ID).Msg("failed to upgrade password hash")
		return
	}

	err = p.db.WithContext(ctx).Model(&models.User{}).Where(whereID, user.ID).Update("password", hashed).Error
	if err != nil {
		log.Error().Err(err).Uint64("user_id", user.ID).Msg("failed to upgrade password hash")
		return
	}

	user.Password = hashed
}

// CreateUser creates a new local user.
func (p *LocalProvider) CreateUser(ctx context.Context, nu NewUser) (*models.User, error) {
	if !nu.Role.Valid() {
		return nil, rbac.ErrUnknownRole
	}

	hashed, err := models.HashPassword(nu.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.User{
		Active:     nu.Active,
		Email:      normalizeEmail(nu.Email),
		Name:       strings.TrimSpace(nu.Name),
		Password:   hashed,
		Role:       nu.Role,
		ValidUntil: nu.ValidUntil,
	}

	err = p.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := p.ensureEmailFree(tx, user.Email, 0); err != nil {
			return err
		}

		// Active defaults to true in the schema, so false must be written explicitly
		if err := tx.Create(&user).Error; err != nil {
			return fmt.Errorf("failed to create user: %w", err)
		}

		if !nu.Active {
			return tx.Model(&user).Update("active", false).Error
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	user.Active = nu.Active

	return &user, nil
}

// UpdateUser applies upd to the user and returns the stored result.
func (p *LocalProvider) UpdateUser(ctx context.Context, userID uint64, upd UserUpdate) (*models.User, error) {
	updates := map[string]any{}

	if upd.Role != nil {
		if !upd.Role.Valid() {
			return nil, rbac.ErrUnknownRole
		}

		updates["role"] = *upd.Role
	}

	if upd.Name != nil {
		updates["name"] = strings.TrimSpace(*upd.Name)
	}

	if upd.Active != nil {
		updates["active"] = *upd.Active
	}

	if upd.ValidUntil != nil {
		updates["valid_until"] = *upd.ValidUntil
	}

	if upd.Password != nil {
		hashed, err := models.HashPassword(*upd.Password)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}

		updates["password"] = hashed
	}

	var user models.User

	err := p.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where(whereID, userID).Take(&user).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUserNotFound
			}

			return err
		}

		if upd.Email != nil {
			email := normalizeEmail(*upd.Email)
			if err := p.ensureEmailFree(tx, email, userID); err != nil {
				return err
			}

			updates["email"] = email
		}

		if len(updates) == 0 {
			return nil
		}

		if err := tx.Model(&user).Updates(updates).Error; err != nil {
			return fmt.Errorf("failed to update user: %w", err)
		}

		return tx.Where(whereID, userID).Take(&user).Error
	})
	if err != nil {
		return nil, err
	}

	return &user, nil
}

// ChangePassword changes a user's password after verifying the old one.
func (p *LocalProvider) ChangePassword(ctx context.Context, userID uint64, oldPassword, newPassword string) error {
	user, err := p.GetUser(ctx, userID)
	if err != nil {
		return err
	}

	if !user.VerifyPassword(oldPassword) {
		return ErrInvalidOldPassword
	}

	_, err = p.UpdateUser(ctx, userID, UserUpdate{Password: &newPassword})

	return err
}

// SetActive activates or deactivates a user account.
func (p *LocalProvider) SetActive(ctx context.Context, userID uint64, active bool) error {
	_, err := p.UpdateUser(ctx, userID, UserUpdate{Active: &active})
	return err
}

// DeleteUser removes a user.
func (p *LocalProvider) DeleteUser(ctx context.Context, userID uint64) error {
	res := p.db.WithContext(ctx).Delete(&models.User{}, userID)
	if res.Error != nil {
		return fmt.Errorf("failed to delete user: %w", res.Error)
	}

	if res.RowsAffected == 0 {
		return ErrUserNotFound
	}

	return nil
}

// GetUser retrieves a user by ID.
func (p *LocalProvider) GetUser(ctx context.Context, userID uint64) (*models.User, error) {
	var user models.User

	err := p.db.WithContext(ctx).Where(whereID, userID).Take(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}

	if err != nil {
		return nil, err
	}

	return &user, nil
}

// ListUsers returns a page of users ordered by name and the total count.
func (p *LocalProvider) ListUsers(ctx context.Context, limit, offset int) ([]models.User, int64, error) {
	var (
		users []models.User
		total int64
	)

	tx := p.db.WithContext(ctx)

	if err := tx.Model(&models.User{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query := tx.Model(&models.User{})
	if limit > 0 {
		query = query.Limit(limit).Offset(offset)
	}

	if err := query.Order("name").Find(&users).Error; err != nil {
		return nil, 0, err
	}

	return users, total, nil
}

// CountUsers returns the number of accounts.
func (p *LocalProvider) CountUsers(ctx context.Context) (int64, error) {
	var n int64
	err := p.db.WithContext(ctx).Model(&models.User{}).Count(&n).Error

	return n, err
}

func (p *LocalProvider) ensureEmailFree(tx *gorm.DB, email string, exceptID uint64) error {
	var n int64

	if err := tx.Model(&models.User{}).Where("email = ? AND id <> ?", email, exceptID).Count(&n).Error; err != nil {
		return fmt.Errorf("failed to check existing user: %w", err)
	}

	if n > 0 {
		return ErrEmailExists
	}

	return nil
}
