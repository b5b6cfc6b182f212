package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/abrigo-digital/shelter-admin/internal/db/models"
	"github.com/abrigo-digital/shelter-admin/internal/rbac"
	"github.com/abrigo-digital/shelter-admin/internal/session"
)

func TestService_Login(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	u := f.user(t, "Admin@Shelter.org", rbac.RoleAdmin)
	assert.Equal(t, "admin@shelter.org", u.Email)

	sess, got, err := f.service.Login(ctx, "  ADMIN@shelter.org ", "password123")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)
	assert.Equal(t, rbac.RoleAdmin, sess.Role)
	assert.WithinDuration(t, time.Now().Add(time.Hour), sess.ExpiresAt, 5*time.Second)

	_, _, err = f.service.Login(ctx, "admin@shelter.org", "wrong")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = f.service.Login(ctx, "nobody@shelter.org", "password123")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestService_LoginInactive(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.provider.CreateUser(ctx, NewUser{
		Email: "off@shelter.org", Name: "Off", Password: "password123", Role: rbac.RoleEditor, Active: false,
	})
	require.NoError(t, err)

	// same error as a wrong password
	_, _, err = f.service.Login(ctx, "off@shelter.org", "password123")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	var n int64
	require.NoError(t, f.db.Model(&models.Session{}).Count(&n).Error)
	assert.Zero(t, n)
}

func TestService_LoginUpgradesLegacyHash(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	legacy, err := bcrypt.GenerateFromPassword([]byte("imported!"), bcrypt.MinCost)
	require.NoError(t, err)

	require.NoError(t, f.db.Create(&models.User{
		Email: "old@shelter.org", Name: "Old", Password: string(legacy), Role: rbac.RoleViewer, Active: true,
	}).Error)

	_, u, err := f.service.Login(ctx, "old@shelter.org", "imported!")
	require.NoError(t, err)
	assert.False(t, u.NeedsRehash())

	stored, err := f.provider.GetUser(ctx, u.ID)
	require.NoError(t, err)
	assert.False(t, stored.NeedsRehash())
	assert.True(t, stored.VerifyPassword("imported!"))
}

func TestService_Logout(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.user(t, "admin@shelter.org", rbac.RoleAdmin)
	token := f.login(t, "admin@shelter.org")
	other := f.login(t, "admin@shelter.org")

	require.NoError(t, f.service.Logout(ctx, token))
	require.NoError(t, f.service.Logout(ctx, ""))

	_, err := f.resolver.Resolve(ctx, token)
	require.ErrorIs(t, err, ErrUnauthenticated)

	_, err = f.resolver.Resolve(ctx, other)
	require.NoError(t, err)
}

func TestService_UpdateUserRevokesSessions(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	admin := f.user(t, "admin@shelter.org", rbac.RoleAdmin)
	editor := f.user(t, "editor@shelter.org", rbac.RoleEditor)
	actor := &Principal{UserID: admin.ID, Role: rbac.RoleAdmin}

	token := f.login(t, "editor@shelter.org")

	// a cosmetic change keeps the session
	name := "Editora"
	u, err := f.service.UpdateUser(ctx, actor, editor.ID, UserUpdate{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Editora", u.Name)

	_, err = f.resolver.Resolve(ctx, token)
	require.NoError(t, err)

	// a role change ends it
	role := rbac.RoleViewer
	u, err = f.service.UpdateUser(ctx, actor, editor.ID, UserUpdate{Role: &role})
	require.NoError(t, err)
	assert.Equal(t, rbac.RoleViewer, u.Role)

	_, err = f.resolver.Resolve(ctx, token)
	require.ErrorIs(t, err, ErrUnauthenticated)

	// new login carries the new role
	p, err := f.resolver.Resolve(ctx, f.login(t, "editor@shelter.org"))
	require.NoError(t, err)
	assert.Equal(t, rbac.RoleViewer, p.Role)
}

func TestService_DeactivationEndsSessions(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	admin := f.user(t, "admin@shelter.org", rbac.RoleAdmin)
	viewer := f.user(t, "viewer@shelter.org", rbac.RoleViewer)
	token := f.login(t, "viewer@shelter.org")

	inactive := false
	_, err := f.service.UpdateUser(ctx, &Principal{UserID: admin.ID, Role: rbac.RoleAdmin}, viewer.ID, UserUpdate{Active: &inactive})
	require.NoError(t, err)

	_, err = f.guard.Check(ctx, token, rbac.ResourceAnimals, rbac.ActionView)
	require.ErrorIs(t, err, ErrUnauthenticated)

	_, _, err = f.service.Login(ctx, "viewer@shelter.org", "password123")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

// revokeFailingStore fails RevokeUser while delegating everything else.
type revokeFailingStore struct {
	session.Store
}

func (revokeFailingStore) RevokeUser(context.Context, uint64) error {
	return errors.New("session backend down")
}

func TestService_UpdateUserKeepsAccountWhenRevokeFails(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	admin := f.user(t, "admin@shelter.org", rbac.RoleAdmin)
	editor := f.user(t, "editor@shelter.org", rbac.RoleEditor)
	actor := &Principal{UserID: admin.ID, Role: rbac.RoleAdmin}

	svc := NewService(f.provider, revokeFailingStore{Store: f.store}, time.Hour)

	role := rbac.RoleViewer
	_, err := svc.UpdateUser(ctx, actor, editor.ID, UserUpdate{Role: &role})
	require.Error(t, err)

	// the failed request left no persisted change behind
	var stored models.User
	require.NoError(t, f.db.First(&stored, editor.ID).Error)
	assert.Equal(t, rbac.RoleEditor, stored.Role)

	// changes that keep sessions do not touch the store
	name := "Editora"
	u, err := svc.UpdateUser(ctx, actor, editor.ID, UserUpdate{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Editora", u.Name)

	// deleting succeeds; sessions of a missing account no longer resolve
	token := f.login(t, "editor@shelter.org")
	require.NoError(t, svc.DeleteUser(ctx, actor, editor.ID))

	_, err = f.resolver.Resolve(ctx, token)
	require.ErrorIs(t, err, ErrUnauthenticated)
}

func TestService_SelfModification(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	admin := f.user(t, "admin@shelter.org", rbac.RoleAdmin)
	self := &Principal{UserID: admin.ID, Role: rbac.RoleAdmin}

	role := rbac.RoleEditor
	_, err := f.service.UpdateUser(ctx, self, admin.ID, UserUpdate{Role: &role})
	require.ErrorIs(t, err, ErrSelfModification)

	off := false
	_, err = f.service.UpdateUser(ctx, self, admin.ID, UserUpdate{Active: &off})
	require.ErrorIs(t, err, ErrSelfModification)

	require.ErrorIs(t, f.service.DeleteUser(ctx, self, admin.ID), ErrSelfModification)
	assert.True(t, IsConflict(ErrSelfModification))

	// renaming yourself is fine
	name := "Root"
	_, err = f.service.UpdateUser(ctx, self, admin.ID, UserUpdate{Name: &name})
	require.NoError(t, err)
}

func TestService_DeleteUser(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	admin := f.user(t, "admin@shelter.org", rbac.RoleAdmin)
	viewer := f.user(t, "viewer@shelter.org", rbac.RoleViewer)
	token := f.login(t, "viewer@shelter.org")

	actor := &Principal{UserID: admin.ID, Role: rbac.RoleAdmin}

	require.NoError(t, f.service.DeleteUser(ctx, actor, viewer.ID))
	require.ErrorIs(t, f.service.DeleteUser(ctx, actor, viewer.ID), ErrUserNotFound)

	_, err := f.store.Lookup(ctx, token)
	require.ErrorIs(t, err, session.ErrNotFound)
}

func TestLocalProvider_Accounts(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	u := f.user(t, "a@shelter.org", rbac.RoleViewer)
	f.user(t, "b@shelter.org", rbac.RoleEditor)

	_, err := f.provider.CreateUser(ctx, NewUser{Email: "A@shelter.org", Password: "x", Role: rbac.RoleViewer})
	require.ErrorIs(t, err, ErrEmailExists)

	_, err = f.provider.CreateUser(ctx, NewUser{Email: "c@shelter.org", Password: "x", Role: "OWNER"})
	require.ErrorIs(t, err, rbac.ErrUnknownRole)

	taken := "b@shelter.org"
	_, err = f.provider.UpdateUser(ctx, u.ID, UserUpdate{Email: &taken})
	require.ErrorIs(t, err, ErrEmailExists)

	_, err = f.provider.UpdateUser(ctx, 9999, UserUpdate{})
	require.ErrorIs(t, err, ErrUserNotFound)

	require.ErrorIs(t, f.provider.ChangePassword(ctx, u.ID, "wrong", "newpassword"), ErrInvalidOldPassword)
	require.NoError(t, f.provider.ChangePassword(ctx, u.ID, "password123", "newpassword"))

	_, err = f.provider.Authenticate(ctx, "a@shelter.org", "newpassword")
	require.NoError(t, err)

	require.NoError(t, f.provider.SetActive(ctx, u.ID, false))
	stored, err := f.provider.GetUser(ctx, u.ID)
	require.NoError(t, err)
	assert.False(t, stored.Active)

	users, total, err := f.provider.ListUsers(ctx, 1, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, users, 1)

	n, err := f.provider.CountUsers(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	_, err = f.provider.GetUser(ctx, 9999)
	require.ErrorIs(t, err, ErrUserNotFound)
}
