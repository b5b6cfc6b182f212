// Package user serves the account administration API. Only administrators
// pass the guard for this resource.
package user

import (
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/abrigo-digital/shelter-admin/internal/auth"
	"github.com/abrigo-digital/shelter-admin/internal/rbac"
	"github.com/abrigo-digital/shelter-admin/internal/web/handler"
	"github.com/abrigo-digital/shelter-admin/internal/web/handler/api/crud"
)

const (
	// Path is the path of the user API.
	Path = handler.APIPath + "/user"

	// DefaultPageSize for listings.
	DefaultPageSize = 25
)

type createPayload struct {
	Email      string     `json:"email"      validate:"required,email,max=255"`
	Name       string     `json:"name"       validate:"required,max=100"`
	Password   string     `json:"password"   validate:"required,min=8,max=128"`
	Role       rbac.Role  `json:"role"       validate:"required,oneof=VIEWER EDITOR ADMIN"`
	Active     *bool      `json:"active"`
	ValidUntil *time.Time `json:"validUntil"`
}

type updatePayload struct {
	Email      *string    `json:"email"      validate:"omitempty,email,max=255"`
	Name       *string    `json:"name"       validate:"omitempty,min=1,max=100"`
	Password   *string    `json:"password"   validate:"omitempty,min=8,max=128"`
	Role       *rbac.Role `json:"role"       validate:"omitempty,oneof=VIEWER EDITOR ADMIN"`
	Active     *bool      `json:"active"`
	ValidUntil *time.Time `json:"validUntil"`
}

// Service provides CRUD operations for users.
type Service struct {
	handler.Service
	auth *auth.Service
}

// Init registers routes.
func (s *Service) Init(app *fiber.App, deps *handler.Deps) error {
	if app == nil || !deps.Valid() {
		return handler.ErrNilDeps
	}

	s.auth = deps.Auth
	g := deps.Guard
	id := handler.RouterRootPath + ":" + handler.IDParam

	app.Route(Path, func(router fiber.Router) {
		router.Get(handler.RouterRootPath, auth.Guarded(g, rbac.ResourceUsers, rbac.ActionView, s.List))
		router.Post(handler.RouterRootPath, auth.Guarded(g, rbac.ResourceUsers, rbac.ActionCreate, s.Create))
		router.Get(id, auth.Guarded(g, rbac.ResourceUsers, rbac.ActionView, s.Get))
		router.Put(id, auth.Guarded(g, rbac.ResourceUsers, rbac.ActionEdit, s.Update))
		router.Patch(id, auth.Guarded(g, rbac.ResourceUsers, rbac.ActionEdit, s.Update))
		router.Delete(id, auth.Guarded(g, rbac.ResourceUsers, rbac.ActionDelete, s.Delete))
	})

	return nil
}

// List returns a page of accounts.
func (s *Service) List(c *fiber.Ctx, _ *auth.Principal) error {
	limit := c.QueryInt("limit", DefaultPageSize)
	if limit < 1 || limit > 100 {
		limit = DefaultPageSize
	}

	users, total, err := s.auth.Provider().ListUsers(c.UserContext(), limit, max(c.QueryInt("offset"), 0))
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(fiber.Map{"users": users, "total": total})
}

// Get returns one account.
func (s *Service) Get(c *fiber.Ctx, _ *auth.Principal) error {
	id, err := userID(c)
	if err != nil {
		return fail(c, err)
	}

	u, err := s.auth.Provider().GetUser(c.UserContext(), id)
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(u)
}

// Create adds an account. Accounts are active unless stated otherwise.
func (s *Service) Create(c *fiber.Ctx, p *auth.Principal) error {
	in, err := crud.Bind[createPayload](c)
	if err != nil {
		return fail(c, err)
	}

	u, err := s.auth.CreateUser(c.UserContext(), auth.NewUser{
		Email:      in.Email,
		Name:       in.Name,
		Password:   in.Password,
		Role:       in.Role,
		Active:     in.Active == nil || *in.Active,
		ValidUntil: in.ValidUntil,
	})
	if err != nil {
		return fail(c, err)
	}

	log.Info().Uint64("user_id", p.UserID).Uint64("created_id", u.ID).Msg("user created")

	return c.Status(fiber.StatusCreated).JSON(u)
}

// Update changes an account. Role, activation, validity or password changes
// end the sessions of the account.
func (s *Service) Update(c *fiber.Ctx, p *auth.Principal) error {
	id, err := userID(c)
	if err != nil {
		return fail(c, err)
	}

	in, err := crud.Bind[updatePayload](c)
	if err != nil {
		return fail(c, err)
	}

	u, err := s.auth.UpdateUser(c.UserContext(), p, id, auth.UserUpdate{
		Email:      in.Email,
		Name:       in.Name,
		Password:   in.Password,
		Role:       in.Role,
		Active:     in.Active,
		ValidUntil: in.ValidUntil,
	})
	if err != nil {
		return fail(c, err)
	}

	log.Info().Uint64("user_id", p.UserID).Uint64("updated_id", id).Msg("user updated")

	return c.JSON(u)
}

// Delete removes an account. Administrators cannot delete themselves.
func (s *Service) Delete(c *fiber.Ctx, p *auth.Principal) error {
	id, err := userID(c)
	if err != nil {
		return fail(c, err)
	}

	if err = s.auth.DeleteUser(c.UserContext(), p, id); err != nil {
		return fail(c, err)
	}

	log.Info().Uint64("user_id", p.UserID).Uint64("deleted_id", id).Msg("user deleted")

	return c.JSON(fiber.Map{"message": "deleted"})
}

func userID(c *fiber.Ctx) (uint64, error) {
	id, err := strconv.ParseUint(c.Params(handler.IDParam), 10, 64)
	if err != nil || id == 0 {
		return 0, auth.ErrUserNotFound
	}

	return id, nil
}

func fail(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, auth.ErrUserNotFound):
		return crud.Message(c, fiber.StatusNotFound, "not found")
	case auth.IsConflict(err), errors.Is(err, rbac.ErrUnknownRole):
		return crud.Message(c, fiber.StatusBadRequest, err.Error())
	default:
		return crud.Fail(c, err)
	}
}
