// Package session serves the session introspection endpoint used by
// browser code to learn who is signed in.
package session

import (
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/abrigo-digital/shelter-admin/internal/auth"
	"github.com/abrigo-digital/shelter-admin/internal/rbac"
	"github.com/abrigo-digital/shelter-admin/internal/web/handler"
)

// Path is the path of the session endpoint.
const Path = handler.APIPath + "/session"

// User is the public view of the signed in account.
type User struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Role       rbac.Role  `json:"role"`
	ValidUntil *time.Time `json:"validUntil"`
}

// Service is the session handler service.
type Service struct {
	handler.Service
	guard *auth.Guard
}

// Init registers the session route.
func (s *Service) Init(app *fiber.App, deps *handler.Deps) error {
	if app == nil || !deps.Valid() {
		return handler.ErrNilDeps
	}

	s.guard = deps.Guard
	app.Get(Path, s.Get)

	return nil
}

// Get answers {"user": {...}} for a live session and 401 {"user": null} otherwise.
// The role is the one captured at login.
func (s *Service) Get(c *fiber.Ctx) error {
	p, err := s.guard.AuthenticateAny(c.UserContext(), auth.Credentials(c, s.guard.CookieName()))
	if errors.Is(err, auth.ErrUnauthenticated) {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"user": nil})
	}

	if err != nil {
		log.Error().Err(err).Msg("failed to resolve session")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"user": nil})
	}

	return c.JSON(fiber.Map{"user": User{
		ID:         strconv.FormatUint(p.UserID, 10),
		Name:       p.Name,
		Role:       p.Role,
		ValidUntil: p.ValidUntil,
	}})
}
