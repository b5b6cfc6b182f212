// Package logout ends the browser session.
package logout

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/abrigo-digital/shelter-admin/internal/auth"
	"github.com/abrigo-digital/shelter-admin/internal/config"
	"github.com/abrigo-digital/shelter-admin/internal/web/handler"
)

// Path is the logout path.
const Path = handler.RootPath + "logout"

// Service is the logout handler service.
type Service struct {
	handler.Service
	cfg   *config.Config
	auth  *auth.Service
	guard *auth.Guard
}

// Init initializes the logout handler.
func (s *Service) Init(app *fiber.App, deps *handler.Deps) error {
	if app == nil || !deps.Valid() {
		return handler.ErrNilDeps
	}

	s.cfg = deps.Cfg
	s.auth = deps.Auth
	s.guard = deps.Guard

	// logout route (outside route guard protection)
	app.Get(Path, s.Logout)
	app.Post(Path, s.Logout)

	return nil
}

// Logout revokes the session and clears the cookie.
func (s *Service) Logout(c *fiber.Ctx) error {
	if err := s.auth.Logout(c.UserContext(), auth.Credential(c, s.guard.CookieName())); err != nil {
		log.Error().Err(err).Msg("failed to delete session")
	}

	handler.ClearSessionCookie(c, s.cfg)

	return c.Redirect(handler.LoginPath, fiber.StatusSeeOther)
}
