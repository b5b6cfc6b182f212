// Package authapi serves JSON login and logout for API clients.
package authapi

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/abrigo-digital/shelter-admin/internal/auth"
	"github.com/abrigo-digital/shelter-admin/internal/config"
	"github.com/abrigo-digital/shelter-admin/internal/rbac"
	"github.com/abrigo-digital/shelter-admin/internal/web/handler"
	"github.com/abrigo-digital/shelter-admin/internal/web/handler/api/crud"
)

const (
	// LoginPath is the JSON login endpoint.
	LoginPath = handler.APIPath + "/auth/login"
	// LogoutPath is the JSON logout endpoint.
	LogoutPath = handler.APIPath + "/auth/logout"
)

type credentials struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	User      struct {
		ID   uint64    `json:"id"`
		Name string    `json:"name"`
		Role rbac.Role `json:"role"`
	} `json:"user"`
}

// Service is the API auth handler service.
type Service struct {
	handler.Service
	cfg   *config.Config
	auth  *auth.Service
	guard *auth.Guard
}

// Init registers the login and logout routes. limit, when set, runs before login.
func (s *Service) Init(app *fiber.App, deps *handler.Deps, limit ...fiber.Handler) error {
	if app == nil || !deps.Valid() {
		return handler.ErrNilDeps
	}

	s.cfg = deps.Cfg
	s.auth = deps.Auth
	s.guard = deps.Guard

	app.Post(LoginPath, append(limit, s.Login)...)
	app.Post(LogoutPath, s.Logout)

	return nil
}

// Login verifies the credentials, sets the session cookie and returns the token
// for bearer use.
func (s *Service) Login(c *fiber.Ctx) error {
	in, err := crud.Bind[credentials](c)
	if err != nil {
		return crud.Fail(c, err)
	}

	sess, user, err := s.auth.Login(c.UserContext(), in.Email, in.Password)
	if errors.Is(err, auth.ErrInvalidCredentials) {
		log.Info().Str("ip", c.IP()).Msg("api login failed")
		return crud.Message(c, fiber.StatusUnauthorized, auth.ErrInvalidCredentials.Error())
	}

	if err != nil {
		return crud.Fail(c, err)
	}

	handler.SetSessionCookie(c, s.cfg, sess)

	out := loginResponse{Token: sess.Token, ExpiresAt: sess.ExpiresAt}
	out.User.ID = user.ID
	out.User.Name = user.Name
	out.User.Role = user.Role

	return c.JSON(out)
}

// Logout revokes the caller's session if any and clears the cookie.
func (s *Service) Logout(c *fiber.Ctx) error {
	if err := s.auth.Logout(c.UserContext(), auth.Credential(c, s.guard.CookieName())); err != nil {
		return crud.Fail(c, err)
	}

	handler.ClearSessionCookie(c, s.cfg)

	return c.JSON(fiber.Map{"message": "logged out"})
}
