package login

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/abrigo-digital/shelter-admin/internal/auth"
	"github.com/abrigo-digital/shelter-admin/internal/config"
	"github.com/abrigo-digital/shelter-admin/internal/web/handler"
)

const (
	// Path is the path to the login page.
	Path = handler.LoginPath

	// TemplateName is the login template.
	TemplateName = "login"
)

type form struct {
	Email    string `form:"email"`
	Password string `form:"password"`
}

// Service is the login handler service.
type Service struct {
	handler.Service
	cfg  *config.Config
	auth *auth.Service
}

// Init initializes the login handler. limit, when set, runs before the form post.
func (s *Service) Init(app *fiber.App, deps *handler.Deps, limit ...fiber.Handler) error {
	if app == nil || !deps.Valid() {
		return handler.ErrNilDeps
	}

	s.cfg = deps.Cfg
	s.auth = deps.Auth

	// register routes
	app.Route(Path, func(router fiber.Router) {
		router.Get(handler.RouterRootPath, s.Get)
		router.Post(handler.RouterRootPath, append(limit, s.Post)...)
	})

	return nil
}

// Get handles the login page rendering.
func (s *Service) Get(c *fiber.Ctx) error {
	return s.render(c, fiber.StatusOK, "", nil)
}

// Post handles the login form submission.
func (s *Service) Post(c *fiber.Ctx) error {
	in := new(form)

	if err := c.BodyParser(in); err != nil || in.Email == "" || in.Password == "" {
		return s.render(c, fiber.StatusBadRequest, in.Email, ErrInvalidFormData)
	}

	sess, user, err := s.auth.Login(c.UserContext(), in.Email, in.Password)
	if errors.Is(err, auth.ErrInvalidCredentials) {
		log.Info().Str("ip", c.IP()).Msg("login failed")
		return s.render(c, fiber.StatusUnauthorized, in.Email, ErrInvalidCredentials)
	}

	if err != nil {
		log.Error().Err(err).Msg("failed to log in")
		return s.render(c, fiber.StatusInternalServerError, in.Email, ErrInternalServerError)
	}

	handler.SetSessionCookie(c, s.cfg, sess)
	c.Locals(auth.LocalUserID, user.ID)

	return c.Redirect(handler.HomePath, fiber.StatusSeeOther)
}

func (s *Service) render(c *fiber.Ctx, status int, email string, err error) error {
	data := fiber.Map{
		"Title": s.cfg.Title,
		"Email": strings.TrimSpace(email),
	}

	if err != nil {
		data["error"] = err.Error()
	}

	return c.Status(status).Render(TemplateName, data)
}
