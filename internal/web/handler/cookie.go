package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/abrigo-digital/shelter-admin/internal/config"
	"github.com/abrigo-digital/shelter-admin/internal/session"
)

// SetSessionCookie stores the session token in the configured cookie.
func SetSessionCookie(c *fiber.Ctx, cfg *config.Config, sess *session.Session) {
	c.Cookie(&fiber.Cookie{
		Name:     cfg.Webserver.Session.CookieName,
		Value:    sess.Token,
		Path:     RootPath,
		Domain:   cfg.Webserver.Domain,
		Expires:  sess.ExpiresAt,
		Secure:   !cfg.DevMode,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

// ClearSessionCookie expires the session cookie in the browser.
func ClearSessionCookie(c *fiber.Ctx, cfg *config.Config) {
	c.Cookie(&fiber.Cookie{
		Name:     cfg.Webserver.Session.CookieName,
		Value:    "",
		Path:     RootPath,
		Domain:   cfg.Webserver.Domain,
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		Secure:   !cfg.DevMode,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}
