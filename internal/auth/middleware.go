package auth

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/abrigo-digital/shelter-admin/internal/rbac"
)

const (
	// LocalUserID is the fiber Locals key carrying the id of an admitted caller.
	LocalUserID = "user_id"

	// AccessDenied is the only message shown for authentication and authorization failures.
	AccessDenied = "access denied"

	bearerPrefix = "bearer "
)

// Handler is a fiber handler receiving the admitted principal.
type Handler func(c *fiber.Ctx, p *Principal) error

// Credential extracts the caller's credential: the session cookie first,
// then an "Authorization: Bearer" header.
func Credential(c *fiber.Ctx, cookieName string) string {
	if v := c.Cookies(cookieName); v != "" {
		return v
	}

	return bearer(c)
}

// Credentials returns every credential the request carries, cookie first.
// A stale cookie then does not hide a valid bearer token.
func Credentials(c *fiber.Ctx, cookieName string) []string {
	out := make([]string, 0, 2)

	if v := c.Cookies(cookieName); v != "" {
		out = append(out, v)
	}

	if v := bearer(c); v != "" && (len(out) == 0 || out[0] != v) {
		out = append(out, v)
	}

	return out
}

func bearer(c *fiber.Ctx) string {
	h := c.Get(fiber.HeaderAuthorization)
	if len(h) > len(bearerPrefix) && strings.EqualFold(h[:len(bearerPrefix)], bearerPrefix) {
		return strings.TrimSpace(h[len(bearerPrefix):])
	}

	return ""
}

// Guarded wraps fn with Guard.Check for JSON endpoints. fn only runs for an
// admitted caller. Failures answer 401 or 403 with the same body, or 500 when
// the session backend failed.
func Guarded(g *Guard, resource rbac.Resource, action rbac.Action, fn Handler) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, err := g.CheckAny(c.UserContext(), Credentials(c, g.cookieName), resource, action)
		if err != nil {
			return deny(c, err, resource, action)
		}

		c.Locals(LocalUserID, p.UserID)

		return fn(c, p)
	}
}

// GuardedPage is Guarded for server rendered pages: unauthenticated visitors
// are redirected to loginPath instead of receiving a 401.
func GuardedPage(g *Guard, loginPath string, resource rbac.Resource, action rbac.Action, fn Handler) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, err := g.CheckAny(c.UserContext(), Credentials(c, g.cookieName), resource, action)
		if errors.Is(err, ErrUnauthenticated) {
			return c.Redirect(loginPath, fiber.StatusSeeOther)
		}

		if err != nil {
			return deny(c, err, resource, action)
		}

		c.Locals(LocalUserID, p.UserID)

		return fn(c, p)
	}
}

// Status maps a guard error to its HTTP status.
func Status(err error) int {
	switch {
	case err == nil:
		return fiber.StatusOK
	case errors.Is(err, ErrUnauthenticated):
		return fiber.StatusUnauthorized
	case errors.Is(err, ErrUnauthorized):
		return fiber.StatusForbidden
	default:
		return fiber.StatusInternalServerError
	}
}

func deny(c *fiber.Ctx, err error, resource rbac.Resource, action rbac.Action) error {
	status := Status(err)

	ev := log.Debug()
	if status == fiber.StatusInternalServerError {
		ev = log.Error()
	}

	ev.Err(err).
		Str("resource", string(resource)).
		Str("action", string(action)).
		Str("path", c.Path()).
		Msg("request rejected by guard")

	if status == fiber.StatusInternalServerError {
		return c.Status(status).JSON(fiber.Map{"message": "internal server error"})
	}

	return c.Status(status).JSON(fiber.Map{"message": AccessDenied})
}
