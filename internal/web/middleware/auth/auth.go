package auth

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/abrigo-digital/shelter-admin/internal/auth"
	"github.com/abrigo-digital/shelter-admin/internal/web/handler"
)

// Outcome is the decision of the route guard.
type Outcome int

const (
	// Proceed lets the request through.
	Proceed Outcome = iota
	// RedirectLogin sends the visitor to the login page.
	RedirectLogin
	// RedirectHome sends a signed in visitor away from the login page.
	RedirectHome
)

// Route classifies a request path.
type Route int

const (
	// RoutePublic needs no session: static files, API, probes, logout.
	RoutePublic Route = iota
	// RouteLogin is the login page.
	RouteLogin
	// RouteProtected is every other page.
	RouteProtected
)

var publicPrefixes = []string{"/static", handler.APIPath, "/metrics", "/checkalive", "/logout", "/favicon.ico"}

// Classify returns the route class of path. Matching is case-insensitive and
// respects segment boundaries.
func Classify(path string) Route {
	p := strings.ToLower(path)

	if hasSegmentPrefix(p, handler.LoginPath) {
		return RouteLogin
	}

	for _, prefix := range publicPrefixes {
		if hasSegmentPrefix(p, prefix) {
			return RoutePublic
		}
	}

	return RouteProtected
}

func hasSegmentPrefix(path, prefix string) bool {
	if !strings.HasPrefix(path, prefix) {
		return false
	}

	rest := path[len(prefix):]

	return rest == "" || rest[0] == '/' || rest[0] == '?'
}

// Decide returns the outcome for a visitor on path.
func Decide(path string, authenticated bool) Outcome {
	switch Classify(path) {
	case RouteLogin:
		if authenticated {
			return RedirectHome
		}
	case RouteProtected:
		if !authenticated {
			return RedirectLogin
		}
	case RoutePublic:
	}

	return Proceed
}

// New returns the route guard middleware. Session backend failures are not
// turned into redirects; the request proceeds and the server guard answers.
func New(g *auth.Guard) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if Classify(c.Path()) == RoutePublic {
			return c.Next()
		}

		_, err := g.AuthenticateAny(c.UserContext(), auth.Credentials(c, g.CookieName()))
		if err != nil && !errors.Is(err, auth.ErrUnauthenticated) {
			log.Error().Err(err).Str("path", c.Path()).Msg("route guard could not resolve session")
			return c.Next()
		}

		switch Decide(c.Path(), err == nil) {
		case RedirectLogin:
			return c.Redirect(handler.LoginPath, fiber.StatusSeeOther)
		case RedirectHome:
			return c.Redirect(handler.HomePath, fiber.StatusSeeOther)
		case Proceed:
		}

		return c.Next()
	}
}
