// Package dashboard serves the aggregated statistics as JSON.
package dashboard

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/abrigo-digital/shelter-admin/internal/auth"
	"github.com/abrigo-digital/shelter-admin/internal/db/controller/stats"
	"github.com/abrigo-digital/shelter-admin/internal/rbac"
	"github.com/abrigo-digital/shelter-admin/internal/web/handler"
	"github.com/abrigo-digital/shelter-admin/internal/web/handler/api/crud"
)

// Path is the path of the dashboard API.
const Path = handler.APIPath + "/dashboard"

// Service is the dashboard API handler service.
type Service struct {
	handler.Service
	db          *gorm.DB
	hiddenEmail string
}

// Init registers the dashboard route.
func (s *Service) Init(app *fiber.App, deps *handler.Deps) error {
	if app == nil || !deps.Valid() {
		return handler.ErrNilDeps
	}

	s.db = deps.DB
	s.hiddenEmail = deps.Cfg.Bootstrap.Email

	app.Get(Path, auth.Guarded(deps.Guard, rbac.ResourceDashboard, rbac.ActionView, s.Get))

	return nil
}

// Get returns the dashboard figures.
func (s *Service) Get(c *fiber.Ctx, _ *auth.Principal) error {
	d, err := stats.Collect(c.UserContext(), s.db, s.hiddenEmail)
	if err != nil {
		return crud.Fail(c, err)
	}

	return c.JSON(d)
}
