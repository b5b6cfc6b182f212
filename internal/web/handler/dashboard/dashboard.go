// Package dashboard provides the dashboard page with the shelter statistics.
package dashboard

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/abrigo-digital/shelter-admin/internal/auth"
	"github.com/abrigo-digital/shelter-admin/internal/config"
	"github.com/abrigo-digital/shelter-admin/internal/db/controller/stats"
	"github.com/abrigo-digital/shelter-admin/internal/db/models"
	"github.com/abrigo-digital/shelter-admin/internal/rbac"
	"github.com/abrigo-digital/shelter-admin/internal/web/gate"
	"github.com/abrigo-digital/shelter-admin/internal/web/handler"
	"github.com/abrigo-digital/shelter-admin/internal/web/navigation"
)

const (
	// Path is the path to the dashboard page.
	Path = handler.HomePath

	// TemplateName is the name of the dashboard template.
	TemplateName = "dashboard"
)

// StatusCount is one bar of a status chart.
type StatusCount struct {
	Status string
	Count  int64
}

// Service is the dashboard handler service.
type Service struct {
	handler.Service
	cfg *config.Config
	db  *gorm.DB
}

// Init initializes the dashboard handler.
func (s *Service) Init(app *fiber.App, deps *handler.Deps) error {
	if app == nil || !deps.Valid() {
		return handler.ErrNilDeps
	}

	s.cfg = deps.Cfg
	s.db = deps.DB

	app.Get(Path, auth.GuardedPage(deps.Guard, handler.LoginPath, rbac.ResourceDashboard, rbac.ActionView, s.Get))

	return nil
}

// Get renders the dashboard.
func (s *Service) Get(c *fiber.Ctx, p *auth.Principal) error {
	d, err := stats.Collect(c.UserContext(), s.db, s.cfg.Bootstrap.Email)
	if err != nil {
		log.Error().Err(err).Msg("failed to collect dashboard data")
		return fiber.ErrInternalServerError
	}

	nav := navigation.NewContext("Dashboard", "dashboard", gate.VisibleMenu(p.Role, navigation.Menu())).
		AddBreadcrumb("Home", Path, true)

	animals := make([]StatusCount, 0, len(models.AnimalStatuses()))
	for _, st := range models.AnimalStatuses() {
		animals = append(animals, StatusCount{Status: string(st), Count: d.AnimalStatusSummary[string(st)]})
	}

	reports := make([]StatusCount, 0, len(models.ReportStatuses()))
	for _, st := range models.ReportStatuses() {
		reports = append(reports, StatusCount{Status: string(st), Count: d.ReportStatusSummary[string(st)]})
	}

	return c.Render(TemplateName, fiber.Map{
		"Title":      s.cfg.Title,
		"Navigation": nav,
		"User":       p,
		"Role":       p.Role,
		"Stats":      d,
		"Animals":    animals,
		"Reports":    reports,
	}, handler.BaseLayout)
}
