// Package report serves the JSON API for abuse and neglect reports.
package report

import (
	"github.com/gofiber/fiber/v2"

	"github.com/abrigo-digital/shelter-admin/internal/db/controller/record"
	"github.com/abrigo-digital/shelter-admin/internal/db/models"
	"github.com/abrigo-digital/shelter-admin/internal/rbac"
	"github.com/abrigo-digital/shelter-admin/internal/web/handler"
	"github.com/abrigo-digital/shelter-admin/internal/web/handler/api/crud"
)

// Path is the path of the report API.
const Path = handler.APIPath + "/report"

type payload struct {
	Title       string              `json:"title"       validate:"required,max=200"`
	Description string              `json:"description" validate:"max=5000"`
	Address     string              `json:"address"     validate:"max=300"`
	Tags        string              `json:"tags"        validate:"max=500"`
	Status      models.ReportStatus `json:"status"      validate:"omitempty,oneof=AWAITING IN_PROGRESS UNDER_REVIEW APPROVED REJECTED COMPLETED CANCELLED ON_HOLD"`
}

type statusPayload struct {
	Status models.ReportStatus `json:"status" validate:"required,oneof=AWAITING IN_PROGRESS UNDER_REVIEW APPROVED REJECTED COMPLETED CANCELLED ON_HOLD"`
}

// Service is the report API handler service.
type Service struct {
	handler.Service
}

// Init registers the report routes.
func (s *Service) Init(app *fiber.App, deps *handler.Deps) error {
	if app == nil || !deps.Valid() {
		return handler.ErrNilDeps
	}

	res := &crud.Resource[models.Report]{
		Name:        rbac.ResourceReports,
		Store:       record.New[models.Report](deps.DB),
		Decode:      decode,
		DecodePatch: decodePatch,
		Filters:     map[string]string{"status": "status"},
	}

	res.Register(app.Group(Path), deps.Guard)

	return nil
}

func decode(c *fiber.Ctx) (*models.Report, error) {
	in, err := crud.Bind[payload](c)
	if err != nil {
		return nil, err
	}

	out := &models.Report{
		Title:       in.Title,
		Description: in.Description,
		Address:     in.Address,
		Tags:        in.Tags,
		Status:      in.Status,
	}

	if out.Status == "" {
		out.Status = models.ReportStatusAwaiting
	}

	return out, nil
}

func decodePatch(c *fiber.Ctx) (map[string]any, error) {
	in, err := crud.Bind[statusPayload](c)
	if err != nil {
		return nil, err
	}

	return map[string]any{"status": in.Status}, nil
}
