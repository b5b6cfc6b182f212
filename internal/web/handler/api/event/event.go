// Package event serves the JSON API for public events.
package event

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/abrigo-digital/shelter-admin/internal/db/controller/record"
	"github.com/abrigo-digital/shelter-admin/internal/db/models"
	"github.com/abrigo-digital/shelter-admin/internal/rbac"
	"github.com/abrigo-digital/shelter-admin/internal/web/handler"
	"github.com/abrigo-digital/shelter-admin/internal/web/handler/api/crud"
)

// Path is the path of the event API.
const Path = handler.APIPath + "/event"

type payload struct {
	Title       string     `json:"title"       validate:"required,max=200"`
	Description string     `json:"description" validate:"max=5000"`
	Organizer   string     `json:"organizer"   validate:"max=200"`
	Tags        string     `json:"tags"        validate:"max=500"`
	IsActive    *bool      `json:"isActive"`
	StartAt     *time.Time `json:"startAt"`
	FinishAt    *time.Time `json:"finishAt"`
}

type activePayload struct {
	IsActive *bool `json:"isActive" validate:"required"`
}

// Service is the event API handler service.
type Service struct {
	handler.Service
}

// Init registers the event routes.
func (s *Service) Init(app *fiber.App, deps *handler.Deps) error {
	if app == nil || !deps.Valid() {
		return handler.ErrNilDeps
	}

	res := &crud.Resource[models.Event]{
		Name:        rbac.ResourceEvents,
		Store:       record.New[models.Event](deps.DB),
		Decode:      decode,
		DecodePatch: decodePatch,
	}

	res.Register(app.Group(Path), deps.Guard)

	return nil
}

func decode(c *fiber.Ctx) (*models.Event, error) {
	in, err := crud.Bind[payload](c)
	if err != nil {
		return nil, err
	}

	if in.StartAt != nil && in.FinishAt != nil && in.FinishAt.Before(*in.StartAt) {
		return nil, errFinishBeforeStart
	}

	return &models.Event{
		Title:       in.Title,
		Description: in.Description,
		Organizer:   in.Organizer,
		Tags:        in.Tags,
		IsActive:    in.IsActive == nil || *in.IsActive,
		StartAt:     in.StartAt,
		FinishAt:    in.FinishAt,
	}, nil
}

func decodePatch(c *fiber.Ctx) (map[string]any, error) {
	in, err := crud.Bind[activePayload](c)
	if err != nil {
		return nil, err
	}

	return map[string]any{"is_active": *in.IsActive}, nil
}
