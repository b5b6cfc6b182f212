// Package campaign serves the JSON API for fund-raising campaigns.
package campaign

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/abrigo-digital/shelter-admin/internal/db/controller/record"
	"github.com/abrigo-digital/shelter-admin/internal/db/models"
	"github.com/abrigo-digital/shelter-admin/internal/rbac"
	"github.com/abrigo-digital/shelter-admin/internal/web/handler"
	"github.com/abrigo-digital/shelter-admin/internal/web/handler/api/crud"
)

// Path is the path of the campaign API.
const Path = handler.APIPath + "/campaign"

type payload struct {
	Title        string     `json:"title"        validate:"required,max=200"`
	Description  string     `json:"description"  validate:"max=5000"`
	TargetAmount float64    `json:"targetAmount" validate:"gte=0"`
	IsActive     *bool      `json:"isActive"`
	FinishAt     *time.Time `json:"finishAt"`
}

type activePayload struct {
	IsActive *bool `json:"isActive" validate:"required"`
}

// Service is the campaign API handler service.
type Service struct {
	handler.Service
}

// Init registers the campaign routes.
func (s *Service) Init(app *fiber.App, deps *handler.Deps) error {
	if app == nil || !deps.Valid() {
		return handler.ErrNilDeps
	}

	res := &crud.Resource[models.Campaign]{
		Name:        rbac.ResourceCampaigns,
		Store:       record.New[models.Campaign](deps.DB),
		Decode:      decode,
		DecodePatch: decodePatch,
	}

	res.Register(app.Group(Path), deps.Guard)

	return nil
}

func decode(c *fiber.Ctx) (*models.Campaign, error) {
	in, err := crud.Bind[payload](c)
	if err != nil {
		return nil, err
	}

	// campaigns are active unless stated otherwise
	active := in.IsActive == nil || *in.IsActive

	return &models.Campaign{
		Title:        in.Title,
		Description:  in.Description,
		TargetAmount: in.TargetAmount,
		IsActive:     active,
		FinishAt:     in.FinishAt,
	}, nil
}

func decodePatch(c *fiber.Ctx) (map[string]any, error) {
	in, err := crud.Bind[activePayload](c)
	if err != nil {
		return nil, err
	}

	return map[string]any{"is_active": *in.IsActive}, nil
}
