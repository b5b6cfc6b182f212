// Package animal serves the JSON API for sheltered animals.
package animal

import (
	"context"
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/abrigo-digital/shelter-admin/internal/db/controller/breed"
	"github.com/abrigo-digital/shelter-admin/internal/db/controller/record"
	"github.com/abrigo-digital/shelter-admin/internal/db/models"
	"github.com/abrigo-digital/shelter-admin/internal/rbac"
	"github.com/abrigo-digital/shelter-admin/internal/web/handler"
	"github.com/abrigo-digital/shelter-admin/internal/web/handler/api/crud"
)

// Path is the path of the animal API.
const Path = handler.APIPath + "/animal"

// ErrUnknownBreed is returned when the payload references a missing breed.
var ErrUnknownBreed = fmt.Errorf("%w: unknown breed", crud.ErrInvalidPayload)

type payload struct {
	Name        string              `json:"name"        validate:"required,max=100"`
	Description string              `json:"description" validate:"max=5000"`
	Species     models.Species      `json:"species"     validate:"required,oneof=DOG CAT OTHER"`
	BreedID     *string             `json:"breedId"     validate:"omitempty,uuid"`
	Gender      models.Gender       `json:"gender"      validate:"omitempty,oneof=MALE FEMALE UNSET"`
	ImageURL    string              `json:"imageUrl"    validate:"omitempty,url,max=500"`
	Status      models.AnimalStatus `json:"status"      validate:"omitempty,oneof=NEW_ARRIVAL ADOPTABLE TREATMENT UNSET"`
}

type statusPayload struct {
	Status models.AnimalStatus `json:"status" validate:"required,oneof=NEW_ARRIVAL ADOPTABLE TREATMENT UNSET"`
}

// Service is the animal API handler service.
type Service struct {
	handler.Service
	breeds *breed.Controller
}

// Init registers the animal routes.
func (s *Service) Init(app *fiber.App, deps *handler.Deps) error {
	if app == nil || !deps.Valid() {
		return handler.ErrNilDeps
	}

	s.breeds = breed.New(deps.DB)

	res := &crud.Resource[models.Animal]{
		Name:        rbac.ResourceAnimals,
		Store:       record.New[models.Animal](deps.DB),
		Decode:      decode,
		DecodePatch: decodePatch,
		Check:       s.checkBreed,
		Filters:     map[string]string{"status": "status", "species": "species"},
	}

	res.Register(app.Group(Path), deps.Guard)

	return nil
}

func decode(c *fiber.Ctx) (*models.Animal, error) {
	in, err := crud.Bind[payload](c)
	if err != nil {
		return nil, err
	}

	out := &models.Animal{
		Name:        in.Name,
		Description: in.Description,
		Species:     in.Species,
		BreedID:     in.BreedID,
		Gender:      in.Gender,
		ImageURL:    in.ImageURL,
		Status:      in.Status,
	}

	if out.Gender == "" {
		out.Gender = models.GenderUnset
	}

	if out.Status == "" {
		out.Status = models.AnimalStatusUnset
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

func (s *Service) checkBreed(ctx context.Context, a *models.Animal) error {
	if a.BreedID == nil {
		return nil
	}

	_, err := s.breeds.Get(ctx, *a.BreedID)
	if errors.Is(err, record.ErrNotFound) {
		return ErrUnknownBreed
	}

	return err
}
