// Package breed serves the JSON API for animal breeds.
package breed

import (
	"github.com/gofiber/fiber/v2"

	breedctl "github.com/abrigo-digital/shelter-admin/internal/db/controller/breed"
	"github.com/abrigo-digital/shelter-admin/internal/db/models"
	"github.com/abrigo-digital/shelter-admin/internal/rbac"
	"github.com/abrigo-digital/shelter-admin/internal/web/handler"
	"github.com/abrigo-digital/shelter-admin/internal/web/handler/api/crud"
)

// Path is the path of the breed API.
const Path = handler.APIPath + "/breed"

type payload struct {
	Name string `json:"name" validate:"required,max=100"`
}

// Service is the breed API handler service.
type Service struct {
	handler.Service
}

// Init registers the breed routes. Deleting a breed still used by an animal
// is refused with 400.
func (s *Service) Init(app *fiber.App, deps *handler.Deps) error {
	if app == nil || !deps.Valid() {
		return handler.ErrNilDeps
	}

	res := &crud.Resource[models.Breed]{
		Name:        rbac.ResourceBreeds,
		Store:       breedctl.New(deps.DB),
		Decode:      decode,
		DecodePatch: decodePatch,
	}

	res.Register(app.Group(Path), deps.Guard)

	return nil
}

func decode(c *fiber.Ctx) (*models.Breed, error) {
	in, err := crud.Bind[payload](c)
	if err != nil {
		return nil, err
	}

	return &models.Breed{Name: in.Name}, nil
}

func decodePatch(c *fiber.Ctx) (map[string]any, error) {
	in, err := crud.Bind[payload](c)
	if err != nil {
		return nil, err
	}

	return map[string]any{"name": in.Name}, nil
}
