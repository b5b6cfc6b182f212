// Package person serves the JSON API for registered people.
package person

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/abrigo-digital/shelter-admin/internal/db/controller/record"
	"github.com/abrigo-digital/shelter-admin/internal/db/models"
	"github.com/abrigo-digital/shelter-admin/internal/rbac"
	"github.com/abrigo-digital/shelter-admin/internal/web/handler"
	"github.com/abrigo-digital/shelter-admin/internal/web/handler/api/crud"
)

// Path is the path of the person API.
const Path = handler.APIPath + "/person"

type payload struct {
	Name      string        `json:"name"      validate:"required,max=150"`
	CPF       string        `json:"cpf"       validate:"required,min=11,max=14"`
	BirthDate *time.Time    `json:"birthDate"`
	Gender    models.Gender `json:"gender"    validate:"omitempty,oneof=MALE FEMALE UNSET"`
}

// Service is the person API handler service.
type Service struct {
	handler.Service
}

// Init registers the person routes. People have no partial update.
func (s *Service) Init(app *fiber.App, deps *handler.Deps) error {
	if app == nil || !deps.Valid() {
		return handler.ErrNilDeps
	}

	res := &crud.Resource[models.Person]{
		Name:   rbac.ResourcePeople,
		Store:  record.New[models.Person](deps.DB),
		Decode: decode,
	}

	res.Register(app.Group(Path), deps.Guard)

	return nil
}

func decode(c *fiber.Ctx) (*models.Person, error) {
	in, err := crud.Bind[payload](c)
	if err != nil {
		return nil, err
	}

	out := &models.Person{
		Name:      in.Name,
		CPF:       in.CPF,
		BirthDate: in.BirthDate,
		Gender:    in.Gender,
	}

	if out.Gender == "" {
		out.Gender = models.GenderUnset
	}

	return out, nil
}
