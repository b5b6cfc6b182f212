package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/abrigo-digital/shelter-admin/internal/auth"
	"github.com/abrigo-digital/shelter-admin/internal/config"
)

// ErrNilDeps is returned by Init when app or deps are missing.
var ErrNilDeps = errors.New(ErrNilACDFatalLogMsg)

// Deps are the collaborators shared by every handler.
type Deps struct {
	Cfg   *config.Config
	DB    *gorm.DB
	Guard *auth.Guard
	Auth  *auth.Service
}

// Valid reports whether every collaborator is set.
func (d *Deps) Valid() bool {
	return d != nil && d.Cfg != nil && d.DB != nil && d.Guard != nil && d.Auth != nil
}

// Service is the interface for a web handler service.
type Service interface {
	Init(app *fiber.App, deps *Deps) error
}
