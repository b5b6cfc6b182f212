// Package crud registers the guarded JSON endpoints shared by every shelter record type.
package crud

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/abrigo-digital/shelter-admin/internal/auth"
	"github.com/abrigo-digital/shelter-admin/internal/db/controller/record"
	"github.com/abrigo-digital/shelter-admin/internal/rbac"
	"github.com/abrigo-digital/shelter-admin/internal/web/handler"
)

const maxPageSize = 500

// ErrInvalidPayload is returned when a request body cannot be parsed or validated.
var ErrInvalidPayload = errors.New("invalid payload")

var validate = validator.New(validator.WithRequiredStructEnabled())

// Store is the persistence behind a resource.
type Store[T any] interface {
	List(ctx context.Context, q record.Query) ([]T, error)
	Get(ctx context.Context, id string) (*T, error)
	Create(ctx context.Context, rec *T) error
	Update(ctx context.Context, id string, rec *T) (*T, error)
	Patch(ctx context.Context, id string, fields map[string]any) (*T, error)
	Delete(ctx context.Context, id string) error
}

// Resource describes the endpoints of one record type.
type Resource[T any] struct {
	Name  rbac.Resource
	Store Store[T]

	// Decode parses and validates a full payload.
	Decode func(c *fiber.Ctx) (*T, error)

	// DecodePatch parses and validates a partial update into column values.
	DecodePatch func(c *fiber.Ctx) (map[string]any, error)

	// Check runs before create and update; optional.
	Check func(ctx context.Context, rec *T) error

	// Filters maps query parameters to columns accepted as list filters.
	Filters map[string]string
}

// Register mounts the endpoints on router. Every route runs behind the guard
// with the action it performs.
func (r *Resource[T]) Register(router fiber.Router, g *auth.Guard) {
	id := handler.RouterRootPath + ":" + handler.IDParam

	router.Get(handler.RouterRootPath, auth.Guarded(g, r.Name, rbac.ActionView, r.list))
	router.Post(handler.RouterRootPath, auth.Guarded(g, r.Name, rbac.ActionCreate, r.create))
	router.Get(id, auth.Guarded(g, r.Name, rbac.ActionView, r.get))
	router.Put(id, auth.Guarded(g, r.Name, rbac.ActionEdit, r.update))
	router.Patch(id, auth.Guarded(g, r.Name, rbac.ActionEdit, r.patch))
	router.Delete(id, auth.Guarded(g, r.Name, rbac.ActionDelete, r.remove))
}

func (r *Resource[T]) list(c *fiber.Ctx, _ *auth.Principal) error {
	q := record.Query{
		Limit:  PageSize(c.QueryInt("limit")),
		Offset: max(c.QueryInt("offset"), 0),
	}

	for param, column := range r.Filters {
		if v := c.Query(param); v != "" {
			if q.Where == nil {
				q.Where = map[string]any{}
			}

			q.Where[column] = v
		}
	}

	out, err := r.Store.List(c.UserContext(), q)
	if err != nil {
		return Fail(c, err)
	}

	return c.JSON(out)
}

// PageSize bounds a requested list size to (0, maxPageSize]. Missing or
// non-positive values get the maximum.
func PageSize(limit int) int {
	if limit <= 0 || limit > maxPageSize {
		return maxPageSize
	}

	return limit
}

func (r *Resource[T]) get(c *fiber.Ctx, _ *auth.Principal) error {
	out, err := r.Store.Get(c.UserContext(), c.Params(handler.IDParam))
	if err != nil {
		return Fail(c, err)
	}

	return c.JSON(out)
}

func (r *Resource[T]) create(c *fiber.Ctx, p *auth.Principal) error {
	rec, err := r.Decode(c)
	if err != nil {
		return Fail(c, err)
	}

	if err = r.check(c.UserContext(), rec); err != nil {
		return Fail(c, err)
	}

	if err = r.Store.Create(c.UserContext(), rec); err != nil {
		return Fail(c, err)
	}

	log.Info().Uint64("user_id", p.UserID).Str("resource", string(r.Name)).Msg("record created")

	return c.Status(fiber.StatusCreated).JSON(rec)
}

func (r *Resource[T]) update(c *fiber.Ctx, p *auth.Principal) error {
	rec, err := r.Decode(c)
	if err != nil {
		return Fail(c, err)
	}

	if err = r.check(c.UserContext(), rec); err != nil {
		return Fail(c, err)
	}

	out, err := r.Store.Update(c.UserContext(), c.Params(handler.IDParam), rec)
	if err != nil {
		return Fail(c, err)
	}

	log.Info().Uint64("user_id", p.UserID).Str("resource", string(r.Name)).Msg("record updated")

	return c.JSON(out)
}

func (r *Resource[T]) patch(c *fiber.Ctx, p *auth.Principal) error {
	if r.DecodePatch == nil {
		return c.SendStatus(fiber.StatusMethodNotAllowed)
	}

	fields, err := r.DecodePatch(c)
	if err != nil {
		return Fail(c, err)
	}

	out, err := r.Store.Patch(c.UserContext(), c.Params(handler.IDParam), fields)
	if err != nil {
		return Fail(c, err)
	}

	log.Info().Uint64("user_id", p.UserID).Str("resource", string(r.Name)).Msg("record patched")

	return c.JSON(out)
}

func (r *Resource[T]) remove(c *fiber.Ctx, p *auth.Principal) error {
	if err := r.Store.Delete(c.UserContext(), c.Params(handler.IDParam)); err != nil {
		return Fail(c, err)
	}

	log.Info().Uint64("user_id", p.UserID).Str("resource", string(r.Name)).Msg("record deleted")

	return c.JSON(fiber.Map{"message": "deleted"})
}

func (r *Resource[T]) check(ctx context.Context, rec *T) error {
	if r.Check == nil {
		return nil
	}

	return r.Check(ctx, rec)
}

// Bind parses the request body into a new In and validates it.
func Bind[In any](c *fiber.Ctx) (*In, error) {
	in := new(In)

	if err := c.BodyParser(in); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidPayload, err)
	}

	if err := validate.Struct(in); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidPayload, err)
	}

	return in, nil
}

// Fail writes the response for a handler error.
func Fail(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, ErrInvalidPayload), errors.Is(err, record.ErrNoFields):
		return Message(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, record.ErrConflict):
		return Message(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, record.ErrNotFound):
		return Message(c, fiber.StatusNotFound, "not found")
	default:
		log.Error().Err(err).Str("path", c.Path()).Msg("request failed")
		return Message(c, fiber.StatusInternalServerError, "internal server error")
	}
}

// Message writes {"message": msg} with status.
func Message(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(fiber.Map{"message": msg})
}
