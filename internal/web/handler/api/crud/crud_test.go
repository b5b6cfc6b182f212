package crud

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abrigo-digital/shelter-admin/internal/db/controller/record"
	"github.com/abrigo-digital/shelter-admin/internal/rbac"
)

func TestFail(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{"invalid payload", fmt.Errorf("%w: name required", ErrInvalidPayload), fiber.StatusBadRequest, ""},
		{"no fields", record.ErrNoFields, fiber.StatusBadRequest, record.ErrNoFields.Error()},
		{"duplicate", record.ErrDuplicate, fiber.StatusBadRequest, record.ErrDuplicate.Error()},
		{"not found", fmt.Errorf("get: %w", record.ErrNotFound), fiber.StatusNotFound, "not found"},
		{"backend", errors.New("connection refused"), fiber.StatusInternalServerError, "internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			app.Get("/", func(c *fiber.Ctx) error { return Fail(c, tt.err) })

			resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/", nil))
			require.NoError(t, err)

			defer resp.Body.Close()

			assert.Equal(t, tt.wantStatus, resp.StatusCode)

			var body struct {
				Message string `json:"message"`
			}

			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))

			if tt.wantMsg != "" {
				assert.Equal(t, tt.wantMsg, body.Message)
			} else {
				assert.NotEmpty(t, body.Message)
			}

			// backend details never reach the client
			assert.NotContains(t, body.Message, "connection refused")
		})
	}
}

type payload struct {
	Name string `json:"name" validate:"required,max=10"`
}

func TestBind(t *testing.T) {
	app := fiber.New()
	app.Post("/", func(c *fiber.Ctx) error {
		in, err := Bind[payload](c)
		if err != nil {
			return Fail(c, err)
		}

		return c.SendString(in.Name)
	})

	tests := []struct {
		name       string
		body       string
		wantStatus int
	}{
		{"valid", `{"name":"Rex"}`, fiber.StatusOK},
		{"missing field", `{}`, fiber.StatusBadRequest},
		{"too long", `{"name":"Rex the third"}`, fiber.StatusBadRequest},
		{"broken json", `{"name":`, fiber.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(fiber.MethodPost, "/", strings.NewReader(tt.body))
			req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)

			resp, err := app.Test(req)
			require.NoError(t, err)

			defer resp.Body.Close()

			assert.Equal(t, tt.wantStatus, resp.StatusCode)

			if tt.wantStatus == fiber.StatusOK {
				b, err := io.ReadAll(resp.Body)
				require.NoError(t, err)
				assert.Equal(t, "Rex", string(b))
			}
		})
	}
}

func TestPageSize(t *testing.T) {
	assert.Equal(t, maxPageSize, PageSize(0))
	assert.Equal(t, maxPageSize, PageSize(-1))
	assert.Equal(t, maxPageSize, PageSize(maxPageSize+1))
	assert.Equal(t, 20, PageSize(20))
}

type countingStore struct {
	Store[payload]

	got record.Query
}

func (s *countingStore) List(_ context.Context, q record.Query) ([]payload, error) {
	s.got = q

	return []payload{}, nil
}

func TestListBoundsPageSize(t *testing.T) {
	tests := []struct {
		query string
		want  int
	}{
		{"", maxPageSize},
		{"?limit=-5", maxPageSize},
		{"?limit=100000", maxPageSize},
		{"?limit=10&offset=-3", 10},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			store := &countingStore{}
			r := &Resource[payload]{Name: rbac.ResourceBreeds, Store: store}

			app := fiber.New()
			app.Get("/", func(c *fiber.Ctx) error { return r.list(c, nil) })

			resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/"+tt.query, nil))
			require.NoError(t, err)
			assert.Equal(t, fiber.StatusOK, resp.StatusCode)

			assert.Equal(t, tt.want, store.got.Limit)
			assert.GreaterOrEqual(t, store.got.Offset, 0)
		})
	}
}
