package contact

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sentinelwatch/sentinel-backend/internal/store"
)

func newTestApp(st store.Store) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			message := "Internal server error"
			var fiberErr *fiber.Error
			if errors.As(err, &fiberErr) {
				code = fiberErr.Code
				message = fiberErr.Message
			}
			return c.Status(code).JSON(fiber.Map{"message": message})
		},
	})
	app.Post("/api/contact", NewHandler(st).Submit)
	return app
}

func postContact(t *testing.T, app *fiber.App, body map[string]string) *http.Response {
	t.Helper()
	b, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/api/contact", bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func TestSubmitCreatesRequest(t *testing.T) {
	t.Parallel()

	st := store.NewMemStore()
	app := newTestApp(st)

	resp := postContact(t, app, map[string]string{
		"name":    "Ada",
		"email":   "ada@example.com",
		"type":    "technical",
		"message": "The export button does nothing.",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var out struct {
		Success bool `json:"success"`
		ID      int  `json:"id"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.True(t, out.Success)
	assert.Equal(t, 1, out.ID)

	list, err := st.GetContactRequests(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, out.ID, list[0].ID)
	assert.False(t, list[0].Resolved)
	assert.NotEmpty(t, list[0].CreatedAt, "timestamp is server-assigned")
}

func TestSubmitValidatesFields(t *testing.T) {
	t.Parallel()

	st := store.NewMemStore()
	app := newTestApp(st)

	tests := []struct {
		name    string
		body    map[string]string
		message string
	}{
		{"missing name", map[string]string{"email": "e@x.com", "type": "t", "message": "m"}, "Name is required"},
		{"missing email", map[string]string{"name": "n", "type": "t", "message": "m"}, "Email is required"},
		{"missing type", map[string]string{"name": "n", "email": "e@x.com", "message": "m"}, "Type is required"},
		{"missing message", map[string]string{"name": "n", "email": "e@x.com", "type": "t"}, "Message is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := postContact(t, app, tt.body)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

			var errBody map[string]string
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&errBody))
			assert.Equal(t, tt.message, errBody["message"])
		})
	}

	list, err := st.GetContactRequests(context.Background())
	require.NoError(t, err)
	assert.Empty(t, list)
}
