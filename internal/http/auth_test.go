package http

import (
	"bytes"
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

var testSecret = []byte("test-secret")

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

	h := &AuthHandler{Store: st, Secret: testSecret}
	mw := NewAuthMiddleware(st, testSecret)
	app.Post("/api/register", h.Register)
	app.Post("/api/login", h.Login)
	app.Post("/api/logout", mw, h.Logout)
	app.Get("/api/user", mw, h.Me)
	return app
}

func postJSON(t *testing.T, app *fiber.App, path string, body map[string]string, cookies ...*http.Cookie) *http.Response {
	t.Helper()
	b, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func sessionCookie(t *testing.T, resp *http.Response) *http.Cookie {
	t.Helper()
	for _, c := range resp.Cookies() {
		if c.Name == SessionCookie && c.Value != "" {
			return c
		}
	}
	t.Fatal("response has no session cookie")
	return nil
}

func TestRegisterLoginFlow(t *testing.T) {
	t.Parallel()

	st := store.NewMemStore()
	app := newTestApp(st)

	resp := postJSON(t, app, "/api/register", map[string]string{
		"username": "analyst",
		"password": "hunter2",
		"email":    "analyst@example.gov",
		"orgCode":  "GOV-7",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var user store.User
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&user))
	assert.Equal(t, 1, user.ID)
	assert.Equal(t, "analyst", user.Username)
	assert.Empty(t, user.Password, "password hash must never be serialized")

	cookie := sessionCookie(t, resp)

	// Cookie grants access to the current-user endpoint.
	req := httptest.NewRequest(http.MethodGet, "/api/user", nil)
	req.AddCookie(cookie)
	meResp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, meResp.StatusCode)

	// Fresh login works with the registered credentials.
	resp = postJSON(t, app, "/api/login", map[string]string{
		"username": "analyst",
		"password": "hunter2",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRegisterRejectsDuplicateUsername(t *testing.T) {
	t.Parallel()

	st := store.NewMemStore()
	app := newTestApp(st)

	resp := postJSON(t, app, "/api/register", map[string]string{"username": "dup", "password": "pw"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = postJSON(t, app, "/api/register", map[string]string{"username": "dup", "password": "pw"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var errBody map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&errBody))
	assert.Equal(t, "Username already exists", errBody["message"])
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	t.Parallel()

	st := store.NewMemStore()
	app := newTestApp(st)

	resp := postJSON(t, app, "/api/register", map[string]string{"username": "bob", "password": "right"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	tests := []struct {
		name string
		body map[string]string
	}{
		{"wrong password", map[string]string{"username": "bob", "password": "wrong"}},
		{"unknown user", map[string]string{"username": "nobody", "password": "right"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := postJSON(t, app, "/api/login", tt.body)
			assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		})
	}
}

func TestLogoutRevokesSession(t *testing.T) {
	t.Parallel()

	st := store.NewMemStore()
	app := newTestApp(st)

	resp := postJSON(t, app, "/api/register", map[string]string{"username": "carol", "password": "pw"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	cookie := sessionCookie(t, resp)

	resp = postJSON(t, app, "/api/logout", nil, cookie)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// The token itself has not expired, but its session is gone.
	req := httptest.NewRequest(http.MethodGet, "/api/user", nil)
	req.AddCookie(cookie)
	meResp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, meResp.StatusCode)
}

func TestMiddlewareAcceptsBearerFallback(t *testing.T) {
	t.Parallel()

	st := store.NewMemStore()
	app := newTestApp(st)

	resp := postJSON(t, app, "/api/register", map[string]string{"username": "dave", "password": "pw"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	cookie := sessionCookie(t, resp)

	req := httptest.NewRequest(http.MethodGet, "/api/user", nil)
	req.Header.Set("Authorization", "Bearer "+cookie.Value)
	meResp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, meResp.StatusCode)
}

func TestMiddlewareRejectsGarbageTokens(t *testing.T) {
	t.Parallel()

	st := store.NewMemStore()
	app := newTestApp(st)

	req := httptest.NewRequest(http.MethodGet, "/api/user", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: "not.a.jwt"})
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
