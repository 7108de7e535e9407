package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"jobboard/internal/pkg/jwt"
	"jobboard/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, resp *http.Response) response.SemanticResponse {
	t.Helper()
	defer resp.Body.Close()
	var out response.SemanticResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func TestErrorMiddleware_HidesInternalCauses(t *testing.T) {
	app := fiber.New()
	app.Use(NewErrorMiddleware(nil).Middleware())
	app.Get("/boom", func(fiber.Ctx) error {
		return NewAppError(fiber.StatusInternalServerError, "db exploded", nil, errors.New("pq: secret detail"))
	})
	app.Get("/panic", func(fiber.Ctx) error { panic("nope") })
	app.Get("/teapot", func(fiber.Ctx) error { return NewAppError(fiber.StatusConflict, "", nil, nil) })

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/boom", nil))
	require.NoError(t, err)
	body := decode(t, resp)
	assert.Equal(t, http.StatusInternalServerError, body.Status)
	assert.Equal(t, response.MessageInternalServerError, body.Message)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/panic", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/teapot", nil))
	require.NoError(t, err)
	body = decode(t, resp)
	assert.Equal(t, http.StatusConflict, body.Status)
	assert.Equal(t, response.MessageConflict, body.Message)
}

func newAuthApp(t *testing.T, roles ...string) (*fiber.App, *jwt.HMACService) {
	t.Helper()
	svc := jwt.NewHMACService("a-secret", "r-secret", time.Hour, time.Hour, "test")
	app := fiber.New()
	app.Use(NewErrorMiddleware(nil).Middleware())
	app.Get("/me", NewAuthMiddleware(svc).Middleware(), RequireRole(roles...), func(c fiber.Ctx) error {
		id, ok := IdentityFrom(c)
		if !ok {
			return errors.New("no identity")
		}
		return c.SendString(id.Role)
	})
	return app, svc
}

func TestAuthMiddleware(t *testing.T) {
	app, svc := newAuthApp(t, jwt.RoleAdmin, jwt.RoleEmployer)

	pair, err := svc.IssuePair(jwt.Identity{UserID: uuid.New(), Email: "boss@example.com", Role: jwt.RoleEmployer})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+pair.AccessToken)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	req = httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+pair.RefreshToken)
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/me", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRequireRole_Forbidden(t *testing.T) {
	app, svc := newAuthApp(t, jwt.RoleAdmin)

	pair, err := svc.IssuePair(jwt.Identity{UserID: uuid.New(), Role: jwt.RoleSeeker})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+pair.AccessToken)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, decode(t, resp).Status)
}

func TestBearerToken(t *testing.T) {
	tok, ok := BearerToken("  bearer abc ")
	assert.True(t, ok)
	assert.Equal(t, "abc", tok)

	for _, h := range []string{"", "Bearer", "Basic abc", "Bearer   "} {
		_, ok := BearerToken(h)
		assert.False(t, ok, h)
	}
}
