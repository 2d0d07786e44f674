package middleware

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"famick/internal/auth"
	"famick/internal/config"
	"famick/internal/model"
)

func TestAuthRequired(t *testing.T) {
	issuer, err := auth.NewTokenIssuer(config.JWTConfig{Secret: "test-secret", AccessTTLMin: 15, RefreshTTLHours: 1})
	require.NoError(t, err)

	pair, err := issuer.IssuePair(&model.User{ID: "user-1", TenantID: "tenant-1", Email: "a@example.com"})
	require.NoError(t, err)

	app := fiber.New()
	app.Use(RequestID())
	app.Get("/protected", AuthRequired(issuer), func(c *fiber.Ctx) error {
		return c.SendString(TenantFromCtx(c))
	})

	t.Run("valid access token", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/protected", nil)
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+pair.AccessToken)

		resp, _ := app.Test(req)

		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		buf := make([]byte, 32)
		n, _ := resp.Body.Read(buf)
		assert.Equal(t, "tenant-1", string(buf[:n]))
	})

	t.Run("refresh token is rejected on protected routes", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/protected", nil)
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+pair.RefreshToken)

		resp, _ := app.Test(req)

		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("missing header", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/protected", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

		var body map[string]any
		json.NewDecoder(resp.Body).Decode(&body)
		errObj, _ := body["error"].(map[string]any)
		assert.Equal(t, "UNAUTHORIZED", errObj["code"])
	})

	t.Run("malformed header", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/protected", nil)
		req.Header.Set(fiber.HeaderAuthorization, "Token abc")

		resp, _ := app.Test(req)

		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("garbage token", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/protected", nil)
		req.Header.Set(fiber.HeaderAuthorization, "Bearer not-a-jwt")

		resp, _ := app.Test(req)

		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})
}
