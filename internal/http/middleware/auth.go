package middleware

import (
	"encoding/json"
	"strings"

	"github.com/gofiber/fiber/v2"

	"famick/internal/auth"
)

const (
	// ClaimsLocalKey is the key used to store the parsed token claims in Fiber's context locals.
	ClaimsLocalKey = "auth_claims"
	// TenantLocalKey is the key used to store the authenticated tenant ID in Fiber's context locals.
	TenantLocalKey = "tenant_id"
)

// TokenParser validates a bearer token of the given use and returns its claims.
type TokenParser interface {
	Parse(tokenString, wantUse string) (*auth.Claims, error)
}

// AuthRequired is a middleware that rejects requests without a valid access token.
//
// Behavior:
// - Reads the Authorization header and requires the "Bearer <token>" form.
// - Validates the token as an access token.
// - Stores the claims under ClaimsLocalKey and the tenant ID under TenantLocalKey.
func AuthRequired(parser TokenParser) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		if header == "" {
			return unauthorized(c, "missing authorization header")
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return unauthorized(c, "invalid authorization header format")
		}

		claims, err := parser.Parse(parts[1], auth.UseAccess)
		if err != nil {
			return unauthorized(c, "invalid or expired token")
		}

		c.Locals(ClaimsLocalKey, claims)
		c.Locals(TenantLocalKey, claims.TenantID)

		return c.Next()
	}
}

// TenantFromCtx returns the tenant ID stored by AuthRequired, or "".
func TenantFromCtx(c *fiber.Ctx) string {
	if v, ok := c.Locals(TenantLocalKey).(string); ok {
		return v
	}
	return ""
}

// ClaimsFromCtx returns the token claims stored by AuthRequired, or nil.
func ClaimsFromCtx(c *fiber.Ctx) *auth.Claims {
	if v, ok := c.Locals(ClaimsLocalKey).(*auth.Claims); ok {
		return v
	}
	return nil
}

// unauthorized writes the standard error envelope; the handler package owns the
// full error writer, this mirrors its shape for auth failures only.
func unauthorized(c *fiber.Ctx, message string) error {
	rid, _ := c.Locals(RequestIDLocalKey).(string)
	body, _ := json.Marshal(map[string]any{
		"request_id": rid,
		"error": map[string]string{
			"code":    "UNAUTHORIZED",
			"message": message,
		},
	})
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Status(fiber.StatusUnauthorized).Send(body)
}
