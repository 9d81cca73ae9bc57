package serverutils

import (
	"crypto/subtle"
	"strings"

	"interview-assistant-be/internal/pkg/apperror"

	"github.com/gofiber/fiber/v2"
)

// APIKeyMiddleware requires "Authorization: Bearer <key>". An empty key
// disables the check.
func APIKeyMiddleware(key string) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		if key == "" {
			return ctx.Next()
		}
		authHeader := ctx.Get(fiber.HeaderAuthorization)
		token, ok := strings.CutPrefix(authHeader, "Bearer ")
		if !ok || !KeyMatches(key, token) {
			return apperror.Auth("Invalid or missing API key")
		}
		return ctx.Next()
	}
}

func KeyMatches(expected, got string) bool {
	return subtle.ConstantTimeCompare([]byte(expected), []byte(strings.TrimSpace(got))) == 1
}
