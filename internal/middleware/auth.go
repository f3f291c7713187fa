// Package middleware provides authentication, logging and rate limiting middleware.
package middleware

import (
	"crypto/subtle"

	"menuboard/internal/models"

	"github.com/gofiber/fiber/v2"
)

// AdminRequired returns a middleware that gates admin endpoints behind the
// shared secret. The credential is read from the X-Admin-Token header or the
// token query parameter and compared in constant time. A matching value
// grants full access to every admin operation; there is no per-operation
// scoping or expiry.
func AdminRequired(adminToken string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Get("X-Admin-Token")
		if token == "" {
			token = c.Query("token")
		}

		if token == "" || subtle.ConstantTimeCompare([]byte(token), []byte(adminToken)) != 1 {
			return models.RespondWithError(c, fiber.StatusForbidden,
				models.NewForbiddenError("Admin access denied"))
		}

		return c.Next()
	}
}
