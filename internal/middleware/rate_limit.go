package middleware

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/campus-itc/club-api/internal/ratelimit"
	"github.com/campus-itc/club-api/internal/utils"
)

// RateLimit guards a route with the shared rate limiter. Keys combine the
// identifier with the caller's admin identity when present, falling back to
// the client IP for anonymous traffic.
func RateLimit(limiter *ratelimit.Limiter, identifier string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if limiter == nil {
			return c.Next()
		}

		subject := ""
		if v := c.Locals("admin_id"); v != nil {
			if id, ok := v.(string); ok {
				subject = id
			}
		}
		if subject == "" {
			subject = c.IP()
		}

		key := fmt.Sprintf("%s:%s", identifier, subject)
		if !limiter.Allow(c.Context(), key) {
			return utils.SendError(c, fiber.StatusTooManyRequests, "rate limit exceeded")
		}

		return c.Next()
	}
}
