package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/campus-itc/club-api/internal/config"
	"github.com/campus-itc/club-api/internal/utils"
)

// HealthCheck reports liveness along with the deployment identity so the
// admin frontend can show which environment it talks to.
func HealthCheck(cfg config.Config) fiber.Handler {
	type healthPayload struct {
		Status      string    `json:"status"`
		Service     string    `json:"service"`
		Environment string    `json:"environment"`
		CheckedAt   time.Time `json:"checked_at"`
	}

	return func(c *fiber.Ctx) error {
		return utils.SendSuccess(c, "service healthy", healthPayload{
			Status:      "ok",
			Service:     cfg.AppName,
			Environment: cfg.AppEnv,
			CheckedAt:   time.Now().UTC(),
		})
	}
}
