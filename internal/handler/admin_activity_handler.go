package handler

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/campus-itc/club-api/internal/service"
	"github.com/campus-itc/club-api/internal/utils"
)

// AdminActivityHandler exposes the audit trail and the activity dashboard.
type AdminActivityHandler struct {
	service service.AuditService
	logger  zerolog.Logger
}

// NewAdminActivityHandler constructs the handler.
func NewAdminActivityHandler(service service.AuditService, logger zerolog.Logger) *AdminActivityHandler {
	return &AdminActivityHandler{
		service: service,
		logger:  logger.With().Str("component", "admin_activity_handler").Logger(),
	}
}

// Register attaches routes.
func (h *AdminActivityHandler) Register(router fiber.Router) {
	router.Get("", h.summary)
	router.Get("/logs", h.logs)
}

func (h *AdminActivityHandler) summary(c *fiber.Ctx) error {
	summary := h.service.GetAdminActivity(c.Context())
	return utils.SendSuccess(c, "activity summary retrieved", summary)
}

func (h *AdminActivityHandler) logs(c *fiber.Ctx) error {
	limit, err := parseQueryInt(c, "limit")
	if err != nil || limit < 0 {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid limit")
	}
	adminEmail := strings.TrimSpace(c.Query("admin_email"))

	logs := h.service.GetAuditLogs(c.Context(), limit, adminEmail)
	return utils.SendSuccess(c, "audit logs retrieved", logs)
}
