package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/campus-itc/club-api/internal/dto"
	"github.com/campus-itc/club-api/internal/service"
	"github.com/campus-itc/club-api/internal/utils"
)

// AdminSettingsHandler edits the site configuration.
type AdminSettingsHandler struct {
	service service.SettingsService
	logger  zerolog.Logger
}

// NewAdminSettingsHandler constructs the handler.
func NewAdminSettingsHandler(service service.SettingsService, logger zerolog.Logger) *AdminSettingsHandler {
	return &AdminSettingsHandler{
		service: service,
		logger:  logger.With().Str("component", "admin_settings_handler").Logger(),
	}
}

// Register attaches routes.
func (h *AdminSettingsHandler) Register(router fiber.Router) {
	router.Get("", h.get)
	router.Patch("", h.update)
}

func (h *AdminSettingsHandler) get(c *fiber.Ctx) error {
	settings, err := h.service.Get(c.Context())
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to load settings")
		return utils.SendError(c, fiber.StatusInternalServerError, service.SanitizeError(err))
	}
	return utils.SendSuccess(c, "settings retrieved", settings)
}

func (h *AdminSettingsHandler) update(c *fiber.Ctx) error {
	var payload dto.SettingsUpdateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	settings, err := h.service.Update(c.Context(), payload, auditActorFromContext(c))
	if err != nil {
		if isValidationError(err) {
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to update settings")
		return utils.SendError(c, fiber.StatusInternalServerError, service.SanitizeError(err))
	}

	return utils.SendSuccess(c, "settings updated", settings)
}
