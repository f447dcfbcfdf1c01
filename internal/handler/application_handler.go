package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/campus-itc/club-api/internal/dto"
	"github.com/campus-itc/club-api/internal/service"
	"github.com/campus-itc/club-api/internal/utils"
)

// ApplicationHandler accepts public membership applications.
type ApplicationHandler struct {
	service service.ApplicationService
	logger  zerolog.Logger
}

// NewApplicationHandler constructs an application handler.
func NewApplicationHandler(service service.ApplicationService, logger zerolog.Logger) *ApplicationHandler {
	return &ApplicationHandler{
		service: service,
		logger:  logger.With().Str("component", "application_handler").Logger(),
	}
}

// Register wires application routes.
func (h *ApplicationHandler) Register(router fiber.Router) {
	router.Post("", h.submit)
}

func (h *ApplicationHandler) submit(c *fiber.Ctx) error {
	var payload dto.ApplicationRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	application, err := h.service.Submit(c.Context(), payload, c.IP())
	if err != nil {
		switch {
		case isValidationError(err):
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrApplicationSpam):
			// Spam submissions get the same response as success so bots
			// cannot tell the honeypot caught them.
			return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "application received", nil)
		case errors.Is(err, service.ErrApplicationRateLimited):
			return utils.SendError(c, fiber.StatusTooManyRequests, "too many applications, try again later")
		case errors.Is(err, service.ErrApplicationsClosed):
			return utils.SendError(c, fiber.StatusForbidden, "applications are currently closed")
		case errors.Is(err, service.ErrApplicationDuplicate):
			return utils.SendError(c, fiber.StatusConflict, "an application with these details already exists")
		default:
			requestLogger(h.logger, c).Error().Err(err).Msg("failed to submit application")
			return utils.SendError(c, fiber.StatusInternalServerError, "failed to submit application")
		}
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "application received", application)
}
