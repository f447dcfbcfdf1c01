package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/campus-itc/club-api/internal/dto"
	"github.com/campus-itc/club-api/internal/service"
	"github.com/campus-itc/club-api/internal/utils"
)

// AdminPanelistHandler manages the panel roster from the back office.
type AdminPanelistHandler struct {
	service service.AdminPanelistService
	logger  zerolog.Logger
}

// NewAdminPanelistHandler constructs the handler.
func NewAdminPanelistHandler(service service.AdminPanelistService, logger zerolog.Logger) *AdminPanelistHandler {
	return &AdminPanelistHandler{
		service: service,
		logger:  logger.With().Str("component", "admin_panelist_handler").Logger(),
	}
}

// Register attaches routes.
func (h *AdminPanelistHandler) Register(router fiber.Router) {
	router.Get("", h.list)
	router.Post("", h.create)
	router.Patch("/:id", h.update)
	router.Delete("/:id", h.delete)
}

func (h *AdminPanelistHandler) list(c *fiber.Ctx) error {
	panelists, err := h.service.List(c.Context())
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to list panelists (admin)")
		return utils.SendError(c, fiber.StatusInternalServerError, service.SanitizeError(err))
	}
	return utils.SendSuccess(c, "panelists retrieved", panelists)
}

func (h *AdminPanelistHandler) create(c *fiber.Ctx) error {
	var payload dto.PanelistRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	panelist, err := h.service.Create(c.Context(), payload, auditActorFromContext(c))
	if err != nil {
		if isValidationError(err) {
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to create panelist")
		return utils.SendError(c, fiber.StatusInternalServerError, service.SanitizeError(err))
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "panelist created", panelist)
}

func (h *AdminPanelistHandler) update(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid identifier")
	}
	var payload dto.PanelistRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	panelist, err := h.service.Update(c.Context(), id, payload, auditActorFromContext(c))
	if err != nil {
		switch {
		case isValidationError(err):
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrPanelistNotFound):
			return utils.SendError(c, fiber.StatusNotFound, "panelist not found")
		default:
			requestLogger(h.logger, c).Error().Err(err).Uint("panelist_id", id).Msg("failed to update panelist")
			return utils.SendError(c, fiber.StatusInternalServerError, service.SanitizeError(err))
		}
	}

	return utils.SendSuccess(c, "panelist updated", panelist)
}

func (h *AdminPanelistHandler) delete(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid identifier")
	}

	if err := h.service.Delete(c.Context(), id, auditActorFromContext(c)); err != nil {
		if errors.Is(err, service.ErrPanelistNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "panelist not found")
		}
		requestLogger(h.logger, c).Error().Err(err).Uint("panelist_id", id).Msg("failed to delete panelist")
		return utils.SendError(c, fiber.StatusInternalServerError, service.SanitizeError(err))
	}

	return utils.SendSuccess(c, "panelist deleted", fiber.Map{"id": id})
}
