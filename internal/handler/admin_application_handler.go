package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/campus-itc/club-api/internal/dto"
	"github.com/campus-itc/club-api/internal/service"
	"github.com/campus-itc/club-api/internal/utils"
)

// AdminApplicationHandler reviews membership applications.
type AdminApplicationHandler struct {
	service service.AdminApplicationService
	logger  zerolog.Logger
}

// NewAdminApplicationHandler constructs the handler.
func NewAdminApplicationHandler(service service.AdminApplicationService, logger zerolog.Logger) *AdminApplicationHandler {
	return &AdminApplicationHandler{
		service: service,
		logger:  logger.With().Str("component", "admin_application_handler").Logger(),
	}
}

// Register attaches routes.
func (h *AdminApplicationHandler) Register(router fiber.Router) {
	router.Get("", h.list)
	router.Post("/bulk-approve", h.bulkDecide(service.DecisionApprove))
	router.Post("/bulk-reject", h.bulkDecide(service.DecisionReject))
	router.Get("/:id", h.get)
	router.Post("/:id/approve", h.decide(service.DecisionApprove))
	router.Post("/:id/reject", h.decide(service.DecisionReject))
}

func (h *AdminApplicationHandler) list(c *fiber.Ctx) error {
	page, err := parseQueryInt(c, "page")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid page")
	}
	pageSize, err := parseQueryInt(c, "pageSize")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid page size")
	}

	req := dto.ApplicationListRequest{
		Page:     page,
		PageSize: pageSize,
		Status:   c.Query("status"),
		Search:   c.Query("search"),
	}

	result, err := h.service.List(c.Context(), req)
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to list applications")
		return utils.SendError(c, fiber.StatusInternalServerError, service.SanitizeError(err))
	}

	return utils.SendSuccess(c, "applications retrieved", result)
}

func (h *AdminApplicationHandler) get(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid identifier")
	}

	application, err := h.service.Get(c.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrApplicationNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "application not found")
		}
		requestLogger(h.logger, c).Error().Err(err).Uint("application_id", id).Msg("failed to get application")
		return utils.SendError(c, fiber.StatusInternalServerError, service.SanitizeError(err))
	}

	return utils.SendSuccess(c, "application retrieved", application)
}

func (h *AdminApplicationHandler) decide(decision string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseUintParam(c, "id")
		if err != nil {
			return utils.SendError(c, fiber.StatusBadRequest, "invalid identifier")
		}

		application, err := h.service.Decide(c.Context(), id, decision, auditActorFromContext(c))
		if err != nil {
			if errors.Is(err, service.ErrApplicationNotFound) {
				return utils.SendError(c, fiber.StatusNotFound, "application not found")
			}
			requestLogger(h.logger, c).Error().Err(err).Uint("application_id", id).Str("decision", decision).Msg("failed to decide application")
			return utils.SendError(c, fiber.StatusInternalServerError, service.SanitizeError(err))
		}

		return utils.SendSuccess(c, "application "+decision+"d", application)
	}
}

func (h *AdminApplicationHandler) bulkDecide(decision string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var payload dto.BulkApplicationRequest
		if err := c.BodyParser(&payload); err != nil {
			return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
		}
		if len(payload.IDs) == 0 {
			return utils.SendError(c, fiber.StatusBadRequest, "ids are required")
		}

		result := h.service.BulkDecide(c.Context(), payload.IDs, decision, auditActorFromContext(c))
		return utils.SendSuccess(c, result.Message, result)
	}
}
