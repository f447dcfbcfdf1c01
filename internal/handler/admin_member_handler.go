package handler

import (
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/campus-itc/club-api/internal/dto"
	"github.com/campus-itc/club-api/internal/service"
	"github.com/campus-itc/club-api/internal/utils"
)

// AdminMemberHandler manages the member roster from the back office.
type AdminMemberHandler struct {
	service service.AdminMemberService
	logger  zerolog.Logger
}

// NewAdminMemberHandler constructs the handler.
func NewAdminMemberHandler(service service.AdminMemberService, logger zerolog.Logger) *AdminMemberHandler {
	return &AdminMemberHandler{
		service: service,
		logger:  logger.With().Str("component", "admin_member_handler").Logger(),
	}
}

// Register attaches routes.
func (h *AdminMemberHandler) Register(router fiber.Router) {
	router.Get("", h.list)
	router.Get("/export", h.export)
	router.Post("/bulk-status", h.bulkStatus)
	router.Post("/bulk-delete", h.bulkDelete)
	router.Get("/:id", h.get)
	router.Patch("/:id", h.update)
	router.Delete("/:id", h.delete)
}

func (h *AdminMemberHandler) list(c *fiber.Ctx) error {
	page, err := parseQueryInt(c, "page")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid page")
	}
	pageSize, err := parseQueryInt(c, "pageSize")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid page size")
	}

	req := dto.MemberListRequest{
		Page:     page,
		PageSize: pageSize,
		Search:   c.Query("search"),
		Status:   c.Query("status"),
	}

	result, err := h.service.List(c.Context(), req)
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to list members (admin)")
		return utils.SendError(c, fiber.StatusInternalServerError, service.SanitizeError(err))
	}

	return utils.SendSuccess(c, "members retrieved", result)
}

func (h *AdminMemberHandler) get(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid identifier")
	}

	member, err := h.service.Get(c.Context(), id, auditActorFromContext(c))
	if err != nil {
		if errors.Is(err, service.ErrMemberNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "member not found")
		}
		requestLogger(h.logger, c).Error().Err(err).Uint("member_id", id).Msg("failed to get member")
		return utils.SendError(c, fiber.StatusInternalServerError, service.SanitizeError(err))
	}

	return utils.SendSuccess(c, "member retrieved", member)
}

func (h *AdminMemberHandler) update(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid identifier")
	}
	var payload dto.MemberUpdateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	member, err := h.service.Update(c.Context(), id, payload, auditActorFromContext(c))
	if err != nil {
		switch {
		case isValidationError(err):
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrMemberNotFound):
			return utils.SendError(c, fiber.StatusNotFound, "member not found")
		default:
			requestLogger(h.logger, c).Error().Err(err).Uint("member_id", id).Msg("failed to update member")
			return utils.SendError(c, fiber.StatusInternalServerError, service.SanitizeError(err))
		}
	}

	return utils.SendSuccess(c, "member updated", member)
}

func (h *AdminMemberHandler) delete(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid identifier")
	}

	if err := h.service.Delete(c.Context(), id, auditActorFromContext(c)); err != nil {
		if errors.Is(err, service.ErrMemberNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "member not found")
		}
		requestLogger(h.logger, c).Error().Err(err).Uint("member_id", id).Msg("failed to delete member")
		return utils.SendError(c, fiber.StatusInternalServerError, service.SanitizeError(err))
	}

	return utils.SendSuccess(c, "member deleted", fiber.Map{"id": id})
}

func (h *AdminMemberHandler) bulkStatus(c *fiber.Ctx) error {
	var payload dto.BulkMemberRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}
	if len(payload.IDs) == 0 {
		return utils.SendError(c, fiber.StatusBadRequest, "ids are required")
	}
	if payload.Status == "" {
		return utils.SendError(c, fiber.StatusBadRequest, "status is required")
	}

	result := h.service.BulkUpdateStatus(c.Context(), payload.IDs, payload.Status, auditActorFromContext(c))
	return utils.SendSuccess(c, result.Message, result)
}

func (h *AdminMemberHandler) bulkDelete(c *fiber.Ctx) error {
	var payload dto.BulkMemberRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}
	if len(payload.IDs) == 0 {
		return utils.SendError(c, fiber.StatusBadRequest, "ids are required")
	}

	result := h.service.BulkDelete(c.Context(), payload.IDs, auditActorFromContext(c))
	return utils.SendSuccess(c, result.Message, result)
}

func (h *AdminMemberHandler) export(c *fiber.Ctx) error {
	payload, err := h.service.ExportCSV(c.Context(), auditActorFromContext(c))
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to export members")
		return utils.SendError(c, fiber.StatusInternalServerError, service.SanitizeError(err))
	}

	filename := fmt.Sprintf("members-%s.csv", time.Now().UTC().Format("2006-01-02"))
	c.Set(fiber.HeaderContentType, "text/csv")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Send(payload)
}
