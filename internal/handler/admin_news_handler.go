package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/campus-itc/club-api/internal/dto"
	"github.com/campus-itc/club-api/internal/service"
	"github.com/campus-itc/club-api/internal/utils"
)

// AdminNewsHandler manages news posts from the back office.
type AdminNewsHandler struct {
	service service.AdminNewsService
	logger  zerolog.Logger
}

// NewAdminNewsHandler constructs the handler.
func NewAdminNewsHandler(service service.AdminNewsService, logger zerolog.Logger) *AdminNewsHandler {
	return &AdminNewsHandler{
		service: service,
		logger:  logger.With().Str("component", "admin_news_handler").Logger(),
	}
}

// Register attaches routes.
func (h *AdminNewsHandler) Register(router fiber.Router) {
	router.Get("", h.list)
	router.Post("", h.create)
	router.Patch("/:id", h.update)
	router.Post("/:id/publish", h.setPublished(true))
	router.Post("/:id/unpublish", h.setPublished(false))
	router.Delete("/:id", h.delete)
}

func (h *AdminNewsHandler) list(c *fiber.Ctx) error {
	page, err := parseQueryInt(c, "page")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid page")
	}
	pageSize, err := parseQueryInt(c, "pageSize")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid page size")
	}

	result, err := h.service.List(c.Context(), page, pageSize)
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to list news (admin)")
		return utils.SendError(c, fiber.StatusInternalServerError, service.SanitizeError(err))
	}

	return utils.SendSuccess(c, "news retrieved", result)
}

func (h *AdminNewsHandler) create(c *fiber.Ctx) error {
	var payload dto.NewsRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	post, err := h.service.Create(c.Context(), payload, auditActorFromContext(c))
	if err != nil {
		if isValidationError(err) {
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to create news post")
		return utils.SendError(c, fiber.StatusInternalServerError, service.SanitizeError(err))
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "news post created", post)
}

func (h *AdminNewsHandler) update(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid identifier")
	}
	var payload dto.NewsRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	post, err := h.service.Update(c.Context(), id, payload, auditActorFromContext(c))
	if err != nil {
		switch {
		case isValidationError(err):
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrNewsNotFound):
			return utils.SendError(c, fiber.StatusNotFound, "news post not found")
		default:
			requestLogger(h.logger, c).Error().Err(err).Uint("news_id", id).Msg("failed to update news post")
			return utils.SendError(c, fiber.StatusInternalServerError, service.SanitizeError(err))
		}
	}

	return utils.SendSuccess(c, "news post updated", post)
}

func (h *AdminNewsHandler) setPublished(published bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseUintParam(c, "id")
		if err != nil {
			return utils.SendError(c, fiber.StatusBadRequest, "invalid identifier")
		}

		post, err := h.service.SetPublished(c.Context(), id, published, auditActorFromContext(c))
		if err != nil {
			if errors.Is(err, service.ErrNewsNotFound) {
				return utils.SendError(c, fiber.StatusNotFound, "news post not found")
			}
			requestLogger(h.logger, c).Error().Err(err).Uint("news_id", id).Msg("failed to change publish state")
			return utils.SendError(c, fiber.StatusInternalServerError, service.SanitizeError(err))
		}

		message := "news post unpublished"
		if published {
			message = "news post published"
		}
		return utils.SendSuccess(c, message, post)
	}
}

func (h *AdminNewsHandler) delete(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid identifier")
	}

	if err := h.service.Delete(c.Context(), id, auditActorFromContext(c)); err != nil {
		if errors.Is(err, service.ErrNewsNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "news post not found")
		}
		requestLogger(h.logger, c).Error().Err(err).Uint("news_id", id).Msg("failed to delete news post")
		return utils.SendError(c, fiber.StatusInternalServerError, service.SanitizeError(err))
	}

	return utils.SendSuccess(c, "news post deleted", fiber.Map{"id": id})
}
