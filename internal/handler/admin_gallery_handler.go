package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/campus-itc/club-api/internal/dto"
	"github.com/campus-itc/club-api/internal/service"
	"github.com/campus-itc/club-api/internal/utils"
)

// AdminGalleryHandler manages gallery uploads from the back office.
type AdminGalleryHandler struct {
	service service.AdminGalleryService
	logger  zerolog.Logger
}

// NewAdminGalleryHandler constructs the handler.
func NewAdminGalleryHandler(service service.AdminGalleryService, logger zerolog.Logger) *AdminGalleryHandler {
	return &AdminGalleryHandler{
		service: service,
		logger:  logger.With().Str("component", "admin_gallery_handler").Logger(),
	}
}

// Register attaches routes.
func (h *AdminGalleryHandler) Register(router fiber.Router) {
	router.Post("", h.upload)
	router.Patch("/:id", h.update)
	router.Delete("/:id", h.delete)
}

func (h *AdminGalleryHandler) upload(c *fiber.Ctx) error {
	file, err := c.FormFile("file")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "file is required")
	}
	title := c.FormValue("title")
	caption := c.FormValue("caption")

	item, err := h.service.Upload(c.Context(), file, title, caption, auditActorFromContext(c))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUploadTooLarge):
			return utils.SendError(c, fiber.StatusRequestEntityTooLarge, "file exceeds maximum allowed size")
		case errors.Is(err, service.ErrUploadTypeNotAllowed):
			return utils.SendError(c, fiber.StatusUnsupportedMediaType, "only image uploads are allowed")
		default:
			requestLogger(h.logger, c).Error().Err(err).Msg("failed to upload gallery item")
			return utils.SendError(c, fiber.StatusInternalServerError, service.SanitizeError(err))
		}
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "gallery item uploaded", item)
}

func (h *AdminGalleryHandler) update(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid identifier")
	}
	var payload dto.GalleryUpdateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	item, err := h.service.Update(c.Context(), id, payload, auditActorFromContext(c))
	if err != nil {
		switch {
		case isValidationError(err):
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrGalleryNotFound):
			return utils.SendError(c, fiber.StatusNotFound, "gallery item not found")
		default:
			requestLogger(h.logger, c).Error().Err(err).Uint("gallery_id", id).Msg("failed to update gallery item")
			return utils.SendError(c, fiber.StatusInternalServerError, service.SanitizeError(err))
		}
	}

	return utils.SendSuccess(c, "gallery item updated", item)
}

func (h *AdminGalleryHandler) delete(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid identifier")
	}

	if err := h.service.Delete(c.Context(), id, auditActorFromContext(c)); err != nil {
		if errors.Is(err, service.ErrGalleryNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "gallery item not found")
		}
		requestLogger(h.logger, c).Error().Err(err).Uint("gallery_id", id).Msg("failed to delete gallery item")
		return utils.SendError(c, fiber.StatusInternalServerError, service.SanitizeError(err))
	}

	return utils.SendSuccess(c, "gallery item deleted", fiber.Map{"id": id})
}
