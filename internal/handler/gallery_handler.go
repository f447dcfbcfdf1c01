package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/campus-itc/club-api/internal/service"
	"github.com/campus-itc/club-api/internal/utils"
)

// GalleryHandler exposes the public gallery feed.
type GalleryHandler struct {
	service service.GalleryService
	logger  zerolog.Logger
}

// NewGalleryHandler constructs a gallery handler.
func NewGalleryHandler(service service.GalleryService, logger zerolog.Logger) *GalleryHandler {
	return &GalleryHandler{
		service: service,
		logger:  logger.With().Str("component", "gallery_handler").Logger(),
	}
}

// Register wires gallery routes.
func (h *GalleryHandler) Register(router fiber.Router) {
	router.Get("", h.list)
}

func (h *GalleryHandler) list(c *fiber.Ctx) error {
	limit, err := parseQueryInt(c, "limit")
	if err != nil || limit < 0 {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid limit")
	}

	items, err := h.service.ListRecent(c.Context(), limit)
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to list gallery items")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to load gallery")
	}

	return utils.SendSuccess(c, "gallery retrieved", items)
}
