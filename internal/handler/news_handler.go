package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/campus-itc/club-api/internal/service"
	"github.com/campus-itc/club-api/internal/utils"
)

// NewsHandler exposes the public news feed.
type NewsHandler struct {
	service service.NewsService
	logger  zerolog.Logger
}

// NewNewsHandler constructs a news handler.
func NewNewsHandler(service service.NewsService, logger zerolog.Logger) *NewsHandler {
	return &NewsHandler{
		service: service,
		logger:  logger.With().Str("component", "news_handler").Logger(),
	}
}

// Register wires news routes.
func (h *NewsHandler) Register(router fiber.Router) {
	router.Get("", h.list)
}

func (h *NewsHandler) list(c *fiber.Ctx) error {
	limit, err := parseQueryInt(c, "limit")
	if err != nil || limit < 0 {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid limit")
	}

	posts, err := h.service.ListPublished(c.Context(), limit)
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to list news")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to load news")
	}

	return utils.SendSuccess(c, "news retrieved", posts)
}
