package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/campus-itc/club-api/internal/service"
	"github.com/campus-itc/club-api/internal/utils"
)

// PanelistHandler exposes the public panel roster.
type PanelistHandler struct {
	service service.PanelistService
	logger  zerolog.Logger
}

// NewPanelistHandler constructs a panelist handler.
func NewPanelistHandler(service service.PanelistService, logger zerolog.Logger) *PanelistHandler {
	return &PanelistHandler{
		service: service,
		logger:  logger.With().Str("component", "panelist_handler").Logger(),
	}
}

// Register wires panel routes.
func (h *PanelistHandler) Register(router fiber.Router) {
	router.Get("", h.list)
}

func (h *PanelistHandler) list(c *fiber.Ctx) error {
	panelists, err := h.service.ListRanked(c.Context())
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to list panelists")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to load panel")
	}

	return utils.SendSuccess(c, "panel retrieved", panelists)
}
