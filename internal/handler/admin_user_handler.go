package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/campus-itc/club-api/internal/dto"
	"github.com/campus-itc/club-api/internal/service"
	"github.com/campus-itc/club-api/internal/utils"
)

// AdminUserHandler manages back-office accounts. Routes are restricted to the
// root role by the capability table.
type AdminUserHandler struct {
	service service.AdminUserService
	logger  zerolog.Logger
}

// NewAdminUserHandler constructs the handler.
func NewAdminUserHandler(service service.AdminUserService, logger zerolog.Logger) *AdminUserHandler {
	return &AdminUserHandler{
		service: service,
		logger:  logger.With().Str("component", "admin_user_handler").Logger(),
	}
}

// Register attaches routes.
func (h *AdminUserHandler) Register(router fiber.Router) {
	router.Get("", h.list)
	router.Post("", h.create)
	router.Patch("/:id/role", h.changeRole)
	router.Delete("/:id", h.delete)
}

func (h *AdminUserHandler) list(c *fiber.Ctx) error {
	users, err := h.service.List(c.Context())
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to list admin users")
		return utils.SendError(c, fiber.StatusInternalServerError, service.SanitizeError(err))
	}
	return utils.SendSuccess(c, "admin users retrieved", users)
}

func (h *AdminUserHandler) create(c *fiber.Ctx) error {
	var payload dto.AdminUserCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	user, err := h.service.Create(c.Context(), payload, auditActorFromContext(c))
	if err != nil {
		switch {
		case isValidationError(err):
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrAdminUserExists):
			return utils.SendError(c, fiber.StatusConflict, "an account with this email already exists")
		default:
			requestLogger(h.logger, c).Error().Err(err).Msg("failed to create admin user")
			return utils.SendError(c, fiber.StatusInternalServerError, service.SanitizeError(err))
		}
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "admin user created", user)
}

func (h *AdminUserHandler) changeRole(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid identifier")
	}
	var payload dto.AdminUserRoleRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	user, err := h.service.ChangeRole(c.Context(), id, payload, auditActorFromContext(c))
	if err != nil {
		switch {
		case isValidationError(err):
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrAdminUserNotFound):
			return utils.SendError(c, fiber.StatusNotFound, "admin user not found")
		case errors.Is(err, service.ErrLastRootUser):
			return utils.SendError(c, fiber.StatusConflict, "cannot demote the last root account")
		default:
			requestLogger(h.logger, c).Error().Err(err).Uint("user_id", id).Msg("failed to change role")
			return utils.SendError(c, fiber.StatusInternalServerError, service.SanitizeError(err))
		}
	}

	return utils.SendSuccess(c, "role updated", user)
}

func (h *AdminUserHandler) delete(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid identifier")
	}

	if err := h.service.Delete(c.Context(), id, auditActorFromContext(c)); err != nil {
		switch {
		case errors.Is(err, service.ErrAdminUserNotFound):
			return utils.SendError(c, fiber.StatusNotFound, "admin user not found")
		case errors.Is(err, service.ErrLastRootUser):
			return utils.SendError(c, fiber.StatusConflict, "cannot remove the last root account")
		default:
			requestLogger(h.logger, c).Error().Err(err).Uint("user_id", id).Msg("failed to delete admin user")
			return utils.SendError(c, fiber.StatusInternalServerError, service.SanitizeError(err))
		}
	}

	return utils.SendSuccess(c, "admin user deleted", fiber.Map{"id": id})
}
