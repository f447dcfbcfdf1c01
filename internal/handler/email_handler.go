package handler

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/campus-itc/club-api/internal/dto"
	"github.com/campus-itc/club-api/internal/mail"
	"github.com/campus-itc/club-api/internal/observability"
)

// EmailHandler exposes the outbound notification endpoint. Response shapes
// follow the public contract of the original site rather than the standard
// envelope.
type EmailHandler struct {
	sender mail.Sender
	links  mail.GroupLinks
	logger zerolog.Logger
}

// NewEmailHandler constructs an email handler.
func NewEmailHandler(sender mail.Sender, links mail.GroupLinks, logger zerolog.Logger) *EmailHandler {
	return &EmailHandler{
		sender: sender,
		links:  links,
		logger: logger.With().Str("component", "email_handler").Logger(),
	}
}

// Register wires the send-email route.
func (h *EmailHandler) Register(router fiber.Router) {
	router.Post("", h.send)
}

func (h *EmailHandler) send(c *fiber.Ctx) error {
	var payload dto.EmailSendRequest
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid payload"})
	}

	payload.Type = strings.TrimSpace(payload.Type)
	payload.To = strings.TrimSpace(payload.To)
	if payload.Type == "" || payload.To == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "type and to are required"})
	}

	links := h.links
	if payload.MessengerGroupLink != "" {
		links.Messenger = payload.MessengerGroupLink
	}
	if payload.InstagramGroupLink != "" {
		links.Instagram = payload.InstagramGroupLink
	}

	var (
		message *mail.Message
		err     error
	)
	switch payload.Type {
	case mail.TypeWelcome:
		if payload.MemberName == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "memberName is required"})
		}
		message, err = mail.WelcomeMessage(payload.To, payload.MemberName, links)
	case mail.TypeRejection:
		if payload.MemberName == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "memberName is required"})
		}
		message, err = mail.RejectionMessage(payload.To, payload.MemberName)
	case mail.TypeTest:
		message = mail.TestMessage(payload.To)
	default:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "unknown email type"})
	}
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Str("type", payload.Type).Msg("failed to render email")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "failed to render email",
			"details": "the message template could not be rendered",
		})
	}

	messageID, err := h.sender.Send(message)
	if err != nil {
		observability.Emails().WithLabelValues(payload.Type, "error").Inc()
		if errors.Is(err, mail.ErrNotConfigured) {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"error":   "email service not configured",
				"details": "SMTP transport is not set up on this deployment",
			})
		}
		requestLogger(h.logger, c).Error().Err(err).Str("type", payload.Type).Msg("failed to send email")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "failed to send email",
			"details": "delivery to the mail server failed",
		})
	}

	observability.Emails().WithLabelValues(payload.Type, "sent").Inc()

	return c.Status(fiber.StatusOK).JSON(dto.EmailSendResponse{
		Success:   true,
		Message:   "email sent",
		MessageID: messageID,
	})
}
