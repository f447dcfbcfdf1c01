package service

import (
	"github.com/rs/zerolog"

	"github.com/campus-itc/club-api/internal/mail"
	"github.com/campus-itc/club-api/internal/observability"
)

// Notifier delivers applicant notification emails. Callers treat delivery as
// best-effort; a returned error is surfaced as a warning, never a failure of
// the operation that triggered it.
type Notifier interface {
	SendWelcome(to, memberName string) error
	SendRejection(to, memberName string) error
}

type emailNotifier struct {
	sender mail.Sender
	links  mail.GroupLinks
	logger zerolog.Logger
}

// NewEmailNotifier constructs a notifier over the SMTP sender. The group
// links are the configured defaults embedded in welcome mail.
func NewEmailNotifier(sender mail.Sender, links mail.GroupLinks, logger zerolog.Logger) Notifier {
	return &emailNotifier{
		sender: sender,
		links:  links,
		logger: logger.With().Str("component", "email_notifier").Logger(),
	}
}

func (n *emailNotifier) SendWelcome(to, memberName string) error {
	message, err := mail.WelcomeMessage(to, memberName, n.links)
	if err != nil {
		observability.Emails().WithLabelValues(mail.TypeWelcome, "error").Inc()
		return err
	}
	return n.deliver(mail.TypeWelcome, to, message)
}

func (n *emailNotifier) SendRejection(to, memberName string) error {
	message, err := mail.RejectionMessage(to, memberName)
	if err != nil {
		observability.Emails().WithLabelValues(mail.TypeRejection, "error").Inc()
		return err
	}
	return n.deliver(mail.TypeRejection, to, message)
}

func (n *emailNotifier) deliver(kind, to string, message *mail.Message) error {
	messageID, err := n.sender.Send(message)
	if err != nil {
		observability.Emails().WithLabelValues(kind, "error").Inc()
		n.logger.Warn().Err(err).Str("type", kind).Str("to", maskEmail(to)).Msg("notification email failed")
		return err
	}

	observability.Emails().WithLabelValues(kind, "sent").Inc()
	n.logger.Info().Str("type", kind).Str("to", maskEmail(to)).Str("message_id", messageID).Msg("notification email sent")
	return nil
}
