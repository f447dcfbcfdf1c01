package mail

import (
	"crypto/tls"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gopkg.in/gomail.v2"
)

// SMTPConfig carries the transport credentials read from the environment.
type SMTPConfig struct {
	Host     string
	Port     int
	Secure   bool
	Username string
	Password string
	From     string
}

// SMTPSender delivers mail over SMTP using gomail.
type SMTPSender struct {
	dialer *gomail.Dialer
	cfg    SMTPConfig
	logger zerolog.Logger
}

// NewSMTPSender constructs an SMTP sender. A sender with missing credentials
// is still returned so the service can boot; Send fails with ErrNotConfigured.
func NewSMTPSender(cfg SMTPConfig, logger zerolog.Logger) *SMTPSender {
	var dialer *gomail.Dialer
	if cfg.Host != "" && cfg.Username != "" && cfg.Password != "" {
		dialer = gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
		dialer.SSL = cfg.Secure
		dialer.TLSConfig = &tls.Config{ServerName: cfg.Host}
	}

	return &SMTPSender{
		dialer: dialer,
		cfg:    cfg,
		logger: logger.With().Str("component", "smtp_sender").Logger(),
	}
}

// Configured reports whether the transport has usable credentials.
func (s *SMTPSender) Configured() bool {
	return s.dialer != nil
}

// Send delivers the message and returns a generated message identifier.
func (s *SMTPSender) Send(message *Message) (string, error) {
	if s.dialer == nil {
		return "", ErrNotConfigured
	}

	from := s.cfg.From
	if from == "" {
		from = s.cfg.Username
	}

	messageID := fmt.Sprintf("<%s@%s>", uuid.NewString(), s.cfg.Host)

	msg := gomail.NewMessage()
	msg.SetHeader("From", from)
	msg.SetHeader("To", message.To...)
	if len(message.Cc) > 0 {
		msg.SetHeader("Cc", message.Cc...)
	}
	msg.SetHeader("Subject", message.Subject)
	msg.SetHeader("Message-ID", messageID)
	if message.IsHTML {
		msg.SetBody("text/html", message.Body)
	} else {
		msg.SetBody("text/plain", message.Body)
	}

	if err := s.dialer.DialAndSend(msg); err != nil {
		return "", err
	}

	s.logger.Info().Str("message_id", messageID).Msg("email delivered")
	return messageID, nil
}
