package mail

import "errors"

// ErrNotConfigured indicates the SMTP transport has no usable credentials.
// Handlers translate this into a 503 so callers can distinguish a deployment
// gap from a transient send failure.
var ErrNotConfigured = errors.New("mail transport not configured")

// Message is an outbound email.
type Message struct {
	To      []string
	Cc      []string
	Subject string
	Body    string
	IsHTML  bool
}

// Sender delivers messages and returns the transport message identifier.
type Sender interface {
	Send(message *Message) (string, error)
	Configured() bool
}
