package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/campus-itc/club-api/internal/mail"
	"github.com/campus-itc/club-api/internal/observability"
)

type senderStub struct {
	err  error
	sent []*mail.Message
}

func (s *senderStub) Send(message *mail.Message) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	s.sent = append(s.sent, message)
	return "msg-123", nil
}

func (s *senderStub) Configured() bool { return s.err == nil }

func newEmailTestApp(sender mail.Sender) *fiber.App {
	app := fiber.New()
	handler := NewEmailHandler(sender, mail.GroupLinks{
		Messenger: "https://m.me/j/default",
		Instagram: "https://ig.me/j/default",
	}, zerolog.New(io.Discard))
	handler.Register(app.Group("/send-email"))
	return app
}

func postEmail(t *testing.T, app *fiber.App, payload map[string]string) (*http.Response, map[string]interface{}) {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(fiber.MethodPost, "/send-email", bytes.NewReader(body))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)

	resp, err := app.Test(req)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))
	return resp, decoded
}

func TestSendEmailWelcome(t *testing.T) {
	sender := &senderStub{}
	app := newEmailTestApp(sender)

	resp, body := postEmail(t, app, map[string]string{
		"type":       "welcome",
		"to":         "new.member@club.test",
		"memberName": "Alice",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.Equal(t, true, body["success"])
	require.Equal(t, "msg-123", body["messageId"])

	require.Len(t, sender.sent, 1)
	require.Equal(t, []string{"new.member@club.test"}, sender.sent[0].To)
	require.Contains(t, sender.sent[0].Body, "Alice")
	require.Contains(t, sender.sent[0].Body, "https://m.me/j/default")
}

func TestSendEmailOverridesGroupLinks(t *testing.T) {
	sender := &senderStub{}
	app := newEmailTestApp(sender)

	resp, _ := postEmail(t, app, map[string]string{
		"type":               "welcome",
		"to":                 "new.member@club.test",
		"memberName":         "Alice",
		"messengerGroupLink": "https://m.me/j/override",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.Contains(t, sender.sent[0].Body, "https://m.me/j/override")
	require.NotContains(t, sender.sent[0].Body, "https://m.me/j/default")
}

func TestSendEmailMissingFields(t *testing.T) {
	app := newEmailTestApp(&senderStub{})

	resp, body := postEmail(t, app, map[string]string{"type": "welcome"})
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	require.Equal(t, "type and to are required", body["error"])

	resp, body = postEmail(t, app, map[string]string{"type": "welcome", "to": "x@club.test"})
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	require.Equal(t, "memberName is required", body["error"])
}

func TestSendEmailUnknownType(t *testing.T) {
	app := newEmailTestApp(&senderStub{})

	resp, body := postEmail(t, app, map[string]string{"type": "newsletter", "to": "x@club.test"})
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	require.Equal(t, "unknown email type", body["error"])
}

func TestSendEmailDeliveryFailure(t *testing.T) {
	app := newEmailTestApp(&senderStub{err: errors.New("dial tcp: connection refused")})

	resp, body := postEmail(t, app, map[string]string{"type": "test", "to": "x@club.test"})
	require.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
	require.Equal(t, "failed to send email", body["error"])
	require.Equal(t, "delivery to the mail server failed", body["details"])
	require.NotContains(t, body["details"], "connection refused")
}

func TestSendEmailCountsDeliveriesAsSent(t *testing.T) {
	sender := &senderStub{}
	app := newEmailTestApp(sender)

	before := testutil.ToFloat64(observability.Emails().WithLabelValues(mail.TypeTest, "sent"))

	resp, _ := postEmail(t, app, map[string]string{"type": "test", "to": "x@club.test"})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	after := testutil.ToFloat64(observability.Emails().WithLabelValues(mail.TypeTest, "sent"))
	require.Equal(t, before+1, after)
}

func TestSendEmailTransportNotConfigured(t *testing.T) {
	app := newEmailTestApp(&senderStub{err: mail.ErrNotConfigured})

	resp, body := postEmail(t, app, map[string]string{"type": "test", "to": "x@club.test"})
	require.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)
	require.Equal(t, "email service not configured", body["error"])
}
