package utils

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
)

func performRequest(t *testing.T, handler fiber.Handler) (int, map[string]interface{}) {
	t.Helper()
	app := fiber.New()
	app.Get("/", handler)

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/", nil))
	require.NoError(t, err)

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return resp.StatusCode, body
}

func TestSendSuccessEnvelope(t *testing.T) {
	status, body := performRequest(t, func(c *fiber.Ctx) error {
		return SendSuccess(c, "members retrieved", []string{"alice"})
	})
	require.Equal(t, fiber.StatusOK, status)
	require.Equal(t, true, body["success"])
	require.Equal(t, "members retrieved", body["message"])
	require.Equal(t, []interface{}{"alice"}, body["data"])
}

func TestSendSuccessDefaultsMessage(t *testing.T) {
	_, body := performRequest(t, func(c *fiber.Ctx) error {
		return SendSuccess(c, "", nil)
	})
	require.Equal(t, "success", body["message"])
	require.NotContains(t, body, "data")
}

func TestSendSuccessWithStatus(t *testing.T) {
	status, body := performRequest(t, func(c *fiber.Ctx) error {
		return SendSuccessWithStatus(c, fiber.StatusCreated, "application received", nil)
	})
	require.Equal(t, fiber.StatusCreated, status)
	require.Equal(t, true, body["success"])
}

func TestSendErrorEnvelope(t *testing.T) {
	status, body := performRequest(t, func(c *fiber.Ctx) error {
		return SendError(c, fiber.StatusNotFound, "member not found")
	})
	require.Equal(t, fiber.StatusNotFound, status)
	require.Equal(t, false, body["success"])
	require.Equal(t, "member not found", body["message"])
	require.NotContains(t, body, "data")
}
