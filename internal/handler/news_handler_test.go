package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/campus-itc/club-api/internal/dto"
)

type newsServiceStub struct {
	posts     []dto.NewsResponse
	err       error
	lastLimit int
}

func (s *newsServiceStub) ListPublished(_ context.Context, limit int) ([]dto.NewsResponse, error) {
	s.lastLimit = limit
	return s.posts, s.err
}

func newNewsTestApp(stub *newsServiceStub) *fiber.App {
	app := fiber.New()
	handler := NewNewsHandler(stub, zerolog.New(io.Discard))
	handler.Register(app.Group("/news"))
	return app
}

func TestNewsListReturnsEnvelope(t *testing.T) {
	stub := &newsServiceStub{posts: []dto.NewsResponse{{ID: 1, Title: "Hack Night"}}}
	app := newNewsTestApp(stub)

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/news?limit=5", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.Equal(t, 5, stub.lastLimit)

	var body struct {
		Success bool              `json:"success"`
		Message string            `json:"message"`
		Data    []dto.NewsResponse `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.True(t, body.Success)
	require.Len(t, body.Data, 1)
	require.Equal(t, "Hack Night", body.Data[0].Title)
}

func TestNewsListRejectsBadLimit(t *testing.T) {
	app := newNewsTestApp(&newsServiceStub{})

	for _, query := range []string{"limit=abc", "limit=-3"} {
		resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/news?"+query, nil))
		require.NoError(t, err)
		require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	}
}

func TestNewsListHidesInternalErrors(t *testing.T) {
	app := newNewsTestApp(&newsServiceStub{err: errors.New("connection refused")})

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/news", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)

	payload, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NotContains(t, string(payload), "connection refused")
}
