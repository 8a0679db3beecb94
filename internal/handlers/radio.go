package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/marioarbosiberica-bot/LaicaFM/internal/domain"
	"github.com/marioarbosiberica-bot/LaicaFM/internal/middleware"
	"github.com/marioarbosiberica-bot/LaicaFM/internal/radio"
)

// RadioHandler exposes playback commands and the status snapshot. Commands
// acknowledge only; the resulting state reaches consumers through the push
// channel.
type RadioHandler struct {
	engine *radio.Engine
}

// NewRadioHandler creates a new RadioHandler.
func NewRadioHandler(engine *radio.Engine) *RadioHandler {
	return &RadioHandler{engine: engine}
}

// Play handles POST /api/radio/play.
func (h *RadioHandler) Play(c echo.Context) error {
	ctx := c.Request().Context()
	logger := middleware.FromContext(ctx)

	if err := h.engine.Play(ctx); err != nil {
		if errors.Is(err, domain.ErrEmptyPlaylist) {
			return c.JSON(http.StatusConflict, ErrorResponse{Code: "empty_playlist", Message: domain.ErrEmptyPlaylist.Error()})
		}
		logger.Error("Failed to start playback", slog.String("error", err.Error()))
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Code: "play_failed", Message: "Could not start playback"})
	}

	return c.JSON(http.StatusOK, MessageResponse{Message: "Radio iniciada"})
}

// Pause handles POST /api/radio/pause.
func (h *RadioHandler) Pause(c echo.Context) error {
	h.engine.Pause(c.Request().Context())
	return c.JSON(http.StatusOK, MessageResponse{Message: "Radio pausada"})
}

// Next handles POST /api/radio/next.
func (h *RadioHandler) Next(c echo.Context) error {
	h.engine.Next(c.Request().Context())
	return c.JSON(http.StatusOK, MessageResponse{Message: "Siguiente canción"})
}

// Status handles GET /api/radio/status.
func (h *RadioHandler) Status(c echo.Context) error {
	return c.JSON(http.StatusOK, StatusResponse{
		RadioState:     h.engine.Snapshot(),
		PlaylistLength: h.engine.PlaylistLength(),
	})
}
