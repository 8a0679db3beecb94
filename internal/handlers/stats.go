package handlers

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/marioarbosiberica-bot/LaicaFM/internal/domain"
	"github.com/marioarbosiberica-bot/LaicaFM/internal/middleware"
	"github.com/marioarbosiberica-bot/LaicaFM/internal/radio"
)

// StatsHandler samples station statistics on demand.
type StatsHandler struct {
	engine *radio.Engine
	stats  domain.StatsRepository
}

// NewStatsHandler creates a new StatsHandler.
func NewStatsHandler(engine *radio.Engine, stats domain.StatsRepository) *StatsHandler {
	return &StatsHandler{engine: engine, stats: stats}
}

// Current handles GET /api/stats/current: samples the live state, persists
// the sample, and returns it.
func (h *StatsHandler) Current(c echo.Context) error {
	ctx := c.Request().Context()
	logger := middleware.FromContext(ctx)

	sample := domain.NewRadioStats(h.engine.Snapshot())
	if err := h.stats.Create(ctx, sample); err != nil {
		logger.Error("Failed to persist stats sample", slog.String("error", err.Error()))
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Code: "stats_failed", Message: "Could not record stats"})
	}

	return c.JSON(http.StatusOK, sample)
}
