package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/marioarbosiberica-bot/LaicaFM/internal/domain"
	"github.com/marioarbosiberica-bot/LaicaFM/internal/middleware"
)

// PlaylistHandler handles the playlist endpoints.
type PlaylistHandler struct {
	playlists domain.PlaylistRepository
}

// NewPlaylistHandler creates a new PlaylistHandler.
func NewPlaylistHandler(playlists domain.PlaylistRepository) *PlaylistHandler {
	return &PlaylistHandler{playlists: playlists}
}

// List handles GET /api/playlists.
func (h *PlaylistHandler) List(c echo.Context) error {
	ctx := c.Request().Context()
	logger := middleware.FromContext(ctx)

	playlists, err := h.playlists.List(ctx)
	if err != nil {
		logger.Error("Failed to list playlists", slog.String("error", err.Error()))
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Code: "playlists_list_failed", Message: "Could not load playlists"})
	}
	if playlists == nil {
		playlists = []*domain.Playlist{}
	}
	return c.JSON(http.StatusOK, playlists)
}

// Create handles POST /api/playlists.
func (h *PlaylistHandler) Create(c echo.Context) error {
	ctx := c.Request().Context()
	logger := middleware.FromContext(ctx)

	var req CreatePlaylistRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Code: "invalid_request", Message: "Invalid playlist request"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Code: "invalid_request", Message: err.Error()})
	}

	playlist := domain.NewPlaylist(req.Name)
	if err := h.playlists.Create(ctx, playlist); err != nil {
		logger.Error("Failed to create playlist", slog.String("error", err.Error()))
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Code: "playlist_create_failed", Message: "Could not create playlist"})
	}

	return c.JSON(http.StatusOK, playlist)
}

// AddSong handles POST /api/playlists/:id/songs/:songID.
func (h *PlaylistHandler) AddSong(c echo.Context) error {
	ctx := c.Request().Context()
	logger := middleware.FromContext(ctx)

	playlistID := c.Param("id")
	songID := c.Param("songID")
	if playlistID == "" || songID == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Code: "missing_id", Message: "Playlist and song IDs are required"})
	}

	if err := h.playlists.AddSong(ctx, playlistID, songID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.JSON(http.StatusNotFound, ErrorResponse{Code: "not_found", Message: "Playlist not found"})
		}
		logger.Error("Failed to add song to playlist", slog.String("error", err.Error()))
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Code: "playlist_update_failed", Message: "Could not update playlist"})
	}

	return c.JSON(http.StatusOK, MessageResponse{Message: "Canción agregada a la playlist"})
}
