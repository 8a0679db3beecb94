package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/dhowden/tag"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/marioarbosiberica-bot/LaicaFM/internal/domain"
	"github.com/marioarbosiberica-bot/LaicaFM/internal/middleware"
	"github.com/marioarbosiberica-bot/LaicaFM/internal/storage"
)

// SongHandler handles the song catalog endpoints.
type SongHandler struct {
	songs domain.SongRepository
	store storage.Store
}

// NewSongHandler creates a new SongHandler.
func NewSongHandler(songs domain.SongRepository, store storage.Store) *SongHandler {
	return &SongHandler{songs: songs, store: store}
}

// List handles GET /api/songs.
func (h *SongHandler) List(c echo.Context) error {
	ctx := c.Request().Context()
	logger := middleware.FromContext(ctx)

	songs, err := h.songs.List(ctx)
	if err != nil {
		logger.Error("Failed to list songs", slog.String("error", err.Error()))
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Code: "songs_list_failed", Message: "Could not load songs"})
	}
	if songs == nil {
		songs = []*domain.Song{}
	}
	return c.JSON(http.StatusOK, songs)
}

// Upload handles POST /api/songs/upload: a multipart form with a single
// "file" field. Title and artist are read from the file's tags with the
// original filename as fallback.
func (h *SongHandler) Upload(c echo.Context) error {
	ctx := c.Request().Context()
	logger := middleware.FromContext(ctx)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Code: "invalid_upload", Message: "Invalid file upload request"})
	}

	if !strings.HasPrefix(fileHeader.Header.Get("Content-Type"), "audio/") {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Code: "unsupported_media", Message: domain.ErrUnsupportedMedia.Error()})
	}

	src, err := fileHeader.Open()
	if err != nil {
		logger.Error("Failed to open uploaded file", slog.String("error", err.Error()))
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Code: "upload_failed", Message: "Failed to open uploaded file"})
	}
	defer src.Close()

	// Tag reading needs a seeker, so buffer the upload in memory. Uploads
	// are single audio files; the size is bounded by the server's multipart
	// limits.
	content, err := io.ReadAll(src)
	if err != nil {
		logger.Error("Failed to read uploaded file", slog.String("error", err.Error()))
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Code: "upload_failed", Message: "Failed to read uploaded file"})
	}

	title, artist := extractTags(content, fileHeader.Filename)

	// Store under a fresh name; the original filename only survives as tag
	// fallback, which also sidesteps path traversal via the filename.
	ext := filepath.Ext(filepath.Base(fileHeader.Filename))
	storageName := fmt.Sprintf("%s%s", uuid.NewString(), ext)

	if _, err := h.store.Save(ctx, storageName, bytes.NewReader(content)); err != nil {
		logger.Error("Failed to save file to storage", slog.String("error", err.Error()))
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Code: "upload_failed", Message: "Failed to save file"})
	}

	song := domain.NewSong(title, artist, storageName, 0, int64(len(content)))
	if err := h.songs.Create(ctx, song); err != nil {
		logger.Error("Failed to save song metadata", slog.String("error", err.Error()))
		// Attempt to clean up the stored file if metadata saving fails.
		_ = h.store.Delete(ctx, storageName)
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Code: "upload_failed", Message: "Failed to save song metadata"})
	}

	return c.JSON(http.StatusOK, song)
}

// Download handles GET /api/songs/:id/download, streaming the stored audio
// file.
func (h *SongHandler) Download(c echo.Context) error {
	ctx := c.Request().Context()
	logger := middleware.FromContext(ctx)

	id := c.Param("id")
	if id == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Code: "missing_id", Message: "Song ID is required"})
	}

	song, err := h.songs.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.JSON(http.StatusNotFound, ErrorResponse{Code: "not_found", Message: "Song not found"})
		}
		logger.Error("Failed to fetch song for download", slog.String("error", err.Error()))
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Code: "download_failed", Message: "Could not load song"})
	}

	rc, err := h.store.Get(ctx, song.Filename)
	if err != nil {
		logger.Error("Failed to open stored audio file", slog.String("path", song.Filename), slog.String("error", err.Error()))
		return c.JSON(http.StatusNotFound, ErrorResponse{Code: "not_found", Message: "Audio file not found"})
	}
	defer rc.Close()

	contentType := mime.TypeByExtension(filepath.Ext(song.Filename))
	if contentType == "" {
		contentType = "audio/mpeg"
	}
	return c.Stream(http.StatusOK, contentType, rc)
}

// Delete handles DELETE /api/songs/:id.
func (h *SongHandler) Delete(c echo.Context) error {
	ctx := c.Request().Context()
	logger := middleware.FromContext(ctx)

	id := c.Param("id")
	if id == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Code: "missing_id", Message: "Song ID is required"})
	}

	song, err := h.songs.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.JSON(http.StatusNotFound, ErrorResponse{Code: "not_found", Message: "Song not found"})
		}
		logger.Error("Failed to fetch song for deletion", slog.String("error", err.Error()))
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Code: "delete_failed", Message: "Could not delete song"})
	}

	if err := h.songs.Delete(ctx, id); err != nil {
		logger.Error("Failed to delete song record", slog.String("error", err.Error()))
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Code: "delete_failed", Message: "Could not delete song"})
	}

	// Best effort: the record is gone, a stray file only wastes disk.
	if err := h.store.Delete(ctx, song.Filename); err != nil {
		logger.Warn("Failed to delete stored audio file", slog.String("path", song.Filename), slog.String("error", err.Error()))
	}

	return c.JSON(http.StatusOK, MessageResponse{Message: "Canción eliminada"})
}

// extractTags reads title and artist from the audio file's metadata,
// falling back to the upload's filename and an unknown-artist marker.
func extractTags(content []byte, filename string) (title, artist string) {
	title = filepath.Base(filename)
	artist = "Artista Desconocido"

	meta, err := tag.ReadFrom(bytes.NewReader(content))
	if err != nil {
		return title, artist
	}
	if t := meta.Title(); t != "" {
		title = t
	}
	if a := meta.Artist(); a != "" {
		artist = a
	}
	return title, artist
}
