package server

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/marioarbosiberica-bot/LaicaFM/internal/handlers"
	"github.com/marioarbosiberica-bot/LaicaFM/internal/middleware"
)

// RegisterRoutes sets up all the application routes.
func (s *Server) RegisterRoutes() {
	rateLimiter := middleware.RateLimiter()

	api := s.E.Group("/api")

	api.GET("/", handlers.Root)

	api.GET("/songs", s.songHandler.List)
	api.POST("/songs/upload", s.songHandler.Upload, rateLimiter)
	api.GET("/songs/:id/download", s.songHandler.Download)
	api.DELETE("/songs/:id", s.songHandler.Delete)

	api.GET("/playlists", s.playlistHandler.List)
	api.POST("/playlists", s.playlistHandler.Create)
	api.POST("/playlists/:id/songs/:songID", s.playlistHandler.AddSong)

	api.POST("/radio/play", s.radioHandler.Play)
	api.POST("/radio/pause", s.radioHandler.Pause)
	api.POST("/radio/next", s.radioHandler.Next)
	api.GET("/radio/status", s.radioHandler.Status)

	api.GET("/chat/messages", s.chatHandler.History)
	api.POST("/chat/message", s.chatHandler.Post, rateLimiter)

	api.GET("/stats/current", s.statsHandler.Current)

	api.GET("/ws", s.Bridge.Handler())

	s.E.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "OK")
	})
}
