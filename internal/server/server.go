package server

import (
	"context"
	"log"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/surrealdb/surrealdb.go"

	"github.com/marioarbosiberica-bot/LaicaFM/internal/config"
	"github.com/marioarbosiberica-bot/LaicaFM/internal/database"
	"github.com/marioarbosiberica-bot/LaicaFM/internal/handlers"
	"github.com/marioarbosiberica-bot/LaicaFM/internal/logging"
	"github.com/marioarbosiberica-bot/LaicaFM/internal/middleware"
	"github.com/marioarbosiberica-bot/LaicaFM/internal/pubsub"
	"github.com/marioarbosiberica-bot/LaicaFM/internal/radio"
	"github.com/marioarbosiberica-bot/LaicaFM/internal/storage"
	"github.com/marioarbosiberica-bot/LaicaFM/internal/ws"
)

// Server holds the dependencies for the radio service.
type Server struct {
	E      *echo.Echo
	DB     *surrealdb.DB
	Cfg    config.Provider
	PubSub *pubsub.GoChannelBus
	Engine *radio.Engine
	Bridge *ws.Bridge

	songHandler     *handlers.SongHandler
	playlistHandler *handlers.PlaylistHandler
	radioHandler    *handlers.RadioHandler
	chatHandler     *handlers.ChatHandler
	statsHandler    *handlers.StatsHandler

	cancel context.CancelFunc
}

// New creates a new Server instance with all dependencies wired.
func New() *Server {
	// Load environment variables from .env file if it exists.
	if err := godotenv.Load(); err != nil {
		// slog isn't configured yet; the standard logger is fine for setup.
		log.Println("No .env file found, relying on environment variables")
	}

	logging.New()
	cfg := config.New()

	db, err := database.NewDB(context.Background(), cfg)
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}

	bus := pubsub.NewGoChannelBus()

	songStore := database.NewSongStore(db, cfg.GetDBNs(), cfg.GetDBDb())
	playlistStore := database.NewPlaylistStore(db, cfg.GetDBNs(), cfg.GetDBDb())
	chatStore := database.NewChatStore(db, cfg.GetDBNs(), cfg.GetDBDb())
	statsStore := database.NewStatsStore(db, cfg.GetDBNs(), cfg.GetDBDb())

	uploadStore := storage.NewUploadStore(cfg.GetUploadDir())

	engine := radio.NewEngine(songStore, playlistStore, bus)
	bridge := ws.NewBridge(engine, chatStore, bus)

	ctx, cancel := context.WithCancel(context.Background())
	go bridge.Run(ctx)
	if err := bridge.Attach(ctx, bus); err != nil {
		slog.Error("Failed to attach websocket bridge to event bus", "error", err)
		os.Exit(1)
	}
	engine.Start()

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.RequestID())
	e.Use(echomw.Logger())
	e.Use(echomw.Recover())
	e.Use(echomw.CORS())
	e.Use(middleware.Logger)
	e.Validator = handlers.NewValidator()

	return &Server{
		E:               e,
		DB:              db,
		Cfg:             cfg,
		PubSub:          bus,
		Engine:          engine,
		Bridge:          bridge,
		songHandler:     handlers.NewSongHandler(songStore, uploadStore),
		playlistHandler: handlers.NewPlaylistHandler(playlistStore),
		radioHandler:    handlers.NewRadioHandler(engine),
		chatHandler:     handlers.NewChatHandler(chatStore, bus),
		statsHandler:    handlers.NewStatsHandler(engine, statsStore),
		cancel:          cancel,
	}
}
