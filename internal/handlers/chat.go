package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/marioarbosiberica-bot/LaicaFM/internal/domain"
	"github.com/marioarbosiberica-bot/LaicaFM/internal/middleware"
	"github.com/marioarbosiberica-bot/LaicaFM/internal/pubsub"
)

// ChatHandler handles the chat endpoints. Posted messages are persisted and
// then published on the event bus; the websocket bridge echoes them to every
// listener, including the sender. Clients do not append locally.
type ChatHandler struct {
	chat      domain.ChatRepository
	publisher pubsub.Publisher
}

// NewChatHandler creates a new ChatHandler.
func NewChatHandler(chat domain.ChatRepository, publisher pubsub.Publisher) *ChatHandler {
	return &ChatHandler{chat: chat, publisher: publisher}
}

// History handles GET /api/chat/messages: the last 50 messages, newest first.
func (h *ChatHandler) History(c echo.Context) error {
	ctx := c.Request().Context()
	logger := middleware.FromContext(ctx)

	messages, err := h.chat.Recent(ctx, 50)
	if err != nil {
		logger.Error("Failed to load chat history", slog.String("error", err.Error()))
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Code: "chat_history_failed", Message: "Could not load chat history"})
	}
	if messages == nil {
		messages = []*domain.ChatMessage{}
	}
	return c.JSON(http.StatusOK, messages)
}

// Post handles POST /api/chat/message with a JSON body.
func (h *ChatHandler) Post(c echo.Context) error {
	ctx := c.Request().Context()
	logger := middleware.FromContext(ctx)

	var req PostChatMessageRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Code: "invalid_request", Message: "Invalid chat message"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Code: "invalid_request", Message: err.Error()})
	}

	msg := domain.NewChatMessage(req.Username, req.Message)
	if err := h.chat.Create(ctx, msg); err != nil {
		logger.Error("Failed to persist chat message", slog.String("error", err.Error()))
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Code: "chat_post_failed", Message: "Could not save chat message"})
	}

	payload, err := json.Marshal(msg)
	if err != nil {
		logger.Error("Failed to marshal chat message", slog.String("error", err.Error()))
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Code: "chat_post_failed", Message: "Could not publish chat message"})
	}
	event := pubsub.Message{
		Topic:   pubsub.TopicChatMessages,
		Payload: payload,
	}
	if err := h.publisher.Publish(ctx, event); err != nil {
		// The message is saved; it will show up in history even if this
		// broadcast is lost.
		logger.Error("Failed to publish chat message", slog.String("error", err.Error()))
	}

	return c.JSON(http.StatusOK, msg)
}
