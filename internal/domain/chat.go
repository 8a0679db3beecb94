package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// ChatMessage is a single entry in the station chat. Messages are append-only
// and displayed in chronological (ascending) order.
type ChatMessage struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// NewChatMessage creates a ChatMessage stamped with the current time.
func NewChatMessage(username, message string) *ChatMessage {
	return &ChatMessage{
		ID:        uuid.NewString(),
		Username:  username,
		Message:   message,
		Timestamp: time.Now().UTC(),
	}
}

// ChatRepository defines the persistence contract for chat messages.
type ChatRepository interface {
	Create(ctx context.Context, msg *ChatMessage) error
	// Recent returns up to limit messages, newest first.
	Recent(ctx context.Context, limit int) ([]*ChatMessage, error)
}
