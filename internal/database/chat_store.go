package database

import (
	"context"
	"fmt"

	"github.com/surrealdb/surrealdb.go"

	"github.com/marioarbosiberica-bot/LaicaFM/internal/domain"
)

const chatFields = "message_id AS id, username, message, timestamp"

// ChatStore persists chat messages in SurrealDB.
type ChatStore struct {
	db     *surrealdb.DB
	ns     string
	dbName string
}

// NewChatStore creates a new ChatStore instance.
func NewChatStore(db *surrealdb.DB, ns, dbName string) *ChatStore {
	return &ChatStore{db: db, ns: ns, dbName: dbName}
}

func (s *ChatStore) use(ctx context.Context) error {
	if err := s.db.Use(ctx, s.ns, s.dbName); err != nil {
		return fmt.Errorf("failed to set database scope: %w", err)
	}
	return nil
}

// Create saves a new chat message.
func (s *ChatStore) Create(ctx context.Context, msg *domain.ChatMessage) error {
	if err := s.use(ctx); err != nil {
		return err
	}

	query := `CREATE chat_message CONTENT {
		message_id: $id,
		username: $username,
		message: $message,
		timestamp: $timestamp
	}`
	params := map[string]any{
		"id":        msg.ID,
		"username":  msg.Username,
		"message":   msg.Message,
		"timestamp": msg.Timestamp,
	}

	if err := Execute(ctx, s.db, query, params); err != nil {
		return fmt.Errorf("failed to create chat message: %w", err)
	}
	return nil
}

// Recent retrieves up to limit messages, newest first. Clients reverse the
// order for display.
func (s *ChatStore) Recent(ctx context.Context, limit int) ([]*domain.ChatMessage, error) {
	if err := s.use(ctx); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 50
	}

	query := "SELECT " + chatFields + " FROM chat_message ORDER BY timestamp DESC LIMIT $limit"
	result, err := Query[domain.ChatMessage](ctx, s.db, query, map[string]any{"limit": limit})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch chat messages: %w", err)
	}

	messages := make([]*domain.ChatMessage, len(result))
	for i := range result {
		messages[i] = &result[i]
	}
	return messages, nil
}

var _ domain.ChatRepository = (*ChatStore)(nil)
