package handlers

import (
	"context"
	"sync"

	"github.com/labstack/echo/v4"

	"github.com/marioarbosiberica-bot/LaicaFM/internal/domain"
	"github.com/marioarbosiberica-bot/LaicaFM/internal/pubsub"
)

// newTestEcho builds an Echo instance configured the same way the server
// wires it, minus the middleware stack.
func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

// mockPublisher records every published message.
type mockPublisher struct {
	mu       sync.Mutex
	messages []pubsub.Message
	err      error
}

func (m *mockPublisher) Publish(ctx context.Context, msg pubsub.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.messages = append(m.messages, msg)
	return nil
}

func (m *mockPublisher) Close() error { return nil }

func (m *mockPublisher) published() []pubsub.Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]pubsub.Message(nil), m.messages...)
}

// mockSongRepo implements domain.SongRepository with overridable behavior.
type mockSongRepo struct {
	createFn   func(ctx context.Context, song *domain.Song) error
	getByIDFn  func(ctx context.Context, id string) (*domain.Song, error)
	getByIDsFn func(ctx context.Context, ids []string) ([]*domain.Song, error)
	listFn     func(ctx context.Context) ([]*domain.Song, error)
	deleteFn   func(ctx context.Context, id string) error
}

func (m *mockSongRepo) Create(ctx context.Context, song *domain.Song) error {
	if m.createFn != nil {
		return m.createFn(ctx, song)
	}
	return nil
}

func (m *mockSongRepo) GetByID(ctx context.Context, id string) (*domain.Song, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, domain.ErrNotFound
}

func (m *mockSongRepo) GetByIDs(ctx context.Context, ids []string) ([]*domain.Song, error) {
	if m.getByIDsFn != nil {
		return m.getByIDsFn(ctx, ids)
	}
	return nil, nil
}

func (m *mockSongRepo) List(ctx context.Context) ([]*domain.Song, error) {
	if m.listFn != nil {
		return m.listFn(ctx)
	}
	return nil, nil
}

func (m *mockSongRepo) Delete(ctx context.Context, id string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

// mockPlaylistRepo implements domain.PlaylistRepository.
type mockPlaylistRepo struct {
	createFn    func(ctx context.Context, playlist *domain.Playlist) error
	listFn      func(ctx context.Context) ([]*domain.Playlist, error)
	getActiveFn func(ctx context.Context) (*domain.Playlist, error)
	addSongFn   func(ctx context.Context, playlistID, songID string) error
}

func (m *mockPlaylistRepo) Create(ctx context.Context, playlist *domain.Playlist) error {
	if m.createFn != nil {
		return m.createFn(ctx, playlist)
	}
	return nil
}

func (m *mockPlaylistRepo) List(ctx context.Context) ([]*domain.Playlist, error) {
	if m.listFn != nil {
		return m.listFn(ctx)
	}
	return nil, nil
}

func (m *mockPlaylistRepo) GetActive(ctx context.Context) (*domain.Playlist, error) {
	if m.getActiveFn != nil {
		return m.getActiveFn(ctx)
	}
	return nil, domain.ErrNotFound
}

func (m *mockPlaylistRepo) AddSong(ctx context.Context, playlistID, songID string) error {
	if m.addSongFn != nil {
		return m.addSongFn(ctx, playlistID, songID)
	}
	return nil
}

// mockChatRepo implements domain.ChatRepository.
type mockChatRepo struct {
	mu       sync.Mutex
	created  []*domain.ChatMessage
	recentFn func(ctx context.Context, limit int) ([]*domain.ChatMessage, error)
	createFn func(ctx context.Context, msg *domain.ChatMessage) error
}

func (m *mockChatRepo) Create(ctx context.Context, msg *domain.ChatMessage) error {
	if m.createFn != nil {
		return m.createFn(ctx, msg)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.created = append(m.created, msg)
	return nil
}

func (m *mockChatRepo) Recent(ctx context.Context, limit int) ([]*domain.ChatMessage, error) {
	if m.recentFn != nil {
		return m.recentFn(ctx, limit)
	}
	return nil, nil
}

// mockStatsRepo implements domain.StatsRepository.
type mockStatsRepo struct {
	mu       sync.Mutex
	created  []*domain.RadioStats
	createFn func(ctx context.Context, stats *domain.RadioStats) error
}

func (m *mockStatsRepo) Create(ctx context.Context, stats *domain.RadioStats) error {
	if m.createFn != nil {
		return m.createFn(ctx, stats)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.created = append(m.created, stats)
	return nil
}
