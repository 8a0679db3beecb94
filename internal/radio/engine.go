package radio

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/marioarbosiberica-bot/LaicaFM/internal/domain"
	"github.com/marioarbosiberica-bot/LaicaFM/internal/pubsub"
)

// Engine owns the authoritative playback state. Every mutation publishes the
// full snapshot on pubsub.TopicRadioState; nothing else in the process is
// allowed to write playback state, so consumers can replace their copy
// wholesale on each event.
type Engine struct {
	songs     domain.SongRepository
	playlists domain.PlaylistRepository
	publisher pubsub.Publisher

	mu       sync.RWMutex
	state    domain.RadioState
	playlist []domain.Song

	tickEvery time.Duration
	done      chan struct{}
	stopOnce  sync.Once
}

// NewEngine creates an Engine. Call Start to begin the playback clock.
func NewEngine(songs domain.SongRepository, playlists domain.PlaylistRepository, publisher pubsub.Publisher) *Engine {
	return &Engine{
		songs:     songs,
		playlists: playlists,
		publisher: publisher,
		tickEvery: time.Second,
		done:      make(chan struct{}),
	}
}

// Start runs the playback clock in a background goroutine until Stop.
func (e *Engine) Start() {
	go func() {
		ticker := time.NewTicker(e.tickEvery)
		defer ticker.Stop()
		for {
			select {
			case <-e.done:
				return
			case <-ticker.C:
				e.tick(context.Background())
			}
		}
	}()
}

// Stop halts the playback clock. Safe to call more than once.
func (e *Engine) Stop() {
	e.stopOnce.Do(func() { close(e.done) })
}

// Snapshot returns a copy of the current playback state.
func (e *Engine) Snapshot() domain.RadioState {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.snapshotLocked()
}

// PlaylistLength reports how many songs the engine has loaded.
func (e *Engine) PlaylistLength() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.playlist)
}

// Play loads the active playlist on first use and starts playback from the
// head of the queue. Returns domain.ErrEmptyPlaylist when there is nothing
// to play.
func (e *Engine) Play(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if len(e.playlist) == 0 {
		if err := e.loadActivePlaylistLocked(ctx); err != nil {
			return err
		}
	}
	if len(e.playlist) == 0 {
		return domain.ErrEmptyPlaylist
	}

	if e.state.CurrentSong == nil {
		song := e.playlist[0]
		e.state.CurrentSong = &song
		e.state.CurrentPosition = 0
	}
	if !e.state.IsPlaying {
		e.state.IsPlaying = true
		e.broadcastLocked(ctx)
	}
	return nil
}

// Pause stops playback without clearing the current song.
func (e *Engine) Pause(ctx context.Context) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state.IsPlaying {
		e.state.IsPlaying = false
		e.broadcastLocked(ctx)
	}
}

// Next advances to the following song in the queue. Past the last song it is
// a no-op, matching the skip button's behavior.
func (e *Engine) Next(ctx context.Context) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.advanceLocked(ctx)
}

// SetListeners updates the listener count and broadcasts the new snapshot.
// The websocket bridge calls this as connections come and go.
func (e *Engine) SetListeners(ctx context.Context, n int) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if n < 0 {
		n = 0
	}
	if e.state.Listeners != n {
		e.state.Listeners = n
		e.broadcastLocked(ctx)
	}
}

// SetPosition overrides the playback position, e.g. from a client
// position_update frame. It does not broadcast; the clock's own updates
// carry the position to listeners.
func (e *Engine) SetPosition(pos float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if pos >= 0 {
		e.state.CurrentPosition = pos
	}
}

// tick advances the playback clock by one interval and auto-advances past
// songs whose duration has elapsed.
func (e *Engine) tick(ctx context.Context) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.state.IsPlaying || e.state.CurrentSong == nil {
		return
	}

	e.state.CurrentPosition += e.tickEvery.Seconds()
	if e.state.CurrentSong.Duration > 0 && e.state.CurrentPosition > e.state.CurrentSong.Duration {
		e.advanceLocked(ctx)
	}
}

// advanceLocked moves to the next song in the queue. When the queue is
// exhausted, playback stops on the final song.
func (e *Engine) advanceLocked(ctx context.Context) {
	if e.state.CurrentSong == nil || len(e.playlist) == 0 {
		return
	}

	idx := -1
	for i := range e.playlist {
		if e.playlist[i].ID == e.state.CurrentSong.ID {
			idx = i
			break
		}
	}

	if idx == -1 || idx >= len(e.playlist)-1 {
		if e.state.IsPlaying {
			e.state.IsPlaying = false
			e.broadcastLocked(ctx)
		}
		return
	}

	song := e.playlist[idx+1]
	e.state.CurrentSong = &song
	e.state.CurrentPosition = 0
	e.broadcastLocked(ctx)
}

// loadActivePlaylistLocked fetches the active playlist's songs, preserving
// the playlist's own ordering.
func (e *Engine) loadActivePlaylistLocked(ctx context.Context) error {
	playlist, err := e.playlists.GetActive(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("failed to load active playlist: %w", err)
	}

	songs, err := e.songs.GetByIDs(ctx, playlist.Songs)
	if err != nil {
		return fmt.Errorf("failed to load playlist songs: %w", err)
	}

	byID := make(map[string]*domain.Song, len(songs))
	for _, s := range songs {
		byID[s.ID] = s
	}

	queue := make([]domain.Song, 0, len(playlist.Songs))
	for _, id := range playlist.Songs {
		if s, ok := byID[id]; ok {
			queue = append(queue, *s)
		}
	}
	e.playlist = queue
	return nil
}

func (e *Engine) snapshotLocked() domain.RadioState {
	snap := e.state
	if e.state.CurrentSong != nil {
		song := *e.state.CurrentSong
		snap.CurrentSong = &song
	}
	return snap
}

// broadcastLocked publishes the current snapshot on the radio state topic.
// Publish failures are logged and swallowed; losing one broadcast only means
// listeners catch up on the next state change.
func (e *Engine) broadcastLocked(ctx context.Context) {
	payload, err := json.Marshal(e.snapshotLocked())
	if err != nil {
		slog.Error("Failed to marshal radio state", "error", err)
		return
	}

	msg := pubsub.Message{
		Topic:   pubsub.TopicRadioState,
		Payload: payload,
		Metadata: map[string]string{
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		},
	}
	if err := e.publisher.Publish(ctx, msg); err != nil {
		slog.Error("Failed to publish radio state", "error", err)
	}
}
