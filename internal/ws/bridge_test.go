package ws

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marioarbosiberica-bot/LaicaFM/internal/domain"
	"github.com/marioarbosiberica-bot/LaicaFM/internal/pubsub"
	"github.com/marioarbosiberica-bot/LaicaFM/internal/radio"
)

// The tests drive a real bridge end to end: engine and chat events travel
// through a GoChannel bus, out over a live websocket connection, and are
// read back with a plain client dialer.

type memChatRepo struct {
	mu       sync.Mutex
	messages []*domain.ChatMessage
}

func (m *memChatRepo) Create(ctx context.Context, msg *domain.ChatMessage) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messages = append(m.messages, msg)
	return nil
}

func (m *memChatRepo) Recent(ctx context.Context, limit int) ([]*domain.ChatMessage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*domain.ChatMessage(nil), m.messages...), nil
}

func (m *memChatRepo) stored() []*domain.ChatMessage {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*domain.ChatMessage(nil), m.messages...)
}

type stubSongRepo struct{}

func (stubSongRepo) Create(ctx context.Context, song *domain.Song) error { return nil }
func (stubSongRepo) GetByID(ctx context.Context, id string) (*domain.Song, error) {
	return nil, domain.ErrNotFound
}
func (stubSongRepo) GetByIDs(ctx context.Context, ids []string) ([]*domain.Song, error) {
	return []*domain.Song{{ID: "s1", Title: "La Flaca", Artist: "Jarabe de Palo", Duration: 230}}, nil
}
func (stubSongRepo) List(ctx context.Context) ([]*domain.Song, error) { return nil, nil }
func (stubSongRepo) Delete(ctx context.Context, id string) error      { return nil }

type stubPlaylistRepo struct{}

func (stubPlaylistRepo) Create(ctx context.Context, playlist *domain.Playlist) error { return nil }
func (stubPlaylistRepo) List(ctx context.Context) ([]*domain.Playlist, error)        { return nil, nil }
func (stubPlaylistRepo) GetActive(ctx context.Context) (*domain.Playlist, error) {
	return &domain.Playlist{ID: "p1", Name: "Rotación", Songs: []string{"s1"}, IsActive: true}, nil
}
func (stubPlaylistRepo) AddSong(ctx context.Context, playlistID, songID string) error { return nil }

type bridgeFixture struct {
	engine *radio.Engine
	chat   *memChatRepo
	server *httptest.Server
	wsURL  string
	cancel context.CancelFunc
}

func newBridgeFixture(t *testing.T) *bridgeFixture {
	t.Helper()

	bus := pubsub.NewGoChannelBus()
	t.Cleanup(func() { bus.Close() })

	chat := &memChatRepo{}
	engine := radio.NewEngine(stubSongRepo{}, stubPlaylistRepo{}, bus)
	bridge := NewBridge(engine, chat, bus)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	go bridge.Run(ctx)
	require.NoError(t, bridge.Attach(ctx, bus))

	e := echo.New()
	e.GET("/api/ws", bridge.Handler())

	server := httptest.NewServer(e)
	t.Cleanup(server.Close)

	return &bridgeFixture{
		engine: engine,
		chat:   chat,
		server: server,
		wsURL:  "ws" + strings.TrimPrefix(server.URL, "http") + "/api/ws",
		cancel: cancel,
	}
}

func (f *bridgeFixture) dial(t *testing.T) *websocket.Conn {
	t.Helper()
	conn, _, err := websocket.DefaultDialer.Dial(f.wsURL, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

// readFrame reads frames until one of the wanted type arrives.
func readFrame(t *testing.T, conn *websocket.Conn, wantType string) map[string]json.RawMessage {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	require.NoError(t, conn.SetReadDeadline(deadline))

	for {
		_, payload, err := conn.ReadMessage()
		require.NoError(t, err, "expected a %s frame before the connection closed", wantType)

		var frame map[string]json.RawMessage
		require.NoError(t, json.Unmarshal(payload, &frame))

		var frameType string
		require.NoError(t, json.Unmarshal(frame["type"], &frameType))
		if frameType == wantType {
			return frame
		}
	}
}

func TestBridge_InitialStateOnConnect(t *testing.T) {
	f := newBridgeFixture(t)
	conn := f.dial(t)

	frame := readFrame(t, conn, FrameRadioState)

	var listeners int
	require.NoError(t, json.Unmarshal(frame["listeners"], &listeners))
	assert.Equal(t, 1, listeners)
}

func TestBridge_StateChangesReachListeners(t *testing.T) {
	f := newBridgeFixture(t)
	conn := f.dial(t)
	readFrame(t, conn, FrameRadioState)

	require.NoError(t, f.engine.Play(context.Background()))

	var state StateFrame
	for {
		frame := readFrame(t, conn, FrameRadioState)
		payload, err := json.Marshal(frame)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(payload, &state))
		if state.IsPlaying {
			break
		}
	}
	require.NotNil(t, state.CurrentSong)
	assert.Equal(t, "La Flaca", state.CurrentSong.Title)
}

func TestBridge_InboundChatIsPersistedAndEchoed(t *testing.T) {
	f := newBridgeFixture(t)
	conn := f.dial(t)
	readFrame(t, conn, FrameRadioState)

	require.NoError(t, conn.WriteMessage(websocket.TextMessage,
		[]byte(`{"type":"chat","username":"laura","message":"¡Hola!"}`)))

	frame := readFrame(t, conn, FrameChatMessage)

	var msg domain.ChatMessage
	require.NoError(t, json.Unmarshal(frame["message"], &msg))
	assert.Equal(t, "laura", msg.Username)
	assert.Equal(t, "¡Hola!", msg.Message)

	stored := f.chat.stored()
	require.Len(t, stored, 1)
	assert.Equal(t, msg.ID, stored[0].ID)
}

func TestBridge_AnonymousChatFallback(t *testing.T) {
	f := newBridgeFixture(t)
	conn := f.dial(t)
	readFrame(t, conn, FrameRadioState)

	require.NoError(t, conn.WriteMessage(websocket.TextMessage,
		[]byte(`{"type":"chat","message":"sin nombre"}`)))

	frame := readFrame(t, conn, FrameChatMessage)

	var msg domain.ChatMessage
	require.NoError(t, json.Unmarshal(frame["message"], &msg))
	assert.Equal(t, "Anónimo", msg.Username)
}

func TestBridge_PositionUpdateAdjustsEngine(t *testing.T) {
	f := newBridgeFixture(t)
	conn := f.dial(t)
	readFrame(t, conn, FrameRadioState)

	require.NoError(t, f.engine.Play(context.Background()))

	require.NoError(t, conn.WriteMessage(websocket.TextMessage,
		[]byte(`{"type":"position_update","position":42.5}`)))

	assert.Eventually(t, func() bool {
		return f.engine.Snapshot().CurrentPosition == 42.5
	}, 5*time.Second, 10*time.Millisecond)
}

func TestBridge_ListenerCountTracksConnections(t *testing.T) {
	f := newBridgeFixture(t)

	first := f.dial(t)
	readFrame(t, first, FrameRadioState)

	second := f.dial(t)
	readFrame(t, second, FrameRadioState)

	// Both connections now count.
	assert.Eventually(t, func() bool {
		return f.engine.Snapshot().Listeners == 2
	}, 5*time.Second, 10*time.Millisecond)

	require.NoError(t, second.Close())

	assert.Eventually(t, func() bool {
		return f.engine.Snapshot().Listeners == 1
	}, 5*time.Second, 10*time.Millisecond)
}

func TestBridge_ShutdownClosesConnectionsAndRejectsLateDials(t *testing.T) {
	f := newBridgeFixture(t)

	conn := f.dial(t)
	readFrame(t, conn, FrameRadioState)

	f.cancel()

	// The open connection is torn down rather than left hanging.
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	var readErr error
	for readErr == nil {
		_, _, readErr = conn.ReadMessage()
	}
	assert.True(t, websocket.IsCloseError(readErr, websocket.CloseNormalClosure, websocket.CloseGoingAway),
		"expected a close frame from the server, got: %v", readErr)

	// A dial after shutdown still completes the upgrade but is closed
	// immediately instead of blocking on registration.
	late, _, err := websocket.DefaultDialer.Dial(f.wsURL, nil)
	require.NoError(t, err)
	defer late.Close()

	require.NoError(t, late.SetReadDeadline(time.Now().Add(5*time.Second)))
	_, _, err = late.ReadMessage()
	assert.True(t, websocket.IsCloseError(err, websocket.CloseGoingAway),
		"expected a going-away close, got: %v", err)
}

func TestBridge_MalformedInboundFrameIsIgnored(t *testing.T) {
	f := newBridgeFixture(t)
	conn := f.dial(t)
	readFrame(t, conn, FrameRadioState)

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("{not json")))

	// The connection survives and still receives broadcasts.
	require.NoError(t, conn.WriteMessage(websocket.TextMessage,
		[]byte(`{"type":"chat","username":"dj","message":"sigo aquí"}`)))

	frame := readFrame(t, conn, FrameChatMessage)
	var msg domain.ChatMessage
	require.NoError(t, json.Unmarshal(frame["message"], &msg))
	assert.Equal(t, "sigo aquí", msg.Message)
}
