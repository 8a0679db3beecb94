package client

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// DefaultReconnectDelay is the pause between reconnect attempts.
const DefaultReconnectDelay = 3 * time.Second

// SyncClient maintains a live, self-healing subscription to the service's
// push channel. It ingests radio_state and chat_message frames: the playback
// snapshot is replaced wholesale on every state event, chat messages are
// appended to an ordered log. The channel is receive-only; the client never
// writes frames.
//
// When the connection drops, the client schedules exactly one reconnect
// attempt per delay interval, forever. It never gives up silently; only
// Close stops it.
type SyncClient struct {
	wsURL  string
	dialer *websocket.Dialer
	delay  time.Duration

	// Callbacks fire after the corresponding state has been applied. They
	// run on the read loop goroutine; keep them fast.
	onState func(RadioState)
	onChat  func(ChatMessage)

	mu       sync.RWMutex
	state    RadioState
	chat     []ChatMessage
	conn     *websocket.Conn

	done      chan struct{}
	closeOnce sync.Once
	started   bool
}

// SyncOption configures a SyncClient.
type SyncOption func(*SyncClient)

// WithReconnectDelay changes the fixed pause between reconnect attempts.
// The retry-forever contract is not configurable.
func WithReconnectDelay(d time.Duration) SyncOption {
	return func(s *SyncClient) {
		if d > 0 {
			s.delay = d
		}
	}
}

// WithStateHandler registers a callback invoked after each snapshot replace.
func WithStateHandler(fn func(RadioState)) SyncOption {
	return func(s *SyncClient) { s.onState = fn }
}

// WithChatHandler registers a callback invoked after each chat append.
func WithChatHandler(fn func(ChatMessage)) SyncOption {
	return func(s *SyncClient) { s.onChat = fn }
}

// NewSyncClient creates a SyncClient for the service rooted at baseURL. The
// push endpoint is derived from the base address with the scheme swapped to
// its websocket equivalent.
func NewSyncClient(baseURL string, opts ...SyncOption) (*SyncClient, error) {
	wsURL, err := pushURL(baseURL)
	if err != nil {
		return nil, err
	}

	s := &SyncClient{
		wsURL:  wsURL,
		dialer: websocket.DefaultDialer,
		delay:  DefaultReconnectDelay,
		done:   make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// pushURL swaps http→ws / https→wss and appends the push channel path. A
// path prefix on the base URL is preserved, the same way the REST client
// resolves its endpoints.
func pushURL(baseURL string) (string, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return "", fmt.Errorf("invalid base URL: %w", err)
	}
	switch u.Scheme {
	case "http", "ws":
		u.Scheme = "ws"
	case "https", "wss":
		u.Scheme = "wss"
	default:
		return "", fmt.Errorf("unsupported scheme %q in base URL", u.Scheme)
	}
	u.Path = strings.TrimRight(u.Path, "/") + "/api/ws"
	u.RawQuery = ""
	u.Fragment = ""
	return u.String(), nil
}

// Start begins the connect/read/reconnect loop in the background. It never
// blocks; connection outcomes are observable only through the applied state.
func (s *SyncClient) Start() {
	s.mu.Lock()
	if s.started {
		s.mu.Unlock()
		return
	}
	s.started = true
	s.mu.Unlock()

	go s.run()
}

// Close tears the client down: the connection is closed and no further
// reconnect is scheduled. Safe to call more than once.
func (s *SyncClient) Close() {
	s.closeOnce.Do(func() {
		close(s.done)

		s.mu.Lock()
		conn := s.conn
		s.conn = nil
		s.mu.Unlock()

		if conn != nil {
			_ = conn.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			conn.Close()
		}
	})
}

// Snapshot returns a copy of the current playback state.
func (s *SyncClient) Snapshot() RadioState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap := s.state
	if s.state.CurrentSong != nil {
		song := *s.state.CurrentSong
		snap.CurrentSong = &song
	}
	return snap
}

// Messages returns a copy of the chat log in arrival order.
func (s *SyncClient) Messages() []ChatMessage {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]ChatMessage, len(s.chat))
	copy(out, s.chat)
	return out
}

func (s *SyncClient) run() {
	for {
		conn, _, err := s.dialer.Dial(s.wsURL, nil)
		if err != nil {
			slog.Warn("Push channel dial failed", "url", s.wsURL, "error", err)
			if !s.wait() {
				return
			}
			continue
		}

		s.mu.Lock()
		if s.closed() {
			s.mu.Unlock()
			conn.Close()
			return
		}
		s.conn = conn
		s.mu.Unlock()

		slog.Info("Push channel connected", "url", s.wsURL)
		s.readLoop(conn)

		s.mu.Lock()
		s.conn = nil
		s.mu.Unlock()

		if !s.wait() {
			return
		}
	}
}

// wait pauses for the reconnect delay. It returns false when the client was
// closed during the pause (or before it).
func (s *SyncClient) wait() bool {
	select {
	case <-s.done:
		return false
	default:
	}
	select {
	case <-s.done:
		return false
	case <-time.After(s.delay):
		return true
	}
}

func (s *SyncClient) closed() bool {
	select {
	case <-s.done:
		return true
	default:
		return false
	}
}

// readLoop consumes frames until the connection drops. Read errors are
// logged only; the close that follows drives the reconnect.
func (s *SyncClient) readLoop(conn *websocket.Conn) {
	defer conn.Close()
	for {
		_, payload, err := conn.ReadMessage()
		if err != nil {
			if !s.closed() && !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				slog.Warn("Push channel read error", "error", err)
			}
			return
		}
		s.handleFrame(payload)
	}
}

// stateFrame mirrors the radio_state wire shape.
type stateFrame struct {
	Type string `json:"type"`
	RadioState
}

// chatFrame mirrors the chat_message wire shape.
type chatFrame struct {
	Type    string      `json:"type"`
	Message ChatMessage `json:"message"`
}

// handleFrame applies one inbound frame. Unknown types and unparsable
// payloads are dropped after logging; they never touch existing state and
// are not treated as connection failures.
func (s *SyncClient) handleFrame(payload []byte) {
	var envelope struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(payload, &envelope); err != nil {
		slog.Debug("Dropping unparsable push frame", "error", err)
		return
	}

	switch envelope.Type {
	case "radio_state":
		var frame stateFrame
		if err := json.Unmarshal(payload, &frame); err != nil {
			slog.Debug("Dropping malformed radio_state frame", "error", err)
			return
		}
		s.mu.Lock()
		s.state = frame.RadioState
		s.mu.Unlock()
		if s.onState != nil {
			s.onState(frame.RadioState)
		}

	case "chat_message":
		var frame chatFrame
		if err := json.Unmarshal(payload, &frame); err != nil {
			slog.Debug("Dropping malformed chat_message frame", "error", err)
			return
		}
		s.mu.Lock()
		s.chat = append(s.chat, frame.Message)
		s.mu.Unlock()
		if s.onChat != nil {
			s.onChat(frame.Message)
		}

	default:
		slog.Debug("Dropping push frame with unknown type", "type", envelope.Type)
	}
}
