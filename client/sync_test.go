package client

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pushServer is a minimal stand-in for the service's push endpoint. It
// records dial times and hands each accepted connection to the test.
type pushServer struct {
	t        *testing.T
	server   *httptest.Server
	upgrader websocket.Upgrader

	mu       sync.Mutex
	dials    []time.Time
	conns    chan *websocket.Conn
}

func newPushServer(t *testing.T) *pushServer {
	ps := &pushServer{t: t, conns: make(chan *websocket.Conn, 8)}
	ps.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/ws", r.URL.Path)
		conn, err := ps.upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		ps.mu.Lock()
		ps.dials = append(ps.dials, time.Now())
		ps.mu.Unlock()
		ps.conns <- conn
	}))
	t.Cleanup(ps.server.Close)
	return ps
}

func (ps *pushServer) dialCount() int {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	return len(ps.dials)
}

func (ps *pushServer) dialTimes() []time.Time {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	out := make([]time.Time, len(ps.dials))
	copy(out, ps.dials)
	return out
}

// nextConn waits for the next accepted connection.
func (ps *pushServer) nextConn() *websocket.Conn {
	select {
	case conn := <-ps.conns:
		return conn
	case <-time.After(5 * time.Second):
		ps.t.Fatal("timed out waiting for a push connection")
		return nil
	}
}

func TestPushURL(t *testing.T) {
	tests := []struct {
		base string
		want string
	}{
		{"http://radio.example.com", "ws://radio.example.com/api/ws"},
		{"https://radio.example.com", "wss://radio.example.com/api/ws"},
		// A path prefix survives, like in the REST client's endpoints.
		{"http://localhost:8080/radio", "ws://localhost:8080/radio/api/ws"},
		{"http://localhost:8080/radio/", "ws://localhost:8080/radio/api/ws"},
	}
	for _, tt := range tests {
		got, err := pushURL(tt.base)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}

	_, err := pushURL("ftp://radio.example.com")
	assert.Error(t, err)
}

func TestSyncClient_RadioStateIsFullReplace(t *testing.T) {
	ps := newPushServer(t)

	states := make(chan RadioState, 8)
	sc, err := NewSyncClient(ps.server.URL,
		WithReconnectDelay(50*time.Millisecond),
		WithStateHandler(func(s RadioState) { states <- s }),
	)
	require.NoError(t, err)
	sc.Start()
	defer sc.Close()

	conn := ps.nextConn()
	defer conn.Close()

	frame := `{"type":"radio_state","current_song":{"id":"t1","title":"A","artist":"B"},"is_playing":true,"is_live":true,"listeners":5,"current_position":0}`
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(frame)))

	select {
	case <-states:
	case <-time.After(2 * time.Second):
		t.Fatal("state update never arrived")
	}

	snap := sc.Snapshot()
	require.NotNil(t, snap.CurrentSong)
	assert.Equal(t, "t1", snap.CurrentSong.ID)
	assert.Equal(t, "A", snap.CurrentSong.Title)
	assert.Equal(t, "B", snap.CurrentSong.Artist)
	assert.True(t, snap.IsPlaying)
	assert.True(t, snap.IsLive)
	assert.Equal(t, 5, snap.Listeners)

	// A frame with no current song wipes the previous one: replace, not merge.
	empty := `{"type":"radio_state","current_song":null,"is_playing":false,"is_live":false,"listeners":0,"current_position":0}`
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(empty)))

	select {
	case <-states:
	case <-time.After(2 * time.Second):
		t.Fatal("second state update never arrived")
	}

	snap = sc.Snapshot()
	assert.Nil(t, snap.CurrentSong)
	assert.False(t, snap.IsPlaying)
	assert.Equal(t, 0, snap.Listeners)
}

func TestSyncClient_ChatMessagesAppendInOrder(t *testing.T) {
	ps := newPushServer(t)

	chats := make(chan ChatMessage, 8)
	sc, err := NewSyncClient(ps.server.URL,
		WithReconnectDelay(50*time.Millisecond),
		WithChatHandler(func(m ChatMessage) { chats <- m }),
	)
	require.NoError(t, err)
	sc.Start()
	defer sc.Close()

	conn := ps.nextConn()
	defer conn.Close()

	for _, body := range []string{
		`{"type":"chat_message","message":{"id":"m1","username":"ana","message":"hola"}}`,
		`{"type":"chat_message","message":{"id":"m2","username":"luis","message":"buenas"}}`,
	} {
		require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(body)))
	}

	for i := 0; i < 2; i++ {
		select {
		case <-chats:
		case <-time.After(2 * time.Second):
			t.Fatal("chat message never arrived")
		}
	}

	log := sc.Messages()
	require.Len(t, log, 2)
	assert.Equal(t, "m1", log[0].ID)
	assert.Equal(t, "m2", log[1].ID)
}

func TestSyncClient_MalformedFramesLeaveStateUntouched(t *testing.T) {
	ps := newPushServer(t)

	states := make(chan RadioState, 8)
	chats := make(chan ChatMessage, 8)
	sc, err := NewSyncClient(ps.server.URL,
		WithReconnectDelay(50*time.Millisecond),
		WithStateHandler(func(s RadioState) { states <- s }),
		WithChatHandler(func(m ChatMessage) { chats <- m }),
	)
	require.NoError(t, err)
	sc.Start()
	defer sc.Close()

	conn := ps.nextConn()
	defer conn.Close()

	valid := `{"type":"radio_state","current_song":{"id":"t1","title":"A","artist":"B"},"is_playing":true,"is_live":false,"listeners":2,"current_position":0}`
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(valid)))
	select {
	case <-states:
	case <-time.After(2 * time.Second):
		t.Fatal("state update never arrived")
	}

	// Garbage, an unknown discriminator, then a frame with no type at all.
	for _, body := range []string{
		`this is not json`,
		`{"type":"listener_poll","whatever":1}`,
		`{"detached":"payload"}`,
	} {
		require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(body)))
	}

	// Send a sentinel chat frame and wait for it, proving the bad frames
	// were processed (and dropped) before we assert.
	require.NoError(t, conn.WriteMessage(websocket.TextMessage,
		[]byte(`{"type":"chat_message","message":{"id":"sentinel","username":"x","message":"y"}}`)))
	select {
	case sentinel := <-chats:
		require.Equal(t, "sentinel", sentinel.ID)
	case <-time.After(2 * time.Second):
		t.Fatal("sentinel chat frame never arrived")
	}

	snap := sc.Snapshot()
	require.NotNil(t, snap.CurrentSong)
	assert.Equal(t, "t1", snap.CurrentSong.ID, "malformed frames must not disturb the snapshot")
	assert.Equal(t, 2, snap.Listeners)
}

func TestSyncClient_ReconnectsAfterFixedDelay(t *testing.T) {
	ps := newPushServer(t)

	delay := 200 * time.Millisecond
	sc, err := NewSyncClient(ps.server.URL, WithReconnectDelay(delay))
	require.NoError(t, err)
	sc.Start()
	defer sc.Close()

	first := ps.nextConn()
	// Server drops the connection at t=0.
	first.Close()

	second := ps.nextConn()
	defer second.Close()

	times := ps.dialTimes()
	require.Len(t, times, 2)
	gap := times[1].Sub(times[0])
	assert.GreaterOrEqual(t, gap, delay, "reconnect must not fire before the fixed delay")
	assert.Less(t, gap, 10*delay, "reconnect should fire promptly once the delay elapses")
}

func TestSyncClient_CloseStopsReconnecting(t *testing.T) {
	ps := newPushServer(t)

	delay := 100 * time.Millisecond
	sc, err := NewSyncClient(ps.server.URL, WithReconnectDelay(delay))
	require.NoError(t, err)
	sc.Start()

	conn := ps.nextConn()
	conn.Close()

	sc.Close()
	dialsAtClose := ps.dialCount()

	time.Sleep(5 * delay)
	assert.LessOrEqual(t, ps.dialCount(), dialsAtClose+1,
		"no reconnect attempts should be scheduled after teardown")
}
