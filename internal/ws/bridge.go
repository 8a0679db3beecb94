package ws

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/coder/websocket"
	"github.com/labstack/echo/v4"

	"github.com/marioarbosiberica-bot/LaicaFM/internal/domain"
	"github.com/marioarbosiberica-bot/LaicaFM/internal/pubsub"
	"github.com/marioarbosiberica-bot/LaicaFM/internal/radio"
)

// Bridge fans radio state and chat events out to every connected listener
// and routes inbound listener frames back into the service. The listener
// count reported to the engine is exactly the number of open connections.
type Bridge struct {
	engine    *radio.Engine
	chatRepo  domain.ChatRepository
	publisher pubsub.Publisher

	clients    map[*client]bool
	register   chan *client
	unregister chan *client
	broadcast  chan []byte

	// done is closed when Run exits so pumps and late upgrades never block
	// on a channel nobody drains anymore.
	done chan struct{}
}

// client is one websocket connection managed by the bridge.
type client struct {
	conn *websocket.Conn
	send chan []byte
}

// NewBridge initializes a Bridge, ready to handle connections.
func NewBridge(engine *radio.Engine, chatRepo domain.ChatRepository, publisher pubsub.Publisher) *Bridge {
	return &Bridge{
		engine:     engine,
		chatRepo:   chatRepo,
		publisher:  publisher,
		clients:    make(map[*client]bool),
		register:   make(chan *client),
		unregister: make(chan *client),
		broadcast:  make(chan []byte, 64),
		done:       make(chan struct{}),
	}
}

// Run starts the bridge's client lifecycle and fan-out loop. It must be run
// in its own goroutine and exits when ctx is canceled.
func (b *Bridge) Run(ctx context.Context) {
	defer close(b.done)
	for {
		select {
		case <-ctx.Done():
			for c := range b.clients {
				close(c.send)
				delete(b.clients, c)
			}
			return

		case c := <-b.register:
			b.clients[c] = true
			slog.Info("Listener connected", "listeners", len(b.clients))
			// Updating the count broadcasts a fresh snapshot to everyone,
			// which also serves as the new client's initial state.
			b.engine.SetListeners(ctx, len(b.clients))

		case c := <-b.unregister:
			if _, ok := b.clients[c]; ok {
				delete(b.clients, c)
				close(c.send)
				slog.Info("Listener disconnected", "listeners", len(b.clients))
				b.engine.SetListeners(ctx, len(b.clients))
			}

		case payload := <-b.broadcast:
			for c := range b.clients {
				select {
				case c.send <- payload:
				default:
					// The client's send buffer is full. We assume it's dead
					// or stuck, so we unregister it and close its channel.
					close(c.send)
					delete(b.clients, c)
					slog.Warn("Evicting slow listener", "listeners", len(b.clients))
				}
			}
		}
	}
}

// Attach subscribes the bridge to the event bus topics it fans out.
func (b *Bridge) Attach(ctx context.Context, sub pubsub.Subscriber) error {
	err := sub.Subscribe(ctx, pubsub.TopicRadioState, func(ctx context.Context, msg pubsub.Message) error {
		var state domain.RadioState
		if err := json.Unmarshal(msg.Payload, &state); err != nil {
			return fmt.Errorf("malformed radio state event: %w", err)
		}
		frame, err := EncodeState(state)
		if err != nil {
			return err
		}
		b.broadcast <- frame
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to subscribe to radio state: %w", err)
	}

	err = sub.Subscribe(ctx, pubsub.TopicChatMessages, func(ctx context.Context, msg pubsub.Message) error {
		var chatMsg domain.ChatMessage
		if err := json.Unmarshal(msg.Payload, &chatMsg); err != nil {
			return fmt.Errorf("malformed chat event: %w", err)
		}
		frame, err := EncodeChat(chatMsg)
		if err != nil {
			return err
		}
		b.broadcast <- frame
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to subscribe to chat messages: %w", err)
	}

	return nil
}

// Handler returns an echo.HandlerFunc that upgrades requests to websocket
// connections and registers them with the bridge.
func (b *Bridge) Handler() echo.HandlerFunc {
	return func(c echo.Context) error {
		conn, err := websocket.Accept(c.Response(), c.Request(), &websocket.AcceptOptions{
			InsecureSkipVerify: true, // In production, check origin.
		})
		if err != nil {
			slog.Error("Failed to upgrade connection to WebSocket", "error", err)
			return err
		}

		cl := &client{
			conn: conn,
			send: make(chan []byte, 256),
		}
		select {
		case b.register <- cl:
		case <-b.done:
			conn.Close(websocket.StatusGoingAway, "Server shutting down")
			return nil
		}

		go cl.writePump()
		go cl.readPump(b)

		return nil
	}
}

// readPump consumes inbound frames until the connection drops. Chat frames
// are persisted and rebroadcast; position updates adjust the engine clock;
// anything else is ignored.
func (cl *client) readPump(b *Bridge) {
	defer func() {
		select {
		case b.unregister <- cl:
		case <-b.done:
		}
		cl.conn.Close(websocket.StatusNormalClosure, "Listener disconnected")
	}()

	for {
		_, payload, err := cl.conn.Read(context.Background())
		if err != nil {
			if websocket.CloseStatus(err) == websocket.StatusNormalClosure || websocket.CloseStatus(err) == websocket.StatusGoingAway {
				slog.Info("WebSocket closed normally by listener")
			} else if err != io.EOF {
				slog.Error("WebSocket read error", "error", err)
			}
			return
		}

		b.handleInbound(context.Background(), payload)
	}
}

func (b *Bridge) handleInbound(ctx context.Context, payload []byte) {
	var frame inboundFrame
	if err := json.Unmarshal(payload, &frame); err != nil {
		slog.Debug("Dropping unparsable inbound frame", "error", err)
		return
	}

	switch frame.Type {
	case frameChat:
		username := frame.Username
		if username == "" {
			username = "Anónimo"
		}
		msg := domain.NewChatMessage(username, frame.Message)
		if err := b.chatRepo.Create(ctx, msg); err != nil {
			slog.Error("Failed to persist inbound chat message", "error", err)
			return
		}
		body, err := json.Marshal(msg)
		if err != nil {
			slog.Error("Failed to marshal chat message", "error", err)
			return
		}
		event := pubsub.Message{
			Topic:   pubsub.TopicChatMessages,
			Payload: body,
		}
		if err := b.publisher.Publish(ctx, event); err != nil {
			slog.Error("Failed to publish inbound chat message", "error", err)
		}

	case framePositionUpdate:
		b.engine.SetPosition(frame.Position)

	default:
		slog.Debug("Ignoring inbound frame with unknown type", "type", frame.Type)
	}
}

// writePump pumps messages from the client's send channel to the connection.
func (cl *client) writePump() {
	defer func() {
		cl.conn.Close(websocket.StatusNormalClosure, "Server-side cleanup")
	}()

	for {
		payload, ok := <-cl.send
		if !ok {
			// The bridge closed the channel.
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		err := cl.conn.Write(ctx, websocket.MessageText, payload)
		cancel()
		if err != nil {
			slog.Error("WebSocket write error", "error", err)
			return
		}
	}
}
