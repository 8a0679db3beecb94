package ws

import (
	"encoding/json"

	"github.com/marioarbosiberica-bot/LaicaFM/internal/domain"
)

// Frame type discriminators on the push channel.
const (
	FrameRadioState  = "radio_state"
	FrameChatMessage = "chat_message"

	// Inbound frame types honored from listeners.
	frameChat           = "chat"
	framePositionUpdate = "position_update"
)

// StateFrame is the outbound full-snapshot frame. The embedded RadioState
// flattens into the payload so the wire shape matches the snapshot itself
// plus the discriminator.
type StateFrame struct {
	Type string `json:"type"`
	domain.RadioState
}

// ChatFrame is the outbound chat frame carrying a single message.
type ChatFrame struct {
	Type    string             `json:"type"`
	Message domain.ChatMessage `json:"message"`
}

// inboundFrame is the envelope for frames listeners send to the server.
// Fields beyond Type are populated per frame type.
type inboundFrame struct {
	Type     string  `json:"type"`
	Username string  `json:"username"`
	Message  string  `json:"message"`
	Position float64 `json:"position"`
}

// EncodeState wraps a snapshot into a radio_state frame.
func EncodeState(state domain.RadioState) ([]byte, error) {
	return json.Marshal(StateFrame{Type: FrameRadioState, RadioState: state})
}

// EncodeChat wraps a message into a chat_message frame.
func EncodeChat(msg domain.ChatMessage) ([]byte, error) {
	return json.Marshal(ChatFrame{Type: FrameChatMessage, Message: msg})
}
