package handlers

import "github.com/marioarbosiberica-bot/LaicaFM/internal/domain"

// ErrorResponse is the standard format for API error responses.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// MessageResponse is the acknowledgement shape for command endpoints. The
// radio commands deliberately do not return the resulting snapshot; the push
// channel is the single writer of playback state on the consumer side.
type MessageResponse struct {
	Message string `json:"message"`
}

// StatusResponse is the body of GET /api/radio/status: the full snapshot
// plus the length of the loaded playlist.
type StatusResponse struct {
	domain.RadioState
	PlaylistLength int `json:"playlist_length"`
}
