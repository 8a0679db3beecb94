package client

import "time"

// Song is an entry in the station's catalog.
type Song struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Artist     string    `json:"artist"`
	Filename   string    `json:"filename"`
	Duration   float64   `json:"duration"`
	FileSize   int64     `json:"file_size"`
	UploadDate time.Time `json:"upload_date"`
}

// Playlist is a named ordered collection of song IDs.
type Playlist struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Songs       []string  `json:"songs"`
	CreatedDate time.Time `json:"created_date"`
	IsActive    bool      `json:"is_active"`
}

// ChatMessage is a single entry in the station chat.
type ChatMessage struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// RadioState is the complete playback snapshot. It is replaced wholesale on
// every radio_state event; the client never merges partial updates.
type RadioState struct {
	CurrentSong     *Song   `json:"current_song"`
	IsPlaying       bool    `json:"is_playing"`
	IsLive          bool    `json:"is_live"`
	Listeners       int     `json:"listeners"`
	CurrentPosition float64 `json:"current_position"`
}

// Status is the response of GET /api/radio/status.
type Status struct {
	RadioState
	PlaylistLength int `json:"playlist_length"`
}

// Stats is a persisted point-in-time sample of station activity.
type Stats struct {
	ID            string    `json:"id"`
	Timestamp     time.Time `json:"timestamp"`
	Listeners     int       `json:"listeners"`
	CurrentSongID string    `json:"current_song_id,omitempty"`
	IsPlaying     bool      `json:"is_playing"`
	IsLive        bool      `json:"is_live"`
}
