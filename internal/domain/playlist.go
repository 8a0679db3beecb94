package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Playlist is a named, ordered collection of song IDs. At most one playlist
// is marked active; the radio engine plays from the active one.
type Playlist struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Songs       []string  `json:"songs"`
	CreatedDate time.Time `json:"created_date"`
	IsActive    bool      `json:"is_active"`
}

// NewPlaylist creates an empty playlist with a fresh identifier.
func NewPlaylist(name string) *Playlist {
	return &Playlist{
		ID:          uuid.NewString(),
		Name:        name,
		Songs:       []string{},
		CreatedDate: time.Now().UTC(),
	}
}

// PlaylistRepository defines the persistence contract for playlists.
type PlaylistRepository interface {
	Create(ctx context.Context, playlist *Playlist) error
	List(ctx context.Context) ([]*Playlist, error)
	GetActive(ctx context.Context) (*Playlist, error)
	AddSong(ctx context.Context, playlistID, songID string) error
}
