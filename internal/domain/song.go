package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Song represents an uploaded audio track. The actual audio content lives in
// the configured storage backend and is referenced by Filename.
type Song struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Artist     string    `json:"artist"`
	Filename   string    `json:"filename"`
	Duration   float64   `json:"duration"`
	FileSize   int64     `json:"file_size"`
	UploadDate time.Time `json:"upload_date"`
}

// NewSong creates a Song with a fresh identifier and upload timestamp.
func NewSong(title, artist, filename string, duration float64, fileSize int64) *Song {
	return &Song{
		ID:         uuid.NewString(),
		Title:      title,
		Artist:     artist,
		Filename:   filename,
		Duration:   duration,
		FileSize:   fileSize,
		UploadDate: time.Now().UTC(),
	}
}

// SongRepository defines the persistence contract for songs.
type SongRepository interface {
	Create(ctx context.Context, song *Song) error
	GetByID(ctx context.Context, id string) (*Song, error)
	GetByIDs(ctx context.Context, ids []string) ([]*Song, error)
	List(ctx context.Context) ([]*Song, error)
	Delete(ctx context.Context, id string) error
}
