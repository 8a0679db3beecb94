package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// RadioState is the complete playback snapshot. Consumers replace it
// wholesale on every update; it is never patched incrementally.
type RadioState struct {
	CurrentSong     *Song   `json:"current_song"`
	IsPlaying       bool    `json:"is_playing"`
	IsLive          bool    `json:"is_live"`
	Listeners       int     `json:"listeners"`
	CurrentPosition float64 `json:"current_position"`
}

// RadioStats is a point-in-time sample of station activity, persisted when
// the stats endpoint is hit.
type RadioStats struct {
	ID            string    `json:"id"`
	Timestamp     time.Time `json:"timestamp"`
	Listeners     int       `json:"listeners"`
	CurrentSongID string    `json:"current_song_id,omitempty"`
	IsPlaying     bool      `json:"is_playing"`
	IsLive        bool      `json:"is_live"`
}

// NewRadioStats samples the given state into a persistable record.
func NewRadioStats(state RadioState) *RadioStats {
	stats := &RadioStats{
		ID:        uuid.NewString(),
		Timestamp: time.Now().UTC(),
		Listeners: state.Listeners,
		IsPlaying: state.IsPlaying,
		IsLive:    state.IsLive,
	}
	if state.CurrentSong != nil {
		stats.CurrentSongID = state.CurrentSong.ID
	}
	return stats
}

// StatsRepository defines the persistence contract for stats samples.
type StatsRepository interface {
	Create(ctx context.Context, stats *RadioStats) error
}
