package database

import (
	"context"
	"fmt"

	"github.com/surrealdb/surrealdb.go"

	"github.com/marioarbosiberica-bot/LaicaFM/internal/domain"
)

// StatsStore persists listener statistics samples in SurrealDB.
type StatsStore struct {
	db     *surrealdb.DB
	ns     string
	dbName string
}

// NewStatsStore creates a new StatsStore instance.
func NewStatsStore(db *surrealdb.DB, ns, dbName string) *StatsStore {
	return &StatsStore{db: db, ns: ns, dbName: dbName}
}

// Create saves a stats sample.
func (s *StatsStore) Create(ctx context.Context, stats *domain.RadioStats) error {
	if err := s.db.Use(ctx, s.ns, s.dbName); err != nil {
		return fmt.Errorf("failed to set database scope: %w", err)
	}

	query := `CREATE radio_stats CONTENT {
		stats_id: $id,
		timestamp: $timestamp,
		listeners: $listeners,
		current_song_id: $current_song_id,
		is_playing: $is_playing,
		is_live: $is_live
	}`
	params := map[string]any{
		"id":              stats.ID,
		"timestamp":       stats.Timestamp,
		"listeners":       stats.Listeners,
		"current_song_id": stats.CurrentSongID,
		"is_playing":      stats.IsPlaying,
		"is_live":         stats.IsLive,
	}

	if err := Execute(ctx, s.db, query, params); err != nil {
		return fmt.Errorf("failed to create stats sample: %w", err)
	}
	return nil
}

var _ domain.StatsRepository = (*StatsStore)(nil)
