package database

import (
	"context"
	"fmt"

	"github.com/surrealdb/surrealdb.go"

	"github.com/marioarbosiberica-bot/LaicaFM/internal/domain"
)

const playlistFields = "playlist_id AS id, name, songs, created_date, is_active"

// PlaylistStore persists playlists in SurrealDB.
type PlaylistStore struct {
	db     *surrealdb.DB
	ns     string
	dbName string
}

// NewPlaylistStore creates a new PlaylistStore instance.
func NewPlaylistStore(db *surrealdb.DB, ns, dbName string) *PlaylistStore {
	return &PlaylistStore{db: db, ns: ns, dbName: dbName}
}

func (s *PlaylistStore) use(ctx context.Context) error {
	if err := s.db.Use(ctx, s.ns, s.dbName); err != nil {
		return fmt.Errorf("failed to set database scope: %w", err)
	}
	return nil
}

// Create saves a new playlist record.
func (s *PlaylistStore) Create(ctx context.Context, playlist *domain.Playlist) error {
	if err := s.use(ctx); err != nil {
		return err
	}

	query := `CREATE playlist CONTENT {
		playlist_id: $id,
		name: $name,
		songs: $songs,
		created_date: $created_date,
		is_active: $is_active
	}`
	params := map[string]any{
		"id":           playlist.ID,
		"name":         playlist.Name,
		"songs":        playlist.Songs,
		"created_date": playlist.CreatedDate,
		"is_active":    playlist.IsActive,
	}

	if err := Execute(ctx, s.db, query, params); err != nil {
		return fmt.Errorf("failed to create playlist: %w", err)
	}
	return nil
}

// List returns all playlists, oldest first.
func (s *PlaylistStore) List(ctx context.Context) ([]*domain.Playlist, error) {
	if err := s.use(ctx); err != nil {
		return nil, err
	}

	query := "SELECT " + playlistFields + " FROM playlist ORDER BY created_date ASC"
	result, err := Query[domain.Playlist](ctx, s.db, query, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list playlists: %w", err)
	}

	playlists := make([]*domain.Playlist, len(result))
	for i := range result {
		playlists[i] = &result[i]
	}
	return playlists, nil
}

// GetActive returns the playlist currently marked active, or
// domain.ErrNotFound when none is.
func (s *PlaylistStore) GetActive(ctx context.Context) (*domain.Playlist, error) {
	if err := s.use(ctx); err != nil {
		return nil, err
	}

	query := "SELECT " + playlistFields + " FROM playlist WHERE is_active = true"
	playlist, err := QueryOne[domain.Playlist](ctx, s.db, query, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch active playlist: %w", err)
	}
	if playlist == nil {
		return nil, domain.ErrNotFound
	}
	return playlist, nil
}

// AddSong appends a song ID to a playlist. Returns domain.ErrNotFound when
// the playlist does not exist.
func (s *PlaylistStore) AddSong(ctx context.Context, playlistID, songID string) error {
	if err := s.use(ctx); err != nil {
		return err
	}

	existing, err := QueryOne[domain.Playlist](ctx, s.db,
		"SELECT "+playlistFields+" FROM playlist WHERE playlist_id = $id",
		map[string]any{"id": playlistID})
	if err != nil {
		return fmt.Errorf("failed to fetch playlist: %w", err)
	}
	if existing == nil {
		return domain.ErrNotFound
	}

	query := "UPDATE playlist SET songs += $song_id WHERE playlist_id = $id"
	params := map[string]any{
		"id":      playlistID,
		"song_id": songID,
	}
	if err := Execute(ctx, s.db, query, params); err != nil {
		return fmt.Errorf("failed to add song to playlist: %w", err)
	}
	return nil
}

var _ domain.PlaylistRepository = (*PlaylistStore)(nil)
