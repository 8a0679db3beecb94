package database

import (
	"context"
	"fmt"

	"github.com/surrealdb/surrealdb.go"

	"github.com/marioarbosiberica-bot/LaicaFM/internal/domain"
)

// songFields aliases the application-level identifier back to "id" so query
// results map cleanly onto domain.Song without exposing SurrealDB record IDs.
const songFields = "song_id AS id, title, artist, filename, duration, file_size, upload_date"

// SongStore persists songs in SurrealDB.
type SongStore struct {
	db     *surrealdb.DB
	ns     string
	dbName string
}

// NewSongStore creates a new SongStore instance.
func NewSongStore(db *surrealdb.DB, ns, dbName string) *SongStore {
	return &SongStore{db: db, ns: ns, dbName: dbName}
}

func (s *SongStore) use(ctx context.Context) error {
	if err := s.db.Use(ctx, s.ns, s.dbName); err != nil {
		return fmt.Errorf("failed to set database scope: %w", err)
	}
	return nil
}

// Create saves a new song record.
func (s *SongStore) Create(ctx context.Context, song *domain.Song) error {
	if err := s.use(ctx); err != nil {
		return err
	}

	query := `CREATE song CONTENT {
		song_id: $id,
		title: $title,
		artist: $artist,
		filename: $filename,
		duration: $duration,
		file_size: $file_size,
		upload_date: $upload_date
	}`
	params := map[string]any{
		"id":          song.ID,
		"title":       song.Title,
		"artist":      song.Artist,
		"filename":    song.Filename,
		"duration":    song.Duration,
		"file_size":   song.FileSize,
		"upload_date": song.UploadDate,
	}

	if err := Execute(ctx, s.db, query, params); err != nil {
		return fmt.Errorf("failed to create song: %w", err)
	}
	return nil
}

// GetByID fetches a single song by its application-level identifier.
func (s *SongStore) GetByID(ctx context.Context, id string) (*domain.Song, error) {
	if err := s.use(ctx); err != nil {
		return nil, err
	}

	query := "SELECT " + songFields + " FROM song WHERE song_id = $id"
	song, err := QueryOne[domain.Song](ctx, s.db, query, map[string]any{"id": id})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch song: %w", err)
	}
	if song == nil {
		return nil, domain.ErrNotFound
	}
	return song, nil
}

// GetByIDs fetches the songs matching the given identifiers. Missing IDs are
// silently skipped; the caller decides whether that matters.
func (s *SongStore) GetByIDs(ctx context.Context, ids []string) ([]*domain.Song, error) {
	if err := s.use(ctx); err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, nil
	}

	query := "SELECT " + songFields + " FROM song WHERE song_id IN $ids"
	result, err := Query[domain.Song](ctx, s.db, query, map[string]any{"ids": ids})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch songs: %w", err)
	}

	songs := make([]*domain.Song, len(result))
	for i := range result {
		songs[i] = &result[i]
	}
	return songs, nil
}

// List returns all songs, oldest upload first.
func (s *SongStore) List(ctx context.Context) ([]*domain.Song, error) {
	if err := s.use(ctx); err != nil {
		return nil, err
	}

	query := "SELECT " + songFields + " FROM song ORDER BY upload_date ASC"
	result, err := Query[domain.Song](ctx, s.db, query, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list songs: %w", err)
	}

	songs := make([]*domain.Song, len(result))
	for i := range result {
		songs[i] = &result[i]
	}
	return songs, nil
}

// Delete removes a song record. Returns domain.ErrNotFound when no record
// matches.
func (s *SongStore) Delete(ctx context.Context, id string) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}

	query := "DELETE song WHERE song_id = $id"
	if err := Execute(ctx, s.db, query, map[string]any{"id": id}); err != nil {
		return fmt.Errorf("failed to delete song: %w", err)
	}
	return nil
}

var _ domain.SongRepository = (*SongStore)(nil)
