package database

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marioarbosiberica-bot/LaicaFM/internal/domain"
	"github.com/marioarbosiberica-bot/LaicaFM/internal/testutils"
)

// These tests run against a real SurrealDB instance described by .env.test.
// They are skipped when no .env.test is present.

func TestSongStore_Integration(t *testing.T) {
	cfg := testutils.ConfigForTests(t)
	ctx := context.Background()

	db, err := NewDB(ctx, cfg)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close(ctx) })

	store := NewSongStore(db, cfg.GetDBNs(), cfg.GetDBDb())

	song := domain.NewSong("Lo Dejaría Todo", "Chayanne", "chayanne.mp3", 247, 5901234)
	require.NoError(t, store.Create(ctx, song))
	t.Cleanup(func() { _ = store.Delete(ctx, song.ID) })

	t.Run("GetByID returns the created song", func(t *testing.T) {
		got, err := store.GetByID(ctx, song.ID)
		require.NoError(t, err)
		assert.Equal(t, song.ID, got.ID)
		assert.Equal(t, "Chayanne", got.Artist)
		assert.Equal(t, 247.0, got.Duration)
	})

	t.Run("List includes the created song", func(t *testing.T) {
		songs, err := store.List(ctx)
		require.NoError(t, err)

		var found bool
		for _, s := range songs {
			if s.ID == song.ID {
				found = true
			}
		}
		assert.True(t, found, "created song should appear in the catalog listing")
	})

	t.Run("Delete removes the song", func(t *testing.T) {
		require.NoError(t, store.Delete(ctx, song.ID))

		_, err := store.GetByID(ctx, song.ID)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("GetByID on unknown id returns ErrNotFound", func(t *testing.T) {
		_, err := store.GetByID(ctx, "no-such-song")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}
