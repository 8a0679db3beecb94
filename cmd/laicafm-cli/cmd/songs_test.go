package cmd

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingServer records how many requests reach it and answers every one
// with a minimal song document.
func countingServer(t *testing.T) (*httptest.Server, *atomic.Int64) {
	t.Helper()

	var requests atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"s1","title":"demo.mp3","artist":"Artista Desconocido"}`))
	}))
	t.Cleanup(server.Close)

	orig := serverURL
	serverURL = server.URL
	t.Cleanup(func() { serverURL = orig })

	return server, &requests
}

func TestSongsUpload_MissingFileIssuesNoRequest(t *testing.T) {
	_, requests := countingServer(t)

	songsUploadCmd.SetContext(context.Background())
	err := songsUploadCmd.RunE(songsUploadCmd, []string{filepath.Join(t.TempDir(), "no-such-file.mp3")})

	require.Error(t, err)
	assert.EqualValues(t, 0, requests.Load(), "an unreadable file must never produce a request")
}

func TestSongsUpload_ExistingFileIsSent(t *testing.T) {
	_, requests := countingServer(t)

	path := filepath.Join(t.TempDir(), "demo.mp3")
	require.NoError(t, os.WriteFile(path, []byte("mpeg frames"), 0o644))

	songsUploadCmd.SetContext(context.Background())
	err := songsUploadCmd.RunE(songsUploadCmd, []string{path})

	require.NoError(t, err)
	assert.EqualValues(t, 1, requests.Load())
}
