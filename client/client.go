// Package client is the Go SDK for the LaicaFM radio service. Client covers
// the one-shot request/response API; SyncClient maintains the live push
// subscription for playback state and chat.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"
)

// Client issues one-shot calls against the /api endpoints. Calls are not
// retried; commands are requests only and never mutate local state — the
// push channel is the single source of playback state once connected.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient substitutes the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// New creates a Client for the service rooted at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: http.DefaultClient,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// APIError is returned for non-2xx responses.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error: status %d: %s", e.StatusCode, e.Body)
}

func (c *Client) do(ctx context.Context, method, path string, body io.Reader, contentType string, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &APIError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(data))}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// Songs fetches the song catalog.
func (c *Client) Songs(ctx context.Context) ([]Song, error) {
	var songs []Song
	if err := c.do(ctx, http.MethodGet, "/api/songs", nil, "", &songs); err != nil {
		return nil, err
	}
	return songs, nil
}

// DeleteSong removes a song from the catalog.
func (c *Client) DeleteSong(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/songs/"+url.PathEscape(id), nil, "", nil)
}

// Playlists fetches all playlists.
func (c *Client) Playlists(ctx context.Context) ([]Playlist, error) {
	var playlists []Playlist
	if err := c.do(ctx, http.MethodGet, "/api/playlists", nil, "", &playlists); err != nil {
		return nil, err
	}
	return playlists, nil
}

// CreatePlaylist creates a new, empty playlist.
func (c *Client) CreatePlaylist(ctx context.Context, name string) (*Playlist, error) {
	body, err := json.Marshal(map[string]string{"name": name})
	if err != nil {
		return nil, err
	}
	var playlist Playlist
	if err := c.do(ctx, http.MethodPost, "/api/playlists", bytes.NewReader(body), "application/json", &playlist); err != nil {
		return nil, err
	}
	return &playlist, nil
}

// AddSongToPlaylist appends a song to a playlist.
func (c *Client) AddSongToPlaylist(ctx context.Context, playlistID, songID string) error {
	path := "/api/playlists/" + url.PathEscape(playlistID) + "/songs/" + url.PathEscape(songID)
	return c.do(ctx, http.MethodPost, path, nil, "", nil)
}

// ChatHistory fetches recent chat messages in chronological order. The
// backend returns them newest first; the slice is reversed before returning
// so the last element is the newest message.
func (c *Client) ChatHistory(ctx context.Context) ([]ChatMessage, error) {
	var messages []ChatMessage
	if err := c.do(ctx, http.MethodGet, "/api/chat/messages", nil, "", &messages); err != nil {
		return nil, err
	}
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}
	return messages, nil
}

// PostChatMessage sends a chat message. The server echoes it over the push
// channel; callers should not append it locally.
func (c *Client) PostChatMessage(ctx context.Context, username, message string) (*ChatMessage, error) {
	body, err := json.Marshal(map[string]string{
		"username": username,
		"message":  message,
	})
	if err != nil {
		return nil, err
	}
	var msg ChatMessage
	if err := c.do(ctx, http.MethodPost, "/api/chat/message", bytes.NewReader(body), "application/json", &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

// Status fetches the current playback snapshot.
func (c *Client) Status(ctx context.Context) (*Status, error) {
	var status Status
	if err := c.do(ctx, http.MethodGet, "/api/radio/status", nil, "", &status); err != nil {
		return nil, err
	}
	return &status, nil
}

// Play starts playback. The resulting state arrives via the push channel.
func (c *Client) Play(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/api/radio/play", nil, "", nil)
}

// Pause pauses playback.
func (c *Client) Pause(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/api/radio/pause", nil, "", nil)
}

// Next skips to the next song.
func (c *Client) Next(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/api/radio/next", nil, "", nil)
}

// CurrentStats samples and returns station statistics.
func (c *Client) CurrentStats(ctx context.Context) (*Stats, error) {
	var stats Stats
	if err := c.do(ctx, http.MethodGet, "/api/stats/current", nil, "", &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// Upload sends an audio file as a multipart payload and returns the created
// song. Callers should guard against an empty selection before calling; an
// upload with no content never needs to reach the network.
func (c *Client) Upload(ctx context.Context, filename, contentType string, content io.Reader) (*Song, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, filename))
	if contentType == "" {
		contentType = "audio/mpeg"
	}
	header.Set("Content-Type", contentType)

	part, err := writer.CreatePart(header)
	if err != nil {
		return nil, fmt.Errorf("failed to build multipart body: %w", err)
	}
	if _, err := io.Copy(part, content); err != nil {
		return nil, fmt.Errorf("failed to copy file content: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize multipart body: %w", err)
	}

	var song Song
	if err := c.do(ctx, http.MethodPost, "/api/songs/upload", &buf, writer.FormDataContentType(), &song); err != nil {
		return nil, err
	}
	return &song, nil
}
