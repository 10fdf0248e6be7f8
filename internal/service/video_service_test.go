package service

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"pilates_diario_backend/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBunnyFixture(t *testing.T, handler http.HandlerFunc) *VideoService {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return NewVideoService(&config.BunnyConfig{
		LibraryID: "lib123",
		APIKey:    "test-key",
		BaseURL:   server.URL,
		EmbedBase: "https://iframe.mediadelivery.net/embed",
	})
}

func TestCreateVideo(t *testing.T) {
	svc := newBunnyFixture(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/library/lib123/videos", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("AccessKey"))

		var body struct {
			Title string `json:"title"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "Hundred", body.Title)

		json.NewEncoder(w).Encode(map[string]string{"guid": "abc-123"})
	})

	guid, err := svc.CreateVideo(context.Background(), "Hundred")
	require.NoError(t, err)
	assert.Equal(t, "abc-123", guid)
}

func TestCreateVideoRejectsBadStatus(t *testing.T) {
	svc := newBunnyFixture(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	_, err := svc.CreateVideo(context.Background(), "Hundred")
	assert.ErrorContains(t, err, "unexpected status 401")
}

func TestCreateVideoRejectsMissingGUID(t *testing.T) {
	svc := newBunnyFixture(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	})

	_, err := svc.CreateVideo(context.Background(), "Hundred")
	assert.ErrorContains(t, err, "no guid")
}

func TestUploadVideo(t *testing.T) {
	var uploaded []byte
	svc := newBunnyFixture(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/library/lib123/videos/abc-123", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("AccessKey"))
		assert.Equal(t, "application/octet-stream", r.Header.Get("Content-Type"))

		var err error
		uploaded, err = io.ReadAll(r.Body)
		require.NoError(t, err)
	})

	err := svc.UploadVideo(context.Background(), "abc-123", strings.NewReader("raw video bytes"))
	require.NoError(t, err)
	assert.Equal(t, "raw video bytes", string(uploaded))
}

func TestEmbedURL(t *testing.T) {
	svc := NewVideoService(&config.BunnyConfig{
		LibraryID: "lib123",
		EmbedBase: "https://iframe.mediadelivery.net/embed",
	})

	assert.Equal(t, "https://iframe.mediadelivery.net/embed/lib123/abc-123", svc.EmbedURL("abc-123"))
}
