package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"pilates_diario_backend/internal/config"
)

// VideoService is a thin client for the Bunny Stream API: create a video in
// the library, push the binary, and build the embed locator the app stores.
// The backend never inspects or transcodes the media itself.
type VideoService struct {
	cfg    *config.BunnyConfig
	client *http.Client
}

func NewVideoService(cfg *config.BunnyConfig) *VideoService {
	return &VideoService{
		cfg: cfg,
		client: &http.Client{
			Timeout: 10 * time.Minute, // raw video uploads are slow
		},
	}
}

// CreateVideo registers a new video in the library and returns its GUID.
func (s *VideoService) CreateVideo(ctx context.Context, title string) (string, error) {
	body, err := json.Marshal(map[string]string{"title": title})
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s/library/%s/videos", s.cfg.BaseURL, s.cfg.LibraryID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("AccessKey", s.cfg.APIKey)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return "", fmt.Errorf("bunny create video: unexpected status %d", resp.StatusCode)
	}

	var created struct {
		GUID string `json:"guid"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return "", err
	}
	if created.GUID == "" {
		return "", fmt.Errorf("bunny create video: response carried no guid")
	}

	return created.GUID, nil
}

// UploadVideo streams the raw file to an already-created video.
func (s *VideoService) UploadVideo(ctx context.Context, guid string, reader io.Reader) error {
	url := fmt.Sprintf("%s/library/%s/videos/%s", s.cfg.BaseURL, s.cfg.LibraryID, guid)
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, reader)
	if err != nil {
		return err
	}
	req.Header.Set("AccessKey", s.cfg.APIKey)
	req.Header.Set("Content-Type", "application/octet-stream")

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return fmt.Errorf("bunny upload video: unexpected status %d", resp.StatusCode)
	}

	return nil
}

// EmbedURL builds the iframe locator stored on the Exercise record.
func (s *VideoService) EmbedURL(guid string) string {
	return fmt.Sprintf("%s/%s/%s", s.cfg.EmbedBase, s.cfg.LibraryID, guid)
}
