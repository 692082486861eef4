package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/foxworks/reface/pkg/Logger"
)

// Uploader is the object-storage boundary the visualizer pipeline writes
// through. Both URLs it hands back must be publicly retrievable.
type Uploader interface {
	Upload(ctx context.Context, bucket, path string, data []byte, contentType string) (string, error)
	PublicURL(bucket, path string) string
}

// Client talks to a Supabase-compatible storage HTTP API.
type Client struct {
	baseURL    string
	serviceKey string
	httpClient *http.Client
	logger     *Logger.Logger
}

func New(baseURL, serviceKey string, logger *Logger.Logger) *Client {
	return &Client{
		baseURL:    baseURL,
		serviceKey: serviceKey,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
		logger: logger,
	}
}

// Upload writes an object and returns its public URL. Existing objects at
// the same path are overwritten (x-upsert), which keeps pipeline retries
// idempotent for a given image id.
func (c *Client) Upload(ctx context.Context, bucket, path string, data []byte, contentType string) (string, error) {
	requestURL := fmt.Sprintf("%s/storage/v1/object/%s/%s", c.baseURL, bucket, path)
	req, err := http.NewRequestWithContext(ctx, "POST", requestURL, bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("failed to create upload request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.serviceKey)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("x-upsert", "true")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to upload object: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		body, _ := io.ReadAll(resp.Body)
		c.logger.Errorf("storage upload error (status %d): %s", resp.StatusCode, string(body))
		return "", fmt.Errorf("storage returned status %d: %s", resp.StatusCode, string(body))
	}

	return c.PublicURL(bucket, path), nil
}

// PublicURL returns the public object URL for a bucket path.
func (c *Client) PublicURL(bucket, path string) string {
	return fmt.Sprintf("%s/storage/v1/object/public/%s/%s", c.baseURL, bucket, path)
}
