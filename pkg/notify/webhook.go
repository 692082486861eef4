package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Sender delivers one message to the crew chat channel.
type Sender interface {
	Send(ctx context.Context, text string) error
}

// WebhookSender posts Slack-style webhook payloads.
type WebhookSender struct {
	webhookURL string
	channel    string
	httpClient *http.Client
}

func NewWebhookSender(webhookURL, channel string) *WebhookSender {
	return &WebhookSender{
		webhookURL: webhookURL,
		channel:    channel,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type webhookPayload struct {
	Text    string `json:"text"`
	Channel string `json:"channel,omitempty"`
}

// Send implements Sender.
func (w *WebhookSender) Send(ctx context.Context, text string) error {
	if w.webhookURL == "" {
		return fmt.Errorf("webhook url not configured")
	}

	body, err := json.Marshal(webhookPayload{Text: text, Channel: w.channel})
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", w.webhookURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("webhook returned status %d: %s", resp.StatusCode, string(respBody))
	}
	return nil
}
