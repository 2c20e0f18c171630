// Package notify delivers rendered reports to a group channel.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

// ErrWebhookNotConfigured is returned when no webhook URL was supplied.
var ErrWebhookNotConfigured = errors.New("webhook url not configured")

// Notifier sends a text blob to a channel.
type Notifier interface {
	Send(ctx context.Context, content string) error
}

// Discord posts messages to a Discord webhook.
type Discord struct {
	httpClient *http.Client
	webhookURL string
}

// NewDiscord creates a webhook notifier. An empty URL is accepted; Send then
// reports ErrWebhookNotConfigured.
func NewDiscord(webhookURL string, timeout time.Duration) *Discord {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Discord{
		httpClient: &http.Client{Timeout: timeout},
		webhookURL: strings.TrimSpace(webhookURL),
	}
}

type webhookPayload struct {
	Content string `json:"content"`
}

// Send posts content once. Only 204 No Content counts as delivered.
func (d *Discord) Send(ctx context.Context, content string) error {
	if d.webhookURL == "" {
		return ErrWebhookNotConfigured
	}

	body, err := json.Marshal(webhookPayload{Content: content})
	if err != nil {
		return fmt.Errorf("encode webhook payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.webhookURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("post webhook: %w", err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			slog.Debug("failed to close webhook response body", "error", closeErr)
		}
	}()

	if resp.StatusCode != http.StatusNoContent {
		return fmt.Errorf("webhook status %d", resp.StatusCode)
	}
	return nil
}
