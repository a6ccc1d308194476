package notifier

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"
)

// WebhookChannel posts alerts to a chat-ops webhook (Slack-compatible JSON).
type WebhookChannel struct {
	url        string
	client     *http.Client
	maxRetries int
}

// NewWebhookChannel returns nil when no URL is configured.
func NewWebhookChannel(webhookURL, proxyURL string) *WebhookChannel {
	if webhookURL == "" {
		return nil
	}
	return &WebhookChannel{
		url:        webhookURL,
		client:     newHTTPClient(proxyURL),
		maxRetries: 2,
	}
}

func (w *WebhookChannel) Name() string { return "webhook" }

// Send posts the alert with exponential backoff retry.
func (w *WebhookChannel) Send(subject, body string) error {
	var lastErr error
	for i := 0; i <= w.maxRetries; i++ {
		if err := w.post(subject, body); err != nil {
			lastErr = err
			if i == w.maxRetries {
				break
			}
			backoff := time.Duration(1<<uint(i)) * time.Second
			log.Printf("[WARN] webhook send failed (attempt %d/%d): %v, retrying in %v",
				i+1, w.maxRetries+1, err, backoff)
			time.Sleep(backoff)
			continue
		}
		return nil
	}
	return fmt.Errorf("all %d attempts exhausted: %w", w.maxRetries+1, lastErr)
}

func (w *WebhookChannel) post(subject, body string) error {
	payload := map[string]string{
		"text": fmt.Sprintf("*%s*\n%s", subject, body),
	}
	buf, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}
	resp, err := w.client.Post(w.url, "application/json", bytes.NewReader(buf))
	if err != nil {
		return fmt.Errorf("post webhook: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("webhook error: status %d, body: %s", resp.StatusCode, string(respBody))
	}
	return nil
}
