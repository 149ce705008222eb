// Package webhook delivers signed batch notifications.
package webhook

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/dacdangvan/seotool-sub006/config"
)

// Event types.
const (
	EventBatchCompleted = "batch.completed"
	EventBatchFailed    = "batch.failed"
)

// SignatureHeader carries the HMAC-SHA256 of the body: sha256=<hex>.
const SignatureHeader = "X-JSRender-Signature"

// Event is the payload sent to webhook endpoints.
type Event struct {
	Type      string `json:"type"`
	JobID     string `json:"job_id"`
	Timestamp int64  `json:"timestamp"`
	Data      any    `json:"data"`
}

// Notifier posts events with retries.
type Notifier struct {
	client *http.Client
	delays []time.Duration
}

// New creates a Notifier from cfg.
func New(cfg config.WebhookConfig) *Notifier {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	delays := cfg.RetryDelays
	if len(delays) == 0 {
		delays = []time.Duration{0, time.Second, 5 * time.Second, 30 * time.Second}
	}
	return &Notifier{
		client: &http.Client{Timeout: timeout},
		delays: delays,
	}
}

// Sign returns the signature header value for body.
func Sign(secret string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return "sha256=" + hex.EncodeToString(mac.Sum(nil))
}

// Deliver sends event once. The body is signed if secret is non-empty.
func (n *Notifier) Deliver(ctx context.Context, url, secret string, event *Event) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("webhook: marshal event: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("webhook: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "JSRender-Webhook/1.0")
	if secret != "" {
		req.Header.Set(SignatureHeader, Sign(secret, body))
	}

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("webhook: deliver: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("webhook: endpoint returned status %d", resp.StatusCode)
	}
	return nil
}

// DeliverWithRetry tries every configured delay in turn and reports whether
// an attempt succeeded.
func (n *Notifier) DeliverWithRetry(ctx context.Context, url, secret string, event *Event) bool {
	for attempt, delay := range n.delays {
		if delay > 0 {
			t := time.NewTimer(delay)
			select {
			case <-t.C:
			case <-ctx.Done():
				t.Stop()
				return false
			}
		}
		err := n.Deliver(ctx, url, secret, event)
		if err == nil {
			slog.Info("webhook delivered",
				"url", url,
				"event", event.Type,
				"job_id", event.JobID,
				"attempt", attempt+1,
			)
			return true
		}
		slog.Warn("webhook delivery failed",
			"url", url,
			"event", event.Type,
			"job_id", event.JobID,
			"attempt", attempt+1,
			"error", err,
		)
	}
	slog.Error("webhook delivery exhausted all retries",
		"url", url,
		"event", event.Type,
		"job_id", event.JobID,
	)
	return false
}

// DeliverAsync runs DeliverWithRetry in the background.
func (n *Notifier) DeliverAsync(url, secret string, event *Event) {
	go n.DeliverWithRetry(context.Background(), url, secret, event)
}
