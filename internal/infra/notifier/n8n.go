package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"sync"

	"mesa-reservations/internal/domain/event"
	"mesa-reservations/internal/pkg/config"
)

// Paths of the automation workflows. Every event goes to all of them; each
// delivery succeeds or fails on its own.
var workflowPaths = []string{
	"/webhook/reserva-notificacion",
	"/webhook/reserva-sheets-sync",
	"/webhook/reserva-alertas",
}

// WebhookEmitter posts automation events to the n8n workflow webhooks.
// When disabled it swallows every event, so callers never branch on config.
type WebhookEmitter struct {
	client  *http.Client
	baseURL string
	enabled bool
}

func NewWebhookEmitter(cfg config.AutomationConfig) *WebhookEmitter {
	return &WebhookEmitter{
		client:  &http.Client{Timeout: cfg.HTTPTimeout},
		baseURL: cfg.BaseURL,
		enabled: cfg.Enabled,
	}
}

func (e *WebhookEmitter) Emit(ctx context.Context, ev event.AutomationEvent) {
	if !e.enabled {
		slog.Debug("automation disabled, event skipped", slog.String("event", ev.Event))
		return
	}

	body, err := json.Marshal(ev)
	if err != nil {
		slog.Error("failed to marshal automation event",
			slog.String("event", ev.Event), slog.String("error", err.Error()))
		return
	}

	var wg sync.WaitGroup
	for _, path := range workflowPaths {
		wg.Add(1)
		go func(path string) {
			defer wg.Done()
			e.post(ctx, path, ev.Event, body)
		}(path)
	}
	wg.Wait()
}

func (e *WebhookEmitter) post(ctx context.Context, path, name string, body []byte) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.baseURL+path, bytes.NewReader(body))
	if err != nil {
		slog.Warn("failed to build webhook request",
			slog.String("event", name), slog.String("path", path), slog.String("error", err.Error()))
		return
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.client.Do(req)
	if err != nil {
		slog.Warn("webhook delivery failed",
			slog.String("event", name), slog.String("path", path), slog.String("error", err.Error()))
		return
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode >= http.StatusBadRequest {
		slog.Warn("webhook rejected event",
			slog.String("event", name), slog.String("path", path), slog.Int("status", resp.StatusCode))
	}
}
