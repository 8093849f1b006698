//go:build unit

package notifier

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"mesa-reservations/internal/domain/event"
	"mesa-reservations/internal/pkg/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func automationConfig(baseURL string, enabled bool) config.AutomationConfig {
	return config.AutomationConfig{
		Enabled:     enabled,
		BaseURL:     baseURL,
		HTTPTimeout: 2 * time.Second,
	}
}

func TestWebhookEmitter_DeliversToEveryWorkflow(t *testing.T) {
	var mu sync.Mutex
	received := map[string]event.AutomationEvent{}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var ev event.AutomationEvent
		require.NoError(t, json.NewDecoder(r.Body).Decode(&ev))

		mu.Lock()
		received[r.URL.Path] = ev
		mu.Unlock()
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	emitter := NewWebhookEmitter(automationConfig(server.URL, true))
	ev := event.NewAutomationEvent(event.ReservationCreated, map[string]any{"reservationId": "r-1"}, "corr_test", time.Now())

	emitter.Emit(context.Background(), ev)

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, received, 3)
	for _, path := range []string{
		"/webhook/reserva-notificacion",
		"/webhook/reserva-sheets-sync",
		"/webhook/reserva-alertas",
	} {
		got, ok := received[path]
		require.True(t, ok, "missing delivery to %s", path)
		assert.Equal(t, event.ReservationCreated, got.Event)
		assert.Equal(t, "corr_test", got.Metadata.CorrelationID)
		assert.Equal(t, "mesa-reservations", got.Metadata.Source)
	}
}

func TestWebhookEmitter_OneFailureDoesNotStopOthers(t *testing.T) {
	var mu sync.Mutex
	delivered := []string{}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/webhook/reserva-sheets-sync" {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		mu.Lock()
		delivered = append(delivered, r.URL.Path)
		mu.Unlock()
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	emitter := NewWebhookEmitter(automationConfig(server.URL, true))
	ev := event.NewAutomationEvent(event.ReservationCancelled, map[string]any{}, "", time.Now())

	emitter.Emit(context.Background(), ev)

	mu.Lock()
	defer mu.Unlock()
	assert.Len(t, delivered, 2)
}

func TestWebhookEmitter_DisabledSkipsDelivery(t *testing.T) {
	var hits int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
	}))
	defer server.Close()

	emitter := NewWebhookEmitter(automationConfig(server.URL, false))
	ev := event.NewAutomationEvent(event.ReservationCreated, map[string]any{}, "", time.Now())

	emitter.Emit(context.Background(), ev)

	assert.Zero(t, hits)
}
