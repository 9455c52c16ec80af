package pubsub

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"erp/config"
	"erp/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx/fxtest"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestEvent() *entity.AuthEvent {
	return &entity.AuthEvent{
		ID:         "evt-1",
		RequestID:  "req-1",
		Type:       entity.AuthEventLoginSucceeded,
		Username:   "alice",
		UserID:     "5b0f3c1e-0000-0000-0000-000000000001",
		OccurredAt: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestMemoryPublisher_DeliversToSubscribers(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	publisher := NewMemoryPublisher(newDiscardLogger())
	sub := publisher.Subscribe()

	require.NoError(t, publisher.PublishAuthEvent(ctx, newTestEvent()))

	msg, err := sub.Receive(ctx)
	require.NoError(t, err)
	msg.Ack()

	var got entity.AuthEvent
	require.NoError(t, json.Unmarshal(msg.Body, &got))
	assert.Equal(t, "alice", got.Username)
	assert.Equal(t, entity.AuthEventLoginSucceeded, got.Type)
	assert.Equal(t, "req-1", msg.Metadata["request_id"])
	assert.Equal(t, string(entity.AuthEventLoginSucceeded), msg.Metadata["event_type"])

	require.NoError(t, publisher.Close())
}

func TestAuditLogSink_StopsWhenContextEnds(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	publisher := NewMemoryPublisher(newDiscardLogger())
	sink := NewAuditLogSink(publisher.Subscribe(), newDiscardLogger())

	done := make(chan struct{})
	go func() {
		sink.Run(ctx)
		close(done)
	}()

	require.NoError(t, publisher.PublishAuthEvent(ctx, newTestEvent()))
	cancel()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("sink did not stop after cancellation")
	}

	require.NoError(t, publisher.Close())
}

func TestLocalHTTPPublisher_PostsPushMessage(t *testing.T) {
	var received PushMessage
	var requestID string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID = r.Header.Get("X-Request-Id")
		_ = json.NewDecoder(r.Body).Decode(&received)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	publisher := NewLocalHTTPPublisher(server.URL, newDiscardLogger())
	require.NoError(t, publisher.PublishAuthEvent(context.Background(), newTestEvent()))

	assert.Equal(t, "req-1", requestID)
	assert.Equal(t, "evt-1", received.Message.MessageID)

	data, err := base64.StdEncoding.DecodeString(received.Message.Data)
	require.NoError(t, err)

	var got entity.AuthEvent
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, "alice", got.Username)
}

func TestLocalHTTPPublisher_NonSuccessStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	publisher := NewLocalHTTPPublisher(server.URL, newDiscardLogger())
	err := publisher.PublishAuthEvent(context.Background(), newTestEvent())
	assert.ErrorContains(t, err, "502")
}

func TestNewEventPublisher_SelectsProvider(t *testing.T) {
	newParams := func(t *testing.T, events *config.EventsConfig) PublisherParams {
		return PublisherParams{
			Lc:     fxtest.NewLifecycle(t),
			Ctx:    context.Background(),
			Config: &config.Config{Events: events},
			Logger: newDiscardLogger(),
		}
	}

	t.Run("disabled", func(t *testing.T) {
		publisher, err := NewEventPublisher(newParams(t, nil))
		require.NoError(t, err)
		assert.IsType(t, &noopPublisher{}, publisher)
		assert.NoError(t, publisher.PublishAuthEvent(context.Background(), newTestEvent()))
	})

	t.Run("memory", func(t *testing.T) {
		params := newParams(t, &config.EventsConfig{Provider: ProviderMemory})
		publisher, err := NewEventPublisher(params)
		require.NoError(t, err)
		assert.IsType(t, &MemoryPublisher{}, publisher)

		lc := params.Lc.(*fxtest.Lifecycle)
		lc.RequireStart()
		assert.NoError(t, publisher.PublishAuthEvent(context.Background(), newTestEvent()))
		lc.RequireStop()
	})

	t.Run("local requires endpoint", func(t *testing.T) {
		_, err := NewEventPublisher(newParams(t, &config.EventsConfig{Provider: ProviderLocal}))
		assert.Error(t, err)
	})

	t.Run("google requires topic", func(t *testing.T) {
		_, err := NewEventPublisher(newParams(t, &config.EventsConfig{Provider: ProviderGoogle, ProjectID: "p"}))
		assert.Error(t, err)
	})

	t.Run("unknown", func(t *testing.T) {
		_, err := NewEventPublisher(newParams(t, &config.EventsConfig{Provider: "kafka"}))
		assert.ErrorContains(t, err, "unknown events provider")
	})
}
