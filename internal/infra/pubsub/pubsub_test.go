package pubsub

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"todoapp/config"
	"todoapp/internal/domain/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx/fxtest"
)

func testEvent() *service.ActivityEvent {
	return &service.ActivityEvent{
		ID:         "evt-1",
		RequestID:  "req-1",
		Type:       service.EventTodoCreated,
		UserID:     "user-1",
		ResourceID: "todo-1",
		OccurredAt: time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestLocalHTTPPublisher_Publish(t *testing.T) {
	var received PubSubPushMessage
	var requestID string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID = r.Header.Get("X-Request-Id")
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	publisher := NewLocalHTTPPublisher(server.URL, "activity", slog.Default())
	require.NoError(t, publisher.Publish(context.Background(), testEvent()))

	assert.Equal(t, "req-1", requestID)
	assert.Equal(t, "projects/local/subscriptions/activity-push", received.Subscription)
	assert.Equal(t, "evt-1", received.Message.MessageID)
	assert.Equal(t, "2025-01-01T12:00:00Z", received.Message.PublishTime)
	assert.Equal(t, service.EventTodoCreated, received.Message.Attributes["event_type"])
	assert.Equal(t, "user-1", received.Message.Attributes["user_id"])

	data, err := base64.StdEncoding.DecodeString(received.Message.Data)
	require.NoError(t, err)
	var decoded service.ActivityEvent
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "todo-1", decoded.ResourceID)
	assert.NoError(t, publisher.Close())
}

func TestLocalHTTPPublisher_NonSuccessStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	publisher := NewLocalHTTPPublisher(server.URL, "", slog.Default())
	err := publisher.Publish(context.Background(), testEvent())
	assert.ErrorContains(t, err, "endpoint returned 500")
}

func TestNewEventPublisher(t *testing.T) {
	tests := []struct {
		name      string
		cfg       *config.PubSubConfig
		wantNoop  bool
		wantError string
	}{
		{name: "not configured", cfg: nil, wantNoop: true},
		{name: "empty provider", cfg: &config.PubSubConfig{}, wantNoop: true},
		{name: "local", cfg: &config.PubSubConfig{Provider: config.PubSubProviderLocal, LocalEndpoint: "http://localhost:9999/push"}},
		{name: "local without endpoint", cfg: &config.PubSubConfig{Provider: config.PubSubProviderLocal}, wantError: "local endpoint is required"},
		{name: "google without project", cfg: &config.PubSubConfig{Provider: config.PubSubProviderGoogle, TopicID: "t"}, wantError: "project ID is required"},
		{name: "google without topic", cfg: &config.PubSubConfig{Provider: config.PubSubProviderGoogle, ProjectID: "p"}, wantError: "topic ID is required"},
		{name: "unknown", cfg: &config.PubSubConfig{Provider: "kafka"}, wantError: "unknown PubSub provider"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			publisher, err := NewEventPublisher(PublisherParams{
				Lc:     fxtest.NewLifecycle(t),
				Ctx:    context.Background(),
				Config: &config.Config{PubSub: tt.cfg},
				Logger: slog.Default(),
			})
			if tt.wantError != "" {
				assert.ErrorContains(t, err, tt.wantError)

				return
			}
			require.NoError(t, err)
			_, isNoop := publisher.(*noopPublisher)
			assert.Equal(t, tt.wantNoop, isNoop)
			if isNoop {
				assert.NoError(t, publisher.Publish(context.Background(), testEvent()))
			}
		})
	}
}
