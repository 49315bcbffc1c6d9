package pubsub

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	deliverycontext "todoapp/internal/delivery/context"
	"todoapp/internal/domain/service"

	"github.com/pkg/errors"
)

const localPushTimeout = 10 * time.Second

// localHTTPPublisher pushes activity events straight to a worker endpoint in the
// Pub/Sub push format, so cmd/activityworker runs unchanged without Google Cloud.
type localHTTPPublisher struct {
	endpoint     string
	subscription string
	httpClient   *http.Client
	logger       *slog.Logger
}

// PubSubPushMessage represents the structure of a Pub/Sub push message
// This mimics the format Google Pub/Sub uses when pushing to HTTP endpoints
type PubSubPushMessage struct {
	Message struct {
		Data        string            `json:"data"`
		Attributes  map[string]string `json:"attributes,omitempty"`
		MessageID   string            `json:"messageId"`
		PublishTime string            `json:"publishTime"`
	} `json:"message"`
	Subscription string `json:"subscription"`
}

// NewLocalHTTPPublisher creates a publisher posting to endpoint. The topic only
// names the simulated push subscription.
func NewLocalHTTPPublisher(endpoint, topicID string, logger *slog.Logger) service.EventPublisher {
	if topicID == "" {
		topicID = "activity"
	}

	return &localHTTPPublisher{
		endpoint:     endpoint,
		subscription: "projects/local/subscriptions/" + topicID + "-push",
		httpClient: &http.Client{
			Timeout: localPushTimeout,
		},
		logger: logger,
	}
}

// Publish sends the event by HTTP POST to the local endpoint
func (p *localHTTPPublisher) Publish(ctx context.Context, event *service.ActivityEvent) error {
	eventData, err := json.Marshal(event)
	if err != nil {
		return errors.WithStack(err)
	}

	publishTime := event.OccurredAt
	if publishTime.IsZero() {
		publishTime = time.Now()
	}

	pushMsg := PubSubPushMessage{
		Subscription: p.subscription,
	}
	pushMsg.Message.Data = base64.StdEncoding.EncodeToString(eventData)
	pushMsg.Message.MessageID = event.ID
	pushMsg.Message.PublishTime = publishTime.UTC().Format(time.RFC3339Nano)
	pushMsg.Message.Attributes = eventAttributes(event)

	body, err := json.Marshal(pushMsg)
	if err != nil {
		return errors.WithStack(err)
	}

	p.logger.Debug("Pushing activity event",
		slog.String("endpoint", p.endpoint),
		slog.String("event_type", event.Type),
		slog.String("event_id", event.ID),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint, bytes.NewReader(body))
	if err != nil {
		return errors.WithStack(err)
	}
	req.Header.Set("Content-Type", "application/json")
	if event.RequestID != "" {
		req.Header.Set(deliverycontext.HeaderXRequestID, event.RequestID)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return errors.WithStack(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return errors.Errorf("push %s: endpoint returned %d", event.Type, resp.StatusCode)
	}

	return nil
}

// Close releases resources (no-op for HTTP client)
func (p *localHTTPPublisher) Close() error {
	return nil
}
