package pubsub

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"todoapp/internal/domain/service"

	"cloud.google.com/go/pubsub/v2"
	pubsubpb "cloud.google.com/go/pubsub/v2/apiv1/pubsubpb"
	"github.com/pkg/errors"
)

// googlePubSubPublisher implements EventPublisher using Google Cloud Pub/Sub.
// Messages are ordered per user so a subscriber sees a todo created before it
// is completed or deleted.
type googlePubSubPublisher struct {
	client    *pubsub.Client
	publisher *pubsub.Publisher
	logger    *slog.Logger
}

// NewGooglePubSubPublisher creates a new Google Pub/Sub publisher
func NewGooglePubSubPublisher(ctx context.Context, projectID, topicID string, logger *slog.Logger) (service.EventPublisher, error) {
	client, err := pubsub.NewClient(ctx, projectID)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	// Check if topic exists using TopicAdminClient
	topicPath := fmt.Sprintf("projects/%s/topics/%s", projectID, topicID)
	_, err = client.TopicAdminClient.GetTopic(ctx, &pubsubpb.GetTopicRequest{
		Topic: topicPath,
	})
	if err != nil {
		client.Close()

		return nil, errors.Wrapf(err, "failed to get topic %s", topicID)
	}

	publisher := client.Publisher(topicID)
	publisher.EnableMessageOrdering = true

	logger.Info("Activity events go to Google Pub/Sub",
		slog.String("project_id", projectID),
		slog.String("topic_id", topicID),
	)

	return &googlePubSubPublisher{
		client:    client,
		publisher: publisher,
		logger:    logger,
	}, nil
}

// Publish sends an activity event to Google Pub/Sub and waits for the server ack
func (p *googlePubSubPublisher) Publish(ctx context.Context, event *service.ActivityEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return errors.WithStack(err)
	}

	msg := &pubsub.Message{
		Data:        data,
		Attributes:  eventAttributes(event),
		OrderingKey: event.UserID,
	}

	result := p.publisher.Publish(ctx, msg)

	serverID, err := result.Get(ctx)
	if err != nil {
		// A failed ordered publish pauses the key until resumed.
		p.publisher.ResumePublish(event.UserID)

		return errors.Wrapf(err, "publish %s", event.Type)
	}

	p.logger.Debug("Activity event published",
		slog.String("event_type", event.Type),
		slog.String("event_id", event.ID),
		slog.String("server_id", serverID),
	)

	return nil
}

// Close releases Pub/Sub client resources
func (p *googlePubSubPublisher) Close() error {
	if p.publisher != nil {
		p.publisher.Stop()
	}
	if p.client != nil {
		return errors.WithStack(p.client.Close())
	}

	return nil
}
