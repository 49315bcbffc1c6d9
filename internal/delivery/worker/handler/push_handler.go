package handler

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"slices"
	"strings"

	"todoapp/config"
	deliverycontext "todoapp/internal/delivery/context"
	"todoapp/internal/domain/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
	"google.golang.org/api/idtoken"
)

var knownEventTypes = []string{
	service.EventUserRegistered,
	service.EventTodoCreated,
	service.EventTodoCompleted,
	service.EventTodoReopened,
	service.EventTodoDeleted,
	service.EventCategoryDeleted,
}

// PubSubMessage represents the structure of a Pub/Sub push message
type PubSubMessage struct {
	Message struct {
		Data        string            `json:"data"`
		Attributes  map[string]string `json:"attributes,omitempty"`
		MessageID   string            `json:"messageId"`
		PublishTime string            `json:"publishTime"`
	} `json:"message"`
	Subscription string `json:"subscription"`
}

// PushHandler records activity events delivered by Pub/Sub push.
type PushHandler struct {
	verifyPushAuth bool
	verifyToken    func(req *http.Request) error
	logger         *slog.Logger
}

// PushHandlerParams holds dependencies for the PushHandler
type PushHandlerParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

// NewPushHandler creates a new Pub/Sub push handler
func NewPushHandler(params PushHandlerParams) *PushHandler {
	verifyPushAuth := params.Config.PubSub != nil &&
		params.Config.PubSub.Provider == config.PubSubProviderGoogle &&
		params.Config.Env.Env != config.EnvLocal

	return &PushHandler{
		verifyPushAuth: verifyPushAuth,
		verifyToken:    verifyPubSubToken,
		logger:         params.Logger,
	}
}

// HandlePush handles incoming Pub/Sub push messages. Anything that can never be
// processed is acknowledged with 200 so Pub/Sub does not redeliver it forever.
func (h *PushHandler) HandlePush(c echo.Context) error {
	ctx := c.Request().Context()

	if h.verifyPushAuth {
		if err := h.verifyToken(c.Request()); err != nil {
			h.logger.Warn("[Worker] Invalid Pub/Sub token", slog.Any("error", err))

			return c.NoContent(http.StatusUnauthorized)
		}
	}

	var pushMsg PubSubMessage
	if err := c.Bind(&pushMsg); err != nil {
		h.logger.Error("[Worker] Failed to parse push message", slog.Any("error", err))

		return c.NoContent(http.StatusBadRequest)
	}

	data, err := base64.StdEncoding.DecodeString(pushMsg.Message.Data)
	if err != nil {
		h.logger.Error("[Worker] Failed to decode message data", slog.Any("error", err))

		return c.NoContent(http.StatusBadRequest)
	}

	var event service.ActivityEvent
	if err := json.Unmarshal(data, &event); err != nil {
		h.logger.Error("[Worker] Failed to parse activity event", slog.Any("error", err))

		return c.NoContent(http.StatusBadRequest)
	}

	requestID := h.extractRequestID(ctx, &pushMsg, &event)
	reqLogger := h.logger.With(slog.String("request_id", requestID))

	if err := validateEvent(&event); err != nil {
		reqLogger.Warn("[Worker] Dropping activity event",
			slog.String("event_id", event.ID),
			slog.String("message_id", pushMsg.Message.MessageID),
			slog.Any("error", err),
		)

		return c.NoContent(http.StatusOK)
	}

	attrs := []slog.Attr{
		slog.String("event_id", event.ID),
		slog.String("event_type", event.Type),
		slog.String("user_id", event.UserID),
		slog.Time("occurred_at", event.OccurredAt),
		slog.String("subscription", pushMsg.Subscription),
	}
	if event.ResourceID != "" {
		attrs = append(attrs, slog.String("resource_id", event.ResourceID))
	}
	reqLogger.LogAttrs(ctx, slog.LevelInfo, "[Worker] Activity recorded", attrs...)

	return c.NoContent(http.StatusOK)
}

// extractRequestID extracts request_id from message attributes, event, or generates a new one
func (h *PushHandler) extractRequestID(ctx context.Context, pushMsg *PubSubMessage, event *service.ActivityEvent) string {
	if requestID, ok := pushMsg.Message.Attributes["request_id"]; ok && requestID != "" {
		return requestID
	}

	if event.RequestID != "" {
		return event.RequestID
	}

	// Set by the RequestIDMiddleware from the X-Request-Id header
	if requestID := deliverycontext.GetRequestIDFromContext(ctx); requestID != "" {
		return requestID
	}

	return uuid.New().String()
}

func validateEvent(event *service.ActivityEvent) error {
	if !slices.Contains(knownEventTypes, event.Type) {
		return errors.Errorf("unknown event type %q", event.Type)
	}
	if _, err := uuid.Parse(event.UserID); err != nil {
		return errors.Wrap(err, "invalid user_id")
	}
	if event.ResourceID != "" {
		if _, err := uuid.Parse(event.ResourceID); err != nil {
			return errors.Wrap(err, "invalid resource_id")
		}
	}

	return nil
}

func verifyPubSubToken(req *http.Request) error {
	authHeader := req.Header.Get(echo.HeaderAuthorization)
	if authHeader == "" {
		return errors.New("missing authorization header")
	}

	const bearerPrefix = "Bearer "
	if !strings.HasPrefix(authHeader, bearerPrefix) {
		return errors.New("invalid authorization header format")
	}
	token := strings.TrimPrefix(authHeader, bearerPrefix)

	// The audience is the URL of this endpoint
	scheme := "https"
	if req.TLS == nil {
		scheme = "http"
	}
	audience := fmt.Sprintf("%s://%s%s", scheme, req.Host, req.URL.Path)

	payload, err := idtoken.Validate(req.Context(), token, audience)
	if err != nil {
		return errors.Wrap(err, "failed to validate token")
	}

	if payload.Issuer != "accounts.google.com" && payload.Issuer != "https://accounts.google.com" {
		return errors.Errorf("invalid issuer: %s", payload.Issuer)
	}

	if emailVerified, ok := payload.Claims["email_verified"].(bool); ok && !emailVerified {
		return errors.New("email not verified")
	}

	return nil
}
