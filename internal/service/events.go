// Package service holds the channel and video façades over the repositories.
// Successful writes are announced through an EventPublisher.
package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/wasp/youtube-channel-api/internal/models"
	"github.com/wasp/youtube-channel-api/pkg/logger"
)

// EventPublisher delivers lifecycle events to interested consumers.
type EventPublisher interface {
	Publish(ctx context.Context, event *models.ResourceEvent) error
}

// NoopPublisher drops every event. It is used when messaging is disabled.
type NoopPublisher struct{}

// Publish implements EventPublisher.
func (NoopPublisher) Publish(context.Context, *models.ResourceEvent) error {
	return nil
}

// announce publishes event and only logs a failure; the write it describes has already succeeded.
func announce(ctx context.Context, publisher EventPublisher, event *models.ResourceEvent) {
	if err := publisher.Publish(ctx, event); err != nil {
		fields := []zap.Field{
			zap.Error(err),
			zap.String("eventId", event.EventID.String()),
			zap.String("eventType", string(event.Type)),
			zap.String("channelId", event.ChannelID.String()),
		}
		if event.VideoID != nil {
			fields = append(fields, zap.String("videoId", event.VideoID.String()))
		}
		logger.Log.Warn("Failed to publish event", fields...)
	}
}
