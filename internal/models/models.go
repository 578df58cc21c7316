// Package models contains the domain records and wire envelopes of the YouTube channel API.
package models

import (
	"time"

	"github.com/google/uuid"
)

// Channel is a YouTube channel as seen by callers.
//
//nolint:govet // fieldalignment: Accept minor memory overhead for better readability
type Channel struct {
	ChannelID uuid.UUID `json:"channelId"`
	Name      string    `json:"name"`
	Link      string    `json:"link"`
	Videos    []Video   `json:"videos"`
}

// NewChannel creates a Channel with a fresh public identifier. Initial videos
// are re-parented onto the new identifier.
func NewChannel(name, link string, videos []Video) Channel {
	channelID := uuid.New()
	owned := make([]Video, 0, len(videos))
	for _, v := range videos {
		v.ChannelID = channelID
		owned = append(owned, v)
	}
	return Channel{
		ChannelID: channelID,
		Name:      name,
		Link:      link,
		Videos:    owned,
	}
}

// Video is a YouTube video owned by exactly one channel.
//
//nolint:govet // fieldalignment: Accept minor memory overhead for better readability
type Video struct {
	VideoID     uuid.UUID `json:"videoId"`
	ReleaseDate time.Time `json:"releaseDate"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	ChannelID   uuid.UUID `json:"channelId"`
}

// NewVideo creates a Video with a fresh public identifier under channelID.
func NewVideo(channelID uuid.UUID, releaseDate time.Time, name, description string) Video {
	return Video{
		VideoID:     uuid.New(),
		ReleaseDate: releaseDate,
		Name:        name,
		Description: description,
		ChannelID:   channelID,
	}
}

// EventType names a lifecycle change published to the message broker.
type EventType string

// EventType constants double as AMQP routing keys.
const (
	EventChannelCreated EventType = "channel.created"
	EventChannelUpdated EventType = "channel.updated"
	EventChannelDeleted EventType = "channel.deleted"
	EventVideoCreated   EventType = "video.created"
	EventVideoUpdated   EventType = "video.updated"
	EventVideoDeleted   EventType = "video.deleted"
)

// ResourceEvent announces a successful write.
//
//nolint:govet // fieldalignment: Accept minor memory overhead for better readability
type ResourceEvent struct {
	EventID    uuid.UUID  `json:"eventId"`
	Type       EventType  `json:"type"`
	ChannelID  uuid.UUID  `json:"channelId"`
	VideoID    *uuid.UUID `json:"videoId,omitempty"`
	OccurredAt time.Time  `json:"occurredAt"`
}

// NewChannelEvent builds an event about a channel.
func NewChannelEvent(eventType EventType, channelID uuid.UUID) *ResourceEvent {
	return &ResourceEvent{
		EventID:    uuid.New(),
		Type:       eventType,
		ChannelID:  channelID,
		OccurredAt: time.Now().UTC(),
	}
}

// NewVideoEvent builds an event about a video under a channel.
func NewVideoEvent(eventType EventType, channelID, videoID uuid.UUID) *ResourceEvent {
	event := NewChannelEvent(eventType, channelID)
	event.VideoID = &videoID
	return event
}

// ErrorResult is the body returned when an API call fails.
//
//nolint:govet // fieldalignment: Accept minor memory overhead for better readability
type ErrorResult struct {
	Messages       []string `json:"messages"`
	Source         string   `json:"source,omitempty"`
	Exception      string   `json:"exception,omitempty"`
	ErrorID        string   `json:"errorId"`
	SupportMessage string   `json:"supportMessage"`
	StatusCode     int      `json:"statusCode"`
}
