package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/wasp/youtube-channel-api/internal/models"
)

type mockChannelRepository struct {
	mock.Mock
}

func (m *mockChannelRepository) FindAll(ctx context.Context) ([]models.Channel, error) {
	args := m.Called(ctx)
	channels, _ := args.Get(0).([]models.Channel)
	return channels, args.Error(1)
}

func (m *mockChannelRepository) FindByPublicID(ctx context.Context, channelID uuid.UUID) (models.Channel, error) {
	args := m.Called(ctx, channelID)
	return args.Get(0).(models.Channel), args.Error(1)
}

func (m *mockChannelRepository) Save(ctx context.Context, channel models.Channel) (models.Channel, error) {
	args := m.Called(ctx, channel)
	return args.Get(0).(models.Channel), args.Error(1)
}

func (m *mockChannelRepository) Remove(ctx context.Context, channelID uuid.UUID) error {
	return m.Called(ctx, channelID).Error(0)
}

func (m *mockChannelRepository) Update(ctx context.Context, channelID uuid.UUID, channel models.Channel) (models.Channel, error) {
	args := m.Called(ctx, channelID, channel)
	return args.Get(0).(models.Channel), args.Error(1)
}

type mockVideoRepository struct {
	mock.Mock
}

func (m *mockVideoRepository) FindAllByChannel(ctx context.Context, channelID uuid.UUID) ([]models.Video, error) {
	args := m.Called(ctx, channelID)
	videos, _ := args.Get(0).([]models.Video)
	return videos, args.Error(1)
}

func (m *mockVideoRepository) FindByChannelAndVideo(ctx context.Context, channelID, videoID uuid.UUID) (models.Video, error) {
	args := m.Called(ctx, channelID, videoID)
	return args.Get(0).(models.Video), args.Error(1)
}

func (m *mockVideoRepository) SaveUnderChannel(ctx context.Context, channelID uuid.UUID, video models.Video) (models.Video, error) {
	args := m.Called(ctx, channelID, video)
	return args.Get(0).(models.Video), args.Error(1)
}

func (m *mockVideoRepository) RemoveByChannelAndVideo(ctx context.Context, channelID, videoID uuid.UUID) error {
	return m.Called(ctx, channelID, videoID).Error(0)
}

func (m *mockVideoRepository) UpdateByChannelAndVideo(ctx context.Context, channelID, videoID uuid.UUID, video models.Video) (models.Video, error) {
	args := m.Called(ctx, channelID, videoID, video)
	return args.Get(0).(models.Video), args.Error(1)
}

type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) Publish(ctx context.Context, event *models.ResourceEvent) error {
	return m.Called(ctx, event).Error(0)
}

// eventOf matches a published event by type and identifiers.
func eventOf(eventType models.EventType, channelID uuid.UUID, videoID *uuid.UUID) interface{} {
	return mock.MatchedBy(func(e *models.ResourceEvent) bool {
		if e.Type != eventType || e.ChannelID != channelID {
			return false
		}
		if videoID == nil {
			return e.VideoID == nil
		}
		return e.VideoID != nil && *e.VideoID == *videoID
	})
}
