package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/wasp/youtube-channel-api/internal/db/repository"
	"github.com/wasp/youtube-channel-api/internal/models"
)

// ChannelService exposes channel operations to the HTTP layer.
type ChannelService struct {
	repo      repository.ChannelRepository
	publisher EventPublisher
}

// NewChannelService creates a new ChannelService instance. A nil publisher disables events.
func NewChannelService(repo repository.ChannelRepository, publisher EventPublisher) *ChannelService {
	if publisher == nil {
		publisher = NoopPublisher{}
	}
	return &ChannelService{repo: repo, publisher: publisher}
}

// FindAll returns every channel with its videos.
func (s *ChannelService) FindAll(ctx context.Context) ([]models.Channel, error) {
	return s.repo.FindAll(ctx)
}

// FindByPublicID returns one channel.
func (s *ChannelService) FindByPublicID(ctx context.Context, channelID uuid.UUID) (models.Channel, error) {
	return s.repo.FindByPublicID(ctx, channelID)
}

// Save stores a new channel.
func (s *ChannelService) Save(ctx context.Context, channel models.Channel) (models.Channel, error) {
	saved, err := s.repo.Save(ctx, channel)
	if err != nil {
		return models.Channel{}, err
	}

	announce(ctx, s.publisher, models.NewChannelEvent(models.EventChannelCreated, saved.ChannelID))
	return saved, nil
}

// Delete removes a channel and its videos.
func (s *ChannelService) Delete(ctx context.Context, channelID uuid.UUID) error {
	if err := s.repo.Remove(ctx, channelID); err != nil {
		return err
	}

	announce(ctx, s.publisher, models.NewChannelEvent(models.EventChannelDeleted, channelID))
	return nil
}

// Update overwrites the name and link of a channel.
func (s *ChannelService) Update(ctx context.Context, channelID uuid.UUID, channel models.Channel) (models.Channel, error) {
	updated, err := s.repo.Update(ctx, channelID, channel)
	if err != nil {
		return models.Channel{}, err
	}

	announce(ctx, s.publisher, models.NewChannelEvent(models.EventChannelUpdated, channelID))
	return updated, nil
}
