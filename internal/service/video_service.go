package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/wasp/youtube-channel-api/internal/db/repository"
	"github.com/wasp/youtube-channel-api/internal/models"
)

// VideoService exposes video operations scoped to a channel.
type VideoService struct {
	repo      repository.VideoRepository
	publisher EventPublisher
}

// NewVideoService creates a new VideoService instance. A nil publisher disables events.
func NewVideoService(repo repository.VideoRepository, publisher EventPublisher) *VideoService {
	if publisher == nil {
		publisher = NoopPublisher{}
	}
	return &VideoService{repo: repo, publisher: publisher}
}

func (s *VideoService) FindAllByChannel(ctx context.Context, channelID uuid.UUID) ([]models.Video, error) {
	return s.repo.FindAllByChannel(ctx, channelID)
}

func (s *VideoService) FindByChannelAndVideo(ctx context.Context, channelID, videoID uuid.UUID) (models.Video, error) {
	return s.repo.FindByChannelAndVideo(ctx, channelID, videoID)
}

func (s *VideoService) SaveUnderChannel(ctx context.Context, channelID uuid.UUID, video models.Video) (models.Video, error) {
	saved, err := s.repo.SaveUnderChannel(ctx, channelID, video)
	if err != nil {
		return models.Video{}, err
	}

	announce(ctx, s.publisher, models.NewVideoEvent(models.EventVideoCreated, channelID, saved.VideoID))
	return saved, nil
}

func (s *VideoService) DeleteByChannelAndVideo(ctx context.Context, channelID, videoID uuid.UUID) error {
	if err := s.repo.RemoveByChannelAndVideo(ctx, channelID, videoID); err != nil {
		return err
	}

	announce(ctx, s.publisher, models.NewVideoEvent(models.EventVideoDeleted, channelID, videoID))
	return nil
}

func (s *VideoService) UpdateByChannelAndVideo(ctx context.Context, channelID, videoID uuid.UUID, video models.Video) (models.Video, error) {
	updated, err := s.repo.UpdateByChannelAndVideo(ctx, channelID, videoID, video)
	if err != nil {
		return models.Video{}, err
	}

	announce(ctx, s.publisher, models.NewVideoEvent(models.EventVideoUpdated, channelID, videoID))
	return updated, nil
}
