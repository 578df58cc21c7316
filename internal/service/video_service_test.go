package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/wasp/youtube-channel-api/internal/apperror"
	"github.com/wasp/youtube-channel-api/internal/models"
)

func TestVideoService_SaveUnderChannel(t *testing.T) {
	ctx := context.Background()
	channelID := uuid.New()
	video := models.NewVideo(channelID, time.Date(2024, time.June, 3, 0, 0, 0, 0, time.UTC), "andrena objects", "Company introduction.")

	t.Run("publishes video.created", func(t *testing.T) {
		repo := &mockVideoRepository{}
		publisher := &mockPublisher{}
		repo.On("SaveUnderChannel", ctx, channelID, video).Return(video, nil)
		publisher.On("Publish", ctx, eventOf(models.EventVideoCreated, channelID, &video.VideoID)).Return(nil)

		saved, err := NewVideoService(repo, publisher).SaveUnderChannel(ctx, channelID, video)
		require.NoError(t, err)
		assert.Equal(t, video, saved)

		repo.AssertExpectations(t)
		publisher.AssertExpectations(t)
	})

	t.Run("collision is already exists and nothing is published", func(t *testing.T) {
		repo := &mockVideoRepository{}
		publisher := &mockPublisher{}
		repo.On("SaveUnderChannel", ctx, channelID, video).
			Return(models.Video{}, apperror.VideoAlreadyExists("save video", channelID, nil))

		_, err := NewVideoService(repo, publisher).SaveUnderChannel(ctx, channelID, video)
		assert.True(t, apperror.IsAlreadyExists(err))
		publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
	})
}

func TestVideoService_Reads(t *testing.T) {
	ctx := context.Background()
	channelID, videoID := uuid.New(), uuid.New()
	video := models.Video{VideoID: videoID, ChannelID: channelID, Name: "andrena objects"}

	repo := &mockVideoRepository{}
	repo.On("FindAllByChannel", ctx, channelID).Return([]models.Video{video}, nil)
	repo.On("FindByChannelAndVideo", ctx, channelID, videoID).Return(video, nil)

	svc := NewVideoService(repo, nil)

	all, err := svc.FindAllByChannel(ctx, channelID)
	require.NoError(t, err)
	assert.Equal(t, []models.Video{video}, all)

	found, err := svc.FindByChannelAndVideo(ctx, channelID, videoID)
	require.NoError(t, err)
	assert.Equal(t, video, found)

	repo.AssertExpectations(t)
}

func TestVideoService_DeleteAndUpdate(t *testing.T) {
	ctx := context.Background()
	channelID, videoID := uuid.New(), uuid.New()
	input := models.Video{Name: "new name", Description: "new description", ReleaseDate: time.Date(2024, time.July, 1, 0, 0, 0, 0, time.UTC)}
	updated := input
	updated.VideoID, updated.ChannelID = videoID, channelID

	repo := &mockVideoRepository{}
	publisher := &mockPublisher{}
	repo.On("UpdateByChannelAndVideo", ctx, channelID, videoID, input).Return(updated, nil)
	repo.On("RemoveByChannelAndVideo", ctx, channelID, videoID).Return(nil)
	publisher.On("Publish", ctx, eventOf(models.EventVideoUpdated, channelID, &videoID)).Return(nil).Once()
	publisher.On("Publish", ctx, eventOf(models.EventVideoDeleted, channelID, &videoID)).Return(nil).Once()

	svc := NewVideoService(repo, publisher)

	got, err := svc.UpdateByChannelAndVideo(ctx, channelID, videoID, input)
	require.NoError(t, err)
	assert.Equal(t, updated, got)

	require.NoError(t, svc.DeleteByChannelAndVideo(ctx, channelID, videoID))

	repo.AssertExpectations(t)
	publisher.AssertExpectations(t)

	t.Run("not found is propagated", func(t *testing.T) {
		repo := &mockVideoRepository{}
		repo.On("RemoveByChannelAndVideo", ctx, channelID, videoID).
			Return(apperror.VideoNotFound("remove video", channelID, videoID))

		err := NewVideoService(repo, nil).DeleteByChannelAndVideo(ctx, channelID, videoID)
		assert.True(t, apperror.IsNotFound(err))
	})
}
