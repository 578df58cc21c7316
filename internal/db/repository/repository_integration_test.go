//go:build integration

package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wasp/youtube-channel-api/internal/apperror"
	"github.com/wasp/youtube-channel-api/internal/db/testutil"
	"github.com/wasp/youtube-channel-api/internal/models"
)

func TestRepositories_Integration(t *testing.T) {
	td := testutil.SetupTestDatabase(t)
	defer td.Cleanup(t)

	finder := NewChannelFinder(td.Pool)
	channels := NewChannelRepository(td.Pool, finder)
	videos := NewVideoRepository(td.Pool, finder)
	ctx := context.Background()

	t.Run("andrena scenario", func(t *testing.T) {
		td.TruncateTables(t)

		created, err := channels.Save(ctx, models.NewChannel("andrena objects ag", "https://www.youtube.com/@andrenaobjects", nil))
		require.NoError(t, err)

		_, err = channels.Save(ctx, models.NewChannel("andrena objects ag", "https://www.youtube.com/@other", nil))
		assert.True(t, apperror.IsAlreadyExists(err))

		fetched, err := channels.FindByPublicID(ctx, created.ChannelID)
		require.NoError(t, err)
		assert.Equal(t, "andrena objects ag", fetched.Name)
		assert.Equal(t, "https://www.youtube.com/@andrenaobjects", fetched.Link)
		assert.Empty(t, fetched.Videos)

		released := time.Date(2024, time.June, 3, 0, 0, 0, 0, time.UTC)
		video, err := videos.SaveUnderChannel(ctx, created.ChannelID,
			models.NewVideo(created.ChannelID, released, "andrena objects", "Company introduction."))
		require.NoError(t, err)

		_, err = videos.SaveUnderChannel(ctx, created.ChannelID,
			models.NewVideo(created.ChannelID, released, "andrena objects", "Another description."))
		assert.True(t, apperror.IsAlreadyExists(err))

		require.NoError(t, channels.Remove(ctx, created.ChannelID))

		_, err = channels.FindByPublicID(ctx, created.ChannelID)
		assert.True(t, apperror.IsNotFound(err))
		_, err = videos.FindByChannelAndVideo(ctx, created.ChannelID, video.VideoID)
		assert.True(t, apperror.IsNotFound(err))
		_, err = videos.FindAllByChannel(ctx, created.ChannelID)
		assert.True(t, apperror.IsNotFound(err))
	})

	t.Run("same link under a different name is rejected", func(t *testing.T) {
		td.TruncateTables(t)

		_, err := channels.Save(ctx, models.NewChannel("andrena objects ag", "https://www.youtube.com/@andrenaobjects", nil))
		require.NoError(t, err)

		_, err = channels.Save(ctx, models.NewChannel("a different name", "https://www.youtube.com/@andrenaobjects", nil))
		assert.True(t, apperror.IsAlreadyExists(err))

		all, err := channels.FindAll(ctx)
		require.NoError(t, err)
		assert.Len(t, all, 1)
	})

	t.Run("round trip preserves identifiers and release date", func(t *testing.T) {
		td.TruncateTables(t)

		input := models.NewChannel("gophers", "https://www.youtube.com/@gophers", []models.Video{
			{VideoID: uuid.New(), ReleaseDate: time.Date(2022, time.February, 28, 0, 0, 0, 0, time.UTC), Name: "Generics", Description: "Type parameters."},
		})
		_, err := channels.Save(ctx, input)
		require.NoError(t, err)

		fetched, err := channels.FindByPublicID(ctx, input.ChannelID)
		require.NoError(t, err)
		assert.Equal(t, input.ChannelID, fetched.ChannelID)
		require.Len(t, fetched.Videos, 1)
		assert.Equal(t, input.Videos[0].VideoID, fetched.Videos[0].VideoID)
		assert.Equal(t, input.ChannelID, fetched.Videos[0].ChannelID)
		assert.True(t, input.Videos[0].ReleaseDate.Equal(fetched.Videos[0].ReleaseDate))

		all, err := channels.FindAll(ctx)
		require.NoError(t, err)
		require.Len(t, all, 1)
		assert.Len(t, all[0].Videos, 1)
	})

	t.Run("store constraints hold on update", func(t *testing.T) {
		td.TruncateTables(t)

		first, err := channels.Save(ctx, models.NewChannel("first channel", "https://www.youtube.com/@first", nil))
		require.NoError(t, err)
		_, err = channels.Save(ctx, models.NewChannel("second channel", "https://www.youtube.com/@second", nil))
		require.NoError(t, err)

		_, err = channels.Update(ctx, first.ChannelID, models.Channel{Name: "second channel", Link: "https://www.youtube.com/@first"})
		assert.True(t, apperror.IsAlreadyExists(err))

		_, err = channels.Update(ctx, first.ChannelID, models.Channel{Name: "first channel", Link: "https://www.youtube.com/@second"})
		assert.True(t, apperror.IsAlreadyExists(err))

		updated, err := channels.Update(ctx, first.ChannelID, models.Channel{Name: "renamed", Link: "https://www.youtube.com/@first"})
		require.NoError(t, err)
		assert.Equal(t, "renamed", updated.Name)
	})

	t.Run("video update and removal", func(t *testing.T) {
		td.TruncateTables(t)

		channel, err := channels.Save(ctx, models.NewChannel("videos channel", "https://www.youtube.com/@videos", nil))
		require.NoError(t, err)

		day := time.Date(2021, time.October, 1, 0, 0, 0, 0, time.UTC)
		one, err := videos.SaveUnderChannel(ctx, channel.ChannelID, models.NewVideo(channel.ChannelID, day, "first video", "one"))
		require.NoError(t, err)
		_, err = videos.SaveUnderChannel(ctx, channel.ChannelID, models.NewVideo(channel.ChannelID, day, "second video", "two"))
		require.NoError(t, err)

		_, err = videos.UpdateByChannelAndVideo(ctx, channel.ChannelID, one.VideoID,
			models.Video{ReleaseDate: day, Name: "first video", Description: "two"})
		assert.True(t, apperror.IsAlreadyExists(err))

		updated, err := videos.UpdateByChannelAndVideo(ctx, channel.ChannelID, one.VideoID,
			models.Video{ReleaseDate: day.AddDate(0, 0, 1), Name: "first video, recut", Description: "one again"})
		require.NoError(t, err)
		assert.Equal(t, one.VideoID, updated.VideoID)

		require.NoError(t, videos.RemoveByChannelAndVideo(ctx, channel.ChannelID, one.VideoID))
		_, err = videos.FindByChannelAndVideo(ctx, channel.ChannelID, one.VideoID)
		assert.True(t, apperror.IsNotFound(err))

		remaining, err := videos.FindAllByChannel(ctx, channel.ChannelID)
		require.NoError(t, err)
		require.Len(t, remaining, 1)
		assert.Equal(t, "second video", remaining[0].Name)
	})
}
