package repository

import (
	dbmodels "github.com/wasp/youtube-channel-api/internal/db/models"
	"github.com/wasp/youtube-channel-api/internal/models"
)

// Conversions between storage records and domain records. Surrogate keys stop here.

func toChannel(entity *dbmodels.ChannelEntity) models.Channel {
	return models.Channel{
		ChannelID: entity.ChannelID,
		Name:      entity.Name,
		Link:      entity.Link,
		Videos:    toVideos(entity.Videos),
	}
}

func toChannels(entities []*dbmodels.ChannelEntity) []models.Channel {
	channels := make([]models.Channel, 0, len(entities))
	for _, entity := range entities {
		channels = append(channels, toChannel(entity))
	}
	return channels
}

func toChannelEntity(channel models.Channel) *dbmodels.ChannelEntity {
	return dbmodels.NewChannelEntity(channel.ChannelID, channel.Name, channel.Link, toVideoEntities(channel.Videos))
}

func toVideo(entity *dbmodels.VideoEntity) models.Video {
	return models.Video{
		VideoID:     entity.VideoID,
		ReleaseDate: entity.ReleaseDate,
		Name:        entity.Name,
		Description: entity.Description,
		ChannelID:   entity.ChannelID,
	}
}

func toVideos(entities []*dbmodels.VideoEntity) []models.Video {
	videos := make([]models.Video, 0, len(entities))
	for _, entity := range entities {
		videos = append(videos, toVideo(entity))
	}
	return videos
}

func toVideoEntity(video models.Video) *dbmodels.VideoEntity {
	return dbmodels.NewVideoEntity(video.VideoID, video.ReleaseDate, video.Name, video.Description)
}

func toVideoEntities(videos []models.Video) []*dbmodels.VideoEntity {
	entities := make([]*dbmodels.VideoEntity, 0, len(videos))
	for _, video := range videos {
		entities = append(entities, toVideoEntity(video))
	}
	return entities
}
