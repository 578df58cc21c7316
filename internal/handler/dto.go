package handler

import (
	"time"

	"github.com/google/uuid"

	"github.com/wasp/youtube-channel-api/internal/models"
	"github.com/wasp/youtube-channel-api/internal/validation"
)

// Lengths are counted in characters.

type createChannelRequest struct {
	Name   string         `json:"name" binding:"min=4,max=30"`
	Link   string         `json:"link" binding:"min=1,max=1000"`
	Videos []videoRequest `json:"videos" binding:"omitempty,dive"`
}

type updateChannelRequest struct {
	Name string `json:"name" binding:"min=4,max=30"`
	Link string `json:"link" binding:"min=1,max=1000"`
}

type videoRequest struct {
	ReleaseDate string `json:"releaseDate" binding:"required,datetime=2006-01-02"`
	Name        string `json:"name" binding:"min=4,max=50"`
	Description string `json:"description"`
}

type channelResponse struct {
	ChannelID uuid.UUID       `json:"channelId"`
	Name      string          `json:"name"`
	Link      string          `json:"link"`
	Videos    []videoResponse `json:"videos"`
}

type videoResponse struct {
	VideoID     uuid.UUID `json:"videoId"`
	ReleaseDate string    `json:"releaseDate"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	ChannelID   uuid.UUID `json:"channelId"`
}

func (r createChannelRequest) toChannel() (models.Channel, error) {
	videos := make([]models.Video, 0, len(r.Videos))
	for _, v := range r.Videos {
		// The channel is not known yet; NewChannel re-parents the videos.
		video, err := v.toVideo(uuid.Nil)
		if err != nil {
			return models.Channel{}, err
		}
		videos = append(videos, video)
	}
	return models.NewChannel(r.Name, r.Link, videos), nil
}

func (r updateChannelRequest) toChannel(channelID uuid.UUID) models.Channel {
	return models.Channel{ChannelID: channelID, Name: r.Name, Link: r.Link, Videos: []models.Video{}}
}

func (r videoRequest) releaseDate() (time.Time, error) {
	return validation.ParseDate("releaseDate", r.ReleaseDate)
}

func (r videoRequest) toVideo(channelID uuid.UUID) (models.Video, error) {
	released, err := r.releaseDate()
	if err != nil {
		return models.Video{}, err
	}
	return models.NewVideo(channelID, released, r.Name, r.Description), nil
}

func (r videoRequest) toUpdate(channelID, videoID uuid.UUID) (models.Video, error) {
	released, err := r.releaseDate()
	if err != nil {
		return models.Video{}, err
	}
	return models.Video{
		VideoID:     videoID,
		ReleaseDate: released,
		Name:        r.Name,
		Description: r.Description,
		ChannelID:   channelID,
	}, nil
}

func newChannelResponse(channel models.Channel) channelResponse {
	return channelResponse{
		ChannelID: channel.ChannelID,
		Name:      channel.Name,
		Link:      channel.Link,
		Videos:    newVideoResponses(channel.Videos),
	}
}

func newChannelResponses(channels []models.Channel) []channelResponse {
	out := make([]channelResponse, 0, len(channels))
	for _, channel := range channels {
		out = append(out, newChannelResponse(channel))
	}
	return out
}

func newVideoResponse(video models.Video) videoResponse {
	return videoResponse{
		VideoID:     video.VideoID,
		ReleaseDate: video.ReleaseDate.Format(validation.DateLayout),
		Name:        video.Name,
		Description: video.Description,
		ChannelID:   video.ChannelID,
	}
}

func newVideoResponses(videos []models.Video) []videoResponse {
	out := make([]videoResponse, 0, len(videos))
	for _, video := range videos {
		out = append(out, newVideoResponse(video))
	}
	return out
}
