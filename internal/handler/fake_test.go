package handler

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/wasp/youtube-channel-api/internal/apperror"
	"github.com/wasp/youtube-channel-api/internal/models"
)

// fakeStore is an in-memory ChannelService and VideoService with the same
// uniqueness and not-found rules as the real repositories.
type fakeStore struct {
	mu       sync.Mutex
	channels []models.Channel
	failWith error
}

func newFakeStore() *fakeStore {
	return &fakeStore{}
}

func (s *fakeStore) index(channelID uuid.UUID) int {
	for i, ch := range s.channels {
		if ch.ChannelID == channelID {
			return i
		}
	}
	return -1
}

func (s *fakeStore) FindAll(context.Context) ([]models.Channel, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return nil, s.failWith
	}
	return append([]models.Channel{}, s.channels...), nil
}

func (s *fakeStore) FindByPublicID(_ context.Context, channelID uuid.UUID) (models.Channel, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.index(channelID)
	if i < 0 {
		return models.Channel{}, apperror.ChannelNotFound("resolve channel", channelID)
	}
	return s.channels[i], nil
}

func (s *fakeStore) Save(_ context.Context, channel models.Channel) (models.Channel, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, ch := range s.channels {
		if ch.Name == channel.Name || ch.Link == channel.Link {
			return models.Channel{}, apperror.ChannelAlreadyExists("save channel", nil)
		}
	}
	s.channels = append(s.channels, channel)
	return channel, nil
}

func (s *fakeStore) Delete(_ context.Context, channelID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.index(channelID)
	if i < 0 {
		return apperror.ChannelNotFound("remove channel", channelID)
	}
	s.channels = append(s.channels[:i], s.channels[i+1:]...)
	return nil
}

func (s *fakeStore) Update(_ context.Context, channelID uuid.UUID, channel models.Channel) (models.Channel, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.index(channelID)
	if i < 0 {
		return models.Channel{}, apperror.ChannelNotFound("update channel", channelID)
	}
	s.channels[i].Name = channel.Name
	s.channels[i].Link = channel.Link
	return s.channels[i], nil
}

func (s *fakeStore) FindAllByChannel(_ context.Context, channelID uuid.UUID) ([]models.Video, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.index(channelID)
	if i < 0 {
		return nil, apperror.ChannelNotFound("resolve channel", channelID)
	}
	return append([]models.Video{}, s.channels[i].Videos...), nil
}

func (s *fakeStore) FindByChannelAndVideo(_ context.Context, channelID, videoID uuid.UUID) (models.Video, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i, j, err := s.locate(channelID, videoID)
	if err != nil {
		return models.Video{}, err
	}
	return s.channels[i].Videos[j], nil
}

func (s *fakeStore) SaveUnderChannel(_ context.Context, channelID uuid.UUID, video models.Video) (models.Video, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.index(channelID)
	if i < 0 {
		return models.Video{}, apperror.ChannelNotFound("resolve channel", channelID)
	}
	for _, v := range s.channels[i].Videos {
		if v.Name == video.Name || v.Description == video.Description {
			return models.Video{}, apperror.VideoAlreadyExists("save video", channelID, nil)
		}
	}
	video.ChannelID = channelID
	s.channels[i].Videos = append(s.channels[i].Videos, video)
	return video, nil
}

func (s *fakeStore) DeleteByChannelAndVideo(_ context.Context, channelID, videoID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i, j, err := s.locate(channelID, videoID)
	if err != nil {
		return err
	}
	videos := s.channels[i].Videos
	s.channels[i].Videos = append(videos[:j], videos[j+1:]...)
	return nil
}

func (s *fakeStore) UpdateByChannelAndVideo(_ context.Context, channelID, videoID uuid.UUID, video models.Video) (models.Video, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i, j, err := s.locate(channelID, videoID)
	if err != nil {
		return models.Video{}, err
	}
	stored := &s.channels[i].Videos[j]
	stored.ReleaseDate = video.ReleaseDate
	stored.Name = video.Name
	stored.Description = video.Description
	return *stored, nil
}

func (s *fakeStore) locate(channelID, videoID uuid.UUID) (int, int, error) {
	i := s.index(channelID)
	if i < 0 {
		return 0, 0, apperror.ChannelNotFound("resolve channel", channelID)
	}
	for j, v := range s.channels[i].Videos {
		if v.VideoID == videoID {
			return i, j, nil
		}
	}
	return 0, 0, apperror.VideoNotFound("find video", channelID, videoID)
}

type fakePinger struct {
	err error
}

func (p fakePinger) Ping(context.Context) error {
	return p.err
}

type fakeBroker bool

func (b fakeBroker) IsHealthy() bool {
	return bool(b)
}

var errStoreDown = errors.New("connection refused")
