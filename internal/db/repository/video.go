package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/wasp/youtube-channel-api/internal/apperror"
	"github.com/wasp/youtube-channel-api/internal/db"
	dbmodels "github.com/wasp/youtube-channel-api/internal/db/models"
	"github.com/wasp/youtube-channel-api/internal/models"
)

const (
	updateVideoByID = `UPDATE videos SET release_date = $1, name = $2, description = $3 WHERE id = $4`
	deleteVideoByID = `DELETE FROM videos WHERE id = $1`
)

// VideoRepository defines operations for managing the videos of a channel.
// Every operation first resolves the channel, so a missing channel is
// reported before a missing video.
type VideoRepository interface {
	FindAllByChannel(ctx context.Context, channelID uuid.UUID) ([]models.Video, error)
	FindByChannelAndVideo(ctx context.Context, channelID, videoID uuid.UUID) (models.Video, error)
	SaveUnderChannel(ctx context.Context, channelID uuid.UUID, video models.Video) (models.Video, error)
	RemoveByChannelAndVideo(ctx context.Context, channelID, videoID uuid.UUID) error
	UpdateByChannelAndVideo(ctx context.Context, channelID, videoID uuid.UUID, video models.Video) (models.Video, error)
}

type videoRepository struct {
	db     db.DBTX
	finder ChannelFinder
}

// NewVideoRepository creates a new VideoRepository.
func NewVideoRepository(q db.DBTX, finder ChannelFinder) VideoRepository {
	return &videoRepository{db: q, finder: finder}
}

func (r *videoRepository) FindAllByChannel(ctx context.Context, channelID uuid.UUID) ([]models.Video, error) {
	channel, err := r.finder.ResolveChannel(ctx, channelID)
	if err != nil {
		return nil, err
	}
	return toVideos(channel.Videos), nil
}

func (r *videoRepository) FindByChannelAndVideo(ctx context.Context, channelID, videoID uuid.UUID) (models.Video, error) {
	const op = "find video"

	_, video, err := r.resolve(ctx, op, channelID, videoID)
	if err != nil {
		return models.Video{}, err
	}
	return toVideo(video), nil
}

func (r *videoRepository) SaveUnderChannel(ctx context.Context, channelID uuid.UUID, video models.Video) (models.Video, error) {
	const op = "save video"

	channel, err := r.finder.ResolveChannel(ctx, channelID)
	if err != nil {
		return models.Video{}, err
	}

	entity := toVideoEntity(video)
	if channel.HasVideoConflict(entity.Name, entity.Description, nil) {
		return models.Video{}, apperror.VideoAlreadyExists(op, channelID, nil)
	}

	entity.AttachTo(channel)
	err = r.db.QueryRow(ctx, insertVideo,
		entity.VideoID,
		entity.ReleaseDate,
		entity.Name,
		entity.Description,
		entity.ChannelEntityID,
	).Scan(&entity.ID)
	if err != nil {
		wrapped := db.WrapError(err, "insert video")
		switch {
		case db.IsDuplicateKey(wrapped):
			return models.Video{}, apperror.VideoAlreadyExists(op, channelID, wrapped)
		case db.IsForeignKeyViolation(wrapped):
			// The channel was removed after it was resolved.
			return models.Video{}, apperror.ChannelNotFound(op, channelID)
		default:
			return models.Video{}, apperror.Internal(op, wrapped)
		}
	}

	return toVideo(entity), nil
}

func (r *videoRepository) RemoveByChannelAndVideo(ctx context.Context, channelID, videoID uuid.UUID) error {
	const op = "remove video"

	_, video, err := r.resolve(ctx, op, channelID, videoID)
	if err != nil {
		return err
	}

	result, err := r.db.Exec(ctx, deleteVideoByID, video.ID)
	if err != nil {
		return apperror.Internal(op, db.WrapError(err, "delete video"))
	}
	if result.RowsAffected() == 0 {
		return apperror.VideoNotFound(op, channelID, videoID)
	}

	return nil
}

func (r *videoRepository) UpdateByChannelAndVideo(ctx context.Context, channelID, videoID uuid.UUID, video models.Video) (models.Video, error) {
	const op = "update video"

	_, entity, err := r.resolve(ctx, op, channelID, videoID)
	if err != nil {
		return models.Video{}, err
	}

	entity.Update(video.ReleaseDate, video.Name, video.Description)

	result, err := r.db.Exec(ctx, updateVideoByID, entity.ReleaseDate, entity.Name, entity.Description, entity.ID)
	if err != nil {
		wrapped := db.WrapError(err, "update video")
		if db.IsDuplicateKey(wrapped) {
			return models.Video{}, apperror.VideoAlreadyExists(op, channelID, wrapped)
		}
		return models.Video{}, apperror.Internal(op, wrapped)
	}
	if result.RowsAffected() == 0 {
		return models.Video{}, apperror.VideoNotFound(op, channelID, videoID)
	}

	return toVideo(entity), nil
}

// resolve loads the channel, then the video among the channel's own videos.
func (r *videoRepository) resolve(ctx context.Context, op string, channelID, videoID uuid.UUID) (*dbmodels.ChannelEntity, *dbmodels.VideoEntity, error) {
	channel, err := r.finder.ResolveChannel(ctx, channelID)
	if err != nil {
		return nil, nil, err
	}

	video := channel.FindVideo(videoID)
	if video == nil {
		return nil, nil, apperror.VideoNotFound(op, channelID, videoID)
	}

	return channel, video, nil
}
