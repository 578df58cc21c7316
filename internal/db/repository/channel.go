package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/wasp/youtube-channel-api/internal/apperror"
	"github.com/wasp/youtube-channel-api/internal/db"
	dbmodels "github.com/wasp/youtube-channel-api/internal/db/models"
	"github.com/wasp/youtube-channel-api/internal/models"
)

const (
	selectAllChannels = `SELECT id, channel_id, name, link FROM channels ORDER BY id`
	selectAllVideos   = `SELECT id, video_id, release_date, name, description, channel_entity_id FROM videos ORDER BY id`
	channelExists     = `SELECT EXISTS(SELECT 1 FROM channels WHERE name = $1 OR link = $2)`
	insertChannel     = `INSERT INTO channels (channel_id, name, link) VALUES ($1, $2, $3) RETURNING id`
	insertVideo       = `INSERT INTO videos (video_id, release_date, name, description, channel_entity_id) VALUES ($1, $2, $3, $4, $5) RETURNING id`
	updateChannelByID = `UPDATE channels SET name = $1, link = $2 WHERE id = $3`
	deleteChannelByID = `DELETE FROM channels WHERE id = $1`
)

// ChannelRepository defines operations for managing channels.
type ChannelRepository interface {
	// FindAll loads every channel with its videos. Order is not guaranteed by contract.
	FindAll(ctx context.Context) ([]models.Channel, error)

	// FindByPublicID retrieves a single channel by its public identifier.
	FindByPublicID(ctx context.Context, channelID uuid.UUID) (models.Channel, error)

	// Save inserts a new channel, and any videos it carries, unless another
	// channel already uses its name or link.
	Save(ctx context.Context, channel models.Channel) (models.Channel, error)

	// Remove deletes a channel and all of its videos.
	Remove(ctx context.Context, channelID uuid.UUID) error

	// Update overwrites the name and link of an existing channel.
	Update(ctx context.Context, channelID uuid.UUID, channel models.Channel) (models.Channel, error)
}

type channelRepository struct {
	db     db.DBTX
	finder ChannelFinder
}

// NewChannelRepository creates a new ChannelRepository.
func NewChannelRepository(q db.DBTX, finder ChannelFinder) ChannelRepository {
	return &channelRepository{db: q, finder: finder}
}

func (r *channelRepository) FindAll(ctx context.Context) ([]models.Channel, error) {
	const op = "find all channels"

	rows, err := r.db.Query(ctx, selectAllChannels)
	if err != nil {
		return nil, apperror.Internal(op, db.WrapError(err, "list channels"))
	}
	channels, err := scanChannels(rows)
	rows.Close()
	if err != nil {
		return nil, apperror.Internal(op, err)
	}

	rows, err = r.db.Query(ctx, selectAllVideos)
	if err != nil {
		return nil, apperror.Internal(op, db.WrapError(err, "list videos"))
	}
	videos, err := scanVideos(rows)
	rows.Close()
	if err != nil {
		return nil, apperror.Internal(op, err)
	}

	byID := make(map[int64]*dbmodels.ChannelEntity, len(channels))
	for _, channel := range channels {
		byID[channel.ID] = channel
	}
	for _, video := range videos {
		// Rows inserted between the two reads may reference an unseen channel.
		owner, ok := byID[video.ChannelEntityID]
		if !ok {
			continue
		}
		video.ChannelID = owner.ChannelID
		owner.Videos = append(owner.Videos, video)
	}

	return toChannels(channels), nil
}

func (r *channelRepository) FindByPublicID(ctx context.Context, channelID uuid.UUID) (models.Channel, error) {
	entity, err := r.finder.ResolveChannel(ctx, channelID)
	if err != nil {
		return models.Channel{}, err
	}
	return toChannel(entity), nil
}

func (r *channelRepository) Save(ctx context.Context, channel models.Channel) (models.Channel, error) {
	const op = "save channel"

	entity := toChannelEntity(channel)

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return models.Channel{}, apperror.Internal(op, db.WrapError(err, "begin transaction"))
	}

	if err := r.insert(ctx, tx, entity); err != nil {
		_ = tx.Rollback(ctx)
		return models.Channel{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return models.Channel{}, apperror.Internal(op, db.WrapError(err, "commit transaction"))
	}

	return toChannel(entity), nil
}

// insert runs the uniqueness check and the inserts on tx. The check gives the
// early, friendly failure; the unique constraints on the table are what
// actually hold when two saves race.
func (r *channelRepository) insert(ctx context.Context, tx pgx.Tx, entity *dbmodels.ChannelEntity) error {
	const op = "save channel"

	var exists bool
	if err := tx.QueryRow(ctx, channelExists, entity.Name, entity.Link).Scan(&exists); err != nil {
		return apperror.Internal(op, db.WrapError(err, "check channel exists"))
	}
	if exists {
		return apperror.ChannelAlreadyExists(op, nil)
	}

	err := tx.QueryRow(ctx, insertChannel, entity.ChannelID, entity.Name, entity.Link).Scan(&entity.ID)
	if err != nil {
		wrapped := db.WrapError(err, "insert channel")
		if db.IsDuplicateKey(wrapped) {
			return apperror.ChannelAlreadyExists(op, wrapped)
		}
		return apperror.Internal(op, wrapped)
	}

	for _, video := range entity.Videos {
		video.AttachTo(entity)
		err := tx.QueryRow(ctx, insertVideo,
			video.VideoID,
			video.ReleaseDate,
			video.Name,
			video.Description,
			video.ChannelEntityID,
		).Scan(&video.ID)
		if err != nil {
			wrapped := db.WrapError(err, "insert initial video")
			if db.IsDuplicateKey(wrapped) {
				return apperror.VideoAlreadyExists(op, entity.ChannelID, wrapped)
			}
			return apperror.Internal(op, wrapped)
		}
	}

	return nil
}

func (r *channelRepository) Remove(ctx context.Context, channelID uuid.UUID) error {
	const op = "remove channel"

	entity, err := r.finder.ResolveChannel(ctx, channelID)
	if err != nil {
		return err
	}

	result, err := r.db.Exec(ctx, deleteChannelByID, entity.ID)
	if err != nil {
		return apperror.Internal(op, db.WrapError(err, "delete channel"))
	}

	if result.RowsAffected() == 0 {
		return apperror.ChannelNotFound(op, channelID)
	}

	return nil
}

func (r *channelRepository) Update(ctx context.Context, channelID uuid.UUID, channel models.Channel) (models.Channel, error) {
	const op = "update channel"

	entity, err := r.finder.ResolveChannel(ctx, channelID)
	if err != nil {
		return models.Channel{}, err
	}

	entity.Update(channel.Name, channel.Link)

	result, err := r.db.Exec(ctx, updateChannelByID, entity.Name, entity.Link, entity.ID)
	if err != nil {
		wrapped := db.WrapError(err, "update channel")
		if db.IsDuplicateKey(wrapped) {
			return models.Channel{}, apperror.ChannelAlreadyExists(op, wrapped)
		}
		return models.Channel{}, apperror.Internal(op, wrapped)
	}

	if result.RowsAffected() == 0 {
		return models.Channel{}, apperror.ChannelNotFound(op, channelID)
	}

	return toChannel(entity), nil
}

// Helper function to scan multiple channels from query results
func scanChannels(rows pgx.Rows) ([]*dbmodels.ChannelEntity, error) {
	channels := []*dbmodels.ChannelEntity{}

	for rows.Next() {
		channel := &dbmodels.ChannelEntity{Videos: []*dbmodels.VideoEntity{}}
		err := rows.Scan(
			&channel.ID,
			&channel.ChannelID,
			&channel.Name,
			&channel.Link,
		)
		if err != nil {
			return nil, fmt.Errorf("scan channel: %w", err)
		}
		channels = append(channels, channel)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate channels: %w", err)
	}

	return channels, nil
}
