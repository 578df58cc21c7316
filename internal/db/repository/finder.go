package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/wasp/youtube-channel-api/internal/apperror"
	"github.com/wasp/youtube-channel-api/internal/db"
	dbmodels "github.com/wasp/youtube-channel-api/internal/db/models"
)

// Channel and videos are read in one statement. A channel without videos yields one row with NULL video columns.
const selectChannelWithVideos = `SELECT c.id, c.channel_id, c.name, c.link, v.id, v.video_id, v.release_date, v.name, v.description FROM channels c LEFT JOIN videos v ON v.channel_entity_id = c.id WHERE c.channel_id = $1 ORDER BY v.id`

// ChannelFinder resolves a channel's public identifier to its stored record.
type ChannelFinder interface {
	// ResolveChannel loads the channel together with all of its videos.
	// It fails with a not-found apperror when no channel matches.
	ResolveChannel(ctx context.Context, channelID uuid.UUID) (*dbmodels.ChannelEntity, error)
}

type channelFinder struct {
	db db.DBTX
}

// NewChannelFinder creates a ChannelFinder reading from q.
func NewChannelFinder(q db.DBTX) ChannelFinder {
	return &channelFinder{db: q}
}

func (f *channelFinder) ResolveChannel(ctx context.Context, channelID uuid.UUID) (*dbmodels.ChannelEntity, error) {
	const op = "resolve channel"

	rows, err := f.db.Query(ctx, selectChannelWithVideos, channelID)
	if err != nil {
		return nil, apperror.Internal(op, db.WrapError(err, op))
	}
	defer rows.Close()

	var channel *dbmodels.ChannelEntity
	for rows.Next() {
		var (
			entity      dbmodels.ChannelEntity
			videoID     *int64
			publicID    *uuid.UUID
			releaseDate *time.Time
			name        *string
			description *string
		)
		err := rows.Scan(
			&entity.ID,
			&entity.ChannelID,
			&entity.Name,
			&entity.Link,
			&videoID,
			&publicID,
			&releaseDate,
			&name,
			&description,
		)
		if err != nil {
			return nil, apperror.Internal(op, fmt.Errorf("scan channel: %w", err))
		}

		if channel == nil {
			channel = dbmodels.NewChannelEntity(entity.ChannelID, entity.Name, entity.Link, nil)
			channel.ID = entity.ID
		}
		if videoID == nil {
			continue
		}
		channel.Videos = append(channel.Videos, &dbmodels.VideoEntity{
			ID:              *videoID,
			VideoID:         *publicID,
			ReleaseDate:     *releaseDate,
			Name:            *name,
			Description:     *description,
			ChannelEntityID: channel.ID,
			ChannelID:       channel.ChannelID,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.Internal(op, db.WrapError(err, op))
	}

	if channel == nil {
		return nil, apperror.ChannelNotFound(op, channelID)
	}
	return channel, nil
}

// Helper function to scan multiple videos from query results
func scanVideos(rows pgx.Rows) ([]*dbmodels.VideoEntity, error) {
	videos := []*dbmodels.VideoEntity{}

	for rows.Next() {
		video := &dbmodels.VideoEntity{}
		err := rows.Scan(
			&video.ID,
			&video.VideoID,
			&video.ReleaseDate,
			&video.Name,
			&video.Description,
			&video.ChannelEntityID,
		)
		if err != nil {
			return nil, fmt.Errorf("scan video: %w", err)
		}
		videos = append(videos, video)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate videos: %w", err)
	}

	return videos, nil
}
