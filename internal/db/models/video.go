package models

import (
	"time"

	"github.com/google/uuid"
)

// VideoEntity is the stored form of a YouTube video. ChannelEntityID links it
// to the owning channel's surrogate key; ChannelID mirrors that channel's
// public identifier so conversion never needs a second lookup.
type VideoEntity struct {
	ID              int64     `db:"id"`
	VideoID         uuid.UUID `db:"video_id"`
	ReleaseDate     time.Time `db:"release_date"`
	Name            string    `db:"name"`
	Description     string    `db:"description"`
	ChannelEntityID int64     `db:"channel_entity_id"`
	ChannelID       uuid.UUID `db:"-"`
}

// NewVideoEntity creates an unsaved VideoEntity. The release date is reduced to its calendar day.
func NewVideoEntity(videoID uuid.UUID, releaseDate time.Time, name, description string) *VideoEntity {
	return &VideoEntity{
		VideoID:     videoID,
		ReleaseDate: DateOnly(releaseDate),
		Name:        name,
		Description: description,
	}
}

// Update overwrites the mutable video fields.
func (v *VideoEntity) Update(releaseDate time.Time, name, description string) {
	v.ReleaseDate = DateOnly(releaseDate)
	v.Name = name
	v.Description = description
}

// AttachTo links the video to its owning channel.
func (v *VideoEntity) AttachTo(channel *ChannelEntity) {
	v.ChannelEntityID = channel.ID
	v.ChannelID = channel.ChannelID
}

// DateOnly strips the clock time, keeping the calendar date in UTC.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
