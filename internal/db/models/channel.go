// Package models holds the storage records of channels and videos.
package models

import "github.com/google/uuid"

// ChannelEntity is the stored form of a YouTube channel. ID is the surrogate
// key assigned by the store; ChannelID is the public identifier.
type ChannelEntity struct {
	ID        int64          `db:"id"`
	ChannelID uuid.UUID      `db:"channel_id"`
	Name      string         `db:"name"`
	Link      string         `db:"link"`
	Videos    []*VideoEntity `db:"-"`
}

// NewChannelEntity creates an unsaved ChannelEntity.
func NewChannelEntity(channelID uuid.UUID, name, link string, videos []*VideoEntity) *ChannelEntity {
	if videos == nil {
		videos = []*VideoEntity{}
	}
	return &ChannelEntity{
		ChannelID: channelID,
		Name:      name,
		Link:      link,
		Videos:    videos,
	}
}

// Update copies the mutable channel fields. The public identifier and the
// owned videos are left untouched.
func (c *ChannelEntity) Update(name, link string) {
	c.Name = name
	c.Link = link
}

// FindVideo returns the owned video with the given public identifier, or nil.
func (c *ChannelEntity) FindVideo(videoID uuid.UUID) *VideoEntity {
	for _, v := range c.Videos {
		if v.VideoID == videoID {
			return v
		}
	}
	return nil
}

// HasVideoConflict reports whether an owned video other than except already
// uses name or description.
func (c *ChannelEntity) HasVideoConflict(name, description string, except *VideoEntity) bool {
	for _, v := range c.Videos {
		if v == except {
			continue
		}
		if v.Name == name || v.Description == description {
			return true
		}
	}
	return false
}
