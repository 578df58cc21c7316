package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/wasp/youtube-channel-api/internal/middleware"
	"github.com/wasp/youtube-channel-api/internal/models"
	"github.com/wasp/youtube-channel-api/internal/validation"
)

const channelsPath = "/api/youtubechannels"

// ChannelService is what ChannelHandler needs from the service layer.
type ChannelService interface {
	FindAll(ctx context.Context) ([]models.Channel, error)
	FindByPublicID(ctx context.Context, channelID uuid.UUID) (models.Channel, error)
	Save(ctx context.Context, channel models.Channel) (models.Channel, error)
	Delete(ctx context.Context, channelID uuid.UUID) error
	Update(ctx context.Context, channelID uuid.UUID, channel models.Channel) (models.Channel, error)
}

// ChannelHandler serves /api/youtubechannels. Failures are attached to the
// context and rendered by the error translator.
type ChannelHandler struct {
	svc ChannelService
}

// NewChannelHandler creates a new ChannelHandler instance.
func NewChannelHandler(svc ChannelService) *ChannelHandler {
	return &ChannelHandler{svc: svc}
}

// RegisterRoutes mounts the channel routes on rg.
func (h *ChannelHandler) RegisterRoutes(rg gin.IRouter) {
	channels := rg.Group(channelsPath)
	channels.GET("", h.List)
	channels.POST("", h.Create)
	channels.GET("/:channelId", h.Get)
	channels.PUT("/:channelId", h.Update)
	channels.DELETE("/:channelId", h.Delete)
}

// List returns every channel with its videos.
func (h *ChannelHandler) List(c *gin.Context) {
	channels, err := h.svc.FindAll(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, newChannelResponses(channels))
}

// Get returns one channel.
func (h *ChannelHandler) Get(c *gin.Context) {
	channelID, ok := pathID(c, "channelId")
	if !ok {
		return
	}

	channel, err := h.svc.FindByPublicID(c.Request.Context(), channelID)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, newChannelResponse(channel))
}

// Create stores a new channel, optionally with initial videos.
func (h *ChannelHandler) Create(c *gin.Context) {
	var req createChannelRequest
	if !bindJSON(c, &req) {
		return
	}

	channel, err := req.toChannel()
	if err != nil {
		_ = c.Error(err)
		return
	}

	saved, err := h.svc.Save(c.Request.Context(), channel)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.Header("Location", channelsPath+"/"+saved.ChannelID.String())
	c.JSON(http.StatusCreated, newChannelResponse(saved))
}

// Update overwrites a channel's name and link.
func (h *ChannelHandler) Update(c *gin.Context) {
	channelID, ok := pathID(c, "channelId")
	if !ok {
		return
	}

	var req updateChannelRequest
	if !bindJSON(c, &req) {
		return
	}

	updated, err := h.svc.Update(c.Request.Context(), channelID, req.toChannel(channelID))
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, newChannelResponse(updated))
}

// Delete removes a channel and its videos.
func (h *ChannelHandler) Delete(c *gin.Context) {
	channelID, ok := pathID(c, "channelId")
	if !ok {
		return
	}

	if err := h.svc.Delete(c.Request.Context(), channelID); err != nil {
		_ = c.Error(err)
		return
	}

	c.Status(http.StatusNoContent)
}

// pathID parses a UUID path parameter. A malformed value addresses no resource.
func pathID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, ok := validation.ParseID(c.Param(name))
	if !ok {
		_ = c.Error(middleware.ErrNoRoute)
		return uuid.Nil, false
	}
	return id, true
}

func bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		_ = c.Error(validation.FromBinding(err))
		return false
	}
	return true
}
