package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/wasp/youtube-channel-api/internal/models"
)

// VideoService is what VideoHandler needs from the service layer.
type VideoService interface {
	FindAllByChannel(ctx context.Context, channelID uuid.UUID) ([]models.Video, error)
	FindByChannelAndVideo(ctx context.Context, channelID, videoID uuid.UUID) (models.Video, error)
	SaveUnderChannel(ctx context.Context, channelID uuid.UUID, video models.Video) (models.Video, error)
	DeleteByChannelAndVideo(ctx context.Context, channelID, videoID uuid.UUID) error
	UpdateByChannelAndVideo(ctx context.Context, channelID, videoID uuid.UUID, video models.Video) (models.Video, error)
}

// VideoHandler serves /api/youtubechannels/:channelId/videos.
type VideoHandler struct {
	svc VideoService
}

// NewVideoHandler creates a new VideoHandler instance.
func NewVideoHandler(svc VideoService) *VideoHandler {
	return &VideoHandler{svc: svc}
}

// RegisterRoutes mounts the video routes on rg.
func (h *VideoHandler) RegisterRoutes(rg gin.IRouter) {
	videos := rg.Group(channelsPath + "/:channelId/videos")
	videos.GET("", h.List)
	videos.POST("", h.Create)
	videos.GET("/:videoId", h.Get)
	videos.PUT("/:videoId", h.Update)
	videos.DELETE("/:videoId", h.Delete)
}

func (h *VideoHandler) List(c *gin.Context) {
	channelID, ok := pathID(c, "channelId")
	if !ok {
		return
	}

	videos, err := h.svc.FindAllByChannel(c.Request.Context(), channelID)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, newVideoResponses(videos))
}

func (h *VideoHandler) Get(c *gin.Context) {
	channelID, videoID, ok := videoPath(c)
	if !ok {
		return
	}

	video, err := h.svc.FindByChannelAndVideo(c.Request.Context(), channelID, videoID)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, newVideoResponse(video))
}

func (h *VideoHandler) Create(c *gin.Context) {
	channelID, ok := pathID(c, "channelId")
	if !ok {
		return
	}

	var req videoRequest
	if !bindJSON(c, &req) {
		return
	}

	video, err := req.toVideo(channelID)
	if err != nil {
		_ = c.Error(err)
		return
	}

	saved, err := h.svc.SaveUnderChannel(c.Request.Context(), channelID, video)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.Header("Location", channelsPath+"/"+channelID.String()+"/videos/"+saved.VideoID.String())
	c.JSON(http.StatusCreated, newVideoResponse(saved))
}

func (h *VideoHandler) Update(c *gin.Context) {
	channelID, videoID, ok := videoPath(c)
	if !ok {
		return
	}

	var req videoRequest
	if !bindJSON(c, &req) {
		return
	}

	video, err := req.toUpdate(channelID, videoID)
	if err != nil {
		_ = c.Error(err)
		return
	}

	updated, err := h.svc.UpdateByChannelAndVideo(c.Request.Context(), channelID, videoID, video)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, newVideoResponse(updated))
}

func (h *VideoHandler) Delete(c *gin.Context) {
	channelID, videoID, ok := videoPath(c)
	if !ok {
		return
	}

	if err := h.svc.DeleteByChannelAndVideo(c.Request.Context(), channelID, videoID); err != nil {
		_ = c.Error(err)
		return
	}

	c.Status(http.StatusNoContent)
}

func videoPath(c *gin.Context) (uuid.UUID, uuid.UUID, bool) {
	channelID, ok := pathID(c, "channelId")
	if !ok {
		return uuid.Nil, uuid.Nil, false
	}
	videoID, ok := pathID(c, "videoId")
	if !ok {
		return uuid.Nil, uuid.Nil, false
	}
	return channelID, videoID, true
}
