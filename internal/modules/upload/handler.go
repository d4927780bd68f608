package upload

import (
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/meridian-institute/core/internal/middleware"
	"github.com/meridian-institute/core/internal/pkg/response"
)

const (
	maxAvatarSize    = 4 << 20
	maxThumbnailSize = 32 << 20
)

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// Handler serves POST /files/upload.
type Handler struct {
	uploader *Uploader
}

func NewHandler(uploader *Uploader) *Handler {
	return &Handler{uploader: uploader}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	files := rg.Group("/files", middleware.RequireMember())
	files.POST("/upload", h.upload)
}

// upload POST /files/upload?type=avatar|thumbnail
func (h *Handler) upload(c *gin.Context) {
	if h.uploader == nil {
		response.BadRequest(c, "object storage is not configured")
		return
	}

	kind := c.DefaultQuery("type", "thumbnail")
	var maxSize int64
	switch kind {
	case "avatar":
		maxSize = maxAvatarSize
	case "thumbnail":
		maxSize = maxThumbnailSize
	default:
		response.BadRequest(c, "type must be avatar or thumbnail")
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, "file is required")
		return
	}
	if fileHeader.Size > maxSize {
		response.BadRequest(c, "file exceeds the size limit for this type")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.InternalError(c, err)
		return
	}
	defer file.Close()

	payload, err := io.ReadAll(io.LimitReader(file, maxSize+1))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if int64(len(payload)) > maxSize {
		response.BadRequest(c, "file exceeds the size limit for this type")
		return
	}

	// sniff the real content type; the multipart header is caller-controlled
	contentType := http.DetectContentType(payload)
	if !allowedImageTypes[contentType] {
		response.BadRequest(c, "only jpeg, png, gif, and webp images are accepted")
		return
	}

	key := objectKey(kind, fileHeader.Filename, time.Now())
	url, err := h.uploader.Put(c.Request.Context(), key, payload, contentType)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, gin.H{
		"url":  url,
		"name": key,
		"size": len(payload),
	})
}
