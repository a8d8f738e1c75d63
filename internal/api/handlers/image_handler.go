package handlers

import (
	"errors"
	"net/http"

	"github.com/Marga-Ghale/ora-identity-services/internal/api/middleware"
	"github.com/Marga-Ghale/ora-identity-services/internal/logger"
	"github.com/Marga-Ghale/ora-identity-services/internal/models"
	"github.com/Marga-Ghale/ora-identity-services/internal/service"
	"github.com/gin-gonic/gin"
)

type ImageHandler struct {
	imageService service.ImageService
}

func NewImageHandler(imageService service.ImageService) *ImageHandler {
	return &ImageHandler{imageService: imageService}
}

// UploadURL issues a presigned PUT for a new image
func (h *ImageHandler) UploadURL(c *gin.Context) {
	var req models.UploadURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	resp, err := h.imageService.GenerateUploadURL(c.Request.Context(), &req)
	if err != nil {
		h.respond(c, "image.upload_url", "Failed to generate upload URL", err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// DownloadURL issues a presigned GET for an existing image
func (h *ImageHandler) DownloadURL(c *gin.Context) {
	var q models.DownloadURLQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondBindError(c, err)
		return
	}

	resp, err := h.imageService.GenerateDownloadURL(c.Request.Context(), q.UserID, q.ImageID)
	if err != nil {
		h.respond(c, "image.download_url", "Failed to generate download URL", err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *ImageHandler) respond(c *gin.Context, op, failure string, err error) {
	var vErr *service.ValidationError
	if errors.As(err, &vErr) {
		abortWith(c, http.StatusBadRequest, "Validation failed", vErr.Message)
		return
	}
	logger.L().Errorw("Presign failed", "op", op, "error", err, "requestId", middleware.GetRequestID(c))
	abortWith(c, http.StatusInternalServerError, "Internal error", failure)
}
