package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"deskchat-server/internal/domain/media"
	"deskchat-server/internal/infrastructure/metrics"
)

// UploadHandler accepts multipart image uploads.
type UploadHandler struct {
	service *media.Service
	log     zerolog.Logger
}

func NewUploadHandler(service *media.Service, log zerolog.Logger) *UploadHandler {
	return &UploadHandler{
		service: service,
		log:     log.With().Str("component", "upload-handler").Logger(),
	}
}

type uploadResponse struct {
	ImageURL string `json:"imageUrl"`
}

// Upload reads the "image" multipart field, stores it and returns the
// durable public URL.
func (h *UploadHandler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		metrics.ImageUploads.WithLabelValues("rejected").Inc()
		c.JSON(http.StatusBadRequest, errorResponse{Error: "image file is required"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		metrics.ImageUploads.WithLabelValues("error").Inc()
		c.JSON(http.StatusInternalServerError, errorResponse{Error: "unable to read uploaded file"})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		metrics.ImageUploads.WithLabelValues("error").Inc()
		c.JSON(http.StatusInternalServerError, errorResponse{Error: "unable to read uploaded file"})
		return
	}

	url, err := h.service.StoreImage(c.Request.Context(), data)
	if err != nil {
		switch {
		case errors.Is(err, media.ErrEmptyFile),
			errors.Is(err, media.ErrTooLarge),
			errors.Is(err, media.ErrUnsupportedType):
			metrics.ImageUploads.WithLabelValues("rejected").Inc()
			c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		default:
			metrics.ImageUploads.WithLabelValues("error").Inc()
			h.log.Error().Err(err).Msg("store image")
			c.JSON(http.StatusInternalServerError, errorResponse{Error: "image upload failed"})
		}
		return
	}

	metrics.ImageUploads.WithLabelValues("success").Inc()
	c.JSON(http.StatusOK, uploadResponse{ImageURL: url})
}
