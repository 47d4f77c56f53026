package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/salon-booking/internal/httperr"
	"github.com/BruksfildServices01/salon-booking/internal/httpresp"
	"github.com/BruksfildServices01/salon-booking/internal/storage"
)

const maxUploadBytes = 10 << 20 // 10 MiB

type UploadHandler struct {
	uploader *storage.Uploader
}

func NewUploadHandler(uploader *storage.Uploader) *UploadHandler {
	return &UploadHandler{uploader: uploader}
}

// Upload accepts a multipart "image" field, converts it to webp, and
// answers the public URL to use as a profile, salon, or service image.
func (h *UploadHandler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		httperr.BadRequest(c, "invalid_request", "An image file is required.")
		return
	}
	if fileHeader.Size > maxUploadBytes {
		httperr.BadRequest(c, "file_too_large", "Image must be at most 10 MiB.")
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		httperr.Internal(c, "failed_to_read_upload", "An unexpected error occurred.")
		return
	}
	defer f.Close()

	url, err := h.uploader.UploadImage(c.Request.Context(), f)
	if err != nil {
		httperr.BadRequest(c, "invalid_image", "Could not process the uploaded image.")
		return
	}

	httpresp.Created(c, gin.H{"url": url})
}
