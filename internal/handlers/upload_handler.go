package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// UploadPayload carries a base64-encoded image, raw or as a data URI.
type UploadPayload struct {
	Image string `json:"image" binding:"required"`
}

// UploadImage forwards a user image to the external image host and returns
// the hosted URL with its dimensions.
func (h *Handler) UploadImage(c *gin.Context) {
	var payload UploadPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload", "message": err.Error()})
		return
	}
	if _, ok := h.requireUser(c); !ok {
		return
	}

	if h.Images == nil || !h.Images.Enabled() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "image uploads are not configured"})
		return
	}

	result, err := h.Images.Upload(c.Request.Context(), payload.Image)
	if err != nil {
		h.respondError(c, err, "upload image")
		return
	}
	c.JSON(http.StatusCreated, result)
}
