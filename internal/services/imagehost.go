package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// ImageHost uploads user images to an external image-hosting service with a
// Cloudinary-style unsigned upload endpoint.
type ImageHost struct {
	uploadURL string
	preset    string
	http      *http.Client
	logger    *logrus.Logger
}

// UploadResult is the subset of the host's response the API exposes.
type UploadResult struct {
	URL      string `json:"url"`
	PublicID string `json:"publicId"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
}

// NewImageHost creates an image host client. uploadURL is the full upload
// endpoint, e.g. https://api.cloudinary.com/v1_1/<cloud>/image/upload.
func NewImageHost(uploadURL, preset string, logger *logrus.Logger) *ImageHost {
	return &ImageHost{
		uploadURL: uploadURL,
		preset:    preset,
		http:      &http.Client{Timeout: 30 * time.Second},
		logger:    logger,
	}
}

// Enabled reports whether an upload endpoint is configured.
func (h *ImageHost) Enabled() bool {
	return h.uploadURL != ""
}

// Upload sends a base64 image (raw or data URI) to the host and returns the
// hosted URL with its dimensions.
func (h *ImageHost) Upload(ctx context.Context, image string) (*UploadResult, error) {
	if !strings.HasPrefix(image, "data:") {
		image = "data:image/jpeg;base64," + image
	}

	form := url.Values{}
	form.Set("file", image)
	if h.preset != "" {
		form.Set("upload_preset", h.preset)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.uploadURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to build upload request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := h.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("image upload failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read upload response: %w", err)
	}
	if resp.StatusCode >= 400 {
		h.logger.WithField("status", resp.StatusCode).Error("image host rejected upload")
		return nil, fmt.Errorf("image host returned status %d", resp.StatusCode)
	}

	var hosted struct {
		SecureURL string `json:"secure_url"`
		URL       string `json:"url"`
		PublicID  string `json:"public_id"`
		Width     int    `json:"width"`
		Height    int    `json:"height"`
	}
	if err := json.Unmarshal(body, &hosted); err != nil {
		return nil, fmt.Errorf("failed to decode upload response: %w", err)
	}

	result := &UploadResult{
		URL:      hosted.SecureURL,
		PublicID: hosted.PublicID,
		Width:    hosted.Width,
		Height:   hosted.Height,
	}
	if result.URL == "" {
		result.URL = hosted.URL
	}
	return result, nil
}
