package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"
)

// MaxImageBytes is the upload cap checked before any network call.
const MaxImageBytes = 5 << 20 // 5 MB

var (
	ErrImageTooLarge       = errors.New("image exceeds the 5 MB upload limit")
	ErrUploadNotConfigured = errors.New("image host is not configured")
)

// ImageService talks to the hosted image store: a single unsigned-upload
// endpoint that takes a multipart file plus a preset name and answers with
// JSON carrying either a secure URL or an error message.
type ImageService struct {
	Client    *http.Client
	UploadURL string
	Preset    string
}

func NewImageService(uploadURL, preset string) *ImageService {
	return &ImageService{
		Client:    &http.Client{Timeout: 60 * time.Second},
		UploadURL: uploadURL,
		Preset:    preset,
	}
}

// Configured reports whether an upload endpoint was provided.
func (s *ImageService) Configured() bool {
	return s.UploadURL != ""
}

type uploadResponse struct {
	SecureURL string `json:"secure_url"`
	Error     *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Upload sends one file to the image host and returns its public URL.
// Oversized files are rejected locally; nothing is sent.
func (s *ImageService) Upload(ctx context.Context, file io.Reader, size int64, filename string) (string, error) {
	if !s.Configured() {
		return "", ErrUploadNotConfigured
	}
	if size > MaxImageBytes {
		return "", ErrImageTooLarge
	}

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return "", fmt.Errorf("failed to build upload body: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return "", fmt.Errorf("failed to read image file: %w", err)
	}
	if err := writer.WriteField("upload_preset", s.Preset); err != nil {
		return "", fmt.Errorf("failed to build upload body: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("failed to build upload body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.UploadURL, &body)
	if err != nil {
		return "", fmt.Errorf("failed to create upload request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := s.Client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to reach image host: %w", err)
	}
	defer resp.Body.Close()

	var apiResp uploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return "", fmt.Errorf("failed to decode image host response (status %d): %w", resp.StatusCode, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 || apiResp.Error != nil {
		msg := "upload failed"
		if apiResp.Error != nil && apiResp.Error.Message != "" {
			msg = apiResp.Error.Message
		}
		return "", fmt.Errorf("image host returned status %d: %s", resp.StatusCode, msg)
	}
	if apiResp.SecureURL == "" {
		return "", errors.New("image host returned no URL")
	}

	return apiResp.SecureURL, nil
}
