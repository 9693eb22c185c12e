// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/MKhiriev/go-tyre-shop/internal/config"
	"github.com/MKhiriev/go-tyre-shop/internal/logger"
	"github.com/MKhiriev/go-tyre-shop/internal/utils"
	"github.com/MKhiriev/go-tyre-shop/models"
)

const (
	defaultCloudinaryURL = "https://api.cloudinary.com"
	uploadTimeout        = 60 * time.Second
)

type cloudinaryUploader struct {
	client *utils.HTTPClient
	cfg    config.Cloudinary
	now    func() time.Time

	logger *logger.Logger
}

// NewCloudinaryUploader returns a [MediaUploader] that performs signed
// uploads against the Cloudinary upload API.
func NewCloudinaryUploader(cfg config.Cloudinary, logger *logger.Logger) MediaUploader {
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = defaultCloudinaryURL
	}

	return &cloudinaryUploader{
		client: utils.NewHTTPClient(utils.WithBaseURL(baseURL), utils.WithTimeout(uploadTimeout)),
		cfg:    cfg,
		now:    time.Now,
		logger: logger,
	}
}

type cloudinaryResult struct {
	SecureURL string `json:"secure_url"`
	PublicID  string `json:"public_id"`
}

type cloudinaryError struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Upload implements [MediaUploader]. The resource type is detected by the
// host, so images and videos go through the same call.
func (c *cloudinaryUploader) Upload(ctx context.Context, file models.UploadedFile) (models.Media, error) {
	defer removeTemp(ctx, file.Path)

	info, err := os.Stat(file.Path)
	if err != nil {
		return models.Media{}, fmt.Errorf("%w: %w", ErrEmptyUpload, err)
	}
	if info.Size() == 0 {
		return models.Media{}, ErrEmptyUpload
	}

	params := map[string]string{
		"timestamp": strconv.FormatInt(c.now().Unix(), 10),
	}
	if c.cfg.Folder != "" {
		params["folder"] = c.cfg.Folder
	}
	params["signature"] = utils.SignParams(params, c.cfg.APISecret)
	params["api_key"] = c.cfg.APIKey

	var (
		result  cloudinaryResult
		failure cloudinaryError
	)
	resp, err := c.client.R().
		SetContext(ctx).
		SetFile("file", file.Path).
		SetFormData(params).
		SetResult(&result).
		SetError(&failure).
		Post("/v1_1/" + c.cfg.CloudName + "/auto/upload")
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "cloudinaryUploader.Upload").Str("filename", file.Filename).Msg("media host unreachable")
		return models.Media{}, fmt.Errorf("%w: %w", ErrUploadFailed, err)
	}
	if resp.StatusCode() != http.StatusOK {
		msg := failure.Error.Message
		if msg == "" {
			msg = resp.Status()
		}
		logger.FromContext(ctx).Error().
			Str("func", "cloudinaryUploader.Upload").
			Int("status", resp.StatusCode()).
			Str("filename", file.Filename).
			Msg(msg)
		return models.Media{}, fmt.Errorf("%w: %s", ErrUploadFailed, msg)
	}
	if result.SecureURL == "" {
		return models.Media{}, fmt.Errorf("%w: response without url", ErrUploadFailed)
	}

	return models.Media{URL: result.SecureURL, PublicID: result.PublicID}, nil
}

// removeTemp deletes a spooled upload. A file that is already gone is fine.
func removeTemp(ctx context.Context, path string) {
	if path == "" {
		return
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		logger.FromContext(ctx).Warn().Err(err).Str("func", "removeTemp").Str("path", path).Msg("temp upload was not removed")
	}
}
