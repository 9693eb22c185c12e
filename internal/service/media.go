package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-tyre-shop/internal/adapter"
	"github.com/MKhiriev/go-tyre-shop/internal/logger"
	"github.com/MKhiriev/go-tyre-shop/models"
)

// uploadAll pushes files to the media host in order and returns their URLs.
// It stops at the first failure; files not attempted yet stay on disk for the
// caller to clean up.
func uploadAll(ctx context.Context, uploader adapter.MediaUploader, files []models.UploadedFile) ([]string, error) {
	urls := make([]string, 0, len(files))
	for _, file := range files {
		media, err := uploader.Upload(ctx, file)
		if err != nil {
			logger.FromContext(ctx).Err(err).
				Str("func", "uploadAll").
				Str("filename", file.Filename).
				Msg("media upload failed")
			return nil, fmt.Errorf("upload %q: %w", file.Filename, err)
		}
		urls = append(urls, media.URL)
	}
	return urls, nil
}

// uploadFields uploads every field of uploads and returns the URLs keyed by
// field name, in the order the files were sent.
func uploadFields(ctx context.Context, uploader adapter.MediaUploader, uploads models.Uploads) (map[string][]string, error) {
	urls := make(map[string][]string, len(uploads))
	for field, files := range uploads {
		fieldURLs, err := uploadAll(ctx, uploader, files)
		if err != nil {
			return nil, err
		}
		urls[field] = fieldURLs
	}
	return urls, nil
}

// uploadOne uploads file when it is given and returns "" otherwise.
func uploadOne(ctx context.Context, uploader adapter.MediaUploader, file *models.UploadedFile) (string, error) {
	if file == nil {
		return "", nil
	}
	urls, err := uploadAll(ctx, uploader, []models.UploadedFile{*file})
	if err != nil {
		return "", err
	}
	return urls[0], nil
}
