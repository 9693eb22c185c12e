package adapter

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-tyre-shop/internal/logger"
	"github.com/MKhiriev/go-tyre-shop/models"
)

// nopUploader rejects every upload. It still owns the temp file.
type nopUploader struct{}

func (nopUploader) Upload(ctx context.Context, file models.UploadedFile) (models.Media, error) {
	removeTemp(ctx, file.Path)
	return models.Media{}, fmt.Errorf("%w: media host is not configured", ErrUploadFailed)
}

// nopNotifier drops mail and logs the subject.
type nopNotifier struct {
	logger *logger.Logger
}

func (n nopNotifier) Send(_ context.Context, to, subject, _ string) error {
	n.logger.Info().Str("to", to).Str("subject", subject).Msg("mail disabled, message dropped")
	return nil
}

type nopPublisher struct{}

func (nopPublisher) Publish(context.Context, models.Event) error { return nil }

func (nopPublisher) Close() error { return nil }
