// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter holds the outbound integrations of the shop backend: the
// media host that stores uploaded images, the mail providers used for admin
// notifications and the event broker.
//
// Each integration is optional at runtime. When its credentials are missing
// the constructors return a no-op implementation so that services never need
// to check for nil.
//
// Transport failures are mapped to the sentinel values in errors.go so that
// callers can match them with [errors.Is].
package adapter

import (
	"context"

	"github.com/MKhiriev/go-tyre-shop/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/adapter_mock.go -package=mock

// MediaUploader pushes a spooled upload to the media host.
type MediaUploader interface {
	// Upload sends file to the media host and returns its public URL.
	// The temp file at file.Path is removed before Upload returns, whether
	// the upload succeeded or not.
	Upload(ctx context.Context, file models.UploadedFile) (models.Media, error)
}

// Notifier delivers plain notification mail. Callers treat it as
// best-effort unless the mail is the whole point of the request.
type Notifier interface {
	Send(ctx context.Context, to, subject, body string) error
}

// EventPublisher emits domain events after a committed change.
type EventPublisher interface {
	Publish(ctx context.Context, event models.Event) error
	Close() error
}
