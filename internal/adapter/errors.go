package adapter

import "errors"

var (
	// ErrUploadFailed is returned when the media host rejects an upload or
	// cannot be reached.
	ErrUploadFailed = errors.New("media upload failed")

	// ErrEmptyUpload is returned for a zero-byte or missing temp file.
	ErrEmptyUpload = errors.New("uploaded file is empty")

	// ErrSendFailed is returned when a mail provider refuses a message.
	ErrSendFailed = errors.New("notification delivery failed")

	// ErrNoRecipient is returned when neither the caller nor the provider
	// config names a recipient.
	ErrNoRecipient = errors.New("notification recipient is empty")

	ErrPublishFailed = errors.New("event publish failed")
)
