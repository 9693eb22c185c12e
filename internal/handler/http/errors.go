// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

// Sentinel errors of the transport layer. Callers can match against them
// with [errors.Is].
var (
	// ErrNoToken is returned by the auth gate when neither the AccessToken
	// cookie nor a bearer "Authorization" header is present.
	ErrNoToken = errors.New("no token provided")

	// ErrInvalidBody is returned when a request body is not valid JSON for
	// the expected schema.
	ErrInvalidBody = errors.New("invalid request body")

	// ErrInvalidPathParam is returned when a numeric path parameter cannot be
	// parsed.
	ErrInvalidPathParam = errors.New("invalid path parameter")

	// ErrUploadTooLarge is returned when a multipart request exceeds
	// [maxUploadBytes].
	ErrUploadTooLarge = errors.New("upload too large")
)
