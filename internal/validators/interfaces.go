// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators checks request payloads before they reach the domain
// services.
//
// Rules live in `validate` struct tags on the payload types in models and
// are enforced by [RequestValidator], which adds the shop specific tags
// "slug" and "imageurl" and understands decimal prices.
package validators

import "context"

// Validator validates arbitrary payloads. When field names are passed only
// those fields (Go field names, dotted for nested structs) are checked.
type Validator interface {
	Validate(ctx context.Context, obj any, fields ...string) error
}
