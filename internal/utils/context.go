// Package utils provides general-purpose helper utilities
// used across different parts of the application.
// Includes tools for working with context, type-safe keys, request signing,
// HTTP response writing, HTTP client initialization, JWT token generation
// and validation, and id generation.
package utils

import (
	"context"

	"github.com/MKhiriev/go-tyre-shop/models"
)

// contextKey is a private type for context keys.
// Using a dedicated type instead of a plain string prevents key collisions
// with other packages that may use string-based keys in the context.
type contextKey string

// String returns the string representation of the context key.
// Implements the fmt.Stringer interface.
func (c contextKey) String() string {
	return string(c)
}

// IdentityCtxKey is the key under which the auth gate stores the
// authenticated [models.Identity].
var IdentityCtxKey = contextKey("identity")

// WithIdentity returns a copy of ctx carrying id.
func WithIdentity(ctx context.Context, id models.Identity) context.Context {
	return context.WithValue(ctx, IdentityCtxKey, id)
}

// GetIdentityFromContext retrieves the authenticated caller.
//
// ok is false when the request did not pass the auth gate.
func GetIdentityFromContext(ctx context.Context) (models.Identity, bool) {
	id, ok := ctx.Value(IdentityCtxKey).(models.Identity)
	return id, ok
}

// GetUserIDFromContext is a shorthand for the identity's ID.
func GetUserIDFromContext(ctx context.Context) (string, bool) {
	id, ok := GetIdentityFromContext(ctx)
	if !ok || id.ID == "" {
		return "", false
	}
	return id.ID, true
}
