// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-tyre-shop/internal/logger"
	"github.com/MKhiriev/go-tyre-shop/internal/store"
	"github.com/MKhiriev/go-tyre-shop/internal/utils"
)

// childLinker drives the linked create and delete of one child kind of a
// tyre. The tyre is resolved before any transaction opens; the transaction
// itself lives in the store and is attempted again on conflicts.
type childLinker[T any] struct {
	tyres    store.TyreRepository
	children store.ChildRepository[T]
	policy   retryPolicy
}

// create stores child and links it to tyreID.
//
// Errors:
//   - store.ErrTyreNotFound if tyreID is malformed, unknown, or the tyre is
//     removed while the transaction runs.
//   - store.ErrTransactionConflict once the retry budget is spent.
func (l childLinker[T]) create(ctx context.Context, tyreID string, child T) (T, error) {
	log := logger.FromContext(ctx)
	var zero T

	if !utils.IsUUID(tyreID) {
		return zero, store.ErrTyreNotFound
	}

	exists, err := l.tyres.TyreExists(ctx, tyreID)
	if err != nil {
		log.Err(err).Str("func", "childLinker.create").Str("tyre_id", tyreID).Msg("tyre lookup failed")
		return zero, fmt.Errorf("tyre lookup failed: %w", err)
	}
	if !exists {
		return zero, store.ErrTyreNotFound
	}

	created, err := withConflictRetry(ctx, l.policy, func(ctx context.Context) (T, error) {
		return l.children.CreateLinked(ctx, child)
	})
	if errors.Is(err, store.ErrParentNotFound) {
		return zero, fmt.Errorf("%w: %w", store.ErrTyreNotFound, err)
	}
	if err != nil {
		log.Err(err).Str("func", "childLinker.create").Str("tyre_id", tyreID).Msg("linked create failed")
		return zero, err
	}

	return created, nil
}

// delete removes the child and unlinks it from its tyre, if the tyre still
// exists. It returns the tyre id the child pointed to. notFound is returned
// for a malformed id so that it reads like any other miss.
func (l childLinker[T]) delete(ctx context.Context, childID string, notFound error) (*string, error) {
	if !utils.IsUUID(childID) {
		return nil, notFound
	}

	tyreID, err := withConflictRetry(ctx, l.policy, func(ctx context.Context) (*string, error) {
		return l.children.DeleteLinked(ctx, childID)
	})
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "childLinker.delete").Str("child_id", childID).Msg("linked delete failed")
		return nil, err
	}

	return tyreID, nil
}
