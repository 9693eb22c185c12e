// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"time"

	"github.com/MKhiriev/go-tyre-shop/internal/config"
	"github.com/MKhiriev/go-tyre-shop/internal/logger"
	"github.com/MKhiriev/go-tyre-shop/internal/store"
	"github.com/sethvargo/go-retry"
)

// retryPolicy bounds how often a linked mutation is attempted when the
// database reports a transaction conflict.
type retryPolicy struct {
	// attempts is the total number of tries, the first one included.
	attempts uint64
	backoff  time.Duration
}

func newRetryPolicy(cfg config.Workers) retryPolicy {
	p := retryPolicy{attempts: cfg.RetryAttempts, backoff: cfg.RetryBackoff}
	if p.attempts == 0 {
		p.attempts = config.DefaultRetryAttempts
	}
	if p.backoff <= 0 {
		p.backoff = config.DefaultRetryBackoff
	}
	return p
}

// withConflictRetry runs op until it succeeds, fails with an error other
// than [store.ErrTransactionConflict], or the attempts run out. The last
// conflict is returned once the budget is spent.
func withConflictRetry[T any](ctx context.Context, policy retryPolicy, op func(ctx context.Context) (T, error)) (T, error) {
	log := logger.FromContext(ctx)

	var (
		result  T
		attempt uint64
	)

	backoff := retry.WithMaxRetries(policy.attempts-1, retry.NewExponential(policy.backoff))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		attempt++

		value, err := op(ctx)
		if errors.Is(err, store.ErrTransactionConflict) {
			log.Warn().Err(err).
				Str("func", "withConflictRetry").
				Uint64("attempt", attempt).
				Uint64("max_attempts", policy.attempts).
				Msg("transaction conflict")
			return retry.RetryableError(err)
		}
		if err != nil {
			return err
		}

		result = value
		return nil
	})
	if err != nil {
		var zero T
		return zero, err
	}

	return result, nil
}
