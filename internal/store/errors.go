// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrEmailAlreadyExists is returned when a user is registered or updated
	// with an email another account already uses.
	ErrEmailAlreadyExists = errors.New("email already exists")

	// ErrNoUserWasFound is returned when a query expected to match one user
	// produces an empty result set.
	ErrNoUserWasFound = errors.New("no user was found")

	// ErrTyreNotFound is returned when the addressed tyre does not exist.
	ErrTyreNotFound = errors.New("tyre not found")

	// ErrSlugAlreadyExists is returned when a tyre is saved with a slug that
	// another tyre already uses.
	ErrSlugAlreadyExists = errors.New("tyre with this slug already exists")

	// ErrReviewNotFound is returned when the addressed review does not exist.
	ErrReviewNotFound = errors.New("review not found")

	// ErrEnquiryNotFound is returned when the addressed enquiry does not exist.
	ErrEnquiryNotFound = errors.New("enquiry not found")

	// ErrParentNotFound is returned by a linked create when the parent row is
	// gone by the time the child id is pushed into its list.
	ErrParentNotFound = errors.New("parent document not found")

	// ErrChildNotFound is returned by a linked delete when the child row does
	// not exist.
	ErrChildNotFound = errors.New("child document not found")

	// ErrSectionNotFound is returned when a singleton section has not been
	// created yet.
	ErrSectionNotFound = errors.New("section not found")

	// ErrSectionAlreadyExists is returned when a singleton section is created
	// twice. The unique index on the section kind makes this deterministic.
	ErrSectionAlreadyExists = errors.New("section already exists")

	// ErrItemNotFound is returned when a showcase item does not exist.
	ErrItemNotFound = errors.New("item not found")

	// ErrGrowthNotFound is returned when no growth record exists for a year.
	ErrGrowthNotFound = errors.New("growth record not found")

	// ErrGrowthAlreadyExists is returned when a year already has a record.
	ErrGrowthAlreadyExists = errors.New("growth record for this year already exists")

	// ErrAlreadySubscribed is returned when the email is already subscribed.
	ErrAlreadySubscribed = errors.New("email is already subscribed")

	// ErrSubscriberNotFound is returned when removing an unknown subscriber.
	ErrSubscriberNotFound = errors.New("subscriber not found")

	// ErrCacheMiss is returned by a [SectionCache] lookup that found nothing.
	ErrCacheMiss = errors.New("cache miss")
)

// Storage-level failure classes. Repositories wrap driver errors in one of
// these so that services can decide on retries without inspecting driver
// codes.
var (
	// ErrTransactionConflict wraps serialization failures, deadlocks and lock
	// timeouts. The operation may succeed when attempted again.
	ErrTransactionConflict = errors.New("transaction conflict")

	// ErrStorageUnavailable wraps connection-level failures. It is fatal for
	// the request.
	ErrStorageUnavailable = errors.New("storage unavailable")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT or similar
	// read-only query against the database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrBeginningTransaction is returned when the database driver cannot
	// start a new transaction.
	ErrBeginningTransaction = errors.New("failed to begin transaction")

	// ErrCommitingTransaction is returned when committing an open transaction
	// fails. The transaction is considered rolled back at this point.
	ErrCommitingTransaction = errors.New("failed to commit transaction")

	// ErrExecutingStatement is returned when executing a DML statement
	// (INSERT, UPDATE, DELETE) fails.
	ErrExecutingStatement = errors.New("failed to executing statement")

	// ErrScanningRow is returned when scanning a single result row fails.
	ErrScanningRow = errors.New("failed to scan row")

	// ErrScanningRows is returned when scanning during multi-row iteration
	// fails, typically mid-result-set.
	ErrScanningRows = errors.New("failed to scan rows")

	// ErrEncodingDocument is returned when a JSON document body cannot be
	// encoded or decoded.
	ErrEncodingDocument = errors.New("failed to encode document")
)
