// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-tyre-shop/internal/logger"
	"github.com/jackc/pgerrcode"
)

// Link describes a parent/child pair kept consistent by the linked create
// and delete helpers: the parent row holds the child ids in an array column,
// the child row holds the parent id in a plain column.
type Link struct {
	ParentTable  string
	ParentColumn string
	ChildTable   string
	ChildColumn  string
}

var (
	// ReviewLink ties reviews to the reviews list of their tyre.
	ReviewLink = Link{ParentTable: "tyres", ParentColumn: "reviews", ChildTable: "reviews", ChildColumn: "tyre_id"}

	// EnquiryLink ties enquiries to the enquiries list of their tyre.
	EnquiryLink = Link{ParentTable: "tyres", ParentColumn: "enquiries", ChildTable: "enquiries", ChildColumn: "tyre_id"}
)

// pushQuery appends $1 to the parent list of row $2. The append happens in
// the UPDATE itself so concurrent pushes serialise on the row lock.
func (l Link) pushQuery() string {
	return fmt.Sprintf(`UPDATE %s SET %s = array_append(%s, $1), updated_at = NOW() WHERE id = $2;`,
		l.ParentTable, l.ParentColumn, l.ParentColumn)
}

// pullQuery removes every occurrence of $1 from the parent list of row $2.
func (l Link) pullQuery() string {
	return fmt.Sprintf(`UPDATE %s SET %s = array_remove(%s, $1), updated_at = NOW() WHERE id = $2;`,
		l.ParentTable, l.ParentColumn, l.ParentColumn)
}

func (l Link) deleteChildQuery() string {
	return fmt.Sprintf(`DELETE FROM %s WHERE id = $1 RETURNING %s;`, l.ChildTable, l.ChildColumn)
}

// childInsert writes the child row inside the linked transaction.
type childInsert func(ctx context.Context, tx *sql.Tx) error

// linkedCreate runs insert and pushes childID into the parent list in one
// transaction. A push that touches no row means the parent disappeared after
// it was resolved: the transaction is rolled back and [ErrParentNotFound]
// returned.
func (db *DB) linkedCreate(ctx context.Context, link Link, parentID, childID string, insert childInsert) error {
	log := logger.FromContext(ctx).With().
		Str("func", "DB.linkedCreate").
		Str("child_table", link.ChildTable).
		Str("parent_id", parentID).
		Str("child_id", childID).
		Logger()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).Msg("failed to begin transaction")
		return db.classify(err, ErrBeginningTransaction)
	}
	defer tx.Rollback()

	if err = insert(ctx, tx); err != nil {
		log.Err(err).Msg("failed to insert child")
		if postgresError(err) == pgerrcode.ForeignKeyViolation {
			return fmt.Errorf("%w: %w", ErrParentNotFound, err)
		}
		return db.classify(err, ErrExecutingStatement)
	}

	result, err := tx.ExecContext(ctx, link.pushQuery(), childID, parentID)
	if err != nil {
		log.Err(err).Msg("failed to push child id into parent list")
		return db.classify(err, ErrExecutingStatement)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		log.Err(err).Msg("failed to read affected rows")
		return db.classify(err, ErrExecutingStatement)
	}
	if affected == 0 {
		log.Warn().Msg("parent vanished before push")
		return ErrParentNotFound
	}

	if err = tx.Commit(); err != nil {
		log.Err(err).Msg("failed to commit transaction")
		return db.classify(err, ErrCommitingTransaction)
	}

	return nil
}

// linkedDelete deletes the child and pulls its id from the parent list in one
// transaction. It returns the parent id the child pointed to, nil when it
// pointed nowhere. A missing parent is not an error.
func (db *DB) linkedDelete(ctx context.Context, link Link, childID string) (*string, error) {
	log := logger.FromContext(ctx).With().
		Str("func", "DB.linkedDelete").
		Str("child_table", link.ChildTable).
		Str("child_id", childID).
		Logger()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).Msg("failed to begin transaction")
		return nil, db.classify(err, ErrBeginningTransaction)
	}
	defer tx.Rollback()

	var parentID sql.NullString
	err = tx.QueryRowContext(ctx, link.deleteChildQuery(), childID).Scan(&parentID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrChildNotFound
	}
	if err != nil {
		log.Err(err).Msg("failed to delete child")
		return nil, db.classify(err, ErrExecutingStatement)
	}

	if !parentID.Valid {
		log.Debug().Msg("child has no parent, skipping pull")
	} else {
		result, pullErr := tx.ExecContext(ctx, link.pullQuery(), childID, parentID.String)
		if pullErr != nil {
			log.Err(pullErr).Msg("failed to pull child id from parent list")
			return nil, db.classify(pullErr, ErrExecutingStatement)
		}
		if affected, _ := result.RowsAffected(); affected == 0 {
			log.Debug().Str("parent_id", parentID.String).Msg("parent is gone, skipping pull")
		}
	}

	if err = tx.Commit(); err != nil {
		log.Err(err).Msg("failed to commit transaction")
		return nil, db.classify(err, ErrCommitingTransaction)
	}

	if !parentID.Valid {
		return nil, nil
	}
	return &parentID.String, nil
}
