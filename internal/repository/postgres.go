// Package repository provides PostgreSQL persistence for principals and fleet
// entities. Every operation is a single-row statement, or a short transaction
// for read-modify-write updates.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/atinyakov/FleetKeeper/internal/models"
	"github.com/lib/pq"
)

var (
	// ErrNotFound is returned when no row matches the key.
	ErrNotFound = errors.New("not found")
	// ErrConflict is returned on a unique constraint violation.
	ErrConflict = errors.New("conflict")
	// ErrReference is returned when a foreign key is missing or a row is still referenced.
	ErrReference = errors.New("reference violation")
)

// scanner is implemented by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// translate maps driver errors onto the repository sentinels.
func translate(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code.Name() {
		case "unique_violation":
			return fmt.Errorf("%w: %s", ErrConflict, pqErr.Constraint)
		case "foreign_key_violation":
			return fmt.Errorf("%w: %s", ErrReference, pqErr.Constraint)
		}
	}
	return err
}

// withTx runs fn inside a transaction, committing on success.
func withTx(ctx context.Context, db *sql.DB, fn func(tx *sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// columns renders a select list.
func columns(cols []string) string {
	return strings.Join(cols, ", ")
}

// queryList runs a paged SELECT and scans every row with scan.
func queryList[T any](ctx context.Context, db *sql.DB, query string, page models.Page, scan func(scanner) (*T, error)) ([]T, error) {
	rows, err := db.QueryContext(ctx, query, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []T{}
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		out = append(out, *item)
	}
	return out, rows.Err()
}
