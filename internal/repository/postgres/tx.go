package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"bukusaku/internal/repository"
)

type txContextKey struct{}

// Transactor implements repository.Transactor on database/sql. The open
// transaction travels in the context, so every repository in this package
// joins it transparently via querier.
type Transactor struct {
	db *sql.DB
}

// NewTransactor creates a Transactor bound to the given database handle.
func NewTransactor(db *sql.DB) *Transactor {
	return &Transactor{db: db}
}

var _ repository.Transactor = (*Transactor)(nil)

// WithinTx begins a transaction, runs fn with it attached to the context and
// commits. Any error from fn rolls the whole unit back. Nested calls reuse
// the outer transaction.
func (t *Transactor) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txContextKey{}).(*sql.Tx); ok {
		return fn(ctx)
	}

	tx, err := t.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	if err := fn(context.WithValue(ctx, txContextKey{}, tx)); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

// querier is the subset of *sql.DB / *sql.Tx the repositories use.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// q resolves the querier for a context: the in-flight transaction when one is
// attached, the plain handle otherwise.
func q(ctx context.Context, db *sql.DB) querier {
	if tx, ok := ctx.Value(txContextKey{}).(*sql.Tx); ok {
		return tx
	}
	return db
}
