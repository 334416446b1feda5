package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/stockcheckout/internal/db"
)

// withTx executes fn within a new transaction when dbtx is a pool,
// or within the existing transaction when dbtx is already a pgx.Tx.
func withTx[T any](ctx context.Context, dbtx db.DBTX, fn func(q *db.Queries) (T, error)) (_ T, txErr error) {
	var zero T

	if tx, ok := dbtx.(pgx.Tx); ok {
		return fn(db.New(tx))
	}

	pool, ok := dbtx.(*pgxpool.Pool)
	if !ok {
		return zero, fmt.Errorf("dbtx is neither pgx.Tx nor *pgxpool.Pool: %T", dbtx)
	}

	tx, err := pool.Begin(ctx)
	if err != nil {
		return zero, fmt.Errorf("pool.Begin: %w", err)
	}

	defer func() {
		if txErr != nil {
			txErr = rollback(ctx, tx, txErr)
		}
	}()

	result, err := fn(db.New(tx))
	if err != nil {
		return zero, mapPgError(err)
	}

	if err := tx.Commit(ctx); err != nil {
		return zero, mapPgError(fmt.Errorf("tx.Commit: %w", err))
	}

	return result, nil
}

func rollback(ctx context.Context, tx pgx.Tx, txErr error) error {
	// the request context may already be cancelled, the rollback must still go out
	rollbackErr := tx.Rollback(context.WithoutCancel(ctx))
	if rollbackErr != nil && !errors.Is(rollbackErr, pgx.ErrTxClosed) {
		return errors.Join(txErr, fmt.Errorf("tx.Rollback: %w", rollbackErr))
	}

	return txErr
}
