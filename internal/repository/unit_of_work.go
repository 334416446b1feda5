package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/stockcheckout/internal/port"
)

type unitOfWork struct {
	pool        *pgxpool.Pool
	lockTimeout time.Duration
}

// NewUnitOfWork returns a port.UnitOfWork over pool. A positive lockTimeout
// bounds how long a statement inside the transaction waits for a row lock,
// a lock wait past it fails with domain.ErrConflict.
func NewUnitOfWork(pool *pgxpool.Pool, lockTimeout time.Duration) port.UnitOfWork {
	return &unitOfWork{
		pool:        pool,
		lockTimeout: lockTimeout,
	}
}

func (u *unitOfWork) Do(ctx context.Context, fn func(ctx context.Context, repos port.Repositories) error) (txErr error) {
	tx, err := u.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("pool.Begin: %w", err)
	}

	defer func() {
		if txErr != nil {
			txErr = rollback(ctx, tx, txErr)
		}
	}()

	if u.lockTimeout > 0 {
		if _, err := tx.Exec(ctx, "SELECT set_config('lock_timeout', $1, true)", lockTimeoutSetting(u.lockTimeout)); err != nil {
			return fmt.Errorf("set lock_timeout: %w", err)
		}
	}

	if err := fn(ctx, reposWithTx(tx)); err != nil {
		return mapPgError(err)
	}

	if err := tx.Commit(ctx); err != nil {
		return mapPgError(fmt.Errorf("tx.Commit: %w", err))
	}

	return nil
}

func reposWithTx(tx pgx.Tx) port.Repositories {
	return port.Repositories{
		Products: NewProductWithTx(tx),
		Carts:    NewCartWithTx(tx),
		Drafts:   NewDraftWithTx(tx),
		Orders:   NewOrderWithTx(tx),
		Methods:  NewMethodWithTx(tx),
	}
}

func lockTimeoutSetting(d time.Duration) string {
	return fmt.Sprintf("%dms", max(d.Milliseconds(), 1))
}
