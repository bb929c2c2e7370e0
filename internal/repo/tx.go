package repo

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Repos bundles the transaction-scoped repositories handed to an InTx
// callback. Every repo in the bundle shares the same pgx.Tx, so all their
// statements commit or roll back together.
type Repos struct {
	Trips   TripRepo
	Catalog CatalogRepo
	Users   UserRepo
}

// TxRunner runs a function inside a single database transaction.
// The service layer depends on this interface rather than *pgxpool.Pool so
// its transactional logic can be unit-tested with an in-memory fake that
// simply invokes the callback.
type TxRunner interface {
	// InTx begins a transaction, calls fn with repos bound to it, and commits
	// if fn returns nil. Any error from fn (or from commit) rolls everything
	// back and is returned to the caller.
	InTx(ctx context.Context, fn func(ctx context.Context, r Repos) error) error
}

// pgTxRunner is the pgxpool-backed implementation of TxRunner.
type pgTxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner constructs a TxRunner on top of the given connection pool.
func NewTxRunner(pool *pgxpool.Pool) TxRunner {
	return &pgTxRunner{pool: pool}
}

// InTx implements TxRunner.
func (t *pgTxRunner) InTx(ctx context.Context, fn func(ctx context.Context, r Repos) error) error {
	tx, err := t.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("repo.TxRunner.InTx: begin: %w", err)
	}
	// Rollback after a successful commit is a no-op.
	defer tx.Rollback(ctx)

	bundle := Repos{
		Trips:   NewTripRepo(tx),
		Catalog: NewCatalogRepo(tx),
		Users:   NewUserRepo(tx),
	}

	if err := fn(ctx, bundle); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("repo.TxRunner.InTx: commit: %w", err)
	}
	return nil
}
