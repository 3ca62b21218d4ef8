package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jswan/mercantile/internal/domain"
	"github.com/jswan/mercantile/internal/service"
)

// DBTX is the subset of pgx operations shared by *pgxpool.Pool and pgx.Tx.
// Every query in this package runs through it, so the same code serves both
// pooled and transaction-bound stores.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Store implements service.Store over PostgreSQL.
type Store struct {
	db   DBTX
	pool *pgxpool.Pool // nil when transaction-bound
}

// Compile-time check that Store implements service.Store.
var _ service.Store = (*Store)(nil)

// NewStore creates a pool-backed store.
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{db: pool, pool: pool}
}

// WithinTx runs fn against a transaction-bound store. The transaction
// commits when fn returns nil and rolls back otherwise. Transactions are
// flat only.
func (s *Store) WithinTx(ctx context.Context, fn func(service.Store) error) error {
	if s.pool == nil {
		return domain.Internal(nil, "store.within_tx", "nested transactions are not supported")
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return domain.Internal(err, "store.within_tx", "failed to begin transaction")
	}
	defer tx.Rollback(ctx)

	if err := fn(&Store{db: tx}); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return domain.Internal(err, "store.within_tx", "failed to commit transaction")
	}
	return nil
}
