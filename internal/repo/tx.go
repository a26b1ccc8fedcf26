package repo

import (
	"context"

	"github.com/jackc/pgx/v5"
)

// Repos bundles the repositories that share one transaction.
type Repos struct {
	Batches  BatchRepo
	Sections SectionRepo
}

// Transactor runs fn with repositories bound to a single database
// transaction. The transaction commits when fn returns nil and rolls back
// otherwise, so either every write in fn is applied or none is.
type Transactor interface {
	InTx(ctx context.Context, fn func(r Repos) error) error
}

// beginner is satisfied by *pgxpool.Pool, *pgx.Conn, and pgx.Tx (where Begin
// opens a savepoint), so tests can nest the transactor inside a rollback-only tx.
type beginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// pgTransactor is the Postgres implementation of Transactor.
type pgTransactor struct {
	db beginner
}

// NewTransactor constructs a Transactor backed by db.
func NewTransactor(db beginner) Transactor {
	return &pgTransactor{db: db}
}

// InTx begins a transaction, hands fn tx-scoped repos, and commits or rolls back.
func (t *pgTransactor) InTx(ctx context.Context, fn func(r Repos) error) error {
	err := pgx.BeginFunc(ctx, t.db, func(tx pgx.Tx) error {
		return fn(Repos{
			Batches:  NewBatchRepo(tx),
			Sections: NewSectionRepo(tx),
		})
	})
	if err != nil {
		return wrap("repo.Transactor.InTx", err)
	}
	return nil
}
