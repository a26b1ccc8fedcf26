// Package testutil provides the database helpers shared by the integration
// tests of the batch directory. Every helper skips the calling test when
// TEST_DATABASE_URL is unset, so `go test ./...` stays green without Postgres.
package testutil

import (
	"context"
	"database/sql"
	"os"
	"sync"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"

	"github.com/nextSaimon/students-details/migrations"
)

// DSNEnv names the environment variable holding the test database DSN.
const DSNEnv = "TEST_DATABASE_URL"

var (
	schemaOnce sync.Once
	schemaErr  error
)

// NewTx returns a transaction on a migrated test database. The transaction
// is rolled back when the test finishes, so tests can write freely without
// cleanup SQL. Pass it to repo.NewBatchRepo, repo.NewSectionRepo or
// repo.NewTransactor (which nests savepoints inside it).
func NewTx(t *testing.T) pgx.Tx {
	t.Helper()
	pool := NewPool(t)

	tx, err := pool.Begin(context.Background())
	if err != nil {
		t.Fatalf("testutil.NewTx: begin: %v", err)
	}
	t.Cleanup(func() { _ = tx.Rollback(context.Background()) })
	return tx
}

// NewPool returns a pool on the test database with the embedded migrations
// applied. Migrations run once per test binary. The pool is closed when the
// test finishes.
func NewPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := requireDSN(t)

	pool, err := pgxpool.New(context.Background(), dsn)
	if err != nil {
		t.Fatalf("testutil.NewPool: open pool: %v", err)
	}
	t.Cleanup(pool.Close)

	if err := pool.Ping(context.Background()); err != nil {
		t.Fatalf("testutil.NewPool: ping: %v", err)
	}

	schemaOnce.Do(func() {
		db := stdlib.OpenDBFromPool(pool)
		defer db.Close()
		_, schemaErr = migrations.Up(context.Background(), db)
	})
	if schemaErr != nil {
		t.Fatalf("testutil.NewPool: migrate: %v", schemaErr)
	}
	return pool
}

// NewSQLDB returns a database/sql handle on the test database without
// touching the schema, for tests that drive goose themselves.
func NewSQLDB(t *testing.T) *sql.DB {
	t.Helper()
	dsn := requireDSN(t)

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		t.Fatalf("testutil.NewSQLDB: open: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := db.PingContext(context.Background()); err != nil {
		t.Fatalf("testutil.NewSQLDB: ping: %v", err)
	}
	return db
}

func requireDSN(t *testing.T) string {
	t.Helper()
	dsn := os.Getenv(DSNEnv)
	if dsn == "" {
		t.Skip(DSNEnv + " not set; skipping integration test")
	}
	return dsn
}
