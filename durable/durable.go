// Package durable implements the Durable-Store Adapter (spec.md §4.6): the
// write-through, synchronous-on-write persistence layer backing every SET
// and DELETE the cluster accepts. A write that cannot be durably applied is
// never reflected in a node's Local Store.
package durable

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
)

const defaultTableName = "kv_store"

// Store is the Durable-Store Adapter's Postgres-backed implementation.
type Store struct {
	db      *sql.DB
	queries *Queries
}

// Open connects to Postgres at connURL, migrates the kv_store table, and
// returns a ready Store.
func Open(connURL string) (*Store, error) {
	db, err := sql.Open("postgres", connURL)
	if err != nil {
		return nil, fmt.Errorf("durable: open: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("durable: ping: %w", err)
	}
	if err := Migrate(db, defaultTableName); err != nil {
		return nil, fmt.Errorf("durable: migrate: %w", err)
	}
	return &Store{db: db, queries: NewQueries(db, defaultTableName)}, nil
}

// NewWithDB wraps an already-open *sql.DB, used by tests against an
// isolated schema (see SetupTestDatabase).
func NewWithDB(db *sql.DB) (*Store, error) {
	if err := Migrate(db, defaultTableName); err != nil {
		return nil, fmt.Errorf("durable: migrate: %w", err)
	}
	return &Store{db: db, queries: NewQueries(db, defaultTableName)}, nil
}

// Put writes key/value durably, bounded by ctx's deadline.
func (s *Store) Put(ctx context.Context, key string, value []byte) error {
	return s.queries.Put(ctx, key, value)
}

// Delete removes key durably. Deleting an absent key is not an error.
func (s *Store) Delete(ctx context.Context, key string) error {
	return s.queries.Delete(ctx, key)
}

// Get returns the durable value for key, or (nil, false) on a miss. Used on
// node restart to lazy-load a key the Local Store no longer holds, before
// falling through to the Legacy-Source Adapter.
func (s *Store) Get(ctx context.Context, key string) ([]byte, bool, error) {
	record, err := s.queries.Get(ctx, key)
	if err != nil {
		return nil, false, err
	}
	if record == nil {
		return nil, false, nil
	}
	return record.Value, true, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}
