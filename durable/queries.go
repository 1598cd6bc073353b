package durable

import (
	"context"
	"database/sql"
	"fmt"
)

// DBTX is an interface that both sql.DB and sql.Tx implement.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// Queries provides table-aware operations against the kv_store table
// backing the Durable-Store Adapter (spec.md §4.6).
type Queries struct {
	db        DBTX
	tableName string
}

// NewQueries creates a new Queries instance against the given table name.
func NewQueries(db DBTX, tableName string) *Queries {
	return &Queries{db: db, tableName: tableName}
}

var (
	getSQL = `
SELECT key, value, created_at
FROM %s
WHERE key = $1;`

	putSQL = `
INSERT INTO %s (key, value, created_at)
VALUES ($1, $2, now())
ON CONFLICT (key)
DO UPDATE SET
    value = EXCLUDED.value,
    created_at = EXCLUDED.created_at;`

	deleteSQL = `
DELETE FROM %s
WHERE key = $1;`
)

// Get retrieves a single record by key. Returns (nil, nil) on a miss.
func (q *Queries) Get(ctx context.Context, key string) (*Record, error) {
	var (
		query  = fmt.Sprintf(getSQL, q.tableName)
		record Record
		err    = q.db.QueryRowContext(ctx, query, key).Scan(&record.Key, &record.Value, &record.CreatedAt)
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get record: %w", err)
	}
	return &record, nil
}

// Put inserts or overwrites the value for key.
func (q *Queries) Put(ctx context.Context, key string, value []byte) error {
	query := fmt.Sprintf(putSQL, q.tableName)
	if _, err := q.db.ExecContext(ctx, query, key, value); err != nil {
		return fmt.Errorf("failed to put record: %w", err)
	}
	return nil
}

// Delete removes the record for key. Deleting an absent key is not an error.
func (q *Queries) Delete(ctx context.Context, key string) error {
	query := fmt.Sprintf(deleteSQL, q.tableName)
	if _, err := q.db.ExecContext(ctx, query, key); err != nil {
		return fmt.Errorf("failed to delete record: %w", err)
	}
	return nil
}
