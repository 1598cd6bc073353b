package durable

import "time"

// Record represents a single row in the kv_store table.
type Record struct {
	Key       string
	Value     []byte
	CreatedAt time.Time
}
