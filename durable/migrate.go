package durable

import (
	"database/sql"
	"fmt"
)

var createKVStoreTableSQL = `
CREATE TABLE IF NOT EXISTS %s (
    key        VARCHAR      NOT NULL,
    value      BYTEA        NOT NULL,
    created_at TIMESTAMPTZ  NOT NULL,

    PRIMARY KEY (key)
);`

// Migrate creates the key-value table if it does not already exist.
func Migrate(db *sql.DB, tableName string) error {
	query := fmt.Sprintf(createKVStoreTableSQL, tableName)
	if _, err := db.Exec(query); err != nil {
		return fmt.Errorf("failed to create %s table: %w", tableName, err)
	}
	return nil
}
