package database

import (
	"context"
	"database/sql"
	"fmt"
)

// The statements stick to the subset of SQL that MySQL and SQLite both
// accept so one schema serves either driver.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS entries (
		position     BIGINT       NOT NULL PRIMARY KEY,
		id           BIGINT       NOT NULL,
		entry_type   VARCHAR(16)  NOT NULL,
		person_name  VARCHAR(255) NOT NULL,
		place_from   VARCHAR(255) NOT NULL,
		place_to     VARCHAR(255) NOT NULL,
		recorded_at  VARCHAR(64)  NOT NULL,
		time_display VARCHAR(32)  NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS entry_sequence (
		id      INT    NOT NULL PRIMARY KEY,
		last_id BIGINT NOT NULL
	)`,
}

// Migrate creates the logbook tables when they do not exist yet.
func Migrate(ctx context.Context, db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i+1, err)
		}
	}
	return nil
}
