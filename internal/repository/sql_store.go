package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/iliyamo/entry-exit-logbook/internal/model"
)

// SQLStore keeps the collection in the entries table, ordered by its
// position column, and the id counter in the single-row entry_sequence
// table.  The queries are plain enough to run on both MySQL and SQLite;
// run database.Migrate before use.
type SQLStore struct {
	db *sql.DB
}

// NewSQLStore constructs an SQLStore with the provided DB handle.
func NewSQLStore(db *sql.DB) *SQLStore {
	return &SQLStore{db: db}
}

// Load selects every row in stored order.  Query or scan failures are
// reported as LoadCorrupt.
func (s *SQLStore) Load(ctx context.Context) LoadResult {
	const q = `SELECT id, entry_type, person_name, place_from, place_to, recorded_at, time_display
	           FROM entries ORDER BY position`
	rows, err := s.db.QueryContext(ctx, q)
	if err != nil {
		return corrupt(fmt.Errorf("listing entries: %w", err))
	}
	defer rows.Close()

	out := []model.Entry{}
	for rows.Next() {
		var (
			e        model.Entry
			typ      string
			recorded string
		)
		if err := rows.Scan(&e.ID, &typ, &e.PersonName, &e.PlaceFrom, &e.PlaceTo, &recorded, &e.TimeDisplay); err != nil {
			return corrupt(fmt.Errorf("scanning entry: %w", err))
		}
		ts, err := model.ParseTimestamp(recorded)
		if err != nil {
			return corrupt(fmt.Errorf("entry %d: %w", e.ID, err))
		}
		e.Type = model.EntryType(typ)
		e.Timestamp = ts
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return corrupt(fmt.Errorf("listing entries: %w", err))
	}
	if len(out) == 0 {
		return missing()
	}
	return loaded(out)
}

// Save replaces every row inside one transaction.
func (s *SQLStore) Save(ctx context.Context, entries []model.Entry) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM entries`); err != nil {
		return fmt.Errorf("clearing entries: %w", err)
	}

	const qInsert = `INSERT INTO entries
		(position, id, entry_type, person_name, place_from, place_to, recorded_at, time_display)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	for i, e := range entries {
		if _, err = tx.ExecContext(ctx, qInsert,
			i, e.ID, string(e.Type), e.PersonName, e.PlaceFrom, e.PlaceTo, e.Timestamp.String(), e.TimeDisplay,
		); err != nil {
			return fmt.Errorf("inserting entry %d: %w", e.ID, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// NextID raises the counter row to floor, increments it and returns the new
// value.  The row is created on first use.
func (s *SQLStore) NextID(ctx context.Context, floor int64) (id int64, err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	res, err := tx.ExecContext(ctx,
		`UPDATE entry_sequence SET last_id = CASE WHEN last_id > ? THEN last_id ELSE ? END + 1 WHERE id = 1`,
		floor, floor)
	if err != nil {
		return 0, fmt.Errorf("bumping id counter: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		if _, err = tx.ExecContext(ctx, `INSERT INTO entry_sequence (id, last_id) VALUES (1, ?)`, max(floor, 0)+1); err != nil {
			return 0, fmt.Errorf("creating id counter: %w", err)
		}
	}
	if err = tx.QueryRowContext(ctx, `SELECT last_id FROM entry_sequence WHERE id = 1`).Scan(&id); err != nil {
		return 0, fmt.Errorf("reading id counter: %w", err)
	}
	if err = tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	return id, nil
}
