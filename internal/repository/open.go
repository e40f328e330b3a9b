package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/iliyamo/entry-exit-logbook/internal/config"
	"github.com/iliyamo/entry-exit-logbook/internal/database"
)

// Open builds the Store selected by cfg.Driver.  The returned close function
// releases the database handle for SQL drivers and is a no-op otherwise.
func Open(ctx context.Context, cfg config.StoreConfig) (Store, func() error, error) {
	noop := func() error { return nil }

	var (
		db  *sql.DB
		err error
	)
	switch cfg.Driver {
	case config.DriverFile, "":
		return NewFileStore(cfg.DataFile), noop, nil
	case config.DriverSQLite:
		db, err = database.OpenSQLite(cfg.SQLitePath)
	case config.DriverMySQL:
		db, err = database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	default:
		return nil, noop, fmt.Errorf("%w: %q", ErrUnknownDriver, cfg.Driver)
	}
	if err != nil {
		return nil, noop, fmt.Errorf("open %s store: %w", cfg.Driver, err)
	}
	if err := database.Migrate(ctx, db); err != nil {
		_ = db.Close()
		return nil, noop, err
	}
	return NewSQLStore(db), db.Close, nil
}
