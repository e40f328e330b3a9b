// Package repository defines error types that are reused across the
// logbook stores.  Read failures are never errors here: they are reported
// through LoadResult so callers can fall back to an empty collection.
package repository

import "errors"

// ErrUnknownDriver is returned by Open when the configured store driver is
// not one of file, sqlite or mysql.
var ErrUnknownDriver = errors.New("unknown store driver")
