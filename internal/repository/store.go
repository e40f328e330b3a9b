package repository

import (
	"context"

	"github.com/iliyamo/entry-exit-logbook/internal/model"
)

// LoadStatus describes how a Load call went.
type LoadStatus int

const (
	// LoadOK means the persisted collection was read and parsed.
	LoadOK LoadStatus = iota
	// LoadMissing means nothing has been persisted yet.
	LoadMissing
	// LoadCorrupt means the resource exists but could not be read or parsed.
	LoadCorrupt
)

func (s LoadStatus) String() string {
	switch s {
	case LoadOK:
		return "ok"
	case LoadMissing:
		return "missing"
	case LoadCorrupt:
		return "corrupt"
	}
	return "unknown"
}

// LoadResult is the outcome of reading the whole collection.  Entries is
// never nil: a missing or corrupt resource yields an empty slice.
type LoadResult struct {
	Entries []model.Entry
	Status  LoadStatus
	Err     error // cause when Status is LoadCorrupt
}

func loaded(entries []model.Entry) LoadResult {
	if entries == nil {
		entries = []model.Entry{}
	}
	return LoadResult{Entries: entries, Status: LoadOK}
}

func missing() LoadResult {
	return LoadResult{Entries: []model.Entry{}, Status: LoadMissing}
}

func corrupt(err error) LoadResult {
	return LoadResult{Entries: []model.Entry{}, Status: LoadCorrupt, Err: err}
}

// Store persists the entire ordered entry collection as one unit.
type Store interface {
	// Load returns the persisted sequence.  It never fails; see LoadResult.
	Load(ctx context.Context) LoadResult
	// Save overwrites the persisted sequence with entries.
	Save(ctx context.Context, entries []model.Entry) error
	// NextID reserves the next value of the monotonically increasing id
	// counter kept next to the collection.  The counter is first raised to
	// floor, so the result is always greater than floor and the raised
	// value is persisted.
	NextID(ctx context.Context, floor int64) (int64, error)
}
