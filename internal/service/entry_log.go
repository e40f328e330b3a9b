// Package service holds the entry log: validation, id assignment and the
// load-modify-save cycle around the configured store.
package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/iliyamo/entry-exit-logbook/internal/model"
	"github.com/iliyamo/entry-exit-logbook/internal/queue"
	"github.com/iliyamo/entry-exit-logbook/internal/repository"
	"github.com/iliyamo/entry-exit-logbook/internal/stats"
)

// publishTimeout bounds how long a write waits on the broker.
const publishTimeout = 5 * time.Second

// InvalidTypeError is returned by Add when the type is neither entry nor
// exit.  Nothing is persisted in that case.
type InvalidTypeError struct {
	Type string
}

func (e *InvalidTypeError) Error() string {
	return fmt.Sprintf("invalid entry type %q", e.Type)
}

// EventPublisher receives one event per successful mutation.
type EventPublisher interface {
	Publish(ctx context.Context, ev queue.EntryEvent) error
}

// AddInput carries the fields of a new record.  Defaults for absent fields
// are applied by the transport layer.
type AddInput struct {
	Type       string
	PersonName string
	PlaceFrom  string
	PlaceTo    string
}

// EntryLog appends, removes and lists entries.  Every mutation runs in one
// critical section around load, modify and save, so concurrent requests
// cannot lose each other's writes or draw the same id.
type EntryLog struct {
	store repository.Store
	pub   EventPublisher
	log   *zap.SugaredLogger
	now   func() time.Time

	mu sync.Mutex
}

// Option customizes an EntryLog.
type Option func(*EntryLog)

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(l *EntryLog) { l.now = now }
}

// WithPublisher enables event publishing.
func WithPublisher(p EventPublisher) Option {
	return func(l *EntryLog) { l.pub = p }
}

// WithLogger sets the logger used for warnings.
func WithLogger(log *zap.SugaredLogger) Option {
	return func(l *EntryLog) { l.log = log }
}

// NewEntryLog constructs an EntryLog and panics if store is nil.
func NewEntryLog(store repository.Store, opts ...Option) *EntryLog {
	if store == nil {
		panic("nil store passed to NewEntryLog")
	}
	l := &EntryLog{
		store: store,
		log:   zap.NewNop().Sugar(),
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Add validates the type, then appends a new record with the next id and a
// single clock reading for both time fields.
func (l *EntryLog) Add(ctx context.Context, in AddInput) (model.Entry, error) {
	typ := model.EntryType(in.Type)
	if !typ.Valid() {
		return model.Entry{}, &InvalidTypeError{Type: in.Type}
	}

	l.mu.Lock()
	entries := l.load(ctx)
	id, err := l.nextID(ctx, entries)
	if err != nil {
		l.mu.Unlock()
		return model.Entry{}, err
	}
	e := model.NewEntry(id, typ, in.PersonName, in.PlaceFrom, in.PlaceTo, l.now())
	err = l.store.Save(ctx, append(entries, e))
	l.mu.Unlock()
	if err != nil {
		return model.Entry{}, fmt.Errorf("save entries: %w", err)
	}

	l.publish(ctx, queue.RecordedEvent(e))
	return e, nil
}

// Delete removes every record carrying id and keeps the rest in order.  It
// returns how many records were removed; zero is not an error.
func (l *EntryLog) Delete(ctx context.Context, id int64) (int, error) {
	l.mu.Lock()
	entries := l.load(ctx)
	kept := make([]model.Entry, 0, len(entries))
	for _, e := range entries {
		if e.ID != id {
			kept = append(kept, e)
		}
	}
	removed := len(entries) - len(kept)
	err := l.store.Save(ctx, kept)
	l.mu.Unlock()
	if err != nil {
		return 0, fmt.Errorf("save entries: %w", err)
	}

	if removed > 0 {
		l.publish(ctx, queue.DeletedEvent(id, removed, l.now()))
	}
	return removed, nil
}

// Clear persists an empty collection regardless of what was stored.
func (l *EntryLog) Clear(ctx context.Context) error {
	l.mu.Lock()
	removed := len(l.load(ctx))
	err := l.store.Save(ctx, []model.Entry{})
	l.mu.Unlock()
	if err != nil {
		return fmt.Errorf("save entries: %w", err)
	}

	l.publish(ctx, queue.ClearedEvent(removed, l.now()))
	return nil
}

// List returns the stored collection in stored order.
func (l *EntryLog) List(ctx context.Context) []model.Entry {
	return l.load(ctx)
}

// Stats computes aggregate figures over the stored collection.
func (l *EntryLog) Stats(ctx context.Context) stats.Stats {
	return stats.Compute(l.load(ctx))
}

// load reads the collection.  A missing or corrupt store reads as empty;
// corruption is logged because the next save will overwrite it.
func (l *EntryLog) load(ctx context.Context) []model.Entry {
	res := l.store.Load(ctx)
	if res.Status == repository.LoadCorrupt {
		l.log.Warnw("entry store unreadable, treating as empty", "status", res.Status, "error", res.Err)
	}
	return res.Entries
}

// nextID reserves an id from the store counter, floored above every id
// already stored in case the counter was lost or predates the data.
func (l *EntryLog) nextID(ctx context.Context, entries []model.Entry) (int64, error) {
	var maxID int64
	for _, e := range entries {
		if e.ID > maxID {
			maxID = e.ID
		}
	}
	id, err := l.store.NextID(ctx, maxID)
	if err != nil {
		return 0, fmt.Errorf("reserve id: %w", err)
	}
	return id, nil
}

func (l *EntryLog) publish(ctx context.Context, ev queue.EntryEvent) {
	if l.pub == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()
	if err := l.pub.Publish(ctx, ev); err != nil {
		l.log.Warnw("publish event failed", "kind", ev.Kind, "error", err)
	}
}
