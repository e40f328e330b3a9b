// Package queue defines message payloads exchanged over the message broker.
package queue

import (
	"time"

	"github.com/iliyamo/entry-exit-logbook/internal/model"
)

// Event kinds published after a successful write to the log.
const (
	KindEntryRecorded = "entry.recorded"
	KindEntryDeleted  = "entry.deleted"
	KindLogCleared    = "log.cleared"
)

// EntryEvent is published after every successful mutation of the entry log.
// It carries enough information for downstream consumers to keep an audit
// trail without reading the store.
type EntryEvent struct {
	Kind       string `json:"kind"`
	EntryID    int64  `json:"entry_id,omitempty"`
	Type       string `json:"type,omitempty"`
	PersonName string `json:"person_name,omitempty"`
	PlaceFrom  string `json:"place_from,omitempty"`
	PlaceTo    string `json:"place_to,omitempty"`
	Removed    int    `json:"removed,omitempty"`
	OccurredAt string `json:"occurred_at"`
}

// RecordedEvent describes a newly appended entry.
func RecordedEvent(e model.Entry) EntryEvent {
	return EntryEvent{
		Kind:       KindEntryRecorded,
		EntryID:    e.ID,
		Type:       string(e.Type),
		PersonName: e.PersonName,
		PlaceFrom:  e.PlaceFrom,
		PlaceTo:    e.PlaceTo,
		OccurredAt: e.Timestamp.String(),
	}
}

// DeletedEvent describes the removal of removed records carrying id.
func DeletedEvent(id int64, removed int, at time.Time) EntryEvent {
	return EntryEvent{
		Kind:       KindEntryDeleted,
		EntryID:    id,
		Removed:    removed,
		OccurredAt: at.Format(time.RFC3339Nano),
	}
}

// ClearedEvent describes a full wipe of the log.
func ClearedEvent(removed int, at time.Time) EntryEvent {
	return EntryEvent{
		Kind:       KindLogCleared,
		Removed:    removed,
		OccurredAt: at.Format(time.RFC3339Nano),
	}
}
