package model

import (
	"fmt"
	"strings"
	"time"
)

// EntryType tells whether a record marks a person arriving or leaving.
type EntryType string

const (
	TypeEntry EntryType = "entry"
	TypeExit  EntryType = "exit"
)

// Valid reports whether t is one of the two known record types.
func (t EntryType) Valid() bool {
	return t == TypeEntry || t == TypeExit
}

// DisplayLayout is the human readable form stored in time_display.
const DisplayLayout = "2006-01-02 15:04:05"

// DefaultPersonName is used when a request omits person_name.
const DefaultPersonName = "Unknown"

// Entry represents one logged event.  Records are immutable once created
// and their position in the stored sequence matters for duration pairing.
//
// Fields:
//  ID          – sequential identifier handed out by the store counter.
//  Type        – entry or exit.
//  PersonName  – who passed through.
//  PlaceFrom   – origin, free text.
//  PlaceTo     – destination, free text.
//  Timestamp   – machine sortable instant (ISO-8601).
//  TimeDisplay – the same instant formatted with DisplayLayout.
type Entry struct {
	ID          int64     `json:"id"`
	Type        EntryType `json:"type"`
	PersonName  string    `json:"person_name"`
	PlaceFrom   string    `json:"place_from"`
	PlaceTo     string    `json:"place_to"`
	Timestamp   Timestamp `json:"timestamp"`
	TimeDisplay string    `json:"time_display"`
}

// NewEntry builds a record whose two time fields come from the single
// instant now.
func NewEntry(id int64, typ EntryType, personName, placeFrom, placeTo string, now time.Time) Entry {
	return Entry{
		ID:          id,
		Type:        typ,
		PersonName:  personName,
		PlaceFrom:   placeFrom,
		PlaceTo:     placeTo,
		Timestamp:   Timestamp{Time: now},
		TimeDisplay: now.Format(DisplayLayout),
	}
}

// Timestamp wraps time.Time with an ISO-8601 JSON codec.  It is written as
// RFC 3339 with nanoseconds.  On read it also accepts naive values without a
// zone offset (e.g. 2024-05-01T08:30:00.123456), interpreted as local time,
// which is what older data files contain.
type Timestamp struct {
	time.Time
}

// naiveLayout also matches an optional fractional second when parsing.
const naiveLayout = "2006-01-02T15:04:05"

// ParseTimestamp parses an ISO-8601 value with or without a zone offset.
func ParseTimestamp(s string) (Timestamp, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return Timestamp{Time: t}, nil
	}
	t, err := time.ParseInLocation(naiveLayout, s, time.Local)
	if err != nil {
		return Timestamp{}, fmt.Errorf("invalid timestamp %q", s)
	}
	return Timestamp{Time: t}, nil
}

// String returns the RFC 3339 form used on the wire and on disk.
func (ts Timestamp) String() string {
	return ts.Time.Format(time.RFC3339Nano)
}

func (ts Timestamp) MarshalJSON() ([]byte, error) {
	return []byte(`"` + ts.String() + `"`), nil
}

func (ts *Timestamp) UnmarshalJSON(b []byte) error {
	s := string(b)
	if s == "null" {
		return nil
	}
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return fmt.Errorf("timestamp must be a JSON string, got %s", s)
	}
	parsed, err := ParseTimestamp(s[1 : len(s)-1])
	if err != nil {
		return err
	}
	*ts = parsed
	return nil
}
