package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntryTypeValid(t *testing.T) {
	assert.True(t, TypeEntry.Valid())
	assert.True(t, TypeExit.Valid())
	assert.False(t, EntryType("").Valid())
	assert.False(t, EntryType("Entry").Valid())
	assert.False(t, EntryType("visit").Valid())
}

func TestNewEntry_BothTimeFieldsFromOneInstant(t *testing.T) {
	now := time.Date(2024, time.March, 9, 17, 4, 5, 987654321, time.UTC)

	e := NewEntry(7, TypeExit, "Meena", "Home", "School", now)

	assert.Equal(t, int64(7), e.ID)
	assert.Equal(t, TypeExit, e.Type)
	assert.Equal(t, "Meena", e.PersonName)
	assert.Equal(t, "Home", e.PlaceFrom)
	assert.Equal(t, "School", e.PlaceTo)
	assert.True(t, e.Timestamp.Equal(now))
	assert.Equal(t, "2024-03-09 17:04:05", e.TimeDisplay)
}

func TestEntryJSONFieldNames(t *testing.T) {
	now := time.Date(2024, time.March, 9, 17, 4, 5, 0, time.UTC)
	b, err := json.Marshal(NewEntry(1, TypeEntry, "A", "B", "C", now))
	require.NoError(t, err)

	var raw map[string]interface{}
	require.NoError(t, json.Unmarshal(b, &raw))
	assert.Equal(t, float64(1), raw["id"])
	assert.Equal(t, "entry", raw["type"])
	assert.Equal(t, "A", raw["person_name"])
	assert.Equal(t, "B", raw["place_from"])
	assert.Equal(t, "C", raw["place_to"])
	assert.Equal(t, "2024-03-09T17:04:05Z", raw["timestamp"])
	assert.Equal(t, "2024-03-09 17:04:05", raw["time_display"])
}

func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want time.Time
	}{
		{"rfc3339 utc", "2024-05-01T08:30:00Z", time.Date(2024, 5, 1, 8, 30, 0, 0, time.UTC)},
		{"rfc3339 offset with fraction", "2024-05-01T08:30:00.5+05:30",
			time.Date(2024, 5, 1, 8, 30, 0, 500000000, time.FixedZone("", 5*3600+1800))},
		{"naive", "2024-05-01T08:30:00", time.Date(2024, 5, 1, 8, 30, 0, 0, time.Local)},
		{"naive microseconds", "2024-05-01T08:30:00.123456", time.Date(2024, 5, 1, 8, 30, 0, 123456000, time.Local)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTimestamp(tt.in)
			require.NoError(t, err)
			assert.True(t, got.Equal(tt.want), "got %s want %s", got.Time, tt.want)
		})
	}
}

func TestParseTimestamp_Invalid(t *testing.T) {
	for _, in := range []string{"", "yesterday", "2024-05-01", "01/05/2024 08:30"} {
		_, err := ParseTimestamp(in)
		assert.Error(t, err, in)
	}
}

func TestTimestampUnmarshal_RejectsNonString(t *testing.T) {
	var e Entry
	err := json.Unmarshal([]byte(`{"id":1,"type":"entry","timestamp":12345}`), &e)
	assert.Error(t, err)
}

func TestTimestampUnmarshal_OlderFileFormat(t *testing.T) {
	data := `{"id": 3, "type": "exit", "person_name": "Ravi", "place_from": "", "place_to": "",
		"timestamp": "2025-01-02T18:00:00.250000", "time_display": "2025-01-02 18:00:00"}`
	var e Entry
	require.NoError(t, json.Unmarshal([]byte(data), &e))
	assert.Equal(t, int64(3), e.ID)
	assert.Equal(t, TypeExit, e.Type)
	assert.True(t, e.Timestamp.Equal(time.Date(2025, 1, 2, 18, 0, 0, 250000000, time.Local)))
}
