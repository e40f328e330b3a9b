package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/iliyamo/entry-exit-logbook/internal/model"
)

var t0 = time.Date(2024, time.January, 15, 9, 0, 0, 0, time.UTC)

func at(typ model.EntryType, ts time.Time) model.Entry {
	return model.NewEntry(0, typ, "Kavin", "", "", ts)
}

func TestCompute_Empty(t *testing.T) {
	assert.Equal(t, Stats{}, Compute(nil))
	assert.Equal(t, Stats{}, Compute([]model.Entry{}))
}

func TestCompute_TwoPairs(t *testing.T) {
	t1 := t0.Add(5 * time.Hour)
	got := Compute([]model.Entry{
		at(model.TypeEntry, t0),
		at(model.TypeExit, t0.Add(time.Hour)),
		at(model.TypeEntry, t1),
		at(model.TypeExit, t1.Add(2*time.Hour)),
	})
	assert.Equal(t, Stats{TotalEntries: 2, TotalExits: 2, TotalHours: 3.00}, got)
}

func TestCompute_UnmatchedExitIgnored(t *testing.T) {
	got := Compute([]model.Entry{at(model.TypeExit, t0)})
	assert.Equal(t, Stats{TotalEntries: 0, TotalExits: 1, TotalHours: 0}, got)
}

func TestCompute_ConsecutiveEntriesLastWins(t *testing.T) {
	t1 := t0.Add(3 * time.Hour)
	got := Compute([]model.Entry{
		at(model.TypeEntry, t0),
		at(model.TypeEntry, t1),
		at(model.TypeExit, t1.Add(time.Hour)),
	})
	assert.Equal(t, 2, got.TotalEntries)
	assert.Equal(t, 1, got.TotalExits)
	assert.Equal(t, 1.00, got.TotalHours)
}

func TestCompute_TrailingEntryDropped(t *testing.T) {
	got := Compute([]model.Entry{
		at(model.TypeEntry, t0),
		at(model.TypeExit, t0.Add(30*time.Minute)),
		at(model.TypeEntry, t0.Add(time.Hour)),
	})
	assert.Equal(t, 0.5, got.TotalHours)
	assert.Equal(t, 2, got.TotalEntries)
}

func TestCompute_ExitAfterPairIsIgnored(t *testing.T) {
	got := Compute([]model.Entry{
		at(model.TypeEntry, t0),
		at(model.TypeExit, t0.Add(time.Hour)),
		at(model.TypeExit, t0.Add(4*time.Hour)),
	})
	assert.Equal(t, 1.00, got.TotalHours)
	assert.Equal(t, 2, got.TotalExits)
}

func TestCompute_RoundsToTwoDecimals(t *testing.T) {
	got := Compute([]model.Entry{
		at(model.TypeEntry, t0),
		at(model.TypeExit, t0.Add(20*time.Minute)), // 0.3333h
	})
	assert.Equal(t, 0.33, got.TotalHours)

	got = Compute([]model.Entry{
		at(model.TypeEntry, t0),
		at(model.TypeExit, t0.Add(100*time.Minute)), // 1.6667h
	})
	assert.Equal(t, 1.67, got.TotalHours)
}

func TestCompute_OrderMatters(t *testing.T) {
	// The exit comes first in stored order, so nothing pairs even though
	// its timestamp is later than the entry's.
	got := Compute([]model.Entry{
		at(model.TypeExit, t0.Add(time.Hour)),
		at(model.TypeEntry, t0),
	})
	assert.Equal(t, 0.0, got.TotalHours)
}

func TestCompute_UnknownTypesNotCounted(t *testing.T) {
	got := Compute([]model.Entry{
		at(model.EntryType("visit"), t0),
		at(model.TypeEntry, t0),
		at(model.TypeExit, t0.Add(time.Hour)),
	})
	assert.Equal(t, Stats{TotalEntries: 1, TotalExits: 1, TotalHours: 1}, got)
}
