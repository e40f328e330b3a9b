package repository

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/entry-exit-logbook/internal/model"
)

func sampleEntries() []model.Entry {
	base := time.Date(2024, time.June, 1, 8, 0, 0, 0, time.UTC)
	return []model.Entry{
		model.NewEntry(1, model.TypeEntry, "Anbu", "Home", "Office", base),
		model.NewEntry(2, model.TypeExit, "Anbu", "Office", "Home", base.Add(9*time.Hour)),
		model.NewEntry(3, model.TypeEntry, "செல்வி", "", "", base.Add(10*time.Hour)),
	}
}

func newFileStore(t *testing.T) *FileStore {
	t.Helper()
	return NewFileStore(filepath.Join(t.TempDir(), "entries.json"))
}

func TestFileStore_LoadMissing(t *testing.T) {
	s := newFileStore(t)

	res := s.Load(context.Background())

	assert.Equal(t, LoadMissing, res.Status)
	assert.NotNil(t, res.Entries)
	assert.Empty(t, res.Entries)
	assert.NoError(t, res.Err)
}

func TestFileStore_LoadCorrupt(t *testing.T) {
	tests := map[string]string{
		"garbage":   "not json at all",
		"truncated": `[{"id": 1, "type": "entry"`,
		"object":    `{"id": 1}`,
		"bad time":  `[{"id": 1, "type": "entry", "timestamp": "soon"}]`,
	}
	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			s := newFileStore(t)
			require.NoError(t, os.WriteFile(s.Path(), []byte(content), 0o644))

			res := s.Load(context.Background())

			assert.Equal(t, LoadCorrupt, res.Status)
			assert.Empty(t, res.Entries)
			assert.NotNil(t, res.Entries)
			assert.Error(t, res.Err)
		})
	}
}

func TestFileStore_LoadUnreadable(t *testing.T) {
	dir := t.TempDir()
	s := NewFileStore(dir) // a directory cannot be read as a file

	res := s.Load(context.Background())

	assert.Equal(t, LoadCorrupt, res.Status)
	assert.Empty(t, res.Entries)
}

func TestFileStore_LoadJSONNull(t *testing.T) {
	s := newFileStore(t)
	require.NoError(t, os.WriteFile(s.Path(), []byte("null"), 0o644))

	res := s.Load(context.Background())

	assert.Equal(t, LoadOK, res.Status)
	assert.NotNil(t, res.Entries)
	assert.Empty(t, res.Entries)
}

func TestFileStore_SaveLoadRoundTrip(t *testing.T) {
	s := newFileStore(t)
	ctx := context.Background()
	want := sampleEntries()

	require.NoError(t, s.Save(ctx, want))
	res := s.Load(ctx)

	require.Equal(t, LoadOK, res.Status)
	require.Len(t, res.Entries, len(want))
	for i := range want {
		assert.Equal(t, want[i].ID, res.Entries[i].ID)
		assert.Equal(t, want[i].Type, res.Entries[i].Type)
		assert.Equal(t, want[i].PersonName, res.Entries[i].PersonName)
		assert.True(t, want[i].Timestamp.Equal(res.Entries[i].Timestamp.Time))
		assert.Equal(t, want[i].TimeDisplay, res.Entries[i].TimeDisplay)
	}
}

func TestFileStore_SaveFormat(t *testing.T) {
	s := newFileStore(t)
	require.NoError(t, s.Save(context.Background(), sampleEntries()[:1]))

	data, err := os.ReadFile(s.Path())
	require.NoError(t, err)
	text := string(data)

	assert.True(t, strings.HasPrefix(text, "[\n  {\n    \"id\": 1,\n"), text)
	assert.Contains(t, text, "\n    \"person_name\": \"Anbu\",\n")
	assert.True(t, strings.HasSuffix(text, "  }\n]\n"), text)
}

func TestFileStore_SaveEmptyWritesArray(t *testing.T) {
	s := newFileStore(t)
	require.NoError(t, s.Save(context.Background(), nil))

	data, err := os.ReadFile(s.Path())
	require.NoError(t, err)
	assert.Equal(t, "[]\n", string(data))
	assert.Equal(t, LoadOK, s.Load(context.Background()).Status)
}

func TestFileStore_SaveOverwritesCorruptFile(t *testing.T) {
	s := newFileStore(t)
	require.NoError(t, os.WriteFile(s.Path(), []byte("{{{"), 0o644))

	require.NoError(t, s.Save(context.Background(), sampleEntries()))

	res := s.Load(context.Background())
	assert.Equal(t, LoadOK, res.Status)
	assert.Len(t, res.Entries, 3)
}

func TestFileStore_SaveLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	s := NewFileStore(filepath.Join(dir, "entries.json"))
	require.NoError(t, s.Save(context.Background(), sampleEntries()))
	_, err := s.NextID(context.Background(), 0)
	require.NoError(t, err)

	names, err := os.ReadDir(dir)
	require.NoError(t, err)
	var got []string
	for _, n := range names {
		got = append(got, n.Name())
	}
	assert.ElementsMatch(t, []string{"entries.json", "entries.json.seq"}, got)
}

func TestFileStore_SaveFailsWhenDirectoryIsAFile(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))
	s := NewFileStore(filepath.Join(blocker, "entries.json"))

	assert.Error(t, s.Save(context.Background(), sampleEntries()))
}

func TestFileStore_NextIDIsMonotonic(t *testing.T) {
	s := newFileStore(t)
	ctx := context.Background()

	for want := int64(1); want <= 3; want++ {
		got, err := s.NextID(ctx, 0)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	// A fresh store on the same path continues from the persisted counter.
	again := NewFileStore(s.Path())
	got, err := again.NextID(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(4), got)
}

func TestFileStore_NextIDGarbageCounterRestarts(t *testing.T) {
	s := newFileStore(t)
	require.NoError(t, os.WriteFile(s.Path()+SeqSuffix, []byte("many"), 0o644))

	got, err := s.NextID(context.Background(), 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), got)
}

func TestFileStore_NextIDPersistsFloor(t *testing.T) {
	s := newFileStore(t)
	ctx := context.Background()

	got, err := s.NextID(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, int64(8), got)

	// A lower floor never moves the counter back.
	got, err = NewFileStore(s.Path()).NextID(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(9), got)

	data, err := os.ReadFile(s.Path() + SeqSuffix)
	require.NoError(t, err)
	assert.Equal(t, "9\n", string(data))
}
