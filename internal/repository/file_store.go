package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/iliyamo/entry-exit-logbook/internal/model"
)

// SeqSuffix is appended to the data file path to name the id counter file.
const SeqSuffix = ".seq"

// FileStore keeps the collection in a single JSON file holding an array of
// entries, pretty printed with two-space indentation.  The id counter lives
// in a sidecar file next to it.  All methods share one mutex and every write
// replaces its target atomically through a temp file and rename.
type FileStore struct {
	path string
	mu   sync.Mutex
}

// NewFileStore returns a store backed by the file at path.  The file does
// not need to exist.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the data file location.
func (s *FileStore) Path() string { return s.path }

func (s *FileStore) seqPath() string { return s.path + SeqSuffix }

// Load reads and parses the data file.
func (s *FileStore) Load(_ context.Context) LoadResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return missing()
		}
		return corrupt(fmt.Errorf("read %s: %w", s.path, err))
	}
	var entries []model.Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return corrupt(fmt.Errorf("parse %s: %w", s.path, err))
	}
	return loaded(entries)
}

// Save overwrites the data file with entries.
func (s *FileStore) Save(_ context.Context, entries []model.Entry) error {
	if entries == nil {
		entries = []model.Entry{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(entries); err != nil {
		return fmt.Errorf("encode entries: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return writeFileAtomic(s.path, buf.Bytes())
}

// NextID bumps the counter stored in the sidecar file.  A missing or
// unreadable counter reads as zero before floor is applied.
func (s *FileStore) NextID(_ context.Context, floor int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var last int64
	if data, err := os.ReadFile(s.seqPath()); err == nil {
		if n, err := strconv.ParseInt(strings.TrimSpace(string(data)), 10, 64); err == nil && n > 0 {
			last = n
		}
	}
	next := max(last, floor) + 1
	if err := writeFileAtomic(s.seqPath(), []byte(strconv.FormatInt(next, 10)+"\n")); err != nil {
		return 0, fmt.Errorf("write id counter: %w", err)
	}
	return next, nil
}

// writeFileAtomic writes data to a temp file in the target directory and
// renames it over path, so readers never observe a half-written file.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	return nil
}
