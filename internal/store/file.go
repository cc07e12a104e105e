package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/rosterpad/rosterpad/internal/models"
	"github.com/rosterpad/rosterpad/pkg/metrics"
)

// FileStore keeps the document in a single pretty-printed JSON file,
// compatible with db.json snapshots from earlier versions of the tool.
// All operations serialize through mu; Save writes to a temp file in the
// same directory and renames it over the target so a crash never leaves a
// half-written document behind.
type FileStore struct {
	mu   sync.Mutex
	path string
}

// NewFileStore creates a store backed by the JSON file at path. The file is
// created lazily on first Load.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Load returns the current document, initializing and persisting the empty
// shape when no backing file exists yet.
func (s *FileStore) Load() (*Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

// Save atomically replaces the backing document. Fails with
// models.ErrConflict when doc was loaded from an older version than what is
// on disk.
func (s *FileStore) Save(doc *Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(doc)
}

// Update runs mutate against the current document and persists the result,
// all under the writer lock. When mutate returns an error nothing is saved.
func (s *FileStore) Update(mutate func(*Document) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return err
	}
	if err := mutate(doc); err != nil {
		return err
	}
	return s.save(doc)
}

// Close is a no-op for the file backend.
func (s *FileStore) Close() error { return nil }

func (s *FileStore) load() (*Document, error) {
	b, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		doc := NewDocument()
		if err := s.write(doc); err != nil {
			return nil, err
		}
		return doc, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", models.ErrStorageUnavailable, s.path, err)
	}

	var doc Document
	if err := json.Unmarshal(b, &doc); err != nil {
		// do not reset the file: corrupt state needs manual intervention
		return nil, fmt.Errorf("%w: parse %s: %v", models.ErrCorruptDocument, s.path, err)
	}
	doc.normalize()
	return &doc, nil
}

func (s *FileStore) save(doc *Document) error {
	current, err := s.load()
	if err != nil {
		return err
	}
	if doc.Version != current.Version {
		return fmt.Errorf("%w: have version %d, store has %d", models.ErrConflict, doc.Version, current.Version)
	}

	old := doc.Version
	doc.Version = old + 1
	if err := s.write(doc); err != nil {
		doc.Version = old
		return err
	}
	return nil
}

func (s *FileStore) write(doc *Document) error {
	b, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: encode document: %v", models.ErrStorageUnavailable, err)
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp*")
	if err != nil {
		metrics.StoreSaveFailures.Inc()
		return fmt.Errorf("%w: create temp file in %s: %v", models.ErrStorageUnavailable, dir, err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(b); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		metrics.StoreSaveFailures.Inc()
		return fmt.Errorf("%w: write %s: %v", models.ErrStorageUnavailable, tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		metrics.StoreSaveFailures.Inc()
		return fmt.Errorf("%w: close %s: %v", models.ErrStorageUnavailable, tmpName, err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		metrics.StoreSaveFailures.Inc()
		return fmt.Errorf("%w: replace %s: %v", models.ErrStorageUnavailable, s.path, err)
	}
	return nil
}
