// Package store owns the on-disk document holding members, notes and the
// audit log. Two backends exist: a single JSON file (default, interoperable
// with snapshots written by earlier versions of the tool) and an embedded
// SQLite database.
package store

import "fmt"

// Store provides atomic load/save of the whole document.
//
// Load returns the current document, creating the empty shape on first use.
// Save replaces the entire backing document and fails with
// models.ErrConflict when the document's version is stale. Update runs a
// read-modify-write under the store's writer lock, so concurrent operations
// serialize instead of overwriting each other.
type Store interface {
	Load() (*Document, error)
	Save(*Document) error
	Update(mutate func(*Document) error) error
	Close() error
}

// Open creates a store for the configured backend ("file" or "sqlite").
func Open(backend, path string) (Store, error) {
	switch backend {
	case "", "file":
		return NewFileStore(path), nil
	case "sqlite":
		return NewSQLiteStore(path)
	default:
		return nil, fmt.Errorf("unknown store backend %q", backend)
	}
}
