package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	_ "modernc.org/sqlite"

	"github.com/rosterpad/rosterpad/internal/models"
	"github.com/rosterpad/rosterpad/pkg/metrics"
)

// SQLiteStore keeps the document as a single versioned row in an embedded
// SQLite database. The document is still read and replaced as a unit; the
// version column backs the optimistic check in Save (the UPDATE carries a
// WHERE version = ? guard, so a stale writer affects zero rows).
type SQLiteStore struct {
	mu sync.Mutex
	db *sql.DB
}

// NewSQLiteStore opens (and if needed initializes) the database at path.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", models.ErrStorageUnavailable, path, err)
	}
	// the store serializes writers itself; one connection avoids SQLITE_BUSY
	db.SetMaxOpenConns(1)

	const schema = `CREATE TABLE IF NOT EXISTS document (
		id      INTEGER PRIMARY KEY CHECK (id = 1),
		version INTEGER NOT NULL,
		body    TEXT NOT NULL
	)`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: init schema: %v", models.ErrStorageUnavailable, err)
	}
	return &SQLiteStore{db: db}, nil
}

// Load returns the current document, inserting the empty shape on first use.
func (s *SQLiteStore) Load() (*Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

// Save replaces the document row, failing with models.ErrConflict when doc
// carries a stale version.
func (s *SQLiteStore) Save(doc *Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(doc)
}

// Update runs mutate against the current document and persists the result
// under the writer lock.
func (s *SQLiteStore) Update(mutate func(*Document) error) error {
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

// Close closes the underlying database.
func (s *SQLiteStore) Close() error { return s.db.Close() }

func (s *SQLiteStore) load() (*Document, error) {
	var version int64
	var body string
	err := s.db.QueryRow(`SELECT version, body FROM document WHERE id = 1`).Scan(&version, &body)
	if errors.Is(err, sql.ErrNoRows) {
		doc := NewDocument()
		b, merr := json.Marshal(doc)
		if merr != nil {
			return nil, fmt.Errorf("%w: encode document: %v", models.ErrStorageUnavailable, merr)
		}
		if _, ierr := s.db.Exec(`INSERT INTO document (id, version, body) VALUES (1, 0, ?)`, string(b)); ierr != nil {
			return nil, fmt.Errorf("%w: init document row: %v", models.ErrStorageUnavailable, ierr)
		}
		return doc, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: query document: %v", models.ErrStorageUnavailable, err)
	}

	var doc Document
	if err := json.Unmarshal([]byte(body), &doc); err != nil {
		return nil, fmt.Errorf("%w: parse document row: %v", models.ErrCorruptDocument, err)
	}
	doc.Version = version
	doc.normalize()
	return &doc, nil
}

func (s *SQLiteStore) save(doc *Document) error {
	old := doc.Version
	doc.Version = old + 1
	b, err := json.Marshal(doc)
	if err != nil {
		doc.Version = old
		return fmt.Errorf("%w: encode document: %v", models.ErrStorageUnavailable, err)
	}

	res, err := s.db.Exec(`UPDATE document SET version = ?, body = ? WHERE id = 1 AND version = ?`,
		doc.Version, string(b), old)
	if err != nil {
		doc.Version = old
		metrics.StoreSaveFailures.Inc()
		return fmt.Errorf("%w: update document: %v", models.ErrStorageUnavailable, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		doc.Version = old
		return fmt.Errorf("%w: rows affected: %v", models.ErrStorageUnavailable, err)
	}
	if n == 0 {
		doc.Version = old
		return fmt.Errorf("%w: have version %d", models.ErrConflict, old)
	}
	return nil
}
