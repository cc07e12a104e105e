// Package notes implements the note ledger: note creation, audited updates
// and deletion. Every update appends exactly one audit log entry in the same
// document save as the note mutation, so the two are never persisted apart.
package notes

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/rosterpad/rosterpad/internal/models"
	"github.com/rosterpad/rosterpad/internal/store"
	"github.com/rosterpad/rosterpad/pkg/metrics"
)

// Service encapsulates note-related business logic on top of the document
// store.
type Service struct {
	store store.Store
}

func NewService(st store.Store) *Service {
	return &Service{store: st}
}

func timestamp() string {
	return time.Now().UTC().Format(time.RFC3339)
}

// Create adds a note for the given member. The ledger is the sole place that
// enforces referential validity: the member must exist at creation time.
func (s *Service) Create(memberID, text string) (*models.Note, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, models.NewValidationError("text", "must not be empty")
	}

	var note models.Note
	err := s.store.Update(func(doc *store.Document) error {
		if doc.FindMember(memberID) == nil {
			return fmt.Errorf("%w: %s", models.ErrMemberNotFound, memberID)
		}
		note = models.Note{
			ID:        uuid.New().String(),
			Member:    memberID,
			Text:      text,
			Timestamp: timestamp(),
		}
		doc.Notes = append(doc.Notes, note)
		return nil
	})
	if err != nil {
		return nil, err
	}
	metrics.NotesCreated.Inc()
	return &note, nil
}

// Update overwrites a note's text, refreshes its timestamp and appends one
// audit entry capturing the transition. When memberID is non-empty the update
// is scoped to that member and cross-member edits are rejected as not found.
func (s *Service) Update(noteID, text, memberID string) (*models.Note, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, models.NewValidationError("text", "must not be empty")
	}

	var updated models.Note
	err := s.store.Update(func(doc *store.Document) error {
		n := doc.FindNote(noteID)
		if n == nil || (memberID != "" && n.Member != memberID) {
			return fmt.Errorf("%w: %s", models.ErrNoteNotFound, noteID)
		}

		previous := n.Text
		n.Text = text
		n.Timestamp = timestamp()

		doc.AuditLog = append(doc.AuditLog, models.AuditLogEntry{
			ID:           uuid.New().String(),
			NoteID:       n.ID,
			PreviousText: previous,
			UpdatedText:  text,
			Timestamp:    timestamp(),
		})
		updated = *n
		return nil
	})
	if err != nil {
		return nil, err
	}
	metrics.NotesUpdated.Inc()
	metrics.AuditEntriesAppended.Inc()
	return &updated, nil
}

// Delete removes a note. Audit entries referencing it are left untouched:
// history stays immutable after the subject is gone.
func (s *Service) Delete(noteID string) error {
	err := s.store.Update(func(doc *store.Document) error {
		kept := doc.Notes[:0]
		found := false
		for _, n := range doc.Notes {
			if n.ID == noteID {
				found = true
				continue
			}
			kept = append(kept, n)
		}
		if !found {
			return fmt.Errorf("%w: %s", models.ErrNoteNotFound, noteID)
		}
		doc.Notes = kept
		return nil
	})
	if err != nil {
		return err
	}
	metrics.NotesDeleted.Inc()
	return nil
}
