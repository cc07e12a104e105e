// Package members implements the member registry: idempotent creation,
// roster listing and unlock-password verification.
package members

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/rosterpad/rosterpad/internal/models"
	"github.com/rosterpad/rosterpad/internal/store"
)

// Service encapsulates member-related business logic on top of the document
// store.
type Service struct {
	store store.Store
}

func NewService(st store.Store) *Service {
	return &Service{store: st}
}

// Create registers a member. Inputs are trimmed; empty firstName, lastName or
// password is a validation error. Creation is idempotent: when a member with
// the same first/last name (case-insensitive) exists, the existing member is
// returned unchanged and created is false.
func (s *Service) Create(firstName, lastName, password string) (m *models.Member, created bool, err error) {
	firstName = strings.TrimSpace(firstName)
	lastName = strings.TrimSpace(lastName)
	password = strings.TrimSpace(password)
	if firstName == "" {
		return nil, false, models.NewValidationError("firstName", "must not be empty")
	}
	if lastName == "" {
		return nil, false, models.NewValidationError("lastName", "must not be empty")
	}
	if password == "" {
		return nil, false, models.NewValidationError("password", "must not be empty")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, false, fmt.Errorf("hash unlock password: %w", err)
	}

	err = s.store.Update(func(doc *store.Document) error {
		for i := range doc.Members {
			if strings.EqualFold(doc.Members[i].FirstName, firstName) &&
				strings.EqualFold(doc.Members[i].LastName, lastName) {
				existing := doc.Members[i]
				m = &existing
				return nil
			}
		}
		nm := models.Member{
			ID:        uuid.New().String(),
			FirstName: firstName,
			LastName:  lastName,
			Password:  string(hash),
			Email:     "",
		}
		doc.Members = append(doc.Members, nm)
		m = &nm
		created = true
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return m, created, nil
}

// ListWithNotes joins every member with its current notes, preserving store
// order for both. The listing carries profiles only: unlock hashes never
// leave the store through this path.
func (s *Service) ListWithNotes() ([]models.MemberWithNotes, error) {
	doc, err := s.store.Load()
	if err != nil {
		return nil, err
	}

	out := make([]models.MemberWithNotes, 0, len(doc.Members))
	for _, m := range doc.Members {
		mw := models.MemberWithNotes{MemberProfile: m.Profile(), Notes: []models.Note{}}
		for _, n := range doc.Notes {
			if n.Member == m.ID {
				mw.Notes = append(mw.Notes, n)
			}
		}
		out = append(out, mw)
	}
	return out, nil
}

// VerifyPassword checks a supplied unlock password against the member's
// stored hash. bcrypt does the constant-time comparison.
func (s *Service) VerifyPassword(memberID, supplied string) (bool, error) {
	doc, err := s.store.Load()
	if err != nil {
		return false, err
	}
	m := doc.FindMember(memberID)
	if m == nil {
		return false, fmt.Errorf("%w: %s", models.ErrMemberNotFound, memberID)
	}

	err = bcrypt.CompareHashAndPassword([]byte(m.Password), []byte(supplied))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return false, nil
		}
		return false, fmt.Errorf("compare unlock password: %w", err)
	}
	return true, nil
}
