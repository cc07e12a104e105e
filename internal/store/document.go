package store

import "github.com/rosterpad/rosterpad/internal/models"

// Document is the whole durable state: members, their notes, the append-only
// audit log and the admin accounts. It is always loaded and saved as a unit;
// there are no partial writes.
//
// Version supports the optimistic check in Save. Snapshots written by older
// versions of the tool may omit it (and users/audit_log); normalize backfills
// those on every load.
type Document struct {
	Version  int64                  `json:"version,omitempty"`
	Members  []models.Member        `json:"members"`
	Notes    []models.Note          `json:"notes"`
	AuditLog []models.AuditLogEntry `json:"audit_log"`
	Users    []models.User          `json:"users,omitempty"`
}

// NewDocument returns an empty document with all collections initialized.
func NewDocument() *Document {
	return &Document{
		Members:  []models.Member{},
		Notes:    []models.Note{},
		AuditLog: []models.AuditLogEntry{},
		Users:    []models.User{},
	}
}

// normalize backfills collections missing from older snapshots so schema
// evolution never breaks a load.
func (d *Document) normalize() {
	if d.Members == nil {
		d.Members = []models.Member{}
	}
	if d.Notes == nil {
		d.Notes = []models.Note{}
	}
	if d.AuditLog == nil {
		d.AuditLog = []models.AuditLogEntry{}
	}
	if d.Users == nil {
		d.Users = []models.User{}
	}
}

// FindMember returns a pointer into d.Members for the given id, or nil.
func (d *Document) FindMember(id string) *models.Member {
	for i := range d.Members {
		if d.Members[i].ID == id {
			return &d.Members[i]
		}
	}
	return nil
}

// FindNote returns a pointer into d.Notes for the given id, or nil.
func (d *Document) FindNote(id string) *models.Note {
	for i := range d.Notes {
		if d.Notes[i].ID == id {
			return &d.Notes[i]
		}
	}
	return nil
}
