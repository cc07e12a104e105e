package models

// Note is a free-text record attached to exactly one member.
// Timestamp is RFC3339 and reflects creation or last update.
type Note struct {
	ID        string `json:"id"`
	Member    string `json:"member"`
	Text      string `json:"text"`
	Timestamp string `json:"timestamp"`
}

// AuditLogEntry records a single note text transition. Entries are
// append-only: they are written exactly once per update and never mutated or
// deleted, even after the referenced note is gone.
type AuditLogEntry struct {
	ID           string `json:"id"`
	NoteID       string `json:"noteId"`
	PreviousText string `json:"previousText"`
	UpdatedText  string `json:"updatedText"`
	Timestamp    string `json:"timestamp"`
}
