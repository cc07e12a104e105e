package models

// Member represents a roster member whose notes are tracked.
// Password holds the bcrypt hash of the member's unlock password, never the
// plaintext secret itself.
type Member struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Password  string `json:"password"`
	Email     string `json:"email"`
}

// MemberProfile is the wire shape for a member: everything but the stored
// unlock hash. Handlers return this, never Member itself.
type MemberProfile struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
}

// Profile projects the member onto its credential-free wire shape.
func (m Member) Profile() MemberProfile {
	return MemberProfile{ID: m.ID, FirstName: m.FirstName, LastName: m.LastName, Email: m.Email}
}

// MemberWithNotes joins a member with its current notes for roster listings.
type MemberWithNotes struct {
	MemberProfile
	Notes []Note `json:"notes"`
}
