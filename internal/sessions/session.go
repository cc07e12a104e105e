package sessions

import "time"

// Session represents a persistent refresh session for an admin user
type Session struct {
	ID           string    `json:"id,omitempty"`
	RefreshToken string    `json:"refreshToken"`
	UserID       string    `json:"userId"`
	ExpiresAt    time.Time `json:"expiresAt"`
	CreatedAt    time.Time `json:"createdAt"`
}
