package models

// User represents an admin account that can obtain a session token.
// Password holds a bcrypt hash.
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Password string `json:"password"`
}
