package domain

import "time"

type User struct {
	Username       string
	Name           string
	PasswordHash   string     // bcrypt over a peppered pre-hash
	Token          *string    // current bearer token (nullable)
	TokenExpiresAt *time.Time // expiry of Token (nullable)
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Subject identifies the user for rate limiting and request logging.
func (u User) Subject() string { return u.Username }
