// Package model defines the data structures shared by every layer of the
// application.
package model

import "time"

// Field length limits enforced by the forms and mirrored by the schema.
const (
	MaxUsernameLength    = 64
	MaxEmailLength       = 120
	MaxAboutMeLength     = 140
	MaxEnterpriseName    = 64
	MaxDescriptionLength = 140
	MaxSymbolLength      = 10
)

// User is a registered account. Passwords are never stored, only the
// bcrypt hash. LastSeen is refreshed on every authenticated request.
type User struct {
	ID           string    `db:"id"`
	Username     string    `db:"username"`
	Email        string    `db:"email"`
	PasswordHash string    `db:"password_hash"`
	AboutMe      string    `db:"about_me"`
	LastSeen     time.Time `db:"last_seen"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}
