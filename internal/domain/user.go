package domain

import "time"

// User is the domain model for registered shoppers and administrators.
// The username is the primary identifier; the backend stores only the
// bcrypt hash of the password.
type User struct {
	Username     string
	FirstName    string
	LastName     string
	PasswordHash string
	Roles        []Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
