package domain

// Role is a named authority assignable to users.
type Role struct {
	Name        string
	Description string
}
