// Package entity contains the core business objects of the project.
package entity

// Role represents the type of role an account can have in the system.
type Role string

const (
	// RoleAdmin indicates an administrator account.
	RoleAdmin Role = "ADMIN"
	// RoleStudent indicates a student account.
	RoleStudent Role = "STUDENT"
)

// DefaultRole is applied when registration omits the role.
// Defaulting to ADMIN mirrors the behavior of the system this service replaces;
// see DESIGN.md before changing it.
const DefaultRole = RoleAdmin

// String returns the string representation of the Role.
func (r Role) String() string {
	return string(r)
}

// IsValid checks if the Role is a valid value.
func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleStudent:
		return true
	default:
		return false
	}
}
