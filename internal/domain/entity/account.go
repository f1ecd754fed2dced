// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Account is the core entity in the system, representing a registered person.
// The ID is assigned by the store on creation and never changes afterwards.
type Account struct {
	ID           uuid.UUID // The unique identifier for the account.
	Name         string    // The account holder's display name.
	Email        string    // The account's email, unique across the system and used as the login identifier.
	Phone        string    // Optional contact phone number.
	Role         Role      // The account's role (ADMIN or STUDENT).
	PasswordHash string    // The bcrypt-hashed password. Never exposed outside the service layer.
	CreatedAt    time.Time // Timestamp of when this account was created.
	UpdatedAt    time.Time // Timestamp of the last modification to this account.
}
