// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"roster/internal/domain/entity"

	"github.com/google/uuid"
)

// Domain-specific errors for account persistence.
// This allows the application layer to handle specific outcomes without depending on database-specific errors.
var (
	// ErrAccountNotFound is returned when an account is not found by id or email.
	ErrAccountNotFound = errors.New("account not found")
	// ErrEmailTaken is returned when creating or updating an account would violate email uniqueness.
	ErrEmailTaken = errors.New("email already registered")
)

// AccountRepository defines the standard operations for account persistence.
// The application layer depends on this interface, not the concrete implementation.
type AccountRepository interface {
	// FindByID retrieves a single account by its unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Account, error)

	// FindByEmail retrieves a single account by its email address.
	FindByEmail(ctx context.Context, email string) (*entity.Account, error)

	// Create persists a new account. The store assigns the ID and timestamps.
	// Returns ErrEmailTaken when the email is already registered; the unique
	// index arbitrates concurrent registrations for the same email.
	Create(ctx context.Context, account *entity.Account) error

	// Update modifies an existing account entity in the storage.
	Update(ctx context.Context, account *entity.Account) error

	// Delete removes an account by its ID. Returns ErrAccountNotFound if absent.
	Delete(ctx context.Context, id uuid.UUID) error

	// ListAll retrieves every account. Unbounded; pagination is a known non-goal.
	ListAll(ctx context.Context) ([]*entity.Account, error)
}
