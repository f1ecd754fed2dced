// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// RegisterInput defines the data required to register a new account.
// Role is optional and defaults to ADMIN when absent, matching the
// behavior of the system this service replaces.
type RegisterInput struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Phone    string `json:"phone"`
	Role     string `json:"role" validate:"omitempty,oneof=ADMIN STUDENT"`
}

// LoginInput defines the data required for an account to log in.
type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UpdateAccountInput carries a partial update; nil fields are left untouched.
type UpdateAccountInput struct {
	Name  *string `json:"name"`
	Email *string `json:"email" validate:"omitempty,email"`
	Phone *string `json:"phone"`
}

// ChangePasswordInput defines the data required to replace an account's password.
type ChangePasswordInput struct {
	Password string `json:"password" validate:"required"`
}

// --- Output DTOs ---

// AccountOutput is the caller-facing view of an account.
// It deliberately has no field for the password hash.
type AccountOutput struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// RegisterOutput returns the newly created account's basic information.
type RegisterOutput struct {
	Account *AccountOutput `json:"account"`
}

// LoginOutput returns the authenticated account's identity.
// No token is issued; session management is out of scope for this service.
type LoginOutput struct {
	Account *AccountOutput `json:"account"`
}

// AccountUsecase defines the interface for account lifecycle operations.
// This is the contract that the delivery layer (e.g., API handlers) will depend on.
type AccountUsecase interface {
	Register(ctx context.Context, input *RegisterInput) (*RegisterOutput, error)
	Login(ctx context.Context, input *LoginInput) (*LoginOutput, error)
	GetProfile(ctx context.Context, id uuid.UUID) (*AccountOutput, error)
	ListAccounts(ctx context.Context) ([]*AccountOutput, error)
	UpdateAccount(ctx context.Context, id uuid.UUID, input *UpdateAccountInput) (*AccountOutput, error)
	ChangePassword(ctx context.Context, id uuid.UUID, input *ChangePasswordInput) error
	DeleteAccount(ctx context.Context, id uuid.UUID) error
}
