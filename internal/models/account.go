package models

import (
	"time"

	"github.com/google/uuid"
)

// Account is an identity record keyed by its normalized email.
// Accounts are created once at sign-up and never mutated afterwards.
type Account struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
