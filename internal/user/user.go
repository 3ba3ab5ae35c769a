package user

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/bitebudget/internal/apperr"
)

var (
	ErrNotFound           = fmt.Errorf("user %w", apperr.ErrNotFound)
	ErrTaken              = fmt.Errorf("username or email already exists: %w", apperr.ErrConflict)
	ErrInvalidCredentials = fmt.Errorf("invalid credentials: %w", apperr.ErrUnauthorized)
)

// User is an account owning receipts, budgets and price alerts.
// Username and email never change after registration.
type User struct {
	ID           uuid.UUID
	Username     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    *time.Time
}
