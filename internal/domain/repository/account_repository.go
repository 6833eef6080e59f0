package repository

import (
	"context"
	"errors"

	"github.com/shopgrid/accounts-api/internal/domain/entity"
)

// ErrDuplicateEmail is returned by Create when the storage-level uniqueness
// constraint on email rejects the record.
var ErrDuplicateEmail = errors.New("email already registered")

// ErrAccountNotFound is returned by updates that target an account row
// that no longer exists.
var ErrAccountNotFound = errors.New("account not found")

// AccountRepository defines the persistence operations the accounts domain needs.
// GetByEmail returns (nil, nil) when no account matches: absence is a normal
// outcome, distinct from a lookup failure.
type AccountRepository interface {
	Create(ctx context.Context, a *entity.Account) error
	GetByID(ctx context.Context, id string) (*entity.Account, error)
	GetByEmail(ctx context.Context, email string) (*entity.Account, error)
	SetEmailVerified(ctx context.Context, id string) error
}
