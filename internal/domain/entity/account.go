package entity

import (
	"strings"
	"time"
)

// Role labels what an account holder may later do on the platform.
type Role string

const (
	RoleBuyer        Role = "buyer"
	RoleStoreManager Role = "store-manager"
	RoleAdmin        Role = "admin"
)

// Status gates login eligibility. Only active accounts may log in.
type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
	StatusBlocked  Status = "blocked"
)

// Account is the aggregate root for the accounts domain.
// PasswordHash holds a bcrypt digest; the raw password is never persisted.
type Account struct {
	ID              string
	Email           string
	PasswordHash    string
	Role            Role
	FirstName       string
	LastName        string
	ContactNumber   string
	ShippingAddress string
	ImageURL        string
	Status          Status

	// Reserved for a password-reset flow; no behavior is attached yet.
	PasswordResetToken   string
	PasswordResetExpires *time.Time

	EmailVerifiedAt *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// NormalizeEmail lowercases and trims an address the way the store keys it.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ValidRole reports whether r is one of the known role labels.
func ValidRole(r Role) bool {
	switch r {
	case RoleBuyer, RoleStoreManager, RoleAdmin:
		return true
	}
	return false
}
