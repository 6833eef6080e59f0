package application

import (
	"errors"

	"github.com/shopgrid/accounts-api/pkg/validation"
)

// Login rejections, one per guard. The first failing guard determines the
// outcome; later guards are never evaluated.
var (
	ErrMissingCredentials = errors.New("please provide your credentials")
	ErrUnknownAccount     = errors.New("no account found, please create an account")
	ErrInvalidPassword    = errors.New("password is not correct")
	ErrAccountNotActive   = errors.New("your account is not active yet")
)

var (
	// ErrEmailTaken signals a registration conflict on the email address.
	ErrEmailTaken = errors.New("email already registered")
	// ErrNoIdentity is returned when a caller reaches an authenticated
	// operation without an established identity.
	ErrNoIdentity = errors.New("no authenticated identity")
	// ErrInvalidVerifyToken covers unknown and expired verification tokens.
	ErrInvalidVerifyToken = errors.New("invalid or expired verification token")
	// ErrStoreUnavailable wraps infrastructure-level persistence failures.
	// It is not client-correctable; the cause is logged, never returned.
	ErrStoreUnavailable = errors.New("account store unavailable")
)

// ValidationError carries field-level failures in input order. It is
// client-correctable and surfaced verbatim.
type ValidationError struct {
	Fields []validation.FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	return "validation failed: " + e.Fields[0].Field + " " + e.Fields[0].Message
}

// AsValidationError unwraps err into a *ValidationError if it is one.
func AsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
