package application

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/shopgrid/accounts-api/internal/domain/entity"
	"github.com/shopgrid/accounts-api/internal/domain/repository"
	"github.com/shopgrid/accounts-api/pkg/helpers"
	"github.com/shopgrid/accounts-api/pkg/validation"
)

// RegisterInput is the raw registration submission. Password and
// ConfirmPassword exist only here; neither is ever persisted.
type RegisterInput struct {
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,strongpwd"`
	ConfirmPassword string `json:"confirmPassword" validate:"required,eqfield=Password"`
	FirstName       string `json:"firstName" validate:"required,min=3,max=100"`
	LastName        string `json:"lastName" validate:"required,min=3,max=100"`
	Role            string `json:"role" validate:"omitempty,oneof=buyer store-manager admin"`
	ContactNumber   string `json:"contactNumber" validate:"omitempty,e164"`
	ShippingAddress string `json:"shippingAddress"`
	ImageURL        string `json:"imageURL" validate:"omitempty,url"`
}

// AccountStore owns the durable representation of an account: it validates
// fields, enforces email uniqueness and hashes the raw password before the
// record ever reaches the persistence layer.
type AccountStore struct {
	repo     repository.AccountRepository
	validate *validation.Validator
	logger   *logrus.Logger
}

func NewAccountStore(repo repository.AccountRepository, validate *validation.Validator, logger *logrus.Logger) *AccountStore {
	return &AccountStore{repo: repo, validate: validate, logger: logger}
}

// CreateAccount validates in, hashes the password and persists the record
// with status defaulted to active and role defaulted to buyer.
func (s *AccountStore) CreateAccount(ctx context.Context, in RegisterInput) (*entity.Account, error) {
	in.Email = entity.NormalizeEmail(in.Email)
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)

	if fields := s.validate.Validate(in); fields != nil {
		return nil, &ValidationError{Fields: fields}
	}

	existing, err := s.repo.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, s.storeFailure("lookup before create", err)
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	// Explicit one-way transform; no persistence hook involved. The raw
	// password and its confirmation are dropped with the input.
	hash, err := helpers.HashPassword(in.Password)
	if err != nil {
		return nil, s.storeFailure("hash password", err)
	}

	acct := &entity.Account{
		Email:           in.Email,
		PasswordHash:    hash,
		Role:            entity.RoleBuyer,
		FirstName:       in.FirstName,
		LastName:        in.LastName,
		ContactNumber:   in.ContactNumber,
		ShippingAddress: in.ShippingAddress,
		ImageURL:        in.ImageURL,
		Status:          entity.StatusActive,
	}
	if r := entity.Role(in.Role); entity.ValidRole(r) {
		acct.Role = r
	}

	if err := s.repo.Create(ctx, acct); err != nil {
		// The unique index is authoritative under concurrent registrations.
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, ErrEmailTaken
		}
		return nil, s.storeFailure("create account", err)
	}
	return acct, nil
}

// FindAccountByEmail performs a case-insensitive, trimmed lookup. A missing
// account is (nil, nil): absence is a normal outcome, not a failure.
func (s *AccountStore) FindAccountByEmail(ctx context.Context, email string) (*entity.Account, error) {
	acct, err := s.repo.GetByEmail(ctx, entity.NormalizeEmail(email))
	if err != nil {
		return nil, s.storeFailure("find by email", err)
	}
	return acct, nil
}

// VerifyPassword compares raw against the stored hash. Timing is handled by
// the bcrypt primitive.
func (s *AccountStore) VerifyPassword(acct *entity.Account, raw string) bool {
	return helpers.CheckPassword(acct.PasswordHash, raw)
}

// MarkEmailVerified stamps the account's email_verified_at. Verification
// does not gate login; status alone does.
func (s *AccountStore) MarkEmailVerified(ctx context.Context, id string) error {
	err := s.repo.SetEmailVerified(ctx, id)
	if err == nil || errors.Is(err, repository.ErrAccountNotFound) {
		return err
	}
	return s.storeFailure("mark email verified", err)
}

// storeFailure logs the internal cause and returns the generic
// infrastructure error so callers never see diagnostic detail.
func (s *AccountStore) storeFailure(op string, err error) error {
	if s.logger != nil {
		s.logger.WithError(err).WithField("op", op).Error("account store failure")
	}
	return fmt.Errorf("%w: %s", ErrStoreUnavailable, op)
}
