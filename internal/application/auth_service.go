package application

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/shopgrid/accounts-api/internal/domain/entity"
	"github.com/shopgrid/accounts-api/internal/domain/repository"
	"github.com/shopgrid/accounts-api/pkg/mailer"
)

const verifyTokenTTL = 24 * time.Hour

func verifyTokenKey(tok string) string { return "email:verify:token:" + tok }

// TokenIssuer signs a bearer token bound to an account's identity and role.
type TokenIssuer interface {
	IssueToken(email, role string) (string, time.Time, error)
}

// NotificationPublisher enqueues a notification job for asynchronous
// delivery. Enqueue failures are the caller's to log and drop.
type NotificationPublisher interface {
	PublishJSON(ctx context.Context, body any) error
}

// AccountView is the caller-facing shape of an account. It never carries
// the password hash or the reserved reset fields.
type AccountView struct {
	ID              string     `json:"id"`
	Email           string     `json:"email"`
	Role            string     `json:"role"`
	FirstName       string     `json:"firstName"`
	LastName        string     `json:"lastName"`
	ContactNumber   string     `json:"contactNumber,omitempty"`
	ShippingAddress string     `json:"shippingAddress,omitempty"`
	ImageURL        string     `json:"imageURL,omitempty"`
	Status          string     `json:"status"`
	EmailVerifiedAt *time.Time `json:"emailVerifiedAt,omitempty"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}

// NewAccountView strips an account down to its sanitized view.
func NewAccountView(a *entity.Account) AccountView {
	return AccountView{
		ID:              a.ID,
		Email:           a.Email,
		Role:            string(a.Role),
		FirstName:       a.FirstName,
		LastName:        a.LastName,
		ContactNumber:   a.ContactNumber,
		ShippingAddress: a.ShippingAddress,
		ImageURL:        a.ImageURL,
		Status:          string(a.Status),
		EmailVerifiedAt: a.EmailVerifiedAt,
		CreatedAt:       a.CreatedAt,
		UpdatedAt:       a.UpdatedAt,
	}
}

// AuthService orchestrates registration and login and enforces the
// account-state gate before issuing tokens.
type AuthService struct {
	Store     *AccountStore
	Tokens    TokenIssuer
	Pub       NotificationPublisher
	RDB       *redis.Client
	Logger    *logrus.Logger
	VerifyURL string
}

func NewAuthService(store *AccountStore, tokens TokenIssuer, pub NotificationPublisher, rdb *redis.Client, logger *logrus.Logger, verifyURL string) *AuthService {
	return &AuthService{Store: store, Tokens: tokens, Pub: pub, RDB: rdb, Logger: logger, VerifyURL: verifyURL}
}

// Register creates the account and dispatches the verification email.
// The dispatch is fire-and-forget: a failed enqueue is logged and dropped,
// never surfaced to the registering caller.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*entity.Account, error) {
	acct, err := s.Store.CreateAccount(ctx, in)
	if err != nil {
		return nil, err
	}
	s.dispatchVerificationEmail(ctx, acct)
	return acct, nil
}

// Login walks the ordered guards and issues a token once all of them pass.
func (s *AuthService) Login(ctx context.Context, email, password string) (AccountView, string, error) {
	if email == "" || password == "" {
		return AccountView{}, "", ErrMissingCredentials
	}
	acct, err := s.Store.FindAccountByEmail(ctx, email)
	if err != nil {
		return AccountView{}, "", err
	}
	if acct == nil {
		return AccountView{}, "", ErrUnknownAccount
	}
	if !s.Store.VerifyPassword(acct, password) {
		return AccountView{}, "", ErrInvalidPassword
	}
	if acct.Status != entity.StatusActive {
		return AccountView{}, "", ErrAccountNotActive
	}
	token, _, err := s.Tokens.IssueToken(acct.Email, string(acct.Role))
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("email", acct.Email).Error("token issuance failed")
		}
		return AccountView{}, "", err
	}
	return NewAccountView(acct), token, nil
}

// GetCurrentAccount resolves an already-authenticated identity to its
// account. Identity extraction happens upstream in the JWT middleware.
func (s *AuthService) GetCurrentAccount(ctx context.Context, email string) (*entity.Account, error) {
	if email == "" {
		return nil, ErrNoIdentity
	}
	acct, err := s.Store.FindAccountByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if acct == nil {
		return nil, ErrUnknownAccount
	}
	return acct, nil
}

// ConfirmVerification resolves a verification token and stamps the account.
func (s *AuthService) ConfirmVerification(ctx context.Context, token string) error {
	if token == "" || s.RDB == nil {
		return ErrInvalidVerifyToken
	}
	id, err := s.RDB.Get(ctx, verifyTokenKey(token)).Result()
	if err != nil || id == "" {
		return ErrInvalidVerifyToken
	}
	if err := s.Store.MarkEmailVerified(ctx, id); err != nil {
		// The account behind the token is gone: the token is as dead as
		// an expired or unknown one.
		if errors.Is(err, repository.ErrAccountNotFound) {
			s.RDB.Del(ctx, verifyTokenKey(token))
			return ErrInvalidVerifyToken
		}
		return err
	}
	s.RDB.Del(ctx, verifyTokenKey(token))
	return nil
}

func (s *AuthService) dispatchVerificationEmail(ctx context.Context, acct *entity.Account) {
	if s.Pub == nil {
		return
	}
	link := ""
	if s.RDB != nil {
		tok, err := genToken(32)
		if err == nil {
			if err := s.RDB.Set(ctx, verifyTokenKey(tok), acct.ID, verifyTokenTTL).Err(); err == nil {
				link = s.VerifyURL + "?token=" + tok
			} else if s.Logger != nil {
				s.Logger.WithError(err).Warn("failed to store verification token")
			}
		}
	}
	body := "Thank you for creating an account."
	if link != "" {
		body += " Please verify your email address: " + link
	}
	job := mailer.EmailJob{
		To:      []string{acct.Email},
		Subject: "Verify your account",
		Text:    body,
	}
	if err := s.Pub.PublishJSON(ctx, job); err != nil && s.Logger != nil {
		// Deliberate drop: notification failure never fails registration.
		s.Logger.WithError(err).WithField("email", acct.Email).Warn("failed to enqueue verification email")
	}
}

func genToken(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
