package application

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopgrid/accounts-api/internal/domain/entity"
	"github.com/shopgrid/accounts-api/pkg/mailer"
	"github.com/shopgrid/accounts-api/pkg/validation"
)

type stubIssuer struct {
	err error
}

func (s *stubIssuer) IssueToken(email, role string) (string, time.Time, error) {
	if s.err != nil {
		return "", time.Time{}, s.err
	}
	return "token-for-" + email + "-" + role, time.Now().Add(time.Hour), nil
}

type recordingPublisher struct {
	jobs []mailer.EmailJob
	err  error
}

func (p *recordingPublisher) PublishJSON(ctx context.Context, body any) error {
	if p.err != nil {
		return p.err
	}
	b, err := json.Marshal(body)
	if err != nil {
		return err
	}
	var job mailer.EmailJob
	if err := json.Unmarshal(b, &job); err != nil {
		return err
	}
	p.jobs = append(p.jobs, job)
	return nil
}

func newTestService(t *testing.T) (*AuthService, *memRepo, *recordingPublisher, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	repo := newMemRepo()
	store := NewAccountStore(repo, validation.New(), nil)
	pub := &recordingPublisher{}
	svc := NewAuthService(store, &stubIssuer{}, pub, rdb, nil, "http://localhost:8080/verify-email")
	return svc, repo, pub, mr
}

func TestRegisterDispatchesVerificationEmail(t *testing.T) {
	svc, _, pub, mr := newTestService(t)

	acct, err := svc.Register(context.Background(), validInput())
	require.NoError(t, err)

	require.Len(t, pub.jobs, 1)
	job := pub.jobs[0]
	assert.Equal(t, []string{"ann@example.com"}, job.To)
	assert.Equal(t, "Verify your account", job.Subject)
	assert.Contains(t, job.Text, "http://localhost:8080/verify-email?token=")

	// The token maps back to the new account in redis.
	keys := mr.Keys()
	require.Len(t, keys, 1)
	assert.True(t, strings.HasPrefix(keys[0], "email:verify:token:"))
	id, err := mr.Get(keys[0])
	require.NoError(t, err)
	assert.Equal(t, acct.ID, id)
}

func TestRegisterSucceedsWhenDispatchFails(t *testing.T) {
	svc, repo, pub, _ := newTestService(t)
	pub.err = errors.New("broker down")

	_, err := svc.Register(context.Background(), validInput())
	assert.NoError(t, err, "notification failure must not fail registration")
	assert.Equal(t, 1, repo.count())
}

func TestRegisterRejectsInvalidInputWithoutDispatch(t *testing.T) {
	svc, repo, pub, _ := newTestService(t)

	in := validInput()
	in.ConfirmPassword = "other"
	_, err := svc.Register(context.Background(), in)

	_, ok := AsValidationError(err)
	assert.True(t, ok)
	assert.Equal(t, 0, repo.count())
	assert.Empty(t, pub.jobs)
}

func TestLoginGuardOrdering(t *testing.T) {
	svc, repo, _, _ := newTestService(t)

	_, err := svc.Register(context.Background(), validInput())
	require.NoError(t, err)

	tests := []struct {
		name     string
		email    string
		password string
		prep     func()
		want     error
	}{
		{"missing email", "", "x", nil, ErrMissingCredentials},
		{"missing password", "ann@example.com", "", nil, ErrMissingCredentials},
		{"unknown account", "ghost@example.com", "abcA123!", nil, ErrUnknownAccount},
		{"wrong password", "ann@example.com", "Abc123?", nil, ErrInvalidPassword},
		{"blocked account", "ann@example.com", "abcA123!", func() {
			repo.setStatus("ann@example.com", entity.StatusBlocked)
		}, ErrAccountNotActive},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.prep != nil {
				tt.prep()
			}
			_, token, err := svc.Login(context.Background(), tt.email, tt.password)
			assert.ErrorIs(t, err, tt.want)
			assert.Empty(t, token)
		})
	}
}

func TestLoginSuccessReturnsSanitizedViewAndToken(t *testing.T) {
	svc, _, _, _ := newTestService(t)

	_, err := svc.Register(context.Background(), validInput())
	require.NoError(t, err)

	view, token, err := svc.Login(context.Background(), "a@b.com", "abcA123!")
	assert.ErrorIs(t, err, ErrUnknownAccount)

	view, token, err = svc.Login(context.Background(), "ann@example.com", "abcA123!")
	require.NoError(t, err)
	assert.Equal(t, "token-for-ann@example.com-buyer", token)
	assert.Equal(t, "ann@example.com", view.Email)
	assert.Equal(t, "buyer", view.Role)

	// The view must not leak the stored hash in any serialized form.
	b, err := json.Marshal(view)
	require.NoError(t, err)
	assert.NotContains(t, strings.ToLower(string(b)), "password")
}

func TestLoginEndToEnd(t *testing.T) {
	svc, _, _, _ := newTestService(t)

	in := RegisterInput{
		Email:           "a@b.com",
		Password:        "abcA123!",
		ConfirmPassword: "abcA123!",
		FirstName:       "Ann",
		LastName:        "Lee",
	}
	_, err := svc.Register(context.Background(), in)
	require.NoError(t, err)

	view, token, err := svc.Login(context.Background(), "a@b.com", "abcA123!")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, "a@b.com", view.Email)
}

func TestLoginSurfacesIssuerFailure(t *testing.T) {
	svc, _, _, _ := newTestService(t)
	svc.Tokens = &stubIssuer{err: errors.New("kms down")}

	_, err := svc.Register(context.Background(), validInput())
	require.NoError(t, err)

	_, _, err = svc.Login(context.Background(), "ann@example.com", "abcA123!")
	assert.Error(t, err)
}

func TestGetCurrentAccount(t *testing.T) {
	svc, _, _, _ := newTestService(t)

	_, err := svc.GetCurrentAccount(context.Background(), "")
	assert.ErrorIs(t, err, ErrNoIdentity)

	_, err = svc.GetCurrentAccount(context.Background(), "ghost@example.com")
	assert.ErrorIs(t, err, ErrUnknownAccount)

	_, err = svc.Register(context.Background(), validInput())
	require.NoError(t, err)

	acct, err := svc.GetCurrentAccount(context.Background(), "ann@example.com")
	require.NoError(t, err)
	assert.Equal(t, "ann@example.com", acct.Email)
}

func TestConfirmVerification(t *testing.T) {
	svc, repo, _, mr := newTestService(t)

	acct, err := svc.Register(context.Background(), validInput())
	require.NoError(t, err)

	keys := mr.Keys()
	require.Len(t, keys, 1)
	token := strings.TrimPrefix(keys[0], "email:verify:token:")

	require.NoError(t, svc.ConfirmVerification(context.Background(), token))

	stored, err := repo.GetByID(context.Background(), acct.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.EmailVerifiedAt)

	// The token is single-use.
	assert.ErrorIs(t, svc.ConfirmVerification(context.Background(), token), ErrInvalidVerifyToken)
}

func TestConfirmVerificationRejectsTokenForRemovedAccount(t *testing.T) {
	svc, repo, _, mr := newTestService(t)

	_, err := svc.Register(context.Background(), validInput())
	require.NoError(t, err)

	keys := mr.Keys()
	require.Len(t, keys, 1)
	token := strings.TrimPrefix(keys[0], "email:verify:token:")

	repo.remove("ann@example.com")

	// An orphaned token answers like any other dead token, and is gone after.
	assert.ErrorIs(t, svc.ConfirmVerification(context.Background(), token), ErrInvalidVerifyToken)
	assert.Empty(t, mr.Keys())
}

func TestConfirmVerificationRejectsUnknownToken(t *testing.T) {
	svc, _, _, _ := newTestService(t)

	assert.ErrorIs(t, svc.ConfirmVerification(context.Background(), ""), ErrInvalidVerifyToken)
	assert.ErrorIs(t, svc.ConfirmVerification(context.Background(), "bogus"), ErrInvalidVerifyToken)
}
