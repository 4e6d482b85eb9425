package service

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/complaint-service/internal/config"
	"github.com/spec-kit/complaint-service/internal/domain"
	"github.com/spec-kit/complaint-service/internal/repository"
	apperrors "github.com/spec-kit/complaint-service/pkg/util"
)

type fakeResetRepo struct {
	tokens map[string]*repository.PasswordResetToken
}

func newFakeResetRepo() *fakeResetRepo {
	return &fakeResetRepo{tokens: make(map[string]*repository.PasswordResetToken)}
}

func (r *fakeResetRepo) Create(_ context.Context, token *repository.PasswordResetToken) error {
	token.ID = token.Token
	stored := *token
	r.tokens[token.Token] = &stored
	return nil
}

func (r *fakeResetRepo) GetByToken(_ context.Context, tokenStr string) (*repository.PasswordResetToken, error) {
	token, ok := r.tokens[tokenStr]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *token
	return &clone, nil
}

func (r *fakeResetRepo) MarkUsed(_ context.Context, id string) error {
	if token, ok := r.tokens[id]; ok {
		used := token.ExpiresAt
		token.UsedAt = &used
	}
	return nil
}

func newAuthFixture() (*AuthService, *fakeUserRepo, *fakeResetRepo) {
	users := newFakeUserRepo()
	resets := newFakeResetRepo()
	cfg := config.Config{Auth: config.AuthConfig{
		JWTSecret:             "test-secret",
		AccessTokenTTLMinutes: 30,
		BcryptCost:            4,
	}}
	return NewAuthService(cfg, AuthDependencies{UserRepo: users, PasswordResetRepo: resets}), users, resets
}

func TestRegisterDefaultsToCustomer(t *testing.T) {
	svc, _, _ := newAuthFixture()

	user, token, _, err := svc.Register(context.Background(), "Priya", "priya@example.com", "hunter22", "", "")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleCustomer, user.Role)
	assert.NotEmpty(t, token)
	assert.NotEqual(t, "hunter22", user.PasswordHash)
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	svc, _, _ := newAuthFixture()
	ctx := context.Background()

	_, _, _, err := svc.Register(ctx, "Priya", "priya@example.com", "hunter22", "", "")
	require.NoError(t, err)

	_, _, _, err = svc.Register(ctx, "Other", "priya@example.com", "different", "", "")
	require.Error(t, err)
	domainErr := apperrors.ToDomainError(err)
	assert.Equal(t, "EMAIL_TAKEN", domainErr.Code)
	assert.Equal(t, 409, domainErr.HTTPStatus)
}

func TestLoginRoundTrip(t *testing.T) {
	svc, _, _ := newAuthFixture()
	ctx := context.Background()

	registered, _, _, err := svc.Register(ctx, "Asha", "asha@example.com", "hunter22", "", domain.RoleAgent)
	require.NoError(t, err)

	user, token, _, err := svc.Login(ctx, "asha@example.com", "hunter22")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)

	claims, err := svc.TokenManager().ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, domain.RoleAgent, claims.Role)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc, _, _ := newAuthFixture()
	ctx := context.Background()

	_, _, _, err := svc.Register(ctx, "Asha", "asha@example.com", "hunter22", "", "")
	require.NoError(t, err)

	_, _, _, err = svc.Login(ctx, "asha@example.com", "wrong")
	assert.Equal(t, "UNAUTHORIZED", apperrors.ToDomainError(err).Code)

	_, _, _, err = svc.Login(ctx, "nobody@example.com", "hunter22")
	assert.Equal(t, "UNAUTHORIZED", apperrors.ToDomainError(err).Code)
}

func TestPasswordResetFlow(t *testing.T) {
	svc, _, _ := newAuthFixture()
	ctx := context.Background()

	_, _, _, err := svc.Register(ctx, "Asha", "asha@example.com", "hunter22", "", "")
	require.NoError(t, err)

	token, err := svc.RequestPasswordReset(ctx, "asha@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, token.Token)

	require.NoError(t, svc.ConfirmPasswordReset(ctx, token.Token, "newpassword"))

	_, _, _, err = svc.Login(ctx, "asha@example.com", "newpassword")
	assert.NoError(t, err)
	_, _, _, err = svc.Login(ctx, "asha@example.com", "hunter22")
	assert.Error(t, err)

	// Tokens are single use.
	err = svc.ConfirmPasswordReset(ctx, token.Token, "anotherpass")
	assert.Equal(t, "VALIDATION_FAILED", apperrors.ToDomainError(err).Code)
}
