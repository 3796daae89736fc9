package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"fintrack/internal/domain"
	"fintrack/internal/repository"
	"fintrack/internal/utils"
)

func newUserService() *UserService {
	return NewUserService(repository.NewMemoryUserRepository(), "test-secret")
}

func TestRegister(t *testing.T) {
	svc := newUserService()

	user, err := svc.Register(context.Background(), "User Test", "test@mail.com", "1234")
	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "User Test", user.Name)
	assert.Equal(t, "test@mail.com", user.Email)
	assert.Equal(t, "user", user.Role)

	// The stored credential is a bcrypt hash of the password, not the password.
	assert.NotEqual(t, "1234", user.Password)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("1234")))
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc := newUserService()
	ctx := context.Background()

	first, err := svc.Register(ctx, "User Test", "test@mail.com", "1234")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "Second User Test", "test@mail.com", "4321")
	require.ErrorIs(t, err, domain.ErrDuplicateEmail)

	// The first registration survives the rejected duplicate.
	kept, err := svc.Profile(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, first.Email, kept.Email)
}

func TestRegister_EmailMatchIsCaseSensitive(t *testing.T) {
	svc := newUserService()
	ctx := context.Background()

	_, err := svc.Register(ctx, "User Test", "test@mail.com", "1234")
	require.NoError(t, err)

	// Same address in different case is a distinct email here.
	_, err = svc.Register(ctx, "User Test", "Test@mail.com", "1234")
	require.NoError(t, err)
}

func TestAuthenticate(t *testing.T) {
	svc := newUserService()
	ctx := context.Background()

	created, err := svc.Register(ctx, "User Test", "test@mail.com", "1234")
	require.NoError(t, err)

	user, token, err := svc.Authenticate(ctx, "test@mail.com", "1234")
	require.NoError(t, err)
	assert.Equal(t, created.ID, user.ID)
	require.NotEmpty(t, token)

	claims, err := utils.ParseJWT(token, "test-secret")
	require.NoError(t, err)
	assert.Equal(t, created.ID, claims.UserID)
}

func TestAuthenticate_WrongPassword(t *testing.T) {
	svc := newUserService()
	ctx := context.Background()

	_, err := svc.Register(ctx, "User Test", "test@mail.com", "1234")
	require.NoError(t, err)

	_, _, err = svc.Authenticate(ctx, "test@mail.com", "wrong")
	require.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestAuthenticate_UnknownEmail(t *testing.T) {
	svc := newUserService()

	_, _, err := svc.Authenticate(context.Background(), "nobody@mail.com", "1234")
	require.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestProfile_NotFound(t *testing.T) {
	svc := newUserService()

	_, err := svc.Profile(context.Background(), "non-existent-user-id")
	require.ErrorIs(t, err, domain.ErrUserNotFound)
}
