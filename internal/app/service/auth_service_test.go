package service

import (
	"context"
	"testing"
	"time"
	"todo_api/internal/common"
	"todo_api/internal/common/security"
	"todo_api/internal/domain/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthService() *AuthService {
	tokens := security.NewTokenAuth([]byte("test-secret"), time.Hour)
	return NewAuthService(repository.NewMemoryUserRepository(), tokens)
}

func strPtr(s string) *string { return &s }

func TestRegister_Success(t *testing.T) {
	t.Parallel()
	s := newAuthService()

	resp, err := s.Register(context.Background(), RegisterRequest{
		Username: "alice",
		Password: "secret1",
	})
	require.NoError(t, err)
	require.NotEmpty(t, resp.Token)
	assert.Equal(t, "alice", resp.User.Username)
	assert.NotEmpty(t, resp.User.ID)
	assert.Empty(t, resp.User.HashedPassword, "hash must never leave the service")
}

func TestRegister_CollectsAllValidationFailures(t *testing.T) {
	t.Parallel()
	s := newAuthService()

	_, err := s.Register(context.Background(), RegisterRequest{
		Username:        "ab",
		Password:        "short",
		ConfirmPassword: strPtr("different"),
	})
	require.Error(t, err)

	var verr *common.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "Username must be at least 3 characters long", verr.Fields["username"])
	assert.Equal(t, "Password must be at least 6 characters long", verr.Fields["password"])
	assert.Equal(t, "Passwords must match", verr.Fields["confirmPassword"])
	assert.Len(t, verr.Fields, 3)
}

func TestRegister_EmptyFields(t *testing.T) {
	t.Parallel()
	s := newAuthService()

	_, err := s.Register(context.Background(), RegisterRequest{Username: "   ", Password: "  "})
	var verr *common.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "Username is required", verr.Fields["username"])
	assert.Equal(t, "Password is required", verr.Fields["password"])
}

func TestRegister_ConfirmPasswordOptional(t *testing.T) {
	t.Parallel()
	s := newAuthService()

	// Absent confirmation is fine; a present one must match.
	_, err := s.Register(context.Background(), RegisterRequest{Username: "alice", Password: "secret1"})
	require.NoError(t, err)

	_, err = s.Register(context.Background(), RegisterRequest{
		Username:        "bob",
		Password:        "secret1",
		ConfirmPassword: strPtr("secret1"),
	})
	require.NoError(t, err)
}

func TestRegister_DuplicateUsername(t *testing.T) {
	t.Parallel()
	s := newAuthService()

	_, err := s.Register(context.Background(), RegisterRequest{Username: "alice", Password: "secret1"})
	require.NoError(t, err)

	_, err = s.Register(context.Background(), RegisterRequest{Username: "alice", Password: "another-pass"})
	require.ErrorIs(t, err, common.ErrDuplicateUser)
}

func TestLogin_Success(t *testing.T) {
	t.Parallel()
	s := newAuthService()

	reg, err := s.Register(context.Background(), RegisterRequest{Username: "alice", Password: "secret1"})
	require.NoError(t, err)

	resp, err := s.Login(context.Background(), LoginRequest{Username: "alice", Password: "secret1"})
	require.NoError(t, err)
	require.NotEmpty(t, resp.Token)
	assert.Equal(t, reg.User.ID, resp.User.ID)
	assert.Empty(t, resp.User.HashedPassword)
}

func TestLogin_InvalidCredentialsIndistinguishable(t *testing.T) {
	t.Parallel()
	s := newAuthService()

	_, err := s.Register(context.Background(), RegisterRequest{Username: "alice", Password: "secret1"})
	require.NoError(t, err)

	_, wrongPass := s.Login(context.Background(), LoginRequest{Username: "alice", Password: "wrongpass"})
	_, noUser := s.Login(context.Background(), LoginRequest{Username: "nosuchuser", Password: "secret1"})

	require.ErrorIs(t, wrongPass, common.ErrInvalidCredentials)
	require.ErrorIs(t, noUser, common.ErrInvalidCredentials)
	assert.Equal(t, wrongPass.Error(), noUser.Error())
}

func TestLogin_Validation(t *testing.T) {
	t.Parallel()
	s := newAuthService()

	_, err := s.Login(context.Background(), LoginRequest{})
	var verr *common.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "username")
	assert.Contains(t, verr.Fields, "password")
}

func TestVerify(t *testing.T) {
	t.Parallel()
	s := newAuthService()

	reg, err := s.Register(context.Background(), RegisterRequest{Username: "alice", Password: "secret1"})
	require.NoError(t, err)

	user, err := s.Verify(context.Background(), reg.User.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
	assert.Empty(t, user.HashedPassword)

	_, err = s.Verify(context.Background(), "no-such-id")
	require.ErrorIs(t, err, common.ErrInvalidToken)
}

func TestBootstrap_Idempotent(t *testing.T) {
	t.Parallel()
	s := newAuthService()

	require.NoError(t, s.Bootstrap(context.Background(), "admin", "admin-pass"))
	require.NoError(t, s.Bootstrap(context.Background(), "admin", "admin-pass"))

	resp, err := s.Login(context.Background(), LoginRequest{Username: "admin", Password: "admin-pass"})
	require.NoError(t, err)
	assert.Equal(t, "admin", resp.User.Username)
}
