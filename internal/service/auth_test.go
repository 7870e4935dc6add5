package service_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/pageza/recipebox/internal/service"
	"github.com/pageza/recipebox/internal/store"
)

func setupAuthTest(t *testing.T) (*store.RecipeStore, *service.AuthService) {
	t.Helper()
	s := store.New()
	return s, service.NewAuthService(s, "test-secret", time.Hour, zap.NewNop())
}

func TestLoginIssuesTokenForStoreUser(t *testing.T) {
	s, auth := setupAuthTest(t)

	user, token, err := auth.Login("ada", "ada@example.com", "anything")
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	current, ok := s.User()
	require.True(t, ok)
	assert.Equal(t, user, current)

	claims, err := auth.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, "ada", claims.Username)
	assert.Equal(t, user.ID, claims.Subject)
}

func TestSignupTwiceYieldsDifferentUsers(t *testing.T) {
	_, auth := setupAuthTest(t)

	first, firstToken, err := auth.Signup("ada", "ada@example.com", "pw")
	require.NoError(t, err)
	second, _, err := auth.Signup("ada", "ada@example.com", "pw")
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)
	_, err = auth.ValidateToken(firstToken)
	assert.ErrorIs(t, err, service.ErrSessionEnded)
}

func TestTokenRejectedAfterLogout(t *testing.T) {
	s, auth := setupAuthTest(t)
	_, token, err := auth.Login("ada", "ada@example.com", "pw")
	require.NoError(t, err)

	auth.Logout()
	assert.False(t, s.IsAuthenticated())

	_, err = auth.ValidateToken(token)
	assert.ErrorIs(t, err, service.ErrSessionEnded)
}

func TestTokenRejectedWithWrongSecret(t *testing.T) {
	s, auth := setupAuthTest(t)
	_, token, err := auth.Login("ada", "ada@example.com", "pw")
	require.NoError(t, err)

	other := service.NewAuthService(s, "other-secret", time.Hour, zap.NewNop())
	_, err = other.ValidateToken(token)
	assert.ErrorIs(t, err, jwt.ErrTokenSignatureInvalid)
}

func TestExpiredTokenRejected(t *testing.T) {
	s := store.New()
	auth := service.NewAuthService(s, "test-secret", -time.Minute, zap.NewNop())
	_, token, err := auth.Login("ada", "ada@example.com", "pw")
	require.NoError(t, err)

	_, err = auth.ValidateToken(token)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestGarbageTokenRejected(t *testing.T) {
	_, auth := setupAuthTest(t)
	_, err := auth.ValidateToken("not.a.token")
	assert.Error(t, err)
}
