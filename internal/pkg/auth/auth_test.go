package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/mindforge/mindforge-api/internal/app/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newTestService() *JWTService {
	return NewJWTService(JWTConfig{SecretKey: "test-secret", AccessTokenExp: time.Hour, TokenIssuer: "mindforge.test"})
}

func TestGenerateAndValidate(t *testing.T) {
	svc := newTestService()
	user := &models.User{ID: uuid.New(), Email: "s@mindforge.dev", RoleType: models.RoleStudent}

	token, expiresIn, err := svc.GenerateAccessToken(user)
	require.NoError(t, err)
	assert.Equal(t, int64(3600), expiresIn)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, models.RoleStudent, claims.Role)
	assert.Equal(t, user.ID.String(), claims.Subject)
}

func TestValidateTokenRejectsExpiredAndForeign(t *testing.T) {
	svc := newTestService()
	user := &models.User{ID: uuid.New(), Email: "s@mindforge.dev", RoleType: models.RoleAdmin}
	token, _, err := svc.GenerateAccessToken(user)
	require.NoError(t, err)

	svc.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	_, err = svc.ValidateToken(token)
	assert.ErrorIs(t, err, ErrExpiredToken)

	other := NewJWTService(JWTConfig{SecretKey: "other", AccessTokenExp: time.Hour, TokenIssuer: "mindforge.test"})
	_, err = other.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = svc.ValidateToken("")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestExtractBearerToken(t *testing.T) {
	tok, err := ExtractBearerToken("Bearer abc.def")
	require.NoError(t, err)
	assert.Equal(t, "abc.def", tok)

	_, err = ExtractBearerToken("abc.def")
	assert.ErrorIs(t, err, ErrInvalidFormat)
	_, err = ExtractBearerToken("Bearer ")
	assert.ErrorIs(t, err, ErrInvalidFormat)
}

func TestPasswordHasher(t *testing.T) {
	h := NewPasswordHasher(bcrypt.MinCost)
	hash, err := h.Hash("s3cretpass")
	require.NoError(t, err)
	assert.True(t, h.Check(hash, "s3cretpass"))
	assert.False(t, h.Check(hash, "wrong"))
}
