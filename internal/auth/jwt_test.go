package auth_test

import (
	"testing"
	"time"

	"liveboard/internal/auth"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
)

const testSecret = "test-secret-key"

func TestGenerateAndParseToken(t *testing.T) {
	manager := auth.NewTokenManager(testSecret, 7*24*time.Hour)
	identity := auth.Identity{ID: 42, Email: "a@x.com", Role: "user"}

	token, err := manager.GenerateToken(identity)
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	parsed, err := manager.ParseToken(token)
	assert.NoError(t, err)
	assert.Equal(t, identity, parsed)
}

func TestGenerateToken_ExpiresAfterTTL(t *testing.T) {
	manager := auth.NewTokenManager(testSecret, 7*24*time.Hour)

	token, err := manager.GenerateToken(auth.Identity{ID: 1, Email: "a@x.com", Role: "admin"})
	assert.NoError(t, err)

	claims := &auth.Claims{}
	_, _, err = jwt.NewParser().ParseUnverified(token, claims)
	assert.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(7*24*time.Hour), claims.ExpiresAt.Time, time.Minute)
}

func TestParseToken_Empty(t *testing.T) {
	manager := auth.NewTokenManager(testSecret, time.Hour)

	_, err := manager.ParseToken("")
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestParseToken_InvalidToken(t *testing.T) {
	manager := auth.NewTokenManager(testSecret, time.Hour)

	_, err := manager.ParseToken("invalid-token")
	assert.Error(t, err)
	assert.Equal(t, "invalid token", err.Error())
}

func TestParseToken_WrongSecret(t *testing.T) {
	issuer := auth.NewTokenManager("other-secret", time.Hour)
	token, _ := issuer.GenerateToken(auth.Identity{ID: 1, Email: "a@x.com", Role: "user"})

	_, err := auth.NewTokenManager(testSecret, time.Hour).ParseToken(token)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestParseToken_ExpiredToken(t *testing.T) {
	claims := jwt.MapClaims{
		"id":    1,
		"email": "a@x.com",
		"role":  "user",
		"exp":   time.Now().Add(-1 * time.Hour).Unix(), // expired an hour ago
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	expiredToken, _ := token.SignedString([]byte(testSecret))

	_, err := auth.NewTokenManager(testSecret, time.Hour).ParseToken(expiredToken)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestParseToken_MissingExpiry(t *testing.T) {
	claims := jwt.MapClaims{"id": 1, "email": "a@x.com", "role": "user"}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, _ := token.SignedString([]byte(testSecret))

	_, err := auth.NewTokenManager(testSecret, time.Hour).ParseToken(tokenString)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestParseToken_MissingClaims(t *testing.T) {
	claims := jwt.MapClaims{
		"exp": time.Now().Add(24 * time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenWithoutIdentity, _ := token.SignedString([]byte(testSecret))

	_, err := auth.NewTokenManager(testSecret, time.Hour).ParseToken(tokenWithoutIdentity)
	assert.Error(t, err)
	assert.Equal(t, "invalid claims", err.Error())
}

func TestParseToken_RejectsNoneAlgorithm(t *testing.T) {
	claims := jwt.MapClaims{
		"id":    1,
		"email": "a@x.com",
		"role":  "admin",
		"exp":   time.Now().Add(time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodNone, claims)
	unsigned, _ := token.SignedString(jwt.UnsafeAllowNoneSignatureType)

	_, err := auth.NewTokenManager(testSecret, time.Hour).ParseToken(unsigned)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestPassword_HashAndCheck(t *testing.T) {
	hash, err := auth.HashPassword("secret1", 4)
	assert.NoError(t, err)
	assert.NotEqual(t, "secret1", hash)

	assert.True(t, auth.CheckPassword(hash, "secret1"))
	assert.False(t, auth.CheckPassword(hash, "secret2"))
}
