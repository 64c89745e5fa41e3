package auth

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signToken(t *testing.T, secret string, claims Claims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func TestVerifyValidToken(t *testing.T) {
	verifier := NewJWTVerifier("test-secret")
	tokenStr := signToken(t, "test-secret", Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
		UID:   "u1",
		Email: "u1@example.com",
		Name:  "User One",
	})

	claims, err := verifier.Verify(context.Background(), tokenStr)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UID)
	assert.Equal(t, "u1@example.com", claims.Email)
	assert.Equal(t, "User One", claims.Name)
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	verifier := NewJWTVerifier("test-secret")
	tokenStr := signToken(t, "other-secret", Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
		UID: "u1",
	})

	_, err := verifier.Verify(context.Background(), tokenStr)
	assert.Error(t, err)
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	verifier := NewJWTVerifier("test-secret")
	tokenStr := signToken(t, "test-secret", Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
		UID: "u1",
	})

	_, err := verifier.Verify(context.Background(), tokenStr)
	assert.Error(t, err)
}

func TestVerifyRejectsMissingUID(t *testing.T) {
	verifier := NewJWTVerifier("test-secret")
	tokenStr := signToken(t, "test-secret", Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})

	_, err := verifier.Verify(context.Background(), tokenStr)
	assert.Error(t, err)
}

func TestVerifyRejectsGarbage(t *testing.T) {
	verifier := NewJWTVerifier("test-secret")

	_, err := verifier.Verify(context.Background(), "not-a-token")
	assert.Error(t, err)
}
