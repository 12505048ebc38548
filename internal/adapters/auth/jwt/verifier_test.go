package jwt

import (
	"context"
	"errors"
	"testing"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func sign(t *testing.T, method gojwt.SigningMethod, key any, c Claims) string {
	t.Helper()
	s, err := gojwt.NewWithClaims(method, c).SignedString(key)
	require.NoError(t, err)
	return s
}

func validClaims() Claims {
	return Claims{
		Email: "ana@example.com",
		Name:  "Ana",
		Role:  "adopter",
		RegisteredClaims: gojwt.RegisteredClaims{
			Subject:   "user-1",
			Issuer:    "pet-adoption-hub",
			ExpiresAt: gojwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
}

func TestVerify_ValidToken(t *testing.T) {
	v := NewVerifier(Config{Secret: testSecret, Issuer: "pet-adoption-hub"})

	claims, err := v.Verify(context.Background(), sign(t, gojwt.SigningMethodHS256, []byte(testSecret), validClaims()))
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "Ana", claims.Name)
	assert.Equal(t, "adopter", claims.Role)
}

func TestVerify_Rejects(t *testing.T) {
	v := NewVerifier(Config{Secret: testSecret, Issuer: "pet-adoption-hub"})

	expired := validClaims()
	expired.ExpiresAt = gojwt.NewNumericDate(time.Now().Add(-time.Hour))

	noSubject := validClaims()
	noSubject.Subject = ""

	otherIssuer := validClaims()
	otherIssuer.Issuer = "someone-else"

	noExp := validClaims()
	noExp.ExpiresAt = nil

	cases := map[string]string{
		"wrong secret":  sign(t, gojwt.SigningMethodHS256, []byte("other"), validClaims()),
		"wrong alg":     sign(t, gojwt.SigningMethodHS384, []byte(testSecret), validClaims()),
		"expired":       sign(t, gojwt.SigningMethodHS256, []byte(testSecret), expired),
		"other issuer":  sign(t, gojwt.SigningMethodHS256, []byte(testSecret), otherIssuer),
		"no expiration": sign(t, gojwt.SigningMethodHS256, []byte(testSecret), noExp),
		"garbage":       "not-a-token",
	}
	for name, tok := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := v.Verify(context.Background(), tok)
			assert.Error(t, err)
		})
	}

	_, err := v.Verify(context.Background(), sign(t, gojwt.SigningMethodHS256, []byte(testSecret), noSubject))
	assert.True(t, errors.Is(err, ErrMissingUserID))
}

func TestVerify_NotConfigured(t *testing.T) {
	v := NewVerifier(Config{})
	_, err := v.Verify(context.Background(), "x")
	assert.True(t, errors.Is(err, ErrNotConfigured))
}
