package service

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/lshigami/mockinterview/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTokenService(secret string, ttl time.Duration) *tokenService {
	cfg := &config.Config{Auth: config.Auth{JwtSecret: secret, JwtIssuer: "mockinterview", TokenExpiry: ttl}}
	svc, err := NewTokenService(cfg)
	if err != nil {
		panic(err)
	}
	return svc.(*tokenService)
}

func TestTokenServiceRequiresSecret(t *testing.T) {
	cfg := &config.Config{Auth: config.Auth{JwtIssuer: "mockinterview", TokenExpiry: time.Hour}}
	svc, err := NewTokenService(cfg)
	assert.ErrorIs(t, err, ErrMissingJWTSecret)
	assert.Nil(t, svc)
}

func TestEmptyKeyTokenIsRejected(t *testing.T) {
	forged, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Issuer:    "mockinterview",
		Subject:   "1",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString([]byte(""))
	require.NoError(t, err)

	_, err = newTestTokenService("secret", time.Hour).Parse(forged)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenRoundTrip(t *testing.T) {
	svc := newTestTokenService("secret", time.Hour)

	token, err := svc.Issue(42)
	require.NoError(t, err)

	id, err := svc.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), id)
}

func TestTokenExpired(t *testing.T) {
	svc := newTestTokenService("secret", time.Minute)
	token, err := svc.Issue(1)
	require.NoError(t, err)

	svc.now = func() time.Time { return time.Now().Add(2 * time.Minute) }
	_, err = svc.Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenWrongSecret(t *testing.T) {
	token, err := newTestTokenService("one", time.Hour).Issue(1)
	require.NoError(t, err)

	_, err = newTestTokenService("two", time.Hour).Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenRejectsMalformedAndForeign(t *testing.T) {
	svc := newTestTokenService("secret", time.Hour)

	for _, tok := range []string{"", "garbage", "a.b.c"} {
		_, err := svc.Parse(tok)
		assert.ErrorIs(t, err, ErrInvalidToken, tok)
	}

	// valid signature but other issuer
	foreign := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Issuer:    "someone-else",
		Subject:   "1",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	signed, err := foreign.SignedString([]byte("secret"))
	require.NoError(t, err)
	_, err = svc.Parse(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)

	// no expiry
	noExp := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{Issuer: "mockinterview", Subject: "1"})
	signed, err = noExp.SignedString([]byte("secret"))
	require.NoError(t, err)
	_, err = svc.Parse(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
