package service

import (
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/lshigami/mockinterview/config"
)

type TokenService interface {
	Issue(userID uint) (string, error)
	Parse(token string) (uint, error)
}

type tokenService struct {
	secret []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenService refuses an empty signing key: HS256 with no key lets anyone mint tokens.
func NewTokenService(cfg *config.Config) (TokenService, error) {
	if cfg.Auth.JwtSecret == "" {
		return nil, ErrMissingJWTSecret
	}
	return &tokenService{
		secret: []byte(cfg.Auth.JwtSecret),
		issuer: cfg.Auth.JwtIssuer,
		ttl:    cfg.Auth.TokenExpiry,
		now:    time.Now,
	}, nil
}

func (s *tokenService) Issue(userID uint) (string, error) {
	now := s.now().UTC()
	claims := jwt.RegisteredClaims{
		Issuer:    s.issuer,
		Subject:   strconv.FormatUint(uint64(userID), 10),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

func (s *tokenService) Parse(tokenStr string) (uint, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithTimeFunc(s.now),
		jwt.WithExpirationRequired(),
	}
	if s.issuer != "" {
		opts = append(opts, jwt.WithIssuer(s.issuer))
	}

	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (any, error) {
		return s.secret, nil
	}, opts...)
	if err != nil || !token.Valid {
		return 0, ErrInvalidToken
	}

	id, err := strconv.ParseUint(claims.Subject, 10, 64)
	if err != nil || id == 0 {
		return 0, ErrInvalidToken
	}
	return uint(id), nil
}
