// Package auth issues and verifies identity tokens and hashes passwords.
package auth

import (
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/taskboard/tracker/internal/errors"
)

// TokenTTL is the fixed validity window of every token. There is no refresh.
const TokenTTL = 7 * 24 * time.Hour

// TokenService signs HS256 tokens whose subject is the identity id. It is
// stateless: verification never consults a store, so a token outlives the
// identity it names until it expires.
type TokenService struct {
	secret []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

// Option customises a TokenService.
type Option func(*TokenService)

// WithIssuer stamps and requires the iss claim.
func WithIssuer(issuer string) Option {
	return func(s *TokenService) { s.issuer = strings.TrimSpace(issuer) }
}

// WithClock replaces the time source used for iat, exp and validation.
func WithClock(now func() time.Time) Option {
	return func(s *TokenService) { s.now = now }
}

// NewTokenService creates a service bound to secret. An empty secret is
// accepted here; Issue and Verify then fail with a configuration error.
func NewTokenService(secret string, opts ...Option) *TokenService {
	s := &TokenService{
		secret: []byte(secret),
		ttl:    TokenTTL,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Ready reports a configuration error when no signing secret is set.
func (s *TokenService) Ready() error {
	if len(s.secret) == 0 {
		return errors.Configuration("JWT_SECRET is missing")
	}
	return nil
}

// Issue mints a token for identityID valid for TokenTTL from now.
func (s *TokenService) Issue(identityID string) (string, error) {
	if err := s.Ready(); err != nil {
		return "", err
	}
	if identityID == "" {
		return "", fmt.Errorf("issue token: empty identity id")
	}

	issuedAt := s.now()
	claims := jwt.RegisteredClaims{
		Subject:   identityID,
		Issuer:    s.issuer,
		IssuedAt:  jwt.NewNumericDate(issuedAt),
		ExpiresAt: jwt.NewNumericDate(issuedAt.Add(s.ttl)),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", errors.Internal("", fmt.Errorf("sign token: %w", err))
	}
	return signed, nil
}

// Verify returns the identity id carried by token. Malformed, forged and
// expired tokens all fail with an InvalidToken error.
func (s *TokenService) Verify(token string) (string, error) {
	if err := s.Ready(); err != nil {
		return "", err
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
		jwt.WithExpirationRequired(),
	}
	if s.issuer != "" {
		opts = append(opts, jwt.WithIssuer(s.issuer))
	}

	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, opts...)
	if err != nil {
		return "", errors.InvalidToken(err)
	}
	if !parsed.Valid || claims.Subject == "" {
		return "", errors.InvalidToken(nil)
	}
	return claims.Subject, nil
}
