package jwt

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/hanifkusuma/otpgate/internal/pkg/clock"
	"github.com/hanifkusuma/otpgate/internal/pkg/uid"
)

// minSecretSize is the minimum secret length for HS512. The HMAC key should
// be at least as long as the hash output, which is 64 bytes for SHA-512.
const minSecretSize = 64

// ErrSecretTooShort is returned when the configured secret is shorter than
// the HS512 hash output.
var ErrSecretTooShort = errors.New("jwt: secret must be at least 64 bytes")

// SymmetricOption configures a Symmetric instance.
type SymmetricOption func(*Symmetric)

// WithClock overrides the clock used for issued-at and expiry claims.
func WithClock(c clock.Clocker) SymmetricOption {
	return func(s *Symmetric) {
		s.clock = c
	}
}

// WithTokenID overrides the generator used for the jti claim.
func WithTokenID(g uid.StringID) SymmetricOption {
	return func(s *Symmetric) {
		s.tokenID = g
	}
}

// Symmetric signs and verifies tokens with a shared HMAC-SHA512 secret.
type Symmetric struct {
	secret  []byte
	issuer  string
	ttl     time.Duration
	clock   clock.Clocker
	tokenID uid.StringID
}

// NewSymmetric creates an HS512 signer. The secret must be at least 64
// bytes; tokens expire ttl after issuance.
func NewSymmetric(secret []byte, issuer string, ttl time.Duration, opts ...SymmetricOption) (*Symmetric, error) {
	if len(secret) < minSecretSize {
		return nil, ErrSecretTooShort
	}

	s := &Symmetric{
		secret:  secret,
		issuer:  issuer,
		ttl:     ttl,
		clock:   clock.New(),
		tokenID: uid.NewUUID(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s, nil
}

func (s *Symmetric) Generate(sessionID, email string) (string, error) {
	now := s.clock.Now()

	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			Subject:   email,
			ID:        s.tokenID.Generate(),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
		Email:     email,
		SessionID: sessionID,
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString(s.secret)
}

func (s *Symmetric) Verify(token string) (*Claims, error) {
	claims := &Claims{}

	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS512.Alg()}),
		jwt.WithIssuer(s.issuer),
		jwt.WithTimeFunc(s.clock.Now),
	)
	if err != nil {
		return nil, err
	}

	if !parsed.Valid {
		return nil, jwt.ErrTokenUnverifiable
	}

	return claims, nil
}
