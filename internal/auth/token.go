// Package auth provides the primitives of the authentication flow: signed,
// time-limited bearer tokens and one-way password hashing.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Clock returns the current time. Tests replace it to move through a token's
// validity window.
type Clock func() time.Time

// Claims is the token payload: the subject username plus the standard
// registered claims.
type Claims struct {
	jwt.RegisteredClaims
}

// TokenManager issues and verifies HS256 tokens with a process-wide secret.
// It holds no mutable state and is safe for concurrent use.
type TokenManager struct {
	secret []byte
	now    Clock
}

// NewTokenManager returns a TokenManager signing with secret.
// A nil clock means time.Now.
func NewTokenManager(secret []byte, clock Clock) *TokenManager {
	if clock == nil {
		clock = time.Now
	}
	return &TokenManager{secret: secret, now: clock}
}

// Issue signs a token for subject that expires ttl from now.
// It returns the token string and its expiration instant.
func (m *TokenManager) Issue(subject string, ttl time.Duration) (string, time.Time, error) {
	issuedAt := m.now()
	expiresAt := issuedAt.Add(ttl)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ID:        uuid.NewString(),
		},
	})

	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, expiresAt, nil
}

// Subject verifies tokenString and returns its subject.
//
// The token is valid only if the signature verifies and the current time is
// strictly before its expiration. Failures are reported as ErrMalformedToken,
// ErrInvalidSignature or ErrTokenExpired.
func (m *TokenManager) Subject(tokenString string) (string, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenString, claims,
		func(*jwt.Token) (any, error) { return m.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		return "", classify(err)
	}
	if claims.Subject == "" {
		return "", fmt.Errorf("%w: missing subject", ErrMalformedToken)
	}
	return claims.Subject, nil
}

// classify maps jwt parser errors onto the package failure kinds.
// Signature is checked before expiry, so a forged expired token is reported as
// a signature failure.
func classify(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return fmt.Errorf("%w: %v", ErrInvalidSignature, err)
	case errors.Is(err, jwt.ErrTokenExpired):
		return fmt.Errorf("%w: %v", ErrTokenExpired, err)
	default:
		return fmt.Errorf("%w: %v", ErrMalformedToken, err)
	}
}
