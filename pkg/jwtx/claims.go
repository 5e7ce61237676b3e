package jwtx

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims are the access-token claims the storefront cares about. The
// commerce API is the issuer; the client only ever reads them.
type Claims struct {
	jwt.RegisteredClaims

	// Role is the shopper's role ("USER", "ADMIN"), absent on some tokens.
	Role string `json:"role,omitempty"`
}

// SubjectID returns the subject (user id) claim.
func (c Claims) SubjectID() string {
	return c.Subject
}

// IssuedAtTime returns the iat claim or the zero time when absent.
func (c Claims) IssuedAtTime() time.Time {
	if c.IssuedAt == nil {
		return time.Time{}
	}
	return c.IssuedAt.Time
}

// ExpiresAtTime returns the exp claim or the zero time when absent.
func (c Claims) ExpiresAtTime() time.Time {
	if c.ExpiresAt == nil {
		return time.Time{}
	}
	return c.ExpiresAt.Time
}

// NewClaims builds minimally-correct claims. Used by tests and local tooling
// that need to mint tokens shaped like the ones the commerce API issues.
func NewClaims(subject, role string, ttl time.Duration, now time.Time) Claims {
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Role: role,
	}
}
