package jwtx

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultRefreshThreshold is how long before expiry an access token is
// considered due for refresh.
const DefaultRefreshThreshold = 300 * time.Second

var (
	ErrMalformed = errors.New("jwtx: malformed token")
	ErrNoExpiry  = errors.New("jwtx: token has no exp claim")
)

// The client never holds the issuer's keys, so decoding skips signature
// verification and claim validation. Expiry is judged by IsExpired and
// NeedsRefresh against a caller supplied clock instead.
var unverifiedParser = jwt.NewParser(jwt.WithoutClaimsValidation())

// Decode extracts the claims from a token without verifying it. A token
// without an exp claim is rejected so callers fail closed.
func Decode(token string) (Claims, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return Claims{}, ErrMalformed
	}

	var claims Claims
	if _, _, err := unverifiedParser.ParseUnverified(token, &claims); err != nil {
		return Claims{}, fmt.Errorf("%w: %w", ErrMalformed, err)
	}

	if claims.ExpiresAt == nil {
		return Claims{}, ErrNoExpiry
	}

	return claims, nil
}

// IsExpired reports whether the token is unusable at now: either it cannot
// be decoded or exp <= now.
func IsExpired(token string, now time.Time) bool {
	claims, err := Decode(token)
	if err != nil {
		return true
	}
	return !now.Before(claims.ExpiresAt.Time)
}

// NeedsRefresh reports whether now+threshold has reached the token's expiry.
// Undecodable tokens always need a refresh.
func NeedsRefresh(token string, now time.Time, threshold time.Duration) bool {
	claims, err := Decode(token)
	if err != nil {
		return true
	}
	return !now.Add(threshold).Before(claims.ExpiresAt.Time)
}
