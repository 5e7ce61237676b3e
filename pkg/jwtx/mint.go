package jwtx

import (
	"github.com/golang-jwt/jwt/v5"
)

// SignHS256 mints an HMAC-signed token for the given claims. The storefront
// never verifies signatures, so this exists for fixtures and local fakes of
// the commerce API rather than for production issuance.
func SignHS256(claims Claims, secret []byte) (string, error) {
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}
