package domain

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenExpired reports whether a stored bearer token must be replaced.
// The token is decoded structurally only; the signature is never checked
// because the client does not hold the issuer's key. A token without an
// exp claim never expires. Any decode failure counts as expired so a
// broken token forces a fresh authentication instead of poisoning every
// later call.
func TokenExpired(token string, now time.Time) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return true
	}

	exp, err := claims.GetExpirationTime()
	if err != nil {
		return true
	}
	if exp == nil {
		return false
	}

	return exp.Time.Before(now)
}
