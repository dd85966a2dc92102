// Package jwtx reads the claims of backend-issued access tokens.
//
// The client never holds the signing key, so tokens are parsed without
// signature verification. The result is for display and logging only; the
// backend remains the authority on validity.
package jwtx

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrNotJWT = errors.New("token is not a JWT")

// Claims is what the client cares about in an access token.
type Claims struct {
	Subject   string
	ExpiresAt time.Time
	IssuedAt  time.Time
}

// Expired reports whether the token carries an expiry that is before now.
// Tokens without exp never expire from the client's point of view.
func (c Claims) Expired(now time.Time) bool {
	return !c.ExpiresAt.IsZero() && now.After(c.ExpiresAt)
}

// TTL is the time left until expiry, zero if unknown or already expired.
func (c Claims) TTL(now time.Time) time.Duration {
	if c.ExpiresAt.IsZero() || !now.Before(c.ExpiresAt) {
		return 0
	}
	return c.ExpiresAt.Sub(now)
}

// Inspect decodes the registered claims of token without verifying it.
func Inspect(token string) (Claims, error) {
	rc := &jwt.RegisteredClaims{}

	_, _, err := jwt.NewParser().ParseUnverified(token, rc)
	if err != nil {
		return Claims{}, errors.Join(ErrNotJWT, err)
	}

	c := Claims{Subject: rc.Subject}
	if rc.ExpiresAt != nil {
		c.ExpiresAt = rc.ExpiresAt.Time
	}
	if rc.IssuedAt != nil {
		c.IssuedAt = rc.IssuedAt.Time
	}
	return c, nil
}
