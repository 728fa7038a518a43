package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims are the registered claims read from a JWT session token. They
// are read without signature verification and are for display only.
type Claims struct {
	Subject   string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Expired reports whether the token carried an expiry that is before now.
func (c Claims) Expired(now time.Time) bool {
	return !c.ExpiresAt.IsZero() && now.After(c.ExpiresAt)
}

// Claims decodes the current token. ok is false when there is no token or
// it is not a JWT.
func (s *Session) Claims() (Claims, bool) {
	token := s.Token()
	if token == "" {
		return Claims{}, false
	}
	return parseClaims(token)
}

func parseClaims(token string) (Claims, bool) {
	var rc jwt.RegisteredClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &rc); err != nil {
		return Claims{}, false
	}
	c := Claims{Subject: rc.Subject}
	if rc.IssuedAt != nil {
		c.IssuedAt = rc.IssuedAt.Time
	}
	if rc.ExpiresAt != nil {
		c.ExpiresAt = rc.ExpiresAt.Time
	}
	return c, true
}
