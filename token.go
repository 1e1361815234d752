package goSession

import (
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenShapeValid reports whether token has the bearer-token shape the
// console expects: exactly three non-empty dot-separated segments. No
// signature or claim verification is performed; the backend is the
// authority on token semantics and rejects stale tokens with 401.
func TokenShapeValid(token string) bool {
	if token == "" {
		return false
	}

	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return false
	}
	for _, part := range parts {
		if part == "" {
			return false
		}
	}

	return true
}

// IsTokenValid reports whether the given token (or the store's current
// token when the argument is empty) passes validation. The default check
// is [TokenShapeValid] only; with Session.StrictExpiry enabled the exp
// claim is additionally decoded, unverified, and compared against the
// current time. Never panics.
func (s *Store) IsTokenValid(token string) bool {
	if s == nil {
		return false
	}
	if token == "" {
		s.mu.Lock()
		token = s.token
		s.mu.Unlock()
	}
	return s.tokenValid(token)
}

func (s *Store) tokenValid(token string) bool {
	if !TokenShapeValid(token) {
		return false
	}
	if s.config.Session.StrictExpiry && tokenExpired(token, time.Now()) {
		return false
	}
	return true
}

// tokenExpired decodes the exp claim without verifying the signature.
// A token that cannot be decoded, or whose exp lies in the past, is
// expired; a decodable token with no exp claim is not.
func tokenExpired(token string, now time.Time) bool {
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

	return exp.Before(now)
}
