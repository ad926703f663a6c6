// Package session holds the caller's bearer credential as an explicit value that
// is handed to every authenticated call instead of living in ambient storage.
package session

import (
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Session is one signed-in browser. The zero value and nil are both "absent".
type Session struct {
	ID        string    `json:"id"`
	Token     string    `json:"token"`
	AccountID string    `json:"account_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`

	mu      sync.Mutex
	cleared bool
}

// New creates a session for a freshly issued token.
func New(id, token, accountID string, now time.Time) *Session {
	return &Session{ID: id, Token: token, AccountID: accountID, CreatedAt: now}
}

// BearerToken returns the credential, or "" when the session is absent or cleared.
func (s *Session) BearerToken() string {
	if s == nil {
		return ""
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cleared {
		return ""
	}
	return s.Token
}

// Valid reports whether the session can authenticate a call at now. Tokens that
// are JWTs with an exp claim in the past are invalid; opaque tokens are trusted
// until the server rejects them.
func (s *Session) Valid(now time.Time) bool {
	token := s.BearerToken()
	if token == "" {
		return false
	}
	exp, ok := expiry(token)
	if !ok {
		return true
	}
	return now.Before(exp)
}

// Clear destroys the credential. The owner of the store must delete the session.
func (s *Session) Clear() {
	if s == nil {
		return
	}
	s.mu.Lock()
	s.cleared = true
	s.mu.Unlock()
}

// Cleared reports whether Clear was called.
func (s *Session) Cleared() bool {
	if s == nil {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cleared
}

// expiry reads the exp claim without verifying the signature; the signing key
// belongs to the upstream API.
func expiry(token string) (time.Time, bool) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}
