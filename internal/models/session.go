package models

import (
	"time"
)

// Session is a time-bounded proof of authentication. The token is an opaque
// value handed to the client as a cookie; Email references the owning
// account but does not own it.
type Session struct {
	Token     string    `json:"token"`
	Email     string    `json:"email"`
	IssuedAt  time.Time `json:"issued_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Expired reports whether the session's validity window has passed.
func (s *Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}
