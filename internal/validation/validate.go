package validation

import (
	"errors"
	"net/mail"
	"strings"
)

var (
	ErrInvalidEmail    = errors.New("invalid email address")
	ErrMissingPassword = errors.New("password is required")
	ErrPasswordTooLong = errors.New("password exceeds maximum length")
)

// MaxPasswordBytes is bcrypt's input limit. Longer passwords cannot be
// hashed, so they are rejected up front as client input.
const MaxPasswordBytes = 72

// ValidateEmail checks that email parses as a bare address and that its
// domain contains at least one dot. mail.ParseAddress alone accepts dotless
// domains like "user@localhost", which are not deliverable addresses here.
func ValidateEmail(email string) error {
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return ErrInvalidEmail
	}
	at := strings.LastIndex(addr.Address, "@")
	if at < 0 || !strings.Contains(addr.Address[at+1:], ".") {
		return ErrInvalidEmail
	}
	return nil
}

// ValidateCredentials checks the structural validity of a credentials pair.
// The password is a pointer so a payload that omits the field entirely is
// rejected the same way as an empty string. Password strength is not
// checked; only presence is required.
func ValidateCredentials(email string, password *string) error {
	if err := ValidateEmail(email); err != nil {
		return err
	}
	if password == nil || *password == "" {
		return ErrMissingPassword
	}
	if len(*password) > MaxPasswordBytes {
		return ErrPasswordTooLong
	}
	return nil
}
