package utils

import (
	"golang.org/x/crypto/bcrypt"
)

// BcryptCost balances brute-force resistance against per-request CPU cost.
const BcryptCost = 12

// HashPassword derives a salted bcrypt digest from a plaintext password.
// bcrypt embeds the salt in the digest, so verification needs no extra state.
func HashPassword(password string) (string, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), BcryptCost)
	if err != nil {
		return "", err
	}
	return string(hashedPassword), nil
}

// CheckPassword reports whether password matches the stored bcrypt digest.
func CheckPassword(hashedPassword string, password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
	return err == nil
}
