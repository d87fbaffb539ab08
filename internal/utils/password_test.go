package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword_VerifyRoundTrip(t *testing.T) {
	digest, err := HashPassword("123")
	require.NoError(t, err)
	require.NotEmpty(t, digest)

	assert.True(t, CheckPassword(digest, "123"))
	assert.False(t, CheckPassword(digest, "1234"))
	assert.False(t, CheckPassword(digest, ""))
}

func TestHashPassword_SaltUniqueness(t *testing.T) {
	// Two hashes of the same plaintext must differ: the salt is random per
	// call and embedded in the digest.
	first, err := HashPassword("same-password")
	require.NoError(t, err)
	second, err := HashPassword("same-password")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.True(t, CheckPassword(first, "same-password"))
	assert.True(t, CheckPassword(second, "same-password"))
}

func TestHashPassword_NeverStoresPlaintext(t *testing.T) {
	digest, err := HashPassword("hunter2")
	require.NoError(t, err)
	assert.NotContains(t, digest, "hunter2")
}

func TestCheckPassword_MalformedDigest(t *testing.T) {
	// A corrupt digest must fail verification, not panic.
	assert.False(t, CheckPassword("not-a-bcrypt-digest", "123"))
}
