package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPasswordIsSalted(t *testing.T) {
	first, err := HashPassword("pw1")
	require.NoError(t, err)
	second, err := HashPassword("pw1")
	require.NoError(t, err)

	// Same plaintext, different digests, both verifiable
	assert.NotEqual(t, first, second)
	assert.True(t, CheckPassword(first, "pw1"))
	assert.True(t, CheckPassword(second, "pw1"))
}

func TestCheckPasswordRejectsMismatch(t *testing.T) {
	hash, err := HashPassword("pw1")
	require.NoError(t, err)

	assert.False(t, CheckPassword(hash, "wrongpw"))
	// "pw3" differs from "pw1" by a single bit in the last byte
	assert.False(t, CheckPassword(hash, "pw3"))
	assert.False(t, CheckPassword(hash, ""))
	assert.False(t, CheckPassword("", "pw1"))
}
