package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword_RoundTrip(t *testing.T) {
	hash, err := HashPassword("secret1")
	require.NoError(t, err)
	require.NotEmpty(t, hash)
	assert.NotEqual(t, "secret1", hash)

	assert.True(t, CheckPassword(hash, "secret1"))
	assert.False(t, CheckPassword(hash, "secret2"))
}

func TestHashPassword_Salted(t *testing.T) {
	h1, err := HashPassword("secret1")
	require.NoError(t, err)
	h2, err := HashPassword("secret1")
	require.NoError(t, err)
	assert.NotEqual(t, h1, h2)
}

func TestCheckPassword_MalformedHash(t *testing.T) {
	assert.False(t, CheckPassword("not-a-bcrypt-hash", "secret1"))
	assert.False(t, CheckPassword("", "secret1"))
}

func TestGenerateTempPassword(t *testing.T) {
	p1, err := GenerateTempPassword()
	require.NoError(t, err)
	assert.Len(t, p1, 12)

	p2, err := GenerateTempPassword()
	require.NoError(t, err)
	assert.NotEqual(t, p1, p2)
}
