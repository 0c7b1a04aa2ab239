package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("P@ssw0rd1")
	require.NoError(t, err)
	require.NotEqual(t, "P@ssw0rd1", hash)

	assert.True(t, CheckPasswordHash("P@ssw0rd1", hash))
	assert.False(t, CheckPasswordHash("wrong", hash))
}

func TestCheckPasswordHash_GarbageHash(t *testing.T) {
	assert.False(t, CheckPasswordHash("P@ssw0rd1", "not-a-bcrypt-hash"))
}
