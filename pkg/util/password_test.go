package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("demo123")
	require.NoError(t, err)

	assert.NotEqual(t, "demo123", hash)
	assert.True(t, CheckPassword("demo123", hash))
	assert.False(t, CheckPassword("wrong", hash))
	assert.False(t, CheckPassword("demo123", "not-a-hash"))
}
