package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerifyPassword(t *testing.T) {
	digest, err := HashPassword("s3cret")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret", digest)

	assert.True(t, VerifyPassword("s3cret", digest))
	assert.False(t, VerifyPassword("wrong", digest))
	assert.False(t, VerifyPassword("s3cret", "not-a-digest"))
}
