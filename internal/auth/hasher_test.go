package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordHasherRoundTrip(t *testing.T) {
	h := NewPasswordHasher()

	digest, err := h.Hash("secret123")
	require.NoError(t, err)
	require.NotEmpty(t, digest)
	assert.NotEqual(t, "secret123", digest)

	assert.True(t, h.Verify("secret123", digest))
	assert.False(t, h.Verify("secret124", digest))
}

func TestPasswordHasherSaltedDigests(t *testing.T) {
	h := NewPasswordHasher()

	first, err := h.Hash("secret123")
	require.NoError(t, err)
	second, err := h.Hash("secret123")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.True(t, h.Verify("secret123", first))
	assert.True(t, h.Verify("secret123", second))
}

func TestPasswordHasherMalformedDigest(t *testing.T) {
	h := NewPasswordHasher()

	assert.False(t, h.Verify("secret123", ""))
	assert.False(t, h.Verify("secret123", "not-a-bcrypt-digest"))
	assert.False(t, h.Verify("secret123", "$argon2id$v=19$m=65536,t=1,p=4$abc$def"))
}
