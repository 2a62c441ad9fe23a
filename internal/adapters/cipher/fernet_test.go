package cipher

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	c, err := NewRandom()
	require.NoError(t, err)

	ct, err := c.Encrypt("I passed my exam today!")
	require.NoError(t, err)
	assert.NotEqual(t, "I passed my exam today!", ct)

	assert.Equal(t, "I passed my exam today!", c.Decrypt(ct))
}

func TestDecryptFailureReturnsEmpty(t *testing.T) {
	c, err := NewRandom()
	require.NoError(t, err)

	assert.Equal(t, "", c.Decrypt(""))
	assert.Equal(t, "", c.Decrypt("not-a-token"))

	other, err := NewRandom()
	require.NoError(t, err)
	ct, err := other.Encrypt("secret")
	require.NoError(t, err)

	// token under a different key is unreadable, not an error
	assert.Equal(t, "", c.Decrypt(ct))
}
