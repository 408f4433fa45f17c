package security

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBcryptHasherRoundTrip(t *testing.T) {
	hasher, err := NewBcryptHasher(12)
	require.NoError(t, err)

	hash, err := hasher.Hash("hunter42")
	require.NoError(t, err)
	assert.NotEqual(t, "hunter42", hash)

	assert.NoError(t, hasher.Compare(hash, "hunter42"))
	assert.ErrorIs(t, hasher.Compare(hash, "wrongpass"), ErrPasswordMismatch)
}

func TestBcryptHasherRejectsWeakCost(t *testing.T) {
	_, err := NewBcryptHasher(4)
	assert.Error(t, err)

	_, err = NewBcryptHasher(40)
	assert.Error(t, err)
}
