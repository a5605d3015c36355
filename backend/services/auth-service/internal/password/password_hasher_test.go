package password

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBcrypt(t *testing.T) {
	h := NewBcrypt(bcrypt.MinCost)

	hash, err := h.Hash("s3cret!")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret!", hash)

	assert.NoError(t, h.Compare(hash, "s3cret!"))
	assert.ErrorIs(t, h.Compare(hash, "wrong"), ErrMismatch)
	assert.False(t, h.NeedsRehash(hash))
}

func TestBcryptRejectsEmpty(t *testing.T) {
	_, err := NewBcrypt(bcrypt.MinCost).Hash("")
	assert.ErrorIs(t, err, ErrEmptyPassword)
}

func TestBcryptCost(t *testing.T) {
	assert.Equal(t, bcrypt.DefaultCost, NewBcrypt(0).cost)
	assert.Equal(t, bcrypt.DefaultCost, NewBcrypt(99).cost)

	old, err := NewBcrypt(bcrypt.MinCost).Hash("pw")
	require.NoError(t, err)
	assert.True(t, NewBcrypt(bcrypt.MinCost+1).NeedsRehash(old))
	assert.True(t, NewBcrypt(bcrypt.MinCost).NeedsRehash("not-a-hash"))
}
