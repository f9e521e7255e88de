package password

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHash_PlaintextIsHashed(t *testing.T) {
	h := NewHasher(bcrypt.MinCost)

	hashed, err := h.Hash("Pass123!")

	require.NoError(t, err)
	assert.NotEqual(t, "Pass123!", hashed)
	assert.True(t, IsHashed(hashed))
	ok, err := Compare(hashed, "Pass123!")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestHash_AlreadyHashedIsUnchanged(t *testing.T) {
	h := NewHasher(bcrypt.MinCost)
	first, err := h.Hash("Pass123!")
	require.NoError(t, err)

	second, err := h.Hash(first)

	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestHash_EmptyIsUnchanged(t *testing.T) {
	got, err := NewHasher(bcrypt.MinCost).Hash("")
	require.NoError(t, err)
	assert.Equal(t, "", got)
}

func TestNewHasher_InvalidCostFallsBack(t *testing.T) {
	assert.Equal(t, bcrypt.DefaultCost, NewHasher(99).cost)
	assert.Equal(t, bcrypt.DefaultCost, NewHasher(0).cost)
}

func TestCompare_Mismatch(t *testing.T) {
	hashed, err := NewHasher(bcrypt.MinCost).Hash("Pass123!")
	require.NoError(t, err)

	ok, err := Compare(hashed, "wrong")

	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCompare_MalformedHashIsMismatch(t *testing.T) {
	ok, err := Compare("short", "Pass123!")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestIsHashed(t *testing.T) {
	assert.False(t, IsHashed("Pass123!"))
	assert.False(t, IsHashed("$2a$10$tooShort"))
	assert.True(t, IsHashed("$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"))
}
