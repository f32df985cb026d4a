package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasher_Hash(t *testing.T) {
	hasher := NewBcryptHasherWithCost(bcrypt.MinCost)

	password := "Secret@123"
	hash, err := hasher.Hash(password)
	assert.NoError(t, err)
	assert.NotEmpty(t, hash)
	assert.NotEqual(t, password, hash)

	// Verify the hash can be checked
	assert.True(t, hasher.Check(password, hash))
}

func TestBcryptHasher_Check(t *testing.T) {
	hasher := NewBcryptHasherWithCost(bcrypt.MinCost)
	password := "Secret@123"

	hash, err := hasher.Hash(password)
	assert.NoError(t, err)

	// Test correct password
	assert.True(t, hasher.Check(password, hash))

	// Test incorrect password
	assert.False(t, hasher.Check("Wrong@456", hash))

	// Test empty password
	assert.False(t, hasher.Check("", hash))

	// Test with invalid hash
	assert.False(t, hasher.Check(password, "invalid_hash"))
}

func TestBcryptHasher_HashesDiffer(t *testing.T) {
	hasher := NewBcryptHasherWithCost(bcrypt.MinCost)
	password := "Secret@123"

	// Two hashes of the same password differ because of random salts,
	// but both verify.
	first, err := hasher.Hash(password)
	assert.NoError(t, err)
	second, err := hasher.Hash(password)
	assert.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.True(t, hasher.Check(password, first))
	assert.True(t, hasher.Check(password, second))
}

func TestBcryptHasher_WithCustomCost(t *testing.T) {
	customCost := 6 // Lower cost for faster testing
	hasher := NewBcryptHasherWithCost(customCost)

	password := "Secret@123"
	hash, err := hasher.Hash(password)
	assert.NoError(t, err)
	assert.NotEmpty(t, hash)

	// Verify the hash uses the correct cost
	cost, err := bcrypt.Cost([]byte(hash))
	assert.NoError(t, err)
	assert.Equal(t, customCost, cost)

	assert.True(t, hasher.Check(password, hash))
}
