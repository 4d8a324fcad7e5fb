package crypto

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeriveAuthHash(t *testing.T) {
	a := DeriveAuthHash("User@Example.com", "secret")
	b := DeriveAuthHash(" user@example.com", "secret")

	assert.Len(t, a, 64)
	assert.Equal(t, a, b, "email is normalized")
	assert.NotEqual(t, a, DeriveAuthHash("user@example.com", "other"))
	assert.NotEqual(t, a, DeriveAuthHash("someone@example.com", "secret"))
}

func TestDeriveMasterKeyHash(t *testing.T) {
	a := DeriveMasterKeyHash("user@example.com", "secret")

	assert.Len(t, a, 64)
	assert.Equal(t, a, DeriveMasterKeyHash("user@example.com", "secret"))
	assert.NotEqual(t, a, DeriveAuthHash("user@example.com", "secret"))
	assert.NotEqual(t, a, DeriveMasterKeyHash("user@example.com", "secret2"))
}
