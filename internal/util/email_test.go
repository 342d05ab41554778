package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsEmailAddress(t *testing.T) {
	assert.True(t, IsEmailAddress("user@example.com"))
	assert.True(t, IsEmailAddress("  first.last+tag@sub.example.org  "))
	assert.False(t, IsEmailAddress("hola, quiero info"))
	assert.False(t, IsEmailAddress("user@localhost"))
	assert.False(t, IsEmailAddress("/start abc123"))
	assert.False(t, IsEmailAddress(""))
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "user@example.com", NormalizeEmail("  User@Example.COM "))
}

func TestHashEmail(t *testing.T) {
	// sha256("user@example.com")
	expected := "b4c9a289323b21a01c3e940f150eb9b8c542587f1abfd8f0e1cc1ffc5e475514"

	assert.Equal(t, expected, HashEmail("user@example.com"))
	assert.Equal(t, expected, HashEmail(" USER@example.com  "), "hash is computed over the normalized address")
	assert.Len(t, HashEmail("other@example.com"), 64)
}
