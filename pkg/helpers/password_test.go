package helpers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPasswordNeverStoresRawValue(t *testing.T) {
	hash, err := HashPassword("abcA123!")
	require.NoError(t, err)

	assert.NotEqual(t, "abcA123!", hash)
	assert.True(t, CheckPassword(hash, "abcA123!"))
}

func TestHashPasswordSaltsPerRecord(t *testing.T) {
	h1, err := HashPassword("abcA123!")
	require.NoError(t, err)
	h2, err := HashPassword("abcA123!")
	require.NoError(t, err)

	assert.NotEqual(t, h1, h2)
}

func TestCheckPasswordRejectsWrongValue(t *testing.T) {
	hash, err := HashPassword("abcA123!")
	require.NoError(t, err)

	assert.False(t, CheckPassword(hash, "Abc123?"))
	assert.False(t, CheckPassword(hash, ""))
}
