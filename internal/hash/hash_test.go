package hash

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword_RoundTrip(t *testing.T) {
	t.Parallel()

	digest, err := HashPassword("password1")
	require.NoError(t, err)
	require.NotEmpty(t, digest)
	require.NotEqual(t, "password1", digest)

	assert.True(t, CheckPassword(digest, "password1"))
	assert.False(t, CheckPassword(digest, "password2"))
}

func TestHashPassword_SaltUniqueness(t *testing.T) {
	t.Parallel()

	first, err := HashPassword("password1")
	require.NoError(t, err)
	second, err := HashPassword("password1")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.True(t, CheckPassword(first, "password1"))
	assert.True(t, CheckPassword(second, "password1"))
}

func TestHashPassword_EmptyInput(t *testing.T) {
	t.Parallel()

	_, err := HashPassword("")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrEmptyPassword)
}

func TestCheckPassword_MalformedDigest(t *testing.T) {
	t.Parallel()

	assert.False(t, CheckPassword("not-a-bcrypt-digest", "password1"))
	assert.False(t, CheckPassword("", "password1"))
}
