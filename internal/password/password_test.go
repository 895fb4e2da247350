package password_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kishorefa/Sainxt-platform-backend/internal/password"
)

func TestHashIsSalted(t *testing.T) {
	first, err := password.Hash("hunter2")
	require.NoError(t, err)
	second, err := password.Hash("hunter2")
	require.NoError(t, err)
	require.NotEqual(t, first, second)

	for _, hash := range []string{first, second} {
		ok, err := password.Verify("hunter2", hash)
		require.NoError(t, err)
		require.True(t, ok)
	}
}

func TestVerifyRejectsWrongPassword(t *testing.T) {
	hash, err := password.Hash("correct horse")
	require.NoError(t, err)

	ok, err := password.Verify("battery staple", hash)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestVerifyRejectsGarbage(t *testing.T) {
	_, err := password.Verify("anything", "$bcrypt$not-a-real-hash")
	require.Error(t, err)
}

func TestVerifyStoredHandlesLegacyBytes(t *testing.T) {
	hash, err := password.Hash("s3cret")
	require.NoError(t, err)

	ok, err := password.VerifyStored("s3cret", []byte(hash))
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = password.VerifyStored("s3cret", hash)
	require.NoError(t, err)
	require.True(t, ok)

	_, err = password.VerifyStored("s3cret", 42)
	require.Error(t, err)
}
