package credential_test

import (
	"testing"

	"github.com/rpggio/queuedesk/internal/domain/credential"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestPlainHasher(t *testing.T) {
	h := credential.PlainHasher{}
	stored, err := h.Hash("p1")
	require.NoError(t, err)
	require.Equal(t, "p1", stored)
	require.True(t, h.Compare(stored, "p1"))
	require.False(t, h.Compare(stored, "P1"))
}

func TestBcryptHasher(t *testing.T) {
	h := credential.BcryptHasher{Cost: bcrypt.MinCost}
	stored, err := h.Hash("p1")
	require.NoError(t, err)
	require.NotEqual(t, "p1", stored)
	require.True(t, h.Compare(stored, "p1"))
	require.False(t, h.Compare(stored, "wrong"))
}

func TestHasherFor(t *testing.T) {
	h, err := credential.HasherFor("plain")
	require.NoError(t, err)
	require.IsType(t, credential.PlainHasher{}, h)

	h, err = credential.HasherFor("bcrypt")
	require.NoError(t, err)
	require.IsType(t, credential.BcryptHasher{}, h)

	_, err = credential.HasherFor("rot13")
	require.Error(t, err)
}
