package cryptox

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSealer_RoundTrip(t *testing.T) {
	t.Parallel()

	s, err := NewSealer([]byte("master-key-material"))
	require.NoError(t, err)

	plaintext := []byte(`{"accessToken":"a","refreshToken":"r"}`)
	sealed, err := s.Seal(plaintext)
	require.NoError(t, err)
	require.NotContains(t, string(sealed), "refreshToken")

	opened, err := s.Open(sealed)
	require.NoError(t, err)
	require.Equal(t, plaintext, opened)

	// Fresh nonce each time.
	sealed2, err := s.Seal(plaintext)
	require.NoError(t, err)
	require.NotEqual(t, sealed, sealed2)
}

func TestSealer_Open(t *testing.T) {
	t.Parallel()

	s, err := NewSealer([]byte("master-key-material"))
	require.NoError(t, err)
	sealed, err := s.Seal([]byte("payload"))
	require.NoError(t, err)

	t.Run("wrong key", func(t *testing.T) {
		t.Parallel()
		other, err := NewSealer([]byte("different-material"))
		require.NoError(t, err)
		_, err = other.Open(sealed)
		require.Error(t, err)
	})

	t.Run("tampered", func(t *testing.T) {
		t.Parallel()
		tampered := append([]byte(nil), sealed...)
		tampered[len(tampered)-1] ^= 0xff
		_, err := s.Open(tampered)
		require.Error(t, err)
	})

	t.Run("too short", func(t *testing.T) {
		t.Parallel()
		_, err := s.Open([]byte{1, 2, 3})
		require.ErrorIs(t, err, ErrCiphertextTooShort)
	})
}

func TestNewSealer_EmptyKey(t *testing.T) {
	t.Parallel()
	_, err := NewSealer(nil)
	require.Error(t, err)
}
