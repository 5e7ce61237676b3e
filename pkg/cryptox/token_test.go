package cryptox

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFingerprintToken(t *testing.T) {
	t.Parallel()

	t.Run("deterministic", func(t *testing.T) {
		t.Parallel()
		require.Equal(t, FingerprintToken("refresh-abc"), FingerprintToken("refresh-abc"))
	})

	t.Run("distinct tokens differ", func(t *testing.T) {
		t.Parallel()
		require.NotEqual(t, FingerprintToken("refresh-abc"), FingerprintToken("refresh-abd"))
	})

	t.Run("does not leak token", func(t *testing.T) {
		t.Parallel()
		fp := FingerprintToken("refresh-abc")
		require.NotContains(t, fp, "refresh")
		require.Len(t, fp, 11)
	})

	t.Run("empty", func(t *testing.T) {
		t.Parallel()
		require.Empty(t, FingerprintToken(""))
	})
}
