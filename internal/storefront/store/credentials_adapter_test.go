package store_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/storefront/internal/storefront/store"
	"github.com/aussiebroadwan/storefront/internal/storefront/store/drivers/memory"
	"github.com/aussiebroadwan/storefront/pkg/authsdk"
	"github.com/aussiebroadwan/storefront/pkg/cryptox"
)

func newSealer(t *testing.T, master string) *cryptox.Sealer {
	t.Helper()
	s, err := cryptox.NewSealer([]byte(master))
	require.NoError(t, err)
	return s
}

func TestCredentialStoreAdapter(t *testing.T) {
	st := memory.NewStore()
	adapter := store.NewCredentialStoreAdapter(st.Credentials(), newSealer(t, "master-one"))

	_, err := adapter.Load(t.Context())
	require.ErrorIs(t, err, authsdk.ErrNoCredentials)

	cred := authsdk.Credential{AccessToken: "access", RefreshToken: "refresh"}
	require.NoError(t, adapter.Save(t.Context(), cred))

	got, err := adapter.Load(t.Context())
	require.NoError(t, err)
	require.Equal(t, cred, got)

	t.Run("stored blob is sealed", func(t *testing.T) {
		blob, err := st.Credentials().Get(t.Context())
		require.NoError(t, err)
		require.NotContains(t, string(blob), "refresh")
	})

	t.Run("wrong key is an error", func(t *testing.T) {
		other := store.NewCredentialStoreAdapter(st.Credentials(), newSealer(t, "master-two"))
		_, err := other.Load(t.Context())
		require.ErrorIs(t, err, store.ErrCredentialUnreadable)
		require.NotErrorIs(t, err, authsdk.ErrNoCredentials)
	})

	require.NoError(t, adapter.Clear(t.Context()))
	require.NoError(t, adapter.Clear(t.Context()))
	_, err = adapter.Load(t.Context())
	require.ErrorIs(t, err, authsdk.ErrNoCredentials)
}

func TestCredentialStoreAdapter_Corrupt(t *testing.T) {
	st := memory.NewStore()
	sealer := newSealer(t, "master")

	sealed, err := sealer.Seal([]byte("not json"))
	require.NoError(t, err)
	require.NoError(t, st.Credentials().Put(t.Context(), sealed))

	_, err = store.NewCredentialStoreAdapter(st.Credentials(), sealer).Load(t.Context())
	require.ErrorIs(t, err, store.ErrCredentialUnreadable)
	require.ErrorContains(t, err, "failed to decode")
}
