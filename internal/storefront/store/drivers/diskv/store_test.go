package diskv_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/storefront/internal/storefront/store"
	"github.com/aussiebroadwan/storefront/internal/storefront/store/drivers/diskv"
	"github.com/aussiebroadwan/storefront/internal/storefront/store/storetest"
)

func TestDiskvStore(t *testing.T) {
	t.Parallel()

	storetest.Run(t, func(t *testing.T) store.Store {
		st, err := diskv.NewStore(t.TempDir())
		require.NoError(t, err)
		return st
	})
}

func TestDiskvStore_SurvivesReopen(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "state")
	first, err := diskv.NewStore(dir)
	require.NoError(t, err)

	pending := storetest.SamplePending(time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC))
	require.NoError(t, first.PendingPayments().Save(t.Context(), pending))
	require.NoError(t, first.Credentials().Put(t.Context(), []byte("sealed")))

	info, err := os.Stat(filepath.Join(dir, "credential"))
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	second, err := diskv.NewStore(dir)
	require.NoError(t, err)

	got, err := second.PendingPayments().Load(t.Context())
	require.NoError(t, err)
	require.Equal(t, pending, got)
}

func TestDiskvStore_PingMissingDir(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "state")
	st, err := diskv.NewStore(dir)
	require.NoError(t, err)
	require.NoError(t, os.RemoveAll(dir))

	require.Error(t, st.Ping(t.Context()))
}
