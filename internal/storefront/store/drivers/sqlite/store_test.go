package sqlite_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/storefront/internal/storefront/store"
	"github.com/aussiebroadwan/storefront/internal/storefront/store/drivers/sqlite"
	"github.com/aussiebroadwan/storefront/internal/storefront/store/storetest"
)

func newStore(t *testing.T) *sqlite.Store {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	require.NoError(t, st.ApplyMigrations())
	return st
}

func TestSQLiteStore(t *testing.T) {
	t.Parallel()
	storetest.Run(t, func(t *testing.T) store.Store { return newStore(t) })
}

func TestApplyMigrations_Idempotent(t *testing.T) {
	t.Parallel()

	st := newStore(t)
	require.NoError(t, st.ApplyMigrations())
	require.NoError(t, st.Ping(t.Context()))
}

func TestSQLiteStore_SurvivesReopen(t *testing.T) {
	t.Parallel()

	path := t.TempDir() + "/storefront.db"
	dsn := "file:" + path + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"

	first, err := sqlite.NewStore(dsn)
	require.NoError(t, err)
	require.NoError(t, first.ApplyMigrations())

	pending := storetest.SamplePending(time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC))
	require.NoError(t, first.PendingPayments().Save(t.Context(), pending))
	require.NoError(t, first.Credentials().Put(t.Context(), []byte("sealed")))
	require.NoError(t, first.Close())

	second, err := sqlite.NewStore(dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = second.Close() })
	require.NoError(t, second.ApplyMigrations())

	got, err := second.PendingPayments().Load(t.Context())
	require.NoError(t, err)
	require.Equal(t, pending, got)

	blob, err := second.Credentials().Get(t.Context())
	require.NoError(t, err)
	require.Equal(t, []byte("sealed"), blob)
}
