package memory

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/storefront/internal/storefront/store"
	"github.com/aussiebroadwan/storefront/internal/storefront/store/storetest"
)

func TestMemoryStore(t *testing.T) {
	storetest.Run(t, func(t *testing.T) store.Store {
		return NewStore()
	})
}

func TestMemoryStore_CopiesSlices(t *testing.T) {
	st := NewStore()

	pending := storetest.SamplePending(time.Now())
	require.NoError(t, st.PendingPayments().Save(t.Context(), pending))
	pending.Lines[0].ProductID = "mutated"

	got, err := st.PendingPayments().Load(t.Context())
	require.NoError(t, err)
	require.Equal(t, "p-1", got.Lines[0].ProductID)

	got.Lines[1].ProductID = "mutated"
	again, err := st.PendingPayments().Load(t.Context())
	require.NoError(t, err)
	require.Equal(t, "p-2", again.Lines[1].ProductID)

	sealed := []byte{0x01}
	require.NoError(t, st.Credentials().Put(t.Context(), sealed))
	sealed[0] = 0xff

	blob, err := st.Credentials().Get(t.Context())
	require.NoError(t, err)
	require.Equal(t, []byte{0x01}, blob)
}
