// Package storetest is the behaviour every store driver must share. Driver
// tests call Run with a constructor for a fresh, empty store.
package storetest

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/storefront/internal/storefront/domain"
	"github.com/aussiebroadwan/storefront/internal/storefront/store"
	"github.com/aussiebroadwan/storefront/pkg/idx"
)

// SamplePending returns a cart-origin pending payment created at at.
func SamplePending(at time.Time) domain.PendingPayment {
	return domain.PendingPayment{
		AttemptID:   idx.NewAt(at),
		OrderID:     "order-1",
		OrderNumber: "ORD-1",
		Amount:      45000,
		Lines: []domain.LineRef{
			{ProductID: "p-1", VariantID: "v-1"},
			{ProductID: "p-2"},
		},
		Origin:    domain.OriginCart,
		CreatedAt: at.UTC(),
	}
}

// Run exercises newStore's PendingPayments and Credentials repositories.
func Run(t *testing.T, newStore func(t *testing.T) store.Store) {
	t.Helper()

	at := time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)

	t.Run("pending load empty", func(t *testing.T) {
		st := newStore(t)
		_, err := st.PendingPayments().Load(t.Context())
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("pending round trip", func(t *testing.T) {
		st := newStore(t)
		want := SamplePending(at)

		require.NoError(t, st.PendingPayments().Save(t.Context(), want))

		got, err := st.PendingPayments().Load(t.Context())
		require.NoError(t, err)
		require.Equal(t, want, got)
	})

	t.Run("pending save overwrites", func(t *testing.T) {
		st := newStore(t)
		require.NoError(t, st.PendingPayments().Save(t.Context(), SamplePending(at)))

		next := domain.PendingPayment{
			AttemptID:   idx.NewAt(at.Add(time.Minute)),
			OrderID:     "order-2",
			OrderNumber: "ORD-2",
			Amount:      1000,
			Lines:       []domain.LineRef{{ProductID: "p-9"}},
			Origin:      domain.OriginDirect,
			CreatedAt:   at.Add(time.Minute),
		}
		require.NoError(t, st.PendingPayments().Save(t.Context(), next))

		got, err := st.PendingPayments().Load(t.Context())
		require.NoError(t, err)
		require.Equal(t, next, got)
	})

	t.Run("pending without lines", func(t *testing.T) {
		st := newStore(t)
		want := SamplePending(at)
		want.Lines = []domain.LineRef{}

		require.NoError(t, st.PendingPayments().Save(t.Context(), want))
		got, err := st.PendingPayments().Load(t.Context())
		require.NoError(t, err)
		require.Empty(t, got.Lines)
	})

	t.Run("pending clear", func(t *testing.T) {
		st := newStore(t)
		require.NoError(t, st.PendingPayments().Save(t.Context(), SamplePending(at)))

		require.NoError(t, st.PendingPayments().Clear(t.Context()))
		require.NoError(t, st.PendingPayments().Clear(t.Context()))

		_, err := st.PendingPayments().Load(t.Context())
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("pending clear attempt", func(t *testing.T) {
		st := newStore(t)
		repo := st.PendingPayments()

		cleared, err := repo.ClearAttempt(t.Context(), idx.NewAt(at))
		require.NoError(t, err)
		require.False(t, cleared)

		first := SamplePending(at)
		require.NoError(t, repo.Save(t.Context(), first))

		// A newer attempt replaced the one the caller read.
		second := SamplePending(at.Add(time.Minute))
		second.OrderNumber = "ORD-2"
		require.NoError(t, repo.Save(t.Context(), second))

		cleared, err = repo.ClearAttempt(t.Context(), first.AttemptID)
		require.NoError(t, err)
		require.False(t, cleared)

		got, err := repo.Load(t.Context())
		require.NoError(t, err)
		require.Equal(t, second, got)

		cleared, err = repo.ClearAttempt(t.Context(), second.AttemptID)
		require.NoError(t, err)
		require.True(t, cleared)

		_, err = repo.Load(t.Context())
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("credentials", func(t *testing.T) {
		st := newStore(t)

		_, err := st.Credentials().Get(t.Context())
		require.ErrorIs(t, err, store.ErrNotFound)

		require.NoError(t, st.Credentials().Put(t.Context(), []byte{0x01, 0x02}))
		require.NoError(t, st.Credentials().Put(t.Context(), []byte{0x03}))

		got, err := st.Credentials().Get(t.Context())
		require.NoError(t, err)
		require.Equal(t, []byte{0x03}, got)

		require.NoError(t, st.Credentials().Delete(t.Context()))
		require.NoError(t, st.Credentials().Delete(t.Context()))

		_, err = st.Credentials().Get(t.Context())
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("ping", func(t *testing.T) {
		require.NoError(t, newStore(t).Ping(t.Context()))
	})
}
