package redis

import (
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/storefront/internal/storefront/store"
	"github.com/aussiebroadwan/storefront/internal/storefront/store/storetest"
)

// setupTestRedis creates a miniredis server and a Store pointing at it.
func setupTestRedis(t *testing.T) (*Store, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewStore(client, "test"), mr
}

func TestRedisStore(t *testing.T) {
	storetest.Run(t, func(t *testing.T) store.Store {
		st, _ := setupTestRedis(t)
		return st
	})
}

func TestRedisStore_KeyLayout(t *testing.T) {
	st, mr := setupTestRedis(t)

	pending := storetest.SamplePending(time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC))
	require.NoError(t, st.PendingPayments().Save(t.Context(), pending))
	require.NoError(t, st.Credentials().Put(t.Context(), []byte("sealed")))

	require.True(t, mr.Exists("test:pending_payment"))
	require.Equal(t, time.Duration(0), mr.TTL("test:pending_payment"))

	raw, err := mr.Get("test:credential")
	require.NoError(t, err)
	require.Equal(t, "sealed", raw)

	require.Contains(t, mustGet(t, mr, "test:pending_payment"), `"orderNumber":"ORD-1"`)
}

func TestRedisStore_CorruptRecord(t *testing.T) {
	st, mr := setupTestRedis(t)
	require.NoError(t, mr.Set("test:pending_payment", "{not json"))

	_, err := st.PendingPayments().Load(t.Context())
	require.Error(t, err)
	require.NotErrorIs(t, err, store.ErrNotFound)
}

func TestRedisStore_Unreachable(t *testing.T) {
	st, mr := setupTestRedis(t)
	mr.Close()

	require.Error(t, st.Ping(t.Context()))
	_, err := st.Credentials().Get(t.Context())
	require.Error(t, err)
	require.NotErrorIs(t, err, store.ErrNotFound)
}

func TestOpen(t *testing.T) {
	mr := miniredis.RunT(t)

	st, err := Open(t.Context(), mr.Addr(), "")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.Equal(t, "storefront:credential", st.key("credential"))

	_, err = Open(t.Context(), "127.0.0.1:1", "")
	require.Error(t, err)
}

func mustGet(t *testing.T, mr *miniredis.Miniredis, key string) string {
	t.Helper()
	v, err := mr.Get(key)
	require.NoError(t, err)
	return v
}
