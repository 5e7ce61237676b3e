package app

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/storefront/internal/storefront/store"
	"github.com/aussiebroadwan/storefront/pkg/authsdk"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestLoadConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg := LoadConfig()
		require.Equal(t, "sqlite", cfg.StoreDriver)
		require.Equal(t, 300*time.Second, cfg.RefreshThreshold)
		require.Equal(t, 10*time.Second, cfg.RefreshTimeout)
		require.Zero(t, cfg.PendingTTL)
		require.Equal(t, 10*time.Minute, cfg.HousekeepingInterval)
		require.Equal(t, 8080, cfg.Port)
	})

	t.Run("overrides", func(t *testing.T) {
		t.Setenv("STORE_DRIVER", "redis")
		t.Setenv("REFRESH_THRESHOLD", "60")
		t.Setenv("PENDING_TTL", "2h")
		t.Setenv("PORT", "9090")

		cfg := LoadConfig()
		require.Equal(t, "redis", cfg.StoreDriver)
		require.Equal(t, time.Minute, cfg.RefreshThreshold)
		require.Equal(t, 2*time.Hour, cfg.PendingTTL)
		require.Equal(t, 9090, cfg.Port)
	})

	t.Run("invalid values fall back", func(t *testing.T) {
		t.Setenv("REFRESH_TIMEOUT", "soon")
		t.Setenv("PORT", "http")

		cfg := LoadConfig()
		require.Equal(t, 10*time.Second, cfg.RefreshTimeout)
		require.Equal(t, 8080, cfg.Port)
	})
}

func TestOpenStore(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	mr := miniredis.RunT(t)

	drivers := []Config{
		{StoreDriver: "memory"},
		{StoreDriver: "sqlite", DatabaseFile: filepath.Join(dir, "storefront.db")},
		{StoreDriver: "diskv", StateDir: filepath.Join(dir, "state")},
		{StoreDriver: "redis", RedisAddr: mr.Addr(), RedisPrefix: "test"},
	}

	for _, cfg := range drivers {
		t.Run(cfg.StoreDriver, func(t *testing.T) {
			st, err := OpenStore(ctx, cfg, discardLogger())
			require.NoError(t, err)
			t.Cleanup(func() { _ = st.Close() })

			require.NoError(t, st.Ping(ctx))
			_, err = st.PendingPayments().Load(ctx)
			require.ErrorIs(t, err, store.ErrNotFound)
		})
	}

	t.Run("unknown driver", func(t *testing.T) {
		_, err := OpenStore(ctx, Config{StoreDriver: "etcd"}, discardLogger())
		require.ErrorContains(t, err, `unknown store driver "etcd"`)
	})
}

func TestNewSealer(t *testing.T) {
	t.Run("key from environment", func(t *testing.T) {
		a, err := NewSealer(Config{CredentialKey: "shared-secret"}, discardLogger())
		require.NoError(t, err)
		b, err := NewSealer(Config{CredentialKey: "shared-secret"}, discardLogger())
		require.NoError(t, err)

		sealed, err := a.Seal([]byte("credential"))
		require.NoError(t, err)
		opened, err := b.Open(sealed)
		require.NoError(t, err)
		require.Equal(t, "credential", string(opened))
	})

	t.Run("key file survives restarts", func(t *testing.T) {
		cfg := Config{StoreDriver: "sqlite", CredentialKeyPath: filepath.Join(t.TempDir(), "keys", "storefront.key")}

		a, err := NewSealer(cfg, discardLogger())
		require.NoError(t, err)
		sealed, err := a.Seal([]byte("credential"))
		require.NoError(t, err)

		_, err = os.Stat(cfg.CredentialKeyPath)
		require.NoError(t, err)

		b, err := NewSealer(cfg, discardLogger())
		require.NoError(t, err)
		_, err = b.Open(sealed)
		require.NoError(t, err)
	})

	t.Run("memory driver needs no key file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "storefront.key")
		_, err := NewSealer(Config{StoreDriver: "memory", CredentialKeyPath: path}, discardLogger())
		require.NoError(t, err)

		_, err = os.Stat(path)
		require.ErrorIs(t, err, os.ErrNotExist)
	})
}

func newTestConfig(t *testing.T) Config {
	t.Helper()
	dir := t.TempDir()

	return Config{
		APIBaseURL:           "http://127.0.0.1:1",
		PublicBaseURL:        "http://localhost:8080",
		StoreDriver:          "sqlite",
		DatabaseFile:         filepath.Join(dir, "storefront.db"),
		CredentialKey:        "key-one",
		RefreshThreshold:     300 * time.Second,
		RefreshTimeout:       time.Second,
		HTTPTimeout:          time.Second,
		HousekeepingInterval: time.Hour,
		LogOutput:            io.Discard,
		Port:                 0,
		ShutdownGracePeriod:  time.Second,
	}
}

func TestNew(t *testing.T) {
	cfg := newTestConfig(t)

	app, err := New(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.Close() })

	_, ok := app.Session().Current()
	require.False(t, ok)
	require.NotNil(t, app.Checkout())

	rec := httptest.NewRecorder()
	app.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/livez", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	app.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/checkout/pending", nil))
	require.Equal(t, http.StatusConflict, rec.Code)
}

func TestNewDiscardsUnreadableCredential(t *testing.T) {
	ctx := context.Background()
	cfg := newTestConfig(t)

	// Seal a credential under one key, then restart under another.
	first, err := New(cfg)
	require.NoError(t, err)
	sealer, err := NewSealer(cfg, discardLogger())
	require.NoError(t, err)
	adapter := store.NewCredentialStoreAdapter(first.db.Credentials(), sealer)
	require.NoError(t, adapter.Save(ctx, authsdk.Credential{AccessToken: "a", RefreshToken: "r"}))
	require.NoError(t, first.Close())

	cfg.CredentialKey = "key-two"
	second, err := New(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = second.Close() })

	_, ok := second.Session().Current()
	require.False(t, ok)

	_, err = second.db.Credentials().Get(ctx)
	require.ErrorIs(t, err, store.ErrNotFound)
}
