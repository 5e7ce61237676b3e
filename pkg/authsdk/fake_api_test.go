package authsdk_test

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/storefront/pkg/authsdk"
	"github.com/aussiebroadwan/storefront/pkg/jwtx"
)

var testSecret = []byte("test-secret")

var epoch = time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)

// fakeAPI stands in for the commerce API: it serves the refresh exchange and
// a protected resource whose behaviour each test decides.
type fakeAPI struct {
	t      *testing.T
	clock  clockwork.Clock
	server *httptest.Server

	// refreshTTL is the lifetime of tokens handed out by /auth/refresh.
	refreshTTL time.Duration
	// refreshStatus, when non-zero, is returned instead of a token.
	refreshStatus atomic.Int32
	// refreshGate, when set, holds every refresh until it is closed.
	refreshGate chan struct{}
	// omitRefreshToken makes /auth/refresh return only an access token.
	omitRefreshToken bool

	refreshCalls  atomic.Int32
	resourceCalls atomic.Int32
	minted        atomic.Int32

	mu       sync.Mutex
	resource http.HandlerFunc
	bodies   []string
}

func newFakeAPI(t *testing.T, clock clockwork.Clock) *fakeAPI {
	t.Helper()

	api := &fakeAPI{t: t, clock: clock, refreshTTL: time.Hour}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/refresh", api.handleRefresh)
	mux.HandleFunc("POST /auth/login", api.handleLogin)
	mux.HandleFunc("/api/", func(w http.ResponseWriter, r *http.Request) {
		api.resourceCalls.Add(1)
		body, _ := io.ReadAll(r.Body)

		api.mu.Lock()
		api.bodies = append(api.bodies, string(body))
		handler := api.resource
		api.mu.Unlock()

		if handler == nil {
			w.WriteHeader(http.StatusOK)
			return
		}
		handler(w, r)
	})

	api.server = httptest.NewServer(mux)
	t.Cleanup(api.server.Close)
	return api
}

func (api *fakeAPI) mint(ttl time.Duration) string {
	api.t.Helper()

	claims := jwtx.NewClaims("user-1", "USER", ttl, api.clock.Now())
	claims.ID = fmt.Sprintf("tok-%d", api.minted.Add(1))

	token, err := jwtx.SignHS256(claims, testSecret)
	require.NoError(api.t, err)
	return token
}

func (api *fakeAPI) setResource(h http.HandlerFunc) {
	api.mu.Lock()
	defer api.mu.Unlock()
	api.resource = h
}

func (api *fakeAPI) receivedBodies() []string {
	api.mu.Lock()
	defer api.mu.Unlock()
	return append([]string(nil), api.bodies...)
}

func (api *fakeAPI) handleRefresh(w http.ResponseWriter, r *http.Request) {
	api.refreshCalls.Add(1)

	if api.refreshGate != nil {
		<-api.refreshGate
	}

	if status := api.refreshStatus.Load(); status != 0 {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(int(status))
		_, _ = w.Write([]byte(`{"code":"INVALID_REFRESH_TOKEN","message":"refresh token expired"}`))
		return
	}

	var req struct {
		RefreshToken string `json:"refreshToken"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.RefreshToken == "" {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	resp := map[string]string{"accessToken": api.mint(api.refreshTTL)}
	if !api.omitRefreshToken {
		resp["refreshToken"] = fmt.Sprintf("refresh-%d", api.refreshCalls.Load())
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}

func (api *fakeAPI) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	if req.Password != "hunter2" {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":"invalid_grant","error_description":"invalid credentials"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{
		"accessToken":  api.mint(time.Hour),
		"refreshToken": "refresh-login",
	})
}

// newSession builds a Session over the fake API whose store already holds
// an access token expiring after accessTTL.
func newSession(t *testing.T, api *fakeAPI, accessTTL time.Duration, refreshToken string) (*authsdk.Session, *authsdk.MemoryCredentialStore) {
	t.Helper()

	store := authsdk.NewMemoryCredentialStore()
	if accessTTL != 0 {
		require.NoError(t, store.Save(t.Context(), authsdk.Credential{
			AccessToken:  api.mint(accessTTL),
			RefreshToken: refreshToken,
		}))
	}

	session, err := authsdk.NewSDKClient(api.server.URL).NewSession(t.Context(), authsdk.SessionConfig{
		Store:            store,
		Clock:            api.clock,
		RefreshThreshold: 300 * time.Second,
		RefreshTimeout:   2 * time.Second,
	})
	require.NoError(t, err)
	return session, store
}
