package authsdk

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"golang.org/x/sync/singleflight"

	"github.com/aussiebroadwan/storefront/pkg/cryptox"
	"github.com/aussiebroadwan/storefront/pkg/jwtx"
)

// DefaultRefreshTimeout bounds a single refresh exchange.
const DefaultRefreshTimeout = 10 * time.Second

const refreshFlightKey = "refresh"

// SessionConfig configures a Session. Only Store is required.
type SessionConfig struct {
	Store CredentialStore

	// Clock defaults to the real clock.
	Clock clockwork.Clock

	// RefreshThreshold is how close to expiry a token may get before it is
	// refreshed. Defaults to jwtx.DefaultRefreshThreshold.
	RefreshThreshold time.Duration

	// RefreshTimeout bounds the refresh exchange independently of any
	// caller's context. Defaults to DefaultRefreshTimeout.
	RefreshTimeout time.Duration

	Logger *slog.Logger
}

// Session owns the shopper's credential. It hands out access tokens that are
// not due for refresh, refreshing them at most once at a time no matter how
// many goroutines ask concurrently. A Session is safe for concurrent use.
type Session struct {
	client         *SDKClient
	store          CredentialStore
	clock          clockwork.Clock
	threshold      time.Duration
	refreshTimeout time.Duration
	logger         *slog.Logger

	flight singleflight.Group

	// mu also covers store writes so the store never disagrees with cred.
	mu   sync.RWMutex
	cred *Credential
}

// NewSession creates a Session backed by cfg.Store and loads any credential
// already persisted there.
func (c *SDKClient) NewSession(ctx context.Context, cfg SessionConfig) (*Session, error) {
	if cfg.Store == nil {
		return nil, errors.New("authsdk: session requires a credential store")
	}
	if cfg.Clock == nil {
		cfg.Clock = clockwork.NewRealClock()
	}
	if cfg.RefreshThreshold <= 0 {
		cfg.RefreshThreshold = jwtx.DefaultRefreshThreshold
	}
	if cfg.RefreshTimeout <= 0 {
		cfg.RefreshTimeout = DefaultRefreshTimeout
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	s := &Session{
		client:         c,
		store:          cfg.Store,
		clock:          cfg.Clock,
		threshold:      cfg.RefreshThreshold,
		refreshTimeout: cfg.RefreshTimeout,
		logger:         cfg.Logger.With("component", "session"),
	}

	cred, err := cfg.Store.Load(ctx)
	switch {
	case errors.Is(err, ErrNoCredentials):
		return s, nil
	case err != nil:
		return nil, fmt.Errorf("failed to load credentials: %w", err)
	}

	// A stored access token that no longer decodes is kept: it reads as
	// expired, so the first caller goes straight to a refresh.
	if claims, err := jwtx.Decode(cred.AccessToken); err == nil {
		cred.Claims = claims
	}
	s.cred = &cred

	return s, nil
}

// Login exchanges username and password for a fresh credential and persists
// it, replacing whatever the Session held before.
func (s *Session) Login(ctx context.Context, username, password string) (Credential, error) {
	resp, err := s.client.PasswordGrant(ctx, username, password)
	if err != nil {
		return Credential{}, fmt.Errorf("login failed: %w", err)
	}

	claims, err := jwtx.Decode(resp.AccessToken)
	if err != nil {
		return Credential{}, fmt.Errorf("login returned unusable access token: %w", err)
	}

	cred := Credential{
		AccessToken:  resp.AccessToken,
		RefreshToken: resp.RefreshToken,
		Claims:       claims,
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.Save(ctx, cred); err != nil {
		return Credential{}, fmt.Errorf("failed to persist credentials: %w", err)
	}
	s.cred = &cred

	s.logger.Info("Logged in", "subject", claims.SubjectID(), "expires_at", claims.ExpiresAtTime())
	return cred, nil
}

// Logout forgets the credential in memory and in the store. It is safe to call
// on a session that is already logged out.
func (s *Session) Logout(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cred = nil
	if err := s.store.Clear(ctx); err != nil {
		return fmt.Errorf("failed to clear credentials: %w", err)
	}
	return nil
}

// Current returns a copy of the held credential.
func (s *Session) Current() (Credential, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.cred == nil {
		return Credential{}, false
	}
	return *s.cred, true
}

// GetValidAccessToken returns an access token that is not due for refresh.
// When the held token is due, it joins the refresh already in flight or
// starts one; every waiter observes the same outcome. A failed refresh logs
// the session out and returns *TokenRefreshError.
func (s *Session) GetValidAccessToken(ctx context.Context) (string, error) {
	s.mu.RLock()
	cred := s.cred
	s.mu.RUnlock()

	if cred == nil {
		return "", ErrAuthRequired
	}

	if !jwtx.NeedsRefresh(cred.AccessToken, s.clock.Now(), s.threshold) {
		return cred.AccessToken, nil
	}

	return s.refresh(ctx, cred.AccessToken, false)
}

// ForceRefresh refreshes even though the local clock says the token is still
// good. rejected is the token the server just refused; if the session already
// moved past it and holds an unexpired token, that token is returned without
// another exchange.
func (s *Session) ForceRefresh(ctx context.Context, rejected string) (string, error) {
	s.mu.RLock()
	held := s.cred != nil
	s.mu.RUnlock()

	if !held {
		return "", ErrAuthRequired
	}

	return s.refresh(ctx, rejected, true)
}

func (s *Session) refresh(ctx context.Context, stale string, force bool) (string, error) {
	ch := s.flight.DoChan(refreshFlightKey, func() (any, error) {
		return s.exchange(ctx, stale, force)
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return "", res.Err
		}
		return res.Val.(string), nil
	case <-ctx.Done():
		return "", fmt.Errorf("%w: %w", ErrTimeout, ctx.Err())
	}
}

// exchange runs inside the single flight. It is detached from the caller's
// cancellation since other callers may be waiting on the same result.
func (s *Session) exchange(ctx context.Context, stale string, force bool) (string, error) {
	s.mu.RLock()
	cur := s.cred
	s.mu.RUnlock()

	if cur == nil {
		return "", ErrAuthRequired
	}

	now := s.clock.Now()
	if cur.AccessToken != stale {
		if force && !jwtx.IsExpired(cur.AccessToken, now) {
			return cur.AccessToken, nil
		}
		if !force && !jwtx.NeedsRefresh(cur.AccessToken, now, s.threshold) {
			return cur.AccessToken, nil
		}
	}

	if cur.RefreshToken == "" {
		return "", s.fail(ctx, cur, errors.New("no refresh token stored"))
	}

	logger := s.logger.With("refresh_fp", cryptox.FingerprintToken(cur.RefreshToken), "forced", force)
	logger.Debug("Refreshing access token")

	rctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.refreshTimeout)
	defer cancel()

	resp, err := s.client.RefreshGrant(rctx, cur.RefreshToken)
	if err != nil {
		if errors.Is(rctx.Err(), context.DeadlineExceeded) {
			err = fmt.Errorf("%w: %w", ErrTimeout, err)
		}
		return "", s.fail(ctx, cur, err)
	}

	claims, err := jwtx.Decode(resp.AccessToken)
	if err != nil {
		return "", s.fail(ctx, cur, fmt.Errorf("refreshed access token unusable: %w", err))
	}

	// A token handed out must stay usable for the whole threshold.
	if jwtx.NeedsRefresh(resp.AccessToken, s.clock.Now(), s.threshold) {
		return "", s.fail(ctx, cur, fmt.Errorf(
			"refreshed access token expires at %s, within refresh threshold %s",
			claims.ExpiresAtTime().Format(time.RFC3339), s.threshold,
		))
	}

	next := Credential{
		AccessToken:  resp.AccessToken,
		RefreshToken: resp.RefreshToken,
		Claims:       claims,
	}
	if next.RefreshToken == "" {
		next.RefreshToken = cur.RefreshToken
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// A logout or login that landed during the exchange wins.
	if s.cred != cur {
		logger.Info("Discarding refreshed credential, session changed during refresh")
		if s.cred == nil {
			return "", ErrAuthRequired
		}
		return s.cred.AccessToken, nil
	}

	s.cred = &next

	// The in-memory credential is authoritative for this process; a failed
	// write only costs a re-login after restart.
	if err := s.store.Save(rctx, next); err != nil {
		logger.Error("Failed to persist refreshed credentials", "error", err)
	}

	logger.Info("Access token refreshed", "expires_at", claims.ExpiresAtTime())
	return next.AccessToken, nil
}

// fail logs the session out, unless it moved on from cur in the meantime, and
// wraps cause in a *TokenRefreshError.
func (s *Session) fail(ctx context.Context, cur *Credential, cause error) error {
	s.logger.Warn("Token refresh failed, logging out", "error", cause)

	s.clearIf(context.WithoutCancel(ctx), func(held *Credential) bool { return held == cur })
	return &TokenRefreshError{Err: cause}
}

// clearIf logs the session out when match accepts the held credential.
func (s *Session) clearIf(ctx context.Context, match func(held *Credential) bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cred == nil || !match(s.cred) {
		return
	}

	s.cred = nil
	if err := s.store.Clear(ctx); err != nil {
		s.logger.Error("Failed to clear credentials", "error", err)
	}
}
