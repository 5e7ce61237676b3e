package authsdk

import (
	"context"
	"errors"
	"sync"

	"github.com/aussiebroadwan/storefront/pkg/jwtx"
)

// ErrNoCredentials is returned by a CredentialStore that holds nothing.
var ErrNoCredentials = errors.New("authsdk: no stored credentials")

// Credential is the shopper's token pair plus the claims decoded from the
// access token. Claims are never persisted, they are re-derived on load.
type Credential struct {
	AccessToken  string      `json:"accessToken"`
	RefreshToken string      `json:"refreshToken,omitempty"`
	Claims       jwtx.Claims `json:"-"`
}

// CredentialStore persists the single credential record of a Session. Each
// Save overwrites the previous record wholesale.
type CredentialStore interface {
	Load(ctx context.Context) (Credential, error)
	Save(ctx context.Context, cred Credential) error
	Clear(ctx context.Context) error
}

// MemoryCredentialStore is a process-local CredentialStore, used in tests and
// when no durable driver is configured.
type MemoryCredentialStore struct {
	mu   sync.Mutex
	cred *Credential
}

func NewMemoryCredentialStore() *MemoryCredentialStore {
	return &MemoryCredentialStore{}
}

func (m *MemoryCredentialStore) Load(_ context.Context) (Credential, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.cred == nil {
		return Credential{}, ErrNoCredentials
	}
	return *m.cred, nil
}

func (m *MemoryCredentialStore) Save(_ context.Context, cred Credential) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.cred = &cred
	return nil
}

func (m *MemoryCredentialStore) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.cred = nil
	return nil
}
