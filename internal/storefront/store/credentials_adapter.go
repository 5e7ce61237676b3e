package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/aussiebroadwan/storefront/pkg/authsdk"
	"github.com/aussiebroadwan/storefront/pkg/cryptox"
)

// CredentialStoreAdapter adapts a driver's Credentials repository to the
// authsdk.CredentialStore interface, sealing the token pair on the way in
// and opening it on the way out.
type CredentialStoreAdapter struct {
	repo   Credentials
	sealer *cryptox.Sealer
}

// NewCredentialStoreAdapter creates an adapter over repo.
func NewCredentialStoreAdapter(repo Credentials, sealer *cryptox.Sealer) *CredentialStoreAdapter {
	return &CredentialStoreAdapter{repo: repo, sealer: sealer}
}

// Load returns authsdk.ErrNoCredentials when nothing is stored. A blob that
// no longer opens is reported as ErrCredentialUnreadable rather than
// silently treated as logged out.
func (a *CredentialStoreAdapter) Load(ctx context.Context) (authsdk.Credential, error) {
	sealed, err := a.repo.Get(ctx)
	if errors.Is(err, ErrNotFound) {
		return authsdk.Credential{}, authsdk.ErrNoCredentials
	}
	if err != nil {
		return authsdk.Credential{}, err
	}

	plaintext, err := a.sealer.Open(sealed)
	if err != nil {
		return authsdk.Credential{}, fmt.Errorf("%w: failed to open: %w", ErrCredentialUnreadable, err)
	}

	var cred authsdk.Credential
	if err := json.Unmarshal(plaintext, &cred); err != nil {
		return authsdk.Credential{}, fmt.Errorf("%w: failed to decode: %w", ErrCredentialUnreadable, err)
	}
	return cred, nil
}

// Save seals and stores cred, replacing the previous record.
func (a *CredentialStoreAdapter) Save(ctx context.Context, cred authsdk.Credential) error {
	plaintext, err := json.Marshal(cred)
	if err != nil {
		return fmt.Errorf("failed to encode credentials: %w", err)
	}

	sealed, err := a.sealer.Seal(plaintext)
	if err != nil {
		return err
	}
	return a.repo.Put(ctx, sealed)
}

// Clear removes the stored credential.
func (a *CredentialStoreAdapter) Clear(ctx context.Context) error {
	return a.repo.Delete(ctx)
}
