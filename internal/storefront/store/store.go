package store

import (
	"context"
	"errors"

	"github.com/aussiebroadwan/storefront/internal/storefront/domain"
	"github.com/aussiebroadwan/storefront/pkg/idx"
)

var (
	ErrNotFound = errors.New("store: not found")

	// ErrCredentialUnreadable means a stored credential exists but cannot
	// be opened or decoded, e.g. after the sealing key changed.
	ErrCredentialUnreadable = errors.New("store: stored credential is unreadable")
)

// Store is the root data access interface implemented by each driver
// (sqlite, diskv, redis, memory). Both records it holds are singletons that
// are overwritten wholesale on every write.
type Store interface {
	PendingPayments() PendingPayments
	Credentials() Credentials

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the backing storage is reachable.
	Ping(ctx context.Context) error
}

// PendingPayments holds the single in-flight checkout attempt.
type PendingPayments interface {
	// Save overwrites any previous record.
	Save(ctx context.Context, p domain.PendingPayment) error

	// Load returns ErrNotFound when no attempt is pending.
	Load(ctx context.Context) (domain.PendingPayment, error)

	// Clear is a no-op when nothing is stored.
	Clear(ctx context.Context) error

	// ClearAttempt removes the record only while it still belongs to
	// attemptID, and reports whether it did. A newer attempt saved in the
	// meantime is left alone.
	ClearAttempt(ctx context.Context, attemptID idx.ID) (bool, error)
}

// Credentials holds the sealed credential blob. Drivers never see the
// plaintext tokens.
type Credentials interface {
	// Get returns ErrNotFound when no credential is stored.
	Get(ctx context.Context) ([]byte, error)
	Put(ctx context.Context, sealed []byte) error
	Delete(ctx context.Context) error
}
