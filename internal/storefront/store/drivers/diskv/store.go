package diskv

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/peterbourgon/diskv/v3"

	"github.com/aussiebroadwan/storefront/internal/storefront/domain"
	"github.com/aussiebroadwan/storefront/internal/storefront/store"
	"github.com/aussiebroadwan/storefront/pkg/idx"
)

const (
	// cacheSizeMaxBytes bounds diskv's read cache; both records are small.
	cacheSizeMaxBytes = 64 * 1024

	pendingKey    = "pending_payment"
	credentialKey = "credential"
)

// Store keeps each record in its own file under a state directory. Writes
// go through a temp dir and rename, so a crash never leaves a torn record.
type Store struct {
	dv  *diskv.Diskv
	dir string

	// pendingMu makes ClearAttempt's compare and erase atomic with Save.
	pendingMu sync.Mutex
}

// NewStore opens (creating if needed) the state directory dir.
func NewStore(dir string) (*Store, error) {
	tmp := filepath.Join(dir, ".tmp")
	if err := os.MkdirAll(tmp, 0o700); err != nil {
		return nil, fmt.Errorf("failed to create state dir: %w", err)
	}

	// Simplest transform function: put all the data files into the base dir.
	flatTransform := func(s string) []string { return []string{} }

	dv := diskv.New(diskv.Options{
		BasePath:     dir,
		TempDir:      tmp,
		Transform:    flatTransform,
		CacheSizeMax: cacheSizeMaxBytes,
		PathPerm:     0o700,
		FilePerm:     0o600,
	})

	return &Store{dv: dv, dir: dir}, nil
}

func (s *Store) Close() error { return nil }

// Ping checks the state directory is still there.
func (s *Store) Ping(_ context.Context) error {
	info, err := os.Stat(s.dir)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("state path %s is not a directory", s.dir)
	}
	return nil
}

func (s *Store) PendingPayments() store.PendingPayments { return &pendingPaymentsRepo{s: s} }
func (s *Store) Credentials() store.Credentials         { return &credentialsRepo{s: s} }

func (s *Store) read(key string) ([]byte, error) {
	b, err := s.dv.Read(key)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, store.ErrNotFound
	}
	return b, err
}

func (s *Store) erase(key string) error {
	if err := s.dv.Erase(key); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

type pendingPaymentsRepo struct {
	s *Store
}

func (r *pendingPaymentsRepo) Save(_ context.Context, p domain.PendingPayment) error {
	b, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal pending payment failed: %w", err)
	}

	r.s.pendingMu.Lock()
	defer r.s.pendingMu.Unlock()
	return r.s.dv.Write(pendingKey, b)
}

func (r *pendingPaymentsRepo) Load(_ context.Context) (domain.PendingPayment, error) {
	r.s.pendingMu.Lock()
	defer r.s.pendingMu.Unlock()
	return r.load()
}

func (r *pendingPaymentsRepo) load() (domain.PendingPayment, error) {
	b, err := r.s.read(pendingKey)
	if err != nil {
		return domain.PendingPayment{}, err
	}

	var p domain.PendingPayment
	if err := json.Unmarshal(b, &p); err != nil {
		return domain.PendingPayment{}, fmt.Errorf("unmarshal pending payment failed: %w", err)
	}
	return p, nil
}

func (r *pendingPaymentsRepo) Clear(_ context.Context) error {
	r.s.pendingMu.Lock()
	defer r.s.pendingMu.Unlock()
	return r.s.erase(pendingKey)
}

func (r *pendingPaymentsRepo) ClearAttempt(_ context.Context, attemptID idx.ID) (bool, error) {
	r.s.pendingMu.Lock()
	defer r.s.pendingMu.Unlock()

	p, err := r.load()
	if errors.Is(err, store.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if p.AttemptID != attemptID {
		return false, nil
	}

	if err := r.s.erase(pendingKey); err != nil {
		return false, err
	}
	return true, nil
}

type credentialsRepo struct {
	s *Store
}

func (r *credentialsRepo) Get(_ context.Context) ([]byte, error) {
	return r.s.read(credentialKey)
}

func (r *credentialsRepo) Put(_ context.Context, sealed []byte) error {
	return r.s.dv.Write(credentialKey, sealed)
}

func (r *credentialsRepo) Delete(_ context.Context) error {
	return r.s.erase(credentialKey)
}
