// Package memory is the in-process store driver. Nothing survives a
// restart, so it suits tests and one-shot CLI runs.
package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/aussiebroadwan/storefront/internal/storefront/domain"
	"github.com/aussiebroadwan/storefront/internal/storefront/store"
	"github.com/aussiebroadwan/storefront/pkg/idx"
)

type Store struct {
	mu         sync.RWMutex
	pending    *domain.PendingPayment
	credential []byte
}

func NewStore() *Store {
	return &Store{}
}

func (s *Store) Close() error                 { return nil }
func (s *Store) Ping(_ context.Context) error { return nil }

func (s *Store) PendingPayments() store.PendingPayments { return &pendingPaymentsRepo{s: s} }
func (s *Store) Credentials() store.Credentials         { return &credentialsRepo{s: s} }

type pendingPaymentsRepo struct {
	s *Store
}

func (r *pendingPaymentsRepo) Save(_ context.Context, p domain.PendingPayment) error {
	p.Lines = slices.Clone(p.Lines)

	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.pending = &p
	return nil
}

func (r *pendingPaymentsRepo) Load(_ context.Context) (domain.PendingPayment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	if r.s.pending == nil {
		return domain.PendingPayment{}, store.ErrNotFound
	}
	p := *r.s.pending
	p.Lines = slices.Clone(p.Lines)
	return p, nil
}

func (r *pendingPaymentsRepo) Clear(_ context.Context) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.pending = nil
	return nil
}

func (r *pendingPaymentsRepo) ClearAttempt(_ context.Context, attemptID idx.ID) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if r.s.pending == nil || r.s.pending.AttemptID != attemptID {
		return false, nil
	}
	r.s.pending = nil
	return true, nil
}

type credentialsRepo struct {
	s *Store
}

func (r *credentialsRepo) Get(_ context.Context) ([]byte, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	if r.s.credential == nil {
		return nil, store.ErrNotFound
	}
	return slices.Clone(r.s.credential), nil
}

func (r *credentialsRepo) Put(_ context.Context, sealed []byte) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.credential = slices.Clone(sealed)
	if r.s.credential == nil {
		r.s.credential = []byte{}
	}
	return nil
}

func (r *credentialsRepo) Delete(_ context.Context) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.credential = nil
	return nil
}
