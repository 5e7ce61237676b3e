package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/aussiebroadwan/storefront/internal/storefront/domain"
)

type fakeOrders struct {
	mu       sync.Mutex
	next     int
	err      error
	requests []domain.OrderRequest
}

func (f *fakeOrders) CreateOrder(_ context.Context, req domain.OrderRequest) (domain.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.requests = append(f.requests, req)
	if f.err != nil {
		return domain.Order{}, f.err
	}
	f.next++
	return domain.Order{
		OrderID:     fmt.Sprintf("order-%d", f.next),
		OrderNumber: fmt.Sprintf("ORD-%d", f.next),
	}, nil
}

type fakePromotions struct {
	coupons  map[string]domain.Coupon
	policies []domain.Policy
	err      error
}

func (f *fakePromotions) Coupon(_ context.Context, id string) (domain.Coupon, error) {
	c, ok := f.coupons[id]
	if !ok {
		return domain.Coupon{}, errors.New("coupon not found")
	}
	return c, nil
}

func (f *fakePromotions) Policies(_ context.Context, _ []string) ([]domain.Policy, error) {
	return f.policies, f.err
}

type confirmCall struct {
	req            domain.ConfirmRequest
	idempotencyKey string
}

type fakePayments struct {
	mu     sync.Mutex
	calls  []confirmCall
	status domain.PaymentStatus
	err    error
}

func (f *fakePayments) Confirm(_ context.Context, req domain.ConfirmRequest, key string) (domain.Confirmation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls = append(f.calls, confirmCall{req: req, idempotencyKey: key})
	if f.err != nil {
		return domain.Confirmation{}, f.err
	}

	status := f.status
	if status == "" {
		status = domain.PaymentDone
	}
	return domain.Confirmation{
		PaymentID:   "pay-" + req.PaymentReference,
		OrderNumber: req.OrderNumber,
		Amount:      req.Amount,
		Status:      status,
	}, nil
}

func (f *fakePayments) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

type fakeCart struct {
	mu      sync.Mutex
	removed [][]domain.LineRef
	err     error
}

func (f *fakeCart) RemoveLines(_ context.Context, refs []domain.LineRef) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.err != nil {
		return f.err
	}
	f.removed = append(f.removed, refs)
	return nil
}

func (f *fakeCart) removedCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.removed)
}
