package service

import (
	"context"

	"github.com/aussiebroadwan/storefront/internal/storefront/domain"
)

// Orders creates orders on the commerce API.
type Orders interface {
	CreateOrder(ctx context.Context, req domain.OrderRequest) (domain.Order, error)
}

// Promotions fetches the coupon and policy inputs of a discount.
type Promotions interface {
	Coupon(ctx context.Context, id string) (domain.Coupon, error)
	Policies(ctx context.Context, productIDs []string) ([]domain.Policy, error)
}

// Payments finalizes a payment server-side. idempotencyKey is the checkout
// attempt id.
type Payments interface {
	Confirm(ctx context.Context, req domain.ConfirmRequest, idempotencyKey string) (domain.Confirmation, error)
}

// Cart removes purchased lines after a reconciled payment.
type Cart interface {
	RemoveLines(ctx context.Context, refs []domain.LineRef) error
}
