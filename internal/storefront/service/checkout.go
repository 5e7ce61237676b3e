package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/jonboulle/clockwork"

	"github.com/aussiebroadwan/storefront/internal/storefront/domain"
	"github.com/aussiebroadwan/storefront/internal/storefront/store"
	"github.com/aussiebroadwan/storefront/pkg/idx"
	"github.com/aussiebroadwan/storefront/pkg/slogx"
)

const (
	SuccessReturnPath = "/v1/checkout/return/success"
	FailReturnPath    = "/v1/checkout/return/fail"
)

// CheckoutRequest is a cart snapshot the shopper is about to pay for.
type CheckoutRequest struct {
	Lines    []domain.CartLine `json:"lines"`
	CouponID string            `json:"couponId,omitempty"`
	Origin   domain.Origin     `json:"origin,omitempty"`
}

// Checkout is what the UI needs to open the payment widget.
type Checkout struct {
	Widget   domain.WidgetParams   `json:"widget"`
	Discount domain.DiscountResult `json:"discount"`
}

type CheckoutService struct {
	Store      store.PendingPayments
	Orders     Orders
	Promotions Promotions
	Clock      clockwork.Clock

	// PublicBaseURL is where the processor sends the browser back to.
	PublicBaseURL string
}

// ProceedToPayment creates the order, prices it and records the pending
// attempt, overwriting any earlier one. Nothing is persisted if any step
// before the save fails.
func (s *CheckoutService) ProceedToPayment(ctx context.Context, req CheckoutRequest) (Checkout, error) {
	l := slogx.FromContext(ctx)

	if req.Origin == "" {
		req.Origin = domain.OriginCart
	}
	if err := validateCheckout(req); err != nil {
		return Checkout{}, err
	}

	order, err := s.Orders.CreateOrder(ctx, domain.OrderRequest{Lines: req.Lines, CouponID: req.CouponID})
	if err != nil {
		l.Error("failed to create order", "error", err)
		return Checkout{}, fmt.Errorf("create order: %w", err)
	}

	var coupon *domain.Coupon
	if req.CouponID != "" {
		c, err := s.Promotions.Coupon(ctx, req.CouponID)
		if err != nil {
			l.Error("failed to fetch coupon", "coupon_id", req.CouponID, "error", err)
			return Checkout{}, fmt.Errorf("fetch coupon: %w", err)
		}
		coupon = &c
	}

	policies, err := s.Promotions.Policies(ctx, productIDs(req.Lines))
	if err != nil {
		l.Error("failed to fetch discount policies", "error", err)
		return Checkout{}, fmt.Errorf("fetch discount policies: %w", err)
	}

	discount := ComputeDiscount(req.Lines, CartTotal(req.Lines), coupon, policies)

	now := s.clock().Now()
	pending := domain.PendingPayment{
		AttemptID:   idx.NewAt(now),
		OrderID:     order.OrderID,
		OrderNumber: order.OrderNumber,
		Amount:      discount.FinalAmount,
		Lines:       lineRefs(req.Lines),
		Origin:      req.Origin,
		CreatedAt:   now.UTC(),
	}
	if err := s.Store.Save(ctx, pending); err != nil {
		l.Error("failed to save pending payment", "order_number", order.OrderNumber, "error", err)
		return Checkout{}, fmt.Errorf("save pending payment: %w", err)
	}

	l.Info("checkout created",
		"attempt_id", pending.AttemptID,
		"order_number", pending.OrderNumber,
		"amount", pending.Amount,
		"origin", pending.Origin,
	)

	base := strings.TrimRight(s.PublicBaseURL, "/")
	return Checkout{
		Widget: domain.WidgetParams{
			AttemptID:   pending.AttemptID,
			OrderNumber: pending.OrderNumber,
			OrderName:   orderName(req.Lines),
			Amount:      pending.Amount,
			SuccessURL:  base + SuccessReturnPath,
			FailURL:     base + FailReturnPath,
		},
		Discount: discount,
	}, nil
}

// Pending returns the recorded attempt or ErrNoPendingPayment.
func (s *CheckoutService) Pending(ctx context.Context) (domain.PendingPayment, error) {
	p, err := s.Store.Load(ctx)
	if errors.Is(err, store.ErrNotFound) {
		return domain.PendingPayment{}, ErrNoPendingPayment
	}
	return p, err
}

// Abandon drops the pending attempt. It is a no-op when nothing is pending.
func (s *CheckoutService) Abandon(ctx context.Context) error {
	if err := s.Store.Clear(ctx); err != nil {
		return fmt.Errorf("clear pending payment: %w", err)
	}
	slogx.FromContext(ctx).Info("pending checkout abandoned")
	return nil
}

func (s *CheckoutService) clock() clockwork.Clock {
	if s.Clock == nil {
		return clockwork.NewRealClock()
	}
	return s.Clock
}

func validateCheckout(req CheckoutRequest) error {
	if len(req.Lines) == 0 {
		return fmt.Errorf("%w: no lines", ErrInvalidCheckout)
	}
	if !req.Origin.Valid() {
		return fmt.Errorf("%w: unknown origin %q", ErrInvalidCheckout, req.Origin)
	}
	for i, line := range req.Lines {
		if strings.TrimSpace(line.ProductID) == "" {
			return fmt.Errorf("%w: line %d has no product", ErrInvalidCheckout, i)
		}
		if line.Quantity <= 0 || line.UnitPrice < 0 {
			return fmt.Errorf("%w: line %d has invalid quantity or price", ErrInvalidCheckout, i)
		}
	}
	return nil
}

func lineRefs(lines []domain.CartLine) []domain.LineRef {
	refs := make([]domain.LineRef, 0, len(lines))
	for _, l := range lines {
		refs = append(refs, l.Ref())
	}
	return refs
}

func productIDs(lines []domain.CartLine) []string {
	ids := make([]string, 0, len(lines))
	for _, l := range lines {
		if !slices.Contains(ids, l.ProductID) {
			ids = append(ids, l.ProductID)
		}
	}
	return ids
}

// orderName is the label shown by the payment widget, e.g. "Blue Mug and
// 2 more".
func orderName(lines []domain.CartLine) string {
	first := lines[0].Name
	if first == "" {
		first = lines[0].ProductID
	}
	if len(lines) == 1 {
		return first
	}
	return fmt.Sprintf("%s and %d more", first, len(lines)-1)
}
