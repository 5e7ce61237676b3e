package service

import (
	"errors"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/storefront/internal/storefront/domain"
	"github.com/aussiebroadwan/storefront/internal/storefront/store/drivers/memory"
)

var checkoutEpoch = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

type checkoutFixture struct {
	store      *memory.Store
	orders     *fakeOrders
	promotions *fakePromotions
	clock      clockwork.FakeClock
	svc        *CheckoutService
}

func newCheckoutFixture(t *testing.T) *checkoutFixture {
	t.Helper()

	f := &checkoutFixture{
		store:  memory.NewStore(),
		orders: &fakeOrders{},
		promotions: &fakePromotions{
			coupons: map[string]domain.Coupon{
				"WELCOME10": {ID: "WELCOME10", Type: domain.DiscountRate, Value: 10, MaxDiscountAmount: ptr(5000)},
			},
		},
		clock: clockwork.NewFakeClockAt(checkoutEpoch),
	}
	f.svc = &CheckoutService{
		Store:         f.store.PendingPayments(),
		Orders:        f.orders,
		Promotions:    f.promotions,
		Clock:         f.clock,
		PublicBaseURL: "https://shop.example/",
	}
	return f
}

func cartRequest() CheckoutRequest {
	return CheckoutRequest{
		Lines: []domain.CartLine{
			{ProductID: "mug", VariantID: "blue", Name: "Blue Mug", UnitPrice: 40000, Quantity: 2},
			{ProductID: "tee", Name: "Tee", UnitPrice: 20000, Quantity: 1},
		},
		CouponID: "WELCOME10",
	}
}

func TestProceedToPayment(t *testing.T) {
	f := newCheckoutFixture(t)

	got, err := f.svc.ProceedToPayment(t.Context(), cartRequest())
	require.NoError(t, err)

	require.Equal(t, int64(100000), got.Discount.TotalPrice)
	require.Equal(t, int64(5000), got.Discount.CouponDiscount)
	require.Equal(t, int64(95000), got.Widget.Amount)
	require.Equal(t, "ORD-1", got.Widget.OrderNumber)
	require.Equal(t, "Blue Mug and 1 more", got.Widget.OrderName)
	require.Equal(t, "https://shop.example/v1/checkout/return/success", got.Widget.SuccessURL)
	require.Equal(t, "https://shop.example/v1/checkout/return/fail", got.Widget.FailURL)

	pending, err := f.svc.Pending(t.Context())
	require.NoError(t, err)
	require.Equal(t, got.Widget.AttemptID, pending.AttemptID)
	require.Equal(t, "order-1", pending.OrderID)
	require.Equal(t, int64(95000), pending.Amount)
	require.Equal(t, domain.OriginCart, pending.Origin)
	require.Equal(t, checkoutEpoch, pending.CreatedAt)
	require.Equal(t, checkoutEpoch, pending.AttemptID.Time())
	require.Equal(t, []domain.LineRef{
		{ProductID: "mug", VariantID: "blue"},
		{ProductID: "tee"},
	}, pending.Lines)

	require.Len(t, f.orders.requests, 1)
	require.Equal(t, "WELCOME10", f.orders.requests[0].CouponID)
}

func TestProceedToPayment_OverwritesPrevious(t *testing.T) {
	f := newCheckoutFixture(t)

	first, err := f.svc.ProceedToPayment(t.Context(), cartRequest())
	require.NoError(t, err)

	f.clock.Advance(time.Minute)
	req := cartRequest()
	req.Origin = domain.OriginDirect
	req.Lines = req.Lines[:1]
	second, err := f.svc.ProceedToPayment(t.Context(), req)
	require.NoError(t, err)
	require.NotEqual(t, first.Widget.AttemptID, second.Widget.AttemptID)
	require.Equal(t, "Blue Mug", second.Widget.OrderName)

	pending, err := f.svc.Pending(t.Context())
	require.NoError(t, err)
	require.Equal(t, "ORD-2", pending.OrderNumber)
	require.Equal(t, domain.OriginDirect, pending.Origin)
}

func TestProceedToPayment_NothingSavedOnFailure(t *testing.T) {
	t.Run("order creation fails", func(t *testing.T) {
		f := newCheckoutFixture(t)
		f.orders.err = errors.New("boom")

		_, err := f.svc.ProceedToPayment(t.Context(), cartRequest())
		require.ErrorContains(t, err, "create order")

		_, err = f.svc.Pending(t.Context())
		require.ErrorIs(t, err, ErrNoPendingPayment)
	})

	t.Run("unknown coupon", func(t *testing.T) {
		f := newCheckoutFixture(t)
		req := cartRequest()
		req.CouponID = "NOPE"

		_, err := f.svc.ProceedToPayment(t.Context(), req)
		require.ErrorContains(t, err, "fetch coupon")

		_, err = f.svc.Pending(t.Context())
		require.ErrorIs(t, err, ErrNoPendingPayment)
	})

	t.Run("policies unavailable", func(t *testing.T) {
		f := newCheckoutFixture(t)
		f.promotions.err = errors.New("down")

		_, err := f.svc.ProceedToPayment(t.Context(), cartRequest())
		require.ErrorContains(t, err, "fetch discount policies")
	})
}

func TestProceedToPayment_Validation(t *testing.T) {
	f := newCheckoutFixture(t)

	tests := []struct {
		name string
		req  CheckoutRequest
	}{
		{"no lines", CheckoutRequest{}},
		{"bad origin", CheckoutRequest{Lines: cartRequest().Lines, Origin: "wishlist"}},
		{"zero quantity", CheckoutRequest{Lines: []domain.CartLine{{ProductID: "mug", UnitPrice: 1}}}},
		{"missing product", CheckoutRequest{Lines: []domain.CartLine{{UnitPrice: 1, Quantity: 1}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.ProceedToPayment(t.Context(), tt.req)
			require.ErrorIs(t, err, ErrInvalidCheckout)
		})
	}
	require.Empty(t, f.orders.requests)
}

func TestAbandon(t *testing.T) {
	f := newCheckoutFixture(t)
	require.NoError(t, f.svc.Abandon(t.Context()))

	_, err := f.svc.ProceedToPayment(t.Context(), cartRequest())
	require.NoError(t, err)

	require.NoError(t, f.svc.Abandon(t.Context()))
	_, err = f.svc.Pending(t.Context())
	require.ErrorIs(t, err, ErrNoPendingPayment)
}
