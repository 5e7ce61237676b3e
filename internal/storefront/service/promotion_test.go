package service

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/storefront/internal/storefront/domain"
)

func ptr(v int64) *int64 { return &v }

var sampleLines = []domain.CartLine{
	{ProductID: "mug", VariantID: "blue", UnitPrice: 20000, Quantity: 2},
	{ProductID: "tee", UnitPrice: 30000, Quantity: 1},
	{ProductID: "mug", VariantID: "red", UnitPrice: 25000, Quantity: 1},
}

func TestCartTotal(t *testing.T) {
	require.Equal(t, int64(95000), CartTotal(sampleLines))
	require.Zero(t, CartTotal(nil))
}

func TestComputeDiscount_Coupon(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		total  int64
		coupon *domain.Coupon
		want   int64
	}{
		{
			name:   "rate capped at max",
			total:  100000,
			coupon: &domain.Coupon{Type: domain.DiscountRate, Value: 10, MaxDiscountAmount: ptr(5000)},
			want:   5000,
		},
		{
			name:   "rate uncapped",
			total:  100000,
			coupon: &domain.Coupon{Type: domain.DiscountRate, Value: 10},
			want:   10000,
		},
		{
			name:   "rate rounds down",
			total:  1001,
			coupon: &domain.Coupon{Type: domain.DiscountRate, Value: 33},
			want:   330,
		},
		{
			name:   "fixed",
			total:  100000,
			coupon: &domain.Coupon{Type: domain.DiscountFixed, Value: 3000, MinOrderAmount: 100000},
			want:   3000,
		},
		{
			name:   "below minimum",
			total:  99999,
			coupon: &domain.Coupon{Type: domain.DiscountFixed, Value: 3000, MinOrderAmount: 100000},
			want:   0,
		},
		{
			name:  "no coupon",
			total: 100000,
			want:  0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeDiscount(nil, tt.total, tt.coupon, nil)
			require.Equal(t, tt.want, got.CouponDiscount)
			require.Equal(t, tt.total-tt.want, got.FinalAmount)
		})
	}
}

func TestComputeDiscount_OrderPolicyBelowMinimum(t *testing.T) {
	policy := domain.Policy{
		ID:             "p-order",
		Scope:          domain.ScopeOrder,
		Type:           domain.DiscountFixed,
		Value:          3000,
		MinOrderAmount: 50000,
	}

	got := ComputeDiscount(nil, 40000, nil, []domain.Policy{policy})
	require.Zero(t, got.PolicyDiscount)
	require.Equal(t, int64(40000), got.FinalAmount)
	require.Equal(t, []domain.PolicyDiscount{{PolicyID: "p-order", Amount: 0}}, got.Policies)

	got = ComputeDiscount(nil, 50000, nil, []domain.Policy{policy})
	require.Equal(t, int64(3000), got.PolicyDiscount)
}

func TestComputeDiscount_ProductPolicies(t *testing.T) {
	t.Parallel()

	total := CartTotal(sampleLines)

	t.Run("first matching line without variant", func(t *testing.T) {
		got := ComputeDiscount(sampleLines, total, nil, []domain.Policy{
			{ID: "mug10", Scope: domain.ScopeProduct, Type: domain.DiscountRate, Value: 10, ProductID: "mug"},
		})
		require.Equal(t, int64(4000), got.PolicyDiscount)
	})

	t.Run("variant narrows the line", func(t *testing.T) {
		got := ComputeDiscount(sampleLines, total, nil, []domain.Policy{
			{ID: "red10", Scope: domain.ScopeProduct, Type: domain.DiscountRate, Value: 10, ProductID: "mug", VariantID: "red"},
		})
		require.Equal(t, int64(2500), got.PolicyDiscount)
	})

	t.Run("absent product is skipped", func(t *testing.T) {
		got := ComputeDiscount(sampleLines, total, nil, []domain.Policy{
			{ID: "hat", Scope: domain.ScopeProduct, Type: domain.DiscountFixed, Value: 1000, ProductID: "hat"},
		})
		require.Zero(t, got.PolicyDiscount)
		require.Equal(t, total, got.FinalAmount)
	})

	t.Run("cap applies per policy", func(t *testing.T) {
		got := ComputeDiscount(sampleLines, total, nil, []domain.Policy{
			{ID: "tee50", Scope: domain.ScopeProduct, Type: domain.DiscountRate, Value: 50, ProductID: "tee", MaxDiscountAmount: ptr(10000)},
			{ID: "order5", Scope: domain.ScopeOrder, Type: domain.DiscountFixed, Value: 5000},
		})
		require.Equal(t, int64(15000), got.PolicyDiscount)
		require.Equal(t, []domain.PolicyDiscount{
			{PolicyID: "tee50", Amount: 10000},
			{PolicyID: "order5", Amount: 5000},
		}, got.Policies)
	})
}

func TestComputeDiscount_Combined(t *testing.T) {
	coupon := &domain.Coupon{Type: domain.DiscountFixed, Value: 10000}
	policies := []domain.Policy{
		{ID: "order", Scope: domain.ScopeOrder, Type: domain.DiscountRate, Value: 10},
	}

	got := ComputeDiscount(sampleLines, 95000, coupon, policies)
	require.Equal(t, domain.DiscountResult{
		TotalPrice:     95000,
		CouponDiscount: 10000,
		PolicyDiscount: 9500,
		FinalAmount:    75500,
		Policies:       []domain.PolicyDiscount{{PolicyID: "order", Amount: 9500}},
	}, got)

	// Same inputs, same output.
	require.Equal(t, got, ComputeDiscount(sampleLines, 95000, coupon, policies))
}

func TestComputeDiscount_NeverNegative(t *testing.T) {
	coupon := &domain.Coupon{Type: domain.DiscountFixed, Value: 80000}
	policies := []domain.Policy{
		{ID: "a", Scope: domain.ScopeOrder, Type: domain.DiscountFixed, Value: 50000},
		{ID: "b", Scope: domain.ScopeOrder, Type: domain.DiscountRate, Value: 100},
	}

	for _, total := range []int64{0, 1, 1000, 100000} {
		got := ComputeDiscount(nil, total, coupon, policies)
		require.GreaterOrEqual(t, got.FinalAmount, int64(0), "total %d", total)
	}
}
