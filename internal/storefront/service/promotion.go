package service

import (
	"github.com/aussiebroadwan/storefront/internal/storefront/domain"
)

// CartTotal sums the line subtotals.
func CartTotal(lines []domain.CartLine) int64 {
	var total int64
	for _, l := range lines {
		total += l.Subtotal()
	}
	return total
}

// ComputeDiscount applies an optional coupon and any number of policies to
// totalPrice. Coupon and policy discounts are additive and each is capped
// independently; the final amount never goes below zero. The result depends
// only on its inputs.
func ComputeDiscount(lines []domain.CartLine, totalPrice int64, coupon *domain.Coupon, policies []domain.Policy) domain.DiscountResult {
	res := domain.DiscountResult{TotalPrice: totalPrice}

	if coupon != nil && totalPrice >= coupon.MinOrderAmount {
		res.CouponDiscount = discountAmount(coupon.Type, coupon.Value, totalPrice, coupon.MaxDiscountAmount)
	}

	for _, p := range policies {
		amount := policyDiscount(p, lines, totalPrice)
		res.PolicyDiscount += amount
		res.Policies = append(res.Policies, domain.PolicyDiscount{PolicyID: p.ID, Amount: amount})
	}

	res.FinalAmount = max(0, totalPrice-res.CouponDiscount-res.PolicyDiscount)
	return res
}

func policyDiscount(p domain.Policy, lines []domain.CartLine, totalPrice int64) int64 {
	if totalPrice < p.MinOrderAmount {
		return 0
	}

	switch p.Scope {
	case domain.ScopeOrder:
		return discountAmount(p.Type, p.Value, totalPrice, p.MaxDiscountAmount)
	case domain.ScopeProduct:
		for _, l := range lines {
			if p.Matches(l) {
				return discountAmount(p.Type, p.Value, l.Subtotal(), p.MaxDiscountAmount)
			}
		}
		return 0
	default:
		return 0
	}
}

// discountAmount computes a RATE (percent, rounded down) or FIXED discount
// against base, capped at maxAmount when set.
func discountAmount(t domain.DiscountType, value, base int64, maxAmount *int64) int64 {
	var amount int64
	switch t {
	case domain.DiscountRate:
		amount = base * value / 100
	case domain.DiscountFixed:
		amount = value
	}

	if maxAmount != nil && amount > *maxAmount {
		amount = *maxAmount
	}
	return max(0, amount)
}
