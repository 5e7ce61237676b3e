package domain

// DiscountType is how a coupon or policy value is applied.
type DiscountType string

const (
	// DiscountRate takes Value percent of the base amount, rounded down.
	DiscountRate DiscountType = "RATE"
	// DiscountFixed takes Value off.
	DiscountFixed DiscountType = "FIXED"
)

// PolicyScope decides what amount a policy is computed against.
type PolicyScope string

const (
	ScopeOrder   PolicyScope = "ORDER"
	ScopeProduct PolicyScope = "PRODUCT"
)

// Coupon is a discount the shopper selects.
type Coupon struct {
	ID                string       `json:"id"`
	Name              string       `json:"name"`
	Type              DiscountType `json:"discountType"`
	Value             int64        `json:"discountValue"`
	MinOrderAmount    int64        `json:"minOrderAmount"`
	MaxDiscountAmount *int64       `json:"maxDiscountAmount,omitempty"`
}

// Policy is a server-defined discount applied automatically. Product-scoped
// policies target one product, optionally narrowed to a variant.
type Policy struct {
	ID                string       `json:"id"`
	Name              string       `json:"name"`
	Scope             PolicyScope  `json:"scope"`
	Type              DiscountType `json:"discountType"`
	Value             int64        `json:"discountValue"`
	MinOrderAmount    int64        `json:"minOrderAmount"`
	MaxDiscountAmount *int64       `json:"maxDiscountAmount,omitempty"`
	ProductID         string       `json:"productId,omitempty"`
	VariantID         string       `json:"variantId,omitempty"`
}

// Matches reports whether a product-scoped policy targets line.
func (p Policy) Matches(line CartLine) bool {
	if p.ProductID != line.ProductID {
		return false
	}
	return p.VariantID == "" || p.VariantID == line.VariantID
}

// PolicyDiscount is one policy's contribution.
type PolicyDiscount struct {
	PolicyID string `json:"policyId"`
	Amount   int64  `json:"amount"`
}

// DiscountResult is derived from a cart snapshot and promotion inputs and is
// never stored.
type DiscountResult struct {
	TotalPrice     int64            `json:"totalPrice"`
	CouponDiscount int64            `json:"couponDiscount"`
	PolicyDiscount int64            `json:"policyDiscount"`
	FinalAmount    int64            `json:"finalAmount"`
	Policies       []PolicyDiscount `json:"policies,omitempty"`
}
