package domain

// LineRef identifies a cart line by product and variant. VariantID is empty
// for products without variants.
type LineRef struct {
	ProductID string `json:"productId"`
	VariantID string `json:"variantId,omitempty"`
}

// CartLine is one line of the cart snapshot a discount is computed against.
// Amounts are in the smallest currency unit.
type CartLine struct {
	ProductID string `json:"productId"`
	Name      string `json:"name,omitempty"`
	VariantID string `json:"variantId,omitempty"`
	UnitPrice int64  `json:"unitPrice"`
	Quantity  int64  `json:"quantity"`
}

// Subtotal is unitPrice * quantity.
func (l CartLine) Subtotal() int64 {
	return l.UnitPrice * l.Quantity
}

// Ref returns the line's reference.
func (l CartLine) Ref() LineRef {
	return LineRef{ProductID: l.ProductID, VariantID: l.VariantID}
}

// Origin records where a checkout started. Only cart checkouts remove lines
// from the cart after payment.
type Origin string

const (
	OriginCart   Origin = "cart"
	OriginDirect Origin = "direct"
)

func (o Origin) Valid() bool {
	return o == OriginCart || o == OriginDirect
}
