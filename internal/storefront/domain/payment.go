package domain

import (
	"time"

	"github.com/aussiebroadwan/storefront/pkg/idx"
)

// PendingPayment is written right before the browser leaves for the payment
// processor and read back when it returns. There is at most one.
type PendingPayment struct {
	AttemptID   idx.ID    `json:"attemptId"`
	OrderID     string    `json:"orderId"`
	OrderNumber string    `json:"orderNumber"`
	Amount      int64     `json:"amount"`
	Lines       []LineRef `json:"lines"`
	Origin      Origin    `json:"origin"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Stale reports whether the record is older than ttl. A zero ttl never
// expires.
func (p PendingPayment) Stale(now time.Time, ttl time.Duration) bool {
	if ttl <= 0 {
		return false
	}
	return !now.Before(p.CreatedAt.Add(ttl))
}

// WidgetParams are the inputs for the external payment widget.
type WidgetParams struct {
	AttemptID   idx.ID `json:"attemptId"`
	OrderNumber string `json:"orderNumber"`
	OrderName   string `json:"orderName"`
	Amount      int64  `json:"amount"`
	SuccessURL  string `json:"successUrl"`
	FailURL     string `json:"failUrl"`
}

// SuccessReturn holds the query parameters of the processor's success
// redirect. Amount is kept raw so a malformed value is reported as a mismatch
// rather than rejected before reconciliation.
type SuccessReturn struct {
	PaymentKey  string
	OrderNumber string
	Amount      string
}

// FailureReturn holds the query parameters of the processor's failure
// redirect.
type FailureReturn struct {
	Code        string
	Message     string
	OrderNumber string
}

// PaymentStatus is the status reported by the confirmation endpoint.
type PaymentStatus string

const (
	PaymentDone     PaymentStatus = "DONE"
	PaymentAborted  PaymentStatus = "ABORTED"
	PaymentCanceled PaymentStatus = "CANCELED"
	PaymentExpired  PaymentStatus = "EXPIRED"
	PaymentFailed   PaymentStatus = "FAILED"
)

// IsFailure reports whether the payment did not go through despite a
// successful redirect.
func (s PaymentStatus) IsFailure() bool {
	switch s {
	case PaymentAborted, PaymentCanceled, PaymentExpired, PaymentFailed:
		return true
	default:
		return false
	}
}

// String representation (for logging)
func (s PaymentStatus) String() string {
	return string(s)
}

// Confirmation is the server's answer to a payment confirmation and the
// source of truth for what was charged.
type Confirmation struct {
	PaymentID   string        `json:"paymentId"`
	OrderNumber string        `json:"orderNumber"`
	Amount      int64         `json:"amount"`
	Status      PaymentStatus `json:"status"`
}

// ConfirmRequest finalizes a payment server-side after a success redirect.
type ConfirmRequest struct {
	PaymentReference string `json:"paymentReference"`
	OrderNumber      string `json:"orderNumber"`
	Amount           int64  `json:"amount"`
}

// Receipt is reported to the shopper after reconciliation. Its values come
// from the server's confirmation, not the local pending record.
type Receipt struct {
	PaymentID   string        `json:"paymentId"`
	OrderNumber string        `json:"orderNumber"`
	Amount      int64         `json:"amount"`
	Status      PaymentStatus `json:"status"`
	CartUpdated bool          `json:"cartUpdated"`
}

// Order is what the orders collaborator returns when an order is created.
type Order struct {
	OrderID     string `json:"orderId"`
	OrderNumber string `json:"orderNumber"`
}

// OrderRequest is the order-creation payload.
type OrderRequest struct {
	Lines    []CartLine `json:"items"`
	CouponID string     `json:"couponId,omitempty"`
}
