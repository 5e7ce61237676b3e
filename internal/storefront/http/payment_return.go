package http

import (
	"net/http"

	"github.com/aussiebroadwan/storefront/internal/storefront/domain"
	"github.com/aussiebroadwan/storefront/internal/storefront/service"
	"github.com/aussiebroadwan/storefront/pkg/httpx"
)

// PaymentReturnHandler receives the browser back from the payment processor.
type PaymentReturnHandler struct {
	ReconcileService *service.ReconcileService
}

// HandleSuccess handles GET /v1/checkout/return/success
//
//	@Summary		Payment success return
//	@Description	Validates the processor's redirect against the pending payment, confirms it server-side and removes purchased cart lines.
//	@Tags			Checkout
//	@Produce		json
//	@Param			paymentKey	query		string			true	"Processor payment reference"
//	@Param			orderId		query		string			true	"Order number"
//	@Param			amount		query		string			true	"Paid amount"
//	@Success		200			{object}	domain.Receipt	"server-confirmed order"
//	@Failure		401			{object}	ErrorResponse	"error, error_description"
//	@Failure		409			{object}	ErrorResponse	"no_pending_payment, order_mismatch or amount_mismatch"
//	@Failure		502			{object}	ErrorResponse	"payment_not_confirmed"
//	@Router			/v1/checkout/return/success [get].
func (h *PaymentReturnHandler) HandleSuccess(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	receipt, err := h.ReconcileService.HandleSuccess(r.Context(), domain.SuccessReturn{
		PaymentKey:  q.Get("paymentKey"),
		OrderNumber: q.Get("orderId"),
		Amount:      q.Get("amount"),
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, receipt)
}

// HandleFailure handles GET /v1/checkout/return/fail
//
//	@Summary		Payment failure return
//	@Description	Records the processor's failure and clears the pending payment so a new attempt starts clean.
//	@Tags			Checkout
//	@Produce		json
//	@Param			code	query		string			false	"Processor error code"
//	@Param			message	query		string			false	"Processor error message"
//	@Param			orderId	query		string			false	"Order number"
//	@Failure		402		{object}	ErrorResponse	"payment_failed with the processor code"
//	@Router			/v1/checkout/return/fail [get].
func (h *PaymentReturnHandler) HandleFailure(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	err := h.ReconcileService.HandleFailure(r.Context(), domain.FailureReturn{
		Code:        q.Get("code"),
		Message:     q.Get("message"),
		OrderNumber: q.Get("orderId"),
	})
	writeServiceError(w, r, err)
}
