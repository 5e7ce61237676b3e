package http

import (
	"encoding/json"
	"net/http"

	"github.com/aussiebroadwan/storefront/internal/storefront/service"
	"github.com/aussiebroadwan/storefront/pkg/httpx"
)

// maxCheckoutBody bounds the cart snapshot a client may post.
const maxCheckoutBody = 1 << 20

// CheckoutHandler handles the checkout endpoints.
type CheckoutHandler struct {
	CheckoutService *service.CheckoutService
}

// HandleProceed handles POST /v1/checkout/payment
//
//	@Summary		Proceed to payment
//	@Description	Creates the order, applies coupon and discount policies, records the pending payment and returns the payment widget parameters.
//	@Description	A new checkout replaces any earlier pending payment.
//	@Tags			Checkout
//	@Accept			json
//	@Produce		json
//	@Param			request	body		service.CheckoutRequest	true	"Cart snapshot"
//	@Success		200		{object}	service.Checkout		"widget parameters and discount breakdown"
//	@Failure		400		{object}	ErrorResponse			"error, error_description"
//	@Failure		401		{object}	ErrorResponse			"error, error_description"
//	@Failure		500		{object}	ErrorResponse			"error, error_description"
//	@Router			/v1/checkout/payment [post].
func (h *CheckoutHandler) HandleProceed(w http.ResponseWriter, r *http.Request) {
	var req service.CheckoutRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxCheckoutBody)).Decode(&req); err != nil {
		httpx.WriteJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:            "invalid_request",
			ErrorDescription: "Invalid JSON in request body",
		})
		return
	}

	checkout, err := h.CheckoutService.ProceedToPayment(r.Context(), req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, checkout)
}

// HandleGetPending handles GET /v1/checkout/pending
//
//	@Summary		Show pending payment
//	@Tags			Checkout
//	@Produce		json
//	@Success		200	{object}	PendingResponse	"the recorded checkout attempt"
//	@Failure		409	{object}	ErrorResponse	"no_pending_payment"
//	@Router			/v1/checkout/pending [get].
func (h *CheckoutHandler) HandleGetPending(w http.ResponseWriter, r *http.Request) {
	p, err := h.CheckoutService.Pending(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, PendingResponse{
		AttemptID:   p.AttemptID.String(),
		OrderNumber: p.OrderNumber,
		Amount:      p.Amount,
		Origin:      p.Origin,
		Lines:       p.Lines,
		CreatedAt:   p.CreatedAt,
	})
}

// HandleAbandon handles DELETE /v1/checkout/pending
//
//	@Summary		Abandon pending payment
//	@Description	Drops the recorded checkout attempt. Succeeds when nothing is pending.
//	@Tags			Checkout
//	@Success		204
//	@Failure		500	{object}	ErrorResponse	"error, error_description"
//	@Router			/v1/checkout/pending [delete].
func (h *CheckoutHandler) HandleAbandon(w http.ResponseWriter, r *http.Request) {
	if err := h.CheckoutService.Abandon(r.Context()); err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.NoCache(w)
	w.WriteHeader(http.StatusNoContent)
}
