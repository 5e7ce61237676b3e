package http

import (
	"errors"
	"net/http"

	"github.com/aussiebroadwan/storefront/internal/storefront/service"
	"github.com/aussiebroadwan/storefront/pkg/authsdk"
	"github.com/aussiebroadwan/storefront/pkg/httpx"
	"github.com/aussiebroadwan/storefront/pkg/slogx"
)

// writeServiceError maps the typed errors of the session and payment flows
// to a status and error body. Payment outcomes are matched first so a
// confirmation that failed on an expired session still reports its order
// number. Anything unrecognised is a 500.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		refreshErr   *authsdk.TokenRefreshError
		expiredErr   *authsdk.SessionExpiredError
		orderErr     *service.OrderMismatchError
		amountErr    *service.AmountMismatchError
		processorErr *service.ProcessorFailure
		confirmErr   *service.ConfirmationFailure
	)

	switch {
	case errors.Is(err, service.ErrInvalidCheckout):
		httpx.WriteJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:            "invalid_request",
			ErrorDescription: err.Error(),
		})
	case errors.Is(err, service.ErrNoPendingPayment):
		httpx.WriteJSON(w, http.StatusConflict, ErrorResponse{
			Error:            "no_pending_payment",
			ErrorDescription: "There is no payment waiting to be confirmed.",
		})
	case errors.As(err, &orderErr):
		httpx.WriteJSON(w, http.StatusConflict, ErrorResponse{
			Error:            "order_mismatch",
			ErrorDescription: "The payment does not match your order. Please contact support.",
			OrderNumber:      orderErr.Expected,
		})
	case errors.As(err, &amountErr):
		httpx.WriteJSON(w, http.StatusConflict, ErrorResponse{
			Error:            "amount_mismatch",
			ErrorDescription: "The paid amount does not match your order. Please contact support.",
			OrderNumber:      amountErr.OrderNumber,
		})
	case errors.As(err, &processorErr):
		httpx.WriteJSON(w, http.StatusPaymentRequired, ErrorResponse{
			Error:            "payment_failed",
			ErrorDescription: processorErr.Message,
			OrderNumber:      processorErr.OrderNumber,
			Code:             processorErr.Code,
		})
	case errors.As(err, &confirmErr):
		httpx.WriteJSON(w, http.StatusBadGateway, ErrorResponse{
			Error:            "payment_not_confirmed",
			ErrorDescription: "The payment could not be confirmed. Please contact support.",
			OrderNumber:      confirmErr.OrderNumber,
			Code:             confirmErr.Code,
		})
	case errors.Is(err, authsdk.ErrAuthRequired):
		httpx.WriteJSON(w, http.StatusUnauthorized, ErrorResponse{
			Error:            "auth_required",
			ErrorDescription: "Please log in to continue.",
		})
	case errors.As(err, &refreshErr), errors.As(err, &expiredErr):
		httpx.WriteJSON(w, http.StatusUnauthorized, ErrorResponse{
			Error:            "session_expired",
			ErrorDescription: "Your session has expired, please log in again.",
		})
	case errors.Is(err, authsdk.ErrTimeout):
		httpx.WriteJSON(w, http.StatusGatewayTimeout, ErrorResponse{
			Error:            "timeout",
			ErrorDescription: "The request timed out, please try again.",
		})
	default:
		slogx.FromContext(r.Context()).Error("request failed", "error", err)
		httpx.WriteJSON(w, http.StatusInternalServerError, ErrorResponse{
			Error:            "server_error",
			ErrorDescription: "Something went wrong, please try again.",
		})
	}
}
