package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/aussiebroadwan/storefront/internal/storefront/domain"
	"github.com/aussiebroadwan/storefront/internal/storefront/store"
	"github.com/aussiebroadwan/storefront/pkg/authsdk"
	"github.com/aussiebroadwan/storefront/pkg/idx"
	"github.com/aussiebroadwan/storefront/pkg/slogx"
)

const (
	codeMissingPaymentKey  = "missing_payment_key"
	codeConfirmationFailed = "confirmation_failed"
	codeUnknownFailure     = "UNKNOWN"
)

// ReconcileService settles the processor's redirect against the pending
// record. Every outcome except ErrNoPendingPayment clears the record, so
// a payment is confirmed at most once per attempt.
type ReconcileService struct {
	Store    store.PendingPayments
	Payments Payments
	Cart     Cart
}

// HandleSuccess validates a success redirect, confirms the payment and
// cleans up. The returned receipt carries the server's view of the order.
func (s *ReconcileService) HandleSuccess(ctx context.Context, ret domain.SuccessReturn) (domain.Receipt, error) {
	pending, err := s.load(ctx)
	if err != nil {
		return domain.Receipt{}, err
	}
	ctx = slogx.With(ctx, "attempt_id", pending.AttemptID, "order_number", pending.OrderNumber)
	l := slogx.FromContext(ctx)

	if ret.OrderNumber != pending.OrderNumber {
		s.clear(ctx, pending.AttemptID)
		l.Warn("payment return order mismatch", "returned_order_number", ret.OrderNumber)
		return domain.Receipt{}, &OrderMismatchError{Expected: pending.OrderNumber, Got: ret.OrderNumber}
	}

	// Compared as text: "+95000" or "095000" is not what was recorded.
	if ret.Amount != strconv.FormatInt(pending.Amount, 10) {
		s.clear(ctx, pending.AttemptID)
		l.Warn("payment return amount mismatch", "expected", pending.Amount, "returned_amount", ret.Amount)
		return domain.Receipt{}, &AmountMismatchError{OrderNumber: pending.OrderNumber, Expected: pending.Amount, Got: ret.Amount}
	}

	if strings.TrimSpace(ret.PaymentKey) == "" {
		s.clear(ctx, pending.AttemptID)
		return domain.Receipt{}, &ConfirmationFailure{
			OrderNumber: pending.OrderNumber,
			Code:        codeMissingPaymentKey,
			Message:     "payment return has no payment key",
		}
	}

	conf, err := s.Payments.Confirm(ctx, domain.ConfirmRequest{
		PaymentReference: ret.PaymentKey,
		OrderNumber:      pending.OrderNumber,
		Amount:           pending.Amount,
	}, pending.AttemptID.String())
	if err != nil {
		s.clear(ctx, pending.AttemptID)
		l.Error("payment confirmation failed", "error", err)
		return domain.Receipt{}, confirmationFailure(pending.OrderNumber, err)
	}

	if conf.Status.IsFailure() {
		s.clear(ctx, pending.AttemptID)
		l.Warn("payment confirmation rejected", "status", conf.Status)
		return domain.Receipt{}, &ConfirmationFailure{
			OrderNumber: pending.OrderNumber,
			Code:        conf.Status.String(),
			Message:     "payment was not completed",
		}
	}

	receipt := domain.Receipt{
		PaymentID:   conf.PaymentID,
		OrderNumber: conf.OrderNumber,
		Amount:      conf.Amount,
		Status:      conf.Status,
	}
	if receipt.OrderNumber == "" {
		receipt.OrderNumber = pending.OrderNumber
	}

	// The payment has gone through at this point; a cart failure only
	// leaves stale lines behind.
	if pending.Origin == domain.OriginCart && len(pending.Lines) > 0 {
		if err := s.Cart.RemoveLines(ctx, pending.Lines); err != nil {
			l.Warn("failed to remove purchased lines from cart", "error", err)
		} else {
			receipt.CartUpdated = true
		}
	}

	s.clear(ctx, pending.AttemptID)
	l.Info("payment reconciled", "payment_id", receipt.PaymentID, "amount", receipt.Amount, "status", receipt.Status)
	return receipt, nil
}

// HandleFailure records a failure redirect and always returns a
// *ProcessorFailure. The pending record is left alone when the redirect
// names a different order, since it belongs to an older attempt.
func (s *ReconcileService) HandleFailure(ctx context.Context, ret domain.FailureReturn) error {
	l := slogx.FromContext(ctx)

	failure := &ProcessorFailure{
		OrderNumber: ret.OrderNumber,
		Code:        ret.Code,
		Message:     ret.Message,
	}
	if failure.Code == "" {
		failure.Code = codeUnknownFailure
	}

	pending, err := s.load(ctx)
	switch {
	case errors.Is(err, ErrNoPendingPayment):
	case err != nil:
		l.Error("failed to load pending payment", "error", err)
	case ret.OrderNumber == "" || ret.OrderNumber == pending.OrderNumber:
		failure.OrderNumber = pending.OrderNumber
		s.clear(ctx, pending.AttemptID)
	default:
		l.Warn("ignoring failure return for another order",
			"order_number", pending.OrderNumber,
			"returned_order_number", ret.OrderNumber,
		)
	}

	l.Info("payment failed at processor", "order_number", failure.OrderNumber, "code", failure.Code)
	return failure
}

func (s *ReconcileService) load(ctx context.Context) (domain.PendingPayment, error) {
	pending, err := s.Store.Load(ctx)
	if errors.Is(err, store.ErrNotFound) {
		return domain.PendingPayment{}, ErrNoPendingPayment
	}
	if err != nil {
		return domain.PendingPayment{}, fmt.Errorf("load pending payment: %w", err)
	}
	return pending, nil
}

// clear removes the record for attemptID only, so a checkout started while
// this redirect was handled survives. Failures are logged only: the outcome
// the caller reports does not change, and a leftover record is overwritten
// by the next attempt.
func (s *ReconcileService) clear(ctx context.Context, attemptID idx.ID) {
	cleared, err := s.Store.ClearAttempt(ctx, attemptID)
	if err != nil {
		slogx.FromContext(ctx).Error("failed to clear pending payment", "error", err)
		return
	}
	if !cleared {
		slogx.FromContext(ctx).Info("pending payment replaced by a newer attempt, left in place")
	}
}

// confirmationFailure keeps the server's code when it gave one. Transport
// errors and session errors collapse into the same type and stay
// reachable through errors.As.
func confirmationFailure(orderNumber string, err error) *ConfirmationFailure {
	failure := &ConfirmationFailure{OrderNumber: orderNumber, Code: codeConfirmationFailed, Err: err}

	var apiErr *authsdk.APIError
	if errors.As(err, &apiErr) {
		if apiErr.Code != "" {
			failure.Code = apiErr.Code
		}
		failure.Message = apiErr.Message
	}
	return failure
}
