package service

import (
	"errors"
	"fmt"
)

var (
	// ErrNoPendingPayment is returned when a processor redirect arrives
	// with nothing pending, e.g. a reload after reconciliation finished.
	ErrNoPendingPayment = errors.New("no pending payment")

	ErrInvalidCheckout = errors.New("invalid_checkout")
)

// OrderMismatchError means the redirect names a different order than the
// one recorded before leaving for the processor.
type OrderMismatchError struct {
	Expected string
	Got      string
}

func (e *OrderMismatchError) Error() string {
	return fmt.Sprintf("order mismatch: expected %q, got %q", e.Expected, e.Got)
}

// AmountMismatchError means the redirect reports a different amount than the
// one computed before leaving. Got is the raw query value.
type AmountMismatchError struct {
	OrderNumber string
	Expected    int64
	Got         string
}

func (e *AmountMismatchError) Error() string {
	return fmt.Sprintf("amount mismatch for order %s: expected %d, got %q", e.OrderNumber, e.Expected, e.Got)
}

// ProcessorFailure carries the processor's own code and message from a
// failure redirect.
type ProcessorFailure struct {
	OrderNumber string
	Code        string
	Message     string
}

func (e *ProcessorFailure) Error() string {
	return fmt.Sprintf("payment failed for order %s: %s: %s", e.OrderNumber, e.Code, e.Message)
}

// ConfirmationFailure means the server did not accept the confirmation of a
// nominally successful redirect. Err is set when the call itself failed.
type ConfirmationFailure struct {
	OrderNumber string
	Code        string
	Message     string
	Err         error
}

func (e *ConfirmationFailure) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("payment confirmation failed for order %s: %s: %v", e.OrderNumber, e.Code, e.Err)
	}
	return fmt.Sprintf("payment confirmation failed for order %s: %s: %s", e.OrderNumber, e.Code, e.Message)
}

func (e *ConfirmationFailure) Unwrap() error {
	return e.Err
}
