package app

import "context"

// PaymentConfirmation is the result of a successful confirmation lookup.
// Reference is the stable payment reference the ticket id derives from.
type PaymentConfirmation struct {
	Reference string
	Status    string
}

// PaymentVerifier checks that a session reference corresponds to a
// completed payment. Confirm returns domain.ErrPaymentNotCompleted for
// any non-paid status; every other error is an infrastructure fault and
// safe to retry (no ticket gets created on failure).
type PaymentVerifier interface {
	Confirm(ctx context.Context, sessionRef string) (PaymentConfirmation, error)
}
