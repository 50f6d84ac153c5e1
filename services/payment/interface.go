package payment

import (
	"context"
	"errors"
)

// ErrRefundFailed signals the upstream processor rejected or failed the refund.
// Callers must not release resources held by the payment until a refund succeeds.
var ErrRefundFailed = errors.New("refund failed")

// CheckoutItem is one purchasable line in a checkout session.
type CheckoutItem struct {
	Name   string
	Amount float64 // major currency units
}

// CheckoutRequest describes a payment to collect on behalf of a provider.
type CheckoutRequest struct {
	ReferenceID     string // booking or order ID, echoed back by the processor
	CustomerEmail   string
	Currency        string
	Items           []CheckoutItem
	PayoutAccountID string // provider's connected account; empty keeps funds on platform
	SuccessURL      string
	CancelURL       string
}

// CheckoutSession is the processor-side session the customer completes.
type CheckoutSession struct {
	ID          string
	URL         string
	TotalAmount float64
	PlatformFee float64
}

// Handler abstracts the payment processor so services and tests never touch
// the Stripe client directly.
type Handler interface {
	CreateCheckoutSession(ctx context.Context, req CheckoutRequest) (*CheckoutSession, error)
	Refund(ctx context.Context, paymentIntentID string) error
}
