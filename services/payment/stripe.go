package payment

import (
	"context"
	"fmt"
	"strings"

	"github.com/stripe/stripe-go/v76"
	checkoutsession "github.com/stripe/stripe-go/v76/checkout/session"
	"github.com/stripe/stripe-go/v76/refund"
	"go.uber.org/zap"

	"residora/utils"
)

// StripeHandler collects payments through Stripe Checkout. When the request
// names a connected payout account the platform fee is withheld via
// application_fee_amount and the remainder transferred to the provider.
type StripeHandler struct {
	FeePercent float64
}

func NewStripeHandler(feePercent float64) *StripeHandler {
	return &StripeHandler{FeePercent: feePercent}
}

func (h *StripeHandler) CreateCheckoutSession(_ context.Context, req CheckoutRequest) (*CheckoutSession, error) {
	logger := utils.GetLogger()

	if len(req.Items) == 0 {
		return nil, fmt.Errorf("checkout requires at least one item")
	}
	currency := strings.ToLower(req.Currency)
	if currency == "" {
		currency = "usd"
	}

	var totalCents int64
	lineItems := make([]*stripe.CheckoutSessionLineItemParams, 0, len(req.Items))
	for _, item := range req.Items {
		cents := ToCents(item.Amount)
		if cents <= 0 {
			return nil, fmt.Errorf("item %q has a non-positive amount", item.Name)
		}
		totalCents += cents
		lineItems = append(lineItems, &stripe.CheckoutSessionLineItemParams{
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency:   stripe.String(currency),
				UnitAmount: stripe.Int64(cents),
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
					Name: stripe.String(item.Name),
				},
			},
			Quantity: stripe.Int64(1),
		})
	}

	feeCents, _ := SplitAmount(totalCents, h.FeePercent)

	params := &stripe.CheckoutSessionParams{
		Mode:              stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL:        stripe.String(req.SuccessURL),
		CancelURL:         stripe.String(req.CancelURL),
		ClientReferenceID: stripe.String(req.ReferenceID),
		LineItems:         lineItems,
		Metadata: map[string]string{
			"reference_id": req.ReferenceID,
		},
	}
	if req.CustomerEmail != "" {
		params.CustomerEmail = stripe.String(req.CustomerEmail)
	}
	if req.PayoutAccountID != "" {
		params.PaymentIntentData = &stripe.CheckoutSessionPaymentIntentDataParams{
			ApplicationFeeAmount: stripe.Int64(feeCents),
			TransferData: &stripe.CheckoutSessionPaymentIntentDataTransferDataParams{
				Destination: stripe.String(req.PayoutAccountID),
			},
		}
	}

	sess, err := checkoutsession.New(params)
	if err != nil {
		logger.Error("stripe checkout session create failed",
			zap.String("referenceID", req.ReferenceID), zap.Error(err))
		return nil, fmt.Errorf("failed to create checkout session: %w", err)
	}

	return &CheckoutSession{
		ID:          sess.ID,
		URL:         sess.URL,
		TotalAmount: float64(totalCents) / 100,
		PlatformFee: float64(feeCents) / 100,
	}, nil
}

func (h *StripeHandler) Refund(_ context.Context, paymentIntentID string) error {
	logger := utils.GetLogger()

	if paymentIntentID == "" {
		return fmt.Errorf("%w: no payment intent to refund", ErrRefundFailed)
	}
	if _, err := refund.New(&stripe.RefundParams{
		PaymentIntent: stripe.String(paymentIntentID),
	}); err != nil {
		logger.Error("stripe refund failed",
			zap.String("paymentIntentID", paymentIntentID), zap.Error(err))
		return fmt.Errorf("%w: %v", ErrRefundFailed, err)
	}
	return nil
}

var _ Handler = (*StripeHandler)(nil)
