package stripe

import (
	"context"
	"errors"
	"fmt"

	"github.com/stripe/stripe-go/v80"
	"github.com/stripe/stripe-go/v80/paymentintent"
)

// IntentParams describes a payment intent to create.
type IntentParams struct {
	AmountCents int64
	Currency    string
	Description string
	Metadata    map[string]string
}

type StripeService struct {
	apiKey string
}

// NewStripeService configures the package-level Stripe key used by the SDK.
func NewStripeService(secretKey string) *StripeService {
	stripe.Key = secretKey
	return &StripeService{
		apiKey: secretKey,
	}
}

func (s *StripeService) Configured() bool {
	return s.apiKey != ""
}

func (s *StripeService) CreatePaymentIntent(ctx context.Context, in IntentParams) (*stripe.PaymentIntent, error) {
	if !s.Configured() {
		return nil, errors.New("stripe secret key is not configured")
	}

	params := &stripe.PaymentIntentParams{
		Amount:      stripe.Int64(in.AmountCents),
		Currency:    stripe.String(in.Currency),
		Description: stripe.String(in.Description),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	params.Context = ctx
	for k, v := range in.Metadata {
		params.AddMetadata(k, v)
	}

	return paymentintent.New(params)
}

// GetPaymentIntent retrieves an intent with its latest charge expanded so
// the receipt URL is available.
func (s *StripeService) GetPaymentIntent(ctx context.Context, id string) (*stripe.PaymentIntent, error) {
	if !s.Configured() {
		return nil, errors.New("stripe secret key is not configured")
	}

	params := &stripe.PaymentIntentParams{}
	params.Context = ctx
	params.AddExpand("latest_charge")

	pi, err := paymentintent.Get(id, params)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve payment intent %s: %w", id, err)
	}
	return pi, nil
}

// IsCardError reports whether err is a card decline from Stripe.
func IsCardError(err error) bool {
	var stripeErr *stripe.Error
	return errors.As(err, &stripeErr) && stripeErr.Type == stripe.ErrorTypeCard
}

// ReceiptURL returns the receipt link of the intent's latest charge, if any.
func ReceiptURL(pi *stripe.PaymentIntent) string {
	if pi == nil || pi.LatestCharge == nil {
		return ""
	}
	return pi.LatestCharge.ReceiptURL
}
