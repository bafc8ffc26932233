// Package checkout owns the payment flow: a payment intent is created with
// the cart snapshot in its metadata, the browser confirms it with Stripe,
// and Confirm reconciles the local order against the processor, rebuilding
// it from metadata when the pending order was never stored.
package checkout

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	stripego "github.com/stripe/stripe-go/v80"

	"github.com/roibeauty/storefront/internal/email"
	"github.com/roibeauty/storefront/internal/stripe"
	"github.com/roibeauty/storefront/storage/db"
)

// Order and payment states.
const (
	StatusPending    = "pending"
	StatusPaid       = "paid"
	StatusProcessing = "processing"
	StatusShipped    = "shipped"
	StatusDelivered  = "delivered"
	StatusCancelled  = "cancelled"
	StatusFailed     = "failed"

	PaymentPending   = "pending"
	PaymentSucceeded = "succeeded"
	PaymentFailed    = "failed"

	GuestUserID = "guest"
)

// OrderStatuses lists every status an order may hold.
var OrderStatuses = []string{
	StatusPending, StatusPaid, StatusProcessing, StatusShipped,
	StatusDelivered, StatusCancelled, StatusFailed,
}

// ValidStatus reports whether s is a known order status.
func ValidStatus(s string) bool {
	for _, v := range OrderStatuses {
		if v == s {
			return true
		}
	}
	return false
}

// Source identifies who triggered a confirmation.
type Source string

const (
	SourceClient     Source = "client"
	SourceWebhook    Source = "webhook"
	SourceReconciler Source = "reconciler"
)

// MinAmountCents is the smallest charge Stripe accepts for EUR.
const MinAmountCents = 50

// ValidationError is returned for bad checkout input. Its message is safe to
// show to the client.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func invalid(msg string) error { return &ValidationError{Message: msg} }

// ErrPaymentMismatch is returned when a payment intent is confirmed against
// an order it was not created for.
var ErrPaymentMismatch = invalid("Payment does not match this order")

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

// ErrPaymentNotCompleted matches any NotCompletedError.
var ErrPaymentNotCompleted = errors.New("payment not completed")

// NotCompletedError carries the processor status of an intent that has not
// succeeded.
type NotCompletedError struct {
	Status string
}

func (e *NotCompletedError) Error() string {
	return fmt.Sprintf("Payment not completed. Status: %s", e.Status)
}

func (e *NotCompletedError) Is(target error) bool { return target == ErrPaymentNotCompleted }

// PaymentIntents is the subset of the Stripe client the checkout uses.
type PaymentIntents interface {
	CreatePaymentIntent(ctx context.Context, in stripe.IntentParams) (*stripego.PaymentIntent, error)
	GetPaymentIntent(ctx context.Context, id string) (*stripego.PaymentIntent, error)
}

// Mailer sends the emails that follow a successful payment.
type Mailer interface {
	SendOrderConfirmation(ctx context.Context, data *email.OrderData) error
	SendAdminOrderNotification(ctx context.Context, data *email.OrderData) error
}

type Options struct {
	Currency       string
	PublishableKey string
}

type Service struct {
	db      *sql.DB
	queries *db.Queries
	intents PaymentIntents
	mailer  Mailer

	currency       string
	publishableKey string
	now            func() time.Time
}

// NewService builds the checkout service. mailer may be nil.
func NewService(database *sql.DB, intents PaymentIntents, mailer Mailer, opts Options) *Service {
	currency := opts.Currency
	if currency == "" {
		currency = "eur"
	}
	return &Service{
		db:             database,
		queries:        db.New(database),
		intents:        intents,
		mailer:         mailer,
		currency:       currency,
		publishableKey: opts.PublishableKey,
		now:            time.Now,
	}
}

func (s *Service) Currency() string { return s.currency }

func (s *Service) PublishableKey() string { return s.publishableKey }
