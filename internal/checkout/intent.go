package checkout

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/roibeauty/storefront/internal/metrics"
	"github.com/roibeauty/storefront/internal/stripe"
	"github.com/roibeauty/storefront/storage/db"
)

// MaxMetadataValue is Stripe's limit on a single metadata value.
const MaxMetadataValue = 500

type CreateIntentInput struct {
	AmountEUR       decimal.Decimal
	Cart            []CartItem
	UserID          string
	Email           string
	ShippingAddress ShippingAddress
}

// Intent is what the browser needs to confirm the payment.
type Intent struct {
	ClientSecret    string
	PaymentIntentID string
	OrderID         string
	OrderNumber     string
	PublishableKey  string
	AmountCents     int64
	// Persisted is false when the local pending order could not be stored.
	Persisted bool
}

// AmountToCents validates an EUR amount and converts it to cents.
func AmountToCents(amount decimal.Decimal) (int64, error) {
	if !amount.IsPositive() {
		return 0, invalid("Valid amount is required")
	}
	cents := amount.Shift(2).Round(0).IntPart()
	if cents < MinAmountCents {
		return 0, invalid("Invalid amount. Minimum is 0.50 EUR")
	}
	return cents, nil
}

// CreateIntent creates a Stripe payment intent for the cart and stores a
// pending order keyed by a fresh order id.
func (s *Service) CreateIntent(ctx context.Context, in CreateIntentInput) (*Intent, error) {
	amountCents, err := AmountToCents(in.AmountEUR)
	if err == nil && len(in.Cart) == 0 {
		err = invalid("Cart cannot be empty")
	}
	if err != nil {
		metrics.RecordIntentCreated("invalid")
		return nil, err
	}

	userID := strings.TrimSpace(in.UserID)
	if userID == "" {
		userID = GuestUserID
	}
	emailAddr := strings.ToLower(strings.TrimSpace(in.Email))

	now := s.now()
	orderID := NewOrderID(now)
	orderNumber := NewOrderNumber(now)

	itemsJSON, err := json.Marshal(in.Cart)
	if err != nil {
		return nil, fmt.Errorf("failed to encode cart: %w", err)
	}
	shippingJSON, err := json.Marshal(in.ShippingAddress)
	if err != nil {
		return nil, fmt.Errorf("failed to encode shipping address: %w", err)
	}

	pi, err := s.intents.CreatePaymentIntent(ctx, stripe.IntentParams{
		AmountCents: amountCents,
		Currency:    s.currency,
		Description: fmt.Sprintf("Order %s - %d items", orderID, len(in.Cart)),
		Metadata:    intentMetadata(orderID, orderNumber, userID, emailAddr, len(in.Cart), string(itemsJSON), string(shippingJSON)),
	})
	if err != nil {
		metrics.RecordIntentCreated("processor_error")
		return nil, fmt.Errorf("failed to create payment intent: %w", err)
	}

	slog.Info("payment intent created", "payment_intent_id", pi.ID, "order_id", orderID, "amount_cents", amountCents)

	orderEmail := emailAddr
	if orderEmail == "" {
		orderEmail = PlaceholderEmail
	}

	persisted := true
	err = s.queries.CreateOrder(ctx, db.CreateOrderParams{
		ID:              uuid.NewString(),
		OrderID:         orderID,
		OrderNumber:     orderNumber,
		UserID:          userID,
		Email:           orderEmail,
		Items:           string(itemsJSON),
		ShippingAddress: string(shippingJSON),
		TotalCents:      amountCents,
		Currency:        s.currency,
		Status:          StatusPending,
		PaymentMethod:   "stripe",
		PaymentStatus:   PaymentPending,
		StripePaymentID: sql.NullString{String: pi.ID, Valid: true},
	})
	if err != nil {
		// The intent exists; Confirm rebuilds the order from metadata.
		persisted = false
		slog.Error("failed to save pending order", "error", err, "order_id", orderID, "payment_intent_id", pi.ID)
	}

	metrics.RecordIntentCreated("created")
	return &Intent{
		ClientSecret:    pi.ClientSecret,
		PaymentIntentID: pi.ID,
		OrderID:         orderID,
		OrderNumber:     orderNumber,
		PublishableKey:  s.publishableKey,
		AmountCents:     amountCents,
		Persisted:       persisted,
	}, nil
}

func intentMetadata(orderID, orderNumber, userID, emailAddr string, itemsCount int, items, shipping string) map[string]string {
	if emailAddr == "" {
		emailAddr = GuestUserID
	}
	md := map[string]string{
		"orderId":     orderID,
		"orderNumber": orderNumber,
		"userId":      userID,
		"email":       emailAddr,
		"itemsCount":  strconv.Itoa(itemsCount),
	}
	truncated := false
	for k, v := range map[string]string{"items": items, "shippingAddress": shipping} {
		if len(v) > MaxMetadataValue {
			truncated = true
			continue
		}
		md[k] = v
	}
	if truncated {
		md["itemsTruncated"] = "true"
	}
	return md
}
