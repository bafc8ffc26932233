package checkout

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	stripego "github.com/stripe/stripe-go/v80"

	"github.com/roibeauty/storefront/internal/email"
	"github.com/roibeauty/storefront/internal/metrics"
	"github.com/roibeauty/storefront/internal/stripe"
	"github.com/roibeauty/storefront/storage"
	"github.com/roibeauty/storefront/storage/db"
)

// PlaceholderEmail is stored when a recovered order has no customer email.
const PlaceholderEmail = "customer@example.com"

// Confirmation describes the local order after a successful payment.
type Confirmation struct {
	OrderID     string
	OrderNumber string
	PaymentID   string
	AmountCents int64
	Status      string
	ReceiptURL  string
	// Recovered is true when the order was rebuilt from intent metadata.
	Recovered bool
	// FirstPaid is true when this call moved the order to paid.
	FirstPaid bool
}

// Confirm verifies the intent with Stripe and marks the matching local order
// paid, recovering it from the intent metadata when it does not exist.
// Repeated calls for a paid order return the same result with no side
// effects.
func (s *Service) Confirm(ctx context.Context, paymentIntentID, orderID string, source Source) (*Confirmation, error) {
	paymentIntentID = strings.TrimSpace(paymentIntentID)
	if paymentIntentID == "" {
		return nil, invalid("Payment intent ID is required")
	}

	pi, err := s.intents.GetPaymentIntent(ctx, paymentIntentID)
	if err != nil {
		metrics.RecordConfirmation("error", string(source))
		return nil, err
	}

	if pi.Status != stripego.PaymentIntentStatusSucceeded {
		metrics.RecordConfirmation("not_completed", string(source))
		return nil, &NotCompletedError{Status: string(pi.Status)}
	}

	conf, err := s.settle(ctx, pi, strings.TrimSpace(orderID))
	if err != nil {
		metrics.RecordConfirmation("error", string(source))
		return nil, err
	}

	switch {
	case conf.Recovered:
		metrics.RecordConfirmation("recovered", string(source))
	case conf.FirstPaid:
		metrics.RecordConfirmation("paid", string(source))
	default:
		metrics.RecordConfirmation("already_paid", string(source))
	}

	slog.Info("payment confirmed",
		"order_id", conf.OrderID,
		"payment_intent_id", pi.ID,
		"source", source,
		"first_paid", conf.FirstPaid,
		"recovered", conf.Recovered)

	if conf.FirstPaid {
		order, err := s.queries.GetOrderByOrderID(ctx, conf.OrderID)
		if err != nil {
			slog.Error("failed to load order for notifications", "error", err, "order_id", conf.OrderID)
		} else {
			s.notifyPaid(ctx, order)
		}
	}
	return conf, nil
}

// settle records the payment. The paid transition is a conditional write
// so exactly one caller observes FirstPaid for a given order.
func (s *Service) settle(ctx context.Context, pi *stripego.PaymentIntent, orderID string) (*Confirmation, error) {
	intentID := sql.NullString{String: pi.ID, Valid: true}
	receipt := stripe.ReceiptURL(pi)
	paidAt := sql.NullTime{Time: s.now().UTC(), Valid: true}

	existing, err := s.queries.FindOrderForPayment(ctx, db.FindOrderForPaymentParams{
		OrderID:         orderID,
		StripePaymentID: intentID,
	})
	found := err == nil
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("failed to look up order: %w", err)
	}

	if found {
		if err := checkOwnership(existing, pi); err != nil {
			return nil, err
		}
	}

	var rec db.InsertRecoveredOrderParams
	if !found {
		rec = s.recoveredOrder(pi, orderID, receipt, paidAt)
	}

	conf := &Confirmation{PaymentID: pi.ID}
	key := existing.OrderID

	err = storage.InTx(ctx, s.db, func(q *db.Queries) error {
		items := existing.Items
		orderRowID := existing.ID

		if !found {
			n, err := q.InsertRecoveredOrder(ctx, rec)
			if err != nil {
				return fmt.Errorf("failed to store recovered order: %w", err)
			}
			if n == 1 {
				conf.Recovered = true
				conf.FirstPaid = true
				key = rec.OrderID
				return decrementStock(ctx, q, rec.Items)
			}
			// Lost a race with another confirmation; settle the row it wrote.
			winner, err := q.FindOrderForPayment(ctx, db.FindOrderForPaymentParams{
				OrderID:         rec.OrderID,
				StripePaymentID: intentID,
			})
			if err != nil {
				return fmt.Errorf("failed to load concurrently stored order: %w", err)
			}
			if err := checkOwnership(winner, pi); err != nil {
				return err
			}
			key, items, orderRowID = winner.OrderID, winner.Items, winner.ID
		}

		n, err := q.MarkOrderPaid(ctx, db.MarkOrderPaidParams{
			PaidAt:          paidAt,
			ReceiptUrl:      sql.NullString{String: receipt, Valid: receipt != ""},
			StripePaymentID: intentID,
			ID:              orderRowID,
		})
		if err != nil {
			return fmt.Errorf("failed to mark order paid: %w", err)
		}
		if n == 0 {
			return nil
		}
		conf.FirstPaid = true
		return decrementStock(ctx, q, items)
	})
	if err != nil {
		return nil, err
	}

	order, err := s.queries.GetOrderByOrderID(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("failed to reload order %s: %w", key, err)
	}
	conf.OrderID = order.OrderID
	conf.OrderNumber = order.OrderNumber
	conf.AmountCents = order.TotalCents
	conf.Status = order.Status
	conf.ReceiptURL = order.ReceiptUrl.String
	return conf, nil
}

// checkOwnership rejects settling an order with an intent that was not
// created for it.
func checkOwnership(order db.Order, pi *stripego.PaymentIntent) error {
	reason := ""
	switch {
	case order.StripePaymentID.Valid && order.StripePaymentID.String != pi.ID:
		reason = "order is bound to another payment intent"
	case pi.Metadata["orderId"] != "" && pi.Metadata["orderId"] != order.OrderID:
		reason = "intent metadata names another order"
	case order.TotalCents != pi.Amount:
		reason = "amount mismatch"
	}
	if reason == "" {
		return nil
	}
	slog.Warn("payment intent does not match order",
		"reason", reason,
		"order_id", order.OrderID,
		"payment_intent_id", pi.ID,
		"order_cents", order.TotalCents,
		"intent_cents", pi.Amount)
	return ErrPaymentMismatch
}

func (s *Service) recoveredOrder(pi *stripego.PaymentIntent, requestOrderID, receipt string, paidAt sql.NullTime) db.InsertRecoveredOrderParams {
	md := pi.Metadata
	now := s.now()

	orderEmail := strings.ToLower(strings.TrimSpace(md["email"]))
	if orderEmail == "" || orderEmail == GuestUserID {
		orderEmail = PlaceholderEmail
	}
	currency := string(pi.Currency)
	if currency == "" {
		currency = s.currency
	}

	slog.Warn("order not found locally, recovering from payment intent metadata",
		"payment_intent_id", pi.ID,
		"order_id", firstNonEmpty(md["orderId"], requestOrderID))

	return db.InsertRecoveredOrderParams{
		ID:              uuid.NewString(),
		OrderID:         firstNonEmpty(md["orderId"], requestOrderID, fmt.Sprintf("RB-%d", now.UnixMilli())),
		OrderNumber:     firstNonEmpty(md["orderNumber"], NewOrderNumber(now)),
		UserID:          firstNonEmpty(md["userId"], GuestUserID),
		Email:           orderEmail,
		Items:           normalizeJSON(md["items"], &[]CartItem{}, "[]"),
		ShippingAddress: normalizeJSON(md["shippingAddress"], &ShippingAddress{}, "{}"),
		TotalCents:      pi.Amount,
		Currency:        currency,
		StripePaymentID: sql.NullString{String: pi.ID, Valid: true},
		ReceiptUrl:      sql.NullString{String: receipt, Valid: receipt != ""},
		PaidAt:          paidAt,
	}
}

func decrementStock(ctx context.Context, q *db.Queries, itemsJSON string) error {
	for _, it := range ParseItems(itemsJSON) {
		if it.ID <= 0 || it.Quantity <= 0 {
			continue
		}
		if err := q.DecrementProductStock(ctx, db.DecrementProductStockParams{
			Quantity: it.Quantity,
			ID:       it.ID,
		}); err != nil {
			return fmt.Errorf("failed to decrement stock for product %d: %w", it.ID, err)
		}
	}
	return nil
}

// MarkFailed records a processor failure for the intent's pending order. It
// returns whether an order changed.
func (s *Service) MarkFailed(ctx context.Context, paymentIntentID string) (bool, error) {
	n, err := s.queries.MarkOrderFailed(ctx, sql.NullString{String: paymentIntentID, Valid: true})
	if err != nil {
		return false, fmt.Errorf("failed to mark order failed: %w", err)
	}
	if n > 0 {
		slog.Warn("order payment failed", "payment_intent_id", paymentIntentID)
	}
	return n > 0, nil
}

// RecordFailure marks the intent's pending order failed when Stripe shows a
// failed attempt or a cancellation. Failure reports Stripe does not back
// change nothing.
func (s *Service) RecordFailure(ctx context.Context, paymentIntentID string) (bool, error) {
	pi, err := s.intents.GetPaymentIntent(ctx, paymentIntentID)
	if err != nil {
		return false, err
	}

	switch {
	case pi.Status == stripego.PaymentIntentStatusCanceled:
	case pi.Status == stripego.PaymentIntentStatusRequiresPaymentMethod && pi.LastPaymentError != nil:
	default:
		slog.Warn("ignoring payment failure not reported by Stripe",
			"payment_intent_id", pi.ID,
			"status", pi.Status)
		return false, nil
	}
	return s.MarkFailed(ctx, pi.ID)
}

// OrderEmailData maps a stored order to the email template data.
func OrderEmailData(order db.Order, customerName string) *email.OrderData {
	addr := ParseShippingAddress(order.ShippingAddress)
	if customerName == "" {
		customerName = addr.FullName
	}
	if customerName == "" {
		customerName = "Customer"
	}
	date := order.CreatedAt
	if order.PaidAt.Valid {
		date = order.PaidAt.Time
	}
	return &email.OrderData{
		OrderID:         order.OrderID,
		OrderNumber:     order.OrderNumber,
		CustomerName:    customerName,
		CustomerEmail:   order.Email,
		OrderDate:       date.Format("January 2, 2006 at 3:04 PM"),
		Items:           emailItems(ParseItems(order.Items)),
		TotalCents:      order.TotalCents,
		ShippingAddress: emailAddress(addr),
		PaymentID:       order.StripePaymentID.String,
		ReceiptURL:      order.ReceiptUrl.String,
		Status:          order.Status,
	}
}

func (s *Service) notifyPaid(ctx context.Context, order db.Order) {
	if s.mailer == nil {
		return
	}
	data := OrderEmailData(order, "")

	if order.Email != PlaceholderEmail {
		if err := s.mailer.SendOrderConfirmation(ctx, data); err != nil {
			slog.Error("failed to send customer confirmation email", "error", err, "order_id", order.OrderID)
		} else {
			slog.Info("customer confirmation email sent", "order_id", order.OrderID, "email", order.Email)
		}
	}

	if err := s.mailer.SendAdminOrderNotification(ctx, data); err != nil {
		slog.Error("failed to send admin notification email", "error", err, "order_id", order.OrderID)
	} else {
		slog.Info("admin notification email sent", "order_id", order.OrderID)
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
