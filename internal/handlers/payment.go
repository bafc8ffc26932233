package handlers

import (
	"database/sql"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	stripego "github.com/stripe/stripe-go/v80"
	"github.com/stripe/stripe-go/v80/webhook"

	"github.com/roibeauty/storefront/internal/auth"
	"github.com/roibeauty/storefront/internal/checkout"
	"github.com/roibeauty/storefront/internal/stripe"
	"github.com/roibeauty/storefront/storage/db"
)

const maxWebhookBody = 65536

type PaymentHandler struct {
	checkout         *checkout.Service
	queries          *db.Queries
	webhookSecret    string
	stripeConfigured bool
}

func NewPaymentHandler(svc *checkout.Service, queries *db.Queries, webhookSecret string, stripeConfigured bool) *PaymentHandler {
	return &PaymentHandler{
		checkout:         svc,
		queries:          queries,
		webhookSecret:    webhookSecret,
		stripeConfigured: stripeConfigured,
	}
}

type CreatePaymentIntentRequest struct {
	// Amount is in major currency units, e.g. 84.97.
	Amount          decimal.Decimal          `json:"amount"`
	Cart            []checkout.CartItem      `json:"cart"`
	UserID          string                   `json:"userId"`
	Email           string                   `json:"email"`
	ShippingAddress checkout.ShippingAddress `json:"shippingAddress"`
}

type ConfirmPaymentRequest struct {
	PaymentIntentID string `json:"paymentIntentId"`
	OrderID         string `json:"orderId"`
}

func (h *PaymentHandler) Test(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"success":          true,
		"message":          "Stripe routes are working!",
		"timestamp":        timestamp(),
		"stripeConfigured": h.stripeConfigured,
	})
}

// Config exposes what the browser needs to mount Stripe Elements.
func (h *PaymentHandler) Config(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"success":            true,
		"publishableKey":     h.checkout.PublishableKey(),
		"currency":           h.checkout.Currency(),
		"paymentMethodTypes": []string{"card"},
	})
}

func (h *PaymentHandler) CreatePaymentIntent(c echo.Context) error {
	var req CreatePaymentIntentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Valid amount is required")
	}

	userID := req.UserID
	if userID == "" {
		if id, ok := auth.GetUserID(c); ok {
			userID = id
		}
	}
	emailAddr := req.Email
	if emailAddr == "" {
		if u, ok := auth.GetDBUser(c); ok {
			emailAddr = u.Email
		}
	}

	intent, err := h.checkout.CreateIntent(c.Request().Context(), checkout.CreateIntentInput{
		AmountEUR:       req.Amount,
		Cart:            req.Cart,
		UserID:          userID,
		Email:           emailAddr,
		ShippingAddress: req.ShippingAddress,
	})
	if err != nil {
		if checkout.IsValidation(err) {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		slog.Error("failed to create payment intent", "error", err)
		msg := "Payment processing error"
		if stripe.IsCardError(err) {
			msg = "Your card was declined. Please try another card."
		}
		return echo.NewHTTPError(http.StatusInternalServerError, msg).SetInternal(err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success":         true,
		"clientSecret":    intent.ClientSecret,
		"paymentIntentId": intent.PaymentIntentID,
		"orderId":         intent.OrderID,
		"orderNumber":     intent.OrderNumber,
		"publishableKey":  intent.PublishableKey,
	})
}

func (h *PaymentHandler) ConfirmPayment(c echo.Context) error {
	var req ConfirmPaymentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Payment intent ID is required")
	}

	conf, err := h.checkout.Confirm(c.Request().Context(), req.PaymentIntentID, req.OrderID, checkout.SourceClient)
	if err != nil {
		var notCompleted *checkout.NotCompletedError
		switch {
		case checkout.IsValidation(err):
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		case errors.As(err, &notCompleted):
			return c.JSON(http.StatusBadRequest, echo.Map{
				"success": false,
				"message": notCompleted.Error(),
				"status":  notCompleted.Status,
			})
		}
		slog.Error("payment confirmation failed", "error", err, "payment_intent_id", req.PaymentIntentID)
		return echo.NewHTTPError(http.StatusInternalServerError, "Payment confirmation failed").SetInternal(err)
	}

	return respond(c, http.StatusOK, "Payment successful! Order confirmed.", echo.Map{
		"orderId":     conf.OrderID,
		"orderNumber": conf.OrderNumber,
		"paymentId":   conf.PaymentID,
		"amount":      centsToEUR(conf.AmountCents),
		"status":      conf.Status,
		"receiptUrl":  conf.ReceiptURL,
		"recovered":   conf.Recovered,
	})
}

// HandleWebhook settles orders from Stripe events. Processing errors are
// logged and acknowledged so the browser confirmation and the reconciler
// remain the fallback.
func (h *PaymentHandler) HandleWebhook(c echo.Context) error {
	payload, err := io.ReadAll(io.LimitReader(c.Request().Body, maxWebhookBody))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Request body too large")
	}

	var event stripego.Event
	if h.webhookSecret != "" {
		event, err = webhook.ConstructEventWithOptions(payload, c.Request().Header.Get("Stripe-Signature"), h.webhookSecret,
			webhook.ConstructEventOptions{IgnoreAPIVersionMismatch: true})
		if err != nil {
			slog.Error("webhook signature verification failed", "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid signature")
		}
	} else if err := json.Unmarshal(payload, &event); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Error parsing webhook JSON")
	}

	if event.Data == nil {
		slog.Warn("webhook event without data", "type", event.Type)
		return c.JSON(http.StatusOK, echo.Map{"received": true})
	}

	ctx := c.Request().Context()
	switch event.Type {
	case stripego.EventTypePaymentIntentSucceeded:
		var pi stripego.PaymentIntent
		if err := json.Unmarshal(event.Data.Raw, &pi); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Error parsing webhook JSON")
		}
		if _, err := h.checkout.Confirm(ctx, pi.ID, pi.Metadata["orderId"], checkout.SourceWebhook); err != nil {
			slog.Error("failed to settle order from webhook", "error", err, "payment_intent_id", pi.ID)
		}

	case stripego.EventTypePaymentIntentPaymentFailed:
		var pi stripego.PaymentIntent
		if err := json.Unmarshal(event.Data.Raw, &pi); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Error parsing webhook JSON")
		}
		if _, err := h.checkout.RecordFailure(ctx, pi.ID); err != nil {
			slog.Error("failed to mark order failed from webhook", "error", err, "payment_intent_id", pi.ID)
		}

	default:
		slog.Debug("unhandled webhook event type", "type", event.Type)
	}

	return c.JSON(http.StatusOK, echo.Map{"received": true})
}

func (h *PaymentHandler) GetOrder(c echo.Context) error {
	order, err := h.queries.GetOrderByOrderID(c.Request().Context(), c.Param("orderId"))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return echo.NewHTTPError(http.StatusNotFound, "Order not found")
		}
		slog.Error("failed to get order", "error", err, "order_id", c.Param("orderId"))
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch order")
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "order": orderToResponse(order)})
}

type orderSummary struct {
	OrderID         string    `json:"orderId"`
	OrderNumber     string    `json:"orderNumber"`
	UserID          string    `json:"userId"`
	Email           string    `json:"email"`
	Amount          float64   `json:"amount"`
	Status          string    `json:"status"`
	PaymentStatus   string    `json:"paymentStatus"`
	CreatedAt       time.Time `json:"createdAt"`
	StripePaymentID string    `json:"stripePaymentId,omitempty"`
}

// AllOrders lists every order, newest first. Admin only.
func (h *PaymentHandler) AllOrders(c echo.Context) error {
	orders, err := h.queries.ListOrders(c.Request().Context())
	if err != nil {
		slog.Error("failed to list orders", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch orders").SetInternal(err)
	}

	out := make([]orderSummary, len(orders))
	for i, o := range orders {
		out[i] = orderSummary{
			OrderID:         o.OrderID,
			OrderNumber:     o.OrderNumber,
			UserID:          o.UserID,
			Email:           o.Email,
			Amount:          centsToEUR(o.TotalCents),
			Status:          o.Status,
			PaymentStatus:   o.PaymentStatus,
			CreatedAt:       o.CreatedAt,
			StripePaymentID: o.StripePaymentID.String,
		}
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "count": len(out), "orders": out})
}
