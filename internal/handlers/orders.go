package handlers

import (
	"bytes"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/roibeauty/storefront/internal/auth"
	"github.com/roibeauty/storefront/internal/checkout"
	"github.com/roibeauty/storefront/internal/receipt"
	"github.com/roibeauty/storefront/storage/db"
)

type OrderHandler struct {
	queries *db.Queries
	baseURL string
}

// NewOrderHandler builds the order handler. baseURL prefixes the status
// link printed on receipts.
func NewOrderHandler(queries *db.Queries, baseURL string) *OrderHandler {
	return &OrderHandler{queries: queries, baseURL: strings.TrimRight(baseURL, "/")}
}

func (h *OrderHandler) MyOrders(c echo.Context) error {
	userID, ok := auth.GetUserID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Authentication required")
	}
	orders, err := h.queries.ListOrdersByUser(c.Request().Context(), userID)
	if err != nil {
		slog.Error("failed to list user orders", "error", err, "user_id", userID)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch orders")
	}
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data":    ordersToResponse(orders),
		"count":   len(orders),
	})
}

// AssociateGuest moves guest orders placed with the caller's email onto
// the caller's account. The email must be verified.
func (h *OrderHandler) AssociateGuest(c echo.Context) error {
	user, ok := auth.GetDBUser(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Authentication required")
	}
	if !user.IsVerified {
		return echo.NewHTTPError(http.StatusForbidden, "Please verify your email before linking guest orders")
	}

	var req struct {
		Email string `json:"email"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	emailAddr := normalizeEmail(req.Email)
	if emailAddr == "" {
		emailAddr = user.Email
	}
	if emailAddr != normalizeEmail(user.Email) {
		return echo.NewHTTPError(http.StatusForbidden, "You can only claim orders placed with your own email")
	}

	n, err := h.queries.AssociateGuestOrders(c.Request().Context(), db.AssociateGuestOrdersParams{
		UserID: user.ID,
		Email:  emailAddr,
	})
	if err != nil {
		slog.Error("failed to associate guest orders", "error", err, "user_id", user.ID)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to associate orders")
	}

	slog.Info("guest orders associated", "user_id", user.ID, "count", n)
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": fmt.Sprintf("%d order(s) linked to your account", n),
		"count":   n,
	})
}

// Receipt streams a PDF receipt for a paid order.
func (h *OrderHandler) Receipt(c echo.Context) error {
	orderID := c.Param("orderId")
	order, err := h.queries.GetOrderByOrderID(c.Request().Context(), orderID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return echo.NewHTTPError(http.StatusNotFound, "Order not found")
		}
		slog.Error("failed to load order for receipt", "error", err, "order_id", orderID)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch order")
	}
	if order.PaymentStatus != checkout.PaymentSucceeded {
		return echo.NewHTTPError(http.StatusConflict, "Receipt is only available for paid orders")
	}

	var buf bytes.Buffer
	if err := receipt.Render(&buf, h.receiptFor(order)); err != nil {
		slog.Error("failed to render receipt", "error", err, "order_id", orderID)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to generate receipt")
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf(`inline; filename="receipt-%s.pdf"`, order.OrderID))
	return c.Blob(http.StatusOK, "application/pdf", buf.Bytes())
}

func (h *OrderHandler) receiptFor(order db.Order) receipt.Receipt {
	items := checkout.ParseItems(order.Items)
	lines := make([]receipt.Line, len(items))
	for i, it := range items {
		lines[i] = receipt.Line{Name: it.Name, Quantity: it.Quantity, UnitCents: it.PriceCents()}
	}

	addr := checkout.ParseShippingAddress(order.ShippingAddress)
	var shipTo []string
	for _, line := range []string{
		addr.FullName,
		addr.Address,
		strings.TrimSpace(addr.Zip() + " " + addr.City),
		addr.Country,
		addr.Phone,
	} {
		if line != "" {
			shipTo = append(shipTo, line)
		}
	}

	r := receipt.Receipt{
		OrderID:     order.OrderID,
		OrderNumber: order.OrderNumber,
		Email:       order.Email,
		PaymentID:   order.StripePaymentID.String,
		Currency:    order.Currency,
		Lines:       lines,
		TotalCents:  order.TotalCents,
		ShipTo:      shipTo,
	}
	if order.PaidAt.Valid {
		r.PaidAt = order.PaidAt.Time
	}
	if h.baseURL != "" {
		r.StatusURL = h.baseURL + "/api/payment/order/" + order.OrderID
	}
	return r
}
