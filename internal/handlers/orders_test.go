package handlers

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roibeauty/storefront/internal/checkout"
)

// paidGuestOrder runs a guest checkout through to a confirmed payment and
// returns the order id.
func paidGuestOrder(t *testing.T, f *paymentFixture) string {
	t.Helper()
	created := createIntent(t, f)
	piID := created["paymentIntentId"].(string)
	orderID := created["orderId"].(string)
	f.intents.succeed(piID)
	_, err := f.checkout.Confirm(context.Background(), piID, orderID, checkout.SourceClient)
	require.NoError(t, err)
	return orderID
}

func TestMyOrders_AfterAssociatingGuestOrders(t *testing.T) {
	f := newPaymentFixture(t, "")
	orderID := paidGuestOrder(t, f)
	h := NewOrderHandler(f.queries, "http://localhost:5000/")

	user, err := CreateVerifiedTestUser(f.queries, "jane@example.com")
	require.NoError(t, err)

	c, rec := NewTestContext(http.MethodGet, "/api/orders/my-orders", nil)
	SetTestUser(c, user)
	require.NoError(t, h.MyOrders(c))
	body, err := AssertJSONResponse(rec)
	require.NoError(t, err)
	assert.Equal(t, float64(0), body["count"])

	c, rec = NewTestContext(http.MethodPost, "/api/orders/associate-guest", map[string]any{})
	SetTestUser(c, user)
	require.NoError(t, h.AssociateGuest(c))
	body, err = AssertJSONResponse(rec)
	require.NoError(t, err)
	assert.Equal(t, float64(1), body["count"])
	assert.Equal(t, "1 order(s) linked to your account", body["message"])

	c, rec = NewTestContext(http.MethodGet, "/api/orders/my-orders", nil)
	SetTestUser(c, user)
	require.NoError(t, h.MyOrders(c))
	body, err = AssertJSONResponse(rec)
	require.NoError(t, err)
	require.Equal(t, float64(1), body["count"])
	order := body["data"].([]any)[0].(map[string]any)
	assert.Equal(t, orderID, order["orderId"])
	assert.Equal(t, user.ID, order["userId"])
	assert.Equal(t, checkout.StatusPaid, order["status"])
	assert.Len(t, order["items"], 2)
}

func TestAssociateGuest_RejectsOtherEmail(t *testing.T) {
	f := newPaymentFixture(t, "")
	orderID := paidGuestOrder(t, f)
	h := NewOrderHandler(f.queries, "")

	user, err := CreateVerifiedTestUser(f.queries, "mallory@example.com")
	require.NoError(t, err)

	c, _ := NewTestContext(http.MethodPost, "/api/orders/associate-guest", map[string]any{"email": "jane@example.com"})
	SetTestUser(c, user)
	err = h.AssociateGuest(c)
	assert.Equal(t, http.StatusForbidden, httpStatus(err))

	order, err := f.queries.GetOrderByOrderID(context.Background(), orderID)
	require.NoError(t, err)
	assert.Equal(t, checkout.GuestUserID, order.UserID)
}

func TestAssociateGuest_RequiresVerifiedEmail(t *testing.T) {
	f := newPaymentFixture(t, "")
	orderID := paidGuestOrder(t, f)
	h := NewOrderHandler(f.queries, "")

	user, err := CreateTestUserWithEmail(f.queries, "jane@example.com")
	require.NoError(t, err)
	require.False(t, user.IsVerified)

	c, _ := NewTestContext(http.MethodPost, "/api/orders/associate-guest", map[string]any{})
	SetTestUser(c, user)
	err = h.AssociateGuest(c)
	assert.Equal(t, http.StatusForbidden, httpStatus(err))
	assert.Equal(t, "Please verify your email before linking guest orders", httpMessage(err))

	order, err := f.queries.GetOrderByOrderID(context.Background(), orderID)
	require.NoError(t, err)
	assert.Equal(t, checkout.GuestUserID, order.UserID)
}

func TestMyOrders_RequiresUser(t *testing.T) {
	_, queries, cleanup := NewTestDB()
	defer cleanup()
	h := NewOrderHandler(queries, "")

	c, _ := NewTestContext(http.MethodGet, "/api/orders/my-orders", nil)
	assert.Equal(t, http.StatusUnauthorized, httpStatus(h.MyOrders(c)))
}

func TestReceipt(t *testing.T) {
	f := newPaymentFixture(t, "")
	h := NewOrderHandler(f.queries, "http://localhost:5000")

	receiptFor := func(orderID string) (int, string, []byte, error) {
		c, rec := NewTestContext(http.MethodGet, "/api/orders/:orderId/receipt", nil)
		c.SetParamNames("orderId")
		c.SetParamValues(orderID)
		err := h.Receipt(c)
		return rec.Code, rec.Header().Get("Content-Type"), rec.Body.Bytes(), err
	}

	_, _, _, err := receiptFor("RB-missing")
	assert.Equal(t, http.StatusNotFound, httpStatus(err))

	pending := createIntent(t, f)["orderId"].(string)
	_, _, _, err = receiptFor(pending)
	assert.Equal(t, http.StatusConflict, httpStatus(err))
	assert.Equal(t, "Receipt is only available for paid orders", httpMessage(err))

	paid := paidGuestOrder(t, f)
	code, contentType, pdf, err := receiptFor(paid)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "application/pdf", contentType)
	assert.True(t, len(pdf) > 4 && string(pdf[:4]) == "%PDF")
}

func TestReceiptFor_MapsOrder(t *testing.T) {
	f := newPaymentFixture(t, "")
	paid := paidGuestOrder(t, f)
	h := NewOrderHandler(f.queries, "https://api.roibeauty.example/")

	order, err := f.queries.GetOrderByOrderID(context.Background(), paid)
	require.NoError(t, err)
	r := h.receiptFor(order)

	assert.Equal(t, paid, r.OrderID)
	assert.Equal(t, "jane@example.com", r.Email)
	assert.Equal(t, int64(8497), r.TotalCents)
	require.Len(t, r.Lines, 2)
	assert.Equal(t, int64(2999), r.Lines[0].UnitCents)
	assert.Equal(t, []string{"Jane Doe", "1 Rue de Rivoli", "75001 Paris", "France"}, r.ShipTo)
	assert.Equal(t, "https://api.roibeauty.example/api/payment/order/"+paid, r.StatusURL)
	assert.False(t, r.PaidAt.IsZero())
}
