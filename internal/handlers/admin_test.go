package handlers

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roibeauty/storefront/internal/auth"
	"github.com/roibeauty/storefront/internal/checkout"
)

func TestAdminStats(t *testing.T) {
	f := newPaymentFixture(t, "")
	paidGuestOrder(t, f)
	createIntent(t, f)
	_, err := CreateTestAdmin(f.queries, "admin@example.com")
	require.NoError(t, err)

	h := NewAdminHandler(f.db, f.mailer)
	c, rec := NewTestContext(http.MethodGet, "/api/admin/stats", nil)
	require.NoError(t, h.Stats(c))

	body, err := AssertJSONResponse(rec)
	require.NoError(t, err)
	data := body["data"].(map[string]any)

	totals := data["totals"].(map[string]any)
	assert.Equal(t, float64(2), totals["orders"])
	assert.Equal(t, 84.97, totals["revenue"])
	assert.Equal(t, float64(8), totals["products"])
	assert.Equal(t, float64(1), totals["users"])

	status := data["orderStatus"].(map[string]any)
	assert.Equal(t, float64(1), status["pending"])
	assert.Equal(t, float64(0), status["completed"])

	assert.Len(t, data["recentOrders"], 2)
	assert.Equal(t, float64(0), data["inventory"].(map[string]any)["lowStock"])
	assert.Contains(t, data, "monthlyRevenue")
}

func TestAdminStats_LowStock(t *testing.T) {
	_, database, _ := newProductFixture(t)
	_, err := database.Exec(`UPDATE products SET stock_quantity = 2 WHERE id = 8`)
	require.NoError(t, err)

	h := NewAdminHandler(database, newFakeMailer())
	c, rec := NewTestContext(http.MethodGet, "/api/admin/stats", nil)
	require.NoError(t, h.Stats(c))
	body, err := AssertJSONResponse(rec)
	require.NoError(t, err)

	data := body["data"].(map[string]any)
	assert.Equal(t, float64(1), data["inventory"].(map[string]any)["lowStock"])
	low := data["lowStockProducts"].([]any)
	require.Len(t, low, 1)
	assert.Equal(t, "Overnight Repair Cream", low[0].(map[string]any)["name"])
	assert.Equal(t, true, low[0].(map[string]any)["isLowStock"])
}

func TestMakeAdmin(t *testing.T) {
	database, queries, cleanup := NewTestDB()
	defer cleanup()

	user, err := CreateTestUserWithEmail(queries, "promote@example.com")
	require.NoError(t, err)
	h := NewAdminHandler(database, newFakeMailer())

	c, rec := NewTestContext(http.MethodPost, "/api/auth/make-admin", map[string]any{"email": "PROMOTE@example.com"})
	require.NoError(t, h.MakeAdmin(c))
	body, err := AssertJSONResponse(rec)
	require.NoError(t, err)
	assert.Equal(t, "User promote@example.com is now an admin", body["message"])
	assert.Equal(t, "role", body["updatedField"])

	reloaded, err := queries.GetUser(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, auth.RoleAdmin, reloaded.Role)

	c, _ = NewTestContext(http.MethodPost, "/api/auth/make-admin", map[string]any{"email": "ghost@example.com"})
	assert.Equal(t, http.StatusNotFound, httpStatus(h.MakeAdmin(c)))

	c, _ = NewTestContext(http.MethodPost, "/api/auth/make-admin", map[string]any{})
	err = h.MakeAdmin(c)
	assert.Equal(t, http.StatusBadRequest, httpStatus(err))
	assert.Equal(t, "Email is required", httpMessage(err))
}

func TestSetUserRole(t *testing.T) {
	_, database, queries := newProductFixture(t)
	h := NewAdminHandler(database, newFakeMailer())
	admin, err := CreateTestAdmin(queries, "admin@example.com")
	require.NoError(t, err)
	user, err := CreateTestUserWithEmail(queries, "user@example.com")
	require.NoError(t, err)

	setRole := func(id, role string) error {
		c, _ := NewTestContext(http.MethodPut, "/api/admin/users/:id/role", map[string]any{"role": role})
		c.SetParamNames("id")
		c.SetParamValues(id)
		SetTestUser(c, admin)
		return h.SetUserRole(c)
	}

	err = setRole(admin.ID, auth.RoleUser)
	assert.Equal(t, http.StatusBadRequest, httpStatus(err))
	assert.Equal(t, "You cannot remove your own admin role", httpMessage(err))

	assert.Equal(t, http.StatusBadRequest, httpStatus(setRole(user.ID, "owner")))
	assert.Equal(t, http.StatusNotFound, httpStatus(setRole("01HZZZZZZZZZZZZZZZZZZZZZZZ", auth.RoleAdmin)))

	require.NoError(t, setRole(user.ID, auth.RoleAdmin))
	reloaded, err := queries.GetUser(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, auth.RoleAdmin, reloaded.Role)
}

func TestListUsers_WithOrderStats(t *testing.T) {
	f := newPaymentFixture(t, "")
	paidGuestOrder(t, f)
	buyer, err := CreateVerifiedTestUser(f.queries, "jane@example.com")
	require.NoError(t, err)
	h := NewOrderHandler(f.queries, "")
	c, _ := NewTestContext(http.MethodPost, "/api/orders/associate-guest", map[string]any{})
	SetTestUser(c, buyer)
	require.NoError(t, h.AssociateGuest(c))

	admin := NewAdminHandler(f.db, f.mailer)
	c, rec := NewTestContext(http.MethodGet, "/api/admin/users", nil)
	require.NoError(t, admin.ListUsers(c))
	body, err := AssertJSONResponse(rec)
	require.NoError(t, err)

	require.Equal(t, float64(1), body["count"])
	u := body["data"].([]any)[0].(map[string]any)
	assert.Equal(t, float64(1), u["orderCount"])
	assert.Equal(t, 84.97, u["lifetimeSpend"])
	assert.NotContains(t, u, "passwordHash")
}

func TestAdminListOrders(t *testing.T) {
	f := newPaymentFixture(t, "")
	paidGuestOrder(t, f)
	createIntent(t, f)
	h := NewAdminHandler(f.db, f.mailer)

	list := func(query string) map[string]any {
		c, rec := NewTestContext(http.MethodGet, "/api/admin/orders?"+query, nil)
		require.NoError(t, h.ListOrders(c))
		body, err := AssertJSONResponse(rec)
		require.NoError(t, err)
		return body
	}

	assert.Equal(t, float64(2), list("")["total"])
	assert.Equal(t, float64(1), list("status=paid")["total"])
	assert.Equal(t, float64(2), list("status=all")["total"])

	body := list("limit=1&page=2")
	assert.Equal(t, float64(2), body["totalPages"])
	assert.Len(t, body["data"], 1)

	c, _ := NewTestContext(http.MethodGet, "/api/admin/orders?status=lost", nil)
	assert.Equal(t, http.StatusBadRequest, httpStatus(h.ListOrders(c)))
}

func TestUpdateOrderStatus(t *testing.T) {
	f := newPaymentFixture(t, "")
	orderID := paidGuestOrder(t, f)
	h := NewAdminHandler(f.db, f.mailer)

	update := func(id, status string) error {
		c, _ := NewTestContext(http.MethodPut, "/api/admin/orders/:orderId/status", map[string]any{"status": status})
		c.SetParamNames("orderId")
		c.SetParamValues(id)
		return h.UpdateOrderStatus(c)
	}

	require.NoError(t, update(orderID, checkout.StatusShipped))
	assert.Equal(t, []string{orderID + ":" + checkout.StatusShipped}, f.mailer.statusUpdates)

	order, err := f.queries.GetOrderByOrderID(context.Background(), orderID)
	require.NoError(t, err)
	assert.Equal(t, checkout.StatusShipped, order.Status)

	err = update(orderID, "teleported")
	assert.Equal(t, http.StatusBadRequest, httpStatus(err))
	assert.Equal(t, "Invalid order status", httpMessage(err))

	assert.Equal(t, http.StatusNotFound, httpStatus(update("RB-none", checkout.StatusShipped)))
}

func TestUpdateOrderStatus_SkipsPlaceholderEmail(t *testing.T) {
	f := newPaymentFixture(t, "")
	body := checkoutBody()
	delete(body, "email")
	c, rec := NewTestContext(http.MethodPost, "/api/payment/create-payment-intent", body)
	require.NoError(t, f.handler.CreatePaymentIntent(c))
	created, err := AssertJSONResponse(rec)
	require.NoError(t, err)
	orderID := created["orderId"].(string)

	h := NewAdminHandler(f.db, f.mailer)
	c, _ = NewTestContext(http.MethodPut, "/api/admin/orders/:orderId/status", map[string]any{"status": checkout.StatusCancelled})
	c.SetParamNames("orderId")
	c.SetParamValues(orderID)
	require.NoError(t, h.UpdateOrderStatus(c))
	assert.Empty(t, f.mailer.statusUpdates)
}

func TestAdminProductLifecycle(t *testing.T) {
	_, database, queries := newProductFixture(t)
	h := NewAdminHandler(database, newFakeMailer())
	ctx := context.Background()

	c, rec := NewTestContext(http.MethodPost, "/api/admin/products", map[string]any{
		"name":        "Barrier Balm",
		"description": "Rich balm for compromised skin",
		"price":       "31.50",
		"category":    "treatment",
		"skinType":    []string{"dry", "sensitive"},
	})
	require.NoError(t, h.CreateProduct(c))
	assert.Equal(t, http.StatusCreated, rec.Code)
	body, err := AssertJSONResponse(rec)
	require.NoError(t, err)
	created := body["data"].(map[string]any)
	assert.Equal(t, float64(9), created["id"])
	assert.Equal(t, 31.5, created["price"])
	assert.Equal(t, float64(10), created["stockQuantity"])
	assert.Equal(t, []any{"dry", "sensitive"}, created["skinType"])

	update := func(payload map[string]any) error {
		c, _ := NewTestContext(http.MethodPut, "/api/admin/products/:id", payload)
		c.SetParamNames("id")
		c.SetParamValues("9")
		return h.UpdateProduct(c)
	}

	require.NoError(t, update(map[string]any{"stockQuantity": 0}))
	p, err := queries.GetProduct(ctx, 9)
	require.NoError(t, err)
	assert.False(t, p.InStock)
	assert.Equal(t, "Barrier Balm", p.Name)
	assert.Equal(t, int64(3150), p.PriceCents)

	err = update(map[string]any{"category": "potions"})
	assert.Equal(t, http.StatusBadRequest, httpStatus(err))
	assert.Equal(t, "Invalid category: potions", httpMessage(err))

	c, rec = NewTestContext(http.MethodPatch, "/api/admin/products/:id/featured", nil)
	c.SetParamNames("id")
	c.SetParamValues("9")
	require.NoError(t, h.ToggleFeatured(c))
	body, err = AssertJSONResponse(rec)
	require.NoError(t, err)
	assert.Equal(t, "Product marked as featured", body["message"])

	c, _ = NewTestContext(http.MethodDelete, "/api/admin/products/:id", nil)
	c.SetParamNames("id")
	c.SetParamValues("9")
	require.NoError(t, h.DeleteProduct(c))
	_, err = queries.GetProduct(ctx, 9)
	assert.Error(t, err)

	c, _ = NewTestContext(http.MethodDelete, "/api/admin/products/:id", nil)
	c.SetParamNames("id")
	c.SetParamValues("9")
	assert.Equal(t, http.StatusNotFound, httpStatus(h.DeleteProduct(c)))
}

func TestCreateProduct_RequiresPrice(t *testing.T) {
	_, database, _ := newProductFixture(t)
	h := NewAdminHandler(database, newFakeMailer())

	c, _ := NewTestContext(http.MethodPost, "/api/admin/products", map[string]any{
		"name": "No Price", "description": "x", "category": "serums",
	})
	err := h.CreateProduct(c)
	assert.Equal(t, http.StatusBadRequest, httpStatus(err))
	assert.Equal(t, "Price is required", httpMessage(err))
}

func TestDebugFeaturedAndSeed(t *testing.T) {
	database, _, cleanup := NewTestDB()
	defer cleanup()
	h := NewAdminHandler(database, newFakeMailer())

	c, rec := NewTestContext(http.MethodPost, "/api/seed-database", nil)
	require.NoError(t, h.SeedDatabase(c))
	body, err := AssertJSONResponse(rec)
	require.NoError(t, err)
	assert.Equal(t, "Database seeded successfully", body["message"])

	c, rec = NewTestContext(http.MethodGet, "/api/debug-featured", nil)
	require.NoError(t, h.DebugFeatured(c))
	body, err = AssertJSONResponse(rec)
	require.NoError(t, err)
	debug := body["debug"].(map[string]any)
	assert.Equal(t, float64(8), debug["totalProducts"])
	assert.Equal(t, float64(4), debug["featuredCount"])
	assert.Len(t, debug["allProducts"], 8)
}
