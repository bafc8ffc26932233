package handlers

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/roibeauty/storefront/internal/auth"
	"github.com/roibeauty/storefront/internal/checkout"
	"github.com/roibeauty/storefront/internal/email"
	"github.com/roibeauty/storefront/storage"
	"github.com/roibeauty/storefront/storage/db"
)

const (
	defaultAdminPageSize = 20
	maxAdminPageSize     = 100
	recentOrdersLimit    = 10
)

var (
	ProductCategories = []string{"cleansers", "serums", "moisturizers", "masks", "eye-care", "toners", "sunscreen", "treatment"}
	SkinTypes         = []string{"dry", "oily", "combination", "sensitive", "normal", "all"}
	ProductBadges     = []string{"", "Bestseller", "New", "Sale"}
)

// StatusMailer tells a customer their order moved to a new status.
type StatusMailer interface {
	SendOrderStatusUpdate(ctx context.Context, data *email.OrderData, status string) error
}

type AdminHandler struct {
	db      *sql.DB
	queries *db.Queries
	mailer  StatusMailer
}

func NewAdminHandler(database *sql.DB, mailer StatusMailer) *AdminHandler {
	return &AdminHandler{db: database, queries: db.New(database), mailer: mailer}
}

// CheckSetup confirms the caller holds the admin role.
func (h *AdminHandler) CheckSetup(c echo.Context) error {
	user, ok := auth.GetDBUser(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Authentication required")
	}
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "Admin access verified",
		"user": echo.Map{
			"id":        user.ID,
			"name":      user.Name,
			"email":     user.Email,
			"role":      user.Role,
			"isAdmin":   user.Role == auth.RoleAdmin,
			"createdAt": user.CreatedAt,
		},
	})
}

func (h *AdminHandler) MakeAdmin(c echo.Context) error {
	ctx := c.Request().Context()
	var req struct {
		Email string `json:"email"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	emailAddr := normalizeEmail(req.Email)
	if emailAddr == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Email is required")
	}

	user, err := h.queries.GetUserByEmail(ctx, emailAddr)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return echo.NewHTTPError(http.StatusNotFound, "User not found")
		}
		slog.Error("failed to look up user", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Error making user admin")
	}

	if _, err := h.queries.UpdateUserRole(ctx, db.UpdateUserRoleParams{Role: auth.RoleAdmin, ID: user.ID}); err != nil {
		slog.Error("failed to update role", "error", err, "user_id", user.ID)
		return echo.NewHTTPError(http.StatusInternalServerError, "Error making user admin")
	}
	user.Role = auth.RoleAdmin

	slog.Info("user promoted to admin", "user_id", user.ID)
	return c.JSON(http.StatusOK, echo.Map{
		"success":      true,
		"message":      fmt.Sprintf("User %s is now an admin", user.Email),
		"updatedField": "role",
		"user":         userToResponse(user),
	})
}

// SetUserRole changes a user's role. Admins cannot demote themselves.
func (h *AdminHandler) SetUserRole(c echo.Context) error {
	ctx := c.Request().Context()
	caller, _ := auth.GetDBUser(c)

	var req struct {
		Role string `json:"role"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if req.Role != auth.RoleUser && req.Role != auth.RoleAdmin {
		return echo.NewHTTPError(http.StatusBadRequest, "Role must be 'user' or 'admin'")
	}

	id := c.Param("id")
	if caller != nil && caller.ID == id && req.Role != auth.RoleAdmin {
		return echo.NewHTTPError(http.StatusBadRequest, "You cannot remove your own admin role")
	}

	n, err := h.queries.UpdateUserRole(ctx, db.UpdateUserRoleParams{Role: req.Role, ID: id})
	if err != nil {
		slog.Error("failed to update role", "error", err, "user_id", id)
		return echo.NewHTTPError(http.StatusInternalServerError, "Error updating user role")
	}
	if n == 0 {
		return echo.NewHTTPError(http.StatusNotFound, "User not found")
	}

	user, err := h.queries.GetUser(ctx, id)
	if err != nil {
		slog.Error("failed to reload user", "error", err, "user_id", id)
		return echo.NewHTTPError(http.StatusInternalServerError, "Error updating user role")
	}
	slog.Info("user role changed", "user_id", id, "role", req.Role)
	return respond(c, http.StatusOK, "User role updated", userToResponse(user))
}

type AdminUserResponse struct {
	ID            string     `json:"id"`
	Name          string     `json:"name"`
	Email         string     `json:"email"`
	Role          string     `json:"role"`
	IsVerified    bool       `json:"isVerified"`
	LastLogin     *time.Time `json:"lastLogin,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
	OrderCount    int64      `json:"orderCount"`
	LifetimeSpend float64    `json:"lifetimeSpend"`
}

func (h *AdminHandler) ListUsers(c echo.Context) error {
	rows, err := h.queries.ListUsersWithStats(c.Request().Context())
	if err != nil {
		slog.Error("failed to list users", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Error fetching users")
	}

	out := make([]AdminUserResponse, len(rows))
	for i, u := range rows {
		out[i] = AdminUserResponse{
			ID:            u.ID,
			Name:          u.Name,
			Email:         u.Email,
			Role:          u.Role,
			IsVerified:    u.IsVerified,
			CreatedAt:     u.CreatedAt,
			OrderCount:    u.OrderCount,
			LifetimeSpend: centsToEUR(u.LifetimeSpendCents),
		}
		if u.LastLoginAt.Valid {
			t := u.LastLoginAt.Time
			out[i].LastLogin = &t
		}
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": out, "count": len(out)})
}

type MonthlyRevenue struct {
	Year    int64   `json:"year"`
	Month   int64   `json:"month"`
	Revenue float64 `json:"revenue"`
	Count   int64   `json:"count"`
}

// Stats builds the dashboard summary. The independent counts run
// concurrently.
func (h *AdminHandler) Stats(c echo.Context) error {
	var (
		totalOrders, totalProducts, totalUsers int64
		pending, completed, revenueCents       int64
		lowStock                               []db.Product
		recent                                 []db.Order
		monthly                                []db.MonthlyRevenueRow
	)

	g, ctx := errgroup.WithContext(c.Request().Context())
	g.Go(func() (err error) { totalOrders, err = h.queries.CountOrders(ctx); return })
	g.Go(func() (err error) { totalProducts, err = h.queries.CountProducts(ctx); return })
	g.Go(func() (err error) { totalUsers, err = h.queries.CountUsers(ctx); return })
	g.Go(func() (err error) { pending, err = h.queries.CountOrdersByStatus(ctx, checkout.StatusPending); return })
	g.Go(func() (err error) { completed, err = h.queries.CountOrdersByStatus(ctx, checkout.StatusDelivered); return })
	g.Go(func() (err error) { revenueCents, err = h.queries.SumPaidRevenue(ctx); return })
	g.Go(func() (err error) { lowStock, err = h.queries.ListLowStockProducts(ctx); return })
	g.Go(func() (err error) { recent, err = h.queries.ListRecentOrders(ctx, recentOrdersLimit); return })
	g.Go(func() (err error) { monthly, err = h.queries.MonthlyRevenue(ctx, "-6 months"); return })
	if err := g.Wait(); err != nil {
		slog.Error("failed to compute admin stats", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Error fetching statistics")
	}

	months := make([]MonthlyRevenue, len(monthly))
	for i, m := range monthly {
		months[i] = MonthlyRevenue{Year: m.Year, Month: m.Month, Revenue: centsToEUR(m.RevenueCents), Count: m.OrderCount}
	}

	return respondData(c, echo.Map{
		"totals": echo.Map{
			"orders":   totalOrders,
			"revenue":  centsToEUR(revenueCents),
			"products": totalProducts,
			"users":    totalUsers,
		},
		"orderStatus": echo.Map{
			"pending":   pending,
			"completed": completed,
		},
		"inventory": echo.Map{
			"lowStock": len(lowStock),
		},
		"recentOrders":     ordersToResponse(recent),
		"monthlyRevenue":   months,
		"lowStockProducts": productsToResponse(lowStock),
	})
}

func (h *AdminHandler) ListOrders(c echo.Context) error {
	ctx := c.Request().Context()
	status := c.QueryParam("status")
	if status == "all" {
		status = ""
	}
	if status != "" && !checkout.ValidStatus(status) {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid order status")
	}
	page, limit := pageParams(c, defaultAdminPageSize, maxAdminPageSize)

	orders, err := h.queries.ListOrdersPaged(ctx, db.ListOrdersPagedParams{
		Status: nullString(status),
		Offset: (page - 1) * limit,
		Limit:  limit,
	})
	if err != nil {
		slog.Error("failed to list orders", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch orders")
	}
	total, err := h.queries.CountOrdersFiltered(ctx, nullString(status))
	if err != nil {
		slog.Error("failed to count orders", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch orders")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success":     true,
		"data":        ordersToResponse(orders),
		"totalPages":  totalPages(total, limit),
		"currentPage": page,
		"total":       total,
	})
}

// UpdateOrderStatus moves an order to a new status and emails the customer.
func (h *AdminHandler) UpdateOrderStatus(c echo.Context) error {
	ctx := c.Request().Context()
	orderID := c.Param("orderId")

	var req struct {
		Status string `json:"status"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if !checkout.ValidStatus(req.Status) {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid order status")
	}

	n, err := h.queries.UpdateOrderStatus(ctx, db.UpdateOrderStatusParams{Status: req.Status, OrderID: orderID})
	if err != nil {
		slog.Error("failed to update order status", "error", err, "order_id", orderID)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to update order status")
	}
	if n == 0 {
		return echo.NewHTTPError(http.StatusNotFound, "Order not found")
	}

	order, err := h.queries.GetOrderByOrderID(ctx, orderID)
	if err != nil {
		slog.Error("failed to reload order", "error", err, "order_id", orderID)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to update order status")
	}

	if h.mailer != nil && order.Email != checkout.PlaceholderEmail {
		if err := h.mailer.SendOrderStatusUpdate(ctx, checkout.OrderEmailData(order, ""), req.Status); err != nil {
			slog.Error("failed to send status update email", "error", err, "order_id", orderID)
		}
	}

	slog.Info("order status updated", "order_id", orderID, "status", req.Status)
	return respond(c, http.StatusOK, "Order status updated", orderToResponse(order))
}

// ProductRequest is the admin product payload. Nil fields keep their
// current value on update.
type ProductRequest struct {
	Name              *string          `json:"name"`
	Description       *string          `json:"description"`
	Price             *decimal.Decimal `json:"price"`
	OriginalPrice     *decimal.Decimal `json:"originalPrice"`
	Image             *string          `json:"image"`
	Category          *string          `json:"category"`
	SkinType          []string         `json:"skinType"`
	Badge             *string          `json:"badge"`
	IsFeatured        *bool            `json:"isFeatured"`
	InStock           *bool            `json:"inStock"`
	StockQuantity     *int64           `json:"stockQuantity"`
	LowStockThreshold *int64           `json:"lowStockThreshold"`
}

// apply merges the request onto p and validates the result.
func (r ProductRequest) apply(p *db.Product) error {
	if r.Name != nil {
		p.Name = strings.TrimSpace(*r.Name)
	}
	if r.Description != nil {
		p.Description = strings.TrimSpace(*r.Description)
	}
	if r.Price != nil {
		if r.Price.IsNegative() {
			return errors.New("Price cannot be negative")
		}
		p.PriceCents = r.Price.Shift(2).Round(0).IntPart()
	}
	if r.OriginalPrice != nil {
		if r.OriginalPrice.IsPositive() {
			p.OriginalPriceCents = sql.NullInt64{Int64: r.OriginalPrice.Shift(2).Round(0).IntPart(), Valid: true}
		} else {
			p.OriginalPriceCents = sql.NullInt64{}
		}
	}
	if r.Image != nil && strings.TrimSpace(*r.Image) != "" {
		p.Image = strings.TrimSpace(*r.Image)
	}
	if r.Category != nil {
		p.Category = *r.Category
	}
	if r.SkinType != nil {
		for _, s := range r.SkinType {
			if !slices.Contains(SkinTypes, s) {
				return fmt.Errorf("Invalid skin type: %s", s)
			}
		}
		b, _ := json.Marshal(r.SkinType)
		p.SkinTypes = string(b)
	}
	if r.Badge != nil {
		p.Badge = *r.Badge
	}
	if r.IsFeatured != nil {
		p.IsFeatured = *r.IsFeatured
	}
	if r.StockQuantity != nil {
		if *r.StockQuantity < 0 {
			return errors.New("Stock quantity cannot be negative")
		}
		p.StockQuantity = *r.StockQuantity
		p.InStock = p.StockQuantity > 0
	}
	if r.InStock != nil {
		p.InStock = *r.InStock
	}
	if r.LowStockThreshold != nil {
		p.LowStockThreshold = *r.LowStockThreshold
	}

	switch {
	case p.Name == "":
		return errors.New("Product name is required")
	case p.Description == "":
		return errors.New("Product description is required")
	case !slices.Contains(ProductCategories, p.Category):
		return fmt.Errorf("Invalid category: %s", p.Category)
	case !slices.Contains(ProductBadges, p.Badge):
		return fmt.Errorf("Invalid badge: %s", p.Badge)
	}
	return nil
}

func (h *AdminHandler) CreateProduct(c echo.Context) error {
	ctx := c.Request().Context()
	var req ProductRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if req.Price == nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Price is required")
	}

	p := db.Product{
		Image:             storage.DefaultProductImage,
		SkinTypes:         "[]",
		InStock:           true,
		StockQuantity:     10,
		LowStockThreshold: 5,
	}
	if err := req.apply(&p); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	id, err := h.queries.NextProductID(ctx)
	if err != nil {
		slog.Error("failed to allocate product id", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Error creating product")
	}
	err = h.queries.CreateProduct(ctx, db.CreateProductParams{
		ID:                 id,
		Name:               p.Name,
		Description:        p.Description,
		PriceCents:         p.PriceCents,
		OriginalPriceCents: p.OriginalPriceCents,
		Image:              p.Image,
		Category:           p.Category,
		SkinTypes:          p.SkinTypes,
		Badge:              p.Badge,
		IsFeatured:         p.IsFeatured,
		InStock:            p.InStock,
		StockQuantity:      p.StockQuantity,
		LowStockThreshold:  p.LowStockThreshold,
	})
	if err != nil {
		slog.Error("failed to create product", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Error creating product")
	}

	created, err := h.queries.GetProduct(ctx, id)
	if err != nil {
		slog.Error("failed to reload product", "error", err, "id", id)
		return echo.NewHTTPError(http.StatusInternalServerError, "Error creating product")
	}
	slog.Info("product created", "id", id, "name", created.Name)
	return respond(c, http.StatusCreated, "Product created successfully", productToResponse(created))
}

func (h *AdminHandler) UpdateProduct(c echo.Context) error {
	ctx := c.Request().Context()
	p, err := h.product(ctx, c.Param("id"))
	if err != nil {
		return err
	}

	var req ProductRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if err := req.apply(&p); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if _, err := h.queries.UpdateProduct(ctx, db.UpdateProductParams{
		Name:               p.Name,
		Description:        p.Description,
		PriceCents:         p.PriceCents,
		OriginalPriceCents: p.OriginalPriceCents,
		Image:              p.Image,
		Category:           p.Category,
		SkinTypes:          p.SkinTypes,
		Badge:              p.Badge,
		IsFeatured:         p.IsFeatured,
		InStock:            p.InStock,
		StockQuantity:      p.StockQuantity,
		LowStockThreshold:  p.LowStockThreshold,
		ID:                 p.ID,
	}); err != nil {
		slog.Error("failed to update product", "error", err, "id", p.ID)
		return echo.NewHTTPError(http.StatusInternalServerError, "Error updating product")
	}

	updated, err := h.queries.GetProduct(ctx, p.ID)
	if err != nil {
		slog.Error("failed to reload product", "error", err, "id", p.ID)
		return echo.NewHTTPError(http.StatusInternalServerError, "Error updating product")
	}
	return respond(c, http.StatusOK, "Product updated successfully", productToResponse(updated))
}

func (h *AdminHandler) DeleteProduct(c echo.Context) error {
	ctx := c.Request().Context()
	p, err := h.product(ctx, c.Param("id"))
	if err != nil {
		return err
	}
	if _, err := h.queries.DeleteProduct(ctx, p.ID); err != nil {
		slog.Error("failed to delete product", "error", err, "id", p.ID)
		return echo.NewHTTPError(http.StatusInternalServerError, "Error deleting product")
	}
	slog.Info("product deleted", "id", p.ID)
	return respond(c, http.StatusOK, "Product deleted successfully", nil)
}

func (h *AdminHandler) ToggleFeatured(c echo.Context) error {
	ctx := c.Request().Context()
	p, err := h.product(ctx, c.Param("id"))
	if err != nil {
		return err
	}
	if _, err := h.queries.SetProductFeatured(ctx, db.SetProductFeaturedParams{IsFeatured: !p.IsFeatured, ID: p.ID}); err != nil {
		slog.Error("failed to toggle featured", "error", err, "id", p.ID)
		return echo.NewHTTPError(http.StatusInternalServerError, "Error updating product")
	}
	p.IsFeatured = !p.IsFeatured

	msg := "Product removed from featured"
	if p.IsFeatured {
		msg = "Product marked as featured"
	}
	return respond(c, http.StatusOK, msg, productToResponse(p))
}

// DebugFeatured reports how the featured selection looks in the database.
func (h *AdminHandler) DebugFeatured(c echo.Context) error {
	ctx := c.Request().Context()

	total, err := h.queries.CountProducts(ctx)
	if err != nil {
		return fmt.Errorf("failed to count products: %w", err)
	}
	featuredCount, err := h.queries.CountFeaturedProducts(ctx)
	if err != nil {
		return fmt.Errorf("failed to count featured products: %w", err)
	}
	all, err := h.queries.ListAllProducts(ctx)
	if err != nil {
		return fmt.Errorf("failed to list products: %w", err)
	}
	featured, err := h.queries.ListFeaturedProducts(ctx, featuredLimit)
	if err != nil {
		return fmt.Errorf("failed to list featured products: %w", err)
	}

	listing := make([]echo.Map, len(all))
	for i, p := range all {
		listing[i] = echo.Map{"id": p.ID, "name": p.Name, "isFeatured": p.IsFeatured}
	}
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"debug": echo.Map{
			"totalProducts":         total,
			"featuredCount":         featuredCount,
			"featuredProductsCount": len(featured),
			"allProducts":           listing,
			"featuredProducts":      productsToResponse(featured),
		},
	})
}

func (h *AdminHandler) SeedDatabase(c echo.Context) error {
	if err := storage.SeedCatalog(c.Request().Context(), h.db); err != nil {
		slog.Error("failed to seed database", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to seed database").SetInternal(err)
	}
	return respond(c, http.StatusOK, "Database seeded successfully", nil)
}

func (h *AdminHandler) product(ctx context.Context, rawID string) (db.Product, error) {
	id, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil {
		return db.Product{}, echo.NewHTTPError(http.StatusNotFound, "Product not found")
	}
	p, err := h.queries.GetProduct(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return db.Product{}, echo.NewHTTPError(http.StatusNotFound, "Product not found")
		}
		slog.Error("failed to load product", "error", err, "id", id)
		return db.Product{}, echo.NewHTTPError(http.StatusInternalServerError, "Error fetching product details")
	}
	return p, nil
}
