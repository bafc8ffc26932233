package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/roibeauty/storefront/internal/checkout"
	"github.com/roibeauty/storefront/storage/db"
)

// Envelope is the body shape of every JSON response.
type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

func respond(c echo.Context, code int, message string, data any) error {
	return c.JSON(code, Envelope{Success: true, Message: message, Data: data})
}

func respondData(c echo.Context, data any) error {
	return respond(c, http.StatusOK, "", data)
}

func fail(c echo.Context, code int, message string) error {
	return c.JSON(code, Envelope{Success: false, Message: message})
}

// centsToEUR renders an integer cent amount as major units.
func centsToEUR(cents int64) float64 {
	return decimal.New(cents, -2).InexactFloat64()
}

func timestamp() string {
	return time.Now().UTC().Format(time.RFC3339Nano)
}

type ProductResponse struct {
	ID                int64     `json:"id"`
	Name              string    `json:"name"`
	Description       string    `json:"description"`
	Price             float64   `json:"price"`
	OriginalPrice     *float64  `json:"originalPrice,omitempty"`
	Image             string    `json:"image"`
	Category          string    `json:"category"`
	SkinType          []string  `json:"skinType"`
	Badge             string    `json:"badge"`
	IsFeatured        bool      `json:"isFeatured"`
	InStock           bool      `json:"inStock"`
	StockQuantity     int64     `json:"stockQuantity"`
	Rating            float64   `json:"rating"`
	NumReviews        int64     `json:"numReviews"`
	LowStockThreshold int64     `json:"lowStockThreshold"`
	IsLowStock        bool      `json:"isLowStock"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

func productToResponse(p db.Product) ProductResponse {
	skin := []string{}
	_ = json.Unmarshal([]byte(p.SkinTypes), &skin)

	resp := ProductResponse{
		ID:                p.ID,
		Name:              p.Name,
		Description:       p.Description,
		Price:             centsToEUR(p.PriceCents),
		Image:             p.Image,
		Category:          p.Category,
		SkinType:          skin,
		Badge:             p.Badge,
		IsFeatured:        p.IsFeatured,
		InStock:           p.InStock,
		StockQuantity:     p.StockQuantity,
		Rating:            p.Rating,
		NumReviews:        p.NumReviews,
		LowStockThreshold: p.LowStockThreshold,
		IsLowStock:        p.StockQuantity <= p.LowStockThreshold,
		CreatedAt:         p.CreatedAt,
		UpdatedAt:         p.UpdatedAt,
	}
	if p.OriginalPriceCents.Valid {
		v := centsToEUR(p.OriginalPriceCents.Int64)
		resp.OriginalPrice = &v
	}
	return resp
}

func productsToResponse(products []db.Product) []ProductResponse {
	out := make([]ProductResponse, len(products))
	for i, p := range products {
		out[i] = productToResponse(p)
	}
	return out
}

type AddressResponse struct {
	FullName string `json:"fullName"`
	Address  string `json:"address"`
	City     string `json:"city"`
	ZipCode  string `json:"zipCode"`
	Country  string `json:"country"`
	Phone    string `json:"phone"`
}

type PreferencesResponse struct {
	EmailNotifications bool `json:"emailNotifications"`
	MarketingEmails    bool `json:"marketingEmails"`
}

type UserResponse struct {
	ID              string              `json:"id"`
	Name            string              `json:"name"`
	Email           string              `json:"email"`
	Role            string              `json:"role"`
	IsVerified      bool                `json:"isVerified"`
	ShippingAddress AddressResponse     `json:"shippingAddress"`
	ProfilePicture  string              `json:"profilePicture,omitempty"`
	Preferences     PreferencesResponse `json:"preferences"`
	LastLogin       *time.Time          `json:"lastLogin,omitempty"`
	CreatedAt       time.Time           `json:"createdAt"`
}

func userToResponse(u db.User) UserResponse {
	resp := UserResponse{
		ID:         u.ID,
		Name:       u.Name,
		Email:      u.Email,
		Role:       u.Role,
		IsVerified: u.IsVerified,
		ShippingAddress: AddressResponse{
			FullName: u.ShippingFullName,
			Address:  u.ShippingAddress,
			City:     u.ShippingCity,
			ZipCode:  u.ShippingZipCode,
			Country:  u.ShippingCountry,
			Phone:    u.ShippingPhone,
		},
		ProfilePicture: u.ProfilePicture.String,
		Preferences: PreferencesResponse{
			EmailNotifications: u.EmailNotifications,
			MarketingEmails:    u.MarketingEmails,
		},
		CreatedAt: u.CreatedAt,
	}
	if u.LastLoginAt.Valid {
		t := u.LastLoginAt.Time
		resp.LastLogin = &t
	}
	return resp
}

type OrderResponse struct {
	ID              string                   `json:"id"`
	OrderID         string                   `json:"orderId"`
	OrderNumber     string                   `json:"orderNumber"`
	UserID          string                   `json:"userId"`
	Email           string                   `json:"email"`
	Items           []checkout.CartItem      `json:"items"`
	ShippingAddress checkout.ShippingAddress `json:"shippingAddress"`
	TotalAmount     float64                  `json:"totalAmount"`
	Currency        string                   `json:"currency"`
	Status          string                   `json:"status"`
	PaymentMethod   string                   `json:"paymentMethod"`
	PaymentStatus   string                   `json:"paymentStatus"`
	StripePaymentID string                   `json:"stripePaymentId,omitempty"`
	ReceiptURL      string                   `json:"receiptUrl,omitempty"`
	PaidAt          *time.Time               `json:"paidAt,omitempty"`
	CreatedAt       time.Time                `json:"createdAt"`
	UpdatedAt       time.Time                `json:"updatedAt"`
}

func orderToResponse(o db.Order) OrderResponse {
	resp := OrderResponse{
		ID:              o.ID,
		OrderID:         o.OrderID,
		OrderNumber:     o.OrderNumber,
		UserID:          o.UserID,
		Email:           o.Email,
		Items:           checkout.ParseItems(o.Items),
		ShippingAddress: checkout.ParseShippingAddress(o.ShippingAddress),
		TotalAmount:     centsToEUR(o.TotalCents),
		Currency:        o.Currency,
		Status:          o.Status,
		PaymentMethod:   o.PaymentMethod,
		PaymentStatus:   o.PaymentStatus,
		StripePaymentID: o.StripePaymentID.String,
		ReceiptURL:      o.ReceiptUrl.String,
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.UpdatedAt,
	}
	if o.PaidAt.Valid {
		t := o.PaidAt.Time
		resp.PaidAt = &t
	}
	return resp
}

func ordersToResponse(orders []db.Order) []OrderResponse {
	out := make([]OrderResponse, len(orders))
	for i, o := range orders {
		out[i] = orderToResponse(o)
	}
	return out
}

// pageParams reads page/limit query parameters.
func pageParams(c echo.Context, defaultLimit, maxLimit int64) (page, limit int64) {
	page, _ = strconv.ParseInt(c.QueryParam("page"), 10, 64)
	if page < 1 {
		page = 1
	}
	limit, _ = strconv.ParseInt(c.QueryParam("limit"), 10, 64)
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	return page, limit
}

func totalPages(total, limit int64) int64 {
	if limit <= 0 {
		return 0
	}
	return (total + limit - 1) / limit
}
