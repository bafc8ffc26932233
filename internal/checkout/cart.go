package checkout

import (
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/roibeauty/storefront/internal/email"
)

// CartItem is one line of the browser cart as posted at checkout.
type CartItem struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Image    string  `json:"image,omitempty"`
	Quantity int64   `json:"quantity"`
}

// PriceCents converts the EUR unit price to cents.
func (i CartItem) PriceCents() int64 {
	return decimal.NewFromFloat(i.Price).Shift(2).Round(0).IntPart()
}

// ShippingAddress as captured by the checkout form. The browser posts
// postalCode while stored profiles use zipCode; either is accepted.
type ShippingAddress struct {
	FullName   string `json:"fullName,omitempty"`
	Address    string `json:"address,omitempty"`
	City       string `json:"city,omitempty"`
	PostalCode string `json:"postalCode,omitempty"`
	ZipCode    string `json:"zipCode,omitempty"`
	Country    string `json:"country,omitempty"`
	Phone      string `json:"phone,omitempty"`
}

func (a ShippingAddress) Zip() string {
	if a.PostalCode != "" {
		return a.PostalCode
	}
	return a.ZipCode
}

// ParseItems decodes a stored items column. Invalid JSON yields no items.
func ParseItems(raw string) []CartItem {
	var items []CartItem
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return []CartItem{}
	}
	return items
}

// ParseShippingAddress decodes a stored address. Invalid JSON yields the
// zero address.
func ParseShippingAddress(raw string) ShippingAddress {
	var a ShippingAddress
	_ = json.Unmarshal([]byte(raw), &a)
	return a
}

// normalizeJSON returns raw when it decodes into the shape of target,
// otherwise fallback.
func normalizeJSON(raw string, target any, fallback string) string {
	if strings.TrimSpace(raw) == "" {
		return fallback
	}
	if err := json.Unmarshal([]byte(raw), target); err != nil {
		return fallback
	}
	b, err := json.Marshal(target)
	if err != nil {
		return fallback
	}
	return string(b)
}

const base36 = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// NewOrderID returns RB-<unixMillis>-<9 upper-case base36 chars>.
func NewOrderID(now time.Time) string {
	var b strings.Builder
	for range 9 {
		b.WriteByte(base36[rand.IntN(len(base36))])
	}
	return fmt.Sprintf("RB-%d-%s", now.UnixMilli(), b.String())
}

// NewOrderNumber returns ORD<unixMillis><0..999>.
func NewOrderNumber(now time.Time) string {
	return fmt.Sprintf("ORD%d%d", now.UnixMilli(), rand.IntN(1000))
}

func emailItems(items []CartItem) []email.OrderItem {
	out := make([]email.OrderItem, 0, len(items))
	for _, it := range items {
		out = append(out, email.OrderItem{
			Name:       it.Name,
			Image:      it.Image,
			Quantity:   it.Quantity,
			PriceCents: it.PriceCents(),
		})
	}
	return out
}

func emailAddress(a ShippingAddress) email.Address {
	return email.Address{
		FullName: a.FullName,
		Address:  a.Address,
		City:     a.City,
		ZipCode:  a.Zip(),
		Country:  a.Country,
		Phone:    a.Phone,
	}
}
