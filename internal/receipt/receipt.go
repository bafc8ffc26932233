// Package receipt renders paid orders as printable PDF receipts.
package receipt

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/shopspring/decimal"
	qrcode "github.com/skip2/go-qrcode"
)

const (
	shopName    = "Roi Beauty Essence"
	shopTagline = "Premium Skincare Solutions"
	qrImageName = "order-status-qr"
)

// brand green, #4a7c59
var brand = [3]int{74, 124, 89}

type Line struct {
	Name      string
	Quantity  int64
	UnitCents int64
}

func (l Line) TotalCents() int64 { return l.UnitCents * l.Quantity }

type Receipt struct {
	OrderID     string
	OrderNumber string
	Email       string
	PaidAt      time.Time
	PaymentID   string
	Currency    string
	Lines       []Line
	TotalCents  int64
	ShipTo      []string
	StatusURL   string
}

// Render writes the receipt as a single-page A4 PDF.
func Render(w io.Writer, r Receipt) error {
	if r.OrderID == "" {
		return errors.New("receipt requires an order id")
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Receipt "+r.OrderID, true)
	pdf.SetAuthor(shopName, true)
	pdf.SetMargins(18, 18, 18)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	money := func(cents int64) string { return tr(formatMoney(cents, r.Currency)) }

	pdf.SetFillColor(brand[0], brand[1], brand[2])
	pdf.Rect(0, 0, 210, 34, "F")
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 20)
	pdf.SetXY(18, 9)
	pdf.CellFormat(0, 9, shopName, "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetX(18)
	pdf.CellFormat(0, 6, shopTagline, "", 1, "L", false, 0, "")

	pdf.SetTextColor(40, 40, 40)
	pdf.SetY(44)
	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 8, "Payment Receipt", "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	details := [][2]string{
		{"Order", r.OrderID},
		{"Order number", r.OrderNumber},
		{"Email", r.Email},
	}
	if !r.PaidAt.IsZero() {
		details = append(details, [2]string{"Paid", r.PaidAt.Format("January 2, 2006 15:04 MST")})
	}
	if r.PaymentID != "" {
		details = append(details, [2]string{"Payment", r.PaymentID})
	}
	for _, d := range details {
		if d[1] == "" {
			continue
		}
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(32, 6, d[0], "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		pdf.CellFormat(0, 6, tr(d[1]), "", 1, "L", false, 0, "")
	}

	if r.StatusURL != "" {
		png, err := qrcode.Encode(r.StatusURL, qrcode.Medium, 256)
		if err != nil {
			return fmt.Errorf("failed to encode order QR code: %w", err)
		}
		opts := gofpdf.ImageOptions{ImageType: "PNG"}
		pdf.RegisterImageOptionsReader(qrImageName, opts, bytes.NewReader(png))
		pdf.ImageOptions(qrImageName, 160, 42, 32, 32, false, opts, 0, "")
	}

	pdf.Ln(6)
	pdf.SetFillColor(240, 245, 241)
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(96, 8, "Item", "B", 0, "L", true, 0, "")
	pdf.CellFormat(18, 8, "Qty", "B", 0, "C", true, 0, "")
	pdf.CellFormat(30, 8, "Price", "B", 0, "R", true, 0, "")
	pdf.CellFormat(30, 8, "Total", "B", 1, "R", true, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	for _, l := range r.Lines {
		pdf.CellFormat(96, 7, tr(truncate(l.Name, 52)), "", 0, "L", false, 0, "")
		pdf.CellFormat(18, 7, fmt.Sprintf("%d", l.Quantity), "", 0, "C", false, 0, "")
		pdf.CellFormat(30, 7, money(l.UnitCents), "", 0, "R", false, 0, "")
		pdf.CellFormat(30, 7, money(l.TotalCents()), "", 1, "R", false, 0, "")
	}

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(144, 9, "Total paid", "T", 0, "R", false, 0, "")
	pdf.CellFormat(30, 9, money(r.TotalCents), "T", 1, "R", false, 0, "")

	if len(r.ShipTo) > 0 {
		pdf.Ln(6)
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(0, 6, "Ship to", "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		for _, line := range r.ShipTo {
			pdf.CellFormat(0, 5, tr(line), "", 1, "L", false, 0, "")
		}
	}

	pdf.SetY(-30)
	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.CellFormat(0, 5, "Thank you for shopping with "+shopName+".", "", 1, "C", false, 0, "")
	if r.StatusURL != "" {
		pdf.CellFormat(0, 5, "Scan the code to check your order status.", "", 1, "C", false, 0, "")
	}

	if err := pdf.Error(); err != nil {
		return fmt.Errorf("failed to build receipt: %w", err)
	}
	return pdf.Output(w)
}

func formatMoney(cents int64, currency string) string {
	amount := decimal.New(cents, -2).StringFixed(2)
	switch strings.ToLower(currency) {
	case "", "eur":
		return "€" + amount
	default:
		return strings.ToUpper(currency) + " " + amount
	}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
