package email

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"html/template"
	"log/slog"
	"net/smtp"
	"net/url"
	"strings"

	"github.com/oklog/ulid/v2"
	"github.com/roibeauty/storefront/storage/db"
	"github.com/shopspring/decimal"
)

// Email types recorded in email_history.
const (
	TypeOrderConfirmation  = "order_confirmation"
	TypeOrderStatus        = "order_status"
	TypeVerification       = "verification"
	TypePasswordReset      = "password_reset"
	TypeWelcome            = "welcome"
	TypeAdminOrder         = "admin_order"
	TypeContactConfirm     = "contact_confirmation"
	TypeContactAdminNotice = "contact_admin"
)

// Config carries the SMTP settings and the addresses used by the service.
type Config struct {
	Host        string
	Port        int
	Username    string
	Password    string
	From        string
	AdminEmail  string
	FrontendURL string
}

// Service sends transactional email over SMTP and logs every send.
type Service struct {
	host        string
	port        int
	username    string
	password    string
	from        string
	adminEmail  string
	frontendURL string
	queries     *db.Queries

	sendMail func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

// NewService creates a new email service. queries may be nil, in which case
// sends are not logged.
func NewService(cfg Config, queries *db.Queries) *Service {
	port := cfg.Port
	if port == 0 {
		port = 587
	}
	admin := cfg.AdminEmail
	if admin == "" {
		admin = cfg.From
	}
	frontend := strings.TrimRight(cfg.FrontendURL, "/")
	if frontend == "" {
		frontend = "http://localhost:3000"
	}

	return &Service{
		host:        cfg.Host,
		port:        port,
		username:    cfg.Username,
		password:    cfg.Password,
		from:        cfg.From,
		adminEmail:  admin,
		frontendURL: frontend,
		queries:     queries,
		sendMail:    smtp.SendMail,
	}
}

// Configured reports whether SMTP credentials are present.
func (s *Service) Configured() bool {
	return s.host != "" && s.password != "" && s.from != ""
}

// Email represents an email message
type Email struct {
	To      []string
	Subject string
	Body    string
	IsHTML  bool
	ReplyTo string
}

// Send delivers an email over SMTP.
func (s *Service) Send(email *Email) error {
	if !s.Configured() {
		return fmt.Errorf("email service not configured: missing SMTP_HOST, SMTP_PASS, or EMAIL_FROM")
	}
	if len(email.To) == 0 || email.To[0] == "" {
		return fmt.Errorf("email has no recipient")
	}

	var msg bytes.Buffer
	fmt.Fprintf(&msg, "From: %s\r\n", s.from)
	fmt.Fprintf(&msg, "To: %s\r\n", strings.Join(email.To, ", "))
	if email.ReplyTo != "" {
		fmt.Fprintf(&msg, "Reply-To: %s\r\n", email.ReplyTo)
	}
	fmt.Fprintf(&msg, "Subject: %s\r\n", email.Subject)
	if email.IsHTML {
		msg.WriteString("MIME-Version: 1.0\r\n")
		msg.WriteString("Content-Type: text/html; charset=\"utf-8\"\r\n")
	}
	msg.WriteString("\r\n")
	msg.WriteString(email.Body)

	auth := smtp.PlainAuth("", s.username, s.password, s.host)
	addr := fmt.Sprintf("%s:%d", s.host, s.port)
	if err := s.sendMail(addr, auth, s.from, email.To, msg.Bytes()); err != nil {
		slog.Error("failed to send email", "error", err, "to", email.To)
		return fmt.Errorf("failed to send email: %w", err)
	}

	slog.Info("email sent successfully", "to", email.To, "subject", email.Subject)
	return nil
}

// LogEmailSend logs an email send to the database
func (s *Service) LogEmailSend(ctx context.Context, recipientEmail, emailType, subject, templateName string, metadata map[string]any) error {
	if s.queries == nil {
		return nil
	}

	var metadataJSON sql.NullString
	if metadata != nil {
		b, err := json.Marshal(metadata)
		if err != nil {
			slog.Warn("failed to marshal email metadata", "error", err)
		} else {
			metadataJSON = sql.NullString{String: string(b), Valid: true}
		}
	}

	err := s.queries.CreateEmailHistory(ctx, db.CreateEmailHistoryParams{
		ID:             ulid.Make().String(),
		RecipientEmail: recipientEmail,
		EmailType:      emailType,
		Subject:        subject,
		TemplateName:   templateName,
		Metadata:       metadataJSON,
	})
	if err != nil {
		slog.Error("failed to log email send", "error", err, "email", recipientEmail, "type", emailType)
		return fmt.Errorf("failed to log email: %w", err)
	}
	return nil
}

// deliver sends a rendered message and records it in email_history.
func (s *Service) deliver(ctx context.Context, msg *Email, emailType, templateName string, metadata map[string]any) error {
	if err := s.Send(msg); err != nil {
		return err
	}
	// A logging failure never turns a delivered email into an error.
	_ = s.LogEmailSend(ctx, msg.To[0], emailType, msg.Subject, templateName, metadata)
	return nil
}

// FormatEUR converts cents to a euro string (e.g., 1234 -> "€12.34")
func FormatEUR(cents int64) string {
	return "€" + decimal.New(cents, -2).StringFixed(2)
}

var funcs = template.FuncMap{
	"FormatEUR": FormatEUR,
}

func renderContent(name, body string, data any) (string, error) {
	tmpl := template.Must(template.New(name).Funcs(funcs).Parse(body))

	var content bytes.Buffer
	if err := tmpl.Execute(&content, data); err != nil {
		return "", fmt.Errorf("failed to render %s email content: %w", name, err)
	}
	return content.String(), nil
}

func render(name, body, subject string, data any) (string, error) {
	content, err := renderContent(name, body, data)
	if err != nil {
		return "", err
	}
	return WrapEmailContent(content, subject)
}

// OrderData contains all the data needed for order emails
type OrderData struct {
	OrderID         string
	OrderNumber     string
	CustomerName    string
	CustomerEmail   string
	OrderDate       string
	Items           []OrderItem
	TotalCents      int64
	ShippingAddress Address
	PaymentID       string
	ReceiptURL      string
	Status          string
}

// Reference is the number shown to customers, falling back to the order id.
func (d *OrderData) Reference() string {
	if d.OrderNumber != "" {
		return d.OrderNumber
	}
	if d.OrderID != "" {
		return d.OrderID
	}
	return "N/A"
}

// OrderItem represents a single line in an order
type OrderItem struct {
	Name       string
	Image      string
	Quantity   int64
	PriceCents int64
}

func (i OrderItem) LineTotalCents() int64 {
	return i.PriceCents * i.Quantity
}

// Address is a shipping address as captured at checkout.
type Address struct {
	FullName string
	Address  string
	City     string
	ZipCode  string
	Country  string
	Phone    string
}

func (a Address) Empty() bool {
	return a.FullName == "" && a.Address == "" && a.City == "" && a.ZipCode == "" && a.Country == ""
}

func orderConfirmationSubject(d *OrderData) string {
	return fmt.Sprintf("Order Confirmation - #%s", d.Reference())
}

// RenderOrderConfirmation renders the customer order confirmation email.
func RenderOrderConfirmation(data *OrderData) (string, error) {
	return render("order_confirmation", orderConfirmationContentTemplate, orderConfirmationSubject(data), data)
}

// SendOrderConfirmation sends an order confirmation email to the customer
func (s *Service) SendOrderConfirmation(ctx context.Context, data *OrderData) error {
	html, err := RenderOrderConfirmation(data)
	if err != nil {
		return err
	}
	msg := &Email{
		To:      []string{data.CustomerEmail},
		Subject: orderConfirmationSubject(data),
		Body:    html,
		IsHTML:  true,
	}
	return s.deliver(ctx, msg, TypeOrderConfirmation, "order_confirmation", map[string]any{
		"order_id": data.OrderID,
		"total":    data.TotalCents,
	})
}

type statusUpdateView struct {
	*OrderData
	Message string
	Color   string
}

var statusMessages = map[string]string{
	"processing": "is being processed",
	"shipped":    "has been shipped",
	"delivered":  "has been delivered",
	"cancelled":  "has been cancelled",
}

var statusColors = map[string]string{
	"processing": "#3498db",
	"shipped":    "#2ecc71",
	"delivered":  "#27ae60",
	"cancelled":  "#e74c3c",
}

// StatusMessage returns the customer-facing phrase for an order status.
func StatusMessage(status string) string {
	if m, ok := statusMessages[status]; ok {
		return m
	}
	return "status has been updated"
}

// RenderOrderStatusUpdate renders the order status update email.
func RenderOrderStatusUpdate(data *OrderData, status string) (string, error) {
	color, ok := statusColors[status]
	if !ok {
		color = brandColor
	}
	d := *data
	d.Status = status
	view := statusUpdateView{OrderData: &d, Message: StatusMessage(status), Color: color}
	return render("order_status", orderStatusContentTemplate, fmt.Sprintf("Order Update - #%s", data.Reference()), view)
}

// SendOrderStatusUpdate tells the customer their order moved to status.
func (s *Service) SendOrderStatusUpdate(ctx context.Context, data *OrderData, status string) error {
	html, err := RenderOrderStatusUpdate(data, status)
	if err != nil {
		return err
	}
	msg := &Email{
		To:      []string{data.CustomerEmail},
		Subject: fmt.Sprintf("Order Update - #%s", data.Reference()),
		Body:    html,
		IsHTML:  true,
	}
	return s.deliver(ctx, msg, TypeOrderStatus, "order_status", map[string]any{
		"order_id": data.OrderID,
		"status":   status,
	})
}

// AccountData is used by the verification, reset and welcome emails.
type AccountData struct {
	Name string
	Link string
}

// VerificationLink builds the link a user follows to verify their address.
func (s *Service) VerificationLink(userID, token string) string {
	q := url.Values{}
	q.Set("token", token)
	q.Set("userId", userID)
	return s.frontendURL + "/verify-email?" + q.Encode()
}

// ResetLink builds the password reset link for a plaintext token.
func (s *Service) ResetLink(token string) string {
	return s.frontendURL + "/reset-password/" + url.PathEscape(token)
}

func RenderVerification(data *AccountData) (string, error) {
	return render("verification", verificationContentTemplate, "Verify Your RoiBeauty Account", data)
}

// SendVerificationEmail sends the address verification link.
func (s *Service) SendVerificationEmail(ctx context.Context, to, name, userID, token string) error {
	html, err := RenderVerification(&AccountData{Name: name, Link: s.VerificationLink(userID, token)})
	if err != nil {
		return err
	}
	msg := &Email{To: []string{to}, Subject: "Verify Your RoiBeauty Account", Body: html, IsHTML: true}
	return s.deliver(ctx, msg, TypeVerification, "verification", map[string]any{"user_id": userID})
}

func RenderPasswordReset(data *AccountData) (string, error) {
	return render("password_reset", passwordResetContentTemplate, "Reset Your Password - RoiBeauty", data)
}

// SendPasswordReset sends the reset link for a freshly issued token.
func (s *Service) SendPasswordReset(ctx context.Context, to, name, token string) error {
	html, err := RenderPasswordReset(&AccountData{Name: name, Link: s.ResetLink(token)})
	if err != nil {
		return err
	}
	msg := &Email{To: []string{to}, Subject: "Reset Your Password - RoiBeauty", Body: html, IsHTML: true}
	return s.deliver(ctx, msg, TypePasswordReset, "password_reset", nil)
}

func RenderWelcome(data *AccountData) (string, error) {
	return render("welcome", welcomeContentTemplate, "Welcome to RoiBeauty!", data)
}

func (s *Service) SendWelcome(ctx context.Context, to, name string) error {
	html, err := RenderWelcome(&AccountData{Name: name, Link: s.frontendURL})
	if err != nil {
		return err
	}
	msg := &Email{To: []string{to}, Subject: "Welcome to RoiBeauty!", Body: html, IsHTML: true}
	return s.deliver(ctx, msg, TypeWelcome, "welcome", nil)
}

// RenderAdminOrderNotification renders the new-order email sent to the shop.
func RenderAdminOrderNotification(data *OrderData) (string, error) {
	return render("admin_order", adminOrderContentTemplate, fmt.Sprintf("New Order Received - #%s", data.Reference()), data)
}

// SendAdminOrderNotification notifies the shop about a paid order.
func (s *Service) SendAdminOrderNotification(ctx context.Context, data *OrderData) error {
	html, err := RenderAdminOrderNotification(data)
	if err != nil {
		return err
	}
	msg := &Email{
		To:      []string{s.adminEmail},
		Subject: fmt.Sprintf("New Order Received - #%s", data.Reference()),
		Body:    html,
		IsHTML:  true,
	}
	if data.CustomerEmail != "" {
		msg.ReplyTo = data.CustomerEmail
	}
	return s.deliver(ctx, msg, TypeAdminOrder, "admin_order", map[string]any{"order_id": data.OrderID})
}

// ContactData contains a contact form submission.
type ContactData struct {
	Name        string
	Email       string
	Message     string
	IPAddress   string
	SubmittedAt string
}

func RenderContactConfirmation(data *ContactData) (string, error) {
	return render("contact_confirmation", contactConfirmationContentTemplate, "Thank you for contacting Roi Beauty Essence!", data)
}

// SendContactConfirmation acknowledges a contact form submission to its sender.
func (s *Service) SendContactConfirmation(ctx context.Context, data *ContactData) error {
	html, err := RenderContactConfirmation(data)
	if err != nil {
		return err
	}
	msg := &Email{To: []string{data.Email}, Subject: "Thank you for contacting Roi Beauty Essence!", Body: html, IsHTML: true}
	return s.deliver(ctx, msg, TypeContactConfirm, "contact_confirmation", nil)
}

func RenderContactAdminNotification(data *ContactData) (string, error) {
	return render("contact_admin", contactAdminContentTemplate, "New Contact Form Submission", data)
}

// SendContactAdminNotification forwards a contact form submission to the shop.
func (s *Service) SendContactAdminNotification(ctx context.Context, data *ContactData) error {
	html, err := RenderContactAdminNotification(data)
	if err != nil {
		return err
	}
	msg := &Email{
		To:      []string{s.adminEmail},
		Subject: "New Contact Form Submission",
		Body:    html,
		IsHTML:  true,
		ReplyTo: data.Email,
	}
	return s.deliver(ctx, msg, TypeContactAdminNotice, "contact_admin", map[string]any{"from": data.Email})
}
