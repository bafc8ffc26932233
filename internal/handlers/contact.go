package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/oklog/ulid/v2"

	"github.com/roibeauty/storefront/internal/email"
	"github.com/roibeauty/storefront/storage/db"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type ContactMailer interface {
	SendContactConfirmation(ctx context.Context, data *email.ContactData) error
	SendContactAdminNotification(ctx context.Context, data *email.ContactData) error
}

type ContactHandler struct {
	queries *db.Queries
	mailer  ContactMailer
}

func NewContactHandler(queries *db.Queries, mailer ContactMailer) *ContactHandler {
	return &ContactHandler{queries: queries, mailer: mailer}
}

type ContactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// Submit stores a contact form message and emails both parties. The message
// is kept even when mail delivery fails.
func (h *ContactHandler) Submit(c echo.Context) error {
	ctx := c.Request().Context()

	var req ContactRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	req.Message = strings.TrimSpace(req.Message)

	if req.Name == "" || req.Email == "" || req.Message == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Please provide name, email, and message")
	}
	if !emailPattern.MatchString(req.Email) {
		return echo.NewHTTPError(http.StatusBadRequest, "Please provide a valid email address")
	}

	ip := c.RealIP()
	if err := h.queries.CreateContactMessage(ctx, db.CreateContactMessageParams{
		ID:        ulid.Make().String(),
		Name:      req.Name,
		Email:     req.Email,
		Message:   req.Message,
		IpAddress: nullString(ip),
	}); err != nil {
		slog.Error("failed to store contact message", "error", err, "email", req.Email)
		return echo.NewHTTPError(http.StatusInternalServerError, "Server error. Please try again.")
	}

	data := &email.ContactData{
		Name:        req.Name,
		Email:       req.Email,
		Message:     req.Message,
		IPAddress:   ip,
		SubmittedAt: time.Now().Format("January 2, 2006 at 3:04 PM"),
	}
	if err := h.mailer.SendContactConfirmation(ctx, data); err != nil {
		slog.Error("failed to send contact confirmation", "error", err, "email", req.Email)
	}
	if err := h.mailer.SendContactAdminNotification(ctx, data); err != nil {
		slog.Error("failed to send contact notification", "error", err)
	}

	slog.Info("contact message received", "email", req.Email)
	return respond(c, http.StatusOK, "Your message has been sent successfully! We will get back to you soon.", nil)
}
