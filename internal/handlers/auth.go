package handlers

import (
	"context"
	"crypto/subtle"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/oklog/ulid/v2"

	"github.com/roibeauty/storefront/internal/auth"
	"github.com/roibeauty/storefront/storage/db"
)

const (
	verificationTTL = 24 * time.Hour
	resetTTL        = time.Hour
)

// AccountMailer sends the emails tied to the account lifecycle.
type AccountMailer interface {
	SendWelcome(ctx context.Context, to, name string) error
	SendVerificationEmail(ctx context.Context, to, name, userID, token string) error
	SendPasswordReset(ctx context.Context, to, name, token string) error
}

type AuthHandler struct {
	queries *db.Queries
	tokens  *auth.TokenService
	mailer  AccountMailer
}

func NewAuthHandler(queries *db.Queries, tokens *auth.TokenService, mailer AccountMailer) *AuthHandler {
	return &AuthHandler{queries: queries, tokens: tokens, mailer: mailer}
}

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// accountSummary is the user block returned by register and login.
type accountSummary struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Role       string `json:"role"`
	IsVerified bool   `json:"isVerified"`
}

func summarize(u db.User) accountSummary {
	return accountSummary{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role, IsVerified: u.IsVerified}
}

func normalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func (h *AuthHandler) Test(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"success":   true,
		"message":   "Auth routes are working!",
		"timestamp": timestamp(),
	})
}

func (h *AuthHandler) Register(c echo.Context) error {
	ctx := c.Request().Context()

	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Email = normalizeEmail(req.Email)

	if req.Name == "" || req.Email == "" || req.Password == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Please provide name, email, and password")
	}
	if len(req.Password) < auth.MinPasswordLength {
		return echo.NewHTTPError(http.StatusBadRequest, "Password must be at least 6 characters long")
	}

	if _, err := h.queries.GetUserByEmail(ctx, req.Email); err == nil {
		return echo.NewHTTPError(http.StatusBadRequest, "User already exists with this email")
	} else if !errors.Is(err, sql.ErrNoRows) {
		slog.Error("failed to look up user by email", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Error registering user")
	}

	passwordHash, err := auth.HashPassword(req.Password)
	if err != nil {
		slog.Error("failed to hash password", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Error registering user")
	}
	verifyToken, verifyHash, err := auth.NewSecretToken()
	if err != nil {
		slog.Error("failed to create verification token", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Error registering user")
	}

	userID := ulid.Make().String()
	err = h.queries.CreateUser(ctx, db.CreateUserParams{
		ID:                    userID,
		Name:                  req.Name,
		Email:                 req.Email,
		PasswordHash:          passwordHash,
		Role:                  auth.RoleUser,
		VerificationTokenHash: sql.NullString{String: verifyHash, Valid: true},
		VerificationExpiresAt: sql.NullTime{Time: time.Now().Add(verificationTTL).UTC(), Valid: true},
	})
	if err != nil {
		if isUniqueViolation(err) {
			return echo.NewHTTPError(http.StatusBadRequest, "User already exists with this email")
		}
		slog.Error("failed to create user", "error", err, "email", req.Email)
		return echo.NewHTTPError(http.StatusInternalServerError, "Error registering user")
	}

	user, err := h.queries.GetUser(ctx, userID)
	if err != nil {
		slog.Error("failed to load new user", "error", err, "user_id", userID)
		return echo.NewHTTPError(http.StatusInternalServerError, "Error registering user")
	}

	token, err := h.tokens.Issue(user)
	if err != nil {
		slog.Error("failed to issue token", "error", err, "user_id", userID)
		return echo.NewHTTPError(http.StatusInternalServerError, "Error registering user")
	}

	if err := h.mailer.SendWelcome(ctx, user.Email, user.Name); err != nil {
		slog.Error("failed to send welcome email", "error", err, "user_id", userID)
	}
	if err := h.mailer.SendVerificationEmail(ctx, user.Email, user.Name, user.ID, verifyToken); err != nil {
		slog.Error("failed to send verification email", "error", err, "user_id", userID)
	}

	slog.Info("user registered", "user_id", userID)
	return c.JSON(http.StatusCreated, echo.Map{
		"success": true,
		"message": "User registered successfully!",
		"data":    summarize(user),
		"token":   token,
	})
}

// VerifyEmail consumes the link sent after registration.
func (h *AuthHandler) VerifyEmail(c echo.Context) error {
	ctx := c.Request().Context()
	token := c.QueryParam("token")
	userID := c.QueryParam("userId")
	if token == "" || userID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid or expired verification link")
	}

	user, err := h.queries.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid or expired verification link")
		}
		slog.Error("failed to load user for verification", "error", err, "user_id", userID)
		return echo.NewHTTPError(http.StatusInternalServerError, "Server error. Please try again.")
	}
	if user.IsVerified {
		return respond(c, http.StatusOK, "Email already verified", nil)
	}

	hash := auth.HashSecretToken(token)
	if !user.VerificationTokenHash.Valid ||
		subtle.ConstantTimeCompare([]byte(hash), []byte(user.VerificationTokenHash.String)) != 1 ||
		!user.VerificationExpiresAt.Valid || time.Now().After(user.VerificationExpiresAt.Time) {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid or expired verification link")
	}

	if err := h.queries.VerifyUserEmail(ctx, user.ID); err != nil {
		slog.Error("failed to verify user email", "error", err, "user_id", user.ID)
		return echo.NewHTTPError(http.StatusInternalServerError, "Server error. Please try again.")
	}
	return respond(c, http.StatusOK, "Email verified successfully!", nil)
}

func (h *AuthHandler) Login(c echo.Context) error {
	ctx := c.Request().Context()

	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	req.Email = normalizeEmail(req.Email)
	if req.Email == "" || req.Password == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Please provide email and password")
	}

	user, err := h.queries.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return echo.NewHTTPError(http.StatusUnauthorized, "Invalid email or password")
		}
		slog.Error("failed to look up user for login", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Error during login")
	}
	if !auth.CheckPassword(user.PasswordHash, req.Password) {
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid email or password")
	}

	if err := h.queries.UpdateUserLastLogin(ctx, user.ID); err != nil {
		slog.Warn("failed to record last login", "error", err, "user_id", user.ID)
	}

	token, err := h.tokens.Issue(user)
	if err != nil {
		slog.Error("failed to issue token", "error", err, "user_id", user.ID)
		return echo.NewHTTPError(http.StatusInternalServerError, "Error during login")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "Login successful!",
		"data":    summarize(user),
		"token":   token,
	})
}

// Me returns the caller's profile. Requires RequireAuth.
func (h *AuthHandler) Me(c echo.Context) error {
	user, ok := auth.GetDBUser(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "No token provided")
	}
	return respondData(c, userToResponse(*user))
}

type ProfileRequest struct {
	Name            string           `json:"name"`
	ShippingAddress *AddressResponse `json:"shippingAddress"`
	Preferences     *struct {
		EmailNotifications *bool `json:"emailNotifications"`
		MarketingEmails    *bool `json:"marketingEmails"`
	} `json:"preferences"`
}

// UpdateProfile replaces the shipping address when one is sent and merges
// the preference flags that are present.
func (h *AuthHandler) UpdateProfile(c echo.Context) error {
	ctx := c.Request().Context()
	user, ok := auth.GetDBUser(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "No token provided")
	}

	var req ProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	params := db.UpdateUserProfileParams{
		Name:               user.Name,
		ShippingFullName:   user.ShippingFullName,
		ShippingAddress:    user.ShippingAddress,
		ShippingCity:       user.ShippingCity,
		ShippingZipCode:    user.ShippingZipCode,
		ShippingCountry:    user.ShippingCountry,
		ShippingPhone:      user.ShippingPhone,
		EmailNotifications: user.EmailNotifications,
		MarketingEmails:    user.MarketingEmails,
		ID:                 user.ID,
	}
	if name := strings.TrimSpace(req.Name); name != "" {
		params.Name = name
	}
	if a := req.ShippingAddress; a != nil {
		params.ShippingFullName = a.FullName
		params.ShippingAddress = a.Address
		params.ShippingCity = a.City
		params.ShippingZipCode = a.ZipCode
		params.ShippingCountry = a.Country
		params.ShippingPhone = a.Phone
	}
	if p := req.Preferences; p != nil {
		if p.EmailNotifications != nil {
			params.EmailNotifications = *p.EmailNotifications
		}
		if p.MarketingEmails != nil {
			params.MarketingEmails = *p.MarketingEmails
		}
	}

	n, err := h.queries.UpdateUserProfile(ctx, params)
	if err != nil {
		slog.Error("failed to update profile", "error", err, "user_id", user.ID)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to update profile")
	}
	if n == 0 {
		return echo.NewHTTPError(http.StatusNotFound, "User not found")
	}

	updated, err := h.queries.GetUser(ctx, user.ID)
	if err != nil {
		slog.Error("failed to reload profile", "error", err, "user_id", user.ID)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to update profile")
	}
	return respond(c, http.StatusOK, "Profile updated successfully", userToResponse(updated))
}

func (h *AuthHandler) ForgotPassword(c echo.Context) error {
	ctx := c.Request().Context()

	var req struct {
		Email string `json:"email"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	req.Email = normalizeEmail(req.Email)
	if req.Email == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Email is required")
	}

	user, err := h.queries.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			// Unknown addresses get the same answer as known ones.
			return respond(c, http.StatusOK, "If an account exists with this email, password reset instructions will be sent.", nil)
		}
		slog.Error("failed to look up user for reset", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Server error. Please try again.")
	}

	token, hash, err := auth.NewSecretToken()
	if err != nil {
		slog.Error("failed to create reset token", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Server error. Please try again.")
	}
	if err := h.queries.SetUserResetToken(ctx, db.SetUserResetTokenParams{
		ResetTokenHash: sql.NullString{String: hash, Valid: true},
		ResetExpiresAt: sql.NullTime{Time: time.Now().Add(resetTTL).UTC(), Valid: true},
		ID:             user.ID,
	}); err != nil {
		slog.Error("failed to store reset token", "error", err, "user_id", user.ID)
		return echo.NewHTTPError(http.StatusInternalServerError, "Server error. Please try again.")
	}

	if err := h.mailer.SendPasswordReset(ctx, user.Email, user.Name, token); err != nil {
		slog.Error("failed to send password reset email", "error", err, "user_id", user.ID)
		return echo.NewHTTPError(http.StatusInternalServerError, "Server error. Please try again.")
	}

	slog.Info("password reset requested", "user_id", user.ID)
	return respond(c, http.StatusOK, "Password reset instructions have been sent to your email.", nil)
}

func (h *AuthHandler) ResetPassword(c echo.Context) error {
	ctx := c.Request().Context()

	var req struct {
		Password string `json:"password"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if len(req.Password) < auth.MinPasswordLength {
		return echo.NewHTTPError(http.StatusBadRequest, "Password must be at least 6 characters")
	}

	const invalidToken = "Invalid or expired reset token. Please request a new password reset."
	token := c.Param("token")
	if token == "" {
		return echo.NewHTTPError(http.StatusBadRequest, invalidToken)
	}

	user, err := h.queries.GetUserByResetTokenHash(ctx, sql.NullString{String: auth.HashSecretToken(token), Valid: true})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return echo.NewHTTPError(http.StatusBadRequest, invalidToken)
		}
		slog.Error("failed to look up reset token", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Server error. Please try again.")
	}
	if !user.ResetExpiresAt.Valid || time.Now().After(user.ResetExpiresAt.Time) {
		return echo.NewHTTPError(http.StatusBadRequest, invalidToken)
	}

	passwordHash, err := auth.HashPassword(req.Password)
	if err != nil {
		slog.Error("failed to hash password", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Server error. Please try again.")
	}
	if err := h.queries.ResetUserPassword(ctx, db.ResetUserPasswordParams{PasswordHash: passwordHash, ID: user.ID}); err != nil {
		slog.Error("failed to reset password", "error", err, "user_id", user.ID)
		return echo.NewHTTPError(http.StatusInternalServerError, "Server error. Please try again.")
	}

	slog.Info("password reset", "user_id", user.ID)
	return respond(c, http.StatusOK, "Password has been reset successfully! You can now log in with your new password.", nil)
}
