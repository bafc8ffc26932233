package service

import (
	"errors"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Environment    string
	Port           string
	BaseURL        string
	FrontendURL    string
	DBPath         string
	StaticDir      string
	AllowedOrigins []string

	JWT struct {
		Secret string
		Expiry time.Duration
	}

	Stripe struct {
		PublishableKey string
		SecretKey      string
		WebhookSecret  string
		Currency       string
	}

	Email struct {
		SMTPHost   string
		SMTPPort   string
		SMTPUser   string
		SMTPPass   string
		From       string
		AdminEmail string
	}

	RateLimit struct {
		GlobalRequests  int
		PaymentRequests int
		Window          time.Duration
	}

	Jobs struct {
		ReconcileInterval time.Duration
	}
}

// LoadConfig reads configuration from the environment. A .env file in the
// working directory is loaded first when present; real environment
// variables win over it.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Warn("failed to load .env file", "error", err)
	}

	config := &Config{
		Environment: getEnv("ENVIRONMENT", "development"),
		Port:        getEnv("PORT", "3000"),
		BaseURL:     getEnv("BASE_URL", "http://localhost:3000"),
		DBPath:      getEnv("DB_PATH", "./db/roibeauty.db"),
		StaticDir:   getEnv("STATIC_DIR", "public"),
	}
	config.FrontendURL = getEnv("FRONTEND_URL", config.BaseURL)
	config.AllowedOrigins = splitList(getEnv("ALLOWED_ORIGINS",
		"http://localhost:3000,http://127.0.0.1:5500,http://localhost:5500,https://roibeautyessence.netlify.app"))

	// JWT
	config.JWT.Secret = os.Getenv("JWT_SECRET")
	if config.JWT.Secret == "" {
		if !config.IsDevelopment() {
			return nil, errors.New("JWT_SECRET must be set outside development")
		}
		slog.Warn("JWT_SECRET not set, using the development secret")
		config.JWT.Secret = "development-secret"
	}
	config.JWT.Expiry = getDuration("JWT_EXPIRY", 30*24*time.Hour)

	// Stripe
	config.Stripe.PublishableKey = getEnv("STRIPE_PUBLISHABLE_KEY", "")
	config.Stripe.SecretKey = getEnv("STRIPE_SECRET_KEY", "")
	config.Stripe.WebhookSecret = getEnv("STRIPE_WEBHOOK_SECRET", "")
	config.Stripe.Currency = strings.ToLower(getEnv("STRIPE_CURRENCY", "eur"))

	// Email
	config.Email.SMTPHost = getEnv("SMTP_HOST", "")
	config.Email.SMTPPort = getEnv("SMTP_PORT", "587")
	config.Email.SMTPUser = getEnv("SMTP_USER", "")
	config.Email.SMTPPass = getEnv("SMTP_PASS", "")
	config.Email.From = getEnv("EMAIL_FROM", "Roi Beauty Essence <noreply@roibeautyessence.com>")
	config.Email.AdminEmail = getEnv("ADMIN_EMAIL", "scentsbyroi@gmail.com")

	// Rate limiting
	config.RateLimit.GlobalRequests = getInt("RATE_LIMIT_REQUESTS", 100)
	config.RateLimit.PaymentRequests = getInt("RATE_LIMIT_PAYMENT_REQUESTS", 10)
	config.RateLimit.Window = getDuration("RATE_LIMIT_WINDOW", 15*time.Minute)

	// Jobs
	config.Jobs.ReconcileInterval = getDuration("RECONCILE_INTERVAL", 10*time.Minute)

	return config, nil
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getInt(key string, defaultValue int) int {
	if n, err := strconv.Atoi(getEnv(key, "")); err == nil && n > 0 {
		return n
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	if d, err := time.ParseDuration(getEnv(key, "")); err == nil && d > 0 {
		return d
	}
	return defaultValue
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
