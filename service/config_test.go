package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("ENVIRONMENT", "")
	t.Setenv("JWT_SECRET", "")
	t.Setenv("PORT", "")
	t.Setenv("STRIPE_CURRENCY", "")
	t.Setenv("RATE_LIMIT_WINDOW", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, "eur", cfg.Stripe.Currency)
	assert.Equal(t, 15*time.Minute, cfg.RateLimit.Window)
	assert.NotEmpty(t, cfg.AllowedOrigins)
	assert.Equal(t, "development-secret", cfg.JWT.Secret)
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("PORT", "8080")
	t.Setenv("STRIPE_CURRENCY", "EUR")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example, https://b.example ,")
	t.Setenv("JWT_EXPIRY", "2h")
	t.Setenv("RATE_LIMIT_PAYMENT_REQUESTS", "not-a-number")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "eur", cfg.Stripe.Currency)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins)
	assert.Equal(t, 2*time.Hour, cfg.JWT.Expiry)
	assert.Equal(t, 10, cfg.RateLimit.PaymentRequests)
	assert.Equal(t, "s3cret", cfg.JWT.Secret)
	assert.False(t, cfg.IsDevelopment())
}

func TestLoadConfig_RequiresJWTSecretOutsideDevelopment(t *testing.T) {
	for _, env := range []string{"production", "staging", "test"} {
		t.Run(env, func(t *testing.T) {
			t.Setenv("ENVIRONMENT", env)
			t.Setenv("JWT_SECRET", "")

			_, err := LoadConfig()
			require.Error(t, err)
			assert.Contains(t, err.Error(), "JWT_SECRET")
		})
	}
}
