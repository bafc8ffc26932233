package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	stripego "github.com/stripe/stripe-go/v80"
	"github.com/stretchr/testify/require"

	"github.com/roibeauty/storefront/internal/email"
	"github.com/roibeauty/storefront/internal/stripe"
	"github.com/roibeauty/storefront/storage"
)

type stubIntents struct {
	mu      sync.Mutex
	seq     int
	intents map[string]*stripego.PaymentIntent
}

func (s *stubIntents) CreatePaymentIntent(_ context.Context, in stripe.IntentParams) (*stripego.PaymentIntent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	id := fmt.Sprintf("pi_route_%d", s.seq)
	s.intents[id] = &stripego.PaymentIntent{
		ID:           id,
		ClientSecret: id + "_secret",
		Amount:       in.AmountCents,
		Currency:     stripego.Currency(in.Currency),
		Status:       stripego.PaymentIntentStatusRequiresPaymentMethod,
		Metadata:     in.Metadata,
	}
	return s.intents[id], nil
}

func (s *stubIntents) GetPaymentIntent(_ context.Context, id string) (*stripego.PaymentIntent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	pi, ok := s.intents[id]
	if !ok {
		return nil, errors.New("no such payment_intent: " + id)
	}
	cp := *pi
	return &cp, nil
}

func (s *stubIntents) succeed(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.intents[id].Status = stripego.PaymentIntentStatusSucceeded
}

// nopMailer accepts every email without sending it.
type nopMailer struct{}

func (nopMailer) SendWelcome(context.Context, string, string) error { return nil }
func (nopMailer) SendVerificationEmail(context.Context, string, string, string, string) error {
	return nil
}
func (nopMailer) SendPasswordReset(context.Context, string, string, string) error { return nil }
func (nopMailer) SendContactConfirmation(context.Context, *email.ContactData) error { return nil }
func (nopMailer) SendContactAdminNotification(context.Context, *email.ContactData) error { return nil }
func (nopMailer) SendOrderStatusUpdate(context.Context, *email.OrderData, string) error { return nil }
func (nopMailer) SendOrderConfirmation(context.Context, *email.OrderData) error { return nil }
func (nopMailer) SendAdminOrderNotification(context.Context, *email.OrderData) error { return nil }

func testConfig() *Config {
	cfg := &Config{
		Environment:    "test",
		Port:           "3000",
		BaseURL:        "http://localhost:3000",
		StaticDir:      "testdata/public",
		AllowedOrigins: []string{"http://localhost:5500"},
	}
	cfg.JWT.Secret = "route-test-secret"
	cfg.JWT.Expiry = time.Hour
	cfg.Stripe.PublishableKey = "pk_test_routes"
	cfg.Stripe.Currency = "eur"
	cfg.RateLimit.GlobalRequests = 1000
	cfg.RateLimit.PaymentRequests = 100
	cfg.RateLimit.Window = 15 * time.Minute
	return cfg
}

type testServer struct {
	e       *echo.Echo
	svc     *Service
	store   *storage.Storage
	intents *stubIntents
}

// setupTestServer builds a fully wired echo instance over an in-memory
// database with a seeded catalog.
func setupTestServer(t *testing.T, configure ...func(*Config)) *testServer {
	t.Helper()

	store, cleanup, err := storage.NewTestStorage()
	require.NoError(t, err)
	t.Cleanup(cleanup)
	require.NoError(t, storage.SeedCatalog(context.Background(), store.DB()))

	cfg := testConfig()
	for _, fn := range configure {
		fn(cfg)
	}

	intents := &stubIntents{intents: map[string]*stripego.PaymentIntent{}}
	svc := newService(store, cfg, intents, nopMailer{}, true)

	e := echo.New()
	svc.Configure(e)
	svc.RegisterRoutes(e)

	return &testServer{e: e, svc: svc, store: store, intents: intents}
}

func (ts *testServer) do(method, path string, body any, token string) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		raw, _ := json.Marshal(body)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	req.Header.Set(echo.HeaderXRealIP, "203.0.113.7")
	rec := httptest.NewRecorder()
	ts.e.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), rec.Body.String())
	return body
}

// register creates an account through the API and returns its token.
func (ts *testServer) register(t *testing.T, name, address string) string {
	t.Helper()
	rec := ts.do(http.MethodPost, "/api/auth/register", map[string]any{
		"name": name, "email": address, "password": "secret123",
	}, "")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	token, _ := decode(t, rec)["token"].(string)
	require.NotEmpty(t, token)
	return token
}

func (ts *testServer) registerAdmin(t *testing.T) string {
	t.Helper()
	token := ts.register(t, "Roi Admin", "admin@example.com")
	_, err := ts.store.DB().Exec(`UPDATE users SET role = 'admin' WHERE email = ?`, "admin@example.com")
	require.NoError(t, err)
	return token
}
