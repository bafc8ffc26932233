package handlers

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"testing"

	stripego "github.com/stripe/stripe-go/v80"
	"github.com/stretchr/testify/require"

	"github.com/roibeauty/storefront/internal/checkout"
	"github.com/roibeauty/storefront/internal/email"
	"github.com/roibeauty/storefront/internal/stripe"
	"github.com/roibeauty/storefront/storage"
	"github.com/roibeauty/storefront/storage/db"
)

type fakeIntents struct {
	mu        sync.Mutex
	seq       int
	intents   map[string]*stripego.PaymentIntent
	createErr error
}

func newFakeIntents() *fakeIntents {
	return &fakeIntents{intents: map[string]*stripego.PaymentIntent{}}
}

func (f *fakeIntents) CreatePaymentIntent(_ context.Context, in stripe.IntentParams) (*stripego.PaymentIntent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.seq++
	id := fmt.Sprintf("pi_handler_%d", f.seq)
	f.intents[id] = &stripego.PaymentIntent{
		ID:           id,
		ClientSecret: id + "_secret",
		Amount:       in.AmountCents,
		Currency:     stripego.Currency(in.Currency),
		Status:       stripego.PaymentIntentStatusRequiresPaymentMethod,
		Metadata:     in.Metadata,
	}
	return f.intents[id], nil
}

func (f *fakeIntents) GetPaymentIntent(_ context.Context, id string) (*stripego.PaymentIntent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	pi, ok := f.intents[id]
	if !ok {
		return nil, errors.New("no such payment_intent: " + id)
	}
	cp := *pi
	return &cp, nil
}

func (f *fakeIntents) succeed(id string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.intents[id].Status = stripego.PaymentIntentStatusSucceeded
	f.intents[id].LatestCharge = &stripego.Charge{ReceiptURL: "https://pay.stripe.com/receipts/" + id}
}

func (f *fakeIntents) decline(id string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.intents[id].LastPaymentError = &stripego.Error{Code: stripego.ErrorCodeCardDeclined, Msg: "Your card was declined."}
}

// fakeMailer records every email the handlers ask for.
type fakeMailer struct {
	mu sync.Mutex

	welcome       []string
	verifyTokens  map[string]string
	resetTokens   map[string]string
	contacts      []*email.ContactData
	contactAdmin  int
	statusUpdates []string
	confirmations []*email.OrderData
	adminOrders   []*email.OrderData
	failReset     bool
}

func newFakeMailer() *fakeMailer {
	return &fakeMailer{verifyTokens: map[string]string{}, resetTokens: map[string]string{}}
}

func (m *fakeMailer) SendWelcome(_ context.Context, to, _ string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.welcome = append(m.welcome, to)
	return nil
}

func (m *fakeMailer) SendVerificationEmail(_ context.Context, to, _, _, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.verifyTokens[to] = token
	return nil
}

func (m *fakeMailer) SendPasswordReset(_ context.Context, to, _, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failReset {
		return errors.New("smtp unavailable")
	}
	m.resetTokens[to] = token
	return nil
}

func (m *fakeMailer) SendContactConfirmation(_ context.Context, d *email.ContactData) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.contacts = append(m.contacts, d)
	return nil
}

func (m *fakeMailer) SendContactAdminNotification(context.Context, *email.ContactData) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.contactAdmin++
	return nil
}

func (m *fakeMailer) SendOrderStatusUpdate(_ context.Context, d *email.OrderData, status string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.statusUpdates = append(m.statusUpdates, d.OrderID+":"+status)
	return nil
}

func (m *fakeMailer) SendOrderConfirmation(_ context.Context, d *email.OrderData) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.confirmations = append(m.confirmations, d)
	return nil
}

func (m *fakeMailer) SendAdminOrderNotification(_ context.Context, d *email.OrderData) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.adminOrders = append(m.adminOrders, d)
	return nil
}

// paymentFixture wires a PaymentHandler to an in-memory database and fake
// Stripe client.
type paymentFixture struct {
	handler  *PaymentHandler
	checkout *checkout.Service
	intents  *fakeIntents
	mailer   *fakeMailer
	db       *sql.DB
	queries  *db.Queries
}

func newPaymentFixture(t *testing.T, webhookSecret string) *paymentFixture {
	t.Helper()
	database, queries, cleanup := NewTestDB()
	t.Cleanup(cleanup)
	require.NoError(t, storage.SeedCatalog(context.Background(), database))

	intents := newFakeIntents()
	mailer := newFakeMailer()
	svc := checkout.NewService(database, intents, mailer, checkout.Options{Currency: "eur", PublishableKey: "pk_test_abc"})
	return &paymentFixture{
		handler:  NewPaymentHandler(svc, queries, webhookSecret, true),
		checkout: svc,
		intents:  intents,
		mailer:   mailer,
		db:       database,
		queries:  queries,
	}
}
