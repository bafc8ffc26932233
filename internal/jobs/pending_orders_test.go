package jobs

import (
	"context"
	"database/sql"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roibeauty/storefront/internal/checkout"
	"github.com/roibeauty/storefront/storage"
	"github.com/roibeauty/storefront/storage/db"
)

type fakeSettler struct {
	mu        sync.Mutex
	statuses  map[string]string
	confirmed []string
	failed    []string
}

func (f *fakeSettler) Confirm(_ context.Context, piID, orderID string, source checkout.Source) (*checkout.Confirmation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if source != checkout.SourceReconciler {
		return nil, errors.New("unexpected source " + string(source))
	}
	switch status := f.statuses[piID]; status {
	case "succeeded":
		f.confirmed = append(f.confirmed, orderID)
		return &checkout.Confirmation{}, nil
	case "":
		return nil, errors.New("no such payment_intent")
	default:
		return nil, &checkout.NotCompletedError{Status: status}
	}
}

func (f *fakeSettler) MarkFailed(_ context.Context, piID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failed = append(f.failed, piID)
	return true, nil
}

func insertPendingOrder(t *testing.T, database *sql.DB, queries *db.Queries, orderID, piID, age string) {
	t.Helper()
	err := queries.CreateOrder(context.Background(), db.CreateOrderParams{
		ID:              orderID + "-row",
		OrderID:         orderID,
		OrderNumber:     "ORD" + orderID,
		UserID:          checkout.GuestUserID,
		Email:           "jane@example.com",
		Items:           "[]",
		ShippingAddress: "{}",
		TotalCents:      1000,
		Currency:        "eur",
		Status:          checkout.StatusPending,
		PaymentMethod:   "stripe",
		PaymentStatus:   checkout.PaymentPending,
		StripePaymentID: sql.NullString{String: piID, Valid: true},
	})
	require.NoError(t, err)
	_, err = database.Exec(`UPDATE orders SET created_at = datetime('now', ?) WHERE order_id = ?`, age, orderID)
	require.NoError(t, err)
}

func TestPendingOrderReconciler_Run(t *testing.T) {
	database, queries, cleanup, err := storage.NewTestDB()
	require.NoError(t, err)
	defer cleanup()

	insertPendingOrder(t, database, queries, "RB-paid", "pi_paid", "-1 hour")
	insertPendingOrder(t, database, queries, "RB-cancelled", "pi_cancelled", "-2 hours")
	insertPendingOrder(t, database, queries, "RB-waiting", "pi_waiting", "-30 minutes")
	insertPendingOrder(t, database, queries, "RB-missing", "pi_missing", "-1 hour")
	insertPendingOrder(t, database, queries, "RB-fresh", "pi_fresh", "-1 minute")
	insertPendingOrder(t, database, queries, "RB-ancient", "pi_ancient", "-30 days")

	settler := &fakeSettler{statuses: map[string]string{
		"pi_paid":      "succeeded",
		"pi_cancelled": "canceled",
		"pi_waiting":   "requires_payment_method",
		"pi_fresh":     "succeeded",
		"pi_ancient":   "succeeded",
	}}

	r := NewPendingOrderReconciler(queries, settler, 0)
	result := r.Run(context.Background())

	assert.Equal(t, ReconcileResult{Checked: 4, Settled: 1, Failed: 1, Pending: 1, Errors: 1}, result)
	assert.Equal(t, []string{"RB-paid"}, settler.confirmed)
	assert.Equal(t, []string{"pi_cancelled"}, settler.failed)
}

func TestPendingOrderReconciler_NothingToDo(t *testing.T) {
	_, queries, cleanup, err := storage.NewTestDB()
	require.NoError(t, err)
	defer cleanup()

	r := NewPendingOrderReconciler(queries, &fakeSettler{}, 0)
	assert.Equal(t, ReconcileResult{}, r.Run(context.Background()))
}

func TestPendingOrderReconciler_StartStop(t *testing.T) {
	_, queries, cleanup, err := storage.NewTestDB()
	require.NoError(t, err)
	defer cleanup()

	r := NewPendingOrderReconciler(queries, &fakeSettler{}, time.Hour)
	r.Start(context.Background())
	r.Stop()
}
