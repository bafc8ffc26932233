package jobs

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	stripego "github.com/stripe/stripe-go/v80"
	"golang.org/x/sync/semaphore"

	"github.com/roibeauty/storefront/internal/checkout"
	"github.com/roibeauty/storefront/internal/metrics"
	"github.com/roibeauty/storefront/storage/db"
)

const (
	// ReconcileInterval is how often pending orders are checked against Stripe.
	ReconcileInterval = 10 * time.Minute

	// Orders younger than this are still inside the normal client flow.
	staleAfter = "-15 minutes"
	// Orders older than this are left alone.
	lookback = "-7 days"

	// MaxConcurrentLookups bounds simultaneous Stripe calls per run.
	MaxConcurrentLookups = 5
)

// Settler is the part of the checkout service the reconciler drives.
type Settler interface {
	Confirm(ctx context.Context, paymentIntentID, orderID string, source checkout.Source) (*checkout.Confirmation, error)
	MarkFailed(ctx context.Context, paymentIntentID string) (bool, error)
}

// ReconcileResult summarizes one reconciliation run.
type ReconcileResult struct {
	Checked int
	Settled int
	Failed  int
	Pending int
	Errors  int
}

// PendingOrderReconciler settles orders whose browser never reached
// confirm-payment and whose webhook was missed.
type PendingOrderReconciler struct {
	queries  *db.Queries
	settler  Settler
	interval time.Duration
	ticker   *time.Ticker
	done     chan bool
}

// NewPendingOrderReconciler builds a reconciler. A non-positive interval
// falls back to ReconcileInterval.
func NewPendingOrderReconciler(queries *db.Queries, settler Settler, interval time.Duration) *PendingOrderReconciler {
	if interval <= 0 {
		interval = ReconcileInterval
	}
	return &PendingOrderReconciler{
		queries:  queries,
		settler:  settler,
		interval: interval,
		done:     make(chan bool),
	}
}

// Start runs one pass immediately and then one per interval until Stop.
func (r *PendingOrderReconciler) Start(ctx context.Context) {
	slog.Info("starting pending order reconciler", "interval", r.interval)

	r.Run(ctx)

	r.ticker = time.NewTicker(r.interval)
	go func() {
		for {
			select {
			case <-r.ticker.C:
				r.Run(ctx)
			case <-r.done:
				slog.Info("pending order reconciler stopped")
				return
			case <-ctx.Done():
				return
			}
		}
	}()
}

func (r *PendingOrderReconciler) Stop() {
	if r.ticker != nil {
		r.ticker.Stop()
	}
	close(r.done)
}

// Run checks every stale pending order once.
func (r *PendingOrderReconciler) Run(ctx context.Context) ReconcileResult {
	orders, err := r.queries.ListStalePendingOrders(ctx, db.ListStalePendingOrdersParams{
		OlderThan: staleAfter,
		NewerThan: lookback,
	})
	if err != nil {
		slog.Error("failed to list stale pending orders", "error", err)
		metrics.RecordReconcilerResult("error")
		return ReconcileResult{Errors: 1}
	}
	if len(orders) == 0 {
		slog.Debug("no stale pending orders")
		return ReconcileResult{}
	}

	sem := semaphore.NewWeighted(MaxConcurrentLookups)
	var (
		wg     sync.WaitGroup
		mu     sync.Mutex
		result = ReconcileResult{Checked: len(orders)}
	)

	for _, order := range orders {
		if err := sem.Acquire(ctx, 1); err != nil {
			slog.Debug("context cancelled while waiting for semaphore", "error", err)
			break
		}
		wg.Add(1)
		go func(order db.Order) {
			defer wg.Done()
			defer sem.Release(1)

			outcome := r.reconcile(ctx, order)
			metrics.RecordReconcilerResult(outcome)

			mu.Lock()
			defer mu.Unlock()
			switch outcome {
			case "settled":
				result.Settled++
			case "failed":
				result.Failed++
			case "pending":
				result.Pending++
			default:
				result.Errors++
			}
		}(order)
	}
	wg.Wait()

	slog.Info("pending order reconciliation complete",
		"checked", result.Checked,
		"settled", result.Settled,
		"failed", result.Failed,
		"pending", result.Pending,
		"errors", result.Errors,
	)
	return result
}

func (r *PendingOrderReconciler) reconcile(ctx context.Context, order db.Order) string {
	piID := order.StripePaymentID.String

	_, err := r.settler.Confirm(ctx, piID, order.OrderID, checkout.SourceReconciler)
	if err == nil {
		slog.Info("reconciled paid order", "order_id", order.OrderID, "payment_intent_id", piID)
		return "settled"
	}

	var notCompleted *checkout.NotCompletedError
	if !errors.As(err, &notCompleted) {
		slog.Error("failed to reconcile order", "error", err, "order_id", order.OrderID, "payment_intent_id", piID)
		return "error"
	}

	if notCompleted.Status != string(stripego.PaymentIntentStatusCanceled) {
		return "pending"
	}
	if _, err := r.settler.MarkFailed(ctx, piID); err != nil {
		slog.Error("failed to mark cancelled order", "error", err, "order_id", order.OrderID)
		return "error"
	}
	return "failed"
}
