package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"

	"github.com/roibeauty/storefront/internal/auth"
	"github.com/roibeauty/storefront/internal/checkout"
	"github.com/roibeauty/storefront/storage"
	"github.com/roibeauty/storefront/storage/db"
)

const (
	numUsers           = 25
	numOrders          = 45
	numContactMessages = 12
	maxReviewsPerUser  = 3

	fakeDomain = "@seed.roibeauty.test"
)

// Fulfilment states for orders that completed payment.
var paidStatuses = []string{
	checkout.StatusPaid,
	checkout.StatusProcessing,
	checkout.StatusShipped,
	checkout.StatusDelivered,
}

func main() {
	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = "./db/roibeauty.db"
	}

	store, err := storage.New(dbPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer store.Close()

	ctx := context.Background()
	if err := storage.SeedCatalog(ctx, store.DB()); err != nil {
		log.Fatalf("Failed to seed catalog: %v", err)
	}

	products, err := store.Queries.ListAllProducts(ctx)
	if err != nil {
		log.Fatalf("Failed to load products: %v", err)
	}
	if len(products) == 0 {
		log.Fatal("No products found in database")
	}
	fmt.Printf("Found %d products\n", len(products))

	clearFakeData(store.DB())

	users := seedUsers(ctx, store.Queries)
	orders := seedOrders(ctx, store.Queries, users, products)
	reviews := seedReviews(ctx, store.Queries, users, products)
	contacts := seedContactMessages(ctx, store.Queries)

	fmt.Println()
	fmt.Println("Seeding completed")
	fmt.Printf("  users:    %d\n", len(users))
	fmt.Printf("  orders:   %d\n", orders)
	fmt.Printf("  reviews:  %d\n", reviews)
	fmt.Printf("  contacts: %d\n", contacts)
}

// clearFakeData removes rows from previous runs. Real accounts are kept.
func clearFakeData(database *sql.DB) {
	stmts := []string{
		"DELETE FROM reviews WHERE user_id IN (SELECT id FROM users WHERE email LIKE '%" + fakeDomain + "')",
		"DELETE FROM orders WHERE email LIKE '%" + fakeDomain + "'",
		"DELETE FROM contact_messages WHERE email LIKE '%" + fakeDomain + "'",
		"DELETE FROM users WHERE email LIKE '%" + fakeDomain + "'",
	}
	for _, stmt := range stmts {
		if _, err := database.Exec(stmt); err != nil {
			log.Fatalf("Failed to clear fake data: %v", err)
		}
	}
}

func fakeEmail() string {
	local := strings.Split(gofakeit.Email(), "@")[0]
	return strings.ToLower(local) + fakeDomain
}

func seedUsers(ctx context.Context, q *db.Queries) []db.User {
	hash, err := auth.HashPassword("password123")
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	users := make([]db.User, 0, numUsers)
	for range numUsers {
		id := ulid.Make().String()
		if err := q.CreateUser(ctx, db.CreateUserParams{
			ID:           id,
			Name:         gofakeit.Name(),
			Email:        fakeEmail(),
			PasswordHash: hash,
			Role:         auth.RoleUser,
		}); err != nil {
			log.Printf("Skipping user: %v", err)
			continue
		}
		if gofakeit.Number(0, 3) > 0 {
			if err := q.VerifyUserEmail(ctx, id); err != nil {
				log.Fatalf("Failed to verify user: %v", err)
			}
		}
		user, err := q.GetUser(ctx, id)
		if err != nil {
			log.Fatalf("Failed to reload user: %v", err)
		}
		users = append(users, user)
	}
	return users
}

func seedOrders(ctx context.Context, q *db.Queries, users []db.User, products []db.Product) int {
	created := 0
	for range numOrders {
		var items []checkout.CartItem
		var total int64
		for range gofakeit.Number(1, 3) {
			p := products[gofakeit.Number(0, len(products)-1)]
			item := checkout.CartItem{
				ID:       p.ID,
				Name:     p.Name,
				Price:    decimal.New(p.PriceCents, -2).InexactFloat64(),
				Image:    p.Image,
				Quantity: int64(gofakeit.Number(1, 2)),
			}
			total += item.PriceCents() * item.Quantity
			items = append(items, item)
		}

		userID, email := checkout.GuestUserID, fakeEmail()
		if gofakeit.Number(0, 3) > 0 {
			u := users[gofakeit.Number(0, len(users)-1)]
			userID, email = u.ID, u.Email
		}

		addr := gofakeit.Address()
		rawItems, _ := json.Marshal(items)
		rawAddr, _ := json.Marshal(checkout.ShippingAddress{
			FullName:   gofakeit.Name(),
			Address:    addr.Street,
			City:       addr.City,
			PostalCode: addr.Zip,
			Country:    addr.Country,
			Phone:      gofakeit.Phone(),
		})

		placed := gofakeit.DateRange(time.Now().AddDate(0, -6, 0), time.Now())
		rowID := uuid.New().String()
		orderID := checkout.NewOrderID(placed)
		piID := "pi_seed_" + strings.ReplaceAll(uuid.New().String(), "-", "")[:20]

		if err := q.CreateOrder(ctx, db.CreateOrderParams{
			ID:              rowID,
			OrderID:         orderID,
			OrderNumber:     checkout.NewOrderNumber(placed),
			UserID:          userID,
			Email:           email,
			Items:           string(rawItems),
			ShippingAddress: string(rawAddr),
			TotalCents:      total,
			Currency:        "eur",
			Status:          checkout.StatusPending,
			PaymentMethod:   "stripe",
			PaymentStatus:   checkout.PaymentPending,
			StripePaymentID: sql.NullString{String: piID, Valid: true},
		}); err != nil {
			log.Printf("Skipping order: %v", err)
			continue
		}
		created++

		switch roll := gofakeit.Number(0, 9); {
		case roll < 7:
			if _, err := q.MarkOrderPaid(ctx, db.MarkOrderPaidParams{
				PaidAt: sql.NullTime{Time: placed.Add(time.Minute), Valid: true},
				ID:     rowID,
			}); err != nil {
				log.Fatalf("Failed to mark order paid: %v", err)
			}
			status := paidStatuses[gofakeit.Number(0, len(paidStatuses)-1)]
			if _, err := q.UpdateOrderStatus(ctx, db.UpdateOrderStatusParams{Status: status, OrderID: orderID}); err != nil {
				log.Fatalf("Failed to update order status: %v", err)
			}
		case roll < 8:
			if _, err := q.MarkOrderFailed(ctx, sql.NullString{String: piID, Valid: true}); err != nil {
				log.Fatalf("Failed to mark order failed: %v", err)
			}
		}
	}
	return created
}

func reviewComment(rating int) string {
	if rating >= 4 {
		return fmt.Sprintf("Really %s. My skin feels %s after two weeks.", gofakeit.Adjective(), gofakeit.Adjective())
	}
	return fmt.Sprintf("Not for me, it felt %s and left my skin %s.", gofakeit.Adjective(), gofakeit.Adjective())
}

func seedReviews(ctx context.Context, q *db.Queries, users []db.User, products []db.Product) int {
	created := 0
	touched := map[int64]bool{}
	for _, u := range users {
		seen := map[int64]bool{}
		for range gofakeit.Number(0, maxReviewsPerUser) {
			p := products[gofakeit.Number(0, len(products)-1)]
			if seen[p.ID] {
				continue
			}
			seen[p.ID] = true

			rating := gofakeit.Number(2, 5)
			purchases, err := q.HasPaidOrderWithProduct(ctx, db.HasPaidOrderWithProductParams{
				UserID:    u.ID,
				ProductID: p.ID,
			})
			if err != nil {
				log.Fatalf("Failed to check purchase: %v", err)
			}
			if err := q.CreateReview(ctx, db.CreateReviewParams{
				ID:         uuid.New().String(),
				UserID:     u.ID,
				ProductID:  p.ID,
				Rating:     int64(rating),
				Comment:    reviewComment(rating),
				IsVerified: purchases > 0,
			}); err != nil {
				log.Printf("Skipping review: %v", err)
				continue
			}
			created++
			touched[p.ID] = true
		}
	}

	for id := range touched {
		summary, err := q.GetProductRatingSummary(ctx, id)
		if err != nil {
			log.Fatalf("Failed to summarize reviews: %v", err)
		}
		if err := q.UpdateProductRating(ctx, db.UpdateProductRatingParams{
			Rating:     decimal.NewFromFloat(summary.AvgRating).Round(1).InexactFloat64(),
			NumReviews: summary.ReviewCount,
			ID:         id,
		}); err != nil {
			log.Fatalf("Failed to update rating: %v", err)
		}
	}
	return created
}

func seedContactMessages(ctx context.Context, q *db.Queries) int {
	created := 0
	for range numContactMessages {
		if err := q.CreateContactMessage(ctx, db.CreateContactMessageParams{
			ID:        ulid.Make().String(),
			Name:      gofakeit.Name(),
			Email:     fakeEmail(),
			Message:   fmt.Sprintf("Is the %s suitable for %s skin?", gofakeit.Noun(), gofakeit.Adjective()),
			IpAddress: sql.NullString{String: gofakeit.IPv4Address(), Valid: true},
		}); err != nil {
			log.Printf("Skipping contact message: %v", err)
			continue
		}
		created++
	}
	return created
}
