package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/roibeauty/storefront/storage/db"
)

const DefaultProductImage = "https://images.unsplash.com/photo-1556228578-9d360e1d8d34?w=400"

// FeaturedProductIDs are the catalog entries promoted on the homepage after
// seeding or a featured reset.
var FeaturedProductIDs = []int64{1, 2, 4, 8}

type seedProduct struct {
	id            int64
	name          string
	description   string
	priceCents    int64
	originalCents int64
	category      string
	skinTypes     []string
	badge         string
	stock         int64
	rating        float64
	numReviews    int64
}

var sampleCatalog = []seedProduct{
	{1, "Hydrating Vitamin C Serum", "Brightens skin tone and reduces dark spots with natural vitamin C extract", 2999, 0, "serums", []string{"dry", "combination", "sensitive"}, "Bestseller", 10, 4.8, 42},
	{2, "Nourishing Face Moisturizer", "Deeply hydrates and restores skin barrier with hyaluronic acid and ceramides", 2499, 0, "moisturizers", []string{"dry", "sensitive"}, "New", 15, 4.7, 38},
	{3, "Gentle Foaming Cleanser", "Removes impurities without stripping natural oils, suitable for all skin types", 1899, 0, "cleansers", []string{"dry", "oily", "combination", "sensitive"}, "", 20, 4.5, 56},
	{4, "Revitalizing Eye Cream", "Reduces puffiness and dark circles with caffeine and peptide complex", 2299, 2799, "eye-care", []string{"dry", "combination", "sensitive"}, "", 8, 4.9, 29},
	{5, "Detoxifying Clay Mask", "Deep cleanses pores and absorbs excess oil with natural clay minerals", 1999, 0, "masks", []string{"oily", "combination"}, "", 12, 4.4, 31},
	{6, "Hydrating Facial Mist", "Instantly refreshes and hydrates skin with rosewater and aloe vera", 1699, 0, "serums", []string{"dry", "sensitive"}, "", 25, 4.6, 67},
	{7, "Brightening Toner", "Balances pH and improves skin texture with natural fruit extracts", 2199, 0, "toners", []string{"dry", "combination", "sensitive"}, "", 18, 4.7, 48},
	{8, "Overnight Repair Cream", "Intensive nighttime treatment that repairs skin while you sleep", 3499, 0, "moisturizers", []string{"dry", "sensitive"}, "New", 6, 4.8, 52},
}

// SeedCatalog inserts the sample catalog into an empty products table and
// makes sure something is featured. Safe to call on every startup.
func SeedCatalog(ctx context.Context, database *sql.DB) error {
	queries := db.New(database)

	count, err := queries.CountProducts(ctx)
	if err != nil {
		return fmt.Errorf("failed to count products: %w", err)
	}
	slog.Info("current products in database", "count", count)

	if count == 0 {
		err := InTx(ctx, database, func(q *db.Queries) error {
			for _, p := range sampleCatalog {
				skinTypes, err := json.Marshal(p.skinTypes)
				if err != nil {
					return err
				}
				if err := q.CreateProduct(ctx, db.CreateProductParams{
					ID:                 p.id,
					Name:               p.name,
					Description:        p.description,
					PriceCents:         p.priceCents,
					OriginalPriceCents: sql.NullInt64{Int64: p.originalCents, Valid: p.originalCents > 0},
					Image:              DefaultProductImage,
					Category:           p.category,
					SkinTypes:          string(skinTypes),
					Badge:              p.badge,
					InStock:            p.stock > 0,
					StockQuantity:      p.stock,
					Rating:             p.rating,
					NumReviews:         p.numReviews,
					LowStockThreshold:  5,
				}); err != nil {
					return fmt.Errorf("failed to insert product %d: %w", p.id, err)
				}
			}
			return markFeatured(ctx, q)
		})
		if err != nil {
			return err
		}
		slog.Info("database seeded with sample products", "count", len(sampleCatalog), "featured", len(FeaturedProductIDs))
		return nil
	}

	featured, err := queries.CountFeaturedProducts(ctx)
	if err != nil {
		return fmt.Errorf("failed to count featured products: %w", err)
	}
	slog.Info("catalog already present", "products", count, "featured", featured)
	if featured == 0 {
		if err := markFeatured(ctx, queries); err != nil {
			return err
		}
		slog.Info("marked default products as featured", "ids", FeaturedProductIDs)
	}
	return nil
}

// SetupFeatured clears every featured flag, re-applies the default set and
// returns the resulting featured list.
func SetupFeatured(ctx context.Context, database *sql.DB) ([]db.Product, error) {
	var featured []db.Product
	err := InTx(ctx, database, func(q *db.Queries) error {
		if err := q.ClearFeaturedProducts(ctx); err != nil {
			return fmt.Errorf("failed to clear featured products: %w", err)
		}
		if err := markFeatured(ctx, q); err != nil {
			return err
		}
		var err error
		featured, err = q.ListFeaturedProducts(ctx, int64(len(FeaturedProductIDs)))
		return err
	})
	if err != nil {
		return nil, err
	}
	return featured, nil
}

func markFeatured(ctx context.Context, q *db.Queries) error {
	for _, id := range FeaturedProductIDs {
		if _, err := q.SetProductFeatured(ctx, db.SetProductFeaturedParams{IsFeatured: true, ID: id}); err != nil {
			return fmt.Errorf("failed to feature product %d: %w", id, err)
		}
	}
	return nil
}
