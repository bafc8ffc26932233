package handlers

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/roibeauty/storefront/storage"
	"github.com/roibeauty/storefront/storage/db"
)

const (
	defaultProductPageSize = 12
	maxProductPageSize     = 100
	featuredLimit          = 4
)

type ProductHandler struct {
	db      *sql.DB
	queries *db.Queries
}

func NewProductHandler(database *sql.DB) *ProductHandler {
	return &ProductHandler{db: database, queries: db.New(database)}
}

// ProductFilter is the parsed query of a catalog listing.
type ProductFilter struct {
	Category string
	SkinType string
	MinCents sql.NullInt64
	MaxCents sql.NullInt64
	Search   string
}

// ParseProductFilter maps the listing query parameters to a filter. The
// value "all" disables a filter.
func ParseProductFilter(category, skinType, priceRange, search string) ProductFilter {
	f := ProductFilter{}
	if category != "" && category != "all" {
		f.Category = category
	}
	if skinType != "" && skinType != "all" {
		f.SkinType = skinType
	}
	switch priceRange {
	case "under20":
		f.MaxCents = sql.NullInt64{Int64: 1999, Valid: true}
	case "20to40":
		f.MinCents = sql.NullInt64{Int64: 2000, Valid: true}
		f.MaxCents = sql.NullInt64{Int64: 4000, Valid: true}
	case "over40":
		f.MinCents = sql.NullInt64{Int64: 4001, Valid: true}
	}
	f.Search = strings.TrimSpace(search)
	return f
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func (h *ProductHandler) ListProducts(c echo.Context) error {
	ctx := c.Request().Context()
	f := ParseProductFilter(c.QueryParam("category"), c.QueryParam("skinType"), c.QueryParam("priceRange"), c.QueryParam("search"))
	page, limit := pageParams(c, defaultProductPageSize, maxProductPageSize)

	products, err := h.queries.SearchProducts(ctx, db.SearchProductsParams{
		Category:      nullString(f.Category),
		SkinType:      nullString(f.SkinType),
		MinPriceCents: f.MinCents,
		MaxPriceCents: f.MaxCents,
		Search:        nullString(f.Search),
		Offset:        (page - 1) * limit,
		Limit:         limit,
	})
	if err != nil {
		slog.Error("failed to search products", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Error fetching products from database")
	}

	total, err := h.queries.CountSearchProducts(ctx, db.CountSearchProductsParams{
		Category:      nullString(f.Category),
		SkinType:      nullString(f.SkinType),
		MinPriceCents: f.MinCents,
		MaxPriceCents: f.MaxCents,
		Search:        nullString(f.Search),
	})
	if err != nil {
		slog.Error("failed to count products", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Error fetching products from database")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success":     true,
		"data":        productsToResponse(products),
		"totalPages":  totalPages(total, limit),
		"currentPage": page,
		"total":       total,
	})
}

func (h *ProductHandler) ListFeatured(c echo.Context) error {
	products, err := h.queries.ListFeaturedProducts(c.Request().Context(), featuredLimit)
	if err != nil {
		slog.Error("failed to list featured products", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Error fetching featured products")
	}
	return respondData(c, productsToResponse(products))
}

func (h *ProductHandler) GetProduct(c echo.Context) error {
	product, err := h.loadProduct(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return respondData(c, productToResponse(product))
}

// ProductReviews lists the reviews of one product, newest first.
func (h *ProductHandler) ProductReviews(c echo.Context) error {
	ctx := c.Request().Context()
	product, err := h.loadProduct(ctx, c.Param("id"))
	if err != nil {
		return err
	}

	reviews, err := h.queries.ListReviewsByProduct(ctx, product.ID)
	if err != nil {
		slog.Error("failed to list product reviews", "error", err, "product_id", product.ID)
		return echo.NewHTTPError(http.StatusInternalServerError, "Error fetching reviews")
	}

	out := make([]ReviewResponse, len(reviews))
	for i, r := range reviews {
		out[i] = ReviewResponse{
			ID:         r.ID,
			ProductID:  r.ProductID,
			Rating:     r.Rating,
			Comment:    r.Comment,
			IsVerified: r.IsVerified,
			CreatedAt:  r.CreatedAt,
			User:       &ReviewUser{ID: r.UserID, Name: r.UserName},
		}
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": out, "count": len(out)})
}

// SetupFeatured resets the homepage selection to the default products.
func (h *ProductHandler) SetupFeatured(c echo.Context) error {
	products, err := storage.SetupFeatured(c.Request().Context(), h.db)
	if err != nil {
		slog.Error("failed to set up featured products", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Error setting up featured products")
	}
	return respond(c, http.StatusOK, fmt.Sprintf("Set %d products as featured", len(products)), productsToResponse(products))
}

func (h *ProductHandler) loadProduct(ctx context.Context, rawID string) (db.Product, error) {
	id, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil {
		return db.Product{}, echo.NewHTTPError(http.StatusNotFound, "Product not found")
	}
	product, err := h.queries.GetProduct(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return db.Product{}, echo.NewHTTPError(http.StatusNotFound, "Product not found")
		}
		slog.Error("failed to get product", "error", err, "id", id)
		return db.Product{}, echo.NewHTTPError(http.StatusInternalServerError, "Error fetching product details")
	}
	return product, nil
}
