package handlers

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/roibeauty/storefront/internal/auth"
	"github.com/roibeauty/storefront/storage"
	"github.com/roibeauty/storefront/storage/db"
)

var errDuplicateReview = errors.New("duplicate review")

type ReviewUser struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type ReviewProduct struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Image string `json:"image,omitempty"`
}

type ReviewResponse struct {
	ID         string         `json:"id"`
	ProductID  int64          `json:"productId"`
	Rating     int64          `json:"rating"`
	Comment    string         `json:"comment"`
	IsVerified bool           `json:"isVerified"`
	CreatedAt  time.Time      `json:"createdAt"`
	User       *ReviewUser    `json:"user,omitempty"`
	Product    *ReviewProduct `json:"product,omitempty"`
}

type ReviewHandler struct {
	db      *sql.DB
	queries *db.Queries
}

func NewReviewHandler(database *sql.DB) *ReviewHandler {
	return &ReviewHandler{db: database, queries: db.New(database)}
}

type CreateReviewRequest struct {
	ProductID int64  `json:"productId"`
	Rating    int64  `json:"rating"`
	Comment   string `json:"comment"`
}

func (h *ReviewHandler) TestSuccess(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"success":   true,
		"message":   "Reviews endpoint is working!",
		"timestamp": timestamp(),
	})
}

// UserReviews lists the caller's reviews with the reviewed product.
func (h *ReviewHandler) UserReviews(c echo.Context) error {
	userID, ok := auth.GetUserID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Authentication required")
	}
	rows, err := h.queries.ListReviewsByUser(c.Request().Context(), userID)
	if err != nil {
		slog.Error("failed to list user reviews", "error", err, "user_id", userID)
		return echo.NewHTTPError(http.StatusInternalServerError, "Error fetching reviews")
	}

	out := make([]ReviewResponse, len(rows))
	for i, r := range rows {
		out[i] = ReviewResponse{
			ID:         r.ID,
			ProductID:  r.ProductID,
			Rating:     r.Rating,
			Comment:    r.Comment,
			IsVerified: r.IsVerified,
			CreatedAt:  r.CreatedAt,
			Product:    &ReviewProduct{ID: r.ProductID, Name: r.ProductName, Image: r.ProductImage},
		}
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": out, "count": len(out)})
}

func (h *ReviewHandler) ListReviews(c echo.Context) error {
	rows, err := h.queries.ListReviews(c.Request().Context())
	if err != nil {
		slog.Error("failed to list reviews", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Error fetching reviews")
	}

	out := make([]ReviewResponse, len(rows))
	for i, r := range rows {
		out[i] = ReviewResponse{
			ID:         r.ID,
			ProductID:  r.ProductID,
			Rating:     r.Rating,
			Comment:    r.Comment,
			IsVerified: r.IsVerified,
			CreatedAt:  r.CreatedAt,
			User:       &ReviewUser{ID: r.UserID, Name: r.UserName},
			Product:    &ReviewProduct{ID: r.ProductID, Name: r.ProductName},
		}
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": out, "count": len(out)})
}

// CreateReview stores the caller's review and refreshes the product's
// rating aggregate in the same transaction.
func (h *ReviewHandler) CreateReview(c echo.Context) error {
	ctx := c.Request().Context()
	user, ok := auth.GetDBUser(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Authentication required")
	}

	var req CreateReviewRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	req.Comment = strings.TrimSpace(req.Comment)
	if req.Rating < 1 || req.Rating > 5 {
		return echo.NewHTTPError(http.StatusBadRequest, "Rating must be between 1 and 5")
	}
	if req.Comment == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Please provide a review comment")
	}

	product, err := h.queries.GetProduct(ctx, req.ProductID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return echo.NewHTTPError(http.StatusNotFound, "Product not found")
		}
		slog.Error("failed to load product for review", "error", err, "product_id", req.ProductID)
		return echo.NewHTTPError(http.StatusInternalServerError, "Error creating review")
	}

	purchased, err := h.queries.HasPaidOrderWithProduct(ctx, db.HasPaidOrderWithProductParams{
		UserID:    user.ID,
		ProductID: product.ID,
	})
	if err != nil {
		slog.Error("failed to check purchase history", "error", err, "user_id", user.ID)
		return echo.NewHTTPError(http.StatusInternalServerError, "Error creating review")
	}

	review := db.CreateReviewParams{
		ID:         uuid.NewString(),
		UserID:     user.ID,
		ProductID:  product.ID,
		Rating:     req.Rating,
		Comment:    req.Comment,
		IsVerified: purchased == 1,
	}

	var summary db.GetProductRatingSummaryRow
	err = storage.InTx(ctx, h.db, func(q *db.Queries) error {
		if err := q.CreateReview(ctx, review); err != nil {
			if isUniqueViolation(err) {
				return errDuplicateReview
			}
			return fmt.Errorf("failed to create review: %w", err)
		}
		summary, err = q.GetProductRatingSummary(ctx, product.ID)
		if err != nil {
			return fmt.Errorf("failed to summarize ratings: %w", err)
		}
		return q.UpdateProductRating(ctx, db.UpdateProductRatingParams{
			Rating:     roundRating(summary.AvgRating),
			NumReviews: summary.ReviewCount,
			ID:         product.ID,
		})
	})
	if err != nil {
		if errors.Is(err, errDuplicateReview) {
			return echo.NewHTTPError(http.StatusConflict, "You have already reviewed this product")
		}
		slog.Error("failed to store review", "error", err, "product_id", product.ID, "user_id", user.ID)
		return echo.NewHTTPError(http.StatusInternalServerError, "Error creating review")
	}

	slog.Info("review created", "review_id", review.ID, "product_id", product.ID, "verified", review.IsVerified)
	return c.JSON(http.StatusCreated, echo.Map{
		"success": true,
		"message": "Review submitted successfully",
		"data": ReviewResponse{
			ID:         review.ID,
			ProductID:  review.ProductID,
			Rating:     review.Rating,
			Comment:    review.Comment,
			IsVerified: review.IsVerified,
			CreatedAt:  time.Now().UTC(),
			User:       &ReviewUser{ID: user.ID, Name: user.Name},
			Product:    &ReviewProduct{ID: product.ID, Name: product.Name, Image: product.Image},
		},
		"productRating": echo.Map{
			"rating":     roundRating(summary.AvgRating),
			"numReviews": summary.ReviewCount,
		},
	})
}

// roundRating rounds an average to one decimal place.
func roundRating(avg float64) float64 {
	return decimal.NewFromFloat(avg).Round(1).InexactFloat64()
}

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
