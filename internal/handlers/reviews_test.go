package handlers

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roibeauty/storefront/storage/db"
)

func postReview(t *testing.T, h *ReviewHandler, user *db.User, body map[string]any) (map[string]any, error) {
	t.Helper()
	c, rec := NewTestContext(http.MethodPost, "/api/reviews", body)
	SetTestUser(c, user)
	if err := h.CreateReview(c); err != nil {
		return nil, err
	}
	require.Equal(t, http.StatusCreated, rec.Code)
	out, err := AssertJSONResponse(rec)
	require.NoError(t, err)
	return out, nil
}

func TestCreateReview_VerifiedPurchase(t *testing.T) {
	f := newPaymentFixture(t, "")
	paidGuestOrder(t, f)
	ctx := context.Background()

	buyer, err := CreateTestUserWithEmail(f.queries, "jane@example.com")
	require.NoError(t, err)
	_, err = f.queries.AssociateGuestOrders(ctx, db.AssociateGuestOrdersParams{UserID: buyer.ID, Email: buyer.Email})
	require.NoError(t, err)
	browser, err := CreateTestUserWithEmail(f.queries, "browser@example.com")
	require.NoError(t, err)

	h := NewReviewHandler(f.db)

	body, err := postReview(t, h, buyer, map[string]any{"productId": 1, "rating": 5, "comment": "Glowing skin in a week"})
	require.NoError(t, err)
	assert.Equal(t, "Review submitted successfully", body["message"])
	assert.Equal(t, true, body["data"].(map[string]any)["isVerified"])
	assert.Equal(t, map[string]any{"rating": 5.0, "numReviews": 1.0}, body["productRating"])

	body, err = postReview(t, h, browser, map[string]any{"productId": 1, "rating": 2, "comment": "Too sticky"})
	require.NoError(t, err)
	assert.Equal(t, false, body["data"].(map[string]any)["isVerified"])
	assert.Equal(t, map[string]any{"rating": 3.5, "numReviews": 2.0}, body["productRating"])

	product, err := f.queries.GetProduct(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 3.5, product.Rating)
	assert.Equal(t, int64(2), product.NumReviews)
}

func TestCreateReview_Duplicate(t *testing.T) {
	_, database, queries := newProductFixture(t)
	reviews := NewReviewHandler(database)
	user, err := CreateTestUser(queries)
	require.NoError(t, err)

	_, err = postReview(t, reviews, user, map[string]any{"productId": 2, "rating": 4, "comment": "Nice"})
	require.NoError(t, err)

	_, err = postReview(t, reviews, user, map[string]any{"productId": 2, "rating": 1, "comment": "Changed my mind"})
	assert.Equal(t, http.StatusConflict, httpStatus(err))
	assert.Equal(t, "You have already reviewed this product", httpMessage(err))

	product, err := queries.GetProduct(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, 4.0, product.Rating)
	assert.Equal(t, int64(1), product.NumReviews)
}

func TestCreateReview_Validation(t *testing.T) {
	_, database, queries := newProductFixture(t)
	h := NewReviewHandler(database)
	user, err := CreateTestUser(queries)
	require.NoError(t, err)

	tests := []struct {
		name    string
		body    map[string]any
		status  int
		message string
	}{
		{"rating too high", map[string]any{"productId": 1, "rating": 6, "comment": "x"}, http.StatusBadRequest, "Rating must be between 1 and 5"},
		{"rating missing", map[string]any{"productId": 1, "comment": "x"}, http.StatusBadRequest, "Rating must be between 1 and 5"},
		{"blank comment", map[string]any{"productId": 1, "rating": 3, "comment": "   "}, http.StatusBadRequest, "Please provide a review comment"},
		{"unknown product", map[string]any{"productId": 999, "rating": 3, "comment": "x"}, http.StatusNotFound, "Product not found"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := postReview(t, h, user, tt.body)
			assert.Equal(t, tt.status, httpStatus(err))
			assert.Equal(t, tt.message, httpMessage(err))
		})
	}
}

func TestReviewListings(t *testing.T) {
	products, database, queries := newProductFixture(t)
	h := NewReviewHandler(database)
	user, err := CreateTestUser(queries)
	require.NoError(t, err)

	_, err = postReview(t, h, user, map[string]any{"productId": 3, "rating": 4, "comment": "Gentle cleanser"})
	require.NoError(t, err)

	c, rec := NewTestContext(http.MethodGet, "/api/reviews/user", nil)
	SetTestUser(c, user)
	require.NoError(t, h.UserReviews(c))
	body, err := AssertJSONResponse(rec)
	require.NoError(t, err)
	assert.Equal(t, float64(1), body["count"])
	mine := body["data"].([]any)[0].(map[string]any)
	assert.Equal(t, float64(3), mine["product"].(map[string]any)["id"])
	assert.NotContains(t, mine, "user")

	c, rec = NewTestContext(http.MethodGet, "/api/reviews", nil)
	require.NoError(t, h.ListReviews(c))
	body, err = AssertJSONResponse(rec)
	require.NoError(t, err)
	assert.Equal(t, float64(1), body["count"])
	all := body["data"].([]any)[0].(map[string]any)
	assert.Equal(t, "Test User", all["user"].(map[string]any)["name"])

	c, rec = NewTestContext(http.MethodGet, "/api/products/:id/reviews", nil)
	c.SetParamNames("id")
	c.SetParamValues("3")
	require.NoError(t, products.ProductReviews(c))
	body, err = AssertJSONResponse(rec)
	require.NoError(t, err)
	assert.Equal(t, float64(1), body["count"])
	assert.Equal(t, "Gentle cleanser", body["data"].([]any)[0].(map[string]any)["comment"])
}

func TestRoundRating(t *testing.T) {
	assert.Equal(t, 4.3, roundRating(4.333333))
	assert.Equal(t, 4.7, roundRating(4.666666))
	assert.Equal(t, 0.0, roundRating(0))
}
