package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/roibeauty/storefront/storage"
	"github.com/roibeauty/storefront/storage/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupAuthEcho(t *testing.T) (*echo.Echo, *TokenService, *db.Queries) {
	t.Helper()
	_, queries, cleanup, err := storage.NewTestDB()
	require.NoError(t, err)
	t.Cleanup(cleanup)

	tokens := NewTokenService("middleware-secret", time.Hour)

	e := echo.New()
	e.Use(JWTAuth(tokens, queries))
	ok := func(c echo.Context) error { return c.String(http.StatusOK, "ok") }
	e.GET("/open", func(c echo.Context) error {
		if IsAuthenticated(c) {
			return c.String(http.StatusOK, "user")
		}
		return c.String(http.StatusOK, "anonymous")
	})
	e.GET("/private", ok, RequireAuth())
	e.GET("/admin", ok, RequireAdmin())
	return e, tokens, queries
}

func createUser(t *testing.T, queries *db.Queries, id, role string) db.User {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, queries.CreateUser(ctx, db.CreateUserParams{
		ID:           id,
		Name:         "User " + id,
		Email:        id + "@example.com",
		PasswordHash: "x",
		Role:         role,
	}))
	user, err := queries.GetUser(ctx, id)
	require.NoError(t, err)
	return user
}

func doRequest(e *echo.Echo, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestJWTAuth_Anonymous(t *testing.T) {
	e, _, _ := setupAuthEcho(t)

	rec := doRequest(e, "/open", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "anonymous", rec.Body.String())

	rec = doRequest(e, "/private", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTAuth_ValidToken(t *testing.T) {
	e, tokens, queries := setupAuthEcho(t)
	user := createUser(t, queries, "user1", RoleUser)
	token, err := tokens.Issue(user)
	require.NoError(t, err)

	rec := doRequest(e, "/open", token)
	assert.Equal(t, "user", rec.Body.String())

	rec = doRequest(e, "/private", token)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(e, "/admin", token)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRequireAdmin(t *testing.T) {
	e, tokens, queries := setupAuthEcho(t)
	admin := createUser(t, queries, "admin1", RoleAdmin)
	token, err := tokens.Issue(admin)
	require.NoError(t, err)

	tests := []struct {
		name   string
		token  string
		status int
	}{
		{"no token", "", http.StatusUnauthorized},
		{"garbage token", "not-a-jwt", http.StatusUnauthorized},
		{"admin", token, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(e, "/admin", tt.token)
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}

func TestRequireAuth_DeletedUser(t *testing.T) {
	e, tokens, _ := setupAuthEcho(t)
	token, err := tokens.Issue(db.User{ID: "ghost", Email: "ghost@example.com", Role: RoleUser})
	require.NoError(t, err)

	rec := doRequest(e, "/private", token)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
