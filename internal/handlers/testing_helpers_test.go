package handlers

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/oklog/ulid/v2"

	"github.com/roibeauty/storefront/internal/auth"
	"github.com/roibeauty/storefront/storage"
	"github.com/roibeauty/storefront/storage/db"
)

// NewTestContext creates a new Echo context for testing
func NewTestContext(method, path string, body interface{}) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()

	var req *http.Request
	switch b := body.(type) {
	case nil:
		req = httptest.NewRequest(method, path, nil)
	case string:
		req = httptest.NewRequest(method, path, strings.NewReader(b))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	default:
		jsonBody, _ := json.Marshal(b)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}

	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath(path)

	return c, rec
}

// SetTestUser sets a user in the Echo context for authenticated tests
func SetTestUser(c echo.Context, user *db.User) {
	c.Set(auth.DBUserKey, user)
	c.Set(auth.IsAuthenticatedKey, true)
}

// CreateTestUser creates a test user in the database
func CreateTestUser(queries *db.Queries) (*db.User, error) {
	return CreateTestUserWithEmail(queries, "test@example.com")
}

// CreateTestUserWithEmail creates a test user with a specific email
func CreateTestUserWithEmail(queries *db.Queries, email string) (*db.User, error) {
	return createTestUserWithRole(queries, email, auth.RoleUser)
}

// CreateVerifiedTestUser creates a user whose email is already verified
func CreateVerifiedTestUser(queries *db.Queries, email string) (*db.User, error) {
	user, err := CreateTestUserWithEmail(queries, email)
	if err != nil {
		return nil, err
	}
	ctx := context.Background()
	if err := queries.VerifyUserEmail(ctx, user.ID); err != nil {
		return nil, err
	}
	verified, err := queries.GetUser(ctx, user.ID)
	return &verified, err
}

// CreateTestAdmin creates a user holding the admin role
func CreateTestAdmin(queries *db.Queries, email string) (*db.User, error) {
	return createTestUserWithRole(queries, email, auth.RoleAdmin)
}

func createTestUserWithRole(queries *db.Queries, email, role string) (*db.User, error) {
	ctx := context.Background()
	hash, err := auth.HashPassword("secret123")
	if err != nil {
		return nil, err
	}

	userID := ulid.Make().String()
	err = queries.CreateUser(ctx, db.CreateUserParams{
		ID:           userID,
		Name:         "Test User",
		Email:        email,
		PasswordHash: hash,
		Role:         role,
	})
	if err != nil {
		return nil, err
	}

	user, err := queries.GetUser(ctx, userID)
	return &user, err
}

// NewTestDB creates a test database with migrations applied
func NewTestDB() (*sql.DB, *db.Queries, func()) {
	database, queries, cleanup, err := storage.NewTestDB()
	if err != nil {
		panic("failed to create test database: " + err.Error())
	}
	return database, queries, cleanup
}

// AssertJSONResponse checks if the response is valid JSON and returns the parsed body
func AssertJSONResponse(rec *httptest.ResponseRecorder) (map[string]interface{}, error) {
	var body map[string]interface{}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		return nil, err
	}
	return body, nil
}

// httpStatus returns the status of an error produced by a handler.
func httpStatus(err error) int {
	if he, ok := err.(*echo.HTTPError); ok {
		return he.Code
	}
	return 0
}

// httpMessage returns the message of an *echo.HTTPError.
func httpMessage(err error) string {
	if he, ok := err.(*echo.HTTPError); ok {
		if s, ok := he.Message.(string); ok {
			return s
		}
	}
	return ""
}
