package auth

import (
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/oklog/ulid/v2"
	"github.com/roibeauty/storefront/storage/db"
	"github.com/stretchr/testify/assert"
)

func TestGetDBUser_Found(t *testing.T) {
	e := echo.New()
	c := e.NewContext(nil, nil)

	testUser := &db.User{
		ID:    ulid.Make().String(),
		Email: "test@example.com",
		Name:  "Test User",
	}
	c.Set(DBUserKey, testUser)

	user, ok := GetDBUser(c)

	assert.True(t, ok, "Should find user in context")
	assert.NotNil(t, user)
	assert.Equal(t, testUser.ID, user.ID)
	assert.Equal(t, testUser.Email, user.Email)
}

func TestGetDBUser_NotFound(t *testing.T) {
	e := echo.New()
	c := e.NewContext(nil, nil)

	user, ok := GetDBUser(c)

	assert.False(t, ok, "Should not find user in context")
	assert.Nil(t, user)
}

func TestGetDBUser_WrongKey(t *testing.T) {
	e := echo.New()
	c := e.NewContext(nil, nil)

	c.Set("user", &db.User{ID: ulid.Make().String()})

	user, ok := GetDBUser(c)

	assert.False(t, ok, "Should not find user with wrong key")
	assert.Nil(t, user)
}

func TestGetDBUser_WrongType(t *testing.T) {
	e := echo.New()
	c := e.NewContext(nil, nil)

	c.Set(DBUserKey, "not a user")

	user, ok := GetDBUser(c)

	assert.False(t, ok, "Should not cast wrong type")
	assert.Nil(t, user)
}

func TestIsAuthenticated(t *testing.T) {
	e := echo.New()
	c := e.NewContext(nil, nil)
	assert.False(t, IsAuthenticated(c))

	c.Set(IsAuthenticatedKey, true)
	assert.True(t, IsAuthenticated(c))
}

func TestIsAdmin(t *testing.T) {
	tests := []struct {
		name string
		user *db.User
		want bool
	}{
		{"admin", &db.User{ID: ulid.Make().String(), Role: RoleAdmin}, true},
		{"regular user", &db.User{ID: ulid.Make().String(), Role: RoleUser}, false},
		{"no user", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			c := e.NewContext(nil, nil)
			if tt.user != nil {
				c.Set(DBUserKey, tt.user)
			}
			assert.Equal(t, tt.want, IsAdmin(c))
		})
	}
}

func TestDBUserKey_Constant(t *testing.T) {
	assert.Equal(t, "db_user", DBUserKey, "DBUserKey constant should be 'db_user'")
}
