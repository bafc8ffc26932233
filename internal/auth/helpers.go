package auth

import (
	"github.com/labstack/echo/v4"
	"github.com/roibeauty/storefront/storage/db"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// GetDBUser retrieves the database user from context
func GetDBUser(c echo.Context) (*db.User, bool) {
	dbUser, ok := c.Get(DBUserKey).(*db.User)
	return dbUser, ok && dbUser != nil
}

// GetClaims retrieves the verified token claims from context
func GetClaims(c echo.Context) (*Claims, bool) {
	claims, ok := c.Get(ClaimsKey).(*Claims)
	return claims, ok && claims != nil
}

// IsAuthenticated checks if the current request is authenticated
func IsAuthenticated(c echo.Context) bool {
	isAuth, _ := c.Get(IsAuthenticatedKey).(bool)
	return isAuth
}

func IsAdmin(c echo.Context) bool {
	dbUser, ok := GetDBUser(c)
	return ok && dbUser.Role == RoleAdmin
}

// GetUserID returns the authenticated user's id
func GetUserID(c echo.Context) (string, bool) {
	if dbUser, ok := GetDBUser(c); ok {
		return dbUser.ID, true
	}
	return "", false
}
