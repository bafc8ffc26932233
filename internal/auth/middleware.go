package auth

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/roibeauty/storefront/storage/db"
)

const (
	DBUserKey          = "db_user"
	IsAuthenticatedKey = "is_authenticated"
	ClaimsKey          = "jwt_claims"

	authFailureKey = "auth_failure"
)

type failure int

const (
	failureNoToken failure = iota
	failureInvalidToken
	failureUserNotFound
	failureLookup
)

func (f failure) httpError() *echo.HTTPError {
	switch f {
	case failureInvalidToken:
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token")
	case failureUserNotFound:
		return echo.NewHTTPError(http.StatusNotFound, "User not found")
	case failureLookup:
		return echo.NewHTTPError(http.StatusInternalServerError, "Authentication failed")
	default:
		return echo.NewHTTPError(http.StatusUnauthorized, "Authentication required")
	}
}

// JWTAuth resolves the Bearer token (when present) to a database user and
// stores it on the context. Anonymous requests pass through untouched.
func JWTAuth(tokens *TokenService, queries *db.Queries) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set(IsAuthenticatedKey, false)

			token := extractBearerToken(c.Request())
			if token == "" {
				c.Set(authFailureKey, failureNoToken)
				return next(c)
			}

			claims, err := tokens.Parse(token)
			if err != nil {
				slog.Debug("rejected bearer token", "path", c.Path(), "error", err)
				c.Set(authFailureKey, failureInvalidToken)
				return next(c)
			}

			user, err := queries.GetUser(c.Request().Context(), claims.UserID)
			if err != nil {
				if errors.Is(err, sql.ErrNoRows) {
					c.Set(authFailureKey, failureUserNotFound)
				} else {
					slog.Error("failed to load user for token", "user_id", claims.UserID, "error", err)
					c.Set(authFailureKey, failureLookup)
				}
				return next(c)
			}

			c.Set(ClaimsKey, claims)
			c.Set(DBUserKey, &user)
			c.Set(IsAuthenticatedKey, true)
			return next(c)
		}
	}
}

// RequireAuth rejects requests that JWTAuth could not authenticate.
func RequireAuth() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if _, ok := GetDBUser(c); !ok {
				return rejection(c)
			}
			return next(c)
		}
	}
}

// RequireAdmin requires an authenticated user with the admin role
func RequireAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			dbUser, ok := GetDBUser(c)
			if !ok {
				return rejection(c)
			}
			if dbUser.Role != RoleAdmin {
				slog.Warn("non-admin attempted admin route", "user_id", dbUser.ID, "path", c.Path())
				return echo.NewHTTPError(http.StatusForbidden, "Admin access required")
			}
			return next(c)
		}
	}
}

func rejection(c echo.Context) error {
	if f, ok := c.Get(authFailureKey).(failure); ok {
		return f.httpError()
	}
	return failureNoToken.httpError()
}

func extractBearerToken(r *http.Request) string {
	header := strings.TrimSpace(r.Header.Get(echo.HeaderAuthorization))
	if len(header) > 7 && strings.EqualFold(header[:7], "Bearer ") {
		return strings.TrimSpace(header[7:])
	}
	return ""
}
