package service

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

type errorBody struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

// errorHandler renders every error as the JSON envelope. Unexpected
// errors become a generic 500; the cause is only exposed in development.
func (s *Service) errorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	body := errorBody{Message: "Internal server error"}

	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
		body.Message = fmt.Sprint(he.Message)
		if he.Internal != nil && s.config.IsDevelopment() {
			body.Error = he.Internal.Error()
		}
		if code == http.StatusNotFound && errors.Is(err, echo.ErrNotFound) && isAPIRequest(c) {
			req := c.Request()
			body.Message = "API endpoint not found: " + req.Method + " " + req.URL.RequestURI()
		}
	} else {
		slog.Error("unhandled error", "method", c.Request().Method, "path", c.Request().URL.Path, "error", err)
		if s.config.IsDevelopment() {
			body.Error = err.Error()
		}
	}

	var writeErr error
	if c.Request().Method == http.MethodHead {
		writeErr = c.NoContent(code)
	} else {
		writeErr = c.JSON(code, body)
	}
	if writeErr != nil {
		slog.Error("failed to write error response", "error", writeErr)
	}
}

func isAPIRequest(c echo.Context) bool {
	return strings.HasPrefix(c.Request().URL.Path, "/api/")
}
