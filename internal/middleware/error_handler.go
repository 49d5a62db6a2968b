package middleware

import (
	"errors"
	"net/http"
	"strings"

	"roktoSheba/pkg/logger"

	jsonres "roktoSheba/pkg/response"

	"github.com/labstack/echo/v4"
)

// ErrorHandler renders errors that escape the handlers as JSON.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	message := "internal server error"

	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
		if msg, ok := he.Message.(string); ok {
			message = msg
		} else {
			message = http.StatusText(code)
		}
	}

	if code >= http.StatusInternalServerError {
		logger.Error("Unhandled error", "method", c.Request().Method, "path", c.Request().URL.Path, "error", err)
	}

	if c.Request().Method == http.MethodHead {
		err = c.NoContent(code)
	} else {
		err = c.JSON(code, jsonres.Error(errorCode(code), message, nil))
	}
	if err != nil {
		logger.Error("Failed to write error response", "error", err)
	}
}

// errorCode turns a status into the upper snake case code, 404 -> NOT_FOUND.
func errorCode(status int) string {
	return strings.ToUpper(strings.ReplaceAll(http.StatusText(status), " ", "_"))
}
