package middleware

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/trooper-recruit/engage-api/internal/models"
)

type ErrorResponse struct {
	Success      bool   `json:"success"`
	ErrorMessage string `json:"error_message,omitempty"`
}

const genericErrorMessage = "something went wrong, please try again"

// ErrorHandler converts everything escaping a handler into the response
// taxonomy: 400 validation, 404 unknown user, 429 rate limit, 500 for
// downstream failures. Internal detail is logged, never returned.
func ErrorHandler(log Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if err == nil || c.Response().Committed {
			return
		}

		status := http.StatusInternalServerError
		message := genericErrorMessage

		var httpErr *echo.HTTPError
		switch {
		case errors.As(err, &httpErr):
			status = httpErr.Code
			message = fmt.Sprint(httpErr.Message)
			if status >= 500 {
				message = genericErrorMessage
			}
		case errors.Is(err, models.ErrNotFound):
			status = http.StatusNotFound
			message = "user not found"
		case errors.Is(err, models.ErrRateLimited):
			status = http.StatusTooManyRequests
			message = "too many requests, please wait a minute and try again"
		}

		if status == http.StatusNotFound && isNotFoundHandler(c.Handler()) {
			message = "no route matched"
		}

		if status >= 500 {
			log.Errorw("request failed",
				"error", err.Error(),
				"uri", c.Request().RequestURI,
				"request_id", GetRequestID(c),
			)
		}

		resp := &ErrorResponse{Success: false, ErrorMessage: message}
		if err := c.JSON(status, resp); err != nil {
			log.Errorw("could not write error response", "status", status, "error", err.Error())
		}
	}
}
