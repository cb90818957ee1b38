package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/CS5331-ACKS/rest-api-development/internal/core/domain"
)

// errorResponse is the failure envelope: status is always false.
type errorResponse struct {
	Status bool   `json:"status"`
	Error  string `json:"error"`
}

// NewHTTPErrorHandler renders every error returned by a handler as
// {"status": false, "error": "<message>"}. Domain failures use HTTP 200;
// anything unrecognised is logged and answered with a generic 500.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = c.JSON(code, errorResponse{Status: false, Error: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	switch {
	case errors.Is(err, domain.ErrMissingParameter):
		return http.StatusOK, "Missing required parameter(s)"
	case errors.Is(err, domain.ErrInvalidAge):
		return http.StatusOK, "Age must be a positive integer"
	case errors.Is(err, domain.ErrInvalidVisibility):
		return http.StatusOK, "Invalid value for public."
	case errors.Is(err, domain.ErrInvalidEntryID), errors.Is(err, domain.ErrNotFoundOrForbidden):
		return http.StatusOK, "Invalid diary entry id."
	case errors.Is(err, domain.ErrUserExists):
		return http.StatusOK, "User already exists!"
	case errors.Is(err, domain.ErrUnauthorized),
		errors.Is(err, domain.ErrInvalidTokenFormat),
		errors.Is(err, domain.ErrTokenNotFoundOrExpired):
		return http.StatusOK, "Invalid authentication token."
	}

	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Str("request_id", c.Response().Header().Get(echo.HeaderXRequestID)).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}
