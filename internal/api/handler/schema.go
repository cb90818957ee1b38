package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/CS5331-ACKS/rest-api-development/internal/core/domain"
)

// --- Response envelopes ---

// statusResponse is the minimal envelope every endpoint returns.
type statusResponse struct {
	Status bool   `json:"status"`
	Error  string `json:"error,omitempty"`
}

type tokenResponse struct {
	Status bool   `json:"status"`
	Token  string `json:"token"`
}

type resultResponse struct {
	Status bool `json:"status"`
	Result any  `json:"result"`
}

type entriesResponse struct {
	Status bool                `json:"status"`
	Result []domain.DiaryEntry `json:"result"`
}

type profileResponse struct {
	Status   bool   `json:"status"`
	Username string `json:"username"`
	Fullname string `json:"fullname"`
	Age      int    `json:"age"`
}

// --- Requests ---
//
// Pointer fields distinguish an absent key from an empty value. Fields whose
// JSON type is checked after binding are kept raw.

type registerRequest struct {
	Username *string         `json:"username" validate:"required"`
	Password *string         `json:"password" validate:"required"`
	Fullname *string         `json:"fullname" validate:"required"`
	Age      json.RawMessage `json:"age" validate:"present" swaggertype:"integer"`
}

type credentialsRequest struct {
	Username *string `json:"username" validate:"required"`
	Password *string `json:"password" validate:"required"`
}

type tokenRequest struct {
	Token *string `json:"token" validate:"required"`
}

type createEntryRequest struct {
	Token  *string         `json:"token" validate:"required"`
	Title  *string         `json:"title" validate:"required"`
	Public json.RawMessage `json:"public" validate:"present" swaggertype:"boolean"`
	Text   *string         `json:"text" validate:"required"`
}

type deleteEntryRequest struct {
	Token *string         `json:"token" validate:"required"`
	ID    json.RawMessage `json:"id" validate:"present" swaggertype:"integer"`
}

type permissionRequest struct {
	Token  *string         `json:"token" validate:"required"`
	ID     json.RawMessage `json:"id" validate:"present" swaggertype:"integer"`
	Public json.RawMessage `json:"public" validate:"present" swaggertype:"boolean"`
}

// bindRequest decodes the JSON body into req and validates it. A body that
// is not JSON at all binds nothing, so it fails validation as missing
// parameters rather than as a malformed payload.
func bindRequest(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		var he *echo.HTTPError
		if !errors.As(err, &he) || he.Code != http.StatusUnsupportedMediaType {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
		}
	}
	return c.Validate(req)
}

// rawText returns the textual form of a JSON scalar: strings are unquoted,
// everything else is returned verbatim.
func rawText(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	var s string
	if len(raw) > 0 && raw[0] == '"' && json.Unmarshal(raw, &s) == nil {
		return s
	}
	return string(raw)
}
