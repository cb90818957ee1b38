package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/CS5331-ACKS/rest-api-development/internal/core/domain"
	"github.com/CS5331-ACKS/rest-api-development/internal/core/ports"
)

// UserHandler serves registration, login, logout and profile lookups.
type UserHandler struct {
	creds  ports.CredentialService
	ledger ports.TokenLedger
	gate   ports.Gate
}

func NewUserHandler(creds ports.CredentialService, ledger ports.TokenLedger, gate ports.Gate) *UserHandler {
	return &UserHandler{creds: creds, ledger: ledger, gate: gate}
}

// Register creates a new user account.
//
// @Summary      Register a new user
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Username, password, full name and age"
// @Success      201   {object}  statusResponse
// @Success      200   {object}  statusResponse  "status false: missing parameters, invalid age or existing user"
// @Router       /users/register [post]
func (h *UserHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := bindRequest(c, &req); err != nil {
		return err
	}
	conn, err := requestConn(c)
	if err != nil {
		return err
	}

	err = h.creds.Register(c.Request().Context(), conn, ports.RegisterInput{
		Username: *req.Username,
		Password: *req.Password,
		Fullname: *req.Fullname,
		Age:      rawText(req.Age),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, statusResponse{Status: true})
}

// Authenticate exchanges credentials for a fresh bearer token.
//
// @Summary      Log in
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      credentialsRequest  true  "Username and password"
// @Success      200   {object}  tokenResponse
// @Router       /users/authenticate [post]
func (h *UserHandler) Authenticate(c echo.Context) error {
	var req credentialsRequest
	if err := bindRequest(c, &req); err != nil {
		return err
	}
	conn, err := requestConn(c)
	if err != nil {
		return err
	}
	ctx := c.Request().Context()

	ok, err := h.creds.Verify(ctx, conn, *req.Username, *req.Password)
	if err != nil {
		return err
	}
	if !ok {
		return c.JSON(http.StatusOK, statusResponse{Status: false})
	}

	token, err := h.ledger.Issue(ctx, conn, *req.Username)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, tokenResponse{Status: true, Token: token.Value})
}

// Expire invalidates a token.
//
// @Summary      Log out
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      tokenRequest  true  "Token to expire"
// @Success      200   {object}  statusResponse
// @Router       /users/expire [post]
func (h *UserHandler) Expire(c echo.Context) error {
	var req tokenRequest
	if err := bindRequest(c, &req); err != nil {
		return err
	}
	conn, err := requestConn(c)
	if err != nil {
		return err
	}

	if err := h.gate.ExpireToken(c.Request().Context(), conn, *req.Token); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, statusResponse{Status: true})
}

// Profile returns the account behind a token.
//
// @Summary      Current user
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      tokenRequest  true  "Token"
// @Success      200   {object}  profileResponse
// @Router       /users [post]
func (h *UserHandler) Profile(c echo.Context) error {
	var req tokenRequest
	if err := bindRequest(c, &req); err != nil {
		return err
	}
	conn, err := requestConn(c)
	if err != nil {
		return err
	}
	ctx := c.Request().Context()

	username, err := h.gate.Authenticate(ctx, conn, *req.Token)
	if err != nil {
		return err
	}
	user, err := h.creds.Profile(ctx, conn, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.ErrUnauthorized
		}
		return err
	}

	return c.JSON(http.StatusOK, profileResponse{
		Status:   true,
		Username: user.Username,
		Fullname: user.Fullname,
		Age:      user.Age,
	})
}
