package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/CS5331-ACKS/rest-api-development/internal/core/domain"
	"github.com/CS5331-ACKS/rest-api-development/internal/core/ports"
)

// DiaryHandler serves the diary endpoints. The order of checks in each
// handler is part of the API: clients see the first failure only.
type DiaryHandler struct {
	gate  ports.Gate
	diary ports.DiaryService
}

func NewDiaryHandler(gate ports.Gate, diary ports.DiaryService) *DiaryHandler {
	return &DiaryHandler{gate: gate, diary: diary}
}

// ListPublic returns every public entry.
//
// @Summary      Public feed
// @Tags         diary
// @Produce      json
// @Success      200  {object}  entriesResponse
// @Router       /diary [get]
func (h *DiaryHandler) ListPublic(c echo.Context) error {
	conn, err := requestConn(c)
	if err != nil {
		return err
	}

	entries, err := h.diary.ListPublic(c.Request().Context(), conn)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, entriesResponse{Status: true, Result: entries})
}

// ListOwn returns all entries of the token's owner.
//
// @Summary      Own entries
// @Tags         diary
// @Accept       json
// @Produce      json
// @Param        body  body      tokenRequest  true  "Token"
// @Success      200   {object}  entriesResponse
// @Router       /diary [post]
func (h *DiaryHandler) ListOwn(c echo.Context) error {
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
	entries, err := h.diary.ListByAuthor(ctx, conn, username)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, entriesResponse{Status: true, Result: entries})
}

// Create adds an entry authored by the token's owner.
//
// @Summary      Create entry
// @Tags         diary
// @Accept       json
// @Produce      json
// @Param        body  body      createEntryRequest  true  "Token, title, public flag and text"
// @Success      201   {object}  resultResponse  "result is the new entry id"
// @Router       /diary/create [post]
func (h *DiaryHandler) Create(c echo.Context) error {
	var req createEntryRequest
	if err := bindRequest(c, &req); err != nil {
		return err
	}
	public, err := h.gate.ValidateVisibility(req.Public)
	if err != nil {
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
	entry, err := h.diary.Create(ctx, conn, ports.CreateEntryInput{
		Author: username,
		Title:  *req.Title,
		Public: public,
		Text:   *req.Text,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, resultResponse{Status: true, Result: entry.ID})
}

// Delete removes an entry owned by the token's owner.
//
// @Summary      Delete entry
// @Tags         diary
// @Accept       json
// @Produce      json
// @Param        body  body      deleteEntryRequest  true  "Token and entry id"
// @Success      200   {object}  statusResponse
// @Router       /diary/delete [post]
func (h *DiaryHandler) Delete(c echo.Context) error {
	var req deleteEntryRequest
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
	id, err := domain.ParseEntryID(req.ID)
	if err != nil {
		return err
	}
	if err := h.gate.AuthorizeOwnsEntry(ctx, conn, username, id); err != nil {
		return err
	}

	if err := h.diary.Delete(ctx, conn, id, username); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, statusResponse{Status: true})
}

// Permission changes the visibility of an entry owned by the token's owner.
//
// @Summary      Change entry visibility
// @Tags         diary
// @Accept       json
// @Produce      json
// @Param        body  body      permissionRequest  true  "Token, entry id and public flag"
// @Success      200   {object}  statusResponse
// @Router       /diary/permission [post]
func (h *DiaryHandler) Permission(c echo.Context) error {
	var req permissionRequest
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
	id, err := domain.ParseEntryID(req.ID)
	if err != nil {
		return err
	}
	if err := h.gate.AuthorizeOwnsEntry(ctx, conn, username, id); err != nil {
		return err
	}
	public, err := h.gate.ValidateVisibility(req.Public)
	if err != nil {
		return err
	}

	if err := h.diary.SetVisibility(ctx, conn, id, username, public); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, statusResponse{Status: true})
}
