package handler

import (
	"net/http"
	"os"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// MetaHandler serves the service's self-description endpoints.
type MetaHandler struct {
	endpoints   []string
	membersFile string
	log         zerolog.Logger
}

func NewMetaHandler(endpoints []string, membersFile string, log zerolog.Logger) *MetaHandler {
	return &MetaHandler{endpoints: endpoints, membersFile: membersFile, log: log}
}

// Index lists the implemented endpoints.
//
// @Summary      Endpoint list
// @Tags         meta
// @Produce      json
// @Success      200  {object}  resultResponse
// @Router       / [get]
func (h *MetaHandler) Index(c echo.Context) error {
	return c.JSON(http.StatusOK, resultResponse{Status: true, Result: h.endpoints})
}

// Heartbeat always answers true.
//
// @Summary      Heartbeat
// @Tags         meta
// @Produce      json
// @Success      200  {object}  statusResponse
// @Router       /meta/heartbeat [get]
func (h *MetaHandler) Heartbeat(c echo.Context) error {
	return c.JSON(http.StatusOK, statusResponse{Status: true})
}

// Members returns the team members listed one per line in the members file.
//
// @Summary      Team members
// @Tags         meta
// @Produce      json
// @Success      200  {object}  resultResponse
// @Router       /meta/members [get]
func (h *MetaHandler) Members(c echo.Context) error {
	raw, err := os.ReadFile(h.membersFile)
	if err != nil {
		h.log.Warn().Err(err).Str("file", h.membersFile).Msg("members file unavailable")
		return c.JSON(http.StatusOK, statusResponse{Status: false, Error: "Team members unavailable."})
	}

	members := []string{}
	for _, line := range strings.Split(strings.TrimSpace(string(raw)), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			members = append(members, line)
		}
	}
	return c.JSON(http.StatusOK, resultResponse{Status: true, Result: members})
}
