package handler

import (
	"errors"

	"github.com/labstack/echo/v4"

	"github.com/CS5331-ACKS/rest-api-development/internal/api/middleware"
	"github.com/CS5331-ACKS/rest-api-development/internal/pkg/dbx"
)

var errNoConn = errors.New("request has no database connection")

// requestConn returns the connection checked out by the DBConn middleware.
// Its absence is a wiring bug and surfaces as an internal error.
func requestConn(c echo.Context) (dbx.DBTX, error) {
	conn, ok := c.Get(middleware.ConnKey).(dbx.DBTX)
	if !ok || conn == nil {
		return nil, errNoConn
	}
	return conn, nil
}
