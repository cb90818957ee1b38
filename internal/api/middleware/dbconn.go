package middleware

import (
	"context"
	"database/sql"

	"github.com/labstack/echo/v4"

	"github.com/CS5331-ACKS/rest-api-development/internal/pkg/dbx"
)

// ConnKey is the echo context key holding the request's dbx.DBTX.
const ConnKey = "db_conn"

// DBConn checks out a dedicated connection for the duration of the request
// and releases it on every exit path, panics included.
func DBConn(db *sql.DB) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			return dbx.WithConn(c.Request().Context(), db, func(_ context.Context, conn dbx.DBTX) error {
				c.Set(ConnKey, conn)
				defer c.Set(ConnKey, nil)
				return next(c)
			})
		}
	}
}
