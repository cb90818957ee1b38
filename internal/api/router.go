package api

import (
	"database/sql"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/CS5331-ACKS/rest-api-development/docs"
	"github.com/CS5331-ACKS/rest-api-development/internal/api/handler"
	"github.com/CS5331-ACKS/rest-api-development/internal/api/middleware"
	"github.com/CS5331-ACKS/rest-api-development/internal/core/ports"
	"github.com/CS5331-ACKS/rest-api-development/internal/core/service"
	"github.com/CS5331-ACKS/rest-api-development/pkg/logger"
)

// Endpoints advertised by GET /.
var Endpoints = []string{
	"/",
	"/meta/heartbeat",
	"/meta/members",
	"/users",
	"/users/register",
	"/users/authenticate",
	"/users/expire",
	"/diary",
	"/diary/create",
	"/diary/delete",
	"/diary/permission",
}

// Deps carries everything the router wires into handlers. Audit, FeedCache
// and the prometheus fields are optional.
type Deps struct {
	DB    *sql.DB
	Repos ports.Repositories
	Log   zerolog.Logger

	Audit     ports.AuditLog
	FeedCache ports.FeedCache

	BcryptCost   int
	MembersFile  string
	CORSOrigins  []string
	HealthChecks []handler.HealthCheck

	// Registerer and Gatherer default to a private registry, so several
	// routers can coexist in one process.
	Registerer prometheus.Registerer
	Gatherer   prometheus.Gatherer
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)

	if d.Registerer == nil || d.Gatherer == nil {
		reg := prometheus.NewRegistry()
		d.Registerer, d.Gatherer = reg, reg
	}
	origins := d.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{AllowOrigins: origins}))
	e.Use(requestLogger(logger.Component(d.Log, "http")))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:                 "diary",
		Registerer:                d.Registerer,
		DoNotUseRequestPathFor404: true,
	}))

	// --- Dependencies ---
	creds := service.NewCredentialService(d.Repos, d.BcryptCost, d.Audit, logger.Component(d.Log, "credentials"))
	ledger := service.NewTokenLedger(d.Repos, d.Audit, logger.Component(d.Log, "tokens"))
	gate := service.NewGate(ledger, d.Repos)
	diary := service.NewDiaryService(d.Repos, d.FeedCache, d.Audit, logger.Component(d.Log, "diary"))

	userHandler := handler.NewUserHandler(creds, ledger, gate)
	diaryHandler := handler.NewDiaryHandler(gate, diary)
	metaHandler := handler.NewMetaHandler(Endpoints, d.MembersFile, logger.Component(d.Log, "meta"))
	healthHandler := handler.NewHealthHandler(d.HealthChecks...)
	dbConn := middleware.DBConn(d.DB)

	// --- Meta ---
	e.GET("/", metaHandler.Index)
	e.GET("/meta/heartbeat", metaHandler.Heartbeat)
	e.GET("/meta/members", metaHandler.Members)

	// --- Users ---
	e.POST("/users", userHandler.Profile, dbConn)
	e.POST("/users/register", userHandler.Register, dbConn)
	e.POST("/users/authenticate", userHandler.Authenticate, dbConn)
	e.POST("/users/expire", userHandler.Expire, dbConn)

	// --- Diary ---
	e.GET("/diary", diaryHandler.ListPublic, dbConn)
	e.POST("/diary", diaryHandler.ListOwn, dbConn)
	e.POST("/diary/create", diaryHandler.Create, dbConn)
	e.POST("/diary/delete", diaryHandler.Delete, dbConn)
	e.POST("/diary/permission", diaryHandler.Permission, dbConn)

	// --- Operations ---
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: d.Gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

// requestLogger writes one access log line per request through zerolog.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(_ echo.Context, v echomiddleware.RequestLoggerValues) error {
			event := log.Info()
			if v.Error != nil {
				event = log.Warn().Err(v.Error)
			}
			event.
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
