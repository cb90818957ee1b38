// @title        Secret Diary API
// @version      1.0
// @description  Multi-user diary service with token authentication.
// @BasePath     /
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/CS5331-ACKS/rest-api-development/internal/api"
	"github.com/CS5331-ACKS/rest-api-development/internal/api/handler"
	"github.com/CS5331-ACKS/rest-api-development/internal/core/ports"
	mongostore "github.com/CS5331-ACKS/rest-api-development/internal/infrastructure/db/mongo"
	redisstore "github.com/CS5331-ACKS/rest-api-development/internal/infrastructure/db/redis"
	"github.com/CS5331-ACKS/rest-api-development/internal/infrastructure/db/sqlstore"
	"github.com/CS5331-ACKS/rest-api-development/internal/pkg/config"
	"github.com/CS5331-ACKS/rest-api-development/pkg/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := Run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func Run(ctx context.Context) error {
	// 1. Config
	cfg := config.Load()

	// 2. Logger
	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "diary",
	})

	// 3. Relational store (migrations run on open)
	db, err := sqlstore.Open(ctx, cfg.DB.Driver, cfg.DB.DSN, cfg.DB.MaxOpenConns)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()
	log.Info().Str("driver", cfg.DB.Driver).Msg("database ready")

	checks := []handler.HealthCheck{{Name: "database", Ping: db.PingContext}}

	// 4. Audit trail (optional)
	var audit ports.AuditLog
	if cfg.Mongo.URI != "" {
		client, mdb, err := mongostore.Connect(ctx, mongostore.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			return fmt.Errorf("failed to connect to mongo: %w", err)
		}
		defer func() { _ = client.Disconnect(context.Background()) }()

		repo := mongostore.NewAuditRepository(mdb)
		if err := repo.EnsureIndexes(ctx); err != nil {
			log.Warn().Err(err).Msg("audit indexes not created")
		}
		audit = repo
		checks = append(checks, handler.HealthCheck{Name: "mongo", Ping: mongostore.Ping(client)})
		log.Info().Str("database", cfg.Mongo.Database).Msg("audit trail enabled")
	}

	// 5. Public feed cache (optional)
	var cache ports.FeedCache
	if cfg.Redis.Addr != "" {
		rdb, err := redisstore.Connect(ctx, redisstore.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			log.Warn().Err(err).Msg("redis unavailable, feed cache disabled")
		} else {
			defer rdb.Close()
			cache = redisstore.NewFeedCache(rdb, cfg.Redis.FeedCacheTTL)
			checks = append(checks, handler.HealthCheck{Name: "redis", Ping: redisstore.Ping(rdb)})
			log.Info().Str("addr", cfg.Redis.Addr).Msg("feed cache enabled")
		}
	}

	// 6. Router
	e := api.NewRouter(api.Deps{
		DB:           db,
		Repos:        sqlstore.Store{},
		Log:          log,
		Audit:        audit,
		FeedCache:    cache,
		BcryptCost:   cfg.BcryptCost,
		MembersFile:  cfg.MembersFile,
		CORSOrigins:  cfg.CORSOrigins,
		HealthChecks: checks,
		Registerer:   prometheus.DefaultRegisterer,
		Gatherer:     prometheus.DefaultGatherer,
	})

	// 7. Serve with graceful shutdown
	serverErr := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Msg("starting server")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case err := <-serverErr:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
		log.Info().Msg("shutting down server")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exiting")
	return nil
}
