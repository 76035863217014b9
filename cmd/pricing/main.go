// Command pricing runs the standalone pricing service consumed by the
// vehicles API. It seeds a small price catalogue on startup and serves
// read-only lookups under /services.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/tbourn/go-vehicles-backend/internal/http/middleware"
	"github.com/tbourn/go-vehicles-backend/internal/pricing"
	"github.com/tbourn/go-vehicles-backend/internal/repo"
	"github.com/tbourn/go-vehicles-backend/internal/sysutil"
)

func main() {
	_ = godotenv.Load()

	port := sysutil.FirstNonEmpty(os.Getenv("PRICING_PORT"), "8082")
	dbPath := sysutil.FirstNonEmpty(os.Getenv("PRICING_DB_PATH"), "prices.db")

	if sysutil.IsTruthy(os.Getenv("LOG_PRETTY")) {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}
	sysutil.SetLogLevel(os.Getenv("LOG_LEVEL"))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := repo.OpenSQLite(dbPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", dbPath).Msg("open database failed")
	}
	if err := pricing.AutoMigrate(db); err != nil {
		log.Fatal().Err(err).Msg("migration failed")
	}
	if err := pricing.Seed(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("seeding prices failed")
	}

	gin.SetMode(sysutil.FirstNonEmpty(os.Getenv("GIN_MODE"), "release"))
	r := gin.New()
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.Metrics())
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	pricing.NewHandler(db).RegisterRoutes(r)

	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           r,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Msg("pricing service listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutdown signal received")

	sctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(sctx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
	log.Info().Msg("pricing service stopped")
}
