// Package httpapi wires the HTTP transport (Gin) to the aggregation service,
// middleware, and route handlers. It centralizes cross-cutting concerns such
// as tracing, correlation IDs, logging, panic recovery, metrics, compression,
// CORS, security headers, and rate limiting.
//
// Design goals:
//   - Observability first (OTel + Prometheus)
//   - Safe-by-default middleware ordering (RequestID → logging → recovery)
//   - Deterministic, minimal router setup; all dependencies injected
package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"gorm.io/gorm"

	"github.com/tbourn/go-vehicles-backend/internal/config"
	"github.com/tbourn/go-vehicles-backend/internal/domain"
	"github.com/tbourn/go-vehicles-backend/internal/http/handlers"
	"github.com/tbourn/go-vehicles-backend/internal/http/middleware"
	"github.com/tbourn/go-vehicles-backend/internal/repo"
	"github.com/tbourn/go-vehicles-backend/internal/services"

	_ "github.com/tbourn/go-vehicles-backend/docs" // swagger spec, generated by swag
)

// vehicleRepoShim adapts the repository free functions to the
// services.VehicleRepo interface expected by the VehicleService. This keeps
// the service decoupled from the concrete repo package while reusing the
// existing functions.
type vehicleRepoShim struct{}

func (vehicleRepoShim) CreateVehicle(ctx context.Context, db *gorm.DB, v *domain.Vehicle) (*domain.Vehicle, error) {
	return repo.CreateVehicle(ctx, db, v)
}

func (vehicleRepoShim) ListVehicles(ctx context.Context, db *gorm.DB) ([]domain.Vehicle, error) {
	return repo.ListVehicles(ctx, db)
}

func (vehicleRepoShim) GetVehicle(ctx context.Context, db *gorm.DB, id int64) (*domain.Vehicle, error) {
	return repo.GetVehicle(ctx, db, id)
}

func (vehicleRepoShim) UpdateVehicle(ctx context.Context, db *gorm.DB, v *domain.Vehicle) (*domain.Vehicle, error) {
	return repo.UpdateVehicle(ctx, db, v)
}

func (vehicleRepoShim) DeleteVehicle(ctx context.Context, db *gorm.DB, id int64) error {
	return repo.DeleteVehicle(ctx, db, id)
}

// RegisterRoutes attaches all middleware and HTTP endpoints to the given Gin
// engine, then mounts the versioned public API under the configured base
// path.
//
// Middleware order matters:
//  1. OpenTelemetry: trace everything
//  2. RequestID: generate/propagate correlation id
//  3. Logger: structured access logs
//  4. Recovery: capture panics after logger
//  5. Body size limiter
//  6. Metrics
//  7. Rate limiter (per client IP)
//  8. Gzip, CORS, and security headers
func RegisterRoutes(r *gin.Engine, db *gorm.DB, prices services.PriceLookup, maps services.AddressResolver, cfg config.Config) {
	r.HandleMethodNotAllowed = true

	// 1) Trace all HTTP requests
	r.Use(otelgin.Middleware(cfg.OTEL.ServiceName))

	// 2) Correlate requests and logs
	r.Use(middleware.RequestID())

	// 3) Structured logging
	r.Use(middleware.Logger())

	// 4) Panic recovery to JSON 500 (with request id)
	r.Use(middleware.Recovery())

	// 5) Global body size limit (1 MiB)
	r.Use(limitBody(1 << 20))

	// 6) Prometheus metrics and /metrics endpoint
	r.Use(middleware.Metrics())
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// 7) Token-bucket rate limiter per client IP
	rl := middleware.NewRateLimiter(cfg.RateRPS, cfg.RateBurst, middleware.KeyByClientIP())
	r.Use(rl.Handler())

	// 8) Compression, CORS, and security posture
	r.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{"/metrics"})))
	if len(cfg.CORS.AllowedOrigins) == 0 {
		r.Use(cors.New(cors.Config{
			AllowAllOrigins:  true,
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
			ExposeHeaders:    []string{"X-Request-ID", "Content-Length"},
			AllowCredentials: false, // must remain false with AllowAllOrigins
			MaxAge:           12 * time.Hour,
		}))
	} else {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.CORS.AllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
			ExposeHeaders:    []string{"X-Request-ID", "Content-Length"},
			AllowCredentials: false,
			MaxAge:           12 * time.Hour,
		}))
	}
	r.Use(middleware.SecurityHeaders(middleware.SecurityOptions{
		EnableHSTS:   cfg.Security.EnableHSTS,
		HSTSMaxAge:   cfg.Security.HSTSMaxAge,
		NoStore:      false,
		EnablePolicy: true,
	}))

	// Fallbacks
	r.NoRoute(func(c *gin.Context) {
		handlers.Fail(c, http.StatusNotFound, handlers.ErrCodeNotFound, "route not found")
	})
	r.NoMethod(func(c *gin.Context) {
		handlers.Fail(c, http.StatusMethodNotAllowed, handlers.ErrCodeMethodNotAllowed, "method not allowed")
	})

	// Liveness/health with a cheap store probe
	r.GET("/health", func(c *gin.Context) {
		n, err := repo.CountVehicles(c.Request.Context(), db)
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok", "vehicles": n})
	})

	// Swagger UI (gated; the OpenAPI document lives in docs/)
	if cfg.SwaggerEnabled {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	// Dependency injection: service ← repo/db/clients
	vehicleSvc := services.NewVehicleService(db, vehicleRepoShim{}, prices, maps)
	if cfg.EnrichWorkers > 0 {
		vehicleSvc.EnrichWorkers = cfg.EnrichWorkers
	}
	h := handlers.New(vehicleSvc)

	// Public API
	api := groupWithPrefix(r, cfg.APIBasePath) // e.g. "/api/v1"
	{
		api.GET("/vehicles", h.ListVehicles)
		api.GET("/vehicles/:id", h.GetVehicle)
		api.POST("/vehicles", h.CreateVehicle)
		api.PUT("/vehicles/:id", h.UpdateVehicle)
		api.DELETE("/vehicles/:id", h.DeleteVehicle)
	}
}

// limitBody returns a Gin middleware that caps the request body size for all
// endpoints to maxBytes using http.MaxBytesReader.
func limitBody(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}

// groupWithPrefix mounts a group at prefix, treating "/" (or empty) as root.
func groupWithPrefix(r *gin.Engine, prefix string) *gin.RouterGroup {
	if prefix == "" || prefix == "/" {
		return r.Group("")
	}
	return r.Group(prefix)
}
