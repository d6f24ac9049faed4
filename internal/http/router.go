// Package httpapi wires the HTTP transport (Gin) to application services,
// middleware, and route handlers. It centralizes cross-cutting concerns such
// as tracing, correlation IDs, logging, panic recovery, metrics, CORS,
// security headers, compression, and rate limiting.
//
// Design goals:
//   - Put observability first (OTel + Prometheus)
//   - Safe-by-default middleware ordering (RequestID → logging → recovery)
//   - Deterministic, minimal router setup; all dependencies injected
//   - Soft-fail routing: anything unmatched redirects to the home page
package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"gorm.io/gorm"

	"github.com/tbourn/go-wheel-backend/internal/config"
	"github.com/tbourn/go-wheel-backend/internal/domain"
	"github.com/tbourn/go-wheel-backend/internal/geo"
	"github.com/tbourn/go-wheel-backend/internal/http/handlers"
	"github.com/tbourn/go-wheel-backend/internal/http/middleware"
	"github.com/tbourn/go-wheel-backend/internal/repo"
	"github.com/tbourn/go-wheel-backend/internal/services"
)

// wheelRepoShim adapts the repository free functions to the
// services.WheelRepo interface expected by the WheelService. This keeps
// services decoupled from the concrete repo package while reusing existing
// functions.
type wheelRepoShim struct{}

// CreateWheel proxies repo.CreateWheel.
func (wheelRepoShim) CreateWheel(ctx context.Context, db *gorm.DB, names []string, creatorCountry string) (*domain.Wheel, error) {
	return repo.CreateWheel(ctx, db, names, creatorCountry)
}

// GetWheel proxies repo.GetWheel.
func (wheelRepoShim) GetWheel(ctx context.Context, db *gorm.DB, uniqueID string) (*domain.Wheel, error) {
	return repo.GetWheel(ctx, db, uniqueID)
}

// TouchWheel proxies repo.TouchWheel.
func (wheelRepoShim) TouchWheel(ctx context.Context, db *gorm.DB, uniqueID string) error {
	return repo.TouchWheel(ctx, db, uniqueID)
}

// UpdateWheelNames proxies repo.UpdateWheelNames.
func (wheelRepoShim) UpdateWheelNames(ctx context.Context, db *gorm.DB, uniqueID string, names []string) error {
	return repo.UpdateWheelNames(ctx, db, uniqueID, names)
}

// visitRepoShim adapts the visit repository functions to services.VisitRepo.
type visitRepoShim struct{}

// CreateVisit proxies repo.CreateVisit.
func (visitRepoShim) CreateVisit(ctx context.Context, db *gorm.DB, v *domain.Visit) error {
	return repo.CreateVisit(ctx, db, v)
}

// statsRepoShim adapts the aggregate queries to services.StatsRepo.
type statsRepoShim struct{}

func (statsRepoShim) DistinctVisitors(ctx context.Context, db *gorm.DB) (int64, error) {
	return repo.DistinctVisitors(ctx, db)
}

func (statsRepoShim) DistinctVisitorsSince(ctx context.Context, db *gorm.DB, since time.Time) (int64, error) {
	return repo.DistinctVisitorsSince(ctx, db, since)
}

func (statsRepoShim) CountVisits(ctx context.Context, db *gorm.DB) (int64, error) {
	return repo.CountVisits(ctx, db)
}

func (statsRepoShim) CountWheels(ctx context.Context, db *gorm.DB) (int64, error) {
	return repo.CountWheels(ctx, db)
}

func (statsRepoShim) RecentWheels(ctx context.Context, db *gorm.DB, limit int) ([]repo.WheelStats, error) {
	return repo.RecentWheels(ctx, db, limit)
}

func (statsRepoShim) CountryBreakdown(ctx context.Context, db *gorm.DB, limit int) ([]repo.CountryCount, error) {
	return repo.CountryBreakdown(ctx, db, limit)
}

// RegisterRoutes attaches all middleware and HTTP endpoints to the given Gin
// engine. It configures observability (tracing, metrics), rate limiting,
// CORS and security headers, health and metrics endpoints, and then mounts
// the page routes.
//
// Middleware order matters:
//  1. OpenTelemetry: trace everything
//  2. RequestID: generate/propagate correlation id
//  3. Logger: structured access logs
//  4. Recovery: capture panics after logger
//  5. Body size limiter
//  6. Gzip compression
//  7. Metrics
//  8. Rate limiter (per IP)
//  9. CORS and Security headers
func RegisterRoutes(r *gin.Engine, db *gorm.DB, resolver geo.CountryResolver, cfg config.Config) {
	// 1) Trace all HTTP requests
	r.Use(otelgin.Middleware(cfg.OTEL.ServiceName))

	// 2) Correlate requests and logs
	r.Use(middleware.RequestID())

	// 3) Structured access logging
	r.Use(middleware.Logger())

	// 4) Panic recovery to 500 (with request id)
	r.Use(middleware.Recovery())

	// 5) Global body size limit (1 MiB); the forms here are tiny
	r.Use(limitBody(1 << 20))

	// 6) Compress page responses
	r.Use(gzip.Gzip(gzip.DefaultCompression))

	// 7) Prometheus metrics and /metrics endpoint
	r.Use(middleware.Metrics())
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// 8) Token-bucket rate limiter per client IP
	rl := middleware.NewRateLimiter(cfg.RateRPS, cfg.RateBurst, middleware.KeyByIP())
	r.Use(rl.Handler())

	// 9) CORS posture (safe defaults: allow all if none configured)
	if len(cfg.CORS.AllowedOrigins) == 0 {
		r.Use(func(c *gin.Context) {
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
			c.Next()
		})
		r.Use(cors.New(cors.Config{
			AllowAllOrigins:  true,
			AllowMethods:     []string{"GET", "POST", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
			ExposeHeaders:    []string{"X-Request-ID", "Content-Length"},
			AllowCredentials: false, // must remain false with AllowAllOrigins
			MaxAge:           12 * time.Hour,
		}))
	} else {
		// Echo ACAO with the request Origin when it is in the allowlist (in addition to gin-contrib/cors).
		allowed := make(map[string]struct{}, len(cfg.CORS.AllowedOrigins))
		for _, o := range cfg.CORS.AllowedOrigins {
			allowed[o] = struct{}{}
		}
		r.Use(func(c *gin.Context) {
			if origin := c.GetHeader("Origin"); origin != "" {
				if _, ok := allowed[origin]; ok {
					h := c.Writer.Header()
					h.Set("Access-Control-Allow-Origin", origin)
					h.Add("Vary", "Origin")
				}
			}
			c.Next()
		})
		r.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.CORS.AllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
			ExposeHeaders:    []string{"X-Request-ID", "Content-Length"},
			AllowCredentials: false,
			MaxAge:           12 * time.Hour,
		}))
	}

	// Security headers (HSTS only when enabled and request is HTTPS)
	r.Use(middleware.SecurityHeaders(middleware.SecurityOptions{
		EnableHSTS:   cfg.Security.EnableHSTS,
		HSTSMaxAge:   cfg.Security.HSTSMaxAge,
		NoStore:      false,
		EnablePolicy: true,
	}))

	// Pages are HTML
	r.SetHTMLTemplate(loadTemplates())

	// Soft-fail fallback: any unmatched path goes home
	r.NoRoute(handlers.RedirectHome)

	// Liveness/health
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	// Dependency injection: services ← repo/db/resolver
	wheelSvc := services.NewWheelService(db, wheelRepoShim{})
	visitSvc := services.NewVisitService(db, visitRepoShim{}, resolver)
	statsSvc := services.NewStatsService(db, statsRepoShim{})
	h := handlers.New(wheelSvc, visitSvc, statsSvc, resolver, cfg.AdminPassword)

	// Pages
	r.GET("/", h.Home)
	r.POST("/", h.Home)
	r.GET("/wheel/:id", h.Wheel)
	r.POST("/wheel/:id", h.Wheel)
	r.GET("/admin", h.Admin)
	r.POST("/admin", h.Admin)
}

// limitBody returns a Gin middleware that caps the request body size for all
// endpoints to maxBytes using http.MaxBytesReader. Requests exceeding the cap
// will cause downstream body reads to error.
func limitBody(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}
