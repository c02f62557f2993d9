// Package httpapi wires the HTTP transport (Gin) to the lookup service,
// middleware, and route handlers. It centralizes cross-cutting concerns:
// tracing, correlation IDs, redacted logging, panic recovery, metrics,
// compression, edge rate limiting, CORS, and security headers.
//
// Middleware order matters:
//  1. OpenTelemetry: trace everything
//  2. RequestID: generate/propagate correlation id
//  3. RedactingLogger: structured logs with key/subject scrubbing
//  4. Recovery: capture panics after logger
//  5. Body size limiter
//  6. Metrics
//  7. Gzip
//  8. Edge rate limiter (per API key / IP)
//  9. CORS and security headers
package httpapi

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerfiles "github.com/swaggo/files"
	ginswagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"gorm.io/gorm"

	_ "github.com/simdex/go-lookup-gateway/docs"
	"github.com/simdex/go-lookup-gateway/internal/config"
	"github.com/simdex/go-lookup-gateway/internal/http/handlers"
	"github.com/simdex/go-lookup-gateway/internal/http/middleware"
	"github.com/simdex/go-lookup-gateway/internal/keystore"
	"github.com/simdex/go-lookup-gateway/internal/services"
	"github.com/simdex/go-lookup-gateway/internal/throttle"
	"github.com/simdex/go-lookup-gateway/internal/upstream"
)

// RegisterRoutes attaches all middleware and endpoints to the given Gin
// engine. Dependencies are injected: the credential store, the optional
// audit DB handle, and the configuration.
func RegisterRoutes(r *gin.Engine, store *keystore.Store, db *gorm.DB, cfg config.Config) {
	r.HandleMethodNotAllowed = true

	// 1) Trace all HTTP requests
	r.Use(otelgin.Middleware(cfg.OTEL.ServiceName))

	// 2) Correlate requests and logs
	r.Use(middleware.RequestID())

	// 3) Structured logging with key/subject redaction
	r.Use(middleware.RedactingLogger(middleware.RedactOptions{}))

	// 4) Panic recovery to JSON 500 (with request id)
	r.Use(middleware.Recovery())

	// 5) Global body size limit (64 KiB; the API only reads query strings)
	r.Use(limitBody(64 << 10))

	// 6) Prometheus metrics and /metrics endpoint
	r.Use(middleware.Metrics())
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// 7) Compress JSON responses
	r.Use(gzip.Gzip(gzip.DefaultCompression))

	// 8) Edge token-bucket rate limiter per API key / IP
	rl := middleware.NewRateLimiter(cfg.RateRPS, cfg.RateBurst, middleware.KeyByAPIKeyOrIP())
	r.Use(rl.Handler())

	// 9) CORS posture (allow all if none configured; a public lookup API)
	if len(cfg.CORS.AllowedOrigins) == 0 {
		r.Use(cors.New(cors.Config{
			AllowAllOrigins:  true,
			AllowMethods:     []string{"GET", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
			ExposeHeaders:    []string{"X-Request-ID", "Content-Length"},
			AllowCredentials: false, // must remain false with AllowAllOrigins
			MaxAge:           12 * time.Hour,
		}))
	} else {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.CORS.AllowedOrigins,
			AllowMethods:     []string{"GET", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
			ExposeHeaders:    []string{"X-Request-ID", "Content-Length"},
			AllowCredentials: false,
			MaxAge:           12 * time.Hour,
		}))
	}

	// Security headers; responses embed per-key usage counters, never cache.
	r.Use(middleware.SecurityHeaders(middleware.SecurityOptions{
		EnableHSTS:   cfg.Security.EnableHSTS,
		HSTSMaxAge:   cfg.Security.HSTSMaxAge,
		NoStore:      true,
		EnablePolicy: true,
	}))

	// Fallbacks
	r.NoRoute(func(c *gin.Context) {
		handlers.Fail(c, http.StatusNotFound, handlers.ErrCodeNotFound, "route not found")
	})
	r.NoMethod(func(c *gin.Context) {
		handlers.Fail(c, http.StatusMethodNotAllowed, handlers.ErrCodeMethodNotAllowed, "method not allowed")
	})

	// Dependency injection: gate → client → service → handlers
	gate := throttle.NewIntervalGate(cfg.Upstream.MinInterval)
	client := upstream.NewClient(cfg.Upstream.BaseURL, cfg.Upstream.Path, cfg.Upstream.Timeout, gate)
	svc := services.NewLookupService(store, client, db)

	h := handlers.New(svc, cfg.Attribution)
	admin := handlers.NewAdmin(store, cfg.AdminSecret, db)

	// Liveness/health
	r.GET("/health", admin.Health)

	// Swagger UI (opt-in)
	if cfg.SwaggerEnabled {
		r.GET("/swagger/*any", ginswagger.WrapHandler(swaggerfiles.Handler))
	}

	// Public API
	api := groupWithPrefix(r, cfg.APIBasePath)
	{
		api.GET("/lookup", h.Lookup)
		api.GET("/keys", admin.ListKeys)
		api.GET("/lookups", admin.ListLookups)
	}
}

// limitBody caps the request body size for all endpoints.
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
