// Package httpapi wires the HTTP transport (Gin) to the fault services,
// middleware, and route handlers. It centralizes cross-cutting concerns such
// as tracing, correlation IDs, logging/redaction, panic recovery, metrics,
// compression, CORS and security headers.
//
// Design goals:
//   - Put observability first (OTel + Prometheus)
//   - Safe-by-default middleware ordering (RequestID → logging → recovery)
//   - Deterministic router setup; every dependency is built from Config
//   - Every response, including fallbacks, is a JSON body
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

	"github.com/tbourn/go-fault-demo/internal/config"
	_ "github.com/tbourn/go-fault-demo/internal/docs" // registers the OpenAPI document
	"github.com/tbourn/go-fault-demo/internal/domain"
	"github.com/tbourn/go-fault-demo/internal/external"
	"github.com/tbourn/go-fault-demo/internal/http/handlers"
	"github.com/tbourn/go-fault-demo/internal/http/middleware"
	"github.com/tbourn/go-fault-demo/internal/repo"
	"github.com/tbourn/go-fault-demo/internal/services"
)

// userRepoShim adapts the repository free functions to the services.UserRepo
// interface expected by the DBService.
type userRepoShim struct{}

// ListUsers proxies repo.ListUsers.
func (userRepoShim) ListUsers(ctx context.Context, db *gorm.DB) ([]domain.User, error) {
	return repo.ListUsers(ctx, db)
}

// QueryMissingTable proxies repo.QueryMissingTable.
func (userRepoShim) QueryMissingTable(ctx context.Context, db *gorm.DB) ([]map[string]any, error) {
	return repo.QueryMissingTable(ctx, db)
}

// InsertDuplicateUser proxies repo.InsertDuplicateUser.
func (userRepoShim) InsertDuplicateUser(ctx context.Context, db *gorm.DB) error {
	return repo.InsertDuplicateUser(ctx, db)
}

// InsertNullUser proxies repo.InsertNullUser.
func (userRepoShim) InsertNullUser(ctx context.Context, db *gorm.DB) error {
	return repo.InsertNullUser(ctx, db)
}

// corsMethods is the method allowlist; the API is read-only.
var corsMethods = []string{http.MethodGet, http.MethodOptions}

// RegisterRoutes attaches all middleware and HTTP endpoints to the given Gin
// engine. It configures observability (tracing, metrics), compression, CORS
// and security headers, health, metrics and docs endpoints, and then mounts
// the fault routes under cfg.APIBasePath.
//
// Middleware order matters:
//  1. OpenTelemetry: trace everything
//  2. RequestID: generate/propagate correlation id
//  3. RedactingLogger: structured access log with scrubbing
//  4. Metrics
//  5. Gzip: wraps the writer for everything below it
//  6. Recovery: capture panics inside gzip so the fallback body is compressed
//     by a live writer
//  7. CORS and Security headers
func RegisterRoutes(r *gin.Engine, cfg config.Config) {
	r.HandleMethodNotAllowed = true

	// 1) Trace all HTTP requests
	r.Use(otelgin.Middleware(cfg.OTEL.ServiceName))

	// 2) Correlate requests and logs
	r.Use(middleware.RequestID())

	// 3) Structured logging with redaction
	r.Use(middleware.RedactingLogger(middleware.RedactOptions{
		MaskHeaders: []string{"X-API-Key"},
	}))

	// 4) Prometheus metrics
	r.Use(middleware.Metrics())

	// 5) Response compression for clients that ask for it
	r.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{"/metrics"})))

	// 6) Panic recovery to JSON 500
	r.Use(middleware.Recovery())

	// 7) CORS posture (allow all if none configured)
	if len(cfg.CORS.AllowedOrigins) == 0 {
		// Force ACAO: * even for requests without an Origin header.
		r.Use(func(c *gin.Context) {
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
			c.Next()
		})
		r.Use(cors.New(cors.Config{
			AllowAllOrigins:  true,
			AllowMethods:     corsMethods,
			AllowHeaders:     []string{"Origin", "Accept", "X-Request-ID"},
			ExposeHeaders:    []string{"X-Request-ID", "Content-Length"},
			AllowCredentials: false, // must remain false with AllowAllOrigins
			MaxAge:           12 * time.Hour,
		}))
	} else {
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
			AllowMethods:     corsMethods,
			AllowHeaders:     []string{"Origin", "Accept", "X-Request-ID"},
			ExposeHeaders:    []string{"X-Request-ID", "Content-Length"},
			AllowCredentials: false,
			MaxAge:           12 * time.Hour,
		}))
	}

	// Security headers; fault responses are never cacheable.
	r.Use(middleware.SecurityHeaders(middleware.SecurityOptions{
		EnableHSTS:   cfg.Security.EnableHSTS,
		HSTSMaxAge:   cfg.Security.HSTSMaxAge,
		NoStore:      true,
		EnablePolicy: true,
	}))

	// Fallbacks
	r.NoRoute(func(c *gin.Context) {
		handlers.Fail(c, http.StatusNotFound, "route not found", "")
	})
	r.NoMethod(func(c *gin.Context) {
		handlers.Fail(c, http.StatusMethodNotAllowed, "method not allowed", "")
	})

	// Liveness/health and Prometheus exposition
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	if cfg.SwaggerEnabled {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	// Dependency injection: services ← connector/client/dir
	dbSvc := services.NewDBService(repo.NewConnector(cfg.DB), userRepoShim{}, cfg.DB.BadHost)
	countrySvc := services.NewCountryService(external.NewClient(cfg.External))
	fileSvc := &services.FileService{Dir: cfg.FilesDir}
	h := handlers.New(dbSvc, countrySvc, fileSvc)

	api := groupWithPrefix(r, cfg.APIBasePath)
	{
		// Database
		api.GET("/db/listado-usuarios", h.ListUsers)
		api.GET("/db/conexion-fallida", h.ConnectionFailed)
		api.GET("/db/tabla-inexistente", h.MissingTable)
		api.GET("/db/valores-duplicados", h.DuplicateValues)
		api.GET("/db/valores-nulos", h.NullValues)

		// Country API
		api.GET("/externa/recurso-existente", h.ExistingCountry)
		api.GET("/externa/recurso-inexistente", h.MissingCountry)
		api.GET("/externa/solicitud-erronea", h.MalformedRequest)

		// Local files
		api.GET("/externa/archivo/correcto", h.ReadableFile)
		api.GET("/externa/archivo/inexistente", h.MissingFile)
		api.GET("/externa/archivo/restringido", h.RestrictedFile)
	}
}

// groupWithPrefix mounts a group at prefix, treating "/" (or empty) as root.
func groupWithPrefix(r *gin.Engine, prefix string) *gin.RouterGroup {
	if prefix == "" || prefix == "/" {
		return r.Group("")
	}
	return r.Group(prefix)
}
