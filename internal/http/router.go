// Package httpapi wires the HTTP transport (Gin) to application services,
// middleware, and route handlers. It centralizes cross-cutting concerns such
// as tracing, correlation IDs, logging, panic recovery, metrics, language
// negotiation, authentication, CORS, security headers, and rate limiting.
//
// Design goals:
//   - Observability first (OTel + Prometheus)
//   - Safe-by-default middleware ordering (RequestID, logging, recovery)
//   - Deterministic, minimal router setup; all dependencies injected
package httpapi

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"gorm.io/gorm"

	"github.com/phytolife/go-phyto-backend/internal/config"
	"github.com/phytolife/go-phyto-backend/internal/http/handlers"
	"github.com/phytolife/go-phyto-backend/internal/http/middleware"
	"github.com/phytolife/go-phyto-backend/internal/notify"
	"github.com/phytolife/go-phyto-backend/internal/services"
)

// RegisterRoutes attaches all middleware and HTTP endpoints to the given Gin
// engine. Middleware order matters:
//  1. OpenTelemetry: trace everything
//  2. RequestID: generate/propagate correlation id
//  3. Logger: structured access logs
//  4. Recovery: capture panics after logger
//  5. Body size limiter and gzip
//  6. Metrics
//  7. Locale: negotiate the message language
//  8. Authenticate: resolve bearer tokens (before the limiter, so
//     authenticated traffic gets per-user buckets)
//  9. Rate limiter
//  10. CORS and security headers
func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg config.Config) {
	r.HandleMethodNotAllowed = true

	// Dependency injection: services get the DB handle and each other.
	authSvc := services.NewAuthService(db)
	authSvc.SessionTTL = cfg.SessionTTL
	mailer := notify.NewMailer()
	catalogSvc := services.NewCatalogService(db, mailer)
	supportSvc := services.NewSupportService(db)
	h := handlers.New(authSvc, catalogSvc, supportSvc)

	// 1) Trace all HTTP requests
	r.Use(otelgin.Middleware(cfg.OTEL.ServiceName))

	// 2) Correlate requests and logs
	r.Use(middleware.RequestID())

	// 3) Structured access logging
	r.Use(middleware.Logger())

	// 4) Panic recovery to JSON 500 (with request id)
	r.Use(middleware.Recovery())

	// 5) Global body size limit (1 MiB) and response compression
	r.Use(limitBody(1 << 20))
	r.Use(gzip.Gzip(gzip.DefaultCompression))

	// 6) Prometheus metrics and /metrics endpoint
	r.Use(middleware.Metrics())
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// 7) Message language negotiation
	r.Use(middleware.Locale())

	// 8) Bearer token resolution
	r.Use(middleware.Authenticate(authSvc))

	// 9) Token-bucket rate limiter per user/IP
	rl := middleware.NewRateLimiter(cfg.RateRPS, cfg.RateBurst, middleware.KeyByUserOrIP())
	r.Use(rl.Handler())

	// 10) CORS posture (safe defaults: allow all if none configured)
	if len(cfg.CORS.AllowedOrigins) == 0 {
		// Force ACAO: * even for requests without an Origin header.
		r.Use(func(c *gin.Context) {
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
			c.Next()
		})
		r.Use(cors.New(cors.Config{
			AllowAllOrigins:  true,
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Accept-Language", "Authorization"},
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
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Accept-Language", "Authorization"},
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

	// Fallbacks
	r.NoRoute(func(c *gin.Context) {
		handlers.Fail(c, http.StatusNotFound, handlers.ErrCodeNotFound, "route not found")
	})
	r.NoMethod(func(c *gin.Context) {
		handlers.Fail(c, http.StatusMethodNotAllowed, handlers.ErrCodeMethodNotAllowed, "method not allowed")
	})

	// Liveness/health
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	// Public API
	api := groupWithPrefix(r, cfg.APIBasePath)
	{
		// Accounts
		api.POST("/auth/signup", h.SignUp)
		api.POST("/auth/signin", h.SignIn)
		api.POST("/auth/signout", h.SignOut)
		api.GET("/auth/me", h.Me)

		// Content (public reads)
		api.GET("/posts", h.ListBlogPosts)
		api.GET("/posts/:id", h.GetBlogPost)
		api.GET("/programs", h.ListDietPrograms)
		api.GET("/programs/:id", h.GetDietProgram)
		api.GET("/classes", h.ListLiveClasses)
		api.GET("/classes/:id", h.GetLiveClass)

		// Purchases and bookings
		api.POST("/programs/:id/purchase", h.PurchaseProgram)
		api.POST("/classes/:id/tickets", h.PurchaseTicket)
		api.DELETE("/tickets/:id", h.CancelTicket)
		api.GET("/me/purchases", h.MyPurchases)
		api.GET("/me/tickets", h.MyTickets)

		// Support conversations
		api.POST("/support", h.OpenSupportTicket)
		api.GET("/support", h.ListSupportTickets)
		api.GET("/support/:id", h.GetSupportTicket)
		api.POST("/support/:id/messages", h.AddSupportMessage)
		api.PUT("/support/:id/status", h.UpdateSupportStatus)

		// Admin content management (authorization enforced in services)
		admin := api.Group("/admin")
		{
			admin.POST("/posts", h.CreateBlogPost)
			admin.PUT("/posts/:id", h.UpdateBlogPost)
			admin.DELETE("/posts/:id", h.DeleteBlogPost)

			admin.POST("/programs", h.CreateDietProgram)
			admin.PUT("/programs/:id", h.UpdateDietProgram)
			admin.DELETE("/programs/:id", h.DeleteDietProgram)

			admin.POST("/classes", h.CreateLiveClass)
			admin.PUT("/classes/:id", h.UpdateLiveClass)
			admin.DELETE("/classes/:id", h.DeleteLiveClass)

			admin.PUT("/users/:id/role", h.SetRole)
		}
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
