package api

import (
	"context"
	"net/http"
	"time"

	"github.com/Domenick1991/agentbooking/internal/metrics"
	"github.com/Domenick1991/agentbooking/internal/service/booking"
	"github.com/Domenick1991/agentbooking/internal/service/catalog"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// HealthCheck reports whether one dependency is reachable.
type HealthCheck func(ctx context.Context) error

// RouterConfig wires the handlers. Nil Limiter, Gatherer or empty
// CORSOrigins turn the matching middleware or endpoint off.
type RouterConfig struct {
	Catalog     catalog.CatalogUseCase
	Bookings    booking.BookingUseCase
	Limiter     *RateLimiter
	CORSOrigins []string
	Gatherer    prometheus.Gatherer
	Checks      map[string]HealthCheck
	Logger      *zap.Logger
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	router := gin.New()
	router.Use(Recovery(logger))
	router.Use(RequestLogger(logger))
	if len(cfg.CORSOrigins) > 0 {
		router.Use(cors.New(cors.Config{
			AllowOrigins:  cfg.CORSOrigins,
			AllowMethods:  []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:  []string{"Origin", "Content-Type", "Accept"},
			ExposeHeaders: []string{"Content-Length"},
			MaxAge:        12 * time.Hour,
		}))
	}

	router.GET("/healthz", healthz(cfg.Checks))
	if cfg.Gatherer != nil {
		router.GET("/metrics", gin.WrapH(metrics.Handler(cfg.Gatherer)))
	}

	v1 := router.Group("/api/v1")
	if cfg.Limiter != nil {
		v1.Use(cfg.Limiter.Middleware())
	}
	v1.GET("/options", options)
	NewAgentHandler(cfg.Catalog).Register(v1.Group("/agents"))
	NewFlowHandler(cfg.Bookings).Register(v1.Group("/flows"))
	NewBookingHandler(cfg.Bookings).Register(v1.Group("/bookings"))

	return router
}

func healthz(checks map[string]HealthCheck) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		status := http.StatusOK
		results := make(map[string]string, len(checks))
		for name, check := range checks {
			if err := check(ctx); err != nil {
				results[name] = err.Error()
				status = http.StatusServiceUnavailable
				continue
			}
			results[name] = "ok"
		}
		c.JSON(status, gin.H{"status": http.StatusText(status), "checks": results})
	}
}
