// Package api assembles the HTTP surface for whichever services are enabled.
package api

import (
	"context"
	"net/http"
	"time"

	"github.com/Marga-Ghale/ora-identity-services/internal/api/handlers"
	"github.com/Marga-Ghale/ora-identity-services/internal/api/middleware"
	"github.com/Marga-Ghale/ora-identity-services/internal/config"
	"github.com/Marga-Ghale/ora-identity-services/internal/logger"
	"github.com/Marga-Ghale/ora-identity-services/internal/models"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	healthPath  = "/health"
	metricsPath = "/metrics"
)

const healthCheckTimeout = 2 * time.Second

// PingFunc checks that a backing store is reachable.
type PingFunc func(ctx context.Context) error

// RouterDeps holds what NewRouter wires together. Everything but Config and
// Handlers is optional.
type RouterDeps struct {
	Config   *config.Config
	Handlers *handlers.Handlers
	Verifier middleware.TokenVerifier
	Audit    *middleware.AuditRecorder
	Gatherer prometheus.Gatherer

	AuditPing      PingFunc
	ImageIndexPing PingFunc
}

func NewRouter(deps RouterDeps) *gin.Engine {
	cfg := deps.Config
	h := deps.Handlers

	r := gin.New()
	r.Use(gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		logger.L().Errorw("Panic recovered", "panic", recovered, "path", c.Request.URL.Path, "requestId", middleware.GetRequestID(c))
		c.AbortWithStatusJSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "Internal error",
			Message: "An unexpected error occurred",
		})
	}))
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.Metrics())
	r.Use(cors.New(corsConfig(cfg.CORSOrigins)))

	if deps.Verifier != nil {
		r.Use(middleware.AuthMiddleware(deps.Verifier, healthPath, metricsPath))
	}
	if deps.Audit != nil {
		r.Use(deps.Audit.Middleware())
	}

	r.GET(healthPath, func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), healthCheckTimeout)
		defer cancel()

		audit := probe(ctx, deps.AuditPing)
		imageIndex := probe(ctx, deps.ImageIndexPing)

		overall := "healthy"
		if audit == "down" || imageIndex == "down" {
			overall = "degraded"
		}
		c.JSON(http.StatusOK, gin.H{
			"status":     overall,
			"timestamp":  time.Now().UTC(),
			"services":   cfg.Services,
			"auth":       status(deps.Verifier != nil),
			"audit":      audit,
			"imageIndex": imageIndex,
		})
	})
	if deps.Gatherer != nil {
		r.GET(metricsPath, gin.WrapH(promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{})))
	}

	if h.Member != nil {
		members := r.Group("/tenants/:tenantId/members")
		{
			members.POST("", h.Member.Create)
			members.GET("", h.Member.List)
			members.GET("/:loginId", h.Member.Get)
			members.PUT("/:loginId", h.Member.Update)
			members.DELETE("/:loginId", h.Member.Delete)
		}
		r.GET("/users/:userId", h.User.GetByID)
	}

	if h.Tenant != nil {
		tenants := r.Group("/tenants")
		{
			tenants.POST("", h.Tenant.Create)
			tenants.GET("", h.Tenant.List)
			tenants.GET("/:tenantId", h.Tenant.Get)
			tenants.PUT("/:tenantId", h.Tenant.Update)
			tenants.DELETE("/:tenantId", h.Tenant.Delete)
		}
	}

	if h.Relation != nil {
		relations := r.Group("/relations")
		{
			relations.POST("", h.Relation.Create)
			relations.DELETE("", h.Relation.Delete)
			relations.GET("/who-can-access", h.Relation.WhoCanAccess)
			relations.GET("/resource/:resourceId", h.Relation.ResourceRelations)
			relations.GET("/target/:targetId", h.Relation.TargetAccess)
		}
	}

	if h.Image != nil {
		r.POST("/upload-url", h.Image.UploadURL)
		r.GET("/download-url", h.Image.DownloadURL)
	}

	return r
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders: []string{"Content-Length", middleware.RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
		return cfg
	}
	for _, o := range origins {
		if o == "*" {
			cfg.AllowAllOrigins = true
			return cfg
		}
	}
	cfg.AllowOrigins = origins
	cfg.AllowCredentials = true
	return cfg
}

// probe reports "disabled" for a store that is not configured, otherwise
// "up" or "down".
func probe(ctx context.Context, ping PingFunc) string {
	if ping == nil {
		return "disabled"
	}
	if err := ping(ctx); err != nil {
		logger.L().Warnw("Health check failed", "error", err)
		return "down"
	}
	return "up"
}

func status(enabled bool) string {
	if enabled {
		return "enabled"
	}
	return "disabled"
}
