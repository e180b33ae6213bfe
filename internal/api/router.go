// Package api exposes the job, category and account endpoints over HTTP.
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"dwa/backend/internal/auth"
	"dwa/backend/internal/ingest"
	"dwa/backend/internal/repository"
)

// Ingester runs one ingestion on demand.
type Ingester interface {
	Run(ctx context.Context) (ingest.Summary, error)
}

// CategoryCache caches the category listing between ingestion runs.
type CategoryCache interface {
	Get(ctx context.Context, dst any) (found bool, err error)
	Set(ctx context.Context, v any) error
}

// Options configures NewRouter. Cache and StaticDir are optional.
type Options struct {
	Jobs      repository.JobStore
	Ingester  Ingester
	Auth      *auth.Service
	Cache     CategoryCache
	StaticDir string
	Service   string
	Version   string
}

// Handler holds the dependencies shared by the route handlers.
type Handler struct {
	jobs     repository.JobStore
	ingester Ingester
	auth     *auth.Service
	cache    CategoryCache
	service  string
	version  string
}

// NewRouter builds the gin engine with every route registered.
func NewRouter(o Options) *gin.Engine {
	h := &Handler{
		jobs:     o.Jobs,
		ingester: o.Ingester,
		auth:     o.Auth,
		cache:    o.Cache,
		service:  o.Service,
		version:  o.Version,
	}

	r := gin.New()
	r.Use(gin.Recovery(), requestLogger())

	corsCfg := cors.DefaultConfig()
	corsCfg.AllowAllOrigins = true
	corsCfg.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsCfg.AllowHeaders = []string{"Content-Type", "Authorization"}
	r.Use(cors.New(corsCfg))

	r.GET("/health", h.health)
	if o.StaticDir != "" {
		r.Static("/static", o.StaticDir)
	}

	test := r.Group("/api/test")
	{
		test.GET("", h.ping)
		test.GET("/test-fetch", h.testFetch)
	}

	jobs := r.Group("/api/jobs")
	{
		jobs.GET("", h.listJobs)
		jobs.GET("/categories", h.listCategories)
		jobs.GET("/categories/:categoryName", h.categoryDetail)
		jobs.GET("/fetch", h.triggerFetch)
		jobs.GET("/search", h.searchJobs)
		jobs.GET("/map", h.mapJobs)
	}

	accounts := r.Group("/api/auth")
	{
		accounts.POST("/register", h.register)
		accounts.POST("/login", h.login)
		accounts.GET("/validate-token", h.validateToken)
		accounts.GET("/profile", auth.RequireToken(h.auth), h.profile)
	}

	return r
}

func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": h.service,
		"version": h.version,
	})
}

func (h *Handler) ping(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "DWA Backend API is working!"})
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		slog.Debug("http request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}
