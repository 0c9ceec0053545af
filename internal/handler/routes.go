package handler

import (
	"net/http"
	"slices"
	"strings"
	"time"

	"openkey/internal/config"
	"openkey/internal/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// BuildInfo identifies the running binary
type BuildInfo struct {
	Version   string `json:"version"`
	BuildTime string `json:"build_time"`
	GitCommit string `json:"git_commit"`
}

// NewRouter builds the gin engine with recovery, request logging, CORS and
// every API route.
func NewRouter(
	cfg config.ServerConfig,
	searchService *service.SearchService,
	embeddingDims int,
	build BuildInfo,
	logger *logrus.Logger,
) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), RequestLogger(logger))
	router.Use(cors.New(corsConfig(cfg)))

	SetupRoutes(router, searchService, embeddingDims, build, logger)
	return router
}

func corsConfig(cfg config.ServerConfig) cors.Config {
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) == 0 || slices.Contains(cfg.AllowedOrigins, "*") {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	}
	if len(cfg.AllowedMethods) > 0 {
		corsConfig.AllowMethods = cfg.AllowedMethods
	}
	if len(cfg.AllowedHeaders) > 0 {
		corsConfig.AllowHeaders = cfg.AllowedHeaders
	}
	return corsConfig
}

// SetupRoutes registers the health, version and /api/v1 routes
func SetupRoutes(
	router *gin.Engine,
	searchService *service.SearchService,
	embeddingDims int,
	build BuildInfo,
	logger *logrus.Logger,
) {
	searchHandler := NewSearchHandler(searchService, logger)
	embeddingHandler := NewEmbeddingHandler(searchService, embeddingDims)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":     "healthy",
			"service":    "openkey",
			"version":    build.Version,
			"build_time": build.BuildTime,
			"git_commit": build.GitCommit,
		})
	})

	router.GET("/version", func(c *gin.Context) {
		c.JSON(http.StatusOK, build)
	})

	apiV1 := router.Group("/api/v1")
	{
		apiV1.POST("/search", searchHandler.Search)
		apiV1.POST("/parse", searchHandler.Parse)
		apiV1.GET("/projects/:id", searchHandler.GetProject)
		apiV1.GET("/projects/:id/similar", searchHandler.SimilarProjects)

		apiV1.POST("/embeddings/batch", embeddingHandler.BatchUpdate)
	}

	router.NoRoute(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/api") {
			c.JSON(http.StatusNotFound, gin.H{"error": "API endpoint not found"})
			return
		}
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	})
}

// RequestLogger logs one line per request through logrus
func RequestLogger(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		entry := logger.WithFields(logrus.Fields{
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"status":     c.Writer.Status(),
			"latency_ms": time.Since(start).Milliseconds(),
			"client_ip":  c.ClientIP(),
		})
		switch {
		case c.Writer.Status() >= http.StatusInternalServerError:
			entry.Error("Request failed")
		case c.Writer.Status() >= http.StatusBadRequest:
			entry.Warn("Request rejected")
		default:
			entry.Debug("Request served")
		}
	}
}
