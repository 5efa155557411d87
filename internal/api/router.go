// Package api exposes the analysis service over HTTP.
package api

import (
	"log/slog"

	"github.com/gin-gonic/gin"
)

// NewRouter builds the gin engine with all routes and middleware.
func NewRouter(svc Analyzer, stats StatsSource, logger *slog.Logger) *gin.Engine {
	logger = logger.With("system", "http")
	h := &handlers{svc: svc, stats: stats, logger: logger}

	router := gin.New()
	router.Use(gin.Recovery(), RequestID(), Logger(logger))

	router.POST("/bias", h.bias)
	router.POST("/summarize", h.summarize)
	router.POST("/analyze", h.analyze)
	router.GET("/healthz", h.healthz)
	router.GET("/metrics", h.metrics)
	return router
}
