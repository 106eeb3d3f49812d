package main

import (
	"time"

	"realty-stream/internal/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// configure all middleware for the router
func (a *App) setupMiddleware() {
	a.Router.Use(setupCORS(a.Config.IsProduction()))
	a.Router.Use(middleware.MetricsMiddleware())
	a.Router.Use(middleware.LoggingMiddleware())
	a.Router.Use(middleware.RateLimitMiddleware(a.RateLimiter))
	a.Router.Use(middleware.SecureHeaders(a.Config.IsProduction()))
	a.Router.Use(middleware.ErrorHandler())
	a.Router.Use(gin.Recovery())
}

// configure CORS middleware
func setupCORS(production bool) gin.HandlerFunc {
	corsConfig := cors.DefaultConfig()

	if production {
		corsConfig.AllowOrigins = []string{"http://localhost:3000"}
	} else {
		corsConfig.AllowAllOrigins = true
	}

	corsConfig.AllowMethods = []string{"GET", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Cache-Control", "Last-Event-ID", "X-Requested-With"}
	corsConfig.ExposeHeaders = []string{"Content-Length", middleware.StreamIDHeader, middleware.ErrorCodeHeader}
	corsConfig.MaxAge = 12 * time.Hour

	return cors.New(corsConfig)
}
