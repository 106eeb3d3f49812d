package main

import (
	"net/http"
	_ "net/http/pprof"

	"realty-stream/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// setupRoutes configures all routes
func (a *App) setupRoutes() {
	a.setupOpsRoutes()
	a.setupAPIRoutes()
}

// setupOpsRoutes configures health, metrics and profiling endpoints
func (a *App) setupOpsRoutes() {
	a.Router.GET("/health", a.HealthHandler.Health)
	a.Router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Expose pprof profiling endpoints (disabled in production)
	if !a.Config.IsProduction() {
		a.Router.GET("/debug/pprof/*any", gin.WrapH(http.DefaultServeMux))
	}
}

// setupAPIRoutes configures API routes
func (a *App) setupAPIRoutes() {
	api := a.Router.Group("/api")
	{
		scrape := api.Group("/scrape", middleware.StreamIDMiddleware())
		{
			scrape.GET("/", a.ProjectHandler.StreamProjects)
			scrape.GET("/:cityName", a.ProjectHandler.StreamProjects)
		}

		api.GET("/cities", a.CityHandler.ListCities)
		api.GET("/cities/:cityName", a.CityHandler.GetCity)
	}
}
