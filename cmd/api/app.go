package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"realty-stream/internal/handlers"
	"realty-stream/internal/middleware"
	"realty-stream/internal/repositories"
	"realty-stream/internal/services"
	"realty-stream/internal/stream"
	"realty-stream/internal/transformers"
	"realty-stream/internal/validators"
	"realty-stream/pkg/cache"
	"realty-stream/pkg/config"
	"realty-stream/pkg/logger"
	"realty-stream/pkg/metrics"
	"realty-stream/pkg/positionstack"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/jonboulle/clockwork"
)

// App represents the application structure
type App struct {
	Config         *config.Config
	Clock          clockwork.Clock
	Router         *gin.Engine
	RedisClient    *redis.Client
	CacheStore     *cache.Store
	ProjectHandler *handlers.ProjectHandler
	CityHandler    *handlers.CityHandler
	HealthHandler  *handlers.HealthHandler
	RateLimiter    *middleware.RateLimiter
	Server         *http.Server

	background context.Context
	stop       context.CancelFunc
}

// Create and initialize a new App instance
func NewApp(cfg *config.Config) *App {
	ctx, stop := context.WithCancel(context.Background())
	app := &App{
		Config:     cfg,
		Clock:      clockwork.NewRealClock(),
		background: ctx,
		stop:       stop,
	}

	// Initialize infrastructure
	app.initializeCache()
	app.initializeMetrics()
	app.initializeRateLimiter()

	// Initialize business logic
	app.initializeDependencies()

	// Initialize web layer
	app.initializeRouter()

	return app
}

// connect to Redis when the geocode cache is configured to use it
func (a *App) initializeCache() {
	if !a.Config.Redis.Enabled {
		logger.GlobalLogger.Println("Redis disabled, geocode cache is in-process")
		return
	}

	redisCfg, err := cache.LoadRedisConfig(a.Config)
	if err != nil {
		logger.GlobalLogger.Errorf("Invalid Redis configuration: %v", err)
		os.Exit(1)
	}
	client, err := cache.NewRedisClient(a.background, redisCfg)
	if err != nil {
		logger.GlobalLogger.Errorf("Failed to initialize Redis: %v", err)
		os.Exit(1)
	}
	a.RedisClient = client
	a.CacheStore = cache.NewStore(client)
}

// initialize Prometheus metrics
func (a *App) initializeMetrics() {
	metrics.Init()
}

// initialize the rate limiter and its idle sweeper
func (a *App) initializeRateLimiter() {
	rl := a.Config.RateLimit
	a.RateLimiter = middleware.NewRateLimiter(middleware.PerMinute(rl.RequestsPerMinute), rl.Burst)
	go a.RateLimiter.Cleanup(a.background, 10*time.Minute, time.Hour)
}

// initialize all dependencies
func (a *App) initializeDependencies() {
	geo := a.Config.Geocoding

	// repositories
	var geocodeCache repositories.GeocodeCache
	if a.CacheStore != nil {
		geocodeCache = repositories.NewRedisGeocodeCache(a.CacheStore, geo.CacheTTL)
	} else {
		geocodeCache = repositories.NewMemoryGeocodeCache(geo.CacheSize)
	}

	// external clients
	var forward services.ForwardGeocoder
	if a.Config.GeocodingEnabled() {
		forward = positionstack.NewClient(geo.APIKey, geo.BaseURL, geo.Timeout)
	} else {
		logger.GlobalLogger.Warnf("POSITIONSTACK_API_KEY not set, unknown cities resolve to default coordinates")
	}

	// transformers
	prices := transformers.NewPriceTransformer()
	filter := transformers.NewListingFilter(prices)

	// validators
	cityValidator := validators.NewCityValidator()

	// services
	geocoder := services.NewGeocodingService(forward, geocodeCache, geo.Country)
	source := services.NewMockProjectSource(geocoder, a.Clock, a.Config.Stream.SourceLatency)
	emitter := stream.NewEmitter(a.Clock, a.Config.Stream.FrameDelay)

	// handlers
	a.ProjectHandler = handlers.NewProjectHandler(source, emitter, cityValidator)
	a.CityHandler = handlers.NewCityHandler(prices, filter)
	if a.CacheStore != nil {
		a.HealthHandler = handlers.NewHealthHandler(a.CacheStore)
	} else {
		a.HealthHandler = handlers.NewHealthHandler(nil)
	}
}

// set up the Gin router with middleware and routes
func (a *App) initializeRouter() {
	if a.Config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	a.Router = gin.New()
	a.setupMiddleware()
	a.setupRoutes()
}

// cleanup operations
func (a *App) cleanup() {
	a.stop()
	if a.RedisClient != nil {
		cache.CloseRedis(a.RedisClient)
	}
}
