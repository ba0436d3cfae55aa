package routes

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"eventbook/internal/analytics"
	"eventbook/internal/auth"
	"eventbook/internal/bookings"
	"eventbook/internal/events"
	"eventbook/internal/shared/config"
	"eventbook/internal/shared/database"
	"eventbook/pkg/cache"
)

// Router wires every feature's repository, service and controller onto the
// gin engine.
type Router struct {
	config       *config.Config
	db           *database.DB
	cacheService cache.Service
	notifier     bookings.Notifier

	authService auth.Service
}

func NewRouter(cfg *config.Config, db *database.DB, cacheService cache.Service, notifier bookings.Notifier) *Router {
	return &Router{
		config:       cfg,
		db:           db,
		cacheService: cacheService,
		notifier:     notifier,
	}
}

func (r *Router) SetupRoutes(engine *gin.Engine) {
	r.setupHealthRoutes(engine)

	// The client API lives at the root, no version prefix.
	api := engine.Group("")
	{
		r.setupAuthRoutes(api)
		r.setupEventRoutes(api)
		r.setupBookingRoutes(api)
		r.setupAnalyticsRoutes(api)
	}

	engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))
}

func (r *Router) setupHealthRoutes(engine *gin.Engine) {
	engine.GET("/health", func(c *gin.Context) {
		if err := r.db.HealthCheck(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":    "unhealthy",
				"error":     err.Error(),
				"timestamp": time.Now(),
				"service":   "eventbook",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now(),
			"service":   "eventbook",
		})
	})

	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
}

func (r *Router) setupAuthRoutes(rg *gin.RouterGroup) {
	authRepo := auth.NewRepository(r.db.PostgreSQL)
	tokens := auth.NewTokenService(r.config.JWT)
	r.authService = auth.NewService(authRepo, tokens)
	authController := auth.NewController(r.authService)

	auth.SetupAuthRoutes(rg, authController)
}

func (r *Router) setupEventRoutes(rg *gin.RouterGroup) {
	eventRepo := events.NewRepository(r.db.PostgreSQL)
	eventService := events.NewService(eventRepo, r.config.Redis.CacheTTL)
	if r.cacheService != nil {
		eventService.SetCacheService(r.cacheService)
	}
	eventController := events.NewController(eventService)

	events.SetupEventRoutes(rg, eventController, r.authService.Tokens())
}

func (r *Router) setupBookingRoutes(rg *gin.RouterGroup) {
	bookingRepo := bookings.NewRepository(r.db.PostgreSQL)
	bookingService := bookings.NewService(bookingRepo, r.authService.Tokens())
	if r.cacheService != nil {
		bookingService.SetCacheService(r.cacheService)
	}
	if r.notifier != nil {
		bookingService.SetNotifier(r.notifier)
	}
	bookingController := bookings.NewController(bookingService)

	bookings.SetupBookingRoutes(rg, bookingController)
}

func (r *Router) setupAnalyticsRoutes(rg *gin.RouterGroup) {
	analyticsRepo := analytics.NewRepository(r.db.PostgreSQL)
	analyticsService := analytics.NewService(analyticsRepo, r.config.Redis.CacheTTL)
	if r.cacheService != nil {
		analyticsService.SetCacheService(r.cacheService)
	}
	analyticsController := analytics.NewController(analyticsService)

	analytics.SetupAnalyticsRoutes(rg, analyticsController, r.authService.Tokens())
}
