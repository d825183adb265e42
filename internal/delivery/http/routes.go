package http

import (
	"github.com/gin-gonic/gin"
	"github.com/productgoat/backend/config"
)

// SetupRouter creates and configures the Gin router
func SetupRouter(cfg *config.Config, handler *Handler) *gin.Engine {
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Global middleware
	router.Use(RecoveryMiddleware())
	router.Use(LoggerMiddleware())
	router.Use(CORSMiddleware(cfg.Server.AllowedOrigins))
	if cfg.RateLimit.PerIP > 0 {
		router.Use(RateLimitMiddleware(cfg.RateLimit.PerIP))
	}

	// Health check endpoint
	router.GET("/health", handler.HealthCheck)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		products := v1.Group("/products")
		{
			products.GET("/:barcode", handler.GetProduct)
			products.POST("/:barcode/insights", handler.GenerateInsights)
		}

		v1.GET("/profile", handler.GetProfile)
		v1.PUT("/profile", handler.PutProfile)

		onboarding := v1.Group("/onboarding")
		{
			onboarding.POST("", handler.StartOnboarding)
			onboarding.GET("/:id", handler.GetOnboarding)
			onboarding.POST("/:id/next", handler.OnboardingNext)
			onboarding.POST("/:id/back", handler.OnboardingBack)
			onboarding.PATCH("/:id", handler.UpdateOnboarding)
		}

		scan := v1.Group("/scan")
		{
			scan.POST("/sessions", handler.StartScanSession)
			scan.DELETE("/sessions/:id", handler.StopScanSession)
		}
	}

	return router
}
