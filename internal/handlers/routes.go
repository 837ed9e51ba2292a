package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"causes-api/internal/auth"
	"causes-api/internal/config"
	"causes-api/internal/middleware"
)

// RouterConfig holds configuration for setting up routes
type RouterConfig struct {
	CausesHandler *CausesHandler
	Verifier      *auth.TokenVerifier
	RateLimit     config.RateLimitConfig
	Logger        *logrus.Logger
}

// NewRouter builds the gin engine with the middleware chain and routes
func NewRouter(cfg *RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(middleware.Recovery(cfg.Logger))
	router.Use(middleware.RequestID())
	router.Use(middleware.StructuredLogger(cfg.Logger))
	router.Use(middleware.CORS())
	router.Use(middleware.SecurityHeaders())

	SetupRoutes(router, cfg)
	return router
}

// SetupRoutes configures all API routes
func SetupRoutes(router *gin.Engine, cfg *RouterConfig) {
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "causes-api",
			"mode":    config.GetDeploymentMode(),
		})
	})

	v1 := router.Group("/api/v1")
	v1.Use(middleware.RateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst, cfg.Logger))
	v1.Use(middleware.Authentication(cfg.Verifier, cfg.Logger))
	{
		v1.GET("/causes", cfg.CausesHandler.ListCauses)
	}
}
