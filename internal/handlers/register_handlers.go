package handlers

import (
	"fmt"
	"net/http"

	"github.com/dustbill/dustbill_backend/cmd/docs"
	portssvc "github.com/dustbill/dustbill_backend/internal/core/ports/services"
	"github.com/dustbill/dustbill_backend/internal/middleware"
	"github.com/dustbill/dustbill_backend/internal/utils"
	"github.com/dustbill/dustbill_backend/pkg/config"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// loginRate throttles credential guessing independently of the general API rate.
const loginRate = "5-M"

// RouterDeps carries optional infrastructure the routes hook into. Zero values are valid.
type RouterDeps struct {
	Redis     *redis.Client
	Analytics *utils.PosthogClientWrapper
}

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	deps RouterDeps,
) error {
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})
	r.GET("/status", newStatusHandler(cfg.IsProduction).getStatus)

	apiLimiter, err := middleware.NewLimiter(cfg.RateLimit, deps.Redis, "dustbill:rl:api")
	if err != nil {
		return fmt.Errorf("api rate limit: %w", err)
	}
	loginLimiter, err := middleware.NewLimiter(loginRate, deps.Redis, "dustbill:rl:login")
	if err != nil {
		return fmt.Errorf("login rate limit: %w", err)
	}
	publicLimiter, err := middleware.NewLimiter(cfg.PublicRateLimit, deps.Redis, "dustbill:rl:public")
	if err != nil {
		return fmt.Errorf("public rate limit: %w", err)
	}

	authHandler := newAuthHandler(cfg, services, deps.Analytics)
	authGroup := r.Group("/api/v1", middleware.RateLimit(apiLimiter))
	registerAuthRoutes(authGroup, authHandler, newGoogleOAuthHandler(services, authHandler), middleware.RateLimit(loginLimiter))

	setupAPIV1Routes(r, cfg, services, middleware.RateLimit(apiLimiter))

	public := r.Group("/public", middleware.OptionalAuthMiddleware(cfg.JWTSecret), middleware.RateLimit(publicLimiter))
	registerPublicRoutes(public, services, cfg.PublicURL)

	setupSwaggerRoutes(r, cfg)
	return nil
}

// setupAPIV1Routes configures the authenticated /api/v1 routes and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	limit gin.HandlerFunc,
) {
	v1 := r.Group("/api/v1", limit, middleware.AuthMiddleware(cfg.JWTSecret))

	registerProfileRoutes(v1, services.Profile)
	registerClientRoutes(v1, services.Client)
	registerInvoiceRoutes(v1, services, cfg.PublicURL)
	registerContractRoutes(v1, services, cfg.PublicURL)
	registerNotificationRoutes(v1, services.Notification)
	registerDashboardRoutes(v1, services.Dashboard, cfg.PublicURL)
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
