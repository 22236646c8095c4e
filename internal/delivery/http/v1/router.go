package v1

import (
	"net/http"

	"employee-onboarding-backend/config"
	"employee-onboarding-backend/internal/delivery/http/middleware"
	"employee-onboarding-backend/internal/delivery/http/response"
	"employee-onboarding-backend/internal/domain"
	"employee-onboarding-backend/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type RouterDeps struct {
	OnboardingUC domain.OnboardingUsecase
	HealthUC     usecase.HealthUsecase
	RateLimiter  *middleware.RateLimiter
	Config       *config.Config
}

func NewRouter(deps RouterDeps) *gin.Engine {
	cfg := deps.Config
	r := gin.New()

	// Global Middlewares
	r.Use(middleware.CORSMiddleware(cfg.FrontendURL, cfg.GinMode == gin.ReleaseMode)) // CORS must be first
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.ErrorHandler())

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := r.Group("/v1")

	v1.GET("/health", func(c *gin.Context) {
		status, ok := deps.HealthUC.Check(c.Request.Context())
		if !ok {
			response.Error(c, http.StatusServiceUnavailable, "System degraded", status)
			return
		}
		response.Success(c, http.StatusOK, "System operational", status)
	})

	v1.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	window := cfg.RateLimitWindow()
	onboarding := v1.Group("/onboarding")
	onboarding.Use(middleware.SecurityHeadersMiddleware())
	onboarding.Use(deps.RateLimiter.Middleware(middleware.GlobalRateLimitConfig(cfg.RateLimitGlobalThreshold, window)))
	{
		NewCatalogHandler(onboarding, deps.OnboardingUC)

		protected := onboarding.Group("")
		protected.Use(middleware.InviteAuth(cfg.OnboardingJWTSecret))
		submitLimit := deps.RateLimiter.Middleware(middleware.SubmitRateLimitConfig(cfg.RateLimitSubmitThreshold, window))
		NewOnboardingHandler(protected, deps.OnboardingUC, submitLimit)
	}

	return r
}
