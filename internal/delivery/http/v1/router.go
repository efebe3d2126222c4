package v1

import (
	"time"

	"go-staffing-backend/config"
	"go-staffing-backend/internal/delivery/http/middleware"
	"go-staffing-backend/internal/domain"
	"go-staffing-backend/internal/usecase"
	"go-staffing-backend/pkg/auth"
	"go-staffing-backend/pkg/security"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type RouterDeps struct {
	AuthUC        domain.AuthUsecase
	JobUC         domain.JobUsecase
	CandidateUC   domain.CandidateUsecase
	ResumeUC      domain.ResumeUsecase
	ApplicationUC domain.ApplicationUsecase
	AdminUC       domain.AdminUsecase
	CompanyUC     domain.CompanyUsecase
	ContentUC     domain.ContentUsecase
	ContactUC     domain.ContactUsecase
	HealthUC      usecase.HealthUsecase
	UploadLimiter *security.UploadLimiter
	JWKSProvider  *auth.Provider
	Config        *config.Config
}

func NewRouter(deps RouterDeps) *gin.Engine {
	cfg := deps.Config
	window := time.Duration(cfg.RateLimitWindowSeconds) * time.Second

	r := gin.New()

	// Global Middlewares
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.SecurityHeadersMiddleware())
	r.Use(middleware.CORSMiddleware(cfg.CORSAllowedOrigin, cfg.IsProduction()))
	r.Use(middleware.CSRFMiddleware(cfg.IsProduction()))
	r.Use(middleware.RateLimitMiddleware(middleware.GlobalRateLimitConfig(cfg.RateLimitGlobalThreshold, window)))
	r.Use(middleware.ErrorHandler())

	v1 := r.Group("/v1")

	NewHealthHandler(v1, deps.HealthUC)
	v1.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Token verified, local user not required yet
	tokenOnly := v1.Group("")
	tokenOnly.Use(
		middleware.RateLimitMiddleware(middleware.AuthRateLimitConfig(cfg.RateLimitAuthThreshold, window)),
		middleware.TokenMiddleware(deps.JWKSProvider, cfg),
	)

	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(deps.JWKSProvider, cfg, deps.AuthUC))

	uploadLimit := middleware.UploadLimitMiddleware(deps.UploadLimiter)

	NewContactHandler(v1, deps.ContactUC)
	NewContentHandler(v1, deps.ContentUC)
	NewAuthHandler(tokenOnly, protected, deps.AuthUC, deps.CandidateUC)
	NewJobHandler(v1, protected, deps.JobUC)
	NewCompanyHandler(v1, protected, deps.CompanyUC)
	NewCandidateHandler(protected, deps.CandidateUC, deps.ResumeUC, uploadLimit)
	NewApplicationHandler(protected, deps.ApplicationUC)
	NewAdminHandler(protected, deps.AdminUC, deps.AuthUC, deps.ContentUC, deps.HealthUC)

	return r
}
