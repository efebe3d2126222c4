package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-staffing-backend/config"
	_ "go-staffing-backend/docs" // Important for Swagger
	v1 "go-staffing-backend/internal/delivery/http/v1"
	"go-staffing-backend/internal/domain"
	"go-staffing-backend/internal/repository/postgres"
	"go-staffing-backend/internal/usecase"
	"go-staffing-backend/pkg/auth"
	"go-staffing-backend/pkg/database"
	"go-staffing-backend/pkg/email"
	"go-staffing-backend/pkg/logger"
	"go-staffing-backend/pkg/redis"
	"go-staffing-backend/pkg/security"
	"go-staffing-backend/pkg/security/antivirus"
	"go-staffing-backend/pkg/storage"
	"go-staffing-backend/pkg/validation"
)

// @title           Staffing Backend API
// @version         1.0
// @description     Candidate intake, job listings and application workflow for an inclusive staffing agency.
// @host            localhost:8080
// @BasePath        /v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Setup Logger
	logger.Init(cfg.LogLevel)
	logger.Log.Info("Starting staffing backend", "port", cfg.Port, "env", cfg.Environment)

	ctx := context.Background()

	// 3. Setup Database
	dbPool, err := database.NewPostgresConnection(ctx, cfg.DBUrl)
	if err != nil {
		logger.Log.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer dbPool.Close()

	// 4. Setup Redis (optional)
	var redisCheck func(ctx context.Context) error
	if err := redis.Initialize(redis.Config{URL: cfg.RedisURL, Password: cfg.RedisPassword}); err != nil {
		logger.Log.Warn("Redis unavailable, rate limits fall back to memory", "error", err)
	} else {
		redisCheck = redis.HealthCheck
		defer redis.Close()
	}

	// 5. Security event logging
	secLog := security.InitSecurityLogger("staffing-backend", cfg.Environment)
	defer secLog.Sync()
	if cfg.SecurityLogToDB {
		secLog.SetPersistFunc(security.NewSecurityEventRepository(dbPool).PersistEvent)
	}

	// 6. Resume storage and scanning
	var objectStore domain.ObjectStorage = storage.Unconfigured{}
	if s3Store, err := storage.NewS3Store(ctx, storage.Config{
		Provider:        storage.Provider(cfg.S3Provider),
		AccessKeyID:     cfg.S3AccessKeyID,
		SecretAccessKey: cfg.S3SecretAccessKey,
		Region:          cfg.S3Region,
		Bucket:          cfg.S3Bucket,
		Endpoint:        cfg.S3Endpoint,
	}); err != nil {
		logger.Log.Warn("Object storage unavailable, resume operations will fail", "error", err)
	} else {
		objectStore = s3Store
	}

	var scanner antivirus.Scanner = antivirus.NewNoOpScanner()
	if cfg.ClamAVAddress != "" {
		scanner = antivirus.NewChainScanner(antivirus.NewClamAVScanner(cfg.ClamAVAddress, 30*time.Second))
	}

	// 7. Setup Repositories
	userRepo := postgres.NewUserRepository(dbPool)
	jobRepo := postgres.NewJobRepository(dbPool)
	candidateRepo := postgres.NewCandidateRepository(dbPool)
	applicationRepo := postgres.NewApplicationRepository(dbPool)
	companyRepo := postgres.NewCompanyRepository(dbPool)
	contentRepo := postgres.NewContentRepository(dbPool)
	adminRepo := postgres.NewAdminRepository(dbPool)

	// 8. Setup Email Service
	emailService := email.NewEmailService(cfg)
	if !emailService.IsConfigured() {
		logger.Log.Warn("Email service not fully configured - contact form will be unavailable")
	}

	// 9. Setup UseCases
	validate := validation.NewValidator()
	resumeDeps := usecase.ResumeDeps{
		Storage: objectStore,
		Scanner: scanner,
		SecLog:  secLog,
		Now:     time.Now,
		TTL:     cfg.ResumeURLTTL,
	}

	authUC := usecase.NewAuthUsecase(userRepo, secLog)
	jobUC := usecase.NewJobUsecase(jobRepo, validate, time.Now)
	candidateUC := usecase.NewCandidateUsecase(candidateRepo, userRepo, usecase.NewProfileIntake(validate, time.Now), resumeDeps)
	resumeUC := usecase.NewResumeUsecase(candidateRepo, resumeDeps)
	applicationUC := usecase.NewApplicationUsecase(applicationRepo, jobRepo, candidateRepo, validate, secLog, time.Now)
	adminUC := usecase.NewAdminUsecase(adminRepo, userRepo, candidateRepo, applicationRepo, secLog)
	companyUC := usecase.NewCompanyUsecase(companyRepo, validate)
	contentUC := usecase.NewContentUsecase(contentRepo, validate)
	contactUC := usecase.NewContactUsecase(emailService, validate)
	healthUC := usecase.NewHealthUsecase(dbPool, redisCheck)

	// 10. Setup Auth Provider (JWKS)
	var jwksProvider *auth.Provider
	if jwksURL := cfg.JWKSURL(); jwksURL != "" {
		jwksProvider = auth.NewProvider(jwksURL)
	}

	// 11. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		AuthUC:        authUC,
		JobUC:         jobUC,
		CandidateUC:   candidateUC,
		ResumeUC:      resumeUC,
		ApplicationUC: applicationUC,
		AdminUC:       adminUC,
		CompanyUC:     companyUC,
		ContentUC:     contentUC,
		ContactUC:     contactUC,
		HealthUC:      healthUC,
		UploadLimiter: security.NewUploadLimiter(cfg.UploadMaxPerMinute, cfg.UploadMaxPerDay),
		JWKSProvider:  jwksProvider,
		Config:        cfg,
	})

	// 12. Start Server
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Error("Listen failed", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}

	logger.Log.Info("Server exiting")
}
