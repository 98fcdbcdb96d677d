package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/museconnect/tutor-admin-api/api/swagger"
	"github.com/museconnect/tutor-admin-api/internal/handler"
	"github.com/museconnect/tutor-admin-api/internal/middleware"
	"github.com/museconnect/tutor-admin-api/internal/repository"
	"github.com/museconnect/tutor-admin-api/internal/service"
	"github.com/museconnect/tutor-admin-api/pkg/cache"
	"github.com/museconnect/tutor-admin-api/pkg/config"
	"github.com/museconnect/tutor-admin-api/pkg/database"
	"github.com/museconnect/tutor-admin-api/pkg/logger"
	corsmiddleware "github.com/museconnect/tutor-admin-api/pkg/middleware/cors"
	reqidmiddleware "github.com/museconnect/tutor-admin-api/pkg/middleware/requestid"
)

// @title MuseConnect Tutor Admin API
// @version 1.0.0
// @description Admin dashboard API for the tutoring referral service
// @BasePath /api/v1
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close()

	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to redis", "error", err)
	}
	defer redisClient.Close()

	metrics := service.NewMetricsService()

	cacheRepo := repository.NewCacheRepository(redisClient, logr)
	cacheService := service.NewCacheService(cacheRepo, metrics, cfg.Enquiries.CacheTTL, logr, cfg.Enquiries.CacheEnabled)

	ownerRepo := repository.NewBookingOwnerRepository(db)
	studentRepo := repository.NewStudentRepository(db)
	tutorRepo := repository.NewTutorRepository(db)
	archiveRepo := repository.NewArchiveRepository(db)
	userRepo := repository.NewUserRepository(db)

	authService := service.NewAuthService(userRepo, nil, logr, service.AuthConfig{
		AccessTokenSecret:  cfg.JWT.Secret,
		AccessTokenExpiry:  cfg.JWT.Expiration,
		RefreshTokenExpiry: cfg.JWT.RefreshExpiration,
		Issuer:             "tutor-admin-api",
	})

	enquiryService := service.NewEnquiryService(ownerRepo, cacheService, cfg.Enquiries.CacheTTL, logr)
	tutorService := service.NewTutorService(tutorRepo, cacheService, cfg.Enquiries.CacheTTL, nil, logr)
	notifications := service.NewNotificationService(cfg.Notify, logr)
	assignmentService := service.NewAssignmentService(ownerRepo, studentRepo, tutorService, enquiryService, notifications, metrics, nil, logr)
	archiveService := service.NewArchiveService(ownerRepo, studentRepo, archiveRepo, enquiryService, logr)
	exportService := service.NewExportService(enquiryService, cfg.Exports.Enabled, logr)
	dashboardService := service.NewDashboardService(ownerRepo, studentRepo, tutorRepo, archiveRepo, logr)

	notifications.Start(context.Background())
	defer notifications.Stop()

	authHandler := handler.NewAuthHandler(authService)
	enquiryHandler := handler.NewEnquiryHandler(enquiryService, assignmentService, archiveService, exportService)
	tutorHandler := handler.NewTutorHandler(tutorService)
	dashboardHandler := handler.NewDashboardHandler(dashboardService)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	publicPaths := []string{
		"/health",
		"/ready",
		"/metrics",
		"/docs/*any",
		cfg.APIPrefix + "/auth/login",
		cfg.APIPrefix + "/auth/refresh",
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metrics))
	r.Use(middleware.Guard(authService, publicPaths))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/ready", func(c *gin.Context) {
		if err := db.PingContext(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	{
		auth := api.Group("/auth")
		{
			auth.POST("/login", authHandler.Login)
			auth.POST("/refresh", authHandler.Refresh)
			auth.POST("/logout", authHandler.Logout)
		}

		enquiries := api.Group("/enquiries")
		{
			enquiries.GET("", enquiryHandler.List)
			enquiries.GET("/export", enquiryHandler.Export)
			enquiries.POST("/:id/assignments", enquiryHandler.Assign)
			enquiries.GET("/:id/allocatable-tutors", enquiryHandler.AllocatableTutors)
			enquiries.POST("/:id/archive", enquiryHandler.Archive)
			enquiries.DELETE("/:id", enquiryHandler.Delete)
		}

		api.DELETE("/students/:id", enquiryHandler.DeleteStudent)

		tutors := api.Group("/tutors")
		{
			tutors.GET("", tutorHandler.List)
			tutors.POST("", tutorHandler.Create)
			tutors.GET("/:id", tutorHandler.Get)
			tutors.PUT("/:id", tutorHandler.Update)
			tutors.DELETE("/:id", tutorHandler.Deactivate)
		}

		api.GET("/dashboard/stats", dashboardHandler.Stats)
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
