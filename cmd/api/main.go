package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/s-ao213/next-task-app/api/swagger"
	"github.com/s-ao213/next-task-app/internal/handler"
	"github.com/s-ao213/next-task-app/internal/middleware"
	"github.com/s-ao213/next-task-app/internal/repository"
	"github.com/s-ao213/next-task-app/internal/service"
	"github.com/s-ao213/next-task-app/pkg/cache"
	"github.com/s-ao213/next-task-app/pkg/config"
	"github.com/s-ao213/next-task-app/pkg/database"
	"github.com/s-ao213/next-task-app/pkg/logger"
	corsmiddleware "github.com/s-ao213/next-task-app/pkg/middleware/cors"
	reqidmiddleware "github.com/s-ao213/next-task-app/pkg/middleware/requestid"
)

// @title Next Task App API
// @version 1.0.0
// @description Task, event and test tracking for a school class
// @BasePath /api/v1
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

const shutdownTimeout = 10 * time.Second

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
		logr.Sugar().Fatalw("database connection failed", "error", err)
	}
	defer db.Close()

	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		// Redis backs caching and the change feed; the API itself still works.
		logr.Sugar().Warnw("redis unavailable, caching and realtime disabled", "error", err)
		redisClient = nil
	}

	validate := validator.New()
	metricsSvc := service.NewMetricsService()

	var cacheSvc *service.CacheService
	if redisClient != nil {
		cacheRepo := repository.NewCacheRepository(redisClient, logr)
		cacheSvc = service.NewCacheService(cacheRepo, metricsSvc, cfg.Dashboard.CacheTTL, logr, cfg.Dashboard.Enabled)
	}

	notifierSvc := service.NewNotifierService(redisClient, cacheSvc, metricsSvc, logr, service.NotifierServiceConfig{
		Enabled:        cfg.Realtime.Enabled,
		ChannelPrefix:  cfg.Realtime.ChannelPrefix,
		ClientBuffer:   cfg.Realtime.ClientBuffer,
		PublishTimeout: cfg.Realtime.PublishTimeout,
	})

	userRepo := repository.NewUserRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	eventRepo := repository.NewEventRepository(db)
	testRepo := repository.NewTestRepository(db)

	authSvc := service.NewAuthService(userRepo, validate, logr, service.AuthConfig{
		AccessTokenSecret:  cfg.JWT.Secret,
		AccessTokenExpiry:  cfg.JWT.Expiration,
		RefreshTokenExpiry: cfg.JWT.RefreshExpiration,
		Issuer:             "next-task-app",
	})
	userSvc := service.NewUserService(userRepo, validate, logr)
	taskSvc := service.NewTaskService(taskRepo, notifierSvc, validate, logr, service.TaskServiceConfig{
		UrgentWindowDays: cfg.Tasks.UrgentWindowDays,
	})
	eventSvc := service.NewEventService(eventRepo, notifierSvc, validate, logr)
	testSvc := service.NewTestService(testRepo, taskRepo, notifierSvc, validate, logr)
	calendarSvc := service.NewCalendarService(taskSvc, eventSvc, testSvc, logr)
	dashboardSvc := service.NewDashboardService(service.DashboardServiceParams{
		Tasks:  taskSvc,
		Events: eventSvc,
		Tests:  testSvc,
		Cache:  cacheSvc,
		Logger: logr,
		Config: service.DashboardServiceConfig{CacheTTL: cfg.Dashboard.CacheTTL},
	})
	exportSvc := service.NewExportService(taskSvc, cfg.Exports.Enabled, logr, nil, nil)
	reminderSvc := service.NewReminderService(userSvc, taskSvc, testSvc, notifierSvc, logr, service.ReminderServiceConfig{
		Enabled:     cfg.Reminders.Enabled,
		Interval:    cfg.Reminders.Interval,
		Concurrency: cfg.Reminders.Concurrency,
		MaxRetries:  cfg.Reminders.MaxRetries,
	})

	authHandler := handler.NewAuthHandler(authSvc)
	userHandler := handler.NewUserHandler(userSvc)
	taskHandler := handler.NewTaskHandler(taskSvc)
	eventHandler := handler.NewEventHandler(eventSvc)
	testHandler := handler.NewTestHandler(testSvc)
	calendarHandler := handler.NewCalendarHandler(calendarSvc)
	dashboardHandler := handler.NewDashboardHandler(dashboardSvc)
	exportHandler := handler.NewExportHandler(exportSvc)
	changesHandler := handler.NewChangesHandler(notifierSvc)
	metricsHandler := handler.NewMetricsHandler(metricsSvc, db)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", metricsHandler.Ready)
	r.GET("/metrics", metricsHandler.Prometheus)
	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	{
		auth := api.Group("/auth")
		{
			auth.POST("/signup", authHandler.Signup)
			auth.POST("/login", authHandler.Login)
			auth.POST("/refresh", authHandler.Refresh)
			auth.POST("/logout", middleware.JWT(authSvc), authHandler.Logout)
		}

		protected := api.Group("")
		protected.Use(middleware.JWT(authSvc))
		{
			protected.GET("/me", userHandler.Me)
			protected.PUT("/me/student-id", userHandler.UpdateStudentID)
			protected.PUT("/me/notification-days", userHandler.UpdateNotificationDays)
			protected.GET("/users/by-student-id/:sid", userHandler.GetByStudentID)

			protected.GET("/tasks", taskHandler.List)
			protected.POST("/tasks", taskHandler.Create)
			protected.GET("/tasks/export", exportHandler.TaskList)
			protected.GET("/tasks/:id", taskHandler.Get)
			protected.PUT("/tasks/:id", taskHandler.Update)
			protected.DELETE("/tasks/:id", taskHandler.Delete)
			protected.PUT("/tasks/:id/status", taskHandler.ToggleStatus)

			protected.GET("/events", eventHandler.List)
			protected.POST("/events", eventHandler.Create)
			protected.GET("/events/:id", eventHandler.Get)
			protected.PUT("/events/:id", eventHandler.Update)
			protected.DELETE("/events/:id", eventHandler.Delete)

			protected.GET("/tests", testHandler.List)
			protected.POST("/tests", testHandler.Create)
			protected.GET("/tests/:id", testHandler.Get)
			protected.PUT("/tests/:id", testHandler.Update)
			protected.DELETE("/tests/:id", testHandler.Delete)
			protected.PUT("/tests/:id/notification", testHandler.ToggleNotification)

			protected.GET("/calendar", calendarHandler.MonthGrid)
			protected.GET("/dashboard", dashboardHandler.Summary)
			protected.GET("/changes", changesHandler.Stream)
			protected.GET("/metrics/snapshot", metricsHandler.Snapshot)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	reminderSvc.Start(ctx)
	defer reminderSvc.Stop()

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: r,
	}

	go func() {
		logr.Sugar().Infow("server starting", "addr", srv.Addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	logr.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Sugar().Errorw("graceful shutdown failed", "error", err)
	}
}
