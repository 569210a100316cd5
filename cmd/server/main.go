package main

//go:generate swag init -g cmd/server/main.go -d ../../ -o ../../docs --parseInternal

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	financeapp "github.com/kainnovads/apukainnovabe-sub001/internal/application/finance"
	"github.com/kainnovads/apukainnovabe-sub001/internal/infrastructure/cache"
	"github.com/kainnovads/apukainnovabe-sub001/internal/infrastructure/config"
	"github.com/kainnovads/apukainnovabe-sub001/internal/infrastructure/logger"
	"github.com/kainnovads/apukainnovabe-sub001/internal/infrastructure/mail"
	"github.com/kainnovads/apukainnovabe-sub001/internal/infrastructure/migration"
	"github.com/kainnovads/apukainnovabe-sub001/internal/infrastructure/persistence"
	"github.com/kainnovads/apukainnovabe-sub001/internal/infrastructure/scheduler"
	"github.com/kainnovads/apukainnovabe-sub001/internal/infrastructure/storage"
	"github.com/kainnovads/apukainnovabe-sub001/internal/infrastructure/telemetry"
	"github.com/kainnovads/apukainnovabe-sub001/internal/interfaces/http/handler"
	"github.com/kainnovads/apukainnovabe-sub001/internal/interfaces/http/middleware"
	"github.com/kainnovads/apukainnovabe-sub001/internal/interfaces/http/router"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	_ "github.com/kainnovads/apukainnovabe-sub001/docs"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// version is set at build time with -ldflags "-X main.version=..."
var version = "dev"

//	@title			ERP Backend API
//	@version		1.0
//	@description	Multi-tenant ERP: master data, inventory, purchasing and sales, finance, HR and basket analytics.

//	@contact.name	API Support
//	@contact.url	https://github.com/kainnovads/apukainnovabe-sub001

//	@host		localhost:8080
//	@BasePath	/api/v1

//	@externalDocs.description	OpenAPI
//	@externalDocs.url			https://swagger.io/resources/open-api/

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
		Service:    cfg.App.Name,
		Env:        cfg.App.Env,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting ERP Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("version", version),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Tracing and profiling
	tracerProvider, err := telemetry.NewTracerProvider(ctx, cfg.Telemetry, log)
	if err != nil {
		log.Fatal("Failed to initialize tracer provider", zap.Error(err))
	}
	profiler, err := telemetry.NewProfiler(cfg.Profiling, cfg.App.Name, log)
	if err != nil {
		log.Fatal("Failed to initialize profiler", zap.Error(err))
	}
	if tracerProvider.IsEnabled() && profiler.IsEnabled() {
		tracerProvider.EnableSpanProfiles()
	}

	// Database
	if cfg.Database.AutoMigrate {
		if err := runMigrations(cfg, log); err != nil {
			log.Fatal("Failed to apply migrations", zap.Error(err))
		}
	}

	var dbOpts []persistence.Option
	if cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled {
		dbOpts = append(dbOpts, persistence.WithPlugin(telemetry.NewDBTracingPlugin(cfg.Telemetry, log)))
	}
	db, err := persistence.NewDatabase(&cfg.Database, log, logger.MapGormLogLevel(cfg.Log.Level), dbOpts...)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	sqlDB, err := db.DB.DB()
	if err != nil {
		log.Fatal("Failed to get database handle", zap.Error(err))
	}
	log.Info("Database connected successfully")

	// Redis is optional. Without it idempotency keys stay in process memory
	// and association results are not cached.
	redisClient, err := cache.NewRedisClient(cfg.Redis)
	switch {
	case errors.Is(err, cache.ErrRedisDisabled):
		log.Warn("Redis not configured")
	case err != nil:
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	default:
		defer func() { _ = redisClient.Close() }()
		log.Info("Redis connected", zap.String("addr", cfg.Redis.Addr()))
	}

	idempotencyStore, err := cache.NewIdempotencyStoreFactory(redisClient, cfg.Idempotency.KeyPrefix,
		cache.WithLogger(log),
		cache.WithInMemoryFallback(true),
	).CreateStore()
	if err != nil {
		log.Fatal("Failed to create idempotency store", zap.Error(err))
	}

	files, err := storage.NewLocalStorage(cfg.Storage, log)
	if err != nil {
		log.Fatal("Failed to initialize upload storage", zap.Error(err))
	}

	var mailer financeapp.Mailer = mail.NewLogMailer(log)
	if cfg.Mail.Host != "" {
		mailer = mail.NewSMTPMailer(cfg.Mail, log)
	}

	var metrics *telemetry.Metrics
	if cfg.Telemetry.MetricsEnabled {
		metrics = telemetry.NewMetrics(sqlDB)
	}

	application := wire(deps{
		cfg:         cfg,
		db:          db.DB,
		redis:       redisClient,
		idempotency: idempotencyStore,
		files:       files,
		mailer:      mailer,
		metrics:     metrics,
		log:         log,
	})

	// Scheduler
	var reminderTrigger *scheduler.CronTrigger
	if cfg.Reminder.Enabled {
		reminderTrigger, err = newReminderTrigger(cfg.Reminder, application.reminders, redisClient, log)
		if err != nil {
			log.Fatal("Failed to configure reminder schedule", zap.Error(err))
		}
		if err := reminderTrigger.Start(ctx); err != nil {
			log.Fatal("Failed to start reminder trigger", zap.Error(err))
		}
	}

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()

	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Apply middleware stack in order:
	// 1. RequestID
	// 2. Recovery
	// 3. Logger
	// 4. Tracing and metrics
	// 5. Security headers and CORS
	// 6. BodyLimit
	// 7. RateLimit (if enabled)
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.TracingWithConfig(middleware.TracingConfig{
		ServiceName: cfg.Telemetry.ServiceName,
		Enabled:     cfg.Telemetry.Enabled,
	}))
	engine.Use(middleware.TracingAttributeInjector())
	if metrics != nil {
		engine.Use(middleware.HTTPMetrics(metrics))
	}
	engine.Use(middleware.SecureWithConfig(middleware.DefaultSecurityConfig()))

	corsConfig := middleware.DefaultCORSConfig()
	corsConfig.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	if len(cfg.HTTP.CORSAllowMethods) > 0 {
		corsConfig.AllowMethods = cfg.HTTP.CORSAllowMethods
	}
	if len(cfg.HTTP.CORSAllowHeaders) > 0 {
		corsConfig.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	stopCleanup := make(chan struct{})
	defer close(stopCleanup)
	if cfg.HTTP.RateLimitEnabled {
		rateLimiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		go rateLimiter.RunCleanup(time.Minute, stopCleanup)
		engine.Use(middleware.RateLimit(rateLimiter))
		log.Info("Rate limiting enabled",
			zap.Int("requests", cfg.HTTP.RateLimitRequests),
			zap.Duration("window", cfg.HTTP.RateLimitWindow),
		)
	}

	// Unversioned endpoints
	checks := map[string]handler.Pinger{
		"database": sqlDB.PingContext,
	}
	if redisClient != nil {
		checks["redis"] = func(ctx context.Context) error { return redisClient.Ping(ctx).Err() }
	}
	systemHandler := handler.NewSystemHandler(version, checks)
	engine.GET("/health", systemHandler.Health)
	if metrics != nil {
		engine.GET("/metrics", gin.WrapH(metrics.Handler()))
	}
	if cfg.Swagger.Enabled {
		engine.GET("/swagger/*any",
			middleware.SwaggerProtection(middleware.SwaggerConfig{
				Enabled:    cfg.Swagger.Enabled,
				AllowedIPs: cfg.Swagger.AllowedIPs,
			}),
			ginSwagger.WrapHandler(swaggerFiles.Handler),
		)
	}
	if strings.HasPrefix(cfg.Storage.PublicURL, "/") {
		engine.Static(strings.TrimSuffix(cfg.Storage.PublicURL, "/"), cfg.Storage.RootDir)
	}

	// Versioned API
	tenantConfig := middleware.DefaultTenantConfig()
	tenantConfig.Logger = log
	profilingConfig := middleware.DefaultProfilingConfig()
	profilingConfig.Enabled = profiler.IsEnabled()

	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	r.Use(
		middleware.TenantMiddlewareWithConfig(tenantConfig),
		middleware.Idempotency(),
		middleware.ProfilingWithConfig(profilingConfig),
	)
	r.Register(router.Routes(application.handlers)...)
	r.Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case <-ctx.Done():
		log.Info("Shutting down server...")
	case err := <-serverErr:
		log.Error("Server failed", zap.Error(err))
	}

	shutdownTimeout := cfg.HTTP.ShutdownTimeout
	if shutdownTimeout <= 0 {
		shutdownTimeout = 30 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}
	if reminderTrigger != nil {
		if err := reminderTrigger.Stop(shutdownCtx); err != nil {
			log.Warn("Reminder trigger did not stop cleanly", zap.Error(err))
		}
	}
	if err := tracerProvider.Shutdown(shutdownCtx); err != nil {
		log.Warn("Tracer provider shutdown failed", zap.Error(err))
	}
	if err := profiler.Stop(); err != nil {
		log.Warn("Profiler stop failed", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

func runMigrations(cfg *config.Config, log *zap.Logger) error {
	m, err := migration.New(cfg.Database.DSN(), log)
	if err != nil {
		return err
	}
	defer func() { _ = m.Close() }()
	return m.Up()
}

func newReminderTrigger(cfg config.ReminderConfig, job scheduler.Job, client *redis.Client, log *zap.Logger) (*scheduler.CronTrigger, error) {
	schedule, err := scheduler.ParseDailySchedule(cfg.CronSchedule)
	if err != nil {
		return nil, err
	}
	triggerConfig := scheduler.DefaultCronTriggerConfig()
	triggerConfig.Schedule = schedule
	triggerConfig.LockKey = "erp:cron"
	if cfg.CheckInterval > 0 {
		triggerConfig.CheckInterval = cfg.CheckInterval
	}
	if cfg.LockTTL > 0 {
		triggerConfig.LockTTL = cfg.LockTTL
	}

	var opts []scheduler.CronTriggerOption
	if client != nil {
		opts = append(opts, scheduler.WithLocker(scheduler.NewRedisLocker(client)))
	}
	return scheduler.NewCronTrigger(triggerConfig, job, log, opts...)
}
