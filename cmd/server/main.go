package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"

	analyticsapp "github.com/cafemenu/backend/internal/application/analytics"
	backupapp "github.com/cafemenu/backend/internal/application/backup"
	identityapp "github.com/cafemenu/backend/internal/application/identity"
	menuapp "github.com/cafemenu/backend/internal/application/menu"
	settingsapp "github.com/cafemenu/backend/internal/application/settings"
	systemapp "github.com/cafemenu/backend/internal/application/system"
	uploadapp "github.com/cafemenu/backend/internal/application/upload"
	menudomain "github.com/cafemenu/backend/internal/domain/menu"
	settingsdomain "github.com/cafemenu/backend/internal/domain/settings"
	"github.com/cafemenu/backend/internal/infrastructure/auth"
	"github.com/cafemenu/backend/internal/infrastructure/cache"
	"github.com/cafemenu/backend/internal/infrastructure/config"
	"github.com/cafemenu/backend/internal/infrastructure/logger"
	"github.com/cafemenu/backend/internal/infrastructure/persistence"
	"github.com/cafemenu/backend/internal/infrastructure/storage"
	"github.com/cafemenu/backend/internal/infrastructure/telemetry"
	"github.com/cafemenu/backend/internal/interfaces/http/handler"
	"github.com/cafemenu/backend/internal/interfaces/http/middleware"
	"github.com/cafemenu/backend/internal/interfaces/http/router"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log := logger.New(cfg.Log)
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting cafe menu backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	ctx := context.Background()

	tracerProvider, err := telemetry.NewTracerProvider(ctx, cfg.Telemetry, log)
	if err != nil {
		log.Fatal("Failed to initialize tracing", zap.Error(err))
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tracerProvider.Shutdown(shutdownCtx); err != nil {
			log.Warn("Tracer shutdown failed", zap.Error(err))
		}
	}()

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level), 200*time.Millisecond)
	db, err := persistence.NewDatabaseWithCustomLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected")

	if cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled {
		if err := telemetry.RegisterDBTracing(db.DB, cfg.Database.DBName, log); err != nil {
			log.Warn("Failed to register database tracing", zap.Error(err))
		}
	}

	// Advisory snapshot store. Optional: when Redis is down or disabled the
	// services fall back to in-process caches and built-in defaults.
	var (
		menuSnapshots     menudomain.SnapshotStore
		settingsSnapshots settingsdomain.SnapshotStore
	)
	if cfg.Redis.Enabled {
		redisStore, err := cache.NewRedisSnapshotStore(cache.RedisConfig{
			Host:     cfg.Redis.Host,
			Port:     cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		}, cfg.Redis.SnapshotTTL, log)
		if err != nil {
			log.Warn("Redis snapshot store unavailable, continuing without it", zap.Error(err))
		} else {
			defer func() {
				_ = redisStore.Close()
			}()
			menuSnapshots = redisStore
			settingsSnapshots = redisStore
		}
	}

	// Repositories
	categoryRepo := persistence.NewGormCategoryRepository(db.DB)
	itemRepo := persistence.NewGormItemRepository(db.DB)
	settingRepo := persistence.NewGormSettingRepository(db.DB)
	adminRepo := persistence.NewGormAdminRepository(db.DB)

	// In-process caches
	categoryCache := cache.NewSnapshot[[]menudomain.Category]("categories", cfg.Cache.CategoryTTL,
		cache.WithSnapshotLogger[[]menudomain.Category](log))
	settingsCache := cache.NewSnapshot[map[string]string]("settings", cfg.Cache.SettingsTTL,
		cache.WithSnapshotLogger[map[string]string](log))

	// Object storage. Without credentials the in-memory store keeps local
	// development working; uploads are lost on restart.
	var (
		uploadStore uploadapp.ObjectStorage
		backupStore backupapp.ObjectStorage
	)
	if cfg.Storage.AccessKey != "" || cfg.Storage.Endpoint != "" {
		imageStore, err := storage.NewS3ObjectStorage(&cfg.Storage, storage.WithLogger(log))
		if err != nil {
			log.Fatal("Failed to initialize object storage", zap.Error(err))
		}
		if err := imageStore.EnsureBucket(ctx); err != nil {
			log.Warn("Could not ensure storage bucket", zap.Error(err))
		}
		archiveStore, err := storage.NewS3ObjectStorage(&cfg.Storage,
			storage.WithLogger(log), storage.WithBucket(cfg.Storage.BackupBucket))
		if err != nil {
			log.Fatal("Failed to initialize backup storage", zap.Error(err))
		}
		if cfg.Storage.BackupBucket != cfg.Storage.Bucket {
			if err := archiveStore.EnsureBucket(ctx); err != nil {
				log.Warn("Could not ensure backup bucket", zap.Error(err))
			}
		}
		uploadStore = imageStore
		backupStore = archiveStore
	} else {
		log.Warn("Object storage not configured, using in-memory store")
		memStore := storage.NewMemoryObjectStorage()
		uploadStore = memStore
		backupStore = memStore
	}

	// Application services
	jwtService := auth.NewJWTService(cfg.Auth)
	categoryService := menuapp.NewCategoryService(categoryRepo, itemRepo, categoryCache, menuSnapshots, log)
	itemService := menuapp.NewItemService(itemRepo, categoryRepo, menuSnapshots, log)
	settingsService := settingsapp.NewService(settingRepo, settingsCache, settingsSnapshots, log)
	authService := identityapp.NewAuthService(adminRepo, jwtService, identityapp.BootstrapAdmin{
		Email:    cfg.Auth.BootstrapEmail,
		Password: cfg.Auth.BootstrapPassword,
	}, log)
	analyticsService := analyticsapp.NewService(categoryRepo, itemRepo, log)
	uploadService := uploadapp.NewService(uploadStore, cfg.Upload, log)
	backupService := backupapp.NewService(categoryRepo, itemRepo, settingRepo, adminRepo, backupStore, log)
	systemService := systemapp.NewService(categoryRepo, menuSnapshots, settingsService,
		cfg.Cache.InitTimeout, log, categoryService, settingsService)

	// Startup probe. A failed probe only marks the instance degraded; reads
	// are then served from snapshots and defaults.
	status := systemService.EnsureReady(ctx)
	if status.Degraded {
		log.Warn("Starting in degraded mode")
	}
	uploadService.EnsureFolders(ctx)

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

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	// Tracing runs before the request logger so log lines carry the trace ID
	if cfg.Telemetry.Enabled {
		engine.Use(otelgin.Middleware(cfg.Telemetry.ServiceName))
	}
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())

	engine.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	router.Register(engine, router.Deps{
		Categories: handler.NewCategoryHandler(categoryService),
		Items:      handler.NewItemHandler(itemService),
		Settings:   handler.NewSettingsHandler(settingsService),
		Auth:       handler.NewAuthHandler(authService),
		Analytics:  handler.NewAnalyticsHandler(analyticsService),
		Backups:    handler.NewBackupHandler(backupService),
		Uploads:    handler.NewUploadHandler(uploadService),
		System:     handler.NewSystemHandler(systemService),
		JWT:        jwtService,
		Logger:     log,
	})

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
